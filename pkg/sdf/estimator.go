// Package sdf provides distance estimators: functions mapping a point to a
// lower bound on its signed distance from a surface. Exact primitives return
// the true Euclidean distance; fractals return a conservative estimate that
// keeps sphere tracing from overshooting.
package sdf

import "github.com/df07/go-raymarcher/pkg/core"

// Estimator is a pure signed distance function. Implementations must be
// deterministic and free of side effects so they can be shared between
// rendering goroutines.
type Estimator interface {
	Distance(position core.Vec3) float64
}

// EstimatorFunc adapts a plain function into an Estimator
type EstimatorFunc func(position core.Vec3) float64

// Distance implements Estimator
func (f EstimatorFunc) Distance(position core.Vec3) float64 {
	return f(position)
}
