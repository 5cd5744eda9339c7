// Package operations implements the space-warping transforms applied to a
// position before a distance estimator is evaluated, and to the estimated
// distance afterwards.
package operations

import "github.com/df07/go-raymarcher/pkg/core"

// Operation transforms a sample position into an estimator's local domain and
// maps the resulting distance back into world units
type Operation interface {
	TransformPosition(position core.Vec3) core.Vec3
	TransformDistance(distance float64) float64
}

// Chain is an ordered sequence of operations. Both position and distance
// transforms run in insertion order.
type Chain []Operation

// NewChain creates a chain from the given operations
func NewChain(ops ...Operation) Chain {
	return Chain(ops)
}

// TransformPosition applies every operation's position transform in order
func (c Chain) TransformPosition(position core.Vec3) core.Vec3 {
	for _, op := range c {
		position = op.TransformPosition(position)
	}
	return position
}

// TransformDistance applies every operation's distance transform in order
func (c Chain) TransformDistance(distance float64) float64 {
	for _, op := range c {
		distance = op.TransformDistance(distance)
	}
	return distance
}

// Identity leaves positions and distances untouched
type Identity struct{}

// TransformPosition implements Operation
func (Identity) TransformPosition(position core.Vec3) core.Vec3 { return position }

// TransformDistance implements Operation
func (Identity) TransformDistance(distance float64) float64 { return distance }

// positionOnly provides the identity distance transform for operations that
// preserve distances (rigid motions and domain repetition)
type positionOnly struct{}

func (positionOnly) TransformDistance(distance float64) float64 { return distance }
