package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/material"
	"github.com/df07/go-raymarcher/pkg/operations"
	"github.com/df07/go-raymarcher/pkg/sdf"
)

// MarchConfig holds the accuracy/performance knobs of sphere tracing
type MarchConfig struct {
	MaxSteps          int     // Step budget before giving up
	DistanceThreshold float64 // Hit epsilon, also the normal estimation offset
}

// DefaultMarchConfig returns the default step budget and threshold
func DefaultMarchConfig() MarchConfig {
	return MarchConfig{
		MaxSteps:          128,
		DistanceThreshold: 1e-3,
	}
}

// RayMarched is an object whose surface is the zero set of a distance
// estimator evaluated through an operation chain
type RayMarched struct {
	surface
	MaxSteps          int
	DistanceThreshold float64
	Operations        operations.Chain
	Estimator         sdf.Estimator
}

// NewRayMarched creates a ray-marched object. The operations are applied in
// the order given.
func NewRayMarched(estimator sdf.Estimator, mat *material.Material, config MarchConfig, ops ...operations.Operation) (*RayMarched, error) {
	if config.MaxSteps <= 0 {
		return nil, fmt.Errorf("max steps must be positive, got %d", config.MaxSteps)
	}
	if !(config.DistanceThreshold > 0) {
		return nil, fmt.Errorf("distance threshold must be positive, got %g", config.DistanceThreshold)
	}

	return &RayMarched{
		surface:           surface{material: mat},
		MaxSteps:          config.MaxSteps,
		DistanceThreshold: config.DistanceThreshold,
		Operations:        operations.NewChain(ops...),
		Estimator:         estimator,
	}, nil
}

// Distance evaluates the estimator at a world position through the operation chain
func (r *RayMarched) Distance(position core.Vec3) float64 {
	local := r.Operations.TransformPosition(position)
	return r.Operations.TransformDistance(r.Estimator.Distance(local))
}

// Intersect sphere traces the ray. A ray that starts inside the surface
// marches the negated field to find where it leaves.
func (r *RayMarched) Intersect(ray core.Ray) core.Hit {
	total := 0.0
	sign := 1.0

	for step := 0; step < r.MaxSteps; step++ {
		point := ray.At(total)
		distance := sign * r.Distance(point)
		if math.IsNaN(distance) {
			return core.NoHit()
		}

		if step == 0 && distance < -r.DistanceThreshold {
			sign = -1
			distance = -distance
		}

		if distance < r.DistanceThreshold {
			// Step back off the surface before sampling the gradient
			normal := r.Normal(point.Subtract(ray.Direction.Multiply(r.DistanceThreshold)))
			return core.NewHit(total, normal)
		}

		// distance >= DistanceThreshold > 0 here, so the march always advances
		total += distance
	}

	return core.NoHit()
}

// Normal estimates the outward surface normal at position from central
// differences of Distance
func (r *RayMarched) Normal(position core.Vec3) core.Vec3 {
	e := r.DistanceThreshold
	dx := core.NewVec3(e, 0, 0)
	dy := core.NewVec3(0, e, 0)
	dz := core.NewVec3(0, 0, e)

	gradient := core.NewVec3(
		r.Distance(position.Add(dx))-r.Distance(position.Subtract(dx)),
		r.Distance(position.Add(dy))-r.Distance(position.Subtract(dy)),
		r.Distance(position.Add(dz))-r.Distance(position.Subtract(dz)),
	)
	return gradient.Normalize()
}
