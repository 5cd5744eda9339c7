package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/material"
	"github.com/df07/go-raymarcher/pkg/operations"
	"github.com/df07/go-raymarcher/pkg/sdf"
)

func testMaterial() *material.Material {
	return material.NewMaterial(core.NewColor(1, 1, 1), 0.1, 0.9, 0, 1)
}

func newMarched(t *testing.T, estimator sdf.Estimator, ops ...operations.Operation) *RayMarched {
	t.Helper()
	obj, err := NewRayMarched(estimator, testMaterial(), DefaultMarchConfig(), ops...)
	require.NoError(t, err)
	return obj
}

// angleBetween returns the angle in radians between two unit vectors
func angleBetween(a, b core.Vec3) float64 {
	return math.Acos(max(-1, min(1, a.Dot(b))))
}

func TestRayMarched_SphereConvergence(t *testing.T) {
	obj := newMarched(t, sdf.NewSphere(core.NewVec3(0, 0, 0), 1))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	hit := obj.Intersect(ray)
	require.True(t, hit.IsHit())
	assert.InDelta(t, 4.0, hit.T, obj.DistanceThreshold)
	assert.Less(t, angleBetween(hit.Normal, core.NewVec3(0, 0, -1)), 0.01)
}

func TestRayMarched_OffAxisNormal(t *testing.T) {
	obj := newMarched(t, sdf.NewSphere(core.NewVec3(0, 0, 0), 1))
	origin := core.NewVec3(0.5, 0.3, -5)
	ray := core.NewRay(origin, core.NewVec3(0, 0, 1))

	hit := obj.Intersect(ray)
	require.True(t, hit.IsHit())

	analytic := ray.At(hit.T).Normalize()
	assert.Less(t, angleBetween(hit.Normal, analytic), 0.01)
	assert.InDelta(t, 1.0, hit.Normal.Length(), 1e-9)
}

func TestRayMarched_Miss(t *testing.T) {
	obj := newMarched(t, sdf.NewSphere(core.NewVec3(0, 0, 0), 1))

	away := obj.Intersect(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)))
	assert.False(t, away.IsHit())
	assert.True(t, math.IsInf(away.T, 1))

	past := obj.Intersect(core.NewRay(core.NewVec3(0, 2, -5), core.NewVec3(0, 0, 1)))
	assert.False(t, past.IsHit())
}

func TestRayMarched_StepExhaustion(t *testing.T) {
	obj, err := NewRayMarched(sdf.NewSphere(core.NewVec3(0, 0, 0), 1), testMaterial(),
		MarchConfig{MaxSteps: 1, DistanceThreshold: 1e-3})
	require.NoError(t, err)

	hit := obj.Intersect(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	assert.False(t, hit.IsHit())
}

func TestRayMarched_StartsInside(t *testing.T) {
	obj := newMarched(t, sdf.NewSphere(core.NewVec3(0, 0, 0), 1))

	hit := obj.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
	require.True(t, hit.IsHit())
	assert.InDelta(t, 1.0, hit.T, obj.DistanceThreshold)
	// Gradient still points out of the solid
	assert.Less(t, angleBetween(hit.Normal, core.NewVec3(0, 0, 1)), 0.01)
}

func TestRayMarched_OperationChain(t *testing.T) {
	scale, err := operations.NewScale(2)
	require.NoError(t, err)

	tests := []struct {
		name      string
		estimator sdf.Estimator
		ops       []operations.Operation
		ray       core.Ray
		expectedT float64
		normal    core.Vec3
	}{
		{
			name:      "translate then scale",
			estimator: sdf.NewSphere(core.NewVec3(0, 0, 0), 1),
			ops:       []operations.Operation{operations.NewTranslate(core.NewVec3(2, 0, 0)), scale},
			ray:       core.NewRay(core.NewVec3(2, 0, -10), core.NewVec3(0, 0, 1)),
			expectedT: 8,
			normal:    core.NewVec3(0, 0, -1),
		},
		{
			name:      "rotated torus",
			estimator: sdf.NewTorus(core.NewVec3(0, 0, 0), 0.5, 2),
			ops:       []operations.Operation{operations.NewRotate(core.NewVec3(90, 0, 0))},
			ray:       core.NewRay(core.NewVec3(2, 0, -5), core.NewVec3(0, 0, 1)),
			expectedT: 4.5,
			normal:    core.NewVec3(0, 0, -1),
		},
		{
			name:      "repeated spheres",
			estimator: sdf.NewSphere(core.NewVec3(0, 0, 0), 0.5),
			ops:       []operations.Operation{operations.NewRepeat(core.NewVec3(3, 0, 0))},
			ray:       core.NewRay(core.NewVec3(6, 0, -5), core.NewVec3(0, 0, 1)),
			expectedT: 4.5,
			normal:    core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := newMarched(t, tt.estimator, tt.ops...)
			hit := obj.Intersect(tt.ray)
			require.True(t, hit.IsHit())
			// Scaled fields converge to within threshold times the scale
			assert.InDelta(t, tt.expectedT, hit.T, 2*obj.DistanceThreshold)
			assert.Less(t, angleBetween(hit.Normal, tt.normal), 0.01)
		})
	}
}

func TestRayMarched_FractalsHit(t *testing.T) {
	tests := []struct {
		name      string
		estimator sdf.Estimator
		target    core.Vec3 // A point on or inside the surface
	}{
		{"mandelbulb", sdf.NewMandelbulb(8), core.NewVec3(0.2, 0.1, 0)},
		{"menger sponge", sdf.NewMengerSponge(core.NewVec3(0, 0, 0), 1, 3), core.NewVec3(0.95, 0.95, 0.95)},
		{"sierpinski tetrahedron", sdf.NewSierpinskiTetrahedron(core.NewVec3(0, 0, 0), 1, 12), core.NewVec3(1, 1, 1)},
		{"octahedron", sdf.NewOctahedron(core.NewVec3(0, 0, 0), 1), core.NewVec3(0.3, 0.3, 0.3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := newMarched(t, tt.estimator)
			origin := core.NewVec3(0, 0, -4)
			ray := core.NewRay(origin, tt.target.Subtract(origin).Normalize())

			hit := obj.Intersect(ray)
			require.True(t, hit.IsHit())
			assert.Less(t, obj.Distance(ray.At(hit.T)), obj.DistanceThreshold)
			assert.Greater(t, hit.T, 2.0)
			assert.Less(t, hit.T, tt.target.Subtract(origin).Length())
			assert.InDelta(t, 1.0, hit.Normal.Length(), 1e-9)
		})
	}
}

func TestNewRayMarched_Validation(t *testing.T) {
	sphere := sdf.NewSphere(core.NewVec3(0, 0, 0), 1)

	_, err := NewRayMarched(sphere, testMaterial(), MarchConfig{MaxSteps: 0, DistanceThreshold: 1e-3})
	assert.Error(t, err)

	_, err = NewRayMarched(sphere, testMaterial(), MarchConfig{MaxSteps: 10, DistanceThreshold: 0})
	assert.Error(t, err)

	_, err = NewRayMarched(sphere, testMaterial(), MarchConfig{MaxSteps: 10, DistanceThreshold: math.NaN()})
	assert.Error(t, err)
}
