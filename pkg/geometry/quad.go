package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	surface
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	D      float64   // Plane equation constant: normal · p = D
	W      core.Vec3 // Cached vector for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat *material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		surface: surface{material: mat},
		Corner:  corner,
		U:       u,
		V:       v,
		Normal:  normal,
		D:       normal.Dot(corner),
		W:       cross.Divide(cross.Dot(cross)),
	}
}

// ErrNotParallelogram is returned for vertices that do not span a parallelogram
var ErrNotParallelogram = errors.New("quad vertices must form a parallelogram")

// NewQuadFromVertices creates a quad from four vertices in winding order.
// v2 must equal v1 + v3 - v0 up to a tolerance relative to the quad size.
func NewQuadFromVertices(v0, v1, v2, v3 core.Vec3, mat *material.Material) (*Quad, error) {
	u := v1.Subtract(v0)
	v := v3.Subtract(v0)
	if u.Cross(v).IsZero() {
		return nil, errors.New("quad vertices are collinear")
	}

	expected := v1.Add(v3).Subtract(v0)
	tolerance := 1e-6 * max(u.Length(), v.Length())
	if offset := v2.Subtract(expected).Length(); offset > tolerance {
		return nil, fmt.Errorf("%w: v2 is %g away from %v", ErrNotParallelogram, offset, expected)
	}
	return NewQuad(v0, u, v, mat), nil
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray) core.Hit {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray parallel to the quad plane
	if math.Abs(denominator) < 1e-8 {
		return core.NoHit()
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= minHitDistance {
		return core.NoHit()
	}

	// Barycentric coordinates of the hit within the parallelogram
	hitVector := ray.At(t).Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return core.NoHit()
	}

	return core.Hit{T: t, Normal: q.Normal, UV: core.NewVec2(alpha, beta)}
}
