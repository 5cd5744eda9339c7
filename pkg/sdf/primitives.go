package sdf

import (
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
)

// Sphere is the exact distance to a sphere surface
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a sphere estimator
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Distance implements Estimator
func (s *Sphere) Distance(position core.Vec3) float64 {
	return position.Subtract(s.Center).Length() - s.Radius
}

// Torus lies in the XZ plane around Center. Width is the distance from the
// centre to the middle of the tube, Height the tube radius.
type Torus struct {
	Center core.Vec3
	Height float64
	Width  float64
}

// NewTorus creates a torus estimator
func NewTorus(center core.Vec3, height, width float64) *Torus {
	return &Torus{Center: center, Height: height, Width: width}
}

// Distance implements Estimator
func (t *Torus) Distance(position core.Vec3) float64 {
	p := position.Subtract(t.Center)
	ring := math.Hypot(p.X, p.Z) - t.Width
	return math.Hypot(ring, p.Y) - t.Height
}

// Octahedron is the exact distance to a regular octahedron whose vertices sit
// Size away from Center along each axis
type Octahedron struct {
	Center core.Vec3
	Size   float64
}

// NewOctahedron creates an octahedron estimator
func NewOctahedron(center core.Vec3, size float64) *Octahedron {
	return &Octahedron{Center: center, Size: size}
}

// Distance implements Estimator
func (o *Octahedron) Distance(position core.Vec3) float64 {
	// Fold into the positive octant of a unit octahedron
	p := position.Subtract(o.Center).Divide(o.Size).Abs()
	m := p.X + p.Y + p.Z - 1.0

	var q core.Vec3
	switch {
	case 3.0*p.X < m:
		q = p
	case 3.0*p.Y < m:
		q = core.NewVec3(p.Y, p.Z, p.X)
	case 3.0*p.Z < m:
		q = core.NewVec3(p.Z, p.X, p.Y)
	default:
		// Closest feature is the face: distance to the plane x+y+z=1
		return m * (1.0 / math.Sqrt(3)) * o.Size
	}

	k := max(0.0, min(1.0, 0.5*(q.Z-q.Y+1.0)))
	return core.NewVec3(q.X, q.Y-1.0+k, q.Z-k).Length() * o.Size
}

// Box is the exact distance to an axis aligned box centred on the origin with
// the given half extents. Infinite extents produce an infinite slab.
func Box(position, halfExtents core.Vec3) float64 {
	d := position.Abs().Subtract(halfExtents)
	inside := min(max(d.X, max(d.Y, d.Z)), 0.0)
	outside := core.NewVec3(max(d.X, 0), max(d.Y, 0), max(d.Z, 0)).Length()
	return outside + inside
}
