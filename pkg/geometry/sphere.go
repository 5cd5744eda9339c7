package geometry

import (
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/material"
)

// Sphere is an analytically intersected sphere
type Sphere struct {
	surface
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		surface: surface{material: mat},
		Center:  center,
		Radius:  radius,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) core.Hit {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.NoHit()
	}

	// Try the closer intersection point first
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root <= minHitDistance {
		root = (-halfB + sqrtD) / a
		if root <= minHitDistance {
			return core.NoHit()
		}
	}

	normal := ray.At(root).Subtract(s.Center).Divide(s.Radius)
	return core.Hit{T: root, Normal: normal, UV: sphereUV(normal)}
}

// sphereUV maps a unit normal to longitude/latitude texture coordinates
func sphereUV(n core.Vec3) core.Vec2 {
	u := 0.5 + math.Atan2(n.Z, n.X)/(2*math.Pi)
	v := 0.5 + math.Asin(max(-1, min(1, n.Y)))/math.Pi
	return core.NewVec2(u, v)
}
