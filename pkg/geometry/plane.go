package geometry

import (
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	surface
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	return &Plane{
		surface: surface{material: mat},
		Point:   point,
		Normal:  normal.Normalize(),
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) core.Hit {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return core.NoHit()
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= minHitDistance {
		return core.NoHit()
	}

	// Planar UV in an arbitrary tangent frame, one unit per texture repeat
	hit := ray.At(t).Subtract(p.Point)
	tangent := planeTangent(p.Normal)
	bitangent := p.Normal.Cross(tangent)
	return core.Hit{T: t, Normal: p.Normal, UV: core.NewVec2(hit.Dot(tangent), hit.Dot(bitangent))}
}

func planeTangent(normal core.Vec3) core.Vec3 {
	var axis core.Vec3
	if math.Abs(normal.X) > 0.9 {
		axis = core.NewVec3(0, 1, 0)
	} else {
		axis = core.NewVec3(1, 0, 0)
	}
	return axis.Cross(normal).Normalize()
}
