package core

import "math"

// Hit is the result of a single ray-object intersection query
type Hit struct {
	T      float64 // Distance along the ray, +Inf when nothing was hit
	Normal Vec3    // Unit surface normal at the hit point
	UV     Vec2    // Texture coordinates, zero for surfaces without a parametrization
}

// NoHit returns the sentinel for a ray that misses
func NoHit() Hit {
	return Hit{T: math.Inf(1)}
}

// NewHit creates a hit at distance t with the given normal
func NewHit(t float64, normal Vec3) Hit {
	return Hit{T: t, Normal: normal}
}

// IsHit reports whether the hit is finite
func (h Hit) IsHit() bool {
	return !math.IsInf(h.T, 1)
}
