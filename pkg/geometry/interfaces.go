// Package geometry contains the scene objects: ray-marched distance fields and
// the closed-form primitives that are intersected analytically.
package geometry

import (
	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/material"
)

// Object is anything a ray can be intersected with. Intersect returns
// core.NoHit() on a miss. The returned normal is the geometric normal; callers
// orient it toward the viewer themselves.
type Object interface {
	Intersect(ray core.Ray) core.Hit
	Material() *material.Material
}

// minHitDistance rejects analytic roots at the ray origin
const minHitDistance = 1e-9

// surface carries the material shared by every object type
type surface struct {
	material *material.Material
}

// Material implements Object
func (s surface) Material() *material.Material {
	return s.material
}
