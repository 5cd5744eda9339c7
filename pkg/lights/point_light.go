// Package lights contains the light records used by the shading model.
package lights

import "github.com/df07/go-raymarcher/pkg/core"

// PointLight emits Color from Position in every direction.
// Intensity does not fall off with distance.
type PointLight struct {
	Position core.Vec3
	Color    core.Color
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, color core.Color) PointLight {
	return PointLight{Position: position, Color: color}
}

// DirectionFrom returns the unit vector from point toward the light and the
// distance between them
func (l PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	distance := toLight.Length()
	return toLight.Divide(distance), distance
}
