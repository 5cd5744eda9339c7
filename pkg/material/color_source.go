package material

import (
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point.
	// UV is used for image textures, point for procedural textures.
	Evaluate(uv core.Vec2, point core.Vec3) core.Color
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Color {
	return s.Color
}

// Checker is a procedural 3D checkerboard of cubes with edge length Size.
// It needs no UV parametrization so it works on ray-marched surfaces.
type Checker struct {
	Even, Odd core.Color
	Size      float64
}

// NewChecker creates a 3D checker color source
func NewChecker(even, odd core.Color, size float64) *Checker {
	return &Checker{Even: even, Odd: odd, Size: size}
}

// Evaluate picks the color of the cube containing point
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Color {
	sum := math.Floor(point.X/c.Size) + math.Floor(point.Y/c.Size) + math.Floor(point.Z/c.Size)
	if core.GLSLMod(sum, 2) == 0 {
		return c.Even
	}
	return c.Odd
}
