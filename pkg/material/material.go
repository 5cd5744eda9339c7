// Package material holds the read-only Phong material records attached to
// scene objects.
package material

import "github.com/df07/go-raymarcher/pkg/core"

// Material describes how a surface responds to light under the Phong model
type Material struct {
	Color ColorSource // Base color or texture
	Ka    float64     // Ambient coefficient
	Kd    float64     // Diffuse coefficient
	Ks    float64     // Specular coefficient, also the mirror weight for opaque surfaces
	N     float64     // Shininess exponent

	Transparent bool    // Whether the surface refracts
	Nt          float64 // Index of refraction, meaningful when Transparent
}

// NewMaterial creates an opaque material with a solid color
func NewMaterial(color core.Color, ka, kd, ks, n float64) *Material {
	return NewTexturedMaterial(NewSolidColor(color), ka, kd, ks, n)
}

// NewTexturedMaterial creates an opaque material with an arbitrary color source
func NewTexturedMaterial(source ColorSource, ka, kd, ks, n float64) *Material {
	return &Material{Color: source, Ka: ka, Kd: kd, Ks: ks, N: n}
}

// NewTransparentMaterial creates a refracting material with index of refraction nt
func NewTransparentMaterial(color core.Color, ka, kd, ks, n, nt float64) *Material {
	m := NewMaterial(color, ka, kd, ks, n)
	m.Transparent = true
	m.Nt = nt
	return m
}

// ColorAt evaluates the material color at a surface point
func (m *Material) ColorAt(uv core.Vec2, point core.Vec3) core.Color {
	return m.Color.Evaluate(uv, point)
}
