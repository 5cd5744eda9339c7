package sdf

import (
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
)

// MengerSponge carves a cube of half size Size around Center with a cross at
// every scale from 1/3 down to 1/3^Iterations
type MengerSponge struct {
	Center     core.Vec3
	Size       float64
	Iterations int
}

// NewMengerSponge creates a Menger sponge estimator
func NewMengerSponge(center core.Vec3, size float64, iterations int) *MengerSponge {
	return &MengerSponge{Center: center, Size: size, Iterations: iterations}
}

// Distance implements Estimator
func (m *MengerSponge) Distance(position core.Vec3) float64 {
	p := position.Subtract(m.Center).Divide(m.Size)
	d := Box(p, core.NewVec3(1, 1, 1))

	scale := 1.0
	for i := 0; i < m.Iterations; i++ {
		a := p.Multiply(scale)
		a = core.NewVec3(core.GLSLMod(a.X, 2)-1, core.GLSLMod(a.Y, 2)-1, core.GLSLMod(a.Z, 2)-1)
		scale *= 3.0

		r := core.NewVec3(1-3*math.Abs(a.X), 1-3*math.Abs(a.Y), 1-3*math.Abs(a.Z))
		d = max(d, mengerCross(r)/scale)
	}

	return d * m.Size
}

// mengerCross is the distance to the union of three infinite square bars of
// half width 1, one along each axis
func mengerCross(p core.Vec3) float64 {
	inf := math.Inf(1)
	da := Box(p, core.NewVec3(inf, 1, 1))
	db := Box(core.NewVec3(p.Y, p.Z, p.X), core.NewVec3(1, inf, 1))
	dc := Box(core.NewVec3(p.Z, p.X, p.Y), core.NewVec3(1, 1, inf))
	return min(da, min(db, dc))
}

// SierpinskiTetrahedron folds space toward the nearest corner of a
// tetrahedron with vertices at (±Size, ±Size, ±Size)
type SierpinskiTetrahedron struct {
	Center     core.Vec3
	Size       float64
	Iterations int

	vertices [4]core.Vec3
}

// NewSierpinskiTetrahedron creates a Sierpinski tetrahedron estimator
func NewSierpinskiTetrahedron(center core.Vec3, size float64, iterations int) *SierpinskiTetrahedron {
	return &SierpinskiTetrahedron{
		Center:     center,
		Size:       size,
		Iterations: iterations,
		vertices: [4]core.Vec3{
			core.NewVec3(size, size, size),
			core.NewVec3(-size, -size, size),
			core.NewVec3(size, -size, -size),
			core.NewVec3(-size, size, -size),
		},
	}
}

// Distance implements Estimator
func (s *SierpinskiTetrahedron) Distance(position core.Vec3) float64 {
	p := position.Subtract(s.Center)

	for i := 0; i < s.Iterations; i++ {
		closest := s.vertices[0]
		closestDistance := p.Subtract(closest).LengthSquared()
		for _, vertex := range s.vertices[1:] {
			if d := p.Subtract(vertex).LengthSquared(); d < closestDistance {
				closest = vertex
				closestDistance = d
			}
		}
		p = p.Multiply(2).Subtract(closest)
	}

	return p.Length() * math.Pow(2, -float64(s.Iterations))
}

// mandelbulbBailout is the squared orbit radius past which iteration stops
const mandelbulbBailout = 256.0

// minRingRadiusSquared keeps k3^7 above the float64 underflow limit
const minRingRadiusSquared = 1e-40

// Mandelbulb is the order 8 Mandelbulb centred on the origin
type Mandelbulb struct {
	Iterations int
}

// NewMandelbulb creates a Mandelbulb estimator
func NewMandelbulb(iterations int) *Mandelbulb {
	return &Mandelbulb{Iterations: iterations}
}

// Distance implements Estimator. The power 8 step is expanded into Cartesian
// polynomials instead of going through spherical coordinates.
func (mb *Mandelbulb) Distance(position core.Vec3) float64 {
	w := position
	m := w.LengthSquared()
	dz := 1.0

	for i := 0; i < mb.Iterations; i++ {
		// dz = 8 |w|^7 dz + 1
		m2 := m * m
		m4 := m2 * m2
		dz = 8.0*math.Sqrt(m4*m2*m)*dz + 1.0

		x, y, z := w.X, w.Y, w.Z
		x2, y2, z2 := x*x, y*y, z*z
		x4, y4, z4 := x2*x2, y2*y2, z2*z2

		// On the y axis the ring radius vanishes; keep k2 finite so the
		// zero x and z terms stay zero instead of turning into NaN
		k3 := max(x2+z2, minRingRadiusSquared)
		k2 := 1.0 / math.Sqrt(k3*k3*k3*k3*k3*k3*k3)
		k1 := x4 + y4 + z4 - 6.0*y2*z2 - 6.0*x2*y2 + 2.0*z2*x2
		k4 := x2 - y2 + z2

		w = core.Vec3{
			X: position.X + 64.0*x*y*z*(x2-z2)*k4*(x4-6.0*x2*z2+z4)*k1*k2,
			Y: position.Y + -16.0*y2*k3*k4*k4 + k1*k1,
			Z: position.Z + -8.0*y*k4*(x4*x4-28.0*x4*x2*z2+70.0*x4*z4-28.0*x2*z2*z4+z4*z4)*k1*k2,
		}

		m = w.LengthSquared()
		if m > mandelbulbBailout {
			break
		}
	}

	return 0.25 * math.Log(m) * math.Sqrt(m) / dz
}
