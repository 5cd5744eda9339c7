package core

import (
	"math"
	"math/rand"
)

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		// Accept if inside unit disk
		if p.Dot(p) <= 1.0 {
			return p
		}
	}
}

// GLSLMod is the floored modulo a - b*floor(a/b); the result has the sign of b
func GLSLMod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}
