package operations

import (
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
)

// Rotate turns the estimator by Euler angles in degrees. The rows of the three
// inverse axis matrices are computed once at construction; the operation is
// immutable afterwards.
type Rotate struct {
	positionOnly
	Degrees core.Vec3

	xRows, yRows, zRows [3]core.Vec3
}

// NewRotate creates a rotation from Euler angles in degrees
func NewRotate(degrees core.Vec3) *Rotate {
	sx, cx := math.Sincos(core.Radians(degrees.X))
	sy, cy := math.Sincos(core.Radians(degrees.Y))
	sz, cz := math.Sincos(core.Radians(degrees.Z))

	return &Rotate{
		Degrees: degrees,
		xRows: [3]core.Vec3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: cx, Z: sx},
			{X: 0, Y: -sx, Z: cx},
		},
		yRows: [3]core.Vec3{
			{X: cy, Y: 0, Z: -sy},
			{X: 0, Y: 1, Z: 0},
			{X: sy, Y: 0, Z: cy},
		},
		zRows: [3]core.Vec3{
			{X: cz, Y: sz, Z: 0},
			{X: -sz, Y: cz, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// TransformPosition applies the inverse Z, Y and X rotations in that order
func (r *Rotate) TransformPosition(position core.Vec3) core.Vec3 {
	position = multiplyRows(r.zRows, position)
	position = multiplyRows(r.yRows, position)
	return multiplyRows(r.xRows, position)
}

func multiplyRows(rows [3]core.Vec3, v core.Vec3) core.Vec3 {
	return core.Vec3{X: rows[0].Dot(v), Y: rows[1].Dot(v), Z: rows[2].Dot(v)}
}
