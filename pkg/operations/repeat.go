package operations

import "github.com/df07/go-raymarcher/pkg/core"

// Repeat tiles space into cells of size Period centred on multiples of the
// period. Axes with a zero period are not repeated.
type Repeat struct {
	positionOnly
	Period core.Vec3
}

// NewRepeat creates a domain repetition
func NewRepeat(period core.Vec3) *Repeat {
	return &Repeat{Period: period}
}

// TransformPosition implements Operation
func (r *Repeat) TransformPosition(position core.Vec3) core.Vec3 {
	return core.Vec3{
		X: repeatAxis(position.X, r.Period.X),
		Y: repeatAxis(position.Y, r.Period.Y),
		Z: repeatAxis(position.Z, r.Period.Z),
	}
}

func repeatAxis(value, period float64) float64 {
	if period == 0 {
		return value
	}
	return core.GLSLMod(value+0.5*period, period) - 0.5*period
}
