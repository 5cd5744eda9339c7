package operations

import (
	"errors"

	"github.com/df07/go-raymarcher/pkg/core"
)

// ErrZeroScale is returned when a scale operation is created with factor 0
var ErrZeroScale = errors.New("scale factor must be non-zero")

// Scale uniformly resizes the estimator. Positions are divided by Factor and
// distances multiplied by it so the estimate stays in world units.
type Scale struct {
	Factor float64
}

// NewScale creates a uniform scale
func NewScale(factor float64) (*Scale, error) {
	if factor == 0 {
		return nil, ErrZeroScale
	}
	return &Scale{Factor: factor}, nil
}

// TransformPosition implements Operation
func (s *Scale) TransformPosition(position core.Vec3) core.Vec3 {
	return position.Divide(s.Factor)
}

// TransformDistance implements Operation
func (s *Scale) TransformDistance(distance float64) float64 {
	return distance * s.Factor
}
