package operations

import "github.com/df07/go-raymarcher/pkg/core"

// Translate moves the estimator by Offset
type Translate struct {
	positionOnly
	Offset core.Vec3
}

// NewTranslate creates a translation
func NewTranslate(offset core.Vec3) *Translate {
	return &Translate{Offset: offset}
}

// TransformPosition implements Operation
func (t *Translate) TransformPosition(position core.Vec3) core.Vec3 {
	return position.Subtract(t.Offset)
}
