package lights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-raymarcher/pkg/core"
)

func TestPointLight_DirectionFrom(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(1, 1, 1))

	dir, distance := light.DirectionFrom(core.NewVec3(0, 2, 0))
	assert.Equal(t, core.NewVec3(0, 1, 0), dir)
	assert.Equal(t, 8.0, distance)
}
