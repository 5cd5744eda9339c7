package operations

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raymarcher/pkg/core"
)

func randomVec(random *rand.Rand, scale float64) core.Vec3 {
	return core.NewVec3(
		(random.Float64()*2-1)*scale,
		(random.Float64()*2-1)*scale,
		(random.Float64()*2-1)*scale,
	)
}

func assertVecInDelta(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "X of %v vs %v", expected, actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "Y of %v vs %v", expected, actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "Z of %v vs %v", expected, actual)
}

func TestIdentity(t *testing.T) {
	p := core.NewVec3(1, -2, 3)
	assert.Equal(t, p, Identity{}.TransformPosition(p))
	assert.Equal(t, 0.25, Identity{}.TransformDistance(0.25))
}

func TestTranslate(t *testing.T) {
	op := NewTranslate(core.NewVec3(1, 2, 3))
	assert.Equal(t, core.NewVec3(0, 0, 0), op.TransformPosition(core.NewVec3(1, 2, 3)))
	assert.Equal(t, 1.5, op.TransformDistance(1.5))
}

func TestScale_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	for _, factor := range []float64{0.1, 0.5, 2, 3.7, -2} {
		scale, err := NewScale(factor)
		require.NoError(t, err)
		inverse, err := NewScale(1 / factor)
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			p := randomVec(random, 10)
			assertVecInDelta(t, p, inverse.TransformPosition(scale.TransformPosition(p)), 1e-9)

			d := random.Float64() * 5
			assert.InDelta(t, d, inverse.TransformDistance(scale.TransformDistance(d)), 1e-9)
		}
	}
}

func TestScale_RejectsZero(t *testing.T) {
	_, err := NewScale(0)
	assert.ErrorIs(t, err, ErrZeroScale)
}

func TestRotate_MatchesInverseConvention(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		degrees := randomVec(random, 180)
		op := NewRotate(degrees)
		p := randomVec(random, 3)

		assertVecInDelta(t, p.RotateInverse(degrees), op.TransformPosition(p), 1e-9)
		assertVecInDelta(t, p, op.TransformPosition(p.RotateForward(degrees)), 1e-9)
		assert.Equal(t, 0.5, op.TransformDistance(0.5))
	}
}

func TestRotate_QuarterTurnZ(t *testing.T) {
	op := NewRotate(core.NewVec3(0, 0, 90))
	// Object rotated +90° about Z: the world point (0,1,0) maps back to local (1,0,0)
	assertVecInDelta(t, core.NewVec3(1, 0, 0), op.TransformPosition(core.NewVec3(0, 1, 0)), 1e-12)
}

func TestRepeat_Periodicity(t *testing.T) {
	period := core.NewVec3(2, 0, 3.5)
	op := NewRepeat(period)
	random := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		p := randomVec(random, 20)
		base := op.TransformPosition(p)
		for k := -3; k <= 3; k++ {
			shifted := p.Add(core.NewVec3(float64(k)*period.X, 0, float64(k)*period.Z))
			assertVecInDelta(t, base, op.TransformPosition(shifted), 1e-9)
		}

		// Zero period leaves the axis alone, others land in the centred cell
		assert.Equal(t, p.Y, base.Y)
		assert.True(t, base.X >= -1 && base.X < 1, "x=%f outside cell", base.X)
		assert.True(t, base.Z >= -1.75 && base.Z < 1.75, "z=%f outside cell", base.Z)
	}
}

func TestRepeat_CellsCentredOnMultiples(t *testing.T) {
	op := NewRepeat(core.NewVec3(4, 4, 4))
	assertVecInDelta(t, core.NewVec3(0, 0, 0), op.TransformPosition(core.NewVec3(8, -4, 4)), 1e-12)
	assertVecInDelta(t, core.NewVec3(1, -1, 0.5), op.TransformPosition(core.NewVec3(9, -5, 4.5)), 1e-12)
}

func TestChain_Order(t *testing.T) {
	scale, err := NewScale(2)
	require.NoError(t, err)

	// translate then scale: (p - offset) / 2
	chain := NewChain(NewTranslate(core.NewVec3(2, 0, 0)), scale)
	assertVecInDelta(t, core.NewVec3(1, 0, 0), chain.TransformPosition(core.NewVec3(4, 0, 0)), 1e-12)

	// scale then translate: p/2 - offset
	reversed := NewChain(scale, NewTranslate(core.NewVec3(2, 0, 0)))
	assertVecInDelta(t, core.NewVec3(0, 0, 0), reversed.TransformPosition(core.NewVec3(4, 0, 0)), 1e-12)

	assert.Equal(t, 1.0, chain.TransformDistance(0.5))
}

func TestChain_DistanceTransformsCompose(t *testing.T) {
	a, err := NewScale(2)
	require.NoError(t, err)
	b, err := NewScale(3)
	require.NoError(t, err)

	chain := NewChain(a, NewRotate(core.NewVec3(10, 20, 30)), b)
	assert.InDelta(t, 6.0, chain.TransformDistance(1), 1e-12)
	assert.Equal(t, 1.0, Chain(nil).TransformDistance(1))
}
