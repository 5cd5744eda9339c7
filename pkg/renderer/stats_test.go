package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-raymarcher/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green, blue and black; the three primaries' weights sum to one
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	assert.Equal(t, core.Color{}, ps.GetColor())

	ps.AddSample(core.NewColor(1, 0, 0))
	ps.AddSample(core.NewColor(0, 1, 0))
	assert.Equal(t, 2, ps.SampleCount)
	assert.Equal(t, core.NewColor(0.5, 0.5, 0), ps.GetColor())
}

func TestRenderStats_Merge(t *testing.T) {
	var total RenderStats
	total.Merge(RenderStats{TotalPixels: 4, TotalSamples: 16, Tiles: 1})
	total.Merge(RenderStats{TotalPixels: 2, TotalSamples: 8, Tiles: 1})

	assert.Equal(t, RenderStats{TotalPixels: 6, TotalSamples: 24, Tiles: 2}, total)
	assert.InDelta(t, 4.0, total.SamplesPerPixel(), 1e-12)
	assert.Equal(t, 0.0, RenderStats{}.SamplesPerPixel())
}

func TestRaster_ToRGBA(t *testing.T) {
	raster := NewRaster(2, 1)
	raster.Set(0, 0, core.NewColor(1, 0.5, 0))
	raster.Set(1, 0, core.NewColor(2, -1, 0.25))

	img := raster.ToRGBA()
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 64, 255}, img.RGBAAt(1, 0))
}

func TestRaster_ToRGBA_NaNIsBlack(t *testing.T) {
	nan := math.NaN()
	raster := NewRaster(1, 1)
	raster.Set(0, 0, core.NewColor(nan, 1, nan))

	assert.Equal(t, color.RGBA{0, 255, 0, 255}, raster.ToRGBA().RGBAAt(0, 0))
}
