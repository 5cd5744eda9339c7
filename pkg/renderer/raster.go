package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-raymarcher/pkg/core"
)

// Raster is a row-major buffer of linear colors in [0,1]
type Raster struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewRaster creates a black raster of the given size
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color of pixel (x, y), with (0, 0) at the top left
func (r *Raster) At(x, y int) core.Color {
	return r.Pixels[y*r.Width+x]
}

// Set stores the color of pixel (x, y)
func (r *Raster) Set(x, y int, c core.Color) {
	r.Pixels[y*r.Width+x] = c
}

// ToRGBA converts the raster to an 8-bit image
func (r *Raster) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(r.At(x, y)))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with clamping
func vec3ToColor(colorVec core.Color) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
