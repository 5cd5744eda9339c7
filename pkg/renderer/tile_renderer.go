package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// Random returns the tile's deterministic random generator for a render seed
func (t *Tile) Random(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(t.ID)))
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders the pixels of individual tiles
type TileRenderer struct {
	camera         *Camera
	raytracer      *Raytracer
	recursionDepth int
	superSampling  int
}

// NewTileRenderer creates a tile renderer for the scene
func NewTileRenderer(s *scene.Scene) *TileRenderer {
	cfg := s.SamplingConfig
	return &TileRenderer{
		camera:         NewCamera(s.Camera, cfg.Width, cfg.Height, cfg.SuperSampling),
		raytracer:      NewRaytracer(s),
		recursionDepth: cfg.RecursionDepth,
		superSampling:  max(1, cfg.SuperSampling),
	}
}

// RenderTileBounds renders pixels within the specified bounds into the raster.
// Tiles never overlap, so concurrent calls on distinct bounds are safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, raster *Raster, random *rand.Rand) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy(), Tiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := tr.samplePixel(x, y, random)
			raster.Set(x, y, ps.GetColor())
			stats.TotalSamples += ps.SampleCount
		}
	}

	return stats
}

// samplePixel traces the superSampling² sub-samples of a pixel, clamping each
func (tr *TileRenderer) samplePixel(x, y int, random *rand.Rand) PixelStats {
	var ps PixelStats
	for j := 0; j < tr.superSampling; j++ {
		for i := 0; i < tr.superSampling; i++ {
			ray := tr.camera.Ray(x, y, i, j, random)
			ps.AddSample(tr.raytracer.Trace(ray, tr.recursionDepth).Clamp(0, 1))
		}
	}
	return ps
}

// PixelColor renders a single pixel outside of a tile
func (tr *TileRenderer) PixelColor(x, y int, random *rand.Rand) core.Color {
	ps := tr.samplePixel(x, y, random)
	return ps.GetColor()
}
