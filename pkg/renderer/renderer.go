package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/scene"
)

// Config contains the parallelism settings of a render
type Config struct {
	TileSize   int   // Size of each tile (64x64 recommended)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for the per-tile depth of field jitter
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0,  // Auto-detect CPU count
		Seed:       42, // Tile seeds are Seed + tile ID
	}
}

// Renderer renders a scene into a raster in one pass over a tile grid
type Renderer struct {
	scene        *scene.Scene
	config       Config
	tiles        []*Tile
	tileRenderer *TileRenderer
	workerPool   *WorkerPool
	logger       core.Logger
}

// NewRenderer validates the scene and prepares the tile grid
func NewRenderer(s *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	if config.TileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", config.TileSize)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	return &Renderer{
		scene:        s,
		config:       config,
		tiles:        NewTileGrid(width, height, config.TileSize),
		tileRenderer: NewTileRenderer(s),
		workerPool:   NewWorkerPool(config.NumWorkers),
		logger:       logger,
	}, nil
}

// Render traces every pixel of the scene. The result does not depend on the
// number of workers.
func (r *Renderer) Render(ctx context.Context) (*Raster, RenderStats, error) {
	cfg := r.scene.SamplingConfig
	raster := NewRaster(cfg.Width, cfg.Height)

	r.logger.Printf("Tracing %dx%d (%d tiles, %d workers, %dx supersampling, depth %d)...\n",
		cfg.Width, cfg.Height, len(r.tiles), r.workerPool.GetNumWorkers(), cfg.SuperSampling, cfg.RecursionDepth)

	startTime := time.Now()
	results, err := r.workerPool.Run(ctx, r.tiles, func(tile *Tile) RenderStats {
		return r.tileRenderer.RenderTileBounds(tile.Bounds, raster, tile.Random(r.config.Seed))
	})
	if err != nil {
		r.logger.Printf("Rendering cancelled: %v\n", err)
		return nil, RenderStats{}, err
	}

	stats := RenderStats{Workers: r.workerPool.GetNumWorkers(), Duration: time.Since(startTime)}
	for _, tileStats := range results {
		stats.Merge(tileStats)
	}

	r.logger.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Duration, stats.SamplesPerPixel())
	return raster, stats, nil
}
