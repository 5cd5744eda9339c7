// Package config holds the render settings that are not part of a scene:
// output location, tiling, parallelism and the sampling seed.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the configuration file looked up when none is given
const DefaultFile = "raymarcher.toml"

// RenderConfig contains the settings read from a TOML file.
// Width and Height of zero keep the scene's resolution. An empty Output
// writes a timestamped PNG under output/<scene>/.
type RenderConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	TileSize  int    `toml:"tile_size"`
	Workers   int    `toml:"workers"` // 0 uses all CPUs
	Seed      int64  `toml:"seed"`
	Output    string `toml:"output"`
	ScenesDir string `toml:"scenes_dir"`
}

// Default returns the built-in settings
func Default() RenderConfig {
	return RenderConfig{
		TileSize:  64,
		Workers:   0,
		Seed:      42,
		ScenesDir: "scenes",
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default values; unknown keys are an error.
func Load(path string) (RenderConfig, error) {
	cfg := Default()

	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, err
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, cfg.expand()
}

// LoadOptional loads path when it exists and returns the defaults otherwise
func LoadOptional(path string) (RenderConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Default(), err
	}
	if _, err := os.Stat(expanded); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the settings that would otherwise fail later in the render
func (c RenderConfig) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("resolution must be non-negative, got %dx%d", c.Width, c.Height))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %d", c.TileSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be non-negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// expand resolves ~ in the path settings
func (c *RenderConfig) expand() error {
	var err error
	if c.Output, err = homedir.Expand(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.ScenesDir, err = homedir.Expand(c.ScenesDir); err != nil {
		return fmt.Errorf("scenes_dir: %w", err)
	}
	return nil
}
