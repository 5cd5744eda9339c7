package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-raymarcher/pkg/config"
	"github.com/df07/go-raymarcher/pkg/loaders"
	"github.com/df07/go-raymarcher/pkg/output"
	"github.com/df07/go-raymarcher/pkg/renderer"
	"github.com/df07/go-raymarcher/pkg/scene"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// renderFlags holds the command line overrides of the render config
type renderFlags struct {
	configPath string
	output     string
	scenesDir  string
	width      int
	height     int
	tileSize   int
	workers    int
	seed       int64
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "raymarcher",
		Short:         "Ray-marching Whitted renderer for signed distance field scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newScenesCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Render a built-in scene or a YAML/JSON scene file",
		Long: `Render a scene to an image file.

The scene is a built-in scene id (see "raymarcher scenes"), "file:<name>" for a
description in the scenes directory, or a path to a .yaml, .yml or .json file.
Flags override values from the TOML config file, which override the scene's
own resolution.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := NewConsoleLogger(cmd.OutOrStdout())
			if err := runRender(cmd, args[0], flags, logger); err != nil {
				logger.Errorf("%v", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "TOML config file (default "+config.DefaultFile+" if present)")
	f.StringVarP(&flags.output, "output", "o", "", "output image (.png, .jpg, .bmp, .tiff)")
	f.StringVar(&flags.scenesDir, "scenes-dir", "", "directory searched for file: scenes")
	f.IntVar(&flags.width, "width", 0, "image width, overrides the scene")
	f.IntVar(&flags.height, "height", 0, "image height, overrides the scene")
	f.IntVar(&flags.tileSize, "tile-size", 0, "tile edge in pixels")
	f.IntVarP(&flags.workers, "workers", "w", 0, "parallel workers (0 = all CPUs)")
	f.Int64Var(&flags.seed, "seed", 0, "base seed for depth of field sampling")
	return cmd
}

func runRender(cmd *cobra.Command, sceneName string, flags renderFlags, logger *ConsoleLogger) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	s, err := createScene(sceneName, cfg.ScenesDir, logger)
	if err != nil {
		return err
	}
	if cfg.Width > 0 {
		s.SamplingConfig.Width = cfg.Width
	}
	if cfg.Height > 0 {
		s.SamplingConfig.Height = cfg.Height
	}
	if cmd.Flags().Changed("seed") && s.Camera.DOFStrength == 0 {
		logger.Warnf("--seed has no effect: %s has no depth of field\n", sceneName)
	}

	r, err := renderer.NewRenderer(s, renderer.Config{
		TileSize:   cfg.TileSize,
		NumWorkers: cfg.Workers,
		Seed:       cfg.Seed,
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	raster, _, err := r.Render(ctx)
	if err != nil {
		return err
	}

	filename := cfg.Output
	if filename == "" {
		filename = createOutputPath(sceneName, time.Now())
	}
	img := raster.ToRGBA()
	if err := output.Save(img, filename); err != nil {
		return err
	}
	logger.Printf("Average luminance %.3f\n", renderer.CalculateAverageLuminance(img))
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// loadConfig reads the TOML config and applies the flags the user set
func loadConfig(cmd *cobra.Command, flags renderFlags) (config.RenderConfig, error) {
	var cfg config.RenderConfig
	var err error
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		if cfg.Output, err = homedir.Expand(flags.output); err != nil {
			return cfg, err
		}
	}
	if changed("scenes-dir") {
		if cfg.ScenesDir, err = homedir.Expand(flags.scenesDir); err != nil {
			return cfg, err
		}
	}
	if changed("width") {
		cfg.Width = flags.width
	}
	if changed("height") {
		cfg.Height = flags.height
	}
	if changed("tile-size") {
		cfg.TileSize = flags.tileSize
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("seed") {
		cfg.Seed = flags.seed
	}

	return cfg, cfg.Validate()
}

// createScene resolves a scene name to a built-in scene or a scene file
func createScene(name, scenesDir string, logger *ConsoleLogger) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name is empty")
	}

	if fileName, ok := strings.CutPrefix(name, "file:"); ok {
		path, err := findSceneFile(scenesDir, fileName)
		if err != nil {
			return nil, err
		}
		return loaders.LoadScene(path, logger)
	}

	if scene.IsSceneFile(name) {
		path, err := homedir.Expand(name)
		if err != nil {
			return nil, err
		}
		return loaders.LoadScene(path, logger)
	}

	return scene.Builtin(name)
}

// findSceneFile looks up a scene description by base name in dir
func findSceneFile(dir, name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("scene file %q not found in %s", name, dir)
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneName string, now time.Time) string {
	base := strings.TrimPrefix(sceneName, "file:")
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", base, fmt.Sprintf("render_%s.png", timestamp))
}

func newScenesCmd() *cobra.Command {
	var scenesDir, format string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := homedir.Expand(scenesDir)
			if err != nil {
				return err
			}
			groups, err := scene.ListAllScenes(dir, NewConsoleLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return printScenes(cmd.OutOrStdout(), groups, format)
		},
	}

	cmd.Flags().StringVar(&scenesDir, "scenes-dir", config.Default().ScenesDir, "directory scanned for scene files")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func printScenes(w io.Writer, groups []scene.SceneGroup, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(groups)
	case "text":
		for _, group := range groups {
			fmt.Fprintf(w, "%s:\n", group.Name)
			for _, info := range group.Scenes {
				fmt.Fprintf(w, "  %-28s %s", info.ID, info.DisplayName)
				if info.Description != "" {
					fmt.Fprintf(w, " - %s", info.Description)
				}
				fmt.Fprintln(w)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
