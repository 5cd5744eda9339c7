package main

import (
	"bytes"
	"encoding/json"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raymarcher/pkg/scene"
)

const testSceneYAML = `# Scene: Test Ball
# Description: One sphere over a plane
Eye: [0, 0, 3]
Shadows: true
Resolution: [16, 12]
Lights:
  - position: [2, 4, 4]
    color: [1, 1, 1]
Objects:
  - type: ray_marched_sphere
    radius: 0.8
    material: {ka: 0.1, kd: 0.8, ks: 0.2, n: 10, color: [0.9, 0.2, 0.2]}
  - type: plane
    position: [0, -1, 0]
    normal: [0, 1, 0]
    material: {ka: 0.1, kd: 0.8, ks: 0, n: 1, color: [0.8, 0.8, 0.8]}
`

func writeTestScene(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test-ball.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSceneYAML), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeSize(t *testing.T, path string) image.Point {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return image.Pt(cfg.Width, cfg.Height)
}

func TestCreateScene(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTestScene(t, dir)
	logger := NewConsoleLogger(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii))

	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		// Built-in scenes
		{"mandelbulb", "mandelbulb", false},
		{"menger", "menger", false},
		{"sierpinski", "sierpinski", false},
		{"shapes", "shapes", false},

		// Scene files
		{"by path", scenePath, false},
		{"by file id", "file:test-ball", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing file id", "file:nonexistent", true},
		{"missing path", filepath.Join(dir, "nonexistent.yaml"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneName, dir, logger)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.NoError(t, s.Validate())
			assert.NotEmpty(t, s.Objects)
		})
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		sceneName string
		expected  string
	}{
		{"menger", filepath.Join("output", "menger", "render_20240305_140709.png")},
		{"file:test-ball", filepath.Join("output", "test-ball", "render_20240305_140709.png")},
		{"scenes/sub/my-scene.json", filepath.Join("output", "my-scene", "render_20240305_140709.png")},
	}
	for _, tt := range tests {
		t.Run(tt.sceneName, func(t *testing.T) {
			assert.Equal(t, tt.expected, createOutputPath(tt.sceneName, now))
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTestScene(t, dir)
	outPath := filepath.Join(dir, "renders", "ball.png")

	out, err := execute(t, "render", scenePath, "--width", "8", "--workers", "2", "-o", outPath)
	require.NoError(t, err, out)

	// Width from the flag, height from the scene
	assert.Equal(t, image.Pt(8, 12), decodeSize(t, outPath))
	assert.Contains(t, out, "Parsed 2 objects.")
	assert.Contains(t, out, "Render saved as "+outPath)
	assert.Contains(t, out, "Average luminance")
}

func TestRenderCommand_SeedWithoutDepthOfField(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTestScene(t, dir)

	out, err := execute(t, "render", scenePath, "--seed", "3", "-o", filepath.Join(dir, "out.png"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "WARN  --seed has no effect")
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTestScene(t, dir)
	outPath := filepath.Join(dir, "from-config.bmp")
	configPath := filepath.Join(dir, "render.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"width = 10\nheight = 4\ntile_size = 4\noutput = \""+filepath.ToSlash(outPath)+"\"\n"), 0o644))

	out, err := execute(t, "render", scenePath, "--config", configPath, "--height", "6")
	require.NoError(t, err, out)

	// The flag wins over the config file
	assert.Equal(t, image.Pt(10, 6), decodeSize(t, outPath))
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTestScene(t, dir)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown scene", []string{"render", "nonexistent"}, "unknown built-in scene"},
		{"no scene", []string{"render"}, "accepts 1 arg"},
		{"bad output format", []string{"render", scenePath, "-o", filepath.Join(dir, "out.gif")}, "unsupported image extension"},
		{"bad tile size", []string{"render", scenePath, "--tile-size", "0"}, "tile size"},
		{"missing config", []string{"render", scenePath, "--config", filepath.Join(dir, "none.toml")}, "failed to open config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScenesCommand(t *testing.T) {
	dir := t.TempDir()
	writeTestScene(t, dir)

	out, err := execute(t, "scenes", "--scenes-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Built-in Scenes:")
	assert.Contains(t, out, "mandelbulb")
	assert.Contains(t, out, "Scene Files:")
	assert.Contains(t, out, "file:test-ball")
	assert.Contains(t, out, "Test Ball - One sphere over a plane")

	out, err = execute(t, "scenes", "--scenes-dir", dir, "--format", "json")
	require.NoError(t, err)
	var groups []scene.SceneGroup
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "Built-in Scenes", groups[0].Name)
	assert.Equal(t, "file:test-ball", groups[1].Scenes[0].ID)

	out, err = execute(t, "scenes", "--scenes-dir", dir, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: file:test-ball")

	writeFile := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(writeFile, []byte("# Scene: "+strings.Repeat("x", 70000)+"\n"), 0o644))
	out, err = execute(t, "scenes", "--scenes-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "WARN  failed to parse metadata for "+writeFile)
	assert.Contains(t, out, "file:broken")

	_, err = execute(t, "scenes", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}
