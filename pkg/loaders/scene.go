package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/geometry"
	"github.com/df07/go-raymarcher/pkg/lights"
	"github.com/df07/go-raymarcher/pkg/material"
	"github.com/df07/go-raymarcher/pkg/operations"
	"github.com/df07/go-raymarcher/pkg/scene"
	"github.com/df07/go-raymarcher/pkg/sdf"
)

// Format selects the syntax of a scene description
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFromPath picks the format from a file extension; anything but .json is YAML
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// SceneFile is the raw scene description
type SceneFile struct {
	Eye                 []float64     `json:"Eye" yaml:"Eye"`
	MaxRecursionDepth   *int          `json:"MaxRecursionDepth" yaml:"MaxRecursionDepth"`
	SuperSamplingFactor *int          `json:"SuperSamplingFactor" yaml:"SuperSamplingFactor"`
	Shadows             *bool         `json:"Shadows" yaml:"Shadows"`
	CameraRotation      []float64     `json:"CameraRotation" yaml:"CameraRotation"`
	FieldOfView         *float64      `json:"FieldOfView" yaml:"FieldOfView"`
	Background          []float64     `json:"Background" yaml:"Background"`
	DepthOfField        *DepthOfField `json:"DepthOfField" yaml:"DepthOfField"`
	Resolution          []int         `json:"Resolution" yaml:"Resolution"`
	Bias                *float64      `json:"Bias" yaml:"Bias"`
	Lights              []LightNode   `json:"Lights" yaml:"Lights"`
	Objects             []ObjectNode  `json:"Objects" yaml:"Objects"`
}

// DepthOfField holds the aperture settings. A missing FocalLength keeps the
// camera default.
type DepthOfField struct {
	Strength    float64  `json:"Strength" yaml:"Strength"`
	FocalLength *float64 `json:"FocalLength" yaml:"FocalLength"`
}

// LightNode describes a point light
type LightNode struct {
	Position []float64 `json:"position" yaml:"position"`
	Color    []float64 `json:"color" yaml:"color"`
}

// MaterialNode describes a Phong material
type MaterialNode struct {
	Ka      float64   `json:"ka" yaml:"ka"`
	Kd      float64   `json:"kd" yaml:"kd"`
	Ks      float64   `json:"ks" yaml:"ks"`
	N       float64   `json:"n" yaml:"n"`
	Color   []float64 `json:"color" yaml:"color"`
	Texture string    `json:"texture" yaml:"texture"`
	Nt      *float64  `json:"nt" yaml:"nt"`
}

// OperationNode describes one space-warp of a ray-marched object
type OperationNode struct {
	Type        string    `json:"type" yaml:"type"`
	Translation []float64 `json:"translation" yaml:"translation"`
	Rotation    []float64 `json:"rotation" yaml:"rotation"`
	Scale       *float64  `json:"scale" yaml:"scale"`
	Period      []float64 `json:"period" yaml:"period"`
}

// ObjectNode describes an object. Which shape fields apply depends on Type.
type ObjectNode struct {
	Type     string       `json:"type" yaml:"type"`
	Material MaterialNode `json:"material" yaml:"material"`

	// Analytic and ray-marched shape parameters
	Position   []float64 `json:"position" yaml:"position"`
	Radius     *float64  `json:"radius" yaml:"radius"`
	V0         []float64 `json:"v0" yaml:"v0"`
	V1         []float64 `json:"v1" yaml:"v1"`
	V2         []float64 `json:"v2" yaml:"v2"`
	V3         []float64 `json:"v3" yaml:"v3"`
	Normal     []float64 `json:"normal" yaml:"normal"`
	Height     *float64  `json:"height" yaml:"height"`
	Width      *float64  `json:"width" yaml:"width"`
	Size       *float64  `json:"size" yaml:"size"`
	Iterations *int      `json:"iterations" yaml:"iterations"`

	// Ray marching settings
	MaxSteps          *int            `json:"maxSteps" yaml:"maxSteps"`
	DistanceThreshold *float64        `json:"distanceThreshold" yaml:"distanceThreshold"`
	Operations        []OperationNode `json:"Operations" yaml:"Operations"`
}

// SceneLoader builds scenes from descriptions
type SceneLoader struct {
	baseDir string // Directory textures are resolved against
	logger  core.Logger
}

// NewSceneLoader creates a loader resolving relative texture paths against baseDir
func NewSceneLoader(baseDir string, logger core.Logger) *SceneLoader {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &SceneLoader{baseDir: baseDir, logger: logger}
}

// LoadScene reads a JSON or YAML scene description from a file
func LoadScene(filename string, logger core.Logger) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	loader := NewSceneLoader(filepath.Dir(filename), logger)
	s, err := loader.Parse(file, FormatFromPath(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Parse decodes a scene description and builds the scene
func (l *SceneLoader) Parse(r io.Reader, format Format) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	var file SceneFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&file)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&file)
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty scene description")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	return l.Build(&file)
}

// Build converts a decoded description into a scene
func (l *SceneLoader) Build(file *SceneFile) (*scene.Scene, error) {
	s := scene.NewScene()

	eye, err := vec3("Eye", file.Eye)
	if err != nil {
		return nil, err
	}
	s.Camera.Eye = eye

	if file.MaxRecursionDepth != nil {
		s.SamplingConfig.RecursionDepth = *file.MaxRecursionDepth
	}
	if file.SuperSamplingFactor != nil {
		s.SamplingConfig.SuperSampling = *file.SuperSamplingFactor
	}
	if file.Shadows != nil {
		s.SamplingConfig.Shadows = *file.Shadows
	}
	if file.Bias != nil {
		s.SamplingConfig.Bias = *file.Bias
	}
	if file.CameraRotation != nil {
		if s.Camera.Rotation, err = vec3("CameraRotation", file.CameraRotation); err != nil {
			return nil, err
		}
	}
	if file.FieldOfView != nil {
		s.Camera.FieldOfView = *file.FieldOfView
	}
	if file.Background != nil {
		if s.Background, err = vec3("Background", file.Background); err != nil {
			return nil, err
		}
	}
	if file.DepthOfField != nil {
		s.Camera.DOFStrength = file.DepthOfField.Strength
		s.Camera.FocalLength = optional(file.DepthOfField.FocalLength, s.Camera.FocalLength)
	}
	if file.Resolution != nil {
		if len(file.Resolution) != 2 {
			return nil, fmt.Errorf("resolution must be [width, height], got %d values", len(file.Resolution))
		}
		s.SamplingConfig.Width = file.Resolution[0]
		s.SamplingConfig.Height = file.Resolution[1]
	}

	for i, node := range file.Lights {
		position, err := vec3("position", node.Position)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		color, err := vec3("color", node.Color)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(lights.NewPointLight(position, color))
	}

	for i, node := range file.Objects {
		obj, err := l.buildObject(node)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, node.Type, err)
		}
		s.AddObject(obj)
	}
	l.logger.Printf("Parsed %d objects.\n", len(s.Objects))

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (l *SceneLoader) buildObject(node ObjectNode) (geometry.Object, error) {
	mat, err := l.buildMaterial(node.Material)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}

	switch node.Type {
	case "sphere":
		center, err := vec3("position", node.Position)
		if err != nil {
			return nil, err
		}
		radius, err := required("radius", node.Radius)
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, radius, mat), nil

	case "quad":
		var v [4]core.Vec3
		for i, raw := range [][]float64{node.V0, node.V1, node.V2, node.V3} {
			if v[i], err = vec3(fmt.Sprintf("v%d", i), raw); err != nil {
				return nil, err
			}
		}
		quad, err := geometry.NewQuadFromVertices(v[0], v[1], v[2], v[3], mat)
		if err != nil {
			return nil, err
		}
		return quad, nil

	case "plane":
		point, err := vec3("position", node.Position)
		if err != nil {
			return nil, err
		}
		normal, err := vec3("normal", node.Normal)
		if err != nil {
			return nil, err
		}
		if normal.IsZero() {
			return nil, fmt.Errorf("normal must be non-zero")
		}
		return geometry.NewPlane(point, normal, mat), nil
	}

	estimator, err := buildEstimator(node)
	if err != nil {
		return nil, err
	}

	config := geometry.DefaultMarchConfig()
	if node.MaxSteps != nil {
		config.MaxSteps = *node.MaxSteps
	}
	if node.DistanceThreshold != nil {
		config.DistanceThreshold = *node.DistanceThreshold
	}

	ops := make([]operations.Operation, 0, len(node.Operations))
	for i, opNode := range node.Operations {
		op, err := buildOperation(opNode)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, opNode.Type, err)
		}
		ops = append(ops, op)
	}

	obj, err := geometry.NewRayMarched(estimator, mat, config, ops...)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// buildEstimator creates the distance estimator of a ray-marched object type.
// Position defaults to the origin and size to 1; operations place the shape.
func buildEstimator(node ObjectNode) (sdf.Estimator, error) {
	center := core.Vec3{}
	if node.Position != nil {
		var err error
		if center, err = vec3("position", node.Position); err != nil {
			return nil, err
		}
	}
	size := optional(node.Size, 1.0)

	switch node.Type {
	case "ray_marched_sphere":
		return sdf.NewSphere(center, optional(node.Radius, 1.0)), nil

	case "torus":
		height, err := required("height", node.Height)
		if err != nil {
			return nil, err
		}
		width, err := required("width", node.Width)
		if err != nil {
			return nil, err
		}
		return sdf.NewTorus(center, height, width), nil

	case "octahedron":
		return sdf.NewOctahedron(center, size), nil

	case "menger_sponge", "sierpinski_tetrahedron", "mandelbulb":
		iterations, err := required("iterations", node.Iterations)
		if err != nil {
			return nil, err
		}
		if iterations < 0 {
			return nil, fmt.Errorf("iterations must be non-negative, got %d", iterations)
		}
		switch node.Type {
		case "menger_sponge":
			return sdf.NewMengerSponge(center, size, iterations), nil
		case "sierpinski_tetrahedron":
			return sdf.NewSierpinskiTetrahedron(center, size, iterations), nil
		default:
			return sdf.NewMandelbulb(iterations), nil
		}
	}

	return nil, fmt.Errorf("unknown object type %q", node.Type)
}

// buildOperation creates a space-warp. An empty type is the identity.
func buildOperation(node OperationNode) (operations.Operation, error) {
	switch node.Type {
	case "", "identity":
		return operations.Identity{}, nil
	case "translate":
		offset, err := vec3("translation", node.Translation)
		if err != nil {
			return nil, err
		}
		return operations.NewTranslate(offset), nil
	case "rotate":
		degrees, err := vec3("rotation", node.Rotation)
		if err != nil {
			return nil, err
		}
		return operations.NewRotate(degrees), nil
	case "scale":
		factor, err := required("scale", node.Scale)
		if err != nil {
			return nil, err
		}
		scale, err := operations.NewScale(factor)
		if err != nil {
			return nil, err
		}
		return scale, nil
	case "repeat":
		period, err := vec3("period", node.Period)
		if err != nil {
			return nil, err
		}
		return operations.NewRepeat(period), nil
	}
	return nil, fmt.Errorf("unknown operation type %q", node.Type)
}

// buildMaterial follows the description's precedence: nt makes the surface
// transparent, then color, then texture; with neither the surface is magenta
func (l *SceneLoader) buildMaterial(node MaterialNode) (*material.Material, error) {
	if node.Nt != nil {
		color, err := vec3("color", node.Color)
		if err != nil {
			return nil, err
		}
		return material.NewTransparentMaterial(color, node.Ka, node.Kd, node.Ks, node.N, *node.Nt), nil
	}

	if node.Color != nil {
		color, err := vec3("color", node.Color)
		if err != nil {
			return nil, err
		}
		return material.NewMaterial(color, node.Ka, node.Kd, node.Ks, node.N), nil
	}

	if node.Texture != "" {
		path := node.Texture
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.baseDir, path)
		}
		texture, err := LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", node.Texture, err)
		}
		return material.NewTexturedMaterial(texture, node.Ka, node.Kd, node.Ks, node.N), nil
	}

	return material.NewMaterial(core.NewColor(1, 0, 1), node.Ka, node.Kd, node.Ks, node.N), nil
}

func vec3(name string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		if values == nil {
			return core.Vec3{}, fmt.Errorf("%s: missing", name)
		}
		return core.Vec3{}, fmt.Errorf("%s: expected 3 values, got %d", name, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func required[T any](name string, value *T) (T, error) {
	if value == nil {
		var zero T
		return zero, fmt.Errorf("%s: missing", name)
	}
	return *value, nil
}

func optional[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}
