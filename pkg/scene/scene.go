package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/geometry"
	"github.com/df07/go-raymarcher/pkg/lights"
)

// CameraConfig positions and orients the pinhole camera
type CameraConfig struct {
	Eye         core.Vec3 // Camera position in world space
	Rotation    core.Vec3 // Euler angles in degrees, applied X then Y then Z
	FieldOfView float64   // Full field of view in degrees
	FocalLength float64   // Distance from the eye to the plane in focus
	DOFStrength float64   // Aperture radius for depth of field (0 = pinhole)
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:         core.NewVec3(0, 0, 0),
		FieldOfView: 60,
		FocalLength: 1,
	}
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width          int     // Image width
	Height         int     // Image height
	RecursionDepth int     // Maximum reflection/refraction depth
	SuperSampling  int     // Sub-samples per pixel along each axis
	Shadows        bool    // Whether to cast shadow rays
	Bias           float64 // Offset along the normal for secondary ray origins
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:          400,
		Height:         400,
		RecursionDepth: 0,
		SuperSampling:  1,
		Shadows:        false,
		Bias:           5e-3,
	}
}

// Scene contains all the elements needed for rendering.
// Objects and lights are appended while the scene is built and only read while rendering.
type Scene struct {
	Objects        []geometry.Object
	Lights         []lights.PointLight
	Camera         CameraConfig
	SamplingConfig SamplingConfig
	Background     core.Color
}

// NewScene creates an empty scene with default camera and sampling settings
func NewScene() *Scene {
	return &Scene{
		Objects:        make([]geometry.Object, 0),
		Lights:         make([]lights.PointLight, 0),
		Camera:         DefaultCameraConfig(),
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// AddObject appends an object to the scene
func (s *Scene) AddObject(obj geometry.Object) {
	s.Objects = append(s.Objects, obj)
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(light lights.PointLight) {
	s.Lights = append(s.Lights, light)
}

// CastRay returns the closest object hit by the ray and its hit record.
// Only a strictly smaller distance replaces the current best, so the first object wins ties.
// The returned object is nil when nothing is hit.
func (s *Scene) CastRay(ray core.Ray) (geometry.Object, core.Hit) {
	closest := core.NoHit()
	var closestObj geometry.Object

	for _, obj := range s.Objects {
		if hit := obj.Intersect(ray); hit.T < closest.T {
			closest = hit
			closestObj = obj
		}
	}

	return closestObj, closest
}

// Validate checks the parameters the renderer relies on
func (s *Scene) Validate() error {
	var errs []error
	cfg := s.SamplingConfig
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("resolution must be positive, got %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.SuperSampling < 1 {
		errs = append(errs, fmt.Errorf("supersampling factor must be at least 1, got %d", cfg.SuperSampling))
	}
	if cfg.RecursionDepth < 0 {
		errs = append(errs, fmt.Errorf("recursion depth must be non-negative, got %d", cfg.RecursionDepth))
	}
	if s.Camera.FieldOfView <= 0 || s.Camera.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("field of view must be in (0, 180) degrees, got %g", s.Camera.FieldOfView))
	}
	if s.Camera.DOFStrength < 0 {
		errs = append(errs, fmt.Errorf("depth of field strength must be non-negative, got %g", s.Camera.DOFStrength))
	}
	if s.Camera.DOFStrength > 0 && !(s.Camera.FocalLength > 0) {
		errs = append(errs, fmt.Errorf("focal length must be positive with depth of field, got %g", s.Camera.FocalLength))
	}
	return errors.Join(errs...)
}
