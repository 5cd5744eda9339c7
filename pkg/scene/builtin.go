package scene

import (
	"fmt"
	"slices"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/geometry"
	"github.com/df07/go-raymarcher/pkg/lights"
	"github.com/df07/go-raymarcher/pkg/material"
	"github.com/df07/go-raymarcher/pkg/operations"
	"github.com/df07/go-raymarcher/pkg/sdf"
)

// builtinScene pairs a registry entry with its constructor
type builtinScene struct {
	info SceneInfo
	new  func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "mandelbulb",
			Name:        "Mandelbulb",
			Description: "Order-8 Mandelbulb lit by two point lights",
		},
		new: NewMandelbulbScene,
	},
	{
		info: SceneInfo{
			ID:          "menger",
			Name:        "Menger Sponge",
			Description: "Rotated level-4 Menger sponge over a checkered floor",
		},
		new: NewMengerScene,
	},
	{
		info: SceneInfo{
			ID:          "sierpinski",
			Name:        "Sierpinski Tetrahedron",
			Description: "Sierpinski tetrahedron with depth of field",
		},
		new: NewSierpinskiScene,
	},
	{
		info: SceneInfo{
			ID:          "shapes",
			Name:        "Shapes",
			Description: "Torus, octahedron, glass sphere and a repeated sphere field",
		},
		new: NewShapesScene,
	},
}

// Builtin returns a freshly built copy of the named built-in scene
func Builtin(id string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.new(), nil
		}
	}
	return nil, fmt.Errorf("unknown built-in scene %q (available: %v)", id, BuiltinIDs())
}

// BuiltinIDs returns the identifiers of all built-in scenes, sorted
func BuiltinIDs() []string {
	ids := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		ids = append(ids, b.info.ID)
	}
	slices.Sort(ids)
	return ids
}

// mustRayMarched builds a ray-marched object from constant parameters
func mustRayMarched(estimator sdf.Estimator, mat *material.Material, config geometry.MarchConfig, ops ...operations.Operation) *geometry.RayMarched {
	obj, err := geometry.NewRayMarched(estimator, mat, config, ops...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in object: %v", err))
	}
	return obj
}

// NewGroundQuad creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat *material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

func checkerFloor(y float64) *geometry.Quad {
	checker := material.NewChecker(core.NewColor(0.8, 0.8, 0.8), core.NewColor(0.2, 0.2, 0.25), 0.5)
	return NewGroundQuad(core.NewVec3(0, y, 0), 40, material.NewTexturedMaterial(checker, 0.2, 0.8, 0.1, 8))
}

// NewMandelbulbScene creates a close-up of an order-8 Mandelbulb
func NewMandelbulbScene() *Scene {
	s := NewScene()
	s.Camera.Eye = core.NewVec3(0, 0, 3)
	s.Camera.FieldOfView = 45
	s.SamplingConfig.RecursionDepth = 2
	s.SamplingConfig.SuperSampling = 2
	s.SamplingConfig.Shadows = true
	s.Background = core.NewColor(0.05, 0.08, 0.2)

	bulbMaterial := material.NewMaterial(core.NewColor(0.9, 0.55, 0.25), 0.2, 0.8, 0.3, 20)
	bulb := mustRayMarched(sdf.NewMandelbulb(8), bulbMaterial,
		geometry.MarchConfig{MaxSteps: 256, DistanceThreshold: 5e-4},
		operations.NewRotate(core.NewVec3(20, 30, 0)))
	s.AddObject(bulb)

	s.AddLight(lights.NewPointLight(core.NewVec3(4, 5, 6), core.NewColor(0.9, 0.9, 0.85)))
	s.AddLight(lights.NewPointLight(core.NewVec3(-5, 2, 4), core.NewColor(0.3, 0.35, 0.5)))
	return s
}

// NewMengerScene creates a rotated Menger sponge over a reflective checkered floor
func NewMengerScene() *Scene {
	s := NewScene()
	s.Camera.Eye = core.NewVec3(0, 0.5, 4)
	s.Camera.Rotation = core.NewVec3(-8, 0, 0)
	s.Camera.FieldOfView = 50
	s.SamplingConfig.RecursionDepth = 2
	s.SamplingConfig.Shadows = true
	s.Background = core.NewColor(0.6, 0.7, 0.9)

	spongeMaterial := material.NewMaterial(core.NewColor(0.3, 0.6, 0.9), 0.2, 0.7, 0.2, 16)
	sponge := mustRayMarched(sdf.NewMengerSponge(core.NewVec3(0, 0, 0), 1, 4), spongeMaterial,
		geometry.DefaultMarchConfig(),
		operations.NewRotate(core.NewVec3(30, 45, 0)))
	s.AddObject(sponge)
	s.AddObject(checkerFloor(-1.8))

	s.AddLight(lights.NewPointLight(core.NewVec3(3, 6, 5), core.NewColor(1, 1, 1)))
	return s
}

// NewSierpinskiScene creates a Sierpinski tetrahedron with a shallow depth of field
func NewSierpinskiScene() *Scene {
	s := NewScene()
	s.Camera.Eye = core.NewVec3(0, 0, 3.5)
	s.Camera.FieldOfView = 50
	s.Camera.FocalLength = 3.5
	s.Camera.DOFStrength = 0.05
	s.SamplingConfig.SuperSampling = 3
	s.SamplingConfig.Shadows = true
	s.Background = core.NewColor(0.9, 0.85, 0.75)

	tetraMaterial := material.NewMaterial(core.NewColor(0.85, 0.3, 0.35), 0.25, 0.75, 0.4, 32)
	tetra := mustRayMarched(sdf.NewSierpinskiTetrahedron(core.NewVec3(0, 0, 0), 1, 12), tetraMaterial,
		geometry.MarchConfig{MaxSteps: 200, DistanceThreshold: 1e-3},
		operations.NewRotate(core.NewVec3(-35, 45, 0)))
	s.AddObject(tetra)

	s.AddLight(lights.NewPointLight(core.NewVec3(-3, 4, 5), core.NewColor(1, 1, 1)))
	return s
}

// NewShapesScene showcases the exact estimators, the repeat operation and refraction
func NewShapesScene() *Scene {
	s := NewScene()
	s.Camera.Eye = core.NewVec3(0, 1, 6)
	s.Camera.Rotation = core.NewVec3(-10, 0, 0)
	s.Camera.FieldOfView = 55
	s.SamplingConfig.Width = 640
	s.SamplingConfig.Height = 400
	s.SamplingConfig.RecursionDepth = 4
	s.SamplingConfig.SuperSampling = 2
	s.SamplingConfig.Shadows = true
	s.Background = core.NewColor(0.7, 0.8, 1.0)

	torus := mustRayMarched(sdf.NewTorus(core.NewVec3(0, 0, 0), 0.25, 0.75),
		material.NewMaterial(core.NewColor(0.9, 0.75, 0.2), 0.2, 0.7, 0.5, 50),
		geometry.DefaultMarchConfig(),
		operations.NewTranslate(core.NewVec3(-2, 0, 0)),
		operations.NewRotate(core.NewVec3(60, 0, 20)))

	octahedron := mustRayMarched(sdf.NewOctahedron(core.NewVec3(2, 0, 0), 1),
		material.NewMaterial(core.NewColor(0.3, 0.8, 0.4), 0.2, 0.8, 0.2, 10),
		geometry.DefaultMarchConfig())

	glass := geometry.NewSphere(core.NewVec3(0, -0.1, 1.5), 0.7,
		material.NewTransparentMaterial(core.NewColor(1, 1, 1), 0.0, 0.1, 0.6, 100, 1.5))

	// Small spheres resting on the floor, one per unit cell
	field := mustRayMarched(sdf.NewSphere(core.NewVec3(0, 0, 0), 0.2),
		material.NewMaterial(core.NewColor(0.8, 0.3, 0.8), 0.2, 0.8, 0.3, 20),
		geometry.DefaultMarchConfig(),
		operations.NewTranslate(core.NewVec3(0, -0.8, 0)),
		operations.NewRepeat(core.NewVec3(1, 0, 1)))

	s.AddObject(torus)
	s.AddObject(octahedron)
	s.AddObject(glass)
	s.AddObject(field)
	s.AddObject(checkerFloor(-1))

	s.AddLight(lights.NewPointLight(core.NewVec3(-4, 6, 6), core.NewColor(0.8, 0.8, 0.8)))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 3, 2), core.NewColor(0.3, 0.3, 0.3)))
	return s
}
