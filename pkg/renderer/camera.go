package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/scene"
)

// Camera generates primary rays for pixel sub-samples
type Camera struct {
	eye           core.Vec3
	rotation      core.Vec3
	width, height int
	superSampling int
	aspectRatio   float64
	halfHeight    float64 // tan(fov/2)
	focalLength   float64
	dofStrength   float64

	// Camera frame rotated into world space, used for the DOF aperture
	right core.Vec3
	up    core.Vec3
}

// NewCamera creates a camera for an image of the given size.
// superSampling below 1 is treated as 1.
func NewCamera(config scene.CameraConfig, width, height, superSampling int) *Camera {
	superSampling = max(1, superSampling)
	return &Camera{
		eye:           config.Eye,
		rotation:      config.Rotation,
		width:         width,
		height:        height,
		superSampling: superSampling,
		aspectRatio:   float64(width) / float64(height),
		halfHeight:    math.Tan(core.Radians(config.FieldOfView) / 2),
		focalLength:   config.FocalLength,
		dofStrength:   config.DOFStrength,
		right:         core.NewVec3(1, 0, 0).RotateForward(config.Rotation),
		up:            core.NewVec3(0, 1, 0).RotateForward(config.Rotation),
	}
}

// Forward returns the world-space viewing direction
func (c *Camera) Forward() core.Vec3 {
	return core.NewVec3(0, 0, -1).RotateForward(c.rotation)
}

// Ray returns the primary ray through sub-sample (i, j) of pixel (x, y).
// Pixel (0, 0) is the top-left corner. The random source is only consumed
// when depth of field is enabled.
func (c *Camera) Ray(x, y, i, j int, random *rand.Rand) core.Ray {
	f := float64(c.superSampling)
	u := (float64(x) + (float64(i)+0.5)/f) / float64(c.width)
	v := (float64(y) + (float64(j)+0.5)/f) / float64(c.height)

	px := (2*u - 1) * c.aspectRatio * c.halfHeight
	py := (1 - 2*v) * c.halfHeight
	direction := core.NewVec3(px, py, -1).RotateForward(c.rotation).Normalize()

	if c.dofStrength <= 0 {
		return core.NewRay(c.eye, direction)
	}

	// Jitter the origin on the aperture and re-aim at the focal point
	focalPoint := c.eye.Add(direction.Multiply(c.focalLength))
	disk := core.RandomInUnitDisk(random).Multiply(c.dofStrength)
	origin := c.eye.Add(c.right.Multiply(disk.X)).Add(c.up.Multiply(disk.Y))
	return core.NewRay(origin, focalPoint.Subtract(origin).Normalize())
}
