package renderer

import (
	"math"

	"github.com/df07/go-raymarcher/pkg/core"
	"github.com/df07/go-raymarcher/pkg/material"
	"github.com/df07/go-raymarcher/pkg/scene"
)

// Raytracer resolves ray colors with the recursive Whitted/Phong model.
// It only reads the scene, so one instance can be shared by all workers.
type Raytracer struct {
	scene   *scene.Scene
	forward core.Vec3 // Camera viewing direction, for the background gradient
	fov     float64   // Field of view in radians
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene) *Raytracer {
	return &Raytracer{
		scene:   s,
		forward: core.NewVec3(0, 0, -1).RotateForward(s.Camera.Rotation),
		fov:     core.Radians(s.Camera.FieldOfView),
	}
}

// Trace returns the color seen along a ray with depth levels of reflection
// and refraction remaining. Primary rays are traced with the scene's
// recursion depth.
func (rt *Raytracer) Trace(ray core.Ray, depth int) core.Color {
	obj, hit := rt.scene.CastRay(ray)
	if obj == nil {
		return rt.background(ray, depth)
	}

	mat := obj.Material()
	point := ray.At(hit.T)
	view := ray.Direction.Negate()

	// Phong needs the normal on the viewer's side of open surfaces
	normal := hit.Normal
	shadingNormal := normal
	if normal.Dot(view) < 0 {
		shadingNormal = normal.Negate()
	}

	color := rt.localIllumination(mat, mat.ColorAt(hit.UV, point), point, shadingNormal, view)
	if depth <= 0 {
		return color
	}

	bias := rt.scene.SamplingConfig.Bias
	switch {
	case mat.Transparent:
		reflectColor := rt.reflection(point, shadingNormal, view, depth)

		var ni, nt, cosTheta float64
		if incidence := normal.Dot(view.Negate()); incidence >= 0 {
			// Leaving the object
			ni, nt, cosTheta = mat.Nt, 1.0, incidence
		} else {
			ni, nt, cosTheta = 1.0, mat.Nt, -incidence
		}

		refractDir := core.Refract(view.Negate(), shadingNormal, ni/nt)
		if refractDir.IsZero() {
			// Total internal reflection
			return color.Add(reflectColor)
		}

		refractRay := core.NewRay(point.Subtract(shadingNormal.Multiply(bias)), refractDir)
		refractColor := rt.Trace(refractRay, depth-1)

		kr := schlick(ni, nt, cosTheta)
		color = color.Add(reflectColor.Multiply(kr)).Add(refractColor.Multiply(1 - kr))

	case mat.Ks > 0:
		color = color.Add(rt.reflection(point, shadingNormal, view, depth).Multiply(mat.Ks))
	}

	return color
}

// localIllumination evaluates ambient once plus diffuse and specular per visible light
func (rt *Raytracer) localIllumination(mat *material.Material, matColor core.Color, point, normal, view core.Vec3) core.Color {
	color := matColor.Multiply(mat.Ka)

	for _, light := range rt.scene.Lights {
		toLight, distance := light.DirectionFrom(point)

		if rt.scene.SamplingConfig.Shadows && rt.occluded(point, normal, toLight, distance) {
			continue
		}

		cosine := normal.Dot(toLight)
		diffuse := max(cosine, 0)
		color = color.Add(light.Color.MultiplyVec(matColor).Multiply(diffuse * mat.Kd))

		if cosine > 0 {
			reflectDir := core.Reflect(toLight.Negate(), normal)
			specular := math.Pow(max(reflectDir.Dot(view), 0), mat.N)
			color = color.Add(light.Color.Multiply(specular * mat.Ks))
		}
	}

	return color
}

// occluded reports whether an object lies strictly between the point and the light
func (rt *Raytracer) occluded(point, normal, toLight core.Vec3, distance float64) bool {
	shadowRay := core.NewRay(point.Add(normal.Multiply(rt.scene.SamplingConfig.Bias)), toLight)
	obj, hit := rt.scene.CastRay(shadowRay)
	return obj != nil && hit.T < distance
}

// reflection traces the mirror ray off the viewer side of the surface
func (rt *Raytracer) reflection(point, normal, view core.Vec3, depth int) core.Color {
	reflectDir := core.Reflect(view.Negate(), normal)
	reflectRay := core.NewRay(point.Add(normal.Multiply(rt.scene.SamplingConfig.Bias)), reflectDir)
	return rt.Trace(reflectRay, depth-1)
}

// schlick approximates the Fresnel reflectance between media ni and nt
func schlick(ni, nt, cosTheta float64) float64 {
	r0 := (ni - nt) / (ni + nt)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

// background returns the vignette gradient for primary rays and the flat
// background color for everything else
func (rt *Raytracer) background(ray core.Ray, depth int) core.Color {
	bg := rt.scene.Background
	if depth != rt.scene.SamplingConfig.RecursionDepth {
		return bg
	}

	dir := ray.Direction
	horizontal := rt.falloff(projectedAngle(dir.X, dir.Z, rt.forward.X, rt.forward.Z))
	vertical := rt.falloff(projectedAngle(dir.Y, dir.Z, rt.forward.Y, rt.forward.Z))
	return bg.Multiply((horizontal + vertical) / 2)
}

// falloff maps an angle from the viewing direction to a gradient factor.
// A negative angle marks a degenerate projection.
func (rt *Raytracer) falloff(angle float64) float64 {
	if angle < 0 {
		return 0
	}
	return max(0, 1-angle/rt.fov)
}

// projectedAngle returns the angle between the 2D vectors (a1, b1) and
// (a2, b2), or -1 when either has zero length
func projectedAngle(a1, b1, a2, b2 float64) float64 {
	l1 := math.Hypot(a1, b1)
	l2 := math.Hypot(a2, b2)
	if l1 == 0 || l2 == 0 {
		return -1
	}
	cosine := (a1*a2 + b1*b2) / (l1 * l2)
	return math.Acos(max(-1, min(1, cosine)))
}
