package core

import "math"

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Color is an RGB triple stored in a Vec3 (X=R, Y=G, Z=B)
type Color = Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewColor creates a color from red, green and blue components
func NewColor(r, g, b float64) Color {
	return Vec3{X: r, Y: g, Z: b}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	inv := 1.0 / scalar
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Abs returns the component-wise absolute value
func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns a unit vector in the same direction.
// The zero vector has no direction; normalizing it yields NaN components.
func (v Vec3) Normalize() Vec3 {
	return v.Divide(v.Length())
}

// IsZero reports whether all components are exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Clamp returns a vector with components clamped to [min, max].
// NaN components become min.
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: clamp(v.X, minVal, maxVal),
		Y: clamp(v.Y, minVal, maxVal),
		Z: clamp(v.Z, minVal, maxVal),
	}
}

func clamp(x, minVal, maxVal float64) float64 {
	if math.IsNaN(x) {
		return minVal
	}
	return max(minVal, min(maxVal, x))
}

// Luminance returns the perceptual luminance of an RGB color
func (v Vec3) Luminance() float64 {
	return 0.299*v.X + 0.587*v.Y + 0.114*v.Z
}

// RotateForward rotates the vector by Euler angles in degrees, applying the
// X, Y and Z axis rotations in that order. Used for camera and world directions.
func (v Vec3) RotateForward(degrees Vec3) Vec3 {
	sx, cx := math.Sincos(Radians(degrees.X))
	sy, cy := math.Sincos(Radians(degrees.Y))
	sz, cz := math.Sincos(Radians(degrees.Z))

	r := Vec3{v.X, cx*v.Y - sx*v.Z, sx*v.Y + cx*v.Z}
	r = Vec3{cy*r.X + sy*r.Z, r.Y, -sy*r.X + cy*r.Z}
	return Vec3{cz*r.X - sz*r.Y, sz*r.X + cz*r.Y, r.Z}
}

// RotateInverse undoes RotateForward: inverse Z, then inverse Y, then inverse X.
// Used to bring world positions into an object's local frame.
func (v Vec3) RotateInverse(degrees Vec3) Vec3 {
	sx, cx := math.Sincos(Radians(degrees.X))
	sy, cy := math.Sincos(Radians(degrees.Y))
	sz, cz := math.Sincos(Radians(degrees.Z))

	r := Vec3{cz*v.X + sz*v.Y, -sz*v.X + cz*v.Y, v.Z}
	r = Vec3{cy*r.X - sy*r.Z, r.Y, sy*r.X + cy*r.Z}
	return Vec3{r.X, cx*r.Y + sx*r.Z, -sx*r.Y + cx*r.Z}
}

// Reflect mirrors incident about normal
func Reflect(incident, normal Vec3) Vec3 {
	return incident.Subtract(normal.Multiply(2.0 * normal.Dot(incident)))
}

// Refract bends incident through a surface with the given normal and ratio of
// refraction indices. Total internal reflection is reported by returning the
// exact zero vector; callers must check IsZero.
func Refract(incident, normal Vec3, eta float64) Vec3 {
	cosI := incident.Dot(normal)
	k := 1.0 - eta*eta*(1.0-cosI*cosI)
	if k < 0 {
		return Vec3{}
	}
	return incident.Subtract(normal.Multiply(cosI)).Multiply(eta).Subtract(normal.Multiply(math.Sqrt(k)))
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Vec2 represents a 2D vector, used for texture coordinates
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
