// package common contains common types that are used throughout this library. They are not interface-wrapped structs, just plain
// value types that express commonly used data-types.
package common

import "math"

// Vec2 is a 2D float32 vector. Used for pointer deltas, wheel deltas, and per-axis sensitivities.
type Vec2 struct {
	X, Y float32
}

// V2 creates a new Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Splat2 creates a Vec2 with both components set to s.
func Splat2(s float32) Vec2 {
	return Vec2{X: s, Y: s}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float32) Vec2 {
	return Vec2{X: a.X * s, Y: a.Y * s}
}

// MulEach returns the component-wise product a * b.
func (a Vec2) MulEach(b Vec2) Vec2 {
	return Vec2{X: a.X * b.X, Y: a.Y * b.Y}
}

// LengthSquared returns the squared length of the vector.
func (a Vec2) LengthSquared() float32 {
	return a.X*a.X + a.Y*a.Y
}

// IsZero reports whether both components are exactly zero.
func (a Vec2) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// Vec3 is a 3D float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 creates a new Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// UnitX returns the +X unit vector.
func UnitX() Vec3 { return Vec3{X: 1} }

// UnitY returns the +Y unit vector (world up).
func UnitY() Vec3 { return Vec3{Y: 1} }

// UnitZ returns the +Z unit vector (the forward axis used by the look-angle decomposition).
func UnitZ() Vec3 { return Vec3{Z: 1} }

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{X: -a.X, Y: -a.Y, Z: -a.Z}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the length (magnitude) of the vector.
func (a Vec3) Length() float32 {
	return float32(math.Sqrt(float64(a.LengthSquared())))
}

// LengthSquared returns the squared length (no sqrt).
func (a Vec3) LengthSquared() float32 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction and true, or the
// zero vector and false when the input length is too small to normalize.
func (a Vec3) Normalize() (Vec3, bool) {
	l := a.Length()
	if l < 1e-8 {
		return Vec3{}, false
	}
	inv := 1.0 / l
	return Vec3{X: a.X * inv, Y: a.Y * inv, Z: a.Z * inv}, true
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// AngleBetween returns the unsigned angle in radians between a and b.
// Returns 0 when either vector has near-zero length.
func (a Vec3) AngleBetween(b Vec3) float32 {
	la := a.Length()
	lb := b.Length()
	if la < 1e-8 || lb < 1e-8 {
		return 0
	}
	cos := float64(a.Dot(b) / (la * lb))
	// Guard acos against float error outside [-1, 1].
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return float32(math.Acos(cos))
}

// IsZero reports whether all components are exactly zero.
func (a Vec3) IsZero() bool {
	return a.X == 0 && a.Y == 0 && a.Z == 0
}
