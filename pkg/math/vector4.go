// Package math provides the vector and matrix types used by the scene core.
package math

import "math"

// Vector4 is a homogeneous 3D vector. W is 1 for points and 0 for directions.
type Vector4 struct {
	X, Y, Z, W float64
}

// NewVector4 returns a point (W = 1).
func NewVector4(x, y, z float64) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: 1}
}

// NewDirection returns a direction (W = 0), unaffected by translation.
func NewDirection(x, y, z float64) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: 0}
}

// Add returns v + other. W is kept from v.
func (v Vector4) Add(other Vector4) Vector4 {
	return Vector4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W}
}

// Sub returns v - other. W is kept from v.
func (v Vector4) Sub(other Vector4) Vector4 {
	return Vector4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W}
}

// Scale returns v * s.
func (v Vector4) Scale(s float64) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W}
}

// Div returns v / s. Division by zero returns v unchanged.
func (v Vector4) Div(s float64) Vector4 {
	if s == 0 {
		return v
	}
	return Vector4{v.X / s, v.Y / s, v.Z / s, v.W}
}

// Dot returns the 3D dot product.
func (v Vector4) Dot(other Vector4) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the 3D cross product as a direction.
func (v Vector4) Cross(other Vector4) Vector4 {
	return Vector4{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
		0,
	}
}

// LengthSquared returns the squared 3D magnitude.
func (v Vector4) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the 3D magnitude.
func (v Vector4) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector. A zero-length vector is returned unchanged.
func (v Vector4) Normalize() Vector4 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector4{v.X / l, v.Y / l, v.Z / l, v.W}
}

// Distance returns the distance to another point.
func (v Vector4) Distance(other Vector4) float64 {
	return v.Sub(other).Length()
}

// Transform returns v * m using the row-vector convention, W included.
func (v Vector4) Transform(m Matrix44) Vector4 {
	return Vector4{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		W: v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

// XZ returns the ground-plane components as Vec2.
func (v Vector4) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

// IsZero reports whether all three spatial components are zero.
func (v Vector4) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Move adds the given deltas in place.
func (v *Vector4) Move(dx, dy, dz float64) {
	v.X += dx
	v.Y += dy
	v.Z += dz
}

// AddInPlace adds other to v in place.
func (v *Vector4) AddInPlace(other Vector4) {
	v.Move(other.X, other.Y, other.Z)
}

// NormalizeInPlace normalizes v. No-op on a zero-length vector.
func (v *Vector4) NormalizeInPlace() {
	l := v.Length()
	if l > 0 {
		v.X /= l
		v.Y /= l
		v.Z /= l
	}
}
