package math

import (
	"errors"
	"math"
)

// ErrDegenerate is returned when a matrix builder is given parameters that
// would produce NaN or Inf entries.
var ErrDegenerate = errors.New("degenerate matrix parameters")

// epsilon bounds what is treated as zero length in builders.
const epsilon = 1e-12

// Matrix44 is a 4x4 matrix stored row-major as [row][column].
// Vectors are rows: v' = v * M, so translation lives in row 3.
type Matrix44 [4][4]float64

// Identity returns an identity matrix.
func Identity() Matrix44 {
	return Matrix44{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Zero returns a matrix with every element set to 0.
func Zero() Matrix44 {
	return Matrix44{}
}

// DegreeToRadian converts degrees to radians.
func DegreeToRadian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// RadianToDegree converts radians to degrees.
func RadianToDegree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

// Get returns the element at row, column.
func (m Matrix44) Get(row, column int) float64 {
	return m[row][column]
}

// Set sets the element at row, column.
func (m *Matrix44) Set(row, column int, value float64) {
	m[row][column] = value
}

// Mul returns m * other.
func (m Matrix44) Mul(other Matrix44) Matrix44 {
	var result Matrix44
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = m[row][0]*other[0][col] +
				m[row][1]*other[1][col] +
				m[row][2]*other[2][col] +
				m[row][3]*other[3][col]
		}
	}
	return result
}

// Transpose returns the transposed matrix.
func (m Matrix44) Transpose() Matrix44 {
	var result Matrix44
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[col][row] = m[row][col]
		}
	}
	return result
}

// RotationOnly returns the upper-left 3x3 block with translation and
// projective terms cleared.
func (m Matrix44) RotationOnly() Matrix44 {
	result := m
	result[0][3], result[1][3], result[2][3] = 0, 0, 0
	result[3] = [4]float64{0, 0, 0, 1}
	return result
}

// Row returns row i as a direction vector.
func (m Matrix44) Row(i int) Vector4 {
	return Vector4{m[i][0], m[i][1], m[i][2], 0}
}

// SetRow writes the xyz of v into row i.
func (m *Matrix44) SetRow(i int, v Vector4) {
	m[i][0], m[i][1], m[i][2] = v.X, v.Y, v.Z
}

// NewTranslate returns a translation matrix.
func NewTranslate(x, y, z float64) Matrix44 {
	return Matrix44{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{x, y, z, 1},
	}
}

// NewScale returns a scale matrix.
func NewScale(x, y, z float64) Matrix44 {
	return Matrix44{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

// NewRotateX returns a rotation around the X axis. degree is in degrees.
func NewRotateX(degree float64) Matrix44 {
	s, c := math.Sincos(DegreeToRadian(degree))
	return Matrix44{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// NewRotateY returns a rotation around the Y axis. degree is in degrees.
func NewRotateY(degree float64) Matrix44 {
	s, c := math.Sincos(DegreeToRadian(degree))
	return Matrix44{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// NewRotateZ returns a rotation around the Z axis. degree is in degrees.
func NewRotateZ(degree float64) Matrix44 {
	s, c := math.Sincos(DegreeToRadian(degree))
	return Matrix44{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// apply overwrites m with b when overwrite is set, otherwise accumulates m = m * b.
func (m *Matrix44) apply(b Matrix44, overwrite bool) {
	if overwrite {
		*m = b
		return
	}
	*m = m.Mul(b)
}

// Translate replaces m with (overwrite) or post-multiplies m by a translation.
func (m *Matrix44) Translate(x, y, z float64, overwrite bool) {
	m.apply(NewTranslate(x, y, z), overwrite)
}

// Scale replaces m with (overwrite) or post-multiplies m by a scale.
func (m *Matrix44) Scale(x, y, z float64, overwrite bool) {
	m.apply(NewScale(x, y, z), overwrite)
}

// RotateX replaces m with (overwrite) or post-multiplies m by an X rotation in degrees.
func (m *Matrix44) RotateX(degree float64, overwrite bool) {
	m.apply(NewRotateX(degree), overwrite)
}

// RotateY replaces m with (overwrite) or post-multiplies m by a Y rotation in degrees.
func (m *Matrix44) RotateY(degree float64, overwrite bool) {
	m.apply(NewRotateY(degree), overwrite)
}

// RotateZ replaces m with (overwrite) or post-multiplies m by a Z rotation in degrees.
func (m *Matrix44) RotateZ(degree float64, overwrite bool) {
	m.apply(NewRotateZ(degree), overwrite)
}

// LookAt builds a view matrix from eye toward target.
// z = normalize(target-eye), x = normalize(up × z), y = z × x.
// On error m is left untouched.
func (m *Matrix44) LookAt(eye, target, up Vector4) error {
	forward := target.Sub(eye)
	if forward.Length() < epsilon {
		return ErrDegenerate
	}
	z := forward.Normalize()
	side := up.Cross(z)
	if side.Length() < epsilon {
		return ErrDegenerate
	}
	x := side.Normalize()
	y := z.Cross(x)

	*m = Matrix44{
		{x.X, y.X, z.X, 0},
		{x.Y, y.Y, z.Y, 0},
		{x.Z, y.Z, z.Z, 0},
		{-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1},
	}
	return nil
}

// Perspective builds a projection matrix. fovY is in radians, aspect is
// width/height. Depth maps near..far to 0..1. On error m is left untouched.
func (m *Matrix44) Perspective(fovY, aspect, near, far float64) error {
	if fovY <= 0 || fovY >= math.Pi || aspect <= 0 || math.Abs(far-near) < epsilon {
		return ErrDegenerate
	}
	cot := 1.0 / math.Tan(fovY/2.0)
	depth := far / (far - near)

	*m = Matrix44{
		{cot / aspect, 0, 0, 0},
		{0, cot, 0, 0},
		{0, 0, depth, 1},
		{0, 0, -near * depth, 0},
	}
	return nil
}

// Viewport overwrites m with a mapping from normalized device coordinates to
// screen pixels (origin top-left, y down).
func (m *Matrix44) Viewport(width, height float64) {
	w := width * 0.5
	h := height * 0.5
	*m = Matrix44{
		{w, 0, 0, 0},
		{0, -h, 0, 0},
		{0, 0, 1, 0},
		{w, h, 0, 1},
	}
}

// Float32 returns the matrix flattened row by row, which is the column-major
// layout GL expects for the transposed (column-vector) form.
func (m Matrix44) Float32() [16]float32 {
	var out [16]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = float32(m[row][col])
		}
	}
	return out
}
