package math3d

import "math"

// Mat4 is a 4x4 matrix stored row-major: m[row][col]. Applied to column
// vectors as M·v, so in a product A.Mul(B) the matrix B acts first.
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix. It moves positions (w=1) and
// leaves directions (w=0) unchanged.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Mat4{
		{s, 0, 0, 0},
		{0, s, 0, 0},
		{0, 0, s, 0},
		{0, 0, 0, 1},
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// Compose folds the given matrices into a single one equivalent to
// applying them right to left: Compose(A, B, C) applied to v computes
// A·(B·(C·v)).
func Compose(ms ...Mat4) Mat4 {
	m := Identity()
	for _, x := range ms {
		m = m.Mul(x)
	}
	return m
}

// MulVec4 transforms a homogeneous coordinate.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulPoint transforms a Vec3 as a position (w=1).
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).Canonical().Vec3()
}

// MulDir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.MulVec4(Dir(v)).Vec3()
}

// Transpose returns the transposed matrix. For a pure rotation this is
// its inverse.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[row][col] = m[col][row]
		}
	}
	return t
}
