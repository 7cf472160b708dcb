package vecmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"mini-gfx/internal/logging"
)

// Mat4 is a 4x4 matrix stored column-major: element (row r, column c) lives
// at index c*4+r. Vectors are treated as columns, so M.MulVec4(v) applies M
// to v and A.Mul(B) applies B first.
type Mat4 [16]float32

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 { return m[c*4+r] }

// Col returns column c.
func (m Mat4) Col(c int) Vec4 { return Vec4{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]} }

func (a Mat4) Add(b Mat4) Mat4 { return Mat4(mgl32.Mat4(a).Add(mgl32.Mat4(b))) }

// MulScalar scales every element by f.
func (m Mat4) MulScalar(f float32) Mat4 { return Mat4(mgl32.Mat4(m).Mul(f)) }

// Mul returns the product a·b.
func (a Mat4) Mul(b Mat4) Mat4 { return Mat4(mgl32.Mat4(a).Mul4(mgl32.Mat4(b))) }

// MulVec4 returns m·v.
func (m Mat4) MulVec4(v Vec4) Vec4 { return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v))) }

// TransformVector applies m to a direction (w = 0).
func (m Mat4) TransformVector(v Vec3) Vec3 { return m.MulVec4(v.Vec4(0)).Vec3() }

// TransformPoint applies m to a position (w = 1) without the perspective
// divide.
func (m Mat4) TransformPoint(v Vec3) Vec3 { return m.MulVec4(v.Vec4(1)).Vec3() }

// TransformPointW applies m to (v, *w) and stores the resulting w back.
func (m Mat4) TransformPointW(v Vec3, w *float32) Vec3 {
	r := m.MulVec4(v.Vec4(*w))
	*w = r[3]
	return r.Vec3()
}

// Transpose transposes m in place.
func (m *Mat4) Transpose() {
	*m = m.Transposed()
}

func (m Mat4) Transposed() Mat4 { return Mat4(mgl32.Mat4(m).Transpose()) }

// minor3 is the determinant of the 3x3 submatrix picked by columns c0..c2
// and rows r0..r2.
func (m *Mat4) minor3(c0, c1, c2, r0, r1, r2 int) float32 {
	e := func(c, r int) float32 { return m[c*4+r] }
	return e(c0, r0)*(e(c1, r1)*e(c2, r2)-e(c1, r2)*e(c2, r1)) -
		e(c1, r0)*(e(c0, r1)*e(c2, r2)-e(c0, r2)*e(c2, r1)) +
		e(c2, r0)*(e(c0, r1)*e(c1, r2)-e(c0, r2)*e(c1, r1))
}

// Determinant is the cofactor expansion over m[0], m[4], m[8], m[12] using
// 3x3 minors.
func (m Mat4) Determinant() float32 {
	return m[0]*m.minor3(1, 2, 3, 1, 2, 3) -
		m[4]*m.minor3(0, 2, 3, 1, 2, 3) +
		m[8]*m.minor3(0, 1, 3, 1, 2, 3) -
		m[12]*m.minor3(0, 1, 2, 1, 2, 3)
}

// Adjugate returns the transposed cofactor matrix.
func (m Mat4) Adjugate() Mat4 {
	var cof Mat4
	cof[0] = m.minor3(1, 2, 3, 1, 2, 3)
	cof[1] = -m.minor3(1, 2, 3, 0, 2, 3)
	cof[2] = m.minor3(1, 2, 3, 0, 1, 3)
	cof[3] = -m.minor3(1, 2, 3, 0, 1, 2)

	cof[4] = -m.minor3(0, 2, 3, 1, 2, 3)
	cof[5] = m.minor3(0, 2, 3, 0, 2, 3)
	cof[6] = -m.minor3(0, 2, 3, 0, 1, 3)
	cof[7] = m.minor3(0, 2, 3, 0, 1, 2)

	cof[8] = m.minor3(0, 1, 3, 1, 2, 3)
	cof[9] = -m.minor3(0, 1, 3, 0, 2, 3)
	cof[10] = m.minor3(0, 1, 3, 0, 1, 3)
	cof[11] = -m.minor3(0, 1, 3, 0, 1, 2)

	cof[12] = -m.minor3(0, 1, 2, 1, 2, 3)
	cof[13] = m.minor3(0, 1, 2, 0, 2, 3)
	cof[14] = -m.minor3(0, 1, 2, 0, 1, 3)
	cof[15] = m.minor3(0, 1, 2, 0, 1, 2)

	return cof.Transposed()
}

// Inverse returns adj(m)/det(m). A matrix with a determinant of exactly zero
// has no inverse; Inverse logs a warning and returns the zero matrix.
func (m Mat4) Inverse() Mat4 {
	det := m.Determinant()
	if det == 0 {
		logging.Logger().Warn("vecmath: inverting a matrix with a zero determinant")
		return Mat4{}
	}
	return m.Adjugate().MulScalar(1 / det)
}

// Invert inverts m in place. A singular m is left unchanged.
func (m *Mat4) Invert() {
	det := m.Determinant()
	if det == 0 {
		logging.Logger().Warn("vecmath: inverting a matrix with a zero determinant")
		return
	}
	*m = m.Adjugate().MulScalar(1 / det)
}

// ApproxEqual compares a and b element by element within MatEpsilon.
func (a Mat4) ApproxEqual(b Mat4) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > MatEpsilon {
			return false
		}
	}
	return true
}

// IsZero reports whether m is the zero matrix, the sentinel returned by
// degenerate constructors and singular inversions.
func (m Mat4) IsZero() bool { return m == Mat4{} }
