package vecmath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMat4(t *testing.T, want, got Mat4, eps float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], float64(eps), "element %d: want %v, got %v", i, want, got)
	}
}

var sampleMatrices = []Mat4{
	Translate(3, -2, 7).Mul(RotateY(0.7)).Mul(Scale(2, 3, 0.5)),
	RotateX(1.1).Mul(RotateZ(-0.4)),
	{2, 0, 1, 0, 1, 3, 0, 0, 0, 1, 4, 0, 1, 2, 3, 1},
	Perspective(60, 4.0/3.0, 0.1, 100),
	LookAt(Vec3{1, 2, 10}, Vec3{0, 0, 0}, Vec3{0, 1, 0}),
}

func TestIdentityTimesVector(t *testing.T) {
	for _, v := range []Vec4{{1, 2, 3, 4}, {-7.5, 0, 0.25, 1}, {}} {
		assert.Equal(t, v, Identity().MulVec4(v))
	}
}

func TestAddAndScalar(t *testing.T) {
	sum := Identity().Add(Identity())
	assert.Equal(t, Identity().MulScalar(2), sum)
	assert.Equal(t, float32(2), sum.At(3, 3))
}

func TestMulComposesRightToLeft(t *testing.T) {
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	assertVec3(t, Vec3{12, 2, 2}, m.TransformPoint(Vec3{1, 1, 1}))
	assertVec3(t, Vec3{2, 2, 2}, m.TransformVector(Vec3{1, 1, 1}))

	w := float32(1)
	p := Perspective(90, 1, 1, 10).TransformPointW(Vec3{0, 0, -5}, &w)
	assert.InDelta(t, 5, w, delta)
	assert.InDelta(t, 5*(-11.0/-9.0)-20.0/9.0, p.Z(), 1e-4)
}

func TestRotationsAreCounterClockwise(t *testing.T) {
	half := math32.Pi / 2
	assertVec3(t, Vec3{0, 1, 0}, RotateZ(half).TransformVector(Vec3{1, 0, 0}))
	assertVec3(t, Vec3{0, 0, 1}, RotateX(half).TransformVector(Vec3{0, 1, 0}))
	assertVec3(t, Vec3{1, 0, 0}, RotateY(half).TransformVector(Vec3{0, 0, 1}))
}

func TestTranspose(t *testing.T) {
	m := Mat4{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	tr := m.Transposed()
	assert.Equal(t, float32(4), tr[1])
	assert.Equal(t, m.At(2, 1), tr.At(1, 2))
	assert.Equal(t, m, tr.Transposed())

	m.Transpose()
	assert.Equal(t, tr, m)
}

func TestDeterminantMatchesReference(t *testing.T) {
	for i, m := range sampleMatrices {
		want := mgl32.Mat4(m).Det()
		assert.InDelta(t, want, m.Determinant(), 1e-3*float64(math32.Abs(want)+1), "matrix %d", i)
	}
	assert.InDelta(t, 24, Scale(2, 3, 4).Determinant(), delta)
}

func TestInverseTimesMatrixIsIdentity(t *testing.T) {
	for i, m := range sampleMatrices {
		inv := m.Inverse()
		require.False(t, inv.IsZero(), "matrix %d", i)
		assertMat4(t, Identity(), inv.Mul(m), 1e-4)
		assertMat4(t, Mat4(mgl32.Mat4(m).Inv()), inv, 1e-3)
	}
	assert.True(t, Translate(1, 2, 3).Inverse().ApproxEqual(Translate(-1, -2, -3)))
}

func TestInverseOfSingularIsZero(t *testing.T) {
	assert.True(t, Mat4{}.Inverse().IsZero())
	rankDeficient := Mat4{1, 2, 3, 4, 2, 4, 6, 8, 0, 0, 1, 0, 0, 0, 0, 1}
	assert.Equal(t, Mat4{}, rankDeficient.Inverse())

	m := rankDeficient
	m.Invert()
	assert.Equal(t, rankDeficient, m, "Invert leaves a singular matrix untouched")
}

func TestInvertInPlace(t *testing.T) {
	m := RotateZ(0.3).Mul(Translate(4, 5, 6))
	orig := m
	m.Invert()
	assertMat4(t, Identity(), m.Mul(orig), 1e-4)
}

func TestAdjugateOfIdentity(t *testing.T) {
	assert.Equal(t, Identity(), Identity().Adjugate())
}

func TestApproxEqualUsesMatEpsilon(t *testing.T) {
	a := Identity()
	b := a
	b[5] += MatEpsilon / 2
	assert.True(t, a.ApproxEqual(b))
	b[5] += MatEpsilon * 4
	assert.False(t, a.ApproxEqual(b))
}

func TestProjectionsMatchReference(t *testing.T) {
	assertMat4(t, Mat4(mgl32.Perspective(mgl32.DegToRad(60), 1.5, 0.01, 100)), Perspective(60, 1.5, 0.01, 100), 1e-4)
	assertMat4(t, Mat4(mgl32.Ortho(-400, 400, -300, 300, 0, 100)), Ortho(-400, 400, -300, 300, 0, 100), 1e-6)
	assertMat4(t, Mat4(mgl32.Frustum(-1, 2, -3, 4, 1, 50)), Frustum(-1, 2, -3, 4, 1, 50), 1e-6)
}

func TestDegenerateProjectionsAreZero(t *testing.T) {
	cases := map[string]Mat4{
		"ortho zero width":    Ortho(5, 5, -1, 1, 0, 1),
		"ortho zero height":   Ortho(-1, 1, 2, 2, 0, 1),
		"ortho zero depth":    Ortho(-1, 1, -1, 1, 3, 3),
		"frustum zero width":  Frustum(0, 0, -1, 1, 0.1, 10),
		"frustum zero depth":  Frustum(-1, 1, -1, 1, 1, 1),
		"perspective aspect0": Perspective(60, 0, 0.1, 10),
	}
	for name, m := range cases {
		assert.True(t, m.IsZero(), name)
	}
}

func TestLookAt(t *testing.T) {
	eye, target, up := Vec3{0, 0, 10}, Vec3{0, 0, 0}, Vec3{0, 1, 0}
	view := LookAt(eye, target, up)
	assertMat4(t, Translate(0, 0, -10), view, 1e-6)

	eye = Vec3{3, 4, -2}
	target = Vec3{-1, 0.5, 7}
	assertMat4(t, Mat4(mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(target), mgl32.Vec3(up))), LookAt(eye, target, up), 1e-5)

	// the target ends up straight ahead on -Z
	p := LookAt(eye, target, up).TransformPoint(target)
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.Less(t, p.Z(), float32(0))
}

func TestLookAtParallelUpIsZero(t *testing.T) {
	m := LookAt(Vec3{0, 0, 0}, Vec3{0, 5, 0}, Vec3{0, 1, 0})
	assert.True(t, m.IsZero())
	for _, e := range m {
		assert.False(t, math32.IsNaN(e))
	}
	assert.True(t, LookAt(Vec3{1, 1, 1}, Vec3{1, 1, 1}, Vec3{0, 1, 0}).IsZero())
}
