package vecmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"mini-gfx/internal/logging"
)

// Identity returns the identity matrix.
func Identity() Mat4 { return Mat4(mgl32.Ident4()) }

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 { return Mat4(mgl32.Translate3D(x, y, z)) }

// Scale returns an axis-aligned scale.
func Scale(x, y, z float32) Mat4 { return Mat4(mgl32.Scale3D(x, y, z)) }

// RotateX returns a counter-clockwise rotation about +X by angle radians.
func RotateX(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DX(angle)) }

// RotateY returns a counter-clockwise rotation about +Y by angle radians.
func RotateY(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DY(angle)) }

// RotateZ returns a counter-clockwise rotation about +Z by angle radians.
func RotateZ(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DZ(angle)) }

func degenerateVolume(l, r, b, t, n, f float32) bool {
	return l == r || t == b || n == f
}

// Frustum returns a perspective projection for the given clip planes.
// Zero-width, zero-height or zero-depth volumes yield the zero matrix.
func Frustum(l, r, b, t, n, f float32) Mat4 {
	if degenerateVolume(l, r, b, t, n, f) {
		logging.Logger().Warn("vecmath: invalid frustum",
			"left", l, "right", r, "bottom", b, "top", t, "near", n, "far", f)
		return Mat4{}
	}
	return Mat4(mgl32.Frustum(l, r, b, t, n, f))
}

// Perspective returns a symmetric perspective projection. fov is the
// vertical field of view in degrees.
func Perspective(fov, aspect, near, far float32) Mat4 {
	ymax := near * math32.Tan(DegToRad(fov)/2)
	xmax := ymax * aspect
	return Frustum(-xmax, xmax, -ymax, ymax, near, far)
}

// Ortho returns an orthographic projection. Degenerate volumes yield the
// zero matrix.
func Ortho(l, r, b, t, n, f float32) Mat4 {
	if degenerateVolume(l, r, b, t, n, f) {
		logging.Logger().Warn("vecmath: invalid orthographic volume",
			"left", l, "right", r, "bottom", b, "top", t, "near", n, "far", f)
		return Mat4{}
	}
	return Mat4(mgl32.Ortho(l, r, b, t, n, f))
}

// LookAt returns a right-handed view matrix looking from position towards
// target, with the camera's forward axis along -Z. When up is parallel to
// the view direction (or position equals target) there is no unique right
// axis and the zero matrix is returned.
func LookAt(position, target, up Vec3) Mat4 {
	f := target.Sub(position).Normalized().Neg()
	r := up.Cross(f)
	if r == (Vec3{}) {
		logging.Logger().Warn("vecmath: look-at with up parallel to view direction")
		return Mat4{}
	}
	r = r.Normalized()
	u := f.Cross(r).Normalized()

	t := Vec3{-r.Dot(position), -u.Dot(position), -f.Dot(position)}
	return Mat4{
		r[0], u[0], f[0], 0,
		r[1], u[1], f[1], 0,
		r[2], u[2], f[2], 0,
		t[0], t[1], t[2], 1,
	}
}
