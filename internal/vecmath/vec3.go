package vecmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a three-component vector.
type Vec3 [3]float32

func (v Vec3) X() float32 { return v[0] }
func (v Vec3) Y() float32 { return v[1] }
func (v Vec3) Z() float32 { return v[2] }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (v Vec3) Neg() Vec3       { return Vec3{-v[0], -v[1], -v[2]} }

// Mul multiplies componentwise.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]} }

// Div divides componentwise.
func (a Vec3) Div(b Vec3) Vec3 { return Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]} }

func (v Vec3) Scale(s float32) Vec3     { return Vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v Vec3) DivScalar(s float32) Vec3 { return Vec3{v[0] / s, v[1] / s, v[2] / s} }

func (a Vec3) Dot(b Vec3) float32 { return mgl32.Vec3(a).Dot(mgl32.Vec3(b)) }
func (v Vec3) LenSq() float32     { return v.Dot(v) }

// Cross returns the right-handed cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 { return Vec3(mgl32.Vec3(a).Cross(mgl32.Vec3(b))) }

// Len returns 0 when the squared length is below VecEpsilon.
func (v Vec3) Len() float32 {
	sq := v.LenSq()
	if sq < VecEpsilon {
		return 0
	}
	return math32.Sqrt(sq)
}

// Normalize scales v to unit length in place. Sub-epsilon vectors are left
// untouched.
func (v *Vec3) Normalize() {
	*v = v.Normalized()
}

// Normalized returns v scaled to unit length, or v itself when its squared
// length is below VecEpsilon.
func (v Vec3) Normalized() Vec3 {
	sq := v.LenSq()
	if sq < VecEpsilon {
		return v
	}
	return v.Scale(1 / math32.Sqrt(sq))
}

// Angle returns the angle between a and b in radians, or 0 when either
// vector is too short for the angle to be defined.
func (a Vec3) Angle(b Vec3) float32 {
	l := a.Len() * b.Len()
	if l < VecEpsilon {
		return 0
	}
	return math32.Acos(clampUnit(a.Dot(b) / l))
}

// Project returns the component of a along b.
func (a Vec3) Project(b Vec3) Vec3 {
	if b.Len() < VecEpsilon {
		return Vec3{}
	}
	return b.Scale(a.Dot(b) / b.LenSq())
}

// Reject returns the component of a perpendicular to b.
func (a Vec3) Reject(b Vec3) Vec3 {
	return a.Sub(a.Project(b))
}

// Reflect mirrors a about the plane whose normal is b.
func (a Vec3) Reflect(b Vec3) Vec3 {
	if b.Len() < VecEpsilon {
		return Vec3{}
	}
	return a.Sub(a.Project(b).Scale(2))
}

func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		(1-t)*a[0] + t*b[0],
		(1-t)*a[1] + t*b[1],
		(1-t)*a[2] + t*b[2],
	}
}

func (a Vec3) Nlerp(b Vec3, t float32) Vec3 {
	return a.Lerp(b, t).Normalized()
}

// Slerp interpolates along the great arc between the directions of a and b.
// For t < 0.01 it returns Lerp(a, b, t); for parallel or opposite
// directions, where the arc is undefined, it returns Nlerp.
func (a Vec3) Slerp(b Vec3, t float32) Vec3 {
	if t < slerpLinearBelow {
		return a.Lerp(b, t)
	}
	from, to := a.Normalized(), b.Normalized()
	theta := from.Angle(to)
	sinTheta := math32.Sin(theta)
	if math32.Abs(sinTheta) < VecEpsilon {
		return from.Nlerp(to, t)
	}
	s := math32.Sin((1-t)*theta) / sinTheta
	e := math32.Sin(t*theta) / sinTheta
	return from.Scale(s).Add(to.Scale(e))
}

// ApproxEqual reports whether the squared distance between a and b is below
// VecEpsilon.
func (a Vec3) ApproxEqual(b Vec3) bool {
	return a.Sub(b).LenSq() < VecEpsilon
}

// Vec4 extends v with the given w.
func (v Vec3) Vec4(w float32) Vec4 { return Vec4{v[0], v[1], v[2], w} }
