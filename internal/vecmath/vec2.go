package vecmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is a two-component vector.
type Vec2 [2]float32

func (v Vec2) X() float32 { return v[0] }
func (v Vec2) Y() float32 { return v[1] }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a[0] + b[0], a[1] + b[1]} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a[0] - b[0], a[1] - b[1]} }
func (v Vec2) Neg() Vec2       { return Vec2{-v[0], -v[1]} }

// Mul multiplies componentwise.
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a[0] * b[0], a[1] * b[1]} }

// Div divides componentwise.
func (a Vec2) Div(b Vec2) Vec2 { return Vec2{a[0] / b[0], a[1] / b[1]} }

func (v Vec2) Scale(s float32) Vec2     { return Vec2{v[0] * s, v[1] * s} }
func (v Vec2) DivScalar(s float32) Vec2 { return Vec2{v[0] / s, v[1] / s} }

func (a Vec2) Dot(b Vec2) float32 { return mgl32.Vec2(a).Dot(mgl32.Vec2(b)) }
func (v Vec2) LenSq() float32     { return v.Dot(v) }

// Len returns 0 when the squared length is below VecEpsilon.
func (v Vec2) Len() float32 {
	sq := v.LenSq()
	if sq < VecEpsilon {
		return 0
	}
	return math32.Sqrt(sq)
}

// Normalize scales v to unit length in place. Sub-epsilon vectors are left
// untouched.
func (v *Vec2) Normalize() {
	*v = v.Normalized()
}

// Normalized returns v scaled to unit length, or v itself when its squared
// length is below VecEpsilon.
func (v Vec2) Normalized() Vec2 {
	sq := v.LenSq()
	if sq < VecEpsilon {
		return v
	}
	return v.Scale(1 / math32.Sqrt(sq))
}

// Angle returns the angle between a and b in radians, or 0 when either
// vector is too short for the angle to be defined.
func (a Vec2) Angle(b Vec2) float32 {
	l := a.Len() * b.Len()
	if l < VecEpsilon {
		return 0
	}
	return math32.Acos(clampUnit(a.Dot(b) / l))
}

// Project returns the component of a along b.
func (a Vec2) Project(b Vec2) Vec2 {
	if b.Len() < VecEpsilon {
		return Vec2{}
	}
	return b.Scale(a.Dot(b) / b.LenSq())
}

// Reject returns the component of a perpendicular to b.
func (a Vec2) Reject(b Vec2) Vec2 {
	return a.Sub(a.Project(b))
}

// Reflect mirrors a about the line perpendicular to b.
func (a Vec2) Reflect(b Vec2) Vec2 {
	if b.Len() < VecEpsilon {
		return Vec2{}
	}
	return a.Sub(a.Project(b).Scale(2))
}

func (a Vec2) Lerp(b Vec2, t float32) Vec2 {
	return Vec2{
		(1-t)*a[0] + t*b[0],
		(1-t)*a[1] + t*b[1],
	}
}

func (a Vec2) Nlerp(b Vec2, t float32) Vec2 {
	return a.Lerp(b, t).Normalized()
}

// Slerp interpolates along the arc between the directions of a and b.
// For t < 0.01 it returns Lerp(a, b, t).
func (a Vec2) Slerp(b Vec2, t float32) Vec2 {
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
func (a Vec2) ApproxEqual(b Vec2) bool {
	return a.Sub(b).LenSq() < VecEpsilon
}
