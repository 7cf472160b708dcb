package vecmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec4 is a four-component vector, used for homogeneous points and colors.
type Vec4 [4]float32

func (v Vec4) X() float32 { return v[0] }
func (v Vec4) Y() float32 { return v[1] }
func (v Vec4) Z() float32 { return v[2] }
func (v Vec4) W() float32 { return v[3] }

// Vec3 drops the w component.
func (v Vec4) Vec3() Vec3 { return Vec3{v[0], v[1], v[2]} }

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (v Vec4) Neg() Vec4 { return Vec4{-v[0], -v[1], -v[2], -v[3]} }

// Mul multiplies componentwise.
func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func (v Vec4) Scale(s float32) Vec4 { return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s} }

func (a Vec4) Dot(b Vec4) float32 { return mgl32.Vec4(a).Dot(mgl32.Vec4(b)) }
func (v Vec4) LenSq() float32     { return v.Dot(v) }

// Len returns 0 when the squared length is below VecEpsilon.
func (v Vec4) Len() float32 {
	sq := v.LenSq()
	if sq < VecEpsilon {
		return 0
	}
	return math32.Sqrt(sq)
}

// Normalized returns v scaled to unit length, or v itself when its squared
// length is below VecEpsilon.
func (v Vec4) Normalized() Vec4 {
	sq := v.LenSq()
	if sq < VecEpsilon {
		return v
	}
	return v.Scale(1 / math32.Sqrt(sq))
}

func (a Vec4) Lerp(b Vec4, t float32) Vec4 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// ApproxEqual reports whether the squared distance between a and b is below
// VecEpsilon.
func (a Vec4) ApproxEqual(b Vec4) bool {
	return a.Sub(b).LenSq() < VecEpsilon
}
