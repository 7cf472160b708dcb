// Package vecmath is the float32 linear-algebra kernel used to build
// transforms for the renderer.
//
// Vectors and matrices are plain arrays with value semantics. They share
// their memory layout with the mgl32 types of github.com/go-gl/mathgl, so a
// Mat4 converts to mgl32.Mat4 (and to a GL uniform upload) without copying.
// Matrices are column-major.
//
// Quantities whose squared length or determinant would make a division
// unstable are detected against fixed tolerances and produce documented
// sentinels (unchanged input, zero vector, zero matrix) instead of NaNs.
package vecmath

import "github.com/chewxy/math32"

const (
	// VecEpsilon bounds squared lengths treated as zero and vector equality.
	VecEpsilon float32 = 0.000001
	// MatEpsilon bounds per-element matrix equality.
	MatEpsilon float32 = 0.000001

	// slerpLinearBelow is the interpolation parameter below which Slerp
	// degrades to Lerp.
	slerpLinearBelow float32 = 0.01
)

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// clampUnit keeps a cosine inside acos's domain after rounding.
func clampUnit(c float32) float32 {
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}
