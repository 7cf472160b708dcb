package main

import (
	"image"
	"image/color"

	"mini-gfx/internal/graphics"
	"mini-gfx/internal/vecmath"
)

// quadVertices is a unit quad as two triangles, for DrawBufferArray.
var quadVertices = []graphics.Vertex{
	{Position: vecmath.Vec3{-0.5, -0.5, 0}, UV: vecmath.Vec2{0, 0}},
	{Position: vecmath.Vec3{0.5, -0.5, 0}, UV: vecmath.Vec2{1, 0}},
	{Position: vecmath.Vec3{0.5, 0.5, 0}, UV: vecmath.Vec2{1, 1}},
	{Position: vecmath.Vec3{0.5, 0.5, 0}, UV: vecmath.Vec2{1, 1}},
	{Position: vecmath.Vec3{-0.5, 0.5, 0}, UV: vecmath.Vec2{0, 1}},
	{Position: vecmath.Vec3{-0.5, -0.5, 0}, UV: vecmath.Vec2{0, 0}},
}

// cube returns a unit cube with four vertices per face and CCW front faces.
func cube() ([]graphics.Vertex, []uint16) {
	faces := [6][4]vecmath.Vec3{
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},     // +Z
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, // -Z
		{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},     // +X
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, // -X
		{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},     // +Y
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, // -Y
	}
	uvs := [4]vecmath.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	vertices := make([]graphics.Vertex, 0, 24)
	indices := make([]uint16, 0, 36)
	for _, f := range faces {
		base := uint16(len(vertices))
		for i, p := range f {
			vertices = append(vertices, graphics.Vertex{Position: p.Scale(0.5), UV: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return vertices, indices
}

// checkerboard is the fallback texture when none is given on the command
// line.
func checkerboard(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	dark := color.NRGBA{R: 60, G: 90, B: 160, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}
