package graphics

import (
	"errors"
	"fmt"

	"mini-gfx/internal/gpu"
	"mini-gfx/internal/pool"
	"mini-gfx/internal/profiling"
	"mini-gfx/internal/vecmath"
)

// Vertex is the only vertex layout: a position followed by a texture
// coordinate, tightly packed.
type Vertex struct {
	Position vecmath.Vec3
	UV       vecmath.Vec2
}

const (
	vertexStride = 5 * 4
	uvOffset     = 3 * 4
	indexSize    = 2
)

var (
	ErrNotIndexed  = errors.New("graphics: buffer has no index data")
	ErrNoVertices  = errors.New("graphics: no vertices")
	ErrNoIndices   = errors.New("graphics: no indices")
	ErrIndexBounds = errors.New("graphics: index out of range")
)

// Buffer is a handle to uploaded geometry. The zero Buffer is invalid.
type Buffer struct{ h pool.Handle }

func (b Buffer) IsZero() bool { return b.h.IsZero() }
func (b Buffer) String() string { return "buffer" + b.h.String() }

type bufferData struct {
	vao         uint32
	vbo         uint32
	ebo         uint32
	vertexCount int32
	indexCount  int32
	indexed     bool
}

// CreateBuffer uploads vertices for DrawBufferArray.
func (r *Renderer) CreateBuffer(vertices []Vertex) (Buffer, error) {
	return r.createBuffer(vertices, nil)
}

// CreateIndexedBuffer uploads vertices and triangle-list indices for
// DrawBufferElements. Every index must address one of the vertices.
func (r *Renderer) CreateIndexedBuffer(vertices []Vertex, indices []uint16) (Buffer, error) {
	if len(indices) == 0 {
		return Buffer{}, fmt.Errorf("create buffer: %w", ErrNoIndices)
	}
	return r.createBuffer(vertices, indices)
}

func (r *Renderer) createBuffer(vertices []Vertex, indices []uint16) (Buffer, error) {
	defer profiling.Track("graphics.CreateBuffer")()
	if r.destroyed {
		return Buffer{}, ErrDestroyed
	}
	if len(vertices) == 0 {
		return Buffer{}, fmt.Errorf("create buffer: %w", ErrNoVertices)
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return Buffer{}, fmt.Errorf("create buffer: index %d is %d, %d vertices: %w",
				i, idx, len(vertices), ErrIndexBounds)
		}
	}

	h, b := r.buffers.Alloc()
	dev := r.dev

	b.vao = dev.CreateVertexArray()
	dev.BindVertexArray(b.vao)

	b.vbo = dev.CreateBuffer()
	dev.BindBuffer(gpu.ArrayBuffer, b.vbo)
	dev.BufferData(gpu.ArrayBuffer, len(vertices)*vertexStride, vertices)
	dev.EnableVertexAttribArray(0)
	dev.VertexAttribPointer(0, 3, vertexStride, 0)
	dev.EnableVertexAttribArray(1)
	dev.VertexAttribPointer(1, 2, vertexStride, uvOffset)
	b.vertexCount = int32(len(vertices))

	if len(indices) > 0 {
		b.ebo = dev.CreateBuffer()
		dev.BindBuffer(gpu.ElementArrayBuffer, b.ebo)
		dev.BufferData(gpu.ElementArrayBuffer, len(indices)*indexSize, indices)
		b.indexCount = int32(len(indices))
		b.indexed = true
	}

	// the element binding is vertex array state and stays
	dev.BindVertexArray(0)
	dev.BindBuffer(gpu.ArrayBuffer, 0)
	return Buffer{h}, nil
}

func (r *Renderer) releaseBuffer(b *bufferData) {
	if b.ebo != 0 {
		r.dev.DeleteBuffer(b.ebo)
	}
	r.dev.DeleteBuffer(b.vbo)
	r.dev.DeleteVertexArray(b.vao)
}

// DestroyBuffer deletes the device storage of b and invalidates b.
func (r *Renderer) DestroyBuffer(b Buffer) error {
	if err := r.buffers.Release(b.h, r.releaseBuffer); err != nil {
		return fmt.Errorf("destroy %v: %w", b, err)
	}
	return nil
}

// DrawBufferElements draws b's indices as a triangle list.
func (r *Renderer) DrawBufferElements(b Buffer) error {
	data, err := r.buffers.Get(b.h)
	if err != nil {
		return fmt.Errorf("draw %v: %w", b, err)
	}
	if !data.indexed {
		return fmt.Errorf("draw %v: %w", b, ErrNotIndexed)
	}
	r.dev.BindVertexArray(data.vao)
	r.dev.DrawElements(data.indexCount)
	profiling.CountDraw()
	return nil
}

// DrawBufferArray draws b's vertices in order as a triangle list.
func (r *Renderer) DrawBufferArray(b Buffer) error {
	data, err := r.buffers.Get(b.h)
	if err != nil {
		return fmt.Errorf("draw %v: %w", b, err)
	}
	r.dev.BindVertexArray(data.vao)
	r.dev.DrawArrays(0, data.vertexCount)
	profiling.CountDraw()
	return nil
}
