// Package graphics is the renderer: it owns the buffers, shaders, textures
// and framebuffers created on one graphics context and issues the frame's
// clear, state and draw commands.
//
// Every resource lives in a pool private to its Renderer and is referred to
// by a small value handle. Destroying a handle invalidates every copy of it;
// later use is reported as pool.ErrStaleHandle (or pool.ErrDoubleFree for a
// second destroy). Renderer.Destroy releases whatever is still alive.
//
// A Renderer is not safe for concurrent use and must be driven from the
// thread that owns the context.
package graphics

import (
	"errors"
	"fmt"
	"io/fs"

	"mini-gfx/internal/config"
	"mini-gfx/internal/display"
	"mini-gfx/internal/gpu"
	"mini-gfx/internal/logging"
	"mini-gfx/internal/pool"
	"mini-gfx/internal/profiling"
	"mini-gfx/internal/vecmath"
)

// ErrDestroyed is returned when creating resources on a destroyed Renderer.
var ErrDestroyed = errors.New("graphics: renderer destroyed")

// ErrDegenerateProjection is returned when the surface size or the clip
// planes describe an empty view volume.
var ErrDegenerateProjection = errors.New("graphics: degenerate projection")

// ClearFlags selects the buffers Clear resets.
type ClearFlags uint8

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil
)

// CullFace selects the faces FaceCulling discards. CullBack|CullFront
// culls both.
type CullFace uint8

const (
	CullBack CullFace = 1 << iota
	CullFront
)

// Stats counts the live resources of a Renderer.
type Stats struct {
	Buffers      int
	Shaders      int
	Textures     int
	Framebuffers int
}

// Renderer combines a ready context with the resource pools.
type Renderer struct {
	ctx    *display.Manager
	dev    gpu.Device
	assets fs.FS

	buffers      *pool.Pool[bufferData]
	shaders      *pool.Pool[shaderData]
	textures     *pool.Pool[textureData]
	framebuffers *pool.Pool[framebufferData]

	destroyed bool
}

// New builds a Renderer on a Ready context. Shader and texture paths are
// resolved in assets. The Renderer takes ownership of ctx and destroys it
// in Destroy.
func New(ctx *display.Manager, assets fs.FS, settings config.Renderer) (*Renderer, error) {
	if ctx == nil || ctx.State() != display.Ready {
		return nil, display.ErrNotReady
	}
	size := settings.PoolBlockSize
	if size < 1 {
		size = config.DefaultPoolBlockSize
	}

	r := &Renderer{
		ctx:          ctx,
		dev:          ctx.Device(),
		assets:       assets,
		buffers:      pool.New[bufferData](size),
		shaders:      pool.New[shaderData](size),
		textures:     pool.New[textureData](size),
		framebuffers: pool.New[framebufferData](size),
	}
	r.buffers.OnGrow = poolGrowth("buffers", size)
	r.shaders.OnGrow = poolGrowth("shaders", size)
	r.textures.OnGrow = poolGrowth("textures", size)
	r.framebuffers.OnGrow = poolGrowth("framebuffers", size)

	c := settings.ClearColor
	r.dev.ClearColor(c.R, c.G, c.B, c.A)
	r.dev.Enable(gpu.Blend)
	r.dev.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
	r.dev.Disable(gpu.CullFace)
	r.dev.Disable(gpu.DepthTest)

	logging.Logger().Info("graphics: renderer ready", "pool_block_size", size)
	return r, nil
}

func poolGrowth(name string, size int) func(int) {
	return func(blocks int) {
		logging.Logger().Debug("graphics: pool grew", "pool", name, "blocks", blocks, "capacity", blocks*size)
	}
}

// Destroy releases every live resource, the pools and the context.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	stats := r.Stats()
	r.buffers.Each(func(_ pool.Handle, b *bufferData) { r.releaseBuffer(b) })
	r.shaders.Each(func(_ pool.Handle, s *shaderData) { r.dev.DeleteProgram(s.program) })
	r.textures.Each(func(_ pool.Handle, t *textureData) { r.dev.DeleteTexture(t.id) })
	r.framebuffers.Each(func(_ pool.Handle, f *framebufferData) { r.releaseFramebuffer(f) })
	r.buffers.Destroy()
	r.shaders.Destroy()
	r.textures.Destroy()
	r.framebuffers.Destroy()
	r.ctx.Destroy()
	r.destroyed = true
	logging.Logger().Info("graphics: renderer destroyed",
		"buffers", stats.Buffers, "shaders", stats.Shaders,
		"textures", stats.Textures, "framebuffers", stats.Framebuffers)
}

// Stats returns the live resource counts.
func (r *Renderer) Stats() Stats {
	return Stats{
		Buffers:      r.buffers.Live(),
		Shaders:      r.shaders.Live(),
		Textures:     r.textures.Live(),
		Framebuffers: r.framebuffers.Live(),
	}
}

// UpdateRenderArea polls the surface for a resize. See display.Manager.
func (r *Renderer) UpdateRenderArea() (bool, error) { return r.ctx.UpdateRenderArea() }

// Width returns the surface width, or display.SizeUnknown.
func (r *Renderer) Width() int { return r.ctx.Width() }

// Height returns the surface height, or display.SizeUnknown.
func (r *Renderer) Height() int { return r.ctx.Height() }

// Present shows the frame.
func (r *Renderer) Present() error {
	defer profiling.Track("display.Present")()
	return r.ctx.Present()
}

// Clear sets the clear color and clears the selected buffers.
func (r *Renderer) Clear(red, green, blue, alpha float32, flags ClearFlags) {
	var mask gpu.ClearMask
	if flags&ClearColor != 0 {
		mask |= gpu.ClearColorBuffer
	}
	if flags&ClearDepth != 0 {
		mask |= gpu.ClearDepthBuffer
	}
	if flags&ClearStencil != 0 {
		mask |= gpu.ClearStencilBuffer
	}
	r.dev.ClearColor(red, green, blue, alpha)
	r.dev.Clear(mask)
}

func (r *Renderer) DepthTestEnable()  { r.dev.Enable(gpu.DepthTest) }
func (r *Renderer) DepthTestDisable() { r.dev.Disable(gpu.DepthTest) }

// FaceCulling enables or disables culling of the given faces.
func (r *Renderer) FaceCulling(enabled bool, face CullFace) {
	if !enabled {
		r.dev.Disable(gpu.CullFace)
		return
	}
	switch face {
	case CullFront:
		r.dev.CullFace(gpu.FaceFront)
	case CullBack | CullFront:
		r.dev.CullFace(gpu.FaceFrontAndBack)
	default:
		r.dev.CullFace(gpu.FaceBack)
	}
	r.dev.Enable(gpu.CullFace)
}

// OrthoProjection returns an orthographic projection one pixel per unit,
// centred on the origin of the current surface.
func (r *Renderer) OrthoProjection(near, far float32) (vecmath.Mat4, error) {
	hw, hh := float32(r.Width())*0.5, float32(r.Height())*0.5
	if hw <= 0 || hh <= 0 {
		return vecmath.Mat4{}, fmt.Errorf("%w: surface %dx%d", ErrDegenerateProjection, r.Width(), r.Height())
	}
	m := vecmath.Ortho(-hw, hw, -hh, hh, near, far)
	if m.IsZero() {
		return m, fmt.Errorf("%w: near %v far %v", ErrDegenerateProjection, near, far)
	}
	return m, nil
}

// PerspectiveProjection returns a perspective projection with the given
// vertical field of view in degrees and the surface's aspect ratio.
func (r *Renderer) PerspectiveProjection(fovDeg, near, far float32) (vecmath.Mat4, error) {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return vecmath.Mat4{}, fmt.Errorf("%w: surface %dx%d", ErrDegenerateProjection, w, h)
	}
	m := vecmath.Perspective(fovDeg, float32(w)/float32(h), near, far)
	if m.IsZero() {
		return m, fmt.Errorf("%w: fov %v near %v far %v", ErrDegenerateProjection, fovDeg, near, far)
	}
	return m, nil
}
