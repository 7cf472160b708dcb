package graphics

import (
	"fmt"

	"mini-gfx/internal/gpu"
	"mini-gfx/internal/pool"
)

// FramebufferError reports an incomplete framebuffer.
type FramebufferError struct {
	Status uint32
}

func (e *FramebufferError) Error() string {
	return fmt.Sprintf("framebuffer incomplete: status 0x%04X", e.Status)
}

// Framebuffer is an offscreen render target with an RGBA color texture and
// a depth buffer. The zero Framebuffer is invalid.
type Framebuffer struct{ h pool.Handle }

func (f Framebuffer) IsZero() bool { return f.h.IsZero() }

func (f Framebuffer) String() string { return "framebuffer" + f.h.String() }

type framebufferData struct {
	fbo    uint32
	color  uint32
	depth  uint32
	width  int
	height int
}

// CreateFramebuffer builds a width x height render target.
func (r *Renderer) CreateFramebuffer(width, height int) (Framebuffer, error) {
	if r.destroyed {
		return Framebuffer{}, ErrDestroyed
	}
	if width < 1 || height < 1 {
		return Framebuffer{}, fmt.Errorf("create framebuffer: invalid size %dx%d", width, height)
	}
	dev := r.dev
	var f framebufferData
	f.width, f.height = width, height

	f.fbo = dev.CreateFramebuffer()
	dev.BindFramebuffer(f.fbo)

	f.color = dev.CreateTexture()
	dev.BindTexture(f.color)
	dev.TexImage2D(int32(width), int32(height), 0, nil)
	dev.TexParameter(gpu.TexMinFilter, gpu.Linear)
	dev.TexParameter(gpu.TexMagFilter, gpu.Linear)
	dev.TexParameter(gpu.TexWrapS, gpu.ClampToEdge)
	dev.TexParameter(gpu.TexWrapT, gpu.ClampToEdge)
	dev.BindTexture(0)
	dev.FramebufferTexture(f.color)

	f.depth = dev.CreateRenderbuffer()
	dev.BindRenderbuffer(f.depth)
	dev.RenderbufferDepthStorage(int32(width), int32(height))
	dev.BindRenderbuffer(0)
	dev.FramebufferDepthRenderbuffer(f.depth)

	status := dev.FramebufferStatus()
	dev.BindFramebuffer(0)
	if status != gpu.FramebufferComplete {
		r.releaseFramebuffer(&f)
		return Framebuffer{}, &FramebufferError{Status: status}
	}

	h, data := r.framebuffers.Alloc()
	*data = f
	return Framebuffer{h}, nil
}

func (r *Renderer) releaseFramebuffer(f *framebufferData) {
	r.dev.DeleteRenderbuffer(f.depth)
	r.dev.DeleteTexture(f.color)
	r.dev.DeleteFramebuffer(f.fbo)
}

// BindFramebuffer directs rendering into f and sets the viewport to its size.
func (r *Renderer) BindFramebuffer(f Framebuffer) error {
	d, err := r.framebuffers.Get(f.h)
	if err != nil {
		return fmt.Errorf("bind %v: %w", f, err)
	}
	r.dev.BindFramebuffer(d.fbo)
	r.dev.Viewport(0, 0, int32(d.width), int32(d.height))
	return nil
}

// UnbindFramebuffer directs rendering back to the surface.
func (r *Renderer) UnbindFramebuffer() {
	r.dev.BindFramebuffer(0)
	if w, h := r.Width(), r.Height(); w > 0 && h > 0 {
		r.dev.Viewport(0, 0, int32(w), int32(h))
	}
}

// BindFramebufferTexture samples f's color attachment through the sampler
// uniform of s, like BindTexture.
func (r *Renderer) BindFramebufferTexture(f Framebuffer, s Shader, sampler string, unit int32) error {
	d, err := r.framebuffers.Get(f.h)
	if err != nil {
		return fmt.Errorf("bind %v: %w", f, err)
	}
	r.dev.ActiveTexture(uint32(unit))
	r.dev.BindTexture(d.color)
	return r.SetInt(s, sampler, unit)
}

// DestroyFramebuffer deletes f's device objects and invalidates f.
func (r *Renderer) DestroyFramebuffer(f Framebuffer) error {
	if err := r.framebuffers.Release(f.h, r.releaseFramebuffer); err != nil {
		return fmt.Errorf("destroy %v: %w", f, err)
	}
	return nil
}
