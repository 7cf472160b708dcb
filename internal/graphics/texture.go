package graphics

import (
	"fmt"
	"image"

	"mini-gfx/internal/gpu"
	"mini-gfx/internal/pool"
	"mini-gfx/internal/profiling"
)

// Texture is a handle to a 2D RGBA texture. The zero Texture is invalid.
type Texture struct{ h pool.Handle }

func (t Texture) IsZero() bool { return t.h.IsZero() }

func (t Texture) String() string { return "texture" + t.h.String() }

type textureData struct {
	id     uint32
	width  int
	height int
}

// CreateTexture decodes the image at path in the asset filesystem and
// uploads it with a full mip chain, repeat wrapping and linear filtering.
func (r *Renderer) CreateTexture(path string) (Texture, error) {
	defer profiling.Track("graphics.CreateTexture")()
	file, err := r.assets.Open(path)
	if err != nil {
		return Texture{}, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	px, err := decodeImage(file)
	if err != nil {
		return Texture{}, fmt.Errorf("%s: %w", path, err)
	}
	return r.upload(px)
}

// CreateTextureFromImage uploads an already decoded image.
func (r *Renderer) CreateTextureFromImage(img image.Image) (Texture, error) {
	defer profiling.Track("graphics.CreateTexture")()
	return r.upload(toPixels(img))
}

func (r *Renderer) upload(px pixels) (Texture, error) {
	if r.destroyed {
		return Texture{}, ErrDestroyed
	}
	if px.width == 0 || px.height == 0 {
		return Texture{}, fmt.Errorf("create texture: empty image %dx%d", px.width, px.height)
	}
	dev := r.dev
	h, t := r.textures.Alloc()
	t.id = dev.CreateTexture()
	t.width, t.height = px.width, px.height

	dev.BindTexture(t.id)
	dev.TexImage2D(int32(px.width), int32(px.height), int32(px.stride/4), px.pix)
	dev.GenerateMipmap()
	dev.TexParameter(gpu.TexWrapS, gpu.Repeat)
	dev.TexParameter(gpu.TexWrapT, gpu.Repeat)
	dev.TexParameter(gpu.TexMinFilter, gpu.Linear)
	dev.TexParameter(gpu.TexMagFilter, gpu.Linear)
	dev.BindTexture(0)
	return Texture{h}, nil
}

// BindTexture binds t to texture unit unit and points the sampler uniform
// of s at that unit.
func (r *Renderer) BindTexture(t Texture, s Shader, sampler string, unit int32) error {
	d, err := r.textures.Get(t.h)
	if err != nil {
		return fmt.Errorf("bind %v: %w", t, err)
	}
	r.dev.ActiveTexture(uint32(unit))
	r.dev.BindTexture(d.id)
	return r.SetInt(s, sampler, unit)
}

// UnbindTexture clears the texture binding of the active unit.
func (r *Renderer) UnbindTexture() { r.dev.BindTexture(0) }

// DestroyTexture deletes the texture and invalidates t.
func (r *Renderer) DestroyTexture(t Texture) error {
	err := r.textures.Release(t.h, func(d *textureData) { r.dev.DeleteTexture(d.id) })
	if err != nil {
		return fmt.Errorf("destroy %v: %w", t, err)
	}
	return nil
}

// TextureSize returns the pixel dimensions of t.
func (r *Renderer) TextureSize(t Texture) (width, height int, err error) {
	d, err := r.textures.Get(t.h)
	if err != nil {
		return 0, 0, fmt.Errorf("size of %v: %w", t, err)
	}
	return d.width, d.height, nil
}
