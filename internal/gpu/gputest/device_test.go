package gputest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-gfx/internal/gpu"
)

func link(t *testing.T, d *Device, vert, frag string) uint32 {
	t.Helper()
	vs := d.CreateShader(gpu.VertexStage)
	d.ShaderSource(vs, vert)
	d.CompileShader(vs)
	fs := d.CreateShader(gpu.FragmentStage)
	d.ShaderSource(fs, frag)
	d.CompileShader(fs)
	p := d.CreateProgram()
	d.AttachShader(p, vs)
	d.AttachShader(p, fs)
	d.LinkProgram(p)
	require.True(t, d.ProgramLinked(p))
	return p
}

func TestUniformLocationsFromSource(t *testing.T) {
	d := New()
	p := link(t, d,
		"uniform mat4 uProj;\nuniform mat4 uBones[4];\n",
		"uniform sampler2D uTexture;\nuniform mat4 uProj;\n")

	assert.GreaterOrEqual(t, d.UniformLocation(p, "uProj"), int32(0))
	assert.GreaterOrEqual(t, d.UniformLocation(p, "uBones"), int32(0))
	assert.GreaterOrEqual(t, d.UniformLocation(p, "uTexture"), int32(0))
	assert.Equal(t, int32(-1), d.UniformLocation(p, "uMissing"))
	assert.NotEqual(t, d.Location(p, "uProj"), d.Location(p, "uTexture"))

	d.Uniform1i(d.Location(p, "uTexture"), 3)
	assert.Equal(t, []float32{3}, d.Uniforms[d.Location(p, "uTexture")])
	assert.Panics(t, func() { d.Uniform1f(-1, 1) })
}

func TestFailureInjection(t *testing.T) {
	d := New()
	d.FailCompile = map[gpu.ShaderStage]string{gpu.FragmentStage: "0:1: syntax error"}
	fs := d.CreateShader(gpu.FragmentStage)
	d.CompileShader(fs)
	assert.False(t, d.ShaderCompiled(fs))
	assert.Equal(t, "0:1: syntax error", d.ShaderInfoLog(fs))

	d.FailLink = "unresolved symbol"
	p := d.CreateProgram()
	d.LinkProgram(p)
	assert.False(t, d.ProgramLinked(p))
	assert.Equal(t, "unresolved symbol", d.ProgramInfoLog(p))

	assert.Equal(t, gpu.FramebufferComplete, d.FramebufferStatus())
	d.Status = 0x8CD6
	assert.Equal(t, uint32(0x8CD6), d.FramebufferStatus())
}

func TestLifetimeTracking(t *testing.T) {
	d := New()
	vao := d.CreateVertexArray()
	buf := d.CreateBuffer()
	tex := d.CreateTexture()
	assert.Equal(t, 3, d.LiveTotal())
	assert.True(t, d.IsLive(Texture, tex))
	assert.Equal(t, "vertex-array=1 buffer=1 shader=0 program=0 texture=1 framebuffer=0 renderbuffer=0", d.Summary())

	d.DeleteBuffer(buf)
	d.DeleteVertexArray(vao)
	d.DeleteTexture(0)
	assert.Equal(t, 1, d.LiveTotal())
	assert.Equal(t, 1, d.Called("DeleteBuffer"))

	assert.Panics(t, func() { d.DeleteBuffer(buf) })
	assert.Panics(t, func() { d.DeleteTexture(vao) }, "ids are checked per kind")
}
