// Package glbackend implements gpu.Device on OpenGL 4.1 core through go-gl.
package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"mini-gfx/internal/gpu"
)

// Device forwards every call to the current GL context.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New loads the GL function pointers. A context must be current on the
// calling thread.
func New() (gpu.Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: init: %w", err)
	}
	return &Device{}, nil
}

func (*Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

var capabilities = map[gpu.Capability]uint32{
	gpu.DepthTest: gl.DEPTH_TEST,
	gpu.CullFace:  gl.CULL_FACE,
	gpu.Blend:     gl.BLEND,
}

var faces = map[gpu.Face]uint32{
	gpu.FaceBack:         gl.BACK,
	gpu.FaceFront:        gl.FRONT,
	gpu.FaceFrontAndBack: gl.FRONT_AND_BACK,
}

var blendFactors = map[gpu.BlendFactor]uint32{
	gpu.One:              gl.ONE,
	gpu.SrcAlpha:         gl.SRC_ALPHA,
	gpu.OneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
}

var targets = map[gpu.BufferTarget]uint32{
	gpu.ArrayBuffer:        gl.ARRAY_BUFFER,
	gpu.ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER,
}

var stages = map[gpu.ShaderStage]uint32{
	gpu.VertexStage:   gl.VERTEX_SHADER,
	gpu.FragmentStage: gl.FRAGMENT_SHADER,
}

var texParams = map[gpu.TexParam]uint32{
	gpu.TexWrapS:     gl.TEXTURE_WRAP_S,
	gpu.TexWrapT:     gl.TEXTURE_WRAP_T,
	gpu.TexMinFilter: gl.TEXTURE_MIN_FILTER,
	gpu.TexMagFilter: gl.TEXTURE_MAG_FILTER,
}

var texValues = map[gpu.TexValue]int32{
	gpu.Repeat:             gl.REPEAT,
	gpu.ClampToEdge:        gl.CLAMP_TO_EDGE,
	gpu.Linear:             gl.LINEAR,
	gpu.Nearest:            gl.NEAREST,
	gpu.LinearMipmapLinear: gl.LINEAR_MIPMAP_LINEAR,
}

func (*Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (*Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ClearColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.ClearDepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&gpu.ClearStencilBuffer != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (*Device) Enable(c gpu.Capability)  { gl.Enable(capabilities[c]) }
func (*Device) Disable(c gpu.Capability) { gl.Disable(capabilities[c]) }
func (*Device) CullFace(f gpu.Face)      { gl.CullFace(faces[f]) }

func (*Device) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactors[src], blendFactors[dst])
}

func (*Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*Device) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (*Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (*Device) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (*Device) BindBuffer(target gpu.BufferTarget, buf uint32) {
	gl.BindBuffer(targets[target], buf)
}

func (*Device) BufferData(target gpu.BufferTarget, size int, data any) {
	if size == 0 {
		gl.BufferData(targets[target], 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(targets[target], size, gl.Ptr(data), gl.STATIC_DRAW)
}

func (*Device) DeleteBuffer(buf uint32) { gl.DeleteBuffers(1, &buf) }

func (*Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*Device) VertexAttribPointer(index uint32, size, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, offset)
}

func (*Device) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

func (*Device) DrawArrays(first, count int32) { gl.DrawArrays(gl.TRIANGLES, first, count) }

func (*Device) CreateShader(stage gpu.ShaderStage) uint32 { return gl.CreateShader(stages[stage]) }

func (*Device) ShaderSource(shader uint32, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (*Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (*Device) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (*Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (*Device) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (*Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (*Device) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (*Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Device) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }
func (*Device) Uniform1i(loc int32, v int32)   { gl.Uniform1i(loc, v) }

func (*Device) Uniform3f(loc int32, x, y, z float32) { gl.Uniform3f(loc, x, y, z) }

func (*Device) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }

func (*Device) Uniform1iv(loc int32, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(loc, int32(len(v)), &v[0])
}

func (*Device) UniformMatrix4fv(loc int32, m []float32) {
	if len(m) < 16 {
		return
	}
	gl.UniformMatrix4fv(loc, int32(len(m)/16), false, &m[0])
}

func (*Device) CreateTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (*Device) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (*Device) BindTexture(tex uint32) { gl.BindTexture(gl.TEXTURE_2D, tex) }

func (*Device) TexParameter(p gpu.TexParam, v gpu.TexValue) {
	gl.TexParameteri(gl.TEXTURE_2D, texParams[p], texValues[v])
}

func (*Device) TexImage2D(width, height, rowLength int32, pix []byte) {
	var ptr = gl.Ptr(nil)
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, rowLength)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

func (*Device) GenerateMipmap() { gl.GenerateMipmap(gl.TEXTURE_2D) }

func (*Device) DeleteTexture(tex uint32) { gl.DeleteTextures(1, &tex) }

func (*Device) CreateFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (*Device) BindFramebuffer(fb uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, fb) }

func (*Device) FramebufferTexture(tex uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
}

func (*Device) FramebufferStatus() uint32 { return gl.CheckFramebufferStatus(gl.FRAMEBUFFER) }

func (*Device) DeleteFramebuffer(fb uint32) { gl.DeleteFramebuffers(1, &fb) }

func (*Device) CreateRenderbuffer() uint32 {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return rb
}

func (*Device) BindRenderbuffer(rb uint32) { gl.BindRenderbuffer(gl.RENDERBUFFER, rb) }

func (*Device) RenderbufferDepthStorage(width, height int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
}

func (*Device) FramebufferDepthRenderbuffer(rb uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rb)
}

func (*Device) DeleteRenderbuffer(rb uint32) { gl.DeleteRenderbuffers(1, &rb) }
