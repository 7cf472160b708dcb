// Package gpu describes the command stream the renderer issues against a
// current graphics context.
//
// Device mirrors the small subset of OpenGL the renderer uses. Object names
// are plain uint32 ids as in GL; 0 is never a valid object. The glbackend
// package implements Device on go-gl, gputest provides a recording fake.
package gpu

// Capability is a fixed-function toggle.
type Capability int

const (
	DepthTest Capability = iota
	CullFace
	Blend
)

func (c Capability) String() string {
	switch c {
	case DepthTest:
		return "depth-test"
	case CullFace:
		return "cull-face"
	case Blend:
		return "blend"
	}
	return "unknown"
}

// Face selects which polygon faces are culled.
type Face int

const (
	FaceBack Face = iota
	FaceFront
	FaceFrontAndBack
)

// ClearMask selects the buffers Clear resets.
type ClearMask uint32

const (
	ClearColorBuffer ClearMask = 1 << iota
	ClearDepthBuffer
	ClearStencilBuffer
)

// BufferTarget is the binding point of a buffer object.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// BlendFactor is a source or destination blend weight.
type BlendFactor int

const (
	One BlendFactor = iota
	SrcAlpha
	OneMinusSrcAlpha
)

// ShaderStage is a programmable pipeline stage.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// TexParam names a 2D texture parameter.
type TexParam int

const (
	TexWrapS TexParam = iota
	TexWrapT
	TexMinFilter
	TexMagFilter
)

// TexValue is a value for a TexParam.
type TexValue int

const (
	Repeat TexValue = iota
	ClampToEdge
	Linear
	Nearest
	LinearMipmapLinear
)

// FramebufferComplete is the status FramebufferStatus reports for a usable
// framebuffer. It equals GL_FRAMEBUFFER_COMPLETE.
const FramebufferComplete uint32 = 0x8CD5

// Device issues commands to the current context. All methods must be called
// on the thread that owns the context.
type Device interface {
	// Version describes the driver, for logging.
	Version() string

	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	Disable(c Capability)
	CullFace(f Face)
	BlendFunc(src, dst BlendFactor)
	Viewport(x, y, width, height int32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	CreateBuffer() uint32
	BindBuffer(target BufferTarget, buf uint32)
	// BufferData uploads size bytes from data, a slice, to the buffer bound
	// at target as static storage.
	BufferData(target BufferTarget, size int, data any)
	DeleteBuffer(buf uint32)

	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer describes a float attribute of size components,
	// read from the bound array buffer at offset bytes with the given stride.
	VertexAttribPointer(index uint32, size, stride int32, offset uintptr)

	// DrawElements draws count unsigned short indices as a triangle list.
	DrawElements(count int32)
	// DrawArrays draws count vertices starting at first as a triangle list.
	DrawArrays(first, count int32)

	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// UniformLocation returns -1 for names the program does not use.
	UniformLocation(program uint32, name string) int32
	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)
	Uniform3f(loc int32, x, y, z float32)
	Uniform4f(loc int32, x, y, z, w float32)
	Uniform1iv(loc int32, v []int32)
	// UniformMatrix4fv uploads len(m)/16 column-major matrices.
	UniformMatrix4fv(loc int32, m []float32)

	CreateTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(tex uint32)
	TexParameter(p TexParam, v TexValue)
	// TexImage2D uploads RGBA8 pixels as level 0 of the bound texture.
	// rowLength is the distance between rows in pixels. pix may be nil to
	// allocate storage only.
	TexImage2D(width, height, rowLength int32, pix []byte)
	GenerateMipmap()
	DeleteTexture(tex uint32)

	CreateFramebuffer() uint32
	BindFramebuffer(fb uint32)
	FramebufferTexture(tex uint32)
	FramebufferStatus() uint32
	DeleteFramebuffer(fb uint32)

	CreateRenderbuffer() uint32
	BindRenderbuffer(rb uint32)
	// RenderbufferDepthStorage allocates a 24-bit depth buffer.
	RenderbufferDepthStorage(width, height int32)
	FramebufferDepthRenderbuffer(rb uint32)
	DeleteRenderbuffer(rb uint32)
}
