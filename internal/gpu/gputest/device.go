// Package gputest provides a recording gpu.Device for tests that run
// without a GPU.
package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"mini-gfx/internal/gpu"
)

// Kind classifies device objects.
type Kind string

const (
	VertexArray  Kind = "vertex-array"
	Buffer       Kind = "buffer"
	Shader       Kind = "shader"
	Program      Kind = "program"
	Texture      Kind = "texture"
	Framebuffer  Kind = "framebuffer"
	Renderbuffer Kind = "renderbuffer"
)

// Upload records one BufferData call.
type Upload struct {
	Target gpu.BufferTarget
	Buffer uint32
	Size   int
}

// Image records one TexImage2D call.
type Image struct {
	Texture   uint32
	Width     int32
	Height    int32
	RowLength int32
	Bytes     int
}

// Attrib records one VertexAttribPointer call.
type Attrib struct {
	Index  uint32
	Size   int32
	Stride int32
	Offset uintptr
}

// Draw records one draw call.
type Draw struct {
	Indexed bool
	VAO     uint32
	Program uint32
	First   int32
	Count   int32
}

// Device is an in-memory gpu.Device. It tracks object lifetimes and the
// state the renderer mutates, and logs every call by name.
//
// Uniform locations are assigned at link time to every `uniform <type>
// <name>` declaration found in the attached sources; other names resolve
// to -1.
type Device struct {
	// FailCompile makes CompileShader fail for a stage with the given log.
	FailCompile map[gpu.ShaderStage]string
	// FailLink makes LinkProgram fail with the given log when non-empty.
	FailLink string
	// Status is returned by FramebufferStatus; zero means complete.
	Status uint32

	Calls    []string
	Enabled  map[gpu.Capability]bool
	Cleared  []gpu.ClearMask
	Color    [4]float32
	Culled   gpu.Face
	Blend    [2]gpu.BlendFactor
	View     [4]int32
	Uploads  []Upload
	Attribs  []Attrib
	Images   []Image
	Draws    []Draw
	Params   map[uint32]map[gpu.TexParam]gpu.TexValue
	Mipmaps  map[uint32]int
	Uniforms map[int32][]float32

	VAO          uint32
	Program      uint32
	Texture      uint32
	Unit         uint32
	FB           uint32
	RB           uint32
	arrayBuffer  uint32
	elementArray uint32

	next     uint32
	live     map[Kind]map[uint32]bool
	stages   map[uint32]gpu.ShaderStage
	sources  map[uint32]string
	compiled map[uint32]bool
	attached map[uint32][]uint32
	linked   map[uint32]bool
	locs     map[uint32]map[string]int32
	nextLoc  int32
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty device.
func New() *Device {
	return &Device{
		Enabled:  make(map[gpu.Capability]bool),
		Params:   make(map[uint32]map[gpu.TexParam]gpu.TexValue),
		Mipmaps:  make(map[uint32]int),
		Uniforms: make(map[int32][]float32),
		live:     make(map[Kind]map[uint32]bool),
		stages:   make(map[uint32]gpu.ShaderStage),
		sources:  make(map[uint32]string),
		compiled: make(map[uint32]bool),
		attached: make(map[uint32][]uint32),
		linked:   make(map[uint32]bool),
		locs:     make(map[uint32]map[string]int32),
	}
}

// Live returns the number of objects of kind k not yet deleted.
func (d *Device) Live(k Kind) int { return len(d.live[k]) }

// IsLive reports whether id names an undeleted object of kind k.
func (d *Device) IsLive(k Kind, id uint32) bool { return d.live[k][id] }

// LiveTotal returns the number of undeleted objects of every kind.
func (d *Device) LiveTotal() int {
	n := 0
	for _, ids := range d.live {
		n += len(ids)
	}
	return n
}

// Called reports how many times the named method ran.
func (d *Device) Called(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// Location returns the location linked for name in program, or -1.
func (d *Device) Location(program uint32, name string) int32 {
	if loc, ok := d.locs[program][name]; ok {
		return loc
	}
	return -1
}

func (d *Device) call(name string) { d.Calls = append(d.Calls, name) }

func (d *Device) create(k Kind) uint32 {
	d.next++
	if d.live[k] == nil {
		d.live[k] = make(map[uint32]bool)
	}
	d.live[k][d.next] = true
	return d.next
}

func (d *Device) remove(k Kind, id uint32) {
	if id == 0 {
		return
	}
	if !d.live[k][id] {
		panic(fmt.Sprintf("gputest: delete of unknown %s %d", k, id))
	}
	delete(d.live[k], id)
}

func (d *Device) Version() string { return "gputest 1.0" }

func (d *Device) ClearColor(r, g, b, a float32) {
	d.call("ClearColor")
	d.Color = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask gpu.ClearMask) {
	d.call("Clear")
	d.Cleared = append(d.Cleared, mask)
}

func (d *Device) Enable(c gpu.Capability) {
	d.call("Enable")
	d.Enabled[c] = true
}

func (d *Device) Disable(c gpu.Capability) {
	d.call("Disable")
	d.Enabled[c] = false
}

func (d *Device) CullFace(f gpu.Face) {
	d.call("CullFace")
	d.Culled = f
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	d.call("BlendFunc")
	d.Blend = [2]gpu.BlendFactor{src, dst}
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.call("Viewport")
	d.View = [4]int32{x, y, width, height}
}

func (d *Device) CreateVertexArray() uint32 {
	d.call("CreateVertexArray")
	return d.create(VertexArray)
}

func (d *Device) BindVertexArray(vao uint32) {
	d.call("BindVertexArray")
	d.VAO = vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.call("DeleteVertexArray")
	d.remove(VertexArray, vao)
}

func (d *Device) CreateBuffer() uint32 {
	d.call("CreateBuffer")
	return d.create(Buffer)
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buf uint32) {
	d.call("BindBuffer")
	if target == gpu.ElementArrayBuffer {
		d.elementArray = buf
		return
	}
	d.arrayBuffer = buf
}

func (d *Device) BufferData(target gpu.BufferTarget, size int, _ any) {
	d.call("BufferData")
	buf := d.arrayBuffer
	if target == gpu.ElementArrayBuffer {
		buf = d.elementArray
	}
	d.Uploads = append(d.Uploads, Upload{Target: target, Buffer: buf, Size: size})
}

func (d *Device) DeleteBuffer(buf uint32) {
	d.call("DeleteBuffer")
	d.remove(Buffer, buf)
}

func (d *Device) EnableVertexAttribArray(uint32) { d.call("EnableVertexAttribArray") }

func (d *Device) VertexAttribPointer(index uint32, size, stride int32, offset uintptr) {
	d.call("VertexAttribPointer")
	d.Attribs = append(d.Attribs, Attrib{Index: index, Size: size, Stride: stride, Offset: offset})
}

func (d *Device) DrawElements(count int32) {
	d.call("DrawElements")
	d.Draws = append(d.Draws, Draw{Indexed: true, VAO: d.VAO, Program: d.Program, Count: count})
}

func (d *Device) DrawArrays(first, count int32) {
	d.call("DrawArrays")
	d.Draws = append(d.Draws, Draw{VAO: d.VAO, Program: d.Program, First: first, Count: count})
}

func (d *Device) CreateShader(stage gpu.ShaderStage) uint32 {
	d.call("CreateShader")
	id := d.create(Shader)
	d.stages[id] = stage
	return id
}

func (d *Device) ShaderSource(shader uint32, src string) {
	d.call("ShaderSource")
	d.sources[shader] = src
}

func (d *Device) CompileShader(shader uint32) {
	d.call("CompileShader")
	_, fail := d.FailCompile[d.stages[shader]]
	d.compiled[shader] = !fail
}

func (d *Device) ShaderCompiled(shader uint32) bool { return d.compiled[shader] }

func (d *Device) ShaderInfoLog(shader uint32) string {
	if d.compiled[shader] {
		return ""
	}
	return d.FailCompile[d.stages[shader]]
}

func (d *Device) DeleteShader(shader uint32) {
	d.call("DeleteShader")
	d.remove(Shader, shader)
}

func (d *Device) CreateProgram() uint32 {
	d.call("CreateProgram")
	return d.create(Program)
}

func (d *Device) AttachShader(program, shader uint32) {
	d.call("AttachShader")
	d.attached[program] = append(d.attached[program], shader)
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)`)

func (d *Device) LinkProgram(program uint32) {
	d.call("LinkProgram")
	if d.FailLink != "" {
		d.linked[program] = false
		return
	}
	locs := make(map[string]int32)
	for _, s := range d.attached[program] {
		for _, m := range uniformDecl.FindAllStringSubmatch(d.sources[s], -1) {
			if _, ok := locs[m[1]]; !ok {
				locs[m[1]] = d.nextLoc
				d.nextLoc++
			}
		}
	}
	d.locs[program] = locs
	d.linked[program] = true
}

func (d *Device) ProgramLinked(program uint32) bool { return d.linked[program] }

func (d *Device) ProgramInfoLog(program uint32) string {
	if d.linked[program] {
		return ""
	}
	return d.FailLink
}

func (d *Device) UseProgram(program uint32) {
	d.call("UseProgram")
	d.Program = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.call("DeleteProgram")
	d.remove(Program, program)
	delete(d.locs, program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.call("UniformLocation")
	return d.Location(program, name)
}

func (d *Device) setUniform(name string, loc int32, v []float32) {
	d.call(name)
	if loc < 0 {
		panic("gputest: " + name + " with location -1")
	}
	d.Uniforms[loc] = v
}

func (d *Device) Uniform1f(loc int32, v float32) { d.setUniform("Uniform1f", loc, []float32{v}) }

func (d *Device) Uniform1i(loc int32, v int32) {
	d.setUniform("Uniform1i", loc, []float32{float32(v)})
}

func (d *Device) Uniform3f(loc int32, x, y, z float32) {
	d.setUniform("Uniform3f", loc, []float32{x, y, z})
}

func (d *Device) Uniform4f(loc int32, x, y, z, w float32) {
	d.setUniform("Uniform4f", loc, []float32{x, y, z, w})
}

func (d *Device) Uniform1iv(loc int32, v []int32) {
	f := make([]float32, len(v))
	for i, x := range v {
		f[i] = float32(x)
	}
	d.setUniform("Uniform1iv", loc, f)
}

func (d *Device) UniformMatrix4fv(loc int32, m []float32) {
	d.setUniform("UniformMatrix4fv", loc, append([]float32(nil), m...))
}

func (d *Device) CreateTexture() uint32 {
	d.call("CreateTexture")
	return d.create(Texture)
}

func (d *Device) ActiveTexture(unit uint32) {
	d.call("ActiveTexture")
	d.Unit = unit
}

func (d *Device) BindTexture(tex uint32) {
	d.call("BindTexture")
	d.Texture = tex
}

func (d *Device) TexParameter(p gpu.TexParam, v gpu.TexValue) {
	d.call("TexParameter")
	if d.Params[d.Texture] == nil {
		d.Params[d.Texture] = make(map[gpu.TexParam]gpu.TexValue)
	}
	d.Params[d.Texture][p] = v
}

func (d *Device) TexImage2D(width, height, rowLength int32, pix []byte) {
	d.call("TexImage2D")
	d.Images = append(d.Images, Image{
		Texture:   d.Texture,
		Width:     width,
		Height:    height,
		RowLength: rowLength,
		Bytes:     len(pix),
	})
}

func (d *Device) GenerateMipmap() {
	d.call("GenerateMipmap")
	d.Mipmaps[d.Texture]++
}

func (d *Device) DeleteTexture(tex uint32) {
	d.call("DeleteTexture")
	d.remove(Texture, tex)
}

func (d *Device) CreateFramebuffer() uint32 {
	d.call("CreateFramebuffer")
	return d.create(Framebuffer)
}

func (d *Device) BindFramebuffer(fb uint32) {
	d.call("BindFramebuffer")
	d.FB = fb
}

func (d *Device) FramebufferTexture(uint32) { d.call("FramebufferTexture") }

func (d *Device) FramebufferStatus() uint32 {
	if d.Status != 0 {
		return d.Status
	}
	return gpu.FramebufferComplete
}

func (d *Device) DeleteFramebuffer(fb uint32) {
	d.call("DeleteFramebuffer")
	d.remove(Framebuffer, fb)
}

func (d *Device) CreateRenderbuffer() uint32 {
	d.call("CreateRenderbuffer")
	return d.create(Renderbuffer)
}

func (d *Device) BindRenderbuffer(rb uint32) {
	d.call("BindRenderbuffer")
	d.RB = rb
}

func (d *Device) RenderbufferDepthStorage(int32, int32) { d.call("RenderbufferDepthStorage") }

func (d *Device) FramebufferDepthRenderbuffer(uint32) { d.call("FramebufferDepthRenderbuffer") }

func (d *Device) DeleteRenderbuffer(rb uint32) {
	d.call("DeleteRenderbuffer")
	d.remove(Renderbuffer, rb)
}

// Summary lists live object counts by kind, for failure messages.
func (d *Device) Summary() string {
	var b strings.Builder
	for _, k := range []Kind{VertexArray, Buffer, Shader, Program, Texture, Framebuffer, Renderbuffer} {
		fmt.Fprintf(&b, "%s=%d ", k, len(d.live[k]))
	}
	return strings.TrimSpace(b.String())
}
