package graphics

import (
	"fmt"
	"io/fs"

	"mini-gfx/internal/gpu"
	"mini-gfx/internal/logging"
	"mini-gfx/internal/pool"
	"mini-gfx/internal/profiling"
	"mini-gfx/internal/vecmath"
)

// ShaderError reports a stage that failed to compile, or a program that
// failed to link (Stage "link"), with the driver's info log.
type ShaderError struct {
	Stage string
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == "link" {
		return "failed to link program: " + e.Log
	}
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// Shader is a handle to a linked program. The zero Shader is invalid.
type Shader struct{ h pool.Handle }

func (s Shader) IsZero() bool { return s.h.IsZero() }

func (s Shader) String() string { return "shader" + s.h.String() }

type shaderData struct {
	program uint32
}

// CreateShader reads a vertex and a fragment stage from the asset
// filesystem and links them.
func (r *Renderer) CreateShader(vertexPath, fragmentPath string) (Shader, error) {
	vertexSource, err := fs.ReadFile(r.assets, vertexPath)
	if err != nil {
		return Shader{}, fmt.Errorf("could not read vertex shader file: %w", err)
	}
	fragmentSource, err := fs.ReadFile(r.assets, fragmentPath)
	if err != nil {
		return Shader{}, fmt.Errorf("could not read fragment shader file: %w", err)
	}
	return r.CreateShaderFromSource(string(vertexSource), string(fragmentSource))
}

// CreateShaderFromSource compiles and links a program. On failure every
// device object created on the way is deleted and a *ShaderError returned.
func (r *Renderer) CreateShaderFromSource(vertexSrc, fragmentSrc string) (Shader, error) {
	defer profiling.Track("graphics.CreateShader")()
	if r.destroyed {
		return Shader{}, ErrDestroyed
	}
	program, err := r.compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		logging.Logger().Warn("graphics: shader rejected", "err", err)
		return Shader{}, err
	}
	h, s := r.shaders.Alloc()
	s.program = program
	return Shader{h}, nil
}

func (r *Renderer) compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	dev := r.dev
	vertexShader, err := r.compileShader(vertexSrc, gpu.VertexStage)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := r.compileShader(fragmentSrc, gpu.FragmentStage)
	if err != nil {
		dev.DeleteShader(vertexShader)
		return 0, err
	}

	program := dev.CreateProgram()
	dev.AttachShader(program, vertexShader)
	dev.AttachShader(program, fragmentShader)
	dev.LinkProgram(program)
	dev.DeleteShader(vertexShader)
	dev.DeleteShader(fragmentShader)

	if !dev.ProgramLinked(program) {
		log := dev.ProgramInfoLog(program)
		dev.DeleteProgram(program)
		return 0, &ShaderError{Stage: "link", Log: log}
	}
	return program, nil
}

func (r *Renderer) compileShader(source string, stage gpu.ShaderStage) (uint32, error) {
	dev := r.dev
	shader := dev.CreateShader(stage)
	dev.ShaderSource(shader, source)
	dev.CompileShader(shader)
	if !dev.ShaderCompiled(shader) {
		log := dev.ShaderInfoLog(shader)
		dev.DeleteShader(shader)
		return 0, &ShaderError{Stage: stage.String(), Log: log}
	}
	return shader, nil
}

// DestroyShader deletes the program and invalidates s.
func (r *Renderer) DestroyShader(s Shader) error {
	err := r.shaders.Release(s.h, func(d *shaderData) { r.dev.DeleteProgram(d.program) })
	if err != nil {
		return fmt.Errorf("destroy %v: %w", s, err)
	}
	return nil
}

// BindShader makes s the active program.
func (r *Renderer) BindShader(s Shader) error {
	d, err := r.shaders.Get(s.h)
	if err != nil {
		return fmt.Errorf("bind %v: %w", s, err)
	}
	r.dev.UseProgram(d.program)
	return nil
}

// UnbindShader clears the active program.
func (r *Renderer) UnbindShader() { r.dev.UseProgram(0) }

// uniform binds s and resolves name. ok is false when the program does
// not use name; that is not an error.
func (r *Renderer) uniform(s Shader, name string) (loc int32, ok bool, err error) {
	d, err := r.shaders.Get(s.h)
	if err != nil {
		return -1, false, fmt.Errorf("set uniform %q on %v: %w", name, s, err)
	}
	r.dev.UseProgram(d.program)
	loc = r.dev.UniformLocation(d.program, name)
	if loc < 0 {
		logging.Logger().Debug("graphics: uniform not found", "shader", s.String(), "name", name)
		return loc, false, nil
	}
	return loc, true, nil
}

// SetFloat sets a float uniform. Names the program does not use are ignored.
func (r *Renderer) SetFloat(s Shader, name string, v float32) error {
	loc, ok, err := r.uniform(s, name)
	if ok {
		r.dev.Uniform1f(loc, v)
	}
	return err
}

// SetInt sets an int or sampler uniform.
func (r *Renderer) SetInt(s Shader, name string, v int32) error {
	loc, ok, err := r.uniform(s, name)
	if ok {
		r.dev.Uniform1i(loc, v)
	}
	return err
}

func (r *Renderer) SetVec3(s Shader, name string, v vecmath.Vec3) error {
	loc, ok, err := r.uniform(s, name)
	if ok {
		r.dev.Uniform3f(loc, v[0], v[1], v[2])
	}
	return err
}

func (r *Renderer) SetVec4(s Shader, name string, v vecmath.Vec4) error {
	loc, ok, err := r.uniform(s, name)
	if ok {
		r.dev.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
	return err
}

func (r *Renderer) SetMat4(s Shader, name string, m vecmath.Mat4) error {
	loc, ok, err := r.uniform(s, name)
	if ok {
		r.dev.UniformMatrix4fv(loc, m[:])
	}
	return err
}

// SetIntArray sets an int array uniform starting at element 0.
func (r *Renderer) SetIntArray(s Shader, name string, v []int32) error {
	loc, ok, err := r.uniform(s, name)
	if ok && len(v) > 0 {
		r.dev.Uniform1iv(loc, v)
	}
	return err
}

// SetMat4Array sets a matrix array uniform starting at element 0.
func (r *Renderer) SetMat4Array(s Shader, name string, ms []vecmath.Mat4) error {
	loc, ok, err := r.uniform(s, name)
	if ok && len(ms) > 0 {
		flat := make([]float32, 0, len(ms)*16)
		for i := range ms {
			flat = append(flat, ms[i][:]...)
		}
		r.dev.UniformMatrix4fv(loc, flat)
	}
	return err
}
