// Package glfwplatform implements display.Platform on GLFW 3.3.
//
// GLFW cannot enumerate framebuffer configurations, so the configurations
// the platform offers are the candidates it is built with. Each one becomes
// a set of window hints; a candidate the driver cannot satisfy fails at
// CreateSurface and the Manager moves on to the next.
package glfwplatform

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"mini-gfx/internal/display"
)

// Window describes the window CreateSurface opens.
type Window struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
}

// Platform is a GLFW connection. All calls must come from the main thread.
type Platform struct {
	candidates []display.Config
	window     *glfw.Window
}

var _ display.Platform = (*Platform)(nil)

// New returns a platform offering candidates in order.
func New(candidates []display.Config) *Platform {
	return &Platform{candidates: candidates}
}

// Window returns the most recently created GLFW window, or nil.
func (p *Platform) Window() *glfw.Window { return p.window }

// ShouldClose reports whether the user asked to close the window or
// pressed Escape.
func (p *Platform) ShouldClose() bool {
	if p.window == nil {
		return true
	}
	if p.window.GetKey(glfw.KeyEscape) == glfw.Press {
		p.window.SetShouldClose(true)
	}
	return p.window.ShouldClose()
}

// PollEvents processes pending window events.
func (p *Platform) PollEvents() { glfw.PollEvents() }

func (p *Platform) Open() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	return nil
}

func (p *Platform) Configs() ([]display.Config, error) {
	if len(p.candidates) == 0 {
		return nil, errors.New("glfw: no candidate configurations")
	}
	return p.candidates, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (p *Platform) CreateSurface(w display.NativeWindow, cfg display.Config) (display.Surface, error) {
	desc, ok := w.(Window)
	if !ok {
		return nil, fmt.Errorf("glfw: unsupported native window %T", w)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.RedBits, cfg.Red)
	glfw.WindowHint(glfw.GreenBits, cfg.Green)
	glfw.WindowHint(glfw.BlueBits, cfg.Blue)
	glfw.WindowHint(glfw.AlphaBits, cfg.Alpha)
	glfw.WindowHint(glfw.DepthBits, cfg.Depth)
	glfw.WindowHint(glfw.StencilBits, cfg.Stencil)
	glfw.WindowHint(glfw.Resizable, boolHint(desc.Resizable))

	win, err := glfw.CreateWindow(desc.Width, desc.Height, desc.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	p.window = win
	return &surface{platform: p, window: win}, nil
}

func (p *Platform) CreateContext(s display.Surface, _ display.Config) (display.RenderContext, error) {
	gs, ok := s.(*surface)
	if !ok {
		return nil, fmt.Errorf("glfw: foreign surface %T", s)
	}
	// GLFW creates the context together with the window.
	return &context{window: gs.window}, nil
}

func (p *Platform) SwapInterval(n int) (err error) {
	defer recoverGLFW(&err)
	glfw.SwapInterval(n)
	return nil
}

func (p *Platform) Close() {
	glfw.Terminate()
	p.window = nil
}

// recoverGLFW turns the panics go-gl/glfw raises for GLFW errors into
// returned errors.
func recoverGLFW(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = e
		return
	}
	*err = fmt.Errorf("glfw: %v", r)
}

type surface struct {
	platform *Platform
	window   *glfw.Window
}

func (s *surface) Size() (int, int) { return s.window.GetFramebufferSize() }

func (s *surface) SwapBuffers() (err error) {
	defer recoverGLFW(&err)
	s.window.SwapBuffers()
	return nil
}

func (s *surface) Destroy() {
	if s.platform.window == s.window {
		s.platform.window = nil
	}
	s.window.Destroy()
}

type context struct {
	window *glfw.Window
}

func (c *context) MakeCurrent() (err error) {
	defer recoverGLFW(&err)
	c.window.MakeContextCurrent()
	return nil
}

func (c *context) Destroy() {
	glfw.DetachCurrentContext()
}
