package display

import "fmt"

// Config describes one framebuffer configuration offered by a platform.
type Config struct {
	ID      int
	Red     int
	Green   int
	Blue    int
	Alpha   int
	Depth   int
	Stencil int
	// Major and Minor are the context version requested with this config.
	Major int
	Minor int
}

func (c Config) String() string {
	return fmt.Sprintf("#%d rgba%d%d%d%d d%d s%d gl%d.%d",
		c.ID, c.Red, c.Green, c.Blue, c.Alpha, c.Depth, c.Stencil, c.Major, c.Minor)
}

// Acceptable reports whether c has exactly 8-bit red, green and blue
// channels and a 24-bit depth buffer.
func (c Config) Acceptable() bool {
	return c.Red == 8 && c.Green == 8 && c.Blue == 8 && c.Depth == 24
}

// NativeWindow is the platform-specific window description handed to
// Platform.CreateSurface.
type NativeWindow any

// Surface is a presentable drawing area bound to a native window.
type Surface interface {
	// Size returns the current drawable size in pixels.
	Size() (width, height int)
	SwapBuffers() error
	Destroy()
}

// RenderContext is a rendering context created for a Surface.
type RenderContext interface {
	MakeCurrent() error
	Destroy()
}

// Platform is the windowing system connection: EGL on a phone, GLFW on a
// desktop, a fake in tests.
type Platform interface {
	Open() error
	// Configs lists the supported framebuffer configurations in the
	// platform's order of preference.
	Configs() ([]Config, error)
	CreateSurface(w NativeWindow, cfg Config) (Surface, error)
	CreateContext(s Surface, cfg Config) (RenderContext, error)
	// SwapInterval applies to the current context.
	SwapInterval(n int) error
	Close()
}
