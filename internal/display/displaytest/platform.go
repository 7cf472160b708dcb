// Package displaytest provides a scriptable display.Platform.
package displaytest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mini-gfx/internal/display"
	"mini-gfx/internal/gpu"
	"mini-gfx/internal/gpu/gputest"
)

// DefaultConfigs mimics a typical mobile driver: two 16-bit-depth configs
// followed by two acceptable ones.
func DefaultConfigs() []display.Config {
	return []display.Config{
		{ID: 1, Red: 5, Green: 6, Blue: 5, Depth: 16, Major: 3},
		{ID: 2, Red: 8, Green: 8, Blue: 8, Depth: 16, Major: 3},
		{ID: 3, Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24, Major: 3},
		{ID: 4, Red: 8, Green: 8, Blue: 8, Depth: 24, Stencil: 8, Major: 3},
	}
}

// Platform is an in-memory display.Platform. Width and Height are what
// every surface reports; tests change them to simulate a resize.
type Platform struct {
	ConfigList []display.Config
	OpenErr    error
	ConfigsErr error
	// SurfaceErr and ContextErr fail creation for the given config IDs.
	SurfaceErr     map[int]error
	ContextErr     map[int]error
	MakeCurrentErr error
	SwapErr        error

	Width  int
	Height int

	Opened   bool
	Closed   int
	Interval int
	Swaps    int
	Surfaces []*Surface
	Contexts []*Context
}

var _ display.Platform = (*Platform)(nil)

// New returns a platform offering DefaultConfigs with an 800x600 surface.
func New() *Platform {
	return &Platform{ConfigList: DefaultConfigs(), Width: 800, Height: 600, Interval: -1}
}

// Resize changes the size reported by every surface.
func (p *Platform) Resize(w, h int) { p.Width, p.Height = w, h }

// LiveSurfaces counts surfaces not yet destroyed.
func (p *Platform) LiveSurfaces() int {
	n := 0
	for _, s := range p.Surfaces {
		if !s.Destroyed {
			n++
		}
	}
	return n
}

// LiveContexts counts contexts not yet destroyed.
func (p *Platform) LiveContexts() int {
	n := 0
	for _, c := range p.Contexts {
		if !c.Destroyed {
			n++
		}
	}
	return n
}

func (p *Platform) Open() error {
	if p.OpenErr != nil {
		return p.OpenErr
	}
	p.Opened = true
	return nil
}

func (p *Platform) Configs() ([]display.Config, error) {
	if p.ConfigsErr != nil {
		return nil, p.ConfigsErr
	}
	return p.ConfigList, nil
}

func (p *Platform) CreateSurface(w display.NativeWindow, cfg display.Config) (display.Surface, error) {
	if err := p.SurfaceErr[cfg.ID]; err != nil {
		return nil, err
	}
	s := &Surface{platform: p, Window: w, Config: cfg}
	p.Surfaces = append(p.Surfaces, s)
	return s, nil
}

func (p *Platform) CreateContext(s display.Surface, cfg display.Config) (display.RenderContext, error) {
	if err := p.ContextErr[cfg.ID]; err != nil {
		return nil, err
	}
	c := &Context{platform: p, Surface: s.(*Surface), Config: cfg}
	p.Contexts = append(p.Contexts, c)
	return c, nil
}

func (p *Platform) SwapInterval(n int) error {
	p.Interval = n
	return nil
}

func (p *Platform) Close() { p.Closed++ }

// Surface is a fake window surface.
type Surface struct {
	platform  *Platform
	Window    display.NativeWindow
	Config    display.Config
	Destroyed bool
}

func (s *Surface) Size() (int, int) { return s.platform.Width, s.platform.Height }

func (s *Surface) SwapBuffers() error {
	if s.platform.SwapErr != nil {
		return s.platform.SwapErr
	}
	s.platform.Swaps++
	return nil
}

func (s *Surface) Destroy() { s.Destroyed = true }

// Context is a fake rendering context.
type Context struct {
	platform  *Platform
	Surface   *Surface
	Config    display.Config
	Current   bool
	Destroyed bool
}

func (c *Context) MakeCurrent() error {
	if c.platform.MakeCurrentErr != nil {
		return c.platform.MakeCurrentErr
	}
	c.Current = true
	return nil
}

func (c *Context) Destroy() {
	c.Current = false
	c.Destroyed = true
}

// ErrInjected is a ready-made failure for tests.
var ErrInjected = errors.New("displaytest: injected failure")

// Ready returns a Manager in the Ready state on a fresh Platform backed by
// a gputest.Device.
func Ready(t testing.TB) (*display.Manager, *Platform, *gputest.Device) {
	t.Helper()
	p := New()
	dev := gputest.New()
	m := display.New(p, display.Options{
		NewDevice: func() (gpu.Device, error) { return dev, nil },
	})
	require.NoError(t, m.Create("test-window"))
	return m, p, dev
}
