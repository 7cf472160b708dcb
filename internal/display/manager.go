// Package display owns the graphics context: configuration negotiation,
// surface and context creation, resize polling and presentation.
//
// A Manager moves through Uninitialized, Ready and Destroyed. Every
// rendering call requires Ready.
package display

import (
	"errors"
	"fmt"

	"mini-gfx/internal/gpu"
	"mini-gfx/internal/logging"
)

// SizeUnknown is reported by Width and Height before the first resize poll.
const SizeUnknown = -1

var (
	ErrNoMatchingConfig = errors.New("display: no rgb888/depth24 configuration")
	ErrMakeCurrent      = errors.New("display: make current failed")
	ErrSwap             = errors.New("display: swap buffers failed")
	ErrNotReady         = errors.New("display: context not ready")
	ErrAlreadyCreated   = errors.New("display: context already created")
)

// DeviceError reports a failure the renderer cannot recover from. The
// caller is expected to stop rendering.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string { return "display: " + e.Op + ": " + e.Err.Error() }

func (e *DeviceError) Unwrap() error { return e.Err }

// State is the lifecycle stage of a Manager.
type State int

const (
	Uninitialized State = iota
	Ready
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configure a Manager.
type Options struct {
	// NewDevice builds the command stream once the context is current.
	NewDevice func() (gpu.Device, error)
	// SwapInterval is the number of vertical syncs per Present. 0 disables
	// vsync.
	SwapInterval int
}

// Manager owns one surface and one context on one platform.
type Manager struct {
	platform Platform
	opts     Options

	state   State
	opened  bool
	surface Surface
	context RenderContext
	device  gpu.Device
	config  Config

	width  int
	height int
}

// New returns an uninitialized Manager.
func New(p Platform, opts Options) *Manager {
	return &Manager{
		platform: p,
		opts:     opts,
		width:    SizeUnknown,
		height:   SizeUnknown,
	}
}

// Create negotiates a configuration, creates a surface and context for w
// and makes the context current. Acceptable configurations are tried in
// platform order until one yields a surface and a context.
func (m *Manager) Create(w NativeWindow) error {
	if m.state != Uninitialized {
		return &DeviceError{Op: "create", Err: ErrAlreadyCreated}
	}
	log := logging.Logger()

	if err := m.platform.Open(); err != nil {
		return &DeviceError{Op: "open display", Err: err}
	}
	m.opened = true

	configs, err := m.platform.Configs()
	if err != nil {
		m.release()
		return &DeviceError{Op: "list configs", Err: err}
	}
	var candidates []Config
	for _, c := range configs {
		if c.Acceptable() {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		m.release()
		return &DeviceError{Op: "choose config", Err: ErrNoMatchingConfig}
	}

	var lastErr error
	for _, c := range candidates {
		if lastErr = m.open(w, c); lastErr == nil {
			m.config = c
			break
		}
		log.Warn("display: config rejected", "config", c.String(), "err", lastErr)
	}
	if lastErr != nil {
		m.release()
		return &DeviceError{Op: "create context", Err: lastErr}
	}

	if err := m.context.MakeCurrent(); err != nil {
		m.release()
		return &DeviceError{Op: "make current", Err: fmt.Errorf("%w: %w", ErrMakeCurrent, err)}
	}

	if m.opts.NewDevice == nil {
		m.release()
		return &DeviceError{Op: "create device", Err: errors.New("no device constructor")}
	}
	dev, err := m.opts.NewDevice()
	if err != nil {
		m.release()
		return &DeviceError{Op: "create device", Err: err}
	}
	m.device = dev

	if err := m.platform.SwapInterval(m.opts.SwapInterval); err != nil {
		log.Warn("display: swap interval not applied", "interval", m.opts.SwapInterval, "err", err)
	}

	m.width, m.height = SizeUnknown, SizeUnknown
	m.state = Ready
	log.Info("display: context current", "config", m.config.String(), "driver", dev.Version())
	return nil
}

// open creates a surface and a context for one configuration, cleaning up
// after itself on failure.
func (m *Manager) open(w NativeWindow, c Config) error {
	s, err := m.platform.CreateSurface(w, c)
	if err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	ctx, err := m.platform.CreateContext(s, c)
	if err != nil {
		s.Destroy()
		return fmt.Errorf("context: %w", err)
	}
	m.surface, m.context = s, ctx
	return nil
}

func (m *Manager) release() {
	if m.context != nil {
		m.context.Destroy()
		m.context = nil
	}
	if m.surface != nil {
		m.surface.Destroy()
		m.surface = nil
	}
	if m.opened {
		m.platform.Close()
		m.opened = false
	}
	m.device = nil
}

// UpdateRenderArea polls the surface size. When it differs from the cached
// size the cache and the viewport are updated and true is returned.
func (m *Manager) UpdateRenderArea() (bool, error) {
	if m.state != Ready {
		return false, ErrNotReady
	}
	w, h := m.surface.Size()
	if w == m.width && h == m.height {
		return false, nil
	}
	m.width, m.height = w, h
	m.device.Viewport(0, 0, int32(w), int32(h))
	logging.Logger().Debug("display: render area changed", "width", w, "height", h)
	return true, nil
}

// Present swaps the surface buffers. A failed swap is a *DeviceError
// wrapping ErrSwap.
func (m *Manager) Present() error {
	if m.state != Ready {
		return ErrNotReady
	}
	if err := m.surface.SwapBuffers(); err != nil {
		return &DeviceError{Op: "present", Err: fmt.Errorf("%w: %w", ErrSwap, err)}
	}
	return nil
}

// Destroy releases the context, the surface and the display connection.
// It is safe to call more than once.
func (m *Manager) Destroy() {
	if m.state == Destroyed {
		return
	}
	m.release()
	m.state = Destroyed
	m.width, m.height = SizeUnknown, SizeUnknown
	logging.Logger().Info("display: context destroyed")
}

// Width returns the cached surface width, or SizeUnknown.
func (m *Manager) Width() int { return m.width }

// Height returns the cached surface height, or SizeUnknown.
func (m *Manager) Height() int { return m.height }

func (m *Manager) State() State { return m.state }

// Device returns the command stream of the current context, or nil when
// the Manager is not Ready.
func (m *Manager) Device() gpu.Device { return m.device }

// Config returns the configuration selected by Create.
func (m *Manager) Config() Config { return m.config }
