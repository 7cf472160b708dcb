package display_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-gfx/internal/display"
	"mini-gfx/internal/display/displaytest"
	"mini-gfx/internal/gpu"
	"mini-gfx/internal/gpu/gputest"
)

func newManager(p *displaytest.Platform, dev *gputest.Device) *display.Manager {
	return display.New(p, display.Options{
		NewDevice:    func() (gpu.Device, error) { return dev, nil },
		SwapInterval: 1,
	})
}

func TestSizeUnknownBeforeCreate(t *testing.T) {
	m := newManager(displaytest.New(), gputest.New())
	assert.Equal(t, display.Uninitialized, m.State())
	assert.Equal(t, display.SizeUnknown, m.Width())
	assert.Equal(t, display.SizeUnknown, m.Height())
	assert.Nil(t, m.Device())

	_, err := m.UpdateRenderArea()
	assert.ErrorIs(t, err, display.ErrNotReady)
	assert.ErrorIs(t, m.Present(), display.ErrNotReady)
}

func TestCreatePicksFirstAcceptableConfig(t *testing.T) {
	p := displaytest.New()
	dev := gputest.New()
	m := newManager(p, dev)
	require.NoError(t, m.Create("window"))

	assert.Equal(t, display.Ready, m.State())
	assert.Equal(t, 3, m.Config().ID)
	assert.Same(t, dev, m.Device())
	assert.Equal(t, 1, p.Interval)
	require.Len(t, p.Contexts, 1)
	assert.True(t, p.Contexts[0].Current)
	assert.Equal(t, "window", p.Surfaces[0].Window)

	// the first poll always reports a change
	assert.Equal(t, display.SizeUnknown, m.Width())
	changed, err := m.UpdateRenderArea()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.View)
}

func TestCreateWithoutAcceptableConfig(t *testing.T) {
	p := displaytest.New()
	p.ConfigList = p.ConfigList[:2]
	m := newManager(p, gputest.New())

	err := m.Create("window")
	var devErr *display.DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.ErrorIs(t, err, display.ErrNoMatchingConfig)
	assert.Equal(t, display.Uninitialized, m.State())
	assert.Equal(t, 1, p.Closed)
	assert.Empty(t, p.Surfaces)
}

func TestCreateFallsBackToNextConfig(t *testing.T) {
	p := displaytest.New()
	p.ContextErr = map[int]error{3: displaytest.ErrInjected}
	m := newManager(p, gputest.New())

	require.NoError(t, m.Create("window"))
	assert.Equal(t, 4, m.Config().ID)
	require.Len(t, p.Surfaces, 2)
	assert.True(t, p.Surfaces[0].Destroyed, "surface of the rejected config is released")
	assert.Equal(t, 1, p.LiveSurfaces())
}

func TestCreateFailsWhenEveryConfigFails(t *testing.T) {
	p := displaytest.New()
	p.SurfaceErr = map[int]error{3: displaytest.ErrInjected, 4: displaytest.ErrInjected}
	m := newManager(p, gputest.New())

	err := m.Create("window")
	assert.ErrorIs(t, err, displaytest.ErrInjected)
	assert.Equal(t, display.Uninitialized, m.State())
	assert.Equal(t, 1, p.Closed)
}

func TestCreateMakeCurrentFailure(t *testing.T) {
	p := displaytest.New()
	p.MakeCurrentErr = displaytest.ErrInjected
	m := newManager(p, gputest.New())

	err := m.Create("window")
	assert.ErrorIs(t, err, display.ErrMakeCurrent)
	assert.ErrorIs(t, err, displaytest.ErrInjected)
	assert.Zero(t, p.LiveSurfaces())
	assert.Zero(t, p.LiveContexts())
}

func TestCreateDeviceFailure(t *testing.T) {
	p := displaytest.New()
	boom := errors.New("no gl")
	m := display.New(p, display.Options{
		NewDevice: func() (gpu.Device, error) { return nil, boom },
	})
	assert.ErrorIs(t, m.Create("window"), boom)
	assert.Zero(t, p.LiveContexts())
	assert.Nil(t, m.Device())
}

func TestCreateTwice(t *testing.T) {
	m, _, _ := displaytest.Ready(t)
	assert.ErrorIs(t, m.Create("again"), display.ErrAlreadyCreated)
}

func TestResizeReportedOnce(t *testing.T) {
	m, p, dev := displaytest.Ready(t)

	changed, err := m.UpdateRenderArea()
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, 800, m.Width())
	assert.Equal(t, 600, m.Height())

	changed, _ = m.UpdateRenderArea()
	assert.False(t, changed)

	p.Resize(1024, 768)
	changed, err = m.UpdateRenderArea()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1024, m.Width())
	assert.Equal(t, 768, m.Height())
	assert.Equal(t, [4]int32{0, 0, 1024, 768}, dev.View)

	for i := 0; i < 3; i++ {
		changed, _ = m.UpdateRenderArea()
		assert.False(t, changed)
	}
	assert.Equal(t, 2, dev.Called("Viewport"))
}

func TestPresent(t *testing.T) {
	m, p, _ := displaytest.Ready(t)
	require.NoError(t, m.Present())
	assert.Equal(t, 1, p.Swaps)

	p.SwapErr = displaytest.ErrInjected
	err := m.Present()
	var devErr *display.DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, "present", devErr.Op)
	assert.ErrorIs(t, err, display.ErrSwap)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, p, _ := displaytest.Ready(t)
	m.Destroy()
	m.Destroy()

	assert.Equal(t, display.Destroyed, m.State())
	assert.Equal(t, 1, p.Closed)
	assert.Zero(t, p.LiveSurfaces())
	assert.Zero(t, p.LiveContexts())
	assert.Equal(t, display.SizeUnknown, m.Width())
	assert.ErrorIs(t, m.Present(), display.ErrNotReady)
}

func TestConfigAcceptable(t *testing.T) {
	for _, c := range displaytest.DefaultConfigs() {
		assert.Equal(t, c.ID >= 3, c.Acceptable(), c.String())
	}
	assert.Equal(t, "#3 rgba8888 d24 s0 gl3.0", displaytest.DefaultConfigs()[2].String())
}
