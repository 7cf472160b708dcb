package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, DefaultPoolBlockSize, s.Renderer.PoolBlockSize)
	assert.Equal(t, Color{0.5, 0.1, 0.1, 1}, s.Renderer.ClearColor)
	assert.Len(t, s.Context.Candidates, 2)
	assert.Equal(t, 4, s.Context.Candidates[0].Major)
	assert.Equal(t, "info", s.Log.Level)
}

const tomlDoc = `
[window]
width = 1280
title = "demo"

[context]
swap_interval = 0

[[context.candidates]]
red = 8
green = 8
blue = 8
depth = 24
major = 3
minor = 3

[renderer]
pool_block_size = 16

[renderer.clear_color]
r = 0.0
b = 1.0

[log]
level = "debug"
`

func TestParseTOML(t *testing.T) {
	s, err := Parse([]byte(tomlDoc), ".toml")
	require.NoError(t, err)

	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height, "missing keys keep defaults")
	assert.Equal(t, "demo", s.Window.Title)
	assert.Equal(t, 0, s.Context.SwapInterval)
	require.Len(t, s.Context.Candidates, 1)
	assert.Equal(t, Candidate{Red: 8, Green: 8, Blue: 8, Depth: 24, Major: 3, Minor: 3}, s.Context.Candidates[0])
	assert.Equal(t, 16, s.Renderer.PoolBlockSize)
	assert.Equal(t, Color{R: 0, G: 0.1, B: 1, A: 1}, s.Renderer.ClearColor)
	assert.Equal(t, "debug", s.Log.Level)
}

const yamlDoc = `
window:
  height: 720
  resizable: false
  fps_limit: 5000
renderer:
  pool_block_size: 100000
context:
  swap_interval: -3
`

func TestParseYAML(t *testing.T) {
	s, err := Parse([]byte(yamlDoc), ".yml")
	require.NoError(t, err)

	assert.Equal(t, 900, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height)
	assert.False(t, s.Window.Resizable)
	assert.Equal(t, MaxFPSLimit, s.Window.FPSLimit)
	assert.Equal(t, MaxPoolBlockSize, s.Renderer.PoolBlockSize)
	assert.Equal(t, 0, s.Context.SwapInterval)
	assert.Equal(t, DefaultCandidates(), s.Context.Candidates)
}

func TestParseEmptyYAMLKeepsDefaults(t *testing.T) {
	s, err := Parse(nil, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestClamp(t *testing.T) {
	s, err := Parse([]byte("[renderer]\npool_block_size = 0\n[window]\nwidth = -5\nheight = 0\nfps_limit = -30\n[context]\nswap_interval = 9\n"), ".toml")
	require.NoError(t, err)
	assert.Equal(t, MinPoolBlockSize, s.Renderer.PoolBlockSize)
	assert.Equal(t, 1, s.Window.Width)
	assert.Equal(t, 1, s.Window.Height)
	assert.Equal(t, 0, s.Window.FPSLimit)
	assert.Equal(t, MaxSwapInterval, s.Context.SwapInterval)
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte("[renderer]\nunknown = 1\n"), ".toml")
	assert.Error(t, err)

	_, err = Parse([]byte("renderer:\n  unknown: 1\n"), ".yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("{}"), ".json")
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDoc), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1280, s.Window.Width)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
