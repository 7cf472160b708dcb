// Package config holds the settings of the viewer and the renderer.
//
// Settings load from TOML or YAML, chosen by file extension. Fields missing
// from the file keep their defaults and out-of-range values are clamped.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Clamping bounds.
const (
	MinPoolBlockSize     = 1
	MaxPoolBlockSize     = 4096
	DefaultPoolBlockSize = 100
	MaxSwapInterval      = 4
	MaxFPSLimit          = 1000
)

// Window describes the window the viewer opens. FPSLimit caps the frame
// rate; 0 leaves pacing to the swap interval.
type Window struct {
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Title     string `toml:"title" yaml:"title"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	FPSLimit  int    `toml:"fps_limit" yaml:"fps_limit"`
}

// Candidate is one framebuffer configuration offered to the context
// manager, in order of preference.
type Candidate struct {
	Red     int `toml:"red" yaml:"red"`
	Green   int `toml:"green" yaml:"green"`
	Blue    int `toml:"blue" yaml:"blue"`
	Alpha   int `toml:"alpha" yaml:"alpha"`
	Depth   int `toml:"depth" yaml:"depth"`
	Stencil int `toml:"stencil" yaml:"stencil"`
	Major   int `toml:"major" yaml:"major"`
	Minor   int `toml:"minor" yaml:"minor"`
}

// Context configures context creation.
type Context struct {
	SwapInterval int         `toml:"swap_interval" yaml:"swap_interval"`
	Candidates   []Candidate `toml:"candidates" yaml:"candidates"`
}

// Color is a linear RGBA color.
type Color struct {
	R float32 `toml:"r" yaml:"r"`
	G float32 `toml:"g" yaml:"g"`
	B float32 `toml:"b" yaml:"b"`
	A float32 `toml:"a" yaml:"a"`
}

// Renderer configures the renderer.
type Renderer struct {
	// PoolBlockSize is the number of handles per resource pool block.
	PoolBlockSize int   `toml:"pool_block_size" yaml:"pool_block_size"`
	ClearColor    Color `toml:"clear_color" yaml:"clear_color"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level" yaml:"level"`
}

// Settings is the complete configuration.
type Settings struct {
	Window   Window   `toml:"window" yaml:"window"`
	Context  Context  `toml:"context" yaml:"context"`
	Renderer Renderer `toml:"renderer" yaml:"renderer"`
	Log      Log      `toml:"log" yaml:"log"`
}

// DefaultCandidates asks for a GL 4.1 core context first and a 3.3 core
// context second, each with 8-bit RGB and a 24-bit depth buffer.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24, Stencil: 8, Major: 4, Minor: 1},
		{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24, Stencil: 8, Major: 3, Minor: 3},
	}
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window:  Window{Width: 900, Height: 600, Title: "mini-gfx", Resizable: true},
		Context: Context{SwapInterval: 1, Candidates: DefaultCandidates()},
		Renderer: Renderer{
			PoolBlockSize: DefaultPoolBlockSize,
			ClearColor:    Color{R: 0.5, G: 0.1, B: 0.1, A: 1},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads settings from a .toml, .yaml or .yml file on top of Default.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("could not read config file: %w", err)
	}
	s, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml", ".yml")
// on top of Default. Unknown keys are rejected.
func Parse(data []byte, ext string) (Settings, error) {
	s := Default()
	s.Context.Candidates = nil

	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return Settings{}, fmt.Errorf("failed to decode toml: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document leaves the defaults
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("unsupported config format %q", ext)
	}

	if len(s.Context.Candidates) == 0 {
		s.Context.Candidates = DefaultCandidates()
	}
	s.clamp()
	return s, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Settings) clamp() {
	s.Renderer.PoolBlockSize = clamp(s.Renderer.PoolBlockSize, MinPoolBlockSize, MaxPoolBlockSize)
	s.Context.SwapInterval = clamp(s.Context.SwapInterval, 0, MaxSwapInterval)
	s.Window.FPSLimit = clamp(s.Window.FPSLimit, 0, MaxFPSLimit)
	if s.Window.Width < 1 {
		s.Window.Width = 1
	}
	if s.Window.Height < 1 {
		s.Window.Height = 1
	}
}
