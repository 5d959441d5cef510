// Package config loads the preview program's settings from TOML.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window Window `toml:"window"`
	View   View   `toml:"view"`
	Render Render `toml:"render"`
	Log    Log    `toml:"log"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`
}

// View is the starting camera. Zoom is pixels per world unit.
type View struct {
	CenterX  float64 `toml:"center_x"`
	CenterY  float64 `toml:"center_y"`
	Zoom     uint64  `toml:"zoom"`
	MinZoom  uint64  `toml:"min_zoom"`
	MaxZoom  uint64  `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"` // fraction of the current zoom per wheel notch
}

type Render struct {
	MaxIterations int32 `toml:"max_iterations"`
	IterationStep int32 `toml:"iteration_step"`
	Workers       int   `toml:"workers"` // 0 means GOMAXPROCS
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{Title: "Mandelbrot", Width: 800, Height: 600},
		View: View{
			CenterX:  -0.5,
			CenterY:  0,
			Zoom:     200,
			MinZoom:  1,
			ZoomStep: 0.25,
		},
		Render: Render{MaxIterations: 256, IterationStep: 32},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return finish(config, md)
}

// Parse reads TOML text over the defaults.
func Parse(data string) (*Config, error) {
	config := Default()
	md, err := toml.Decode(data, config)
	if err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	return finish(config, md)
}

func finish(config *Config, md toml.MetaData) (*Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks ranges that would otherwise make the kernel a no-op.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.View.MinZoom == 0 {
		return fmt.Errorf("config: min_zoom must be at least 1")
	}
	if c.View.MaxZoom != 0 && c.View.MaxZoom <= c.View.MinZoom {
		return fmt.Errorf("config: max_zoom %d must exceed min_zoom %d", c.View.MaxZoom, c.View.MinZoom)
	}
	if c.View.Zoom < c.View.MinZoom || (c.View.MaxZoom != 0 && c.View.Zoom > c.View.MaxZoom) {
		return fmt.Errorf("config: zoom %d outside [min_zoom, max_zoom]", c.View.Zoom)
	}
	if c.View.ZoomStep <= 0 {
		return fmt.Errorf("config: zoom_step must be positive")
	}
	if c.Render.MaxIterations < 0 {
		return fmt.Errorf("config: max_iterations must not be negative")
	}
	if c.Render.IterationStep <= 0 {
		return fmt.Errorf("config: iteration_step must be positive")
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", l.Level, err)
	}
	return level, nil
}
