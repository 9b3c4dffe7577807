// Package config loads termgraph settings from TOML with environment
// overrides and converts them into engine options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/termgraph/bell"
	"github.com/lixenwraith/termgraph/terminal"
)

// Terminal drivers
const (
	DriverAuto     = "auto"
	DriverTcell    = "tcell"
	DriverHeadless = "headless"
)

// Config is the root of a termgraph.toml file
type Config struct {
	Terminal TerminalConfig         `toml:"terminal"`
	Input    InputConfig            `toml:"input"`
	Bell     BellConfig             `toml:"bell"`
	Log      LogConfig              `toml:"log"`
	Themes   map[string]ThemeConfig `toml:"themes"`
}

type TerminalConfig struct {
	// Driver is "tcell", "headless" or "auto" (tcell when stdout is a terminal)
	Driver string `toml:"driver"`
	Mouse  bool   `toml:"mouse"`
	// Headless dimensions
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type InputConfig struct {
	TabNavigation bool `toml:"tab_navigation"`
	QueueCapacity int  `toml:"queue_capacity"`
}

type BellConfig struct {
	Enabled bool `toml:"enabled"`
	// Volume in percent, 0-100
	Volume    int     `toml:"volume"`
	Frequency float64 `toml:"frequency"`
}

type LogConfig struct {
	Debug      bool   `toml:"debug"`
	File       string `toml:"file"`
	FrameTrace bool   `toml:"frame_trace"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	bc := bell.DefaultConfig()
	return Config{
		Terminal: TerminalConfig{
			Driver: DriverAuto,
			Mouse:  true,
			Width:  80,
			Height: 24,
		},
		Input: InputConfig{
			TabNavigation: true,
			QueueCapacity: 256,
		},
		Bell: BellConfig{
			Enabled:   bc.Enabled,
			Volume:    int(bc.Volume * 100),
			Frequency: bc.Frequency,
		},
		Log: LogConfig{
			File: "termgraph.log",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		ApplyEnv(&cfg)
		return cfg, cfg.Validate()
	}
	if err != nil {
		return Default(), fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	ApplyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Parse decodes TOML over the defaults. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Default(), fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Default(), fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from TERMGRAPH_* variables. Malformed values
// are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("TERMGRAPH_DRIVER"); v != "" {
		cfg.Terminal.Driver = v
	}
	if v := os.Getenv("TERMGRAPH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Debug = b
		}
	}

	bc := cfg.bellConfig()
	bc = bell.ApplyEnv(bc)
	cfg.Bell.Enabled = bc.Enabled
	cfg.Bell.Volume = int(bc.Volume*100 + 0.5)
}

// Validate reports the first setting outside its domain, naming its key
func (c Config) Validate() error {
	switch c.Terminal.Driver {
	case DriverAuto, DriverTcell, DriverHeadless:
	default:
		return fmt.Errorf("terminal.driver: unknown driver %q", c.Terminal.Driver)
	}
	if c.Terminal.Width <= 0 || c.Terminal.Height <= 0 {
		return fmt.Errorf("terminal.width/height: %dx%d must be positive", c.Terminal.Width, c.Terminal.Height)
	}
	if !terminal.ValidSize(c.Terminal.Width, c.Terminal.Height) {
		return fmt.Errorf("terminal.width/height: %dx%d exceeds %d cells", c.Terminal.Width, c.Terminal.Height, terminal.MaxCells)
	}
	if c.Input.QueueCapacity <= 0 {
		return fmt.Errorf("input.queue_capacity: %d must be positive", c.Input.QueueCapacity)
	}
	if c.Bell.Volume < 0 || c.Bell.Volume > 100 {
		return fmt.Errorf("bell.volume: %d outside 0-100", c.Bell.Volume)
	}
	if c.Bell.Frequency <= 0 {
		return fmt.Errorf("bell.frequency: %v must be positive", c.Bell.Frequency)
	}
	for name, th := range c.Themes {
		if _, err := th.style(); err != nil {
			return fmt.Errorf("themes.%s.%w", name, err)
		}
	}
	return nil
}

func (c Config) bellConfig() bell.Config {
	bc := bell.DefaultConfig()
	bc.Enabled = c.Bell.Enabled
	bc.Volume = float64(c.Bell.Volume) / 100
	bc.Frequency = c.Bell.Frequency
	return bc
}
