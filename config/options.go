package config

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/lixenwraith/termgraph/bell"
	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/terminal"
)

// ResolveDriver maps "auto" to tcell when stdout is a terminal
func (c Config) ResolveDriver() string {
	if c.Terminal.Driver != DriverAuto {
		return c.Terminal.Driver
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return DriverTcell
	}
	return DriverHeadless
}

// EngineOptions builds the backend and bell described by c. An audio device
// that fails to open leaves the bell silent rather than failing.
func (c Config) EngineOptions() (engine.Options, error) {
	opts := engine.DefaultOptions()
	opts.TabNavigation = c.Input.TabNavigation
	opts.QueueCapacity = c.Input.QueueCapacity
	opts.FrameTrace = c.Log.FrameTrace

	switch drv := c.ResolveDriver(); drv {
	case DriverTcell:
		b, err := terminal.NewTcellDriver(c.Terminal.Mouse)
		if err != nil {
			return opts, fmt.Errorf("terminal: %w", err)
		}
		opts.Backend = b
	case DriverHeadless:
		opts.Backend = terminal.NewHeadless(c.Terminal.Width, c.Terminal.Height)
	default:
		return opts, fmt.Errorf("terminal.driver: unknown driver %q", drv)
	}

	b := bell.New(c.bellConfig())
	if err := b.Init(); err != nil {
		log.Printf("config: bell disabled: %v", err)
	}
	opts.Bell = b
	return opts, nil
}
