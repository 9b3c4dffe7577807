package ffi

import (
	"fmt"
	"log"

	"github.com/lixenwraith/termgraph/config"
	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/terminal"
)

// InitConfig loads the TOML file at path (missing file: defaults), builds
// the engine it describes and applies its themes.
func InitConfig(path []byte) int32 {
	var cfg config.Config
	return install("init config", func() (engine.Options, error) {
		var err error
		if cfg, err = config.Load(string(path)); err != nil {
			return engine.Options{}, err
		}
		return cfg.EngineOptions()
	}, func(e *engine.Engine) error {
		return applyThemes(e, cfg)
	})
}

// InitFromConfig builds the engine described by cfg and applies its themes
func InitFromConfig(cfg config.Config) int32 {
	return install("init config", cfg.EngineOptions, func(e *engine.Engine) error {
		return applyThemes(e, cfg)
	})
}

func applyThemes(e *engine.Engine, cfg config.Config) error {
	ids, err := cfg.ApplyThemes(e)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		log.Printf("ffi: applied %d configured themes", len(ids))
	}
	return nil
}

// InitHeadless starts an engine on a deterministic in-memory terminal.
// The size must be positive and within terminal.MaxCells.
func InitHeadless(width, height int32) int32 {
	return install("init headless", func() (engine.Options, error) {
		if width <= 0 || height <= 0 || !terminal.ValidSize(int(width), int(height)) {
			return engine.Options{}, fmt.Errorf("%w: size %dx%d", engine.ErrInvalidArgument, width, height)
		}
		return engine.Options{
			Backend:       terminal.NewHeadless(int(width), int(height)),
			TabNavigation: true,
		}, nil
	}, nil)
}
