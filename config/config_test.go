package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TERMGRAPH_DRIVER", "TERMGRAPH_DEBUG", "TERMGRAPH_BELL", "TERMGRAPH_BELL_VOLUME"} {
		t.Setenv(k, "")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[terminal]
driver = "headless"
width = 120

[input]
tab_navigation = false

[log]
frame_trace = true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.Terminal.Driver = DriverHeadless
	want.Terminal.Width = 120
	want.Input.TabNavigation = false
	want.Log.FrameTrace = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "[terminal]\ncolour = true\n", "unknown keys"},
		{"syntax", "[terminal\n", "parse"},
		{"driver", "[terminal]\ndriver = \"sdl\"\n", "terminal.driver"},
		{"size cap", "[terminal]\nwidth = 100000\nheight = 100000\n", "terminal.width/height"},
		{"queue", "[input]\nqueue_capacity = 0\n", "input.queue_capacity"},
		{"volume", "[bell]\nvolume = 150\n", "bell.volume"},
		{"hex", "[themes.ocean]\nfg = \"#zz0000\"\n", "themes.ocean.fg"},
		{"border", "[themes.ocean]\nborder = \"dotted\"\n", "themes.ocean.border"},
		{"decoration", "[themes.ocean]\ndecorations = [\"bold\", \"wavy\"]\n", "themes.ocean.decorations"},
		{"opacity", "[themes.ocean]\nopacity = 1.5\n", "themes.ocean.opacity"},
		{"theme key", "[themes.ocean]\nshadow = \"#000000\"\n", "unknown keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAppliesEnvLast(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "termgraph.toml")
	doc := "[terminal]\ndriver = \"tcell\"\n\n[bell]\nvolume = 80\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TERMGRAPH_DRIVER", "headless")
	t.Setenv("TERMGRAPH_DEBUG", "true")
	t.Setenv("TERMGRAPH_BELL", "1")
	t.Setenv("TERMGRAPH_BELL_VOLUME", "30")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Terminal.Driver != DriverHeadless {
		t.Errorf("driver = %q, want headless", cfg.Terminal.Driver)
	}
	if !cfg.Log.Debug {
		t.Error("debug not enabled from env")
	}
	if !cfg.Bell.Enabled || cfg.Bell.Volume != 30 {
		t.Errorf("bell = %+v, want enabled at 30", cfg.Bell)
	}
}

func TestApplyEnvIgnoresMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv("TERMGRAPH_DEBUG", "maybe")
	t.Setenv("TERMGRAPH_BELL_VOLUME", "loud")

	cfg := Default()
	ApplyEnv(&cfg)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("malformed env changed config (-want +got):\n%s", diff)
	}
}

func TestLoadReportsPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[input]\nqueue_capacity = -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("Load error = %v, want mention of %s", err, path)
	}
}

func TestEngineOptionsHeadless(t *testing.T) {
	cfg := Default()
	cfg.Terminal.Driver = DriverHeadless
	cfg.Terminal.Width, cfg.Terminal.Height = 40, 12
	cfg.Input.TabNavigation = false
	cfg.Input.QueueCapacity = 8
	cfg.Log.FrameTrace = true

	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("EngineOptions: %v", err)
	}
	hl, ok := opts.Backend.(*terminal.Headless)
	if !ok {
		t.Fatalf("backend = %T, want *terminal.Headless", opts.Backend)
	}
	if err := hl.Init(); err != nil {
		t.Fatal(err)
	}
	defer hl.Fini()
	if w, h := hl.Size(); w != 40 || h != 12 {
		t.Errorf("size = %dx%d, want 40x12", w, h)
	}
	if opts.TabNavigation || opts.QueueCapacity != 8 || !opts.FrameTrace {
		t.Errorf("options not carried: %+v", opts)
	}
	if opts.Bell == nil {
		t.Error("bell not set")
	}
}

func TestResolveDriverExplicit(t *testing.T) {
	cfg := Default()
	cfg.Terminal.Driver = DriverTcell
	if got := cfg.ResolveDriver(); got != DriverTcell {
		t.Errorf("ResolveDriver = %q, want tcell", got)
	}
}

func TestApplyThemes(t *testing.T) {
	cfg, err := Parse([]byte(`
[themes.dark]
fg = "#ff0000"

[themes.ocean]
bg = "#003366"
border = "rounded"
decorations = ["bold", "underline"]
opacity = 0.5
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	e, err := engine.New(engine.Options{Backend: terminal.NewHeadless(10, 4)})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	ids, err := cfg.ApplyThemes(e)
	if err != nil {
		t.Fatalf("ApplyThemes: %v", err)
	}
	if ids["dark"] != engine.ThemeDark {
		t.Errorf("dark id = %d, want built-in", ids["dark"])
	}

	dark, _ := e.ThemeStyle(engine.ThemeDark)
	if dark.Fg != terminal.RGB(255, 0, 0) {
		t.Errorf("dark fg = %v, want #ff0000", dark.Fg)
	}
	if !dark.Has(engine.PropBg) {
		t.Error("dark bg lost by partial edit")
	}

	ocean, err := e.ThemeStyle(ids["ocean"])
	if err != nil {
		t.Fatalf("ocean theme: %v", err)
	}
	want := engine.VisualStyle{
		Bg:      terminal.RGB(0, 0x33, 0x66),
		Border:  render.BorderRounded,
		Attrs:   terminal.AttrBold | terminal.AttrUnderline,
		Opacity: 0.5,
		Set:     engine.PropBg | engine.PropBorder | engine.PropAttrs | engine.PropOpacity,
	}
	if diff := cmp.Diff(want, ocean); diff != "" {
		t.Errorf("ocean style (-want +got):\n%s", diff)
	}
}
