// Command termgraph-demo exercises the engine in-process through the ffi
// surface: a form with an input, a select, a text area and a highlighted
// code viewport, faded in by a choreography group.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/lixenwraith/termgraph/config"
	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/ffi"
	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/span"
	"github.com/lixenwraith/termgraph/terminal"
)

var (
	configPath = flag.String("config", "termgraph.toml", "configuration file")
	debugFlag  = flag.Bool("debug", false, "write logs/termgraph-demo.log")
	headless   = flag.Bool("headless", false, "replay a scripted session and print the final screen")
)

const sample = `package main

import "fmt"

func main() {
	for i := range 3 {
		fmt.Println("tick", i)
	}
}
`

func main() {
	defer func() {
		if r := recover(); r != nil {
			terminal.HandleCrash(r)
		}
	}()
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if logFile := setupLogging(*debugFlag || cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}
	if *headless {
		cfg.Terminal.Driver = config.DriverHeadless
		cfg.Terminal.Width, cfg.Terminal.Height = 72, 20
	}

	if st := ffi.InitFromConfig(cfg); st != ffi.StatusOK {
		fmt.Fprintf(os.Stderr, "init: %s\n", lastError())
		os.Exit(1)
	}
	defer ffi.Shutdown()

	d, err := build()
	if err != nil {
		ffi.Shutdown()
		fmt.Fprintf(os.Stderr, "build: %v\n", err)
		os.Exit(1)
	}

	if *headless {
		err = d.script()
	} else {
		err = d.run()
	}
	if err != nil {
		ffi.Shutdown()
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func lastError() string {
	buf := make([]byte, 512)
	n := ffi.LastError(buf)
	return string(buf[:min(int(n), len(buf))])
}

// demo holds the node handles of the scene
type demo struct {
	root, header, body, form, name, theme, notes, code, status uint32
	themes                                                     []uint32
}

// builder records the first failing call
type builder struct {
	err error
}

func (b *builder) do(op string, st int32) {
	if b.err == nil && st != ffi.StatusOK {
		b.err = fmt.Errorf("%s: %s", op, lastError())
	}
}

func (b *builder) node(kind engine.Kind) uint32 {
	id := ffi.CreateNode(uint8(kind))
	if id == 0 && b.err == nil {
		b.err = fmt.Errorf("create %s: %s", kind, lastError())
	}
	return id
}

func (b *builder) text(node uint32, s string) {
	b.do("set content", ffi.SetContent(node, []byte(s)))
}

func build() (*demo, error) {
	var b builder
	d := &demo{}

	d.root = b.node(engine.KindContainer)
	b.do("root width", ffi.SetWidth(d.root, uint8(flex.UnitPercent), 100))
	b.do("root height", ffi.SetHeight(d.root, uint8(flex.UnitPercent), 100))
	b.do("root border", ffi.SetBorder(d.root, uint8(render.BorderRounded)))
	b.do("root padding", ffi.SetPadding(d.root, uint8(flex.UnitCells), 0, 1, 0, 1))

	d.header = b.node(engine.KindText)
	b.do("header mode", ffi.SetContentMode(d.header, uint8(span.ModeMarkdown), nil))
	b.text(d.header, "**termgraph** demo: Tab moves focus, Enter submits, Esc quits")
	b.do("header height", ffi.SetHeight(d.header, uint8(flex.UnitCells), 1))

	d.body = b.node(engine.KindContainer)
	b.do("body direction", ffi.SetDirection(d.body, uint8(flex.DirectionRow)))
	b.do("body grow", ffi.SetFlexGrow(d.body, 1))
	b.do("body gap", ffi.SetGap(d.body, uint8(flex.UnitCells), 0, 1))

	d.form = b.node(engine.KindContainer)
	b.do("form width", ffi.SetWidth(d.form, uint8(flex.UnitPercent), 40))
	b.do("form gap", ffi.SetGap(d.form, uint8(flex.UnitCells), 1, 0))

	d.name = b.node(engine.KindInput)
	b.do("name placeholder", ffi.SetPlaceholder(d.name, []byte("your name")))
	b.do("name max", ffi.SetMaxLength(d.name, 24))
	b.do("name height", ffi.SetHeight(d.name, uint8(flex.UnitCells), 1))

	d.theme = b.node(engine.KindSelect)
	b.do("theme options", ffi.SetOptions(d.theme, []byte("dark\nlight")))
	b.do("theme height", ffi.SetHeight(d.theme, uint8(flex.UnitCells), 2))

	d.notes = b.node(engine.KindTextArea)
	b.do("notes wrap", ffi.SetWrap(d.notes, uint8(render.WrapWord)))
	b.do("notes grow", ffi.SetFlexGrow(d.notes, 1))
	b.do("notes border", ffi.SetBorder(d.notes, uint8(render.BorderSingle)))

	d.code = b.node(engine.KindScroll)
	b.do("code grow", ffi.SetFlexGrow(d.code, 1))
	b.do("code border", ffi.SetBorder(d.code, uint8(render.BorderSingle)))
	listing := b.node(engine.KindText)
	b.do("listing mode", ffi.SetContentMode(listing, uint8(span.ModeCode), []byte("go")))
	b.text(listing, sample)

	d.status = b.node(engine.KindText)
	b.do("status height", ffi.SetHeight(d.status, uint8(flex.UnitCells), 1))
	b.do("status attrs", ffi.SetAttrs(d.status, uint8(terminal.AttrDim)))
	b.text(d.status, "ready")

	for _, link := range [][2]uint32{
		{d.root, d.header}, {d.root, d.body}, {d.root, d.status},
		{d.body, d.form}, {d.body, d.code},
		{d.form, d.name}, {d.form, d.theme}, {d.form, d.notes},
		{d.code, listing},
	} {
		b.do("append", ffi.AppendChild(link[0], link[1]))
	}
	b.do("set root", ffi.SetRoot(d.root))
	b.do("focus", ffi.SetFocus(d.name))
	if b.err != nil {
		return nil, b.err
	}
	return d, d.fadeIn()
}

// fadeIn staggers the panels in with a choreography group
func (d *demo) fadeIn() error {
	g := ffi.CreateGroup()
	if g == 0 {
		return fmt.Errorf("create group: %s", lastError())
	}
	for i, n := range []uint32{d.header, d.form, d.code} {
		if st := ffi.SetOpacity(n, 0); st != ffi.StatusOK {
			return fmt.Errorf("opacity: %s", lastError())
		}
		a := ffi.PrepareAnimation(n, uint8(engine.AnimOpacity), math.Float64bits(1), 300, uint8(engine.EaseOutCubic))
		if a == 0 {
			return fmt.Errorf("prepare: %s", lastError())
		}
		if st := ffi.GroupAdd(g, a, uint32(i*120)); st != ffi.StatusOK {
			return fmt.Errorf("group add: %s", lastError())
		}
	}
	if st := ffi.GroupStart(g); st != ffi.StatusOK {
		return fmt.Errorf("group start: %s", lastError())
	}
	return nil
}

func (d *demo) setStatus(format string, args ...any) {
	ffi.SetContent(d.status, []byte(fmt.Sprintf(format, args...)))
}

// handle applies one event; false ends the session
func (d *demo) handle(ev engine.Event) bool {
	switch ev.Kind {
	case engine.EventKey:
		if engine.KeyCode(ev.Payload[0]) == engine.KeyEscape {
			return false
		}
	case engine.EventFocus:
		d.setStatus("focus %d -> %d", ev.Payload[0], ev.Payload[1])
	case engine.EventSubmit:
		switch uint32(ev.Target) {
		case d.name:
			buf := make([]byte, 64)
			n := ffi.Content(d.name, buf)
			d.setStatus("hello, %s", buf[:min(int(n), len(buf))])
		case d.theme:
			theme := engine.ThemeDark
			if ev.Payload[0] == 1 {
				theme = engine.ThemeLight
			}
			ffi.BindTheme(d.root, uint32(theme))
			d.setStatus("theme %d", theme)
		}
	case engine.EventChange:
		if uint32(ev.Target) == d.notes {
			d.setStatus("notes: %d bytes, line %d", ev.Payload[0], ev.Payload[1]+1)
		}
	case engine.EventResize:
		log.Printf("demo: resized %dx%d", ev.Payload[0], ev.Payload[1])
	}
	return true
}

// drain handles every queued event
func (d *demo) drain() bool {
	buf := make([]byte, engine.EventSize)
	for ffi.DrainEvent(buf) == engine.EventSize {
		ev, err := engine.DecodeEvent(buf)
		if err != nil {
			return true
		}
		if !d.handle(ev) {
			return false
		}
	}
	return true
}

func (d *demo) run() error {
	for {
		if st := ffi.Render(); st != ffi.StatusOK {
			return fmt.Errorf("render: %s", lastError())
		}
		if n := ffi.ReadInput(16); n < 0 {
			return fmt.Errorf("read input: %s", lastError())
		}
		if !d.drain() {
			return nil
		}
	}
}

// script types into the form on the headless driver and prints the screen
func (d *demo) script() error {
	for _, r := range "gopher" {
		ffi.InjectRune(r)
	}
	ffi.InjectKey(uint16(terminal.KeyEnter), 0, 0)
	ffi.InjectKey(uint16(terminal.KeyTab), 0, 0)
	ffi.InjectKey(uint16(terminal.KeyDown), 0, 0)
	d.drain()

	for range 3 {
		if st := ffi.Render(); st != ffi.StatusOK {
			return fmt.Errorf("render: %s", lastError())
		}
	}

	var w, h int32
	ffi.Size(&w, &h)
	var stats [ffi.StatsLen]int64
	ffi.FrameStats(&stats)
	fmt.Printf("%dx%d frame %d, %d cells changed, %d nodes\n", w, h, stats[0], stats[7], stats[8])
	fmt.Println(strings.Repeat("-", int(w)))
	buf := make([]byte, 8*int(w)*int(h))
	n := ffi.ScreenText(buf)
	if n < 0 {
		return fmt.Errorf("screen text: %s", lastError())
	}
	fmt.Println(string(buf[:min(int(n), len(buf))]))
	fmt.Println(strings.Repeat("-", int(w)))

	for _, s := range ffi.Metrics().Snapshot() {
		fmt.Printf("%-22s %s\n", s.Name, s)
	}
	return nil
}
