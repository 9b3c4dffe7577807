//go:build darwin || linux

// Command termgraph-host drives libtermgraph through opaque handles without
// cgo. It builds a small form, then either runs an interactive loop on the
// terminal or replays a scripted session on the headless driver and prints
// the resulting events.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
)

func main() {
	libPath := flag.String("lib", "", "path to libtermgraph (default: next to the executable)")
	configPath := flag.String("config", "termgraph.toml", "configuration file for interactive mode")
	headless := flag.Bool("headless", false, "replay a scripted session on the headless driver")
	flag.Parse()

	log.SetFlags(0)
	l, err := openLib(*libPath)
	if err != nil {
		log.Fatalf("termgraph-host: %v", err)
	}

	if *headless {
		err = runScript(l)
	} else {
		err = runInteractive(l, *configPath)
	}
	if err != nil {
		log.Fatalf("termgraph-host: %v", err)
	}
}

// form holds the handles of the demo tree
type form struct {
	root, title, name, choice uint32
}

func buildForm(l *lib) (*form, error) {
	var f form
	var err error
	if f.root, err = l.node(kindContainer); err != nil {
		return nil, err
	}
	if f.title, err = l.node(kindText); err != nil {
		return nil, err
	}
	if f.name, err = l.node(kindInput); err != nil {
		return nil, err
	}
	if f.choice, err = l.node(kindSelect); err != nil {
		return nil, err
	}

	steps := []struct {
		op     string
		status int32
	}{
		{"root width", l.setWidth(f.root, unitPercent, 100)},
		{"root height", l.setHeight(f.root, unitPercent, 100)},
		{"root padding", l.setPadding(f.root, unitCells, 1, 2, 1, 2)},
		{"root border", l.setBorder(f.root, borderRounded)},
		{"title height", l.setHeight(f.title, unitCells, 1)},
		{"title fg", l.setFg(f.title, 0x01ffcc66)},
		{"name height", l.setHeight(f.name, unitCells, 1)},
		{"choice grow", l.setFlexGrow(f.choice, 1)},
		{"append title", l.appendChild(f.root, f.title)},
		{"append name", l.appendChild(f.root, f.name)},
		{"append choice", l.appendChild(f.root, f.choice)},
		{"set root", l.setRoot(f.root)},
	}
	for _, s := range steps {
		if err := l.check(s.op, s.status); err != nil {
			return nil, err
		}
	}

	opts := []byte("tcell\nheadless\nauto")
	p, n := ptr(opts)
	status := l.setOptions(f.choice, p, n)
	runtime.KeepAlive(opts)
	if err := l.check("set options", status); err != nil {
		return nil, err
	}
	if err := l.setText(f.title, "termgraph host: type a name, Enter submits, Esc quits"); err != nil {
		return nil, err
	}
	if err := l.check("focus", l.setFocus(f.name)); err != nil {
		return nil, err
	}

	// Fade the title in
	if err := l.check("title opacity", l.setOpacity(f.title, 0)); err != nil {
		return nil, err
	}
	if l.animate(f.title, 0, math.Float64bits(1), 400, 5) == 0 {
		return nil, l.errorf("animate", -1)
	}
	return &f, nil
}

// handle reacts to one event; it reports false when the session should end
func (f *form) handle(l *lib, ev event) bool {
	switch ev.kind {
	case eventKey:
		return ev.payload[0] != codeEscape
	case eventSubmit:
		if ev.target == f.name {
			l.setText(f.title, "hello, "+l.text(f.name))
		}
	}
	return true
}

func runInteractive(l *lib, configPath string) error {
	cfg := []byte(configPath)
	p, n := ptr(cfg)
	status := l.initConfig(p, n)
	runtime.KeepAlive(cfg)
	if err := l.check("init", status); err != nil {
		return err
	}
	defer l.shutdown()

	f, err := buildForm(l)
	if err != nil {
		return err
	}
	for {
		if err := l.check("render", l.render()); err != nil {
			return err
		}
		if got := l.readInput(16); got < 0 {
			return l.errorf("read input", got)
		}
		events, err := l.events()
		if err != nil {
			return err
		}
		for _, ev := range events {
			if !f.handle(l, ev) {
				return nil
			}
		}
	}
}

func runScript(l *lib) error {
	if err := l.check("init", l.initHeadless(60, 10)); err != nil {
		return err
	}
	defer l.shutdown()

	f, err := buildForm(l)
	if err != nil {
		return err
	}
	if err := l.check("render", l.render()); err != nil {
		return err
	}

	for _, r := range "gopher" {
		l.injectRune(r)
	}
	l.injectKey(rawKeyEnter, 0, 0)

	events, err := l.events()
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Fprintf(os.Stdout, "event kind=%d target=%d payload=%v\n", ev.kind, ev.target, ev.payload)
		f.handle(l, ev)
	}
	if err := l.check("render", l.render()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "title: %s\n", l.text(f.title))
	if t, n := l.timing(); n > 0 {
		fmt.Fprintf(os.Stdout, "frames: %d, last %.3fms mean %.3fms max %.3fms\n", n, t[0], t[1], t[2])
	}
	return nil
}
