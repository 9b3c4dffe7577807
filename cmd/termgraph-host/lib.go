//go:build darwin || linux

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Values shared with the library ABI
const (
	statusOK = 0

	kindContainer = 0
	kindText      = 1
	kindInput     = 2
	kindSelect    = 3

	unitCells   = 1
	unitPercent = 2

	borderRounded = 3

	eventKey    = 1
	eventSubmit = 6

	// raw keys accepted by tg_inject_key
	rawKeyEnter = 3

	// logical key codes carried in key events
	codeEscape = 7

	eventSize = 24
)

// lib holds the bound entry points of libtermgraph
type lib struct {
	handle uintptr

	initConfig   func(path uintptr, n int32) int32
	initHeadless func(w, h int32) int32
	shutdown     func() int32
	lastError    func(buf uintptr, n int32) int32
	clearError   func()

	createNode  func(kind uint8) uint32
	setRoot     func(node uint32) int32
	appendChild func(parent, child uint32) int32
	setContent  func(node uint32, text uintptr, n int32) int32
	content     func(node uint32, buf uintptr, n int32) int32
	setOptions  func(node uint32, text uintptr, n int32) int32
	setFocus    func(node uint32) int32

	setWidth     func(node uint32, unit uint8, v float64) int32
	setHeight    func(node uint32, unit uint8, v float64) int32
	setFlexGrow  func(node uint32, v float64) int32
	setDirection func(node uint32, d uint8) int32
	setPadding   func(node uint32, unit uint8, top, right, bottom, left float64) int32
	setBorder    func(node uint32, kind uint8) int32
	setFg        func(node, color uint32) int32
	setOpacity   func(node uint32, v float64) int32

	animate func(node uint32, prop uint8, end uint64, durationMs uint32, easing uint8) uint32

	render     func() int32
	readInput  func(timeoutMs int32) int32
	drainEvent func(buf uintptr, n int32) int32
	injectRune func(r int32) int32
	injectKey  func(key uint16, r int32, mods uint8) int32

	frameTiming func(out uintptr) int32
}

func libraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libtermgraph.dylib"
	case "windows":
		return "termgraph.dll"
	}
	return "libtermgraph.so"
}

// findLibrary returns path when set, else the first library found next to
// the executable or in the working directory
func findLibrary(path string) string {
	if path != "" {
		return path
	}
	name := libraryName()
	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), name))
	}
	candidates = append(candidates, name)
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			if abs, err := filepath.Abs(c); err == nil {
				return abs
			}
			return c
		}
	}
	return name
}

func openLib(path string) (*lib, error) {
	path = findLibrary(path)
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	l := &lib{handle: h}

	bind := func(fn any, name string) {
		purego.RegisterLibFunc(fn, h, name)
	}
	bind(&l.initConfig, "tg_init")
	bind(&l.initHeadless, "tg_init_headless")
	bind(&l.shutdown, "tg_shutdown")
	bind(&l.lastError, "tg_last_error")
	bind(&l.clearError, "tg_clear_error")

	bind(&l.createNode, "tg_create_node")
	bind(&l.setRoot, "tg_set_root")
	bind(&l.appendChild, "tg_append_child")
	bind(&l.setContent, "tg_set_content")
	bind(&l.content, "tg_content")
	bind(&l.setOptions, "tg_set_options")
	bind(&l.setFocus, "tg_set_focus")

	bind(&l.setWidth, "tg_set_width")
	bind(&l.setHeight, "tg_set_height")
	bind(&l.setFlexGrow, "tg_set_flex_grow")
	bind(&l.setDirection, "tg_set_direction")
	bind(&l.setPadding, "tg_set_padding")
	bind(&l.setBorder, "tg_set_border")
	bind(&l.setFg, "tg_set_fg")
	bind(&l.setOpacity, "tg_set_opacity")

	bind(&l.animate, "tg_animate")

	bind(&l.render, "tg_render")
	bind(&l.readInput, "tg_read_input")
	bind(&l.drainEvent, "tg_drain_event")
	bind(&l.injectRune, "tg_inject_rune")
	bind(&l.injectKey, "tg_inject_key")

	bind(&l.frameTiming, "tg_frame_timing")
	return l, nil
}

// timing returns last, mean and max frame milliseconds and the frame count
func (l *lib) timing() ([3]float64, int32) {
	var out [3]float64
	n := l.frameTiming(uintptr(unsafe.Pointer(&out)))
	return out, n
}

func ptr(b []byte) (uintptr, int32) {
	if len(b) == 0 {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(&b[0])), int32(len(b))
}

// errorf wraps the library's last error message
func (l *lib) errorf(op string, status int32) error {
	buf := make([]byte, 512)
	p, n := ptr(buf)
	full := l.lastError(p, n)
	msg := string(buf[:min(int(full), len(buf))])
	l.clearError()
	return fmt.Errorf("%s: status %d: %s", op, status, msg)
}

func (l *lib) check(op string, status int32) error {
	if status != statusOK {
		return l.errorf(op, status)
	}
	return nil
}

func (l *lib) node(kind uint8) (uint32, error) {
	id := l.createNode(kind)
	if id == 0 {
		return 0, l.errorf("create node", -1)
	}
	return id, nil
}

func (l *lib) setText(node uint32, text string) error {
	b := []byte(text)
	p, n := ptr(b)
	status := l.setContent(node, p, n)
	runtime.KeepAlive(b)
	return l.check("set content", status)
}

func (l *lib) text(node uint32) string {
	buf := make([]byte, 256)
	p, n := ptr(buf)
	full := l.content(node, p, n)
	if full < 0 {
		return ""
	}
	return string(buf[:min(int(full), len(buf))])
}

// event is a decoded drain record
type event struct {
	kind    uint32
	target  uint32
	payload [4]uint32
}

func decodeEvent(b []byte) event {
	ev := event{
		kind:   binary.LittleEndian.Uint32(b[0:]),
		target: binary.LittleEndian.Uint32(b[4:]),
	}
	for i := range ev.payload {
		ev.payload[i] = binary.LittleEndian.Uint32(b[8+4*i:])
	}
	return ev
}

// events drains every queued record
func (l *lib) events() ([]event, error) {
	var out []event
	buf := make([]byte, eventSize)
	p, n := ptr(buf)
	for {
		got := l.drainEvent(p, n)
		switch {
		case got == 0:
			return out, nil
		case got < 0:
			return out, l.errorf("drain event", got)
		}
		out = append(out, decodeEvent(buf))
	}
}
