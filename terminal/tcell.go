package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellDriver implements Backend on top of a tcell screen
type TcellDriver struct {
	screen tcell.Screen
	mouse  bool

	events chan tcell.Event
	stopCh chan struct{}

	// Last reported button state, used to derive press/release
	buttons tcell.ButtonMask

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// eventBufferSize bounds events buffered between Poll calls
const eventBufferSize = 256

// NewTcellDriver creates a driver for the controlling terminal
func NewTcellDriver(mouse bool) (*TcellDriver, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return NewTcellDriverWithScreen(s, mouse), nil
}

// NewTcellDriverWithScreen wraps an existing screen, e.g. a simulation screen
func NewTcellDriverWithScreen(s tcell.Screen, mouse bool) *TcellDriver {
	return &TcellDriver{
		screen: s,
		mouse:  mouse,
		events: make(chan tcell.Event, eventBufferSize),
		stopCh: make(chan struct{}),
	}
}

// Init enters raw mode and starts the event pump
func (d *TcellDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	if err := d.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	if d.mouse {
		d.screen.EnableMouse()
	}
	d.screen.HideCursor()
	d.screen.Clear()

	Go(d.pump)

	d.initialized = true
	return nil
}

// pump forwards screen events until the screen is finalized
func (d *TcellDriver) pump() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case d.events <- ev:
		case <-d.stopCh:
			return
		}
	}
}

// Fini restores terminal state
func (d *TcellDriver) Fini() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized || d.finalized {
		return
	}
	close(d.stopCh)
	if d.mouse {
		d.screen.DisableMouse()
	}
	d.screen.Fini()
	d.finalized = true
}

// Size returns current terminal dimensions
func (d *TcellDriver) Size() (int, int) {
	return d.screen.Size()
}

// Write stages cells on the tcell back buffer
func (d *TcellDriver) Write(updates []CellUpdate) error {
	for _, u := range updates {
		if u.Cell.Rune == 0 {
			// Covered by the preceding wide glyph
			continue
		}
		d.screen.SetContent(u.X, u.Y, u.Cell.Rune, nil, tcellStyle(u.Cell))
	}
	return nil
}

// Flush shows staged cells
func (d *TcellDriver) Flush() error {
	d.screen.Show()
	return nil
}

// Poll waits up to timeout for the first event, then drains what is ready
func (d *TcellDriver) Poll(timeout time.Duration) ([]RawEvent, error) {
	var first tcell.Event
	if timeout <= 0 {
		select {
		case first = <-d.events:
		default:
			return nil, nil
		}
	} else {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case first = <-d.events:
		case <-timer.C:
			return nil, nil
		}
	}

	out := d.appendEvent(nil, first)
	for {
		select {
		case ev := <-d.events:
			out = d.appendEvent(out, ev)
		default:
			return out, nil
		}
	}
}

func (d *TcellDriver) appendEvent(out []RawEvent, ev tcell.Event) []RawEvent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, r, mod := convertKey(ev)
		if k == KeyNone {
			return out
		}
		return append(out, KeyEvent(k, r, mod))
	case *tcell.EventMouse:
		return append(out, d.convertMouse(ev))
	case *tcell.EventResize:
		w, h := ev.Size()
		d.screen.Sync()
		return append(out, ResizeEvent(w, h))
	}
	return out
}

func convertModifiers(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModMeta != 0 {
		mod |= ModMeta
	}
	return mod
}

// convertKey maps tcell keys onto Key. tcell aliases several control codes
// (Tab is Ctrl+I, Enter is Ctrl+M, Backspace is Ctrl+H) so named keys are
// matched before the Ctrl+letter range.
func convertKey(ev *tcell.EventKey) (Key, rune, Modifier) {
	mod := convertModifiers(ev.Modifiers())
	switch ev.Key() {
	case tcell.KeyRune:
		return KeyRune, ev.Rune(), mod
	case tcell.KeyEnter:
		return KeyEnter, 0, mod
	case tcell.KeyTab:
		return KeyTab, 0, mod
	case tcell.KeyBacktab:
		return KeyBacktab, 0, mod | ModShift
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, 0, mod
	case tcell.KeyEscape:
		return KeyEscape, 0, mod
	case tcell.KeyDelete:
		return KeyDelete, 0, mod
	case tcell.KeyUp:
		return KeyUp, 0, mod
	case tcell.KeyDown:
		return KeyDown, 0, mod
	case tcell.KeyLeft:
		return KeyLeft, 0, mod
	case tcell.KeyRight:
		return KeyRight, 0, mod
	case tcell.KeyHome:
		return KeyHome, 0, mod
	case tcell.KeyEnd:
		return KeyEnd, 0, mod
	case tcell.KeyPgUp:
		return KeyPageUp, 0, mod
	case tcell.KeyPgDn:
		return KeyPageDown, 0, mod
	case tcell.KeyInsert:
		return KeyInsert, 0, mod
	}

	k := ev.Key()
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return KeyF1 + Key(k-tcell.KeyF1), 0, mod
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrlA + Key(k-tcell.KeyCtrlA), 0, mod | ModCtrl
	}
	return KeyNone, 0, mod
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

func (d *TcellDriver) convertMouse(ev *tcell.EventMouse) RawEvent {
	x, y := ev.Position()
	mod := convertModifiers(ev.Modifiers())
	raw := ev.Buttons()

	switch {
	case raw&tcell.WheelUp != 0:
		return MouseEvent(x, y, MouseBtnWheelUp, MouseActionPress, mod)
	case raw&tcell.WheelDown != 0:
		return MouseEvent(x, y, MouseBtnWheelDown, MouseActionPress, mod)
	}

	btns := raw &^ wheelMask
	prev := d.buttons
	d.buttons = btns

	switch {
	case btns != 0 && prev == 0:
		return MouseEvent(x, y, convertButton(btns), MouseActionPress, mod)
	case btns == 0 && prev != 0:
		return MouseEvent(x, y, convertButton(prev), MouseActionRelease, mod)
	default:
		return MouseEvent(x, y, convertButton(btns), MouseActionMove, mod)
	}
}

func convertButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return MouseBtnLeft
	case b&tcell.ButtonMiddle != 0:
		return MouseBtnMiddle
	case b&tcell.ButtonSecondary != 0:
		return MouseBtnRight
	}
	return MouseBtnNone
}

func tcellColor(c Color) tcell.Color {
	switch c.Kind() {
	case ColorKindRGB:
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	case ColorKindPalette:
		return tcell.PaletteColor(int(c.Index()))
	}
	return tcell.ColorDefault
}

func tcellStyle(c Cell) tcell.Style {
	st := tcell.StyleDefault.Foreground(tcellColor(c.Fg)).Background(tcellColor(c.Bg))
	a := c.Attrs
	if a&AttrBold != 0 {
		st = st.Bold(true)
	}
	if a&AttrDim != 0 {
		st = st.Dim(true)
	}
	if a&AttrItalic != 0 {
		st = st.Italic(true)
	}
	if a&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if a&AttrBlink != 0 {
		st = st.Blink(true)
	}
	if a&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if a&AttrStrikethrough != 0 {
		st = st.StrikeThrough(true)
	}
	return st
}
