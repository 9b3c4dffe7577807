package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/terminal"
)

// wheelStep is the rows one wheel notch scrolls
const wheelStep = 3

var namedKeys = map[terminal.Key]KeyCode{
	terminal.KeyBackspace: KeyBackspace,
	terminal.KeyEnter:     KeyEnter,
	terminal.KeyTab:       KeyTab,
	terminal.KeyBacktab:   KeyBacktab,
	terminal.KeyDelete:    KeyDelete,
	terminal.KeyEscape:    KeyEscape,
	terminal.KeyUp:        KeyUp,
	terminal.KeyDown:      KeyDown,
	terminal.KeyLeft:      KeyLeft,
	terminal.KeyRight:     KeyRight,
	terminal.KeyHome:      KeyHome,
	terminal.KeyEnd:       KeyEnd,
	terminal.KeyPageUp:    KeyPageUp,
	terminal.KeyPageDown:  KeyPageDown,
	terminal.KeyInsert:    KeyInsert,
}

func convertMods(m terminal.Modifier) uint32 {
	var out uint32
	if m&terminal.ModShift != 0 {
		out |= ModShift
	}
	if m&terminal.ModAlt != 0 {
		out |= ModAlt
	}
	if m&terminal.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&terminal.ModMeta != 0 {
		out |= ModMeta
	}
	return out
}

// classifyKey maps a raw key into the logical key space; ok is false for
// keys with no logical code
func classifyKey(raw terminal.RawEvent) (code KeyCode, mods uint32, r rune, ok bool) {
	mods = convertMods(raw.Mod)
	switch {
	case raw.Key == terminal.KeyRune:
		return KeyChar, mods, raw.Rune, true
	case raw.Key.IsCtrlLetter():
		return KeyChar, mods | ModCtrl, raw.Key.CtrlLetter(), true
	case raw.Key >= terminal.KeyF1 && raw.Key <= terminal.KeyF12:
		return KeyF1 + KeyCode(raw.Key-terminal.KeyF1), mods, 0, true
	}
	code, ok = namedKeys[raw.Key]
	return code, mods, 0, ok
}

// ReadInput polls the backend, waiting up to timeout for the first item
// (0 does not block), classifies everything read and queues the results.
// It returns the number of events queued.
func (e *Engine) ReadInput(timeout time.Duration) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if timeout < 0 {
		return 0, fmt.Errorf("input timeout %v: %w", timeout, ErrInvalidArgument)
	}
	raws, err := e.backend.Poll(timeout)
	if err != nil {
		return 0, fmt.Errorf("poll input: %w", err)
	}
	before := e.events.tail
	for _, raw := range raws {
		e.classify(raw)
	}
	return int(e.events.tail - before), nil
}

// Inject classifies raw events as if read from the backend
func (e *Engine) Inject(raws ...terminal.RawEvent) int {
	before := e.events.tail
	for _, raw := range raws {
		e.classify(raw)
	}
	return int(e.events.tail - before)
}

// PollEvent pops the oldest queued event; ok is false when the queue is empty
func (e *Engine) PollEvent() (Event, bool) {
	return e.events.pop()
}

// PendingEvents returns the number of queued events
func (e *Engine) PendingEvents() int {
	return e.events.len()
}

// DroppedEvents returns how many events were overwritten by a full queue
func (e *Engine) DroppedEvents() uint64 {
	return e.events.dropped
}

func (e *Engine) classify(raw terminal.RawEvent) {
	switch raw.Type {
	case terminal.EventKey:
		e.handleKey(raw)
	case terminal.EventMouse:
		e.handleMouse(raw)
	case terminal.EventResize:
		e.resize(raw.Width, raw.Height)
	}
}

// handleKey queues the key event before any focus or widget event it causes
func (e *Engine) handleKey(raw terminal.RawEvent) {
	code, mods, r, ok := classifyKey(raw)
	if !ok {
		return
	}
	e.events.push(keyEvent(e.focus, code, mods, r))

	if e.opts.TabNavigation {
		switch code {
		case KeyTab:
			e.FocusNext()
			return
		case KeyBacktab:
			e.FocusPrev()
			return
		}
	}
	if n, ok := e.nodes[e.focus]; ok {
		e.widgetKey(n, code, mods, r)
	}
}

func (e *Engine) handleMouse(raw terminal.RawEvent) {
	var target NodeID
	if root, ok := e.nodes[e.root]; ok {
		target = e.hit(root, raw.MouseX, raw.MouseY)
	}
	btn := uint32(raw.Button)
	action := uint32(raw.Action)
	e.events.push(Event{
		Kind:    EventMouse,
		Target:  target,
		Payload: [4]uint32{uint32(max(0, raw.MouseX)), uint32(max(0, raw.MouseY)), btn | action<<8, convertMods(raw.Mod)},
	})
	if target == 0 {
		return
	}

	switch {
	case btn == ButtonLeft && action == ActionPress:
		if n := e.nearest(target, func(n *node) bool { return n.focusable }); n != nil {
			e.setFocus(n.id)
		}
	case btn == ButtonWheelUp || btn == ButtonWheelDown:
		n := e.nearest(target, func(n *node) bool { return n.kind == KindScroll })
		if n == nil {
			return
		}
		dy := wheelStep
		if btn == ButtonWheelUp {
			dy = -wheelStep
		}
		if n.scroll.by(0, dy) {
			e.scrolled(n)
			e.events.push(changeEvent(n))
		}
	}
}

// nearest returns the first of id and its ancestors matching pred
func (e *Engine) nearest(id NodeID, pred func(*node) bool) *node {
	for n := e.nodes[id]; n != nil; n = e.nodes[n.parent] {
		if pred(n) {
			return n
		}
	}
	return nil
}

// resize adopts a new terminal size: buffers are reallocated and the next
// frame repaints every cell
func (e *Engine) resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if !terminal.ValidSize(w, h) {
		log.Printf("engine: ignoring resize %dx%d beyond %d cells", w, h, terminal.MaxCells)
		return
	}
	log.Printf("engine: resize %dx%d", w, h)
	e.back.Resize(w, h)
	e.front.Resize(w, h)
	e.width, e.height = w, h
	e.fullRepaint = true
	if root, ok := e.nodes[e.root]; ok {
		e.layout.MarkDirty(root.layout)
		e.markSubtreeDirty(root)
	}
	e.events.push(Event{Kind: EventResize, Payload: [4]uint32{uint32(w), uint32(h)}})
}

// --- Focus ---

// Focused returns the focused node, 0 when none
func (e *Engine) Focused() NodeID {
	return e.focus
}

// SetFocus focuses id, or clears focus when id is 0. The node must be
// focusable. A change queues a focus event carrying previous and new targets.
func (e *Engine) SetFocus(id NodeID) error {
	if id == 0 {
		e.setFocus(0)
		return nil
	}
	n, err := e.node(id)
	if err != nil {
		return err
	}
	if !n.focusable {
		e.ring()
		return fmt.Errorf("focus node %d: not focusable: %w", id, ErrInvalidArgument)
	}
	e.setFocus(id)
	return nil
}

func (e *Engine) setFocus(id NodeID) {
	if id == e.focus {
		return
	}
	prev := e.focus
	e.focus = id
	if n, ok := e.nodes[prev]; ok {
		e.markDirty(n)
	}
	if n, ok := e.nodes[id]; ok {
		e.markDirty(n)
	}
	e.events.push(Event{Kind: EventFocus, Target: id, Payload: [4]uint32{uint32(prev), uint32(id)}})
}

// focusOrder lists focusable, shown nodes under the root in depth-first order
func (e *Engine) focusOrder() []NodeID {
	root, ok := e.nodes[e.root]
	if !ok {
		return nil
	}
	var order []NodeID
	e.walk(root, func(n *node) bool {
		if !n.visible {
			return false
		}
		if st, err := e.layout.Style(n.layout); err == nil && st.Display == flex.DisplayNone {
			return false
		}
		if n.focusable {
			order = append(order, n.id)
		}
		return true
	})
	return order
}

// FocusNext moves focus to the next focusable node, wrapping to the first
func (e *Engine) FocusNext() (NodeID, error) {
	return e.advanceFocus(1)
}

// FocusPrev moves focus to the previous focusable node, wrapping to the last
func (e *Engine) FocusPrev() (NodeID, error) {
	return e.advanceFocus(-1)
}

func (e *Engine) advanceFocus(dir int) (NodeID, error) {
	if _, ok := e.nodes[e.root]; !ok {
		return 0, ErrNoRootSet
	}
	order := e.focusOrder()
	if len(order) == 0 {
		return e.focus, nil
	}
	cur := -1
	for i, id := range order {
		if id == e.focus {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && dir > 0:
		next = 0
	case cur < 0:
		next = len(order) - 1
	default:
		next = (cur + dir + len(order)) % len(order)
	}
	e.setFocus(order[next])
	return e.focus, nil
}
