package ffi

import (
	"fmt"
	"time"

	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/terminal"
)

// Render runs one frame
func Render() int32 {
	return call("render", func(e *engine.Engine) error {
		if err := e.Render(); err != nil {
			return err
		}
		recordFrame(e.Stats())
		return nil
	})
}

// Invalidate forces the next frame to re-emit every cell
func Invalidate() int32 {
	return call("invalidate", func(e *engine.Engine) error {
		e.Invalidate()
		return nil
	})
}

// StatsLen is the number of words FrameStats writes
const StatsLen = 10

// FrameStats stores the last frame's counters in order: frame, animate,
// style, layout, paint, diff, emit (nanoseconds), cells changed, nodes
// painted, skipped (0/1)
func FrameStats(out *[StatsLen]int64) int32 {
	return call("frame stats", func(e *engine.Engine) error {
		if out == nil {
			return errNilOut
		}
		s := e.Stats()
		skipped := int64(0)
		if s.Skipped {
			skipped = 1
		}
		*out = [StatsLen]int64{
			int64(s.Frame), s.AnimateNs, s.StyleNs, s.LayoutNs, s.PaintNs,
			s.DiffNs, s.EmitNs, int64(s.CellsChanged), int64(s.NodesPainted), skipped,
		}
		return nil
	})
}

// Size stores the terminal dimensions
func Size(width, height *int32) int32 {
	return call("size", func(e *engine.Engine) error {
		if width == nil || height == nil {
			return errNilOut
		}
		w, h := e.Size()
		*width, *height = int32(w), int32(h)
		return nil
	})
}

// ReadInput waits up to timeoutMs for input (0 polls) and returns the
// number of events queued
func ReadInput(timeoutMs int32) int32 {
	return count("read input", func(e *engine.Engine) (int, error) {
		return e.ReadInput(time.Duration(timeoutMs) * time.Millisecond)
	})
}

// DrainEvent writes the oldest queued event into buf as an EventSize
// record and returns EventSize, or 0 when the queue is empty. A short
// buffer fails without consuming the event.
func DrainEvent(buf []byte) int32 {
	return count("drain event", func(e *engine.Engine) (int, error) {
		if len(buf) < engine.EventSize {
			return 0, fmt.Errorf("%w: event buffer %d < %d", engine.ErrInvalidArgument, len(buf), engine.EventSize)
		}
		ev, ok := e.PollEvent()
		if !ok {
			return 0, nil
		}
		if _, err := ev.AppendBinary(buf[:0]); err != nil {
			return 0, err
		}
		return engine.EventSize, nil
	})
}

func PendingEvents() int32 {
	return count("pending events", func(e *engine.Engine) (int, error) {
		return e.PendingEvents(), nil
	})
}

func Focused() uint32 {
	return alloc("focused", func(e *engine.Engine) (uint32, error) {
		return uint32(e.Focused()), nil
	})
}

func SetFocus(node uint32) int32 {
	return call("set focus", func(e *engine.Engine) error {
		return e.SetFocus(engine.NodeID(node))
	})
}

// FocusNext moves focus forward and returns the new focus, 0 on failure
func FocusNext() uint32 {
	return alloc("focus next", func(e *engine.Engine) (uint32, error) {
		id, err := e.FocusNext()
		return uint32(id), err
	})
}

func FocusPrev() uint32 {
	return alloc("focus prev", func(e *engine.Engine) (uint32, error) {
		id, err := e.FocusPrev()
		return uint32(id), err
	})
}

// ScreenText copies the headless terminal's rows, newline separated, into
// buf and returns the full length. Real terminals report a type mismatch.
func ScreenText(buf []byte) int32 {
	return count("screen text", func(e *engine.Engine) (int, error) {
		hl, ok := e.Backend().(*terminal.Headless)
		if !ok {
			return 0, fmt.Errorf("%w: backend %T has no screen snapshot", engine.ErrTypeMismatch, e.Backend())
		}
		text := hl.Text()
		copy(buf, text)
		return len(text), nil
	})
}

// CheckInvariants returns StatusError describing the first broken
// reference, StatusOK when the engine is consistent
func CheckInvariants() int32 {
	return call("check invariants", func(e *engine.Engine) error {
		return e.CheckInvariants()
	})
}

// InjectKey classifies a named key as if read from the terminal. Returns
// the number of events queued.
func InjectKey(key uint16, r int32, mods uint8) int32 {
	return inject("inject key", terminal.KeyEvent(terminal.Key(key), rune(r), terminal.Modifier(mods)))
}

func InjectRune(r int32) int32 {
	return inject("inject rune", terminal.RuneEvent(rune(r)))
}

func InjectMouse(x, y int32, button, action, mods uint8) int32 {
	return inject("inject mouse", terminal.MouseEvent(int(x), int(y),
		terminal.MouseButton(button), terminal.MouseAction(action), terminal.Modifier(mods)))
}

func InjectResize(width, height int32) int32 {
	if width <= 0 || height <= 0 {
		return count("inject resize", func(*engine.Engine) (int, error) {
			return 0, fmt.Errorf("%w: size %dx%d", engine.ErrInvalidArgument, width, height)
		})
	}
	return inject("inject resize", terminal.ResizeEvent(int(width), int(height)))
}

func inject(name string, raw terminal.RawEvent) int32 {
	return count(name, func(e *engine.Engine) (int, error) {
		return e.Inject(raw), nil
	})
}
