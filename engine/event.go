package engine

import (
	"encoding/binary"
	"fmt"
)

// EventKind tags an Event record
type EventKind uint32

const (
	EventNone EventKind = iota
	// Key: target focused node; payload [code, mods, codepoint, 0]
	EventKey
	// Mouse: target hit node; payload [x, y, button | action<<8, mods]
	EventMouse
	// Resize: target 0; payload [width, height, 0, 0]
	EventResize
	// Focus: target new focus; payload [previous, new, 0, 0]
	EventFocus
	// Change: widget state changed by input. Payload per kind:
	// input [length, cursor], select [index], textarea [length, row, col],
	// scroll [x, y]
	EventChange
	// Submit: Enter on an input [length] or select [index]
	EventSubmit
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventResize:
		return "resize"
	case EventFocus:
		return "focus"
	case EventChange:
		return "change"
	case EventSubmit:
		return "submit"
	}
	return "none"
}

// Event is a fixed-size classified input record
type Event struct {
	Kind    EventKind
	Target  NodeID
	Payload [4]uint32
}

// EventSize is the encoded length of an Event
const EventSize = 24

// AppendBinary appends the little-endian record: kind, target, payload[0..3]
func (ev Event) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint32(b, uint32(ev.Kind))
	b = binary.LittleEndian.AppendUint32(b, uint32(ev.Target))
	for _, w := range ev.Payload {
		b = binary.LittleEndian.AppendUint32(b, w)
	}
	return b, nil
}

// DecodeEvent reads a record written by AppendBinary
func DecodeEvent(b []byte) (Event, error) {
	if len(b) < EventSize {
		return Event{}, fmt.Errorf("event record: %w: %d bytes", ErrInvalidArgument, len(b))
	}
	ev := Event{
		Kind:   EventKind(binary.LittleEndian.Uint32(b[0:])),
		Target: NodeID(binary.LittleEndian.Uint32(b[4:])),
	}
	for i := range ev.Payload {
		ev.Payload[i] = binary.LittleEndian.Uint32(b[8+4*i:])
	}
	return ev, nil
}

// KeyCode is the stable logical key space carried by key events
type KeyCode uint32

const (
	KeyNone KeyCode = iota
	KeyChar         // printable; codepoint in payload[2]
	KeyBackspace
	KeyEnter
	KeyTab
	KeyBacktab
	KeyDelete
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
)

// Function keys occupy KeyF1..KeyF12
const (
	KeyF1  KeyCode = 0x20
	KeyF12 KeyCode = KeyF1 + 11
)

// Modifier bits carried in key and mouse payloads
const (
	ModShift uint32 = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// Mouse buttons and actions packed into payload[2] as button | action<<8
const (
	ButtonNone uint32 = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

const (
	ActionPress uint32 = iota + 1
	ActionRelease
	ActionMove
)

func keyEvent(target NodeID, code KeyCode, mods uint32, r rune) Event {
	return Event{Kind: EventKey, Target: target, Payload: [4]uint32{uint32(code), mods, uint32(r), 0}}
}
