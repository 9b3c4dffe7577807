package engine

import (
	"fmt"
	"unicode/utf8"
)

// SetPlaceholder sets the text an empty input shows
func (e *Engine) SetPlaceholder(id NodeID, text string) error {
	n, err := e.nodeOfKind(id, KindInput)
	if err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("placeholder of node %d: malformed UTF-8: %w", id, ErrInvalidArgument)
	}
	n.field.placeholder = text
	e.contentChanged(n)
	return nil
}

// SetMaxLength caps an input's length in grapheme clusters; 0 removes the
// cap. Existing text longer than the cap is truncated.
func (e *Engine) SetMaxLength(id NodeID, length int) error {
	n, err := e.nodeOfKind(id, KindInput)
	if err != nil {
		return err
	}
	if length < 0 {
		return fmt.Errorf("max length %d: %w", length, ErrInvalidArgument)
	}
	n.field.maxLen = length
	if length > 0 && len(n.field.text) > length {
		n.field.text = n.field.text[:length]
		n.field.setCursor(n.field.cursor)
		e.contentChanged(n)
	}
	return nil
}

// SetCursor moves an input's or textarea's cursor, clamping to content.
// Inputs have a single row.
func (e *Engine) SetCursor(id NodeID, row, col int) error {
	n, err := e.nodeOfKind(id, KindInput, KindTextArea)
	if err != nil {
		return err
	}
	if n.kind == KindInput {
		n.field.setCursor(col)
	} else {
		n.editor.setCursor(row, col)
	}
	e.markDirty(n)
	return nil
}

// Cursor returns an input's or textarea's cursor in clusters
func (e *Engine) Cursor(id NodeID) (row, col int, err error) {
	n, err := e.nodeOfKind(id, KindInput, KindTextArea)
	if err != nil {
		return 0, 0, err
	}
	if n.kind == KindInput {
		return 0, n.field.cursor, nil
	}
	return n.editor.row, n.editor.col, nil
}

// SetOptions replaces a select's options
func (e *Engine) SetOptions(id NodeID, options []string) error {
	n, err := e.nodeOfKind(id, KindSelect)
	if err != nil {
		return err
	}
	for i, opt := range options {
		if !utf8.ValidString(opt) {
			return fmt.Errorf("option %d of node %d: malformed UTF-8: %w", i, id, ErrInvalidArgument)
		}
	}
	n.list.setOptions(options)
	e.contentChanged(n)
	return nil
}

// Selected returns a select's selected index, -1 when it has no options
func (e *Engine) Selected(id NodeID) (int, error) {
	n, err := e.nodeOfKind(id, KindSelect)
	if err != nil {
		return 0, err
	}
	return n.list.selected, nil
}

// Select sets a select's selected index
func (e *Engine) Select(id NodeID, index int) error {
	n, err := e.nodeOfKind(id, KindSelect)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(n.list.options) {
		return fmt.Errorf("select index %d of %d: %w", index, len(n.list.options), ErrInvalidArgument)
	}
	if n.list.selectIndex(index) {
		e.markDirty(n)
	}
	return nil
}

// ScrollBy moves a viewport's offset, clamped to the content bound of the
// last layout
func (e *Engine) ScrollBy(id NodeID, dx, dy int) error {
	n, err := e.nodeOfKind(id, KindScroll)
	if err != nil {
		return err
	}
	if n.scroll.by(dx, dy) {
		e.scrolled(n)
	}
	return nil
}

// ScrollTo sets a viewport's offset, clamped like ScrollBy
func (e *Engine) ScrollTo(id NodeID, x, y int) error {
	n, err := e.nodeOfKind(id, KindScroll)
	if err != nil {
		return err
	}
	if n.scroll.to(x, y) {
		e.scrolled(n)
	}
	return nil
}

// ScrollOffset returns a viewport's current offset
func (e *Engine) ScrollOffset(id NodeID) (x, y int, err error) {
	n, err := e.nodeOfKind(id, KindScroll)
	if err != nil {
		return 0, 0, err
	}
	return n.scroll.x, n.scroll.y, nil
}

// ScrollBounds returns the largest offsets reachable after the last layout
func (e *Engine) ScrollBounds(id NodeID) (maxX, maxY int, err error) {
	n, err := e.nodeOfKind(id, KindScroll)
	if err != nil {
		return 0, 0, err
	}
	return n.scroll.maxX, n.scroll.maxY, nil
}

// scrolled repaints the viewport's subtree at its new offset
func (e *Engine) scrolled(n *node) {
	e.markSubtreeDirty(n)
}

// widgetKey applies a key to the focused widget and queues the resulting
// change and submit events
func (e *Engine) widgetKey(n *node, code KeyCode, mods uint32, r rune) {
	var res fieldResult
	switch n.kind {
	case KindInput:
		res = n.field.handleKey(code, mods, r)
	case KindTextArea:
		res = n.editor.handleKey(code, mods, r, n.inner.H)
	case KindSelect:
		res = n.list.handleKey(code, n.inner.H)
	case KindScroll:
		res = n.scroll.handleKey(code)
		if res.changed {
			e.scrolled(n)
		}
	default:
		return
	}

	if res.rejected {
		e.ring()
	}
	if res.changed {
		if n.kind == KindInput || n.kind == KindTextArea {
			e.contentChanged(n)
		} else {
			e.markDirty(n)
		}
		e.events.push(changeEvent(n))
	}
	if res.submit {
		e.events.push(submitEvent(n))
	}
}

func changeEvent(n *node) Event {
	ev := Event{Kind: EventChange, Target: n.id}
	switch n.kind {
	case KindInput:
		ev.Payload = [4]uint32{uint32(len(n.field.text)), uint32(n.field.cursor)}
	case KindTextArea:
		ev.Payload = [4]uint32{uint32(n.editor.length()), uint32(n.editor.row), uint32(n.editor.col)}
	case KindSelect:
		ev.Payload = [4]uint32{uint32(int32(n.list.selected))}
	case KindScroll:
		ev.Payload = [4]uint32{uint32(n.scroll.x), uint32(n.scroll.y)}
	}
	return ev
}

func submitEvent(n *node) Event {
	ev := Event{Kind: EventSubmit, Target: n.id}
	switch n.kind {
	case KindInput:
		ev.Payload[0] = uint32(len(n.field.text))
	case KindSelect:
		ev.Payload[0] = uint32(int32(n.list.selected))
	}
	return ev
}
