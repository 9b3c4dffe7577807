package engine

import (
	"strings"
	"unicode"
)

// editor holds multi-line input state; each line is a slice of grapheme
// clusters and col counts clusters
type editor struct {
	lines    [][]string
	row, col int
	scrollX  int // First visible cluster, unwrapped mode only
	scrollY  int // First visible row: logical when unwrapped, visual otherwise
}

func newEditor(initial string) *editor {
	e := &editor{}
	e.setValue(initial)
	return e
}

func (e *editor) value() string {
	parts := make([]string, len(e.lines))
	for i, l := range e.lines {
		parts[i] = joinClusters(l)
	}
	return strings.Join(parts, "\n")
}

// setValue replaces all content and resets cursor and scroll
func (e *editor) setValue(s string) {
	raw := strings.Split(s, "\n")
	e.lines = make([][]string, len(raw))
	for i, l := range raw {
		e.lines[i] = clusters(l)
	}
	e.row, e.col = 0, 0
	e.scrollX, e.scrollY = 0, 0
}

// length counts clusters plus one per line break
func (e *editor) length() int {
	n := len(e.lines) - 1
	for _, l := range e.lines {
		n += len(l)
	}
	return n
}

func (e *editor) clampCursor() {
	if len(e.lines) == 0 {
		e.lines = [][]string{nil}
	}
	e.row = max(0, min(e.row, len(e.lines)-1))
	e.col = max(0, min(e.col, len(e.lines[e.row])))
}

func (e *editor) setCursor(row, col int) {
	e.row, e.col = row, col
	e.clampCursor()
}

func (e *editor) insert(s string) {
	e.clampCursor()
	line := e.lines[e.row]
	before := joinClusters(line[:e.col]) + s
	e.lines[e.row] = clusters(before + joinClusters(line[e.col:]))
	e.col = min(len(clusters(before)), len(e.lines[e.row]))
}

// insertNewline splits the current line at the cursor
func (e *editor) insertNewline() {
	e.clampCursor()
	line := e.lines[e.row]
	before := append([]string(nil), line[:e.col]...)
	after := append([]string(nil), line[e.col:]...)

	e.lines[e.row] = before
	e.lines = append(e.lines[:e.row+1], append([][]string{after}, e.lines[e.row+1:]...)...)
	e.row++
	e.col = 0
}

// deleteBackward removes the cluster before the cursor or merges with the
// previous line
func (e *editor) deleteBackward() bool {
	e.clampCursor()
	if e.col > 0 {
		line := e.lines[e.row]
		e.lines[e.row] = append(line[:e.col-1], line[e.col:]...)
		e.col--
		return true
	}
	if e.row > 0 {
		prev := e.lines[e.row-1]
		newCol := len(prev)
		e.lines[e.row-1] = append(prev, e.lines[e.row]...)
		e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
		e.row--
		e.col = newCol
		return true
	}
	return false
}

// deleteForward removes the cluster at the cursor or merges the next line
func (e *editor) deleteForward() bool {
	e.clampCursor()
	line := e.lines[e.row]
	if e.col < len(line) {
		e.lines[e.row] = append(line[:e.col], line[e.col+1:]...)
		return true
	}
	if e.row < len(e.lines)-1 {
		e.lines[e.row] = append(line, e.lines[e.row+1]...)
		e.lines = append(e.lines[:e.row+1], e.lines[e.row+2:]...)
		return true
	}
	return false
}

func (e *editor) deleteWordBackward() bool {
	e.clampCursor()
	if e.col == 0 {
		return e.deleteBackward()
	}
	line := e.lines[e.row]
	end := e.col
	for end > 0 && !isWordChar(line[end-1]) {
		end--
	}
	start := end
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	if start == e.col {
		start = e.col - 1
	}
	e.lines[e.row] = append(line[:start], line[e.col:]...)
	e.col = start
	return true
}

func (e *editor) deleteToLineStart() bool {
	e.clampCursor()
	if e.col == 0 {
		return false
	}
	e.lines[e.row] = e.lines[e.row][e.col:]
	e.col = 0
	return true
}

func (e *editor) deleteToLineEnd() bool {
	e.clampCursor()
	if e.col < len(e.lines[e.row]) {
		e.lines[e.row] = e.lines[e.row][:e.col]
		return true
	}
	return e.deleteForward()
}

func (e *editor) moveUp() bool {
	if e.row == 0 {
		return false
	}
	e.row--
	e.clampCursor()
	return true
}

func (e *editor) moveDown() bool {
	if e.row >= len(e.lines)-1 {
		return false
	}
	e.row++
	e.clampCursor()
	return true
}

// moveLeft wraps to the end of the previous line
func (e *editor) moveLeft() bool {
	switch {
	case e.col > 0:
		e.col--
	case e.row > 0:
		e.row--
		e.col = len(e.lines[e.row])
	default:
		return false
	}
	return true
}

// moveRight wraps to the start of the next line
func (e *editor) moveRight() bool {
	switch {
	case e.col < len(e.lines[e.row]):
		e.col++
	case e.row < len(e.lines)-1:
		e.row++
		e.col = 0
	default:
		return false
	}
	return true
}

func (e *editor) moveTo(row, col int) bool {
	pr, pc := e.row, e.col
	e.setCursor(row, col)
	return pr != e.row || pc != e.col
}

func (e *editor) handleKey(code KeyCode, mods uint32, r rune, page int) fieldResult {
	e.clampCursor()
	ctrl := mods&ModCtrl != 0
	step := func(ok bool) fieldResult { return fieldResult{changed: ok} }
	edge := func(ok bool) fieldResult { return fieldResult{changed: ok, rejected: !ok} }

	switch code {
	case KeyChar:
		if ctrl {
			switch unicode.ToLower(r) {
			case 'a':
				return step(e.moveTo(e.row, 0))
			case 'e':
				return step(e.moveTo(e.row, len(e.lines[e.row])))
			case 'w':
				return edge(e.deleteWordBackward())
			case 'u':
				return edge(e.deleteToLineStart())
			case 'k':
				return edge(e.deleteToLineEnd())
			}
			return fieldResult{}
		}
		if !unicode.IsPrint(r) && !unicode.Is(unicode.Mn, r) {
			return fieldResult{}
		}
		e.insert(string(r))
		return step(true)
	case KeyEnter:
		e.insertNewline()
		return step(true)
	case KeyBackspace:
		if ctrl {
			return edge(e.deleteWordBackward())
		}
		return edge(e.deleteBackward())
	case KeyDelete:
		return edge(e.deleteForward())
	case KeyUp:
		return step(e.moveUp())
	case KeyDown:
		return step(e.moveDown())
	case KeyLeft:
		return step(e.moveLeft())
	case KeyRight:
		return edge(e.moveRight())
	case KeyHome:
		if ctrl {
			return step(e.moveTo(0, 0))
		}
		return step(e.moveTo(e.row, 0))
	case KeyEnd:
		if ctrl {
			last := len(e.lines) - 1
			return step(e.moveTo(last, len(e.lines[last])))
		}
		return step(e.moveTo(e.row, len(e.lines[e.row])))
	case KeyPageUp:
		return step(e.moveTo(e.row-max(1, page), e.col))
	case KeyPageDown:
		return step(e.moveTo(e.row+max(1, page), e.col))
	}
	return fieldResult{}
}
