package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
	"github.com/rivo/uniseg"
)

// clusters splits s into grapheme clusters
func clusters(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func joinClusters(cs []string) string {
	return strings.Join(cs, "")
}

func clustersWidth(cs []string) int {
	w := 0
	for _, c := range cs {
		w += render.StringWidth(c)
	}
	return w
}

// isWordChar returns true for word-constituent clusters
func isWordChar(c string) bool {
	r, _ := utf8.DecodeRuneInString(c)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// textField holds single-line input state. Cursor and scroll count
// grapheme clusters, not bytes or runes.
type textField struct {
	text        []string
	cursor      int // Cluster index the cursor sits before
	scroll      int // First visible cluster
	maxLen      int // 0 = unlimited
	placeholder string
}

func newTextField(initial string) *textField {
	t := &textField{}
	t.setValue(initial)
	return t
}

func (t *textField) value() string {
	return joinClusters(t.text)
}

// setValue replaces text, truncating to maxLen, and moves the cursor to the end
func (t *textField) setValue(s string) {
	t.text = clusters(s)
	if t.maxLen > 0 && len(t.text) > t.maxLen {
		t.text = t.text[:t.maxLen]
	}
	t.cursor = len(t.text)
	t.scroll = 0
}

func (t *textField) setCursor(col int) {
	t.cursor = max(0, min(col, len(t.text)))
}

// insert adds s at the cursor. Text is re-segmented so a combining mark
// joins the cluster before it.
func (t *textField) insert(s string) bool {
	before := joinClusters(t.text[:t.cursor]) + s
	after := joinClusters(t.text[t.cursor:])
	next := clusters(before + after)
	if t.maxLen > 0 && len(next) > t.maxLen {
		return false
	}
	t.text = next
	t.cursor = len(clusters(before))
	if t.cursor > len(t.text) {
		t.cursor = len(t.text)
	}
	return true
}

func (t *textField) deleteBackward() bool {
	if t.cursor == 0 {
		return false
	}
	t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
	t.cursor--
	return true
}

func (t *textField) deleteForward() bool {
	if t.cursor >= len(t.text) {
		return false
	}
	t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
	return true
}

func (t *textField) deleteWordBackward() bool {
	if t.cursor == 0 {
		return false
	}
	// Skip trailing non-word chars, then the word
	end := t.cursor
	for end > 0 && !isWordChar(t.text[end-1]) {
		end--
	}
	start := end
	for start > 0 && isWordChar(t.text[start-1]) {
		start--
	}
	if start == t.cursor {
		start = t.cursor - 1
	}
	t.text = append(t.text[:start], t.text[t.cursor:]...)
	t.cursor = start
	return true
}

func (t *textField) deleteToStart() bool {
	if t.cursor == 0 {
		return false
	}
	t.text = t.text[t.cursor:]
	t.cursor = 0
	t.scroll = 0
	return true
}

func (t *textField) deleteToEnd() bool {
	if t.cursor >= len(t.text) {
		return false
	}
	t.text = t.text[:t.cursor]
	return true
}

func (t *textField) moveLeft() bool {
	if t.cursor == 0 {
		return false
	}
	t.cursor--
	return true
}

func (t *textField) moveRight() bool {
	if t.cursor >= len(t.text) {
		return false
	}
	t.cursor++
	return true
}

func (t *textField) moveWordLeft() bool {
	start := t.cursor
	for t.cursor > 0 && !isWordChar(t.text[t.cursor-1]) {
		t.cursor--
	}
	for t.cursor > 0 && isWordChar(t.text[t.cursor-1]) {
		t.cursor--
	}
	return t.cursor != start
}

func (t *textField) moveWordRight() bool {
	start := t.cursor
	for t.cursor < len(t.text) && isWordChar(t.text[t.cursor]) {
		t.cursor++
	}
	for t.cursor < len(t.text) && !isWordChar(t.text[t.cursor]) {
		t.cursor++
	}
	return t.cursor != start
}

// adjustScroll keeps the cursor cell inside a viewport of width cells
func (t *textField) adjustScroll(width int) {
	if width <= 0 {
		return
	}
	if t.cursor < t.scroll {
		t.scroll = t.cursor
	}
	for t.scroll < t.cursor && clustersWidth(t.text[t.scroll:t.cursor])+1 > width {
		t.scroll++
	}
}

// fieldResult reports what a key did to a widget
type fieldResult struct {
	changed  bool
	submit   bool
	rejected bool
}

func (t *textField) handleKey(code KeyCode, mods uint32, r rune) fieldResult {
	ctrl := mods&ModCtrl != 0
	word := ctrl || mods&ModAlt != 0
	step := func(ok bool) fieldResult { return fieldResult{changed: ok} }
	edge := func(ok bool) fieldResult { return fieldResult{changed: ok, rejected: !ok} }

	switch code {
	case KeyChar:
		if ctrl {
			switch unicode.ToLower(r) {
			case 'a':
				return step(t.setCursorReport(0))
			case 'e':
				return step(t.setCursorReport(len(t.text)))
			case 'w':
				return edge(t.deleteWordBackward())
			case 'u':
				return edge(t.deleteToStart())
			case 'k':
				return edge(t.deleteToEnd())
			}
			return fieldResult{}
		}
		if !unicode.IsPrint(r) && !unicode.Is(unicode.Mn, r) {
			return fieldResult{}
		}
		return edge(t.insert(string(r)))
	case KeyBackspace:
		if word {
			return edge(t.deleteWordBackward())
		}
		return edge(t.deleteBackward())
	case KeyDelete:
		return edge(t.deleteForward())
	case KeyLeft:
		if word {
			return step(t.moveWordLeft())
		}
		return step(t.moveLeft())
	case KeyRight:
		if word {
			return step(t.moveWordRight())
		}
		return edge(t.moveRight())
	case KeyHome:
		return step(t.setCursorReport(0))
	case KeyEnd:
		return step(t.setCursorReport(len(t.text)))
	case KeyEnter:
		return fieldResult{submit: true}
	}
	return fieldResult{}
}

func (t *textField) setCursorReport(col int) bool {
	prev := t.cursor
	t.setCursor(col)
	return prev != t.cursor
}

// visible returns the glyphs shown from the scroll position and the cursor
// column relative to the field's left edge
func (t *textField) visible(width int, fg, bg terminal.Color, attrs terminal.Attr) ([]render.Glyph, int) {
	t.adjustScroll(width)
	glyphs := render.AppendText(nil, joinClusters(t.text[t.scroll:]), fg, bg, attrs)
	return glyphs, clustersWidth(t.text[t.scroll:t.cursor])
}
