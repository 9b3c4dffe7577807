// Package span converts node content into styled text runs.
//
// Plain text passes through unchanged, markdown is rendered with goldmark and
// code is highlighted with chroma. Paint consumes the resulting spans
// positionally and never inspects the source syntax.
package span

import (
	"fmt"

	"github.com/lixenwraith/termgraph/terminal"
)

// Mode selects how content is interpreted
type Mode uint8

const (
	ModePlain Mode = iota
	ModeMarkdown
	ModeCode
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m <= ModeCode
}

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeMarkdown:
		return "markdown"
	case ModeCode:
		return "code"
	}
	return fmt.Sprintf("mode(%d)", m)
}

// Span is a run of text sharing one style. ColorDefault fields defer to the
// node's effective style at paint time.
type Span struct {
	Text  string
	Fg    terminal.Color
	Bg    terminal.Color
	Attrs terminal.Attr
}

// Producer turns raw content into spans
type Producer interface {
	Produce(text string, mode Mode, lang string) ([]Span, error)
}

// Converter is the default Producer
type Converter struct {
	Markdown MarkdownStyle
	// CodeStyle names a chroma style; unknown names fall back to chroma's default
	CodeStyle string
}

// NewConverter returns a converter with the default markdown palette
func NewConverter() *Converter {
	return &Converter{
		Markdown:  DefaultMarkdownStyle(),
		CodeStyle: "monokai",
	}
}

// Produce dispatches on mode
func (c *Converter) Produce(text string, mode Mode, lang string) ([]Span, error) {
	switch mode {
	case ModePlain:
		return Plain(text), nil
	case ModeMarkdown:
		return c.markdown(text)
	case ModeCode:
		return c.code(text, lang)
	}
	return nil, fmt.Errorf("unknown content mode %d", mode)
}

// Plain returns text as a single unstyled span
func Plain(text string) []Span {
	if text == "" {
		return nil
	}
	return []Span{{Text: text}}
}

// Text concatenates span text
func Text(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// appendSpan merges runs with identical style
func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 {
		last := &spans[n-1]
		if last.Fg == s.Fg && last.Bg == s.Bg && last.Attrs == s.Attrs {
			last.Text += s.Text
			return spans
		}
	}
	return append(spans, s)
}
