package span

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/lixenwraith/termgraph/terminal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownStyle colors markdown elements
type MarkdownStyle struct {
	Heading    terminal.Color
	Code       terminal.Color
	CodeBg     terminal.Color
	Link       terminal.Color
	Quote      terminal.Color
	Bullet     terminal.Color
	Rule       terminal.Color
	RuleLength int
}

// DefaultMarkdownStyle returns a palette readable on dark and light themes
func DefaultMarkdownStyle() MarkdownStyle {
	return MarkdownStyle{
		Heading:    terminal.RGB(0x5f, 0xaf, 0xff),
		Code:       terminal.RGB(0xff, 0xaf, 0x5f),
		Link:       terminal.RGB(0x5f, 0xd7, 0xaf),
		Quote:      terminal.RGB(0x87, 0x87, 0x87),
		Bullet:     terminal.RGB(0xaf, 0x87, 0xff),
		Rule:       terminal.RGB(0x58, 0x58, 0x58),
		RuleLength: 20,
	}
}

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// mdWriter accumulates spans while walking the markdown AST
type mdWriter struct {
	style  MarkdownStyle
	src    []byte
	spans  []Span
	attrs  terminal.Attr
	fg     terminal.Color
	quote  int
	lists  []*ast.List
	items  []int
	lineAt bool // at start of an output line
	marker bool // list marker just written
}

func (c *Converter) markdown(source string) ([]Span, error) {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	w := &mdWriter{style: c.Markdown, src: src, lineAt: true}
	if err := ast.Walk(doc, w.walk); err != nil {
		return nil, err
	}

	// Drop trailing newlines from block separators
	for len(w.spans) > 0 {
		last := &w.spans[len(w.spans)-1]
		last.Text = strings.TrimRight(last.Text, "\n")
		if last.Text != "" {
			break
		}
		w.spans = w.spans[:len(w.spans)-1]
	}
	return w.spans, nil
}

func (w *mdWriter) emit(s string, fg terminal.Color, attrs terminal.Attr) {
	if s == "" {
		return
	}
	if w.lineAt && w.quote > 0 {
		w.spans = appendSpan(w.spans, Span{Text: strings.Repeat("│ ", w.quote), Fg: w.style.Quote})
	}
	w.spans = appendSpan(w.spans, Span{Text: s, Fg: fg, Attrs: attrs})
	w.lineAt = strings.HasSuffix(s, "\n")
}

func (w *mdWriter) text(s string) {
	fg := w.fg
	attrs := w.attrs
	if w.quote > 0 && fg == terminal.ColorDefault {
		fg = w.style.Quote
		attrs |= terminal.AttrItalic
	}
	w.emit(s, fg, attrs)
}

func (w *mdWriter) newline() {
	if !w.lineAt {
		w.emit("\n", terminal.ColorDefault, 0)
	}
}

func (w *mdWriter) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Heading:
		if entering {
			w.newline()
			w.fg = w.style.Heading
			w.attrs |= terminal.AttrBold
			if n.Level == 1 {
				w.attrs |= terminal.AttrUnderline
			}
		} else {
			w.fg = terminal.ColorDefault
			w.attrs &^= terminal.AttrBold | terminal.AttrUnderline
			w.newline()
		}

	case *ast.Paragraph, *ast.TextBlock:
		if entering && w.marker {
			// First block of a list item continues the marker line
			w.marker = false
			break
		}
		w.newline()

	case *ast.Emphasis:
		flag := terminal.AttrItalic
		if n.Level >= 2 {
			flag = terminal.AttrBold
		}
		if entering {
			w.attrs |= flag
		} else {
			w.attrs &^= flag
		}

	case *extast.Strikethrough:
		if entering {
			w.attrs |= terminal.AttrStrikethrough
		} else {
			w.attrs &^= terminal.AttrStrikethrough
		}

	case *ast.CodeSpan:
		if entering {
			var buf bytes.Buffer
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					buf.Write(t.Segment.Value(w.src))
				}
			}
			w.spans = appendSpan(w.spans, Span{Text: buf.String(), Fg: w.style.Code, Bg: w.style.CodeBg})
			w.lineAt = false
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.newline()
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				w.emit(string(seg.Value(w.src)), w.style.Code, 0)
			}
			w.newline()
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		if entering {
			w.fg = w.style.Link
			w.attrs |= terminal.AttrUnderline
		} else {
			w.fg = terminal.ColorDefault
			w.attrs &^= terminal.AttrUnderline
		}

	case *ast.AutoLink:
		if entering {
			w.emit(string(n.URL(w.src)), w.style.Link, terminal.AttrUnderline)
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			w.newline()
			w.quote++
		} else {
			w.quote--
		}

	case *ast.List:
		if entering {
			w.newline()
			w.lists = append(w.lists, n)
			w.items = append(w.items, n.Start)
		} else {
			w.lists = w.lists[:len(w.lists)-1]
			w.items = w.items[:len(w.items)-1]
		}

	case *ast.ListItem:
		if entering && len(w.lists) > 0 {
			w.newline()
			depth := len(w.lists) - 1
			list := w.lists[depth]
			marker := "• "
			if list.IsOrdered() {
				marker = strconv.Itoa(w.items[depth]) + ". "
				w.items[depth]++
			}
			w.emit(strings.Repeat("  ", depth)+marker, w.style.Bullet, 0)
			w.marker = true
		}

	case *ast.ThematicBreak:
		if entering {
			w.newline()
			w.emit(strings.Repeat("─", w.style.RuleLength)+"\n", w.style.Rule, 0)
		}

	case *ast.Text:
		if entering {
			w.text(string(n.Segment.Value(w.src)))
			if n.HardLineBreak() || n.SoftLineBreak() {
				w.emit("\n", terminal.ColorDefault, 0)
			}
		}

	case *ast.String:
		if entering {
			w.text(string(n.Value))
		}
	}
	return ast.WalkContinue, nil
}
