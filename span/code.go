package span

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lixenwraith/termgraph/terminal"
)

func (c *Converter) code(source, lang string) ([]Span, error) {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(c.CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, err
	}

	var spans []Span
	for tok := it(); tok != chroma.EOF; tok = it() {
		entry := style.Get(tok.Type)
		s := Span{Text: tok.Value}
		if entry.Colour.IsSet() {
			s.Fg = terminal.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
		}
		if entry.Bold == chroma.Yes {
			s.Attrs |= terminal.AttrBold
		}
		if entry.Italic == chroma.Yes {
			s.Attrs |= terminal.AttrItalic
		}
		if entry.Underline == chroma.Yes {
			s.Attrs |= terminal.AttrUnderline
		}
		spans = appendSpan(spans, s)
	}

	// Lexers may append a newline the source did not have
	if n := len(spans); n > 0 && !strings.HasSuffix(source, "\n") {
		last := &spans[n-1]
		last.Text = strings.TrimSuffix(last.Text, "\n")
		if last.Text == "" {
			spans = spans[:n-1]
		}
	}
	return spans, nil
}
