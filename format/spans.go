package format

import "strings"

// Span is a visible run of text with uniform formatting.
type Span struct {
	Text    string
	Color   RGB
	Colored bool
	Style   Style
}

// Spans decodes text into visible runs. Newlines and truncated directives
// produce no output.
func Spans(p Provider, text []rune) []Span {
	var (
		out []Span
		cur Span
		buf strings.Builder
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		cur.Text = buf.String()
		out = append(out, cur)
		buf.Reset()
	}
	for i := 0; i < len(text); {
		if n := p.DirectiveLength(text, i); n > 0 {
			if i+n > len(text) {
				break
			}
			d, _ := p.Directive(text, i)
			flush()
			switch d.Kind {
			case KindColor:
				cur = Span{Color: d.Color, Colored: true}
			case KindReset:
				cur = Span{}
			case KindStyle:
				cur.Style |= d.Style
			}
			i += n
			continue
		}
		if text[i] != '\n' {
			buf.WriteRune(text[i])
		}
		i++
	}
	flush()
	return out
}
