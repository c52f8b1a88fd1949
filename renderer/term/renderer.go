// Package termrenderer previews book pages in a terminal: one bordered box
// per page, every line padded to the widest line of the book.
package termrenderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/format"
	"github.com/ByLCY/quire/renderer"
)

// Options configures the preview.
type Options struct {
	// Plain drops every color and style; use it when the output is not a terminal.
	Plain bool
	// Output is where styled text will be written; it decides the color profile.
	Output io.Writer
}

// Renderer renders snapshots as text.
type Renderer struct {
	plain bool
	lg    *lipgloss.Renderer
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer builds a preview renderer.
func NewRenderer(opts Options) *Renderer {
	out := opts.Output
	if out == nil || opts.Plain {
		out = io.Discard
	}
	return &Renderer{plain: opts.Plain, lg: lipgloss.NewRenderer(out)}
}

// Render returns the preview of every page.
func (r *Renderer) Render(snap *book.Snapshot) ([]byte, error) {
	if snap == nil || len(snap.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	p, err := format.Lookup(snap.Provider)
	if err != nil {
		return nil, err
	}

	pages := make([][]string, len(snap.Pages))
	width := 0
	for i, page := range snap.Pages {
		for _, ln := range page.Lines {
			s := r.line(p, ln)
			width = max(width, ansi.PrintableRuneWidth(s))
			pages[i] = append(pages[i], s)
		}
	}

	box := r.lg.NewStyle().Border(lipgloss.NormalBorder())
	header := r.lg.NewStyle().Faint(!r.plain)
	var out []string
	switch {
	case snap.Title != "" && snap.Author != "":
		out = append(out, snap.Title+" by "+snap.Author)
	case snap.Title != "":
		out = append(out, snap.Title)
	}
	for i, lines := range pages {
		for k, s := range lines {
			lines[k] = padding.String(s, uint(width))
		}
		label := header.Render(fmt.Sprintf("Page %d of %d", i+1, len(pages)))
		out = append(out, lipgloss.JoinVertical(lipgloss.Left, label, box.Render(strings.Join(lines, "\n"))))
	}
	return []byte(strings.Join(out, "\n\n") + "\n"), nil
}

// line renders one line with its inherited prefix applied.
func (r *Renderer) line(p format.Provider, ln book.LineSnapshot) string {
	var b strings.Builder
	for _, span := range format.Spans(p, []rune(ln.Rendered())) {
		text := span.Text
		if span.Style&format.Obfuscated != 0 {
			text = strings.Map(func(c rune) rune {
				if c == ' ' {
					return c
				}
				return '#'
			}, text)
		}
		if r.plain {
			b.WriteString(text)
			continue
		}
		b.WriteString(r.style(span).Render(text))
	}
	return b.String()
}

func (r *Renderer) style(span format.Span) lipgloss.Style {
	st := r.lg.NewStyle().
		Bold(span.Style&format.Bold != 0).
		Italic(span.Style&format.Italic != 0).
		Underline(span.Style&format.Underline != 0).
		Strikethrough(span.Style&format.Strikethrough != 0)
	if span.Colored {
		st = st.Foreground(lipgloss.Color(span.Color.Hex()))
	}
	return st
}
