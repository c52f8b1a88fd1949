// Package format recognizes the inline formatting directives embedded in
// book text.
//
// A directive is a short run of characters introduced by Marker. It never
// renders as a glyph and it is atomic: callers walk text directive by
// directive and never stop inside one. Text is handled as runes so that every
// index is a character offset.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// Marker introduces every directive.
const Marker = '§'

// Kind classifies a directive.
type Kind uint8

const (
	// KindColor selects a color and clears pending styles.
	KindColor Kind = iota + 1
	// KindStyle adds one style toggle.
	KindStyle
	// KindReset clears color and styles.
	KindReset
)

// Style is a set of style toggles.
type Style uint8

const (
	Obfuscated Style = 1 << iota
	Bold
	Strikethrough
	Underline
	Italic
)

// styleCodes lists the style toggles in canonical order together with the
// legacy code that encodes each of them.
var styleCodes = [...]struct {
	style Style
	code  rune
}{
	{Obfuscated, 'k'},
	{Bold, 'l'},
	{Strikethrough, 'm'},
	{Underline, 'n'},
	{Italic, 'o'},
}

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Directive describes one complete directive.
type Directive struct {
	Kind  Kind
	Style Style // only for KindStyle
	Color RGB   // only for KindColor
	Len   int   // length in runes, marker included
}

// Provider is a formatting syntax. Implementations are stateless: every call
// looks only at the text it is given.
type Provider interface {
	// Name identifies the syntax in configuration.
	Name() string

	// DirectiveLength returns 0 when no directive starts at i. Otherwise it
	// returns the directive's full length, which may run past the end of text
	// when the directive is truncated.
	DirectiveLength(text []rune, i int) int

	// DirectiveStart returns the start of the directive that ends exactly at
	// end, if there is one.
	DirectiveStart(text []rune, end int) (int, bool)

	// Directive decodes the complete directive starting at i.
	Directive(text []rune, i int) (Directive, bool)

	// Sanitize drops a truncated directive from the end of text.
	Sanitize(text []rune) []rune

	// ActiveFormatting returns the directives that reproduce the formatting
	// in effect after text when prepended to following text.
	ActiveFormatting(text []rune) string
}

// ErrUnknownProvider is returned by Lookup for an unsupported syntax name.
var ErrUnknownProvider = errors.New("unknown formatting provider")

// Lookup returns the provider registered under name. An empty name selects
// the legacy syntax.
func Lookup(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return Legacy{}, nil
	case "extended", "hex":
		return Extended{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// sanitize is the shared Sanitize implementation. A truncated directive can
// only sit at the very end, so a single forward walk finds it.
func sanitize(p Provider, text []rune) []rune {
	for i := 0; i < len(text); {
		n := p.DirectiveLength(text, i)
		if n == 0 {
			i++
			continue
		}
		if i+n > len(text) {
			return append([]rune(nil), text[:i]...)
		}
		i += n
	}
	return text
}

// active is the shared ActiveFormatting implementation: the last color wins
// and clears styles, a reset clears everything, styles accumulate.
func active(p Provider, text []rune) string {
	var color []rune
	var styles Style
	for i := 0; i < len(text); {
		d, ok := p.Directive(text, i)
		if !ok {
			i++
			continue
		}
		switch d.Kind {
		case KindColor:
			color = text[i : i+d.Len]
			styles = 0
		case KindReset:
			color = nil
			styles = 0
		case KindStyle:
			styles |= d.Style
		}
		i += d.Len
	}
	var b strings.Builder
	b.WriteString(string(color))
	for _, sc := range styleCodes {
		if styles&sc.style != 0 {
			b.WriteRune(Marker)
			b.WriteRune(sc.code)
		}
	}
	return b.String()
}

// startOf tries the candidate lengths longest first and accepts a start only
// when a forward parse from it yields exactly that length.
func startOf(p Provider, text []rune, end int, lengths ...int) (int, bool) {
	if end <= 0 || end > len(text) {
		return 0, false
	}
	for _, n := range lengths {
		s := end - n
		if s >= 0 && p.DirectiveLength(text, s) == n {
			return s, true
		}
	}
	return 0, false
}
