package format

import "unicode"

// legacyColors maps the sixteen color codes 0-9a-f to their RGB values.
var legacyColors = [16]RGB{
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0xAA}, {0x00, 0xAA, 0x00}, {0x00, 0xAA, 0xAA},
	{0xAA, 0x00, 0x00}, {0xAA, 0x00, 0xAA}, {0xFF, 0xAA, 0x00}, {0xAA, 0xAA, 0xAA},
	{0x55, 0x55, 0x55}, {0x55, 0x55, 0xFF}, {0x55, 0xFF, 0x55}, {0x55, 0xFF, 0xFF},
	{0xFF, 0x55, 0x55}, {0xFF, 0x55, 0xFF}, {0xFF, 0xFF, 0x55}, {0xFF, 0xFF, 0xFF},
}

// Legacy is the two-character syntax: the marker followed by one code.
// Codes are 0-9a-f (colors), k-o (styles) and r (reset), case-insensitive.
type Legacy struct{}

var _ Provider = Legacy{}

func (Legacy) Name() string { return "legacy" }

func (Legacy) DirectiveLength(text []rune, i int) int {
	if i < 0 || i >= len(text) || text[i] != Marker {
		return 0
	}
	if i+1 >= len(text) {
		return 2
	}
	if _, ok := legacyCode(text[i+1]); ok {
		return 2
	}
	return 0
}

func (l Legacy) DirectiveStart(text []rune, end int) (int, bool) {
	return startOf(l, text, end, 2)
}

func (Legacy) Directive(text []rune, i int) (Directive, bool) {
	if i < 0 || i+1 >= len(text) || text[i] != Marker {
		return Directive{}, false
	}
	return legacyCode(text[i+1])
}

func (l Legacy) Sanitize(text []rune) []rune { return sanitize(l, text) }

func (l Legacy) ActiveFormatting(text []rune) string { return active(l, text) }

func legacyCode(r rune) (Directive, bool) {
	r = unicode.ToLower(r)
	if v, ok := hexValue(r); ok {
		return Directive{Kind: KindColor, Color: legacyColors[v], Len: 2}, true
	}
	if r == 'r' {
		return Directive{Kind: KindReset, Len: 2}, true
	}
	for _, sc := range styleCodes {
		if sc.code == r {
			return Directive{Kind: KindStyle, Style: sc.style, Len: 2}, true
		}
	}
	return Directive{}, false
}

func hexValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}
