package format

import "unicode"

const (
	hashLen = 8  // §#rrggbb
	xLen    = 14 // §x§r§r§g§g§b§b
)

// Extended understands every legacy code plus two RGB forms: §#rrggbb and
// the repeated-marker form §x§r§r§g§g§b§b. A form whose visible part is a
// consistent prefix reports its full length (truncated directive); any
// inconsistency makes the marker ordinary content.
type Extended struct{}

var _ Provider = Extended{}

func (Extended) Name() string { return "extended" }

func (Extended) DirectiveLength(text []rune, i int) int {
	if i < 0 || i >= len(text) || text[i] != Marker {
		return 0
	}
	if i+1 >= len(text) {
		return 2
	}
	switch unicode.ToLower(text[i+1]) {
	case '#':
		for k := i + 2; k < i+hashLen && k < len(text); k++ {
			if _, ok := hexValue(text[k]); !ok {
				return 0
			}
		}
		return hashLen
	case 'x':
		for k := i + 2; k < i+xLen && k < len(text); k++ {
			if (k-i)%2 == 0 {
				if text[k] != Marker {
					return 0
				}
			} else if _, ok := hexValue(text[k]); !ok {
				return 0
			}
		}
		return xLen
	}
	if _, ok := legacyCode(text[i+1]); ok {
		return 2
	}
	return 0
}

func (e Extended) DirectiveStart(text []rune, end int) (int, bool) {
	return startOf(e, text, end, xLen, hashLen, 2)
}

func (e Extended) Directive(text []rune, i int) (Directive, bool) {
	n := e.DirectiveLength(text, i)
	if n == 0 || i+n > len(text) {
		return Directive{}, false
	}
	switch n {
	case hashLen:
		return Directive{Kind: KindColor, Color: parseRGB(text[i+2 : i+hashLen]), Len: n}, true
	case xLen:
		digits := make([]rune, 0, 6)
		for k := i + 3; k < i+xLen; k += 2 {
			digits = append(digits, text[k])
		}
		return Directive{Kind: KindColor, Color: parseRGB(digits), Len: n}, true
	}
	return legacyCode(text[i+1])
}

func (e Extended) Sanitize(text []rune) []rune { return sanitize(e, text) }

func (e Extended) ActiveFormatting(text []rune) string { return active(e, text) }

func parseRGB(digits []rune) RGB {
	var v [6]int
	for k, r := range digits {
		v[k], _ = hexValue(r)
	}
	return RGB{
		R: uint8(v[0]<<4 | v[1]),
		G: uint8(v[2]<<4 | v[3]),
		B: uint8(v[4]<<4 | v[5]),
	}
}
