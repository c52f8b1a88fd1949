package metrics

// Vanilla follows the bitmap book font: most glyphs are 5 px wide plus 1 px
// of spacing, narrow punctuation is thinner, and bold adds one pixel.
type Vanilla struct{}

func (Vanilla) Advance(r rune, bold bool) float64 {
	if r == '\n' {
		return 0
	}
	w := vanillaAdvance(r)
	if bold && r != ' ' {
		w++
	}
	return w
}

func vanillaAdvance(r rune) float64 {
	switch r {
	case ' ', 'I', '[', ']', 't':
		return 4
	case '!', ',', '.', ':', ';', '|', 'i':
		return 2
	case '\'', 'l', '`':
		return 3
	case '"', '(', ')', '*', '<', '>', 'f', 'k', '{', '}':
		return 5
	case '@', '~':
		return 7
	}
	return 6
}
