package metrics

// DefaultFixedWidth is the advance used when a fixed width is not given.
const DefaultFixedWidth = 6

// Fixed gives every visible rune the same advance. It is the headless
// fallback used by tests.
type Fixed float64

func (f Fixed) Advance(r rune, _ bool) float64 {
	if r == '\n' {
		return 0
	}
	return float64(f)
}
