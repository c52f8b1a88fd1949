package metrics

import "github.com/mattn/go-runewidth"

// Cells measures text in terminal cells, scaled by CellWidth pixels per cell.
// East Asian wide runes take two cells, combining marks none.
type Cells struct {
	CellWidth float64
}

func (c Cells) Advance(r rune, _ bool) float64 {
	if r == '\n' {
		return 0
	}
	w := c.CellWidth
	if w <= 0 {
		w = DefaultFixedWidth
	}
	return float64(runewidth.RuneWidth(r)) * w
}
