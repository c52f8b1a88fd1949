package metrics

import (
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"
)

// PxPerMm converts canvas millimetres to pixels at 96 DPI.
const PxPerMm = 96 / 25.4

// Canvas measures glyphs with a tdewolff/canvas font family, the same faces
// the PDF renderer draws with. Advances are cached per rune.
type Canvas struct {
	regular *canvas.FontFace
	bold    *canvas.FontFace
	scale   float64

	mu    sync.Mutex
	cache map[canvasKey]float64
}

type canvasKey struct {
	r    rune
	bold bool
}

// NewCanvas loads the regular and bold font data into one family and
// measures at size points. bold may be empty.
func NewCanvas(regular, bold []byte, size float64) (*Canvas, error) {
	if size <= 0 {
		size = 8
	}
	family := canvas.NewFontFamily("quire-metrics")
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	c := &Canvas{scale: PxPerMm, cache: map[canvasKey]float64{}}
	c.regular = family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	if len(bold) > 0 {
		if err := family.LoadFont(bold, 0, canvas.FontBold); err != nil {
			return nil, fmt.Errorf("load bold font: %w", err)
		}
		c.bold = family.Face(size, canvas.Black, canvas.FontBold, canvas.FontNormal)
	}
	return c, nil
}

func (c *Canvas) Advance(r rune, bold bool) float64 {
	if r == '\n' {
		return 0
	}
	key := canvasKey{r, bold}
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.cache[key]; ok {
		return w
	}
	face, extra := c.regular, 0.0
	if bold {
		if c.bold != nil {
			face = c.bold
		} else {
			extra = 1
		}
	}
	w := face.TextWidth(string(r))*c.scale + extra
	c.cache[key] = w
	return w
}
