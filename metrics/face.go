package metrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Face measures glyphs with golang.org/x/image font faces. Font faces are not
// safe for concurrent use, so every lookup is serialized.
type Face struct {
	mu      sync.Mutex
	regular font.Face
	bold    font.Face
}

// NewFace wraps regular and bold faces. bold may be nil, in which case bold
// glyphs are one pixel wider than regular ones.
func NewFace(regular, bold font.Face) *Face {
	return &Face{regular: regular, bold: bold}
}

// NewBasicFace uses the 7x13 bitmap face, which needs no font data.
func NewBasicFace() *Face {
	return NewFace(basicfont.Face7x13, nil)
}

// NewGoFace parses the embedded Go fonts at the given point size (72 DPI, so
// one point is one pixel).
func NewGoFace(size float64) (*Face, error) {
	if size <= 0 {
		size = 8
	}
	regular, err := parseFace(goregular.TTF, size)
	if err != nil {
		return nil, fmt.Errorf("load regular face: %w", err)
	}
	bold, err := parseFace(gobold.TTF, size)
	if err != nil {
		return nil, fmt.Errorf("load bold face: %w", err)
	}
	return NewFace(regular, bold), nil
}

// NewFaceFromTTF builds a Face from raw TrueType/OpenType data.
func NewFaceFromTTF(regular, bold []byte, size float64) (*Face, error) {
	r, err := parseFace(regular, size)
	if err != nil {
		return nil, err
	}
	var b font.Face
	if len(bold) > 0 {
		if b, err = parseFace(bold, size); err != nil {
			return nil, err
		}
	}
	return NewFace(r, b), nil
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func (f *Face) Advance(r rune, bold bool) float64 {
	if r == '\n' {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	face, extra := f.regular, 0.0
	if bold {
		if f.bold != nil {
			face = f.bold
		} else {
			extra = 1
		}
	}
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		adv, _ = face.GlyphAdvance('?')
	}
	return toFloat(adv) + extra
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
