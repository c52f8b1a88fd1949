// Package metrics measures the pixel width of book text.
//
// A Metrics value reports the horizontal advance of a single visible rune.
// Formatting directives never reach a Metrics value: callers skip them and
// only ask about glyphs. Implementations must be deterministic for a given
// configuration.
package metrics

import (
	"errors"
	"fmt"
	"strings"
)

// Metrics reports glyph advances in pixels.
type Metrics interface {
	// Advance returns the width of r. A newline has zero width.
	Advance(r rune, bold bool) float64
}

// ErrUnknownMetrics is returned by Lookup for an unsupported metrics name.
var ErrUnknownMetrics = errors.New("unknown text metrics")

// Width sums the advances of every rune in s.
func Width(m Metrics, s string, bold bool) float64 {
	var w float64
	for _, r := range s {
		w += m.Advance(r, bold)
	}
	return w
}

// Lookup builds the metrics registered under name. fixed, cells and face
// read size as their unit (pixels per rune, pixels per cell, point size).
// canvas needs a font and is built with NewCanvas instead.
func Lookup(name string, size float64) (Metrics, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "vanilla":
		return Vanilla{}, nil
	case "fixed":
		if size <= 0 {
			size = DefaultFixedWidth
		}
		return Fixed(size), nil
	case "cells":
		if size <= 0 {
			size = DefaultFixedWidth
		}
		return Cells{CellWidth: size}, nil
	case "face", "gofont":
		f, err := NewGoFace(size)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "basic":
		return NewBasicFace(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetrics, name)
	}
}
