package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFixed(t *testing.T) {
	m := Fixed(6)
	assert.Equal(t, 6.0, m.Advance('W', false))
	assert.Equal(t, 6.0, m.Advance('i', true))
	assert.Equal(t, 0.0, m.Advance('\n', false))
	assert.Equal(t, 66.0, Width(m, "Hello World", false))
}

func TestVanilla(t *testing.T) {
	tests := []struct {
		r    rune
		bold bool
		want float64
	}{
		{'a', false, 6},
		{'a', true, 7},
		{'i', false, 2},
		{'l', false, 3},
		{' ', false, 4},
		{' ', true, 4},
		{'t', false, 4},
		{'f', false, 5},
		{'@', false, 7},
		{'\n', true, 0},
	}
	for _, tt := range tests {
		if got := (Vanilla{}).Advance(tt.r, tt.bold); got != tt.want {
			t.Fatalf("Advance(%q, %v) = %v, want %v", tt.r, tt.bold, got, tt.want)
		}
	}
}

func TestCells(t *testing.T) {
	m := Cells{CellWidth: 3}
	assert.Equal(t, 3.0, m.Advance('a', false))
	assert.Equal(t, 6.0, m.Advance('書', false))
	assert.Equal(t, 0.0, m.Advance('\n', false))
	assert.Equal(t, 6.0, Cells{}.Advance('x', false))
}

func TestGoFace(t *testing.T) {
	f, err := NewGoFace(12)
	require.NoError(t, err)

	narrow := f.Advance('i', false)
	wide := f.Advance('W', false)
	assert.Greater(t, narrow, 0.0)
	assert.Greater(t, wide, narrow)
	assert.GreaterOrEqual(t, f.Advance('W', true), wide)
	assert.Equal(t, 0.0, f.Advance('\n', false))
}

func TestBasicFace(t *testing.T) {
	f := NewBasicFace()
	assert.Equal(t, 7.0, f.Advance('a', false))
	assert.Equal(t, 8.0, f.Advance('a', true))
}

func TestCanvas(t *testing.T) {
	c, err := NewCanvas(goregular.TTF, gobold.TTF, 12)
	require.NoError(t, err)

	w := c.Advance('m', false)
	assert.Greater(t, w, 0.0)
	assert.Equal(t, w, c.Advance('m', false), "cached advance is stable")
	assert.Greater(t, w, c.Advance('i', false))
	assert.Equal(t, 0.0, c.Advance('\n', false))
}

func TestLookup(t *testing.T) {
	m, err := Lookup("", 0)
	require.NoError(t, err)
	assert.IsType(t, Vanilla{}, m)

	m, err = Lookup("fixed", 0)
	require.NoError(t, err)
	assert.Equal(t, Fixed(DefaultFixedWidth), m)

	m, err = Lookup("cells", 2)
	require.NoError(t, err)
	assert.Equal(t, Cells{CellWidth: 2}, m)

	_, err = Lookup("braille", 0)
	assert.True(t, errors.Is(err, ErrUnknownMetrics))
}
