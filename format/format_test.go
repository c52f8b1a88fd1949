package format_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/quire/format"
)

func runes(s string) []rune { return []rune(s) }

func TestLegacyDirectiveLength(t *testing.T) {
	p := format.Legacy{}
	tests := []struct {
		name string
		text string
		at   int
		want int
	}{
		{"color", "§aColor", 0, 2},
		{"upper case code", "§AColor", 0, 2},
		{"style", "x§lbold", 1, 2},
		{"reset", "§r", 0, 2},
		{"plain rune", "§aColor", 2, 0},
		{"unknown code is content", "§zap", 0, 0},
		{"dangling marker reports truncation", "abc§", 3, 2},
		{"out of range", "abc", 7, 0},
		{"negative index", "abc", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.DirectiveLength(runes(tt.text), tt.at))
		})
	}
}

func TestLegacyDirectiveStart(t *testing.T) {
	p := format.Legacy{}

	start, ok := p.DirectiveStart(runes("ab§c"), 4)
	require.True(t, ok)
	assert.Equal(t, 2, start)

	_, ok = p.DirectiveStart(runes("abcd"), 4)
	assert.False(t, ok)

	// The first marker is content because its code is another marker.
	start, ok = p.DirectiveStart(runes("§§a"), 3)
	require.True(t, ok)
	assert.Equal(t, 1, start)

	_, ok = p.DirectiveStart(runes("§a"), 0)
	assert.False(t, ok)
}

func TestSanitizeDropsTruncatedDirective(t *testing.T) {
	assert.Equal(t, "Hello", string(format.Legacy{}.Sanitize(runes("Hello§"))))
	assert.Equal(t, "Hello§a", string(format.Legacy{}.Sanitize(runes("Hello§a"))))
	assert.Equal(t, "a§zb", string(format.Legacy{}.Sanitize(runes("a§zb"))))

	assert.Equal(t, "Hi", string(format.Extended{}.Sanitize(runes("Hi§#12ab"))))
	assert.Equal(t, "Hi", string(format.Extended{}.Sanitize(runes("Hi§x§1§2"))))
	assert.Equal(t, "Hi§#12ab56", string(format.Extended{}.Sanitize(runes("Hi§#12ab56"))))
}

func TestActiveFormatting(t *testing.T) {
	p := format.Legacy{}
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"no directives", "plain words", ""},
		{"color", "§aGreen", "§a"},
		{"later color wins and clears styles", "§l§aX§cY", "§c"},
		{"styles follow color in canonical order", "§a§o§lX§k", "§a§k§l§o"},
		{"duplicate styles collapse", "§l§lX§l", "§l"},
		{"reset clears all", "§a§lX§rY", ""},
		{"style after reset", "§a§r§n", "§n"},
		{"truncated tail ignored", "§aX§", "§a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ActiveFormatting(runes(tt.text)))
		})
	}
}

func TestExtendedForms(t *testing.T) {
	p := format.Extended{}

	text := runes("§#ff8000Orange")
	assert.Equal(t, 8, p.DirectiveLength(text, 0))
	d, ok := p.Directive(text, 0)
	require.True(t, ok)
	assert.Equal(t, format.KindColor, d.Kind)
	assert.Equal(t, "#ff8000", d.Color.Hex())

	text = runes("§x§0§0§f§f§0§0Lime")
	assert.Equal(t, 14, p.DirectiveLength(text, 0))
	d, ok = p.Directive(text, 0)
	require.True(t, ok)
	assert.Equal(t, "#00ff00", d.Color.Hex())

	start, ok := p.DirectiveStart(text, 14)
	require.True(t, ok)
	assert.Equal(t, 0, start, "the longest form ending at the boundary wins")

	assert.Equal(t, 0, p.DirectiveLength(runes("§#zz"), 0))
	assert.Equal(t, 0, p.DirectiveLength(runes("§xyz"), 0))
	assert.Equal(t, 8, p.DirectiveLength(runes("§#ab"), 0), "consistent prefix is a truncated directive")
	assert.Equal(t, 2, p.DirectiveLength(runes("§lBold"), 0))

	assert.Equal(t, "§#ff8000§l", p.ActiveFormatting(runes("§a§#ff8000§lX")))
}

func TestSpans(t *testing.T) {
	spans := format.Spans(format.Legacy{}, runes("plain §cred§l bold\n§rend"))
	require.Len(t, spans, 4)

	assert.Equal(t, "plain ", spans[0].Text)
	assert.False(t, spans[0].Colored)

	assert.Equal(t, "red", spans[1].Text)
	assert.Equal(t, "#ff5555", spans[1].Color.Hex())

	assert.Equal(t, " bold", spans[2].Text)
	assert.Equal(t, format.Bold, spans[2].Style)
	assert.True(t, spans[2].Colored)

	assert.Equal(t, format.Span{Text: "end"}, spans[3])
}

func TestLookup(t *testing.T) {
	p, err := format.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "legacy", p.Name())

	p, err = format.Lookup("Extended")
	require.NoError(t, err)
	assert.Equal(t, "extended", p.Name())

	_, err = format.Lookup("markdown")
	assert.True(t, errors.Is(err, format.ErrUnknownProvider))
}
