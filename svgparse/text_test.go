package svgparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/gosvg/svg/svgtree"
)

func textElement(t *testing.T, doc string) *Element {
	t.Helper()
	e := elementFromString(t, doc)
	require.Equal(t, "text", e.Name)
	return e
}

func TestParseTextDefaults(t *testing.T) {
	run, err := parseText(textElement(t, `<text>Hi</text>`), DefaultDPI)
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.Equal(t, "Arial", run.FontFamily)
	assert.Equal(t, 12.0, run.FontSize)
	assert.Equal(t, svgtree.Point{}, run.Origin)
	assert.False(t, run.Bold)
	assert.False(t, run.Italic)
}

func TestParseTextEmpty(t *testing.T) {
	run, err := parseText(textElement(t, `<text>   </text>`), DefaultDPI)
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestParseTextAttributes(t *testing.T) {
	e := textElement(t, `<text x="5" y="20" font-size="16"
		font-family="'Fira Code', monospace" font-weight="700"
		font-style="oblique">ok</text>`)
	run, err := parseText(e, DefaultDPI)
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.Equal(t, svgtree.Point{X: 5, Y: 20}, run.Origin)
	assert.Equal(t, 16.0, run.FontSize)
	assert.Equal(t, "Fira Code", run.FontFamily, "quoted first family wins")
	assert.True(t, run.Bold)
	assert.True(t, run.Italic)
}

func TestBoldWeights(t *testing.T) {
	assert.True(t, isBoldWeight("bold"))
	assert.True(t, isBoldWeight(" Bolder "))
	assert.True(t, isBoldWeight("600"))
	assert.True(t, isBoldWeight("900"))
	assert.False(t, isBoldWeight("400"))
	assert.False(t, isBoldWeight("normal"))
	assert.False(t, isBoldWeight(""))
}

func TestParseTextMalformedSizeKeepsDefault(t *testing.T) {
	run, err := parseText(textElement(t, `<text font-size="huge">x</text>`), DefaultDPI)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, 12.0, run.FontSize)
}

func TestGlyphLayout(t *testing.T) {
	run, err := parseText(textElement(t, `<text x="10">AWA</text>`), DefaultDPI)
	require.NoError(t, err)
	require.Len(t, run.Glyphs, 3)

	assert.Equal(t, 'A', run.Glyphs[0].Rune)
	assert.Equal(t, 'W', run.Glyphs[1].Rune)
	assert.Equal(t, run.Glyphs[0].Index, run.Glyphs[2].Index)

	// positions are cumulative from the origin
	assert.Equal(t, 10.0, run.Glyphs[0].X)
	for i, g := range run.Glyphs {
		assert.Greater(t, g.Advance, 0.0)
		if i > 0 {
			prev := run.Glyphs[i-1]
			assert.InDelta(t, prev.X+prev.Advance, g.X, 1e-9)
		}
	}
	assert.InDelta(t, run.Glyphs[2].X+run.Glyphs[2].Advance-10, run.Width(), 1e-9)
}

func TestRegisterFont(t *testing.T) {
	require.NoError(t, RegisterFont("Test Bold", gobold.TTF))

	regular := LookupFont("unknown family")
	bold := LookupFont("test bold") // registry is case-insensitive
	assert.NotSame(t, regular, bold)

	err := RegisterFont("broken", []byte("not a font"))
	assert.Error(t, err)
}
