package svgtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorWithOpacity(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, A: 255}
	assert.Equal(t, c, c.WithOpacity(1))
	assert.Equal(t, c, c.WithOpacity(2.5))
	assert.Equal(t, uint8(128), c.WithOpacity(0.5).A)
	assert.Equal(t, uint8(0), c.WithOpacity(-1).A)

	// quarter opacity of full alpha rounds, not truncates
	assert.Equal(t, uint8(64), Color{A: 255}.WithOpacity(0.25).A)
}

func TestSolidBrushOpacity(t *testing.T) {
	red := SolidBrush{Color: Color{R: 255, A: 255}}
	dim, ok := SolidColor(red.WithOpacity(0.5))
	require.True(t, ok)
	assert.Equal(t, uint8(128), dim.A)
	// the receiver is a value, the original stays opaque
	assert.Equal(t, uint8(255), red.Color.A)

	// a transparent brush ignores opacity entirely
	none := SolidBrush{Color: Transparent}
	got, ok := SolidColor(none.WithOpacity(0.5))
	require.True(t, ok)
	assert.Equal(t, Transparent, got)
}

func TestGradientOpacityClones(t *testing.T) {
	g := &LinearGradientBrush{
		Start: Point{}, End: Point{X: 1},
		Stops: []GradientStop{
			{Offset: 0, Color: Color{R: 255, A: 255}},
			{Offset: 1, Color: Color{B: 255, A: 255}},
		},
	}
	faded := g.WithOpacity(0.5).(*LinearGradientBrush)
	for _, s := range faded.Stops {
		assert.Equal(t, uint8(128), s.Color.A)
	}
	// the shared instance is untouched
	for _, s := range g.Stops {
		assert.Equal(t, uint8(255), s.Color.A)
	}
	// full opacity is the identity and may share
	assert.Same(t, g, g.WithOpacity(1).(*LinearGradientBrush))
}

func TestGradientClone(t *testing.T) {
	g := &RadialGradientBrush{
		Center: Point{X: 0.5, Y: 0.5}, Origin: Point{X: 0.5, Y: 0.5},
		RadiusX: 0.5, RadiusY: 0.5,
		Stops: []GradientStop{{Offset: 0, Color: Black}},
	}
	c := g.Clone().(*RadialGradientBrush)
	c.Stops[0].Color = Color{R: 1, A: 1}
	c.RadiusX = 9
	assert.Equal(t, Black, g.Stops[0].Color)
	assert.Equal(t, 0.5, g.RadiusX)
}

func TestSolidColor(t *testing.T) {
	c, ok := SolidColor(NewSolidBrush(1, 2, 3, 4))
	require.True(t, ok)
	assert.Equal(t, Color{1, 2, 3, 4}, c)

	_, ok = SolidColor(&LinearGradientBrush{})
	assert.False(t, ok)
}
