package svgparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosvg/svg/svgtree"
)

func elementFromString(t *testing.T, doc string) *Element {
	t.Helper()
	root, err := decodeDocument(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func TestParseLinearGradient(t *testing.T) {
	e := elementFromString(t, `<linearGradient x1="0" y1="0" x2="100%" y2="0" spreadMethod="reflect">
		<stop offset="0" stop-color="red"/>
		<stop offset="50%" stop-color="#00ff00" stop-opacity="0.5"/>
		<stop offset="1" stop-color="blue"/>
	</linearGradient>`)
	g, err := parseLinearGradient(e, NewDefs())
	require.NoError(t, err)

	assert.Equal(t, svgtree.Point{X: 0, Y: 0}, g.Start)
	assert.Equal(t, svgtree.Point{X: 1, Y: 0}, g.End)
	assert.Equal(t, svgtree.ReflectSpread, g.Spread)
	assert.Equal(t, svgtree.BoundingBoxMapping, g.Mapping)

	require.Len(t, g.Stops, 3)
	assert.Equal(t, svgtree.Color{R: 255, A: 255}, g.Stops[0].Color)
	assert.Equal(t, 0.5, g.Stops[1].Offset)
	assert.Equal(t, uint8(128), g.Stops[1].Color.A)
}

func TestParseGradientUnits(t *testing.T) {
	e := elementFromString(t, `<linearGradient gradientUnits="userSpaceOnUse"/>`)
	g, err := parseLinearGradient(e, NewDefs())
	require.NoError(t, err)
	assert.Equal(t, svgtree.AbsoluteMapping, g.Mapping)

	e = elementFromString(t, `<linearGradient/>`)
	g, err = parseLinearGradient(e, NewDefs())
	require.NoError(t, err)
	assert.Equal(t, svgtree.BoundingBoxMapping, g.Mapping)
}

func TestParseRadialGradientDefaults(t *testing.T) {
	e := elementFromString(t, `<radialGradient/>`)
	g, err := parseRadialGradient(e, NewDefs())
	require.NoError(t, err)
	assert.Equal(t, svgtree.Point{X: 0.5, Y: 0.5}, g.Center)
	assert.Equal(t, g.Center, g.Origin) // focal point defaults to center
	assert.Equal(t, 0.5, g.RadiusX)
}

func TestGradientStopStyleWins(t *testing.T) {
	e := elementFromString(t, `<linearGradient>
		<stop offset="0" stop-color="red" style="stop-color: blue; stop-opacity: 0.5"/>
	</linearGradient>`)
	g, err := parseLinearGradient(e, NewDefs())
	require.NoError(t, err)
	require.Len(t, g.Stops, 1)
	assert.Equal(t, uint8(255), g.Stops[0].Color.B)
	assert.Equal(t, uint8(0), g.Stops[0].Color.R)
	assert.Equal(t, uint8(128), g.Stops[0].Color.A)
}

func TestGradientHrefInheritance(t *testing.T) {
	defs := NewDefs()
	base := elementFromString(t, `<linearGradient x1="0.1" y1="0.2" x2="0.8" y2="0.9">
		<stop offset="0" stop-color="red"/>
		<stop offset="1" stop-color="blue"/>
	</linearGradient>`)
	g, err := parseLinearGradient(base, defs)
	require.NoError(t, err)
	defs.Register("base", g)

	// geometry and stops still at their structural defaults inherit
	derived := elementFromString(t, `<linearGradient href="#base" spreadMethod="repeat"/>`)
	d, err := parseLinearGradient(derived, defs)
	require.NoError(t, err)

	assert.Equal(t, svgtree.Point{X: 0.1, Y: 0.2}, d.Start)
	assert.Equal(t, svgtree.Point{X: 0.8, Y: 0.9}, d.End)
	require.Len(t, d.Stops, 2)
	assert.Equal(t, svgtree.RepeatSpread, d.Spread)

	// explicitly set fields are kept
	override := elementFromString(t, `<linearGradient href="#base" x1="0.3" y1="0.3"/>`)
	o, err := parseLinearGradient(override, defs)
	require.NoError(t, err)
	assert.Equal(t, svgtree.Point{X: 0.3, Y: 0.3}, o.Start)
	assert.Equal(t, svgtree.Point{X: 0.8, Y: 0.9}, o.End)
}

func TestGradientTransform(t *testing.T) {
	e := elementFromString(t, `<linearGradient gradientTransform="rotate(90)"/>`)
	g, err := parseLinearGradient(e, NewDefs())
	require.NoError(t, err)
	assert.Equal(t, svgtree.Rotation{Angle: 90}, g.Transform)
}

func TestGradientStopOffsetClamped(t *testing.T) {
	e := elementFromString(t, `<linearGradient>
		<stop offset="-1" stop-color="red"/>
		<stop offset="150%" stop-color="blue"/>
	</linearGradient>`)
	g, err := parseLinearGradient(e, NewDefs())
	require.NoError(t, err)
	require.Len(t, g.Stops, 2)
	assert.Equal(t, 0.0, g.Stops[0].Offset)
	assert.Equal(t, 1.0, g.Stops[1].Offset)
}
