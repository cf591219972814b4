package svgparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosvg/svg/svgtree"
)

func TestParseStyleBasics(t *testing.T) {
	props, err := ParseStyle("fill: red; stroke-width: 2; unknown-key: whatever", NewDefs())
	require.NoError(t, err)

	fill, ok := props[PropFill]
	require.True(t, ok)
	c, _ := svgtree.SolidColor(fill.Brush)
	assert.Equal(t, svgtree.Color{R: 255, A: 255}, c)

	w, ok := props[PropStrokeWidth]
	require.True(t, ok)
	assert.Equal(t, 2.0, w.Scalar)

	assert.Len(t, props, 2, "unknown keys are dropped")
}

func TestParseStyleEnums(t *testing.T) {
	props, err := ParseStyle(
		"fill-rule: EvenOdd; stroke-linecap: square; stroke-linejoin: bevel; stroke-miterlimit: 0.2",
		NewDefs())
	require.NoError(t, err)

	assert.Equal(t, svgtree.EvenOdd, props[PropFillRule].Rule)
	assert.Equal(t, svgtree.SquareCap, props[PropLineCap].Cap)
	assert.Equal(t, svgtree.BevelJoin, props[PropLineJoin].Join)
	// the miter limit clamps to its minimum of 1
	assert.Equal(t, 1.0, props[PropMiterLimit].Scalar)
}

func TestParseStyleEnumDefaults(t *testing.T) {
	props, err := ParseStyle(
		"fill-rule: whatever; stroke-linecap: whatever; stroke-linejoin: miter-clip",
		NewDefs())
	require.NoError(t, err)

	assert.Equal(t, svgtree.Nonzero, props[PropFillRule].Rule)
	assert.Equal(t, svgtree.FlatCap, props[PropLineCap].Cap)
	assert.Equal(t, svgtree.MiterJoin, props[PropLineJoin].Join)
}

func TestParseStyleDashes(t *testing.T) {
	props, err := ParseStyle("stroke-dasharray: 4 2, 1; stroke-dashoffset: 3", NewDefs())
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2, 1}, props[PropDashArray].Dashes)
	assert.Equal(t, 3.0, props[PropDashOffset].Scalar)

	props, err = ParseStyle("stroke-dasharray: none", NewDefs())
	require.NoError(t, err)
	v, ok := props[PropDashArray]
	require.True(t, ok)
	assert.Empty(t, v.Dashes)
}

func TestParseStyleURLReferences(t *testing.T) {
	defs := NewDefs()
	defs.Register("grad", &svgtree.LinearGradientBrush{
		Stops: []svgtree.GradientStop{{Color: svgtree.Black}},
	})
	defs.Register("width", 7.5)

	props, err := ParseStyle("fill: url(#grad); stroke-width: url(#width)", defs)
	require.NoError(t, err)

	_, isGrad := props[PropFill].Brush.(*svgtree.LinearGradientBrush)
	assert.True(t, isGrad)
	assert.Equal(t, 7.5, props[PropStrokeWidth].Scalar)
}

func TestParseStyleDanglingReferences(t *testing.T) {
	props, err := ParseStyle("fill: url(#missing); stroke-width: url(#missing)", NewDefs())
	require.NoError(t, err)

	// a missing brush degrades to black, a missing scalar to zero
	c, ok := svgtree.SolidColor(props[PropFill].Brush)
	require.True(t, ok)
	assert.Equal(t, svgtree.Black, c)
	assert.Zero(t, props[PropStrokeWidth].Scalar)
}

func TestParseStyleSoftFailures(t *testing.T) {
	props, err := ParseStyle("fill: nosuchcolor; stroke-width: abc; opacity: 0.5", NewDefs())
	require.NoError(t, err)
	_, hasFill := props[PropFill]
	assert.False(t, hasFill)
	_, hasWidth := props[PropStrokeWidth]
	assert.False(t, hasWidth)
	assert.Equal(t, 0.5, props[PropOpacity].Scalar)
}

func TestDefsTypedLookups(t *testing.T) {
	defs := NewDefs()
	defs.Register("t", svgtree.Translation{Tx: 1})
	defs.Register("s", 2.5)

	tr, ok := defs.Transform("t")
	require.True(t, ok)
	assert.Equal(t, svgtree.Translation{Tx: 1}, tr)

	// type mismatch is a miss, not a panic
	_, ok = defs.Brush("t")
	assert.False(t, ok)
	_, ok = defs.Scalar("missing")
	assert.False(t, ok)

	// last write wins on duplicate ids
	defs.Register("s", 9.0)
	f, _ := defs.Scalar("s")
	assert.Equal(t, 9.0, f)
}

func TestDefsBrushReturnsOwnedCopy(t *testing.T) {
	defs := NewDefs()
	defs.Register("g", &svgtree.LinearGradientBrush{
		Stops: []svgtree.GradientStop{{Color: svgtree.Black}},
	})
	b, ok := defs.Brush("g")
	require.True(t, ok)
	b.(*svgtree.LinearGradientBrush).Stops[0].Color = svgtree.Color{R: 9}

	again, _ := defs.Brush("g")
	assert.Equal(t, svgtree.Black, again.(*svgtree.LinearGradientBrush).Stops[0].Color)
}
