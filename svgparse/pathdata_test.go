package svgparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosvg/svg/svgtree"
)

func TestParsePathDataBasic(t *testing.T) {
	p, err := ParsePathData("M 10 20 L 30 40 Z")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, svgtree.MoveTo(svgtree.Point{X: 10, Y: 20}), p[0])
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 30, Y: 40}), p[1])
	assert.Equal(t, svgtree.Close{}, p[2])
}

func TestParsePathDataRelative(t *testing.T) {
	p, err := ParsePathData("m 10,10 l 5,0 l 0,5")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 15, Y: 10}), p[1])
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 15, Y: 15}), p[2])
}

func TestParsePathDataImplicitLineTo(t *testing.T) {
	// extra moveto pairs continue as linetos
	p, err := ParsePathData("M 0 0 10 0 10 10")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.IsType(t, svgtree.MoveTo{}, p[0])
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 10, Y: 0}), p[1])
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 10, Y: 10}), p[2])
}

func TestParsePathDataHorizontalVertical(t *testing.T) {
	p, err := ParsePathData("M 1 2 H 10 V 20 h -1 v -2")
	require.NoError(t, err)
	require.Len(t, p, 5)
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 10, Y: 2}), p[1])
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 10, Y: 20}), p[2])
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 9, Y: 20}), p[3])
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 9, Y: 18}), p[4])
}

func TestParsePathDataCurves(t *testing.T) {
	p, err := ParsePathData("M 0 0 C 1 1 2 1 3 0 Q 4 -1 5 0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, svgtree.CubicTo{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 0}}, p[1])
	assert.Equal(t, svgtree.QuadTo{{X: 4, Y: -1}, {X: 5, Y: 0}}, p[2])
}

func TestParsePathDataSmoothCubic(t *testing.T) {
	p, err := ParsePathData("M 0 0 C 1 1 2 1 3 0 S 5 -1 6 0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	// the first control point reflects the previous one about the
	// current point: 2*(3,0) - (2,1) = (4,-1)
	assert.Equal(t, svgtree.CubicTo{{X: 4, Y: -1}, {X: 5, Y: -1}, {X: 6, Y: 0}}, p[2])
}

func TestParsePathDataSmoothQuad(t *testing.T) {
	p, err := ParsePathData("M 0 0 Q 1 2 2 0 T 4 0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	// reflected control: 2*(2,0) - (1,2) = (3,-2)
	assert.Equal(t, svgtree.QuadTo{{X: 3, Y: -2}, {X: 4, Y: 0}}, p[2])
}

func TestParsePathDataArc(t *testing.T) {
	p, err := ParsePathData("M 0 0 A 5 5 0 0 1 10 0")
	require.NoError(t, err)
	require.Greater(t, len(p), 1)
	// arcs become cubic splines ending exactly on the end point
	last, ok := p[len(p)-1].(svgtree.CubicTo)
	require.True(t, ok)
	assert.InDelta(t, 10, last[2].X, 1e-9)
	assert.InDelta(t, 0, last[2].Y, 1e-9)
	for _, op := range p[1:] {
		assert.IsType(t, svgtree.CubicTo{}, op)
	}
}

func TestParsePathDataDegenerateArc(t *testing.T) {
	// zero radius collapses to a straight line
	p, err := ParsePathData("M 0 0 A 0 5 0 0 1 10 0")
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 10, Y: 0}), p[1])
}

func TestParsePathDataCloseResetsCurrentPoint(t *testing.T) {
	p, err := ParsePathData("M 1 1 L 5 5 Z l 2 0")
	require.NoError(t, err)
	require.Len(t, p, 4)
	// after Z the current point is the figure start
	assert.Equal(t, svgtree.LineTo(svgtree.Point{X: 3, Y: 1}), p[3])
}

func TestParsePathDataErrors(t *testing.T) {
	_, err := ParsePathData("M 0 0 X 3 4")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ParsePathData("M 0 0 L 1")
	assert.ErrorIs(t, err, ErrFormat)
}
