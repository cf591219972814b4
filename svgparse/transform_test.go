package svgparse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosvg/svg/svgtree"
)

func TestParseTransformIdentity(t *testing.T) {
	for _, input := range []string{"", "   ", "none", "translate(1,2) none scale(3)"} {
		got, err := ParseTransform(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, svgtree.Identity, got, "input %q", input)
	}
}

func TestParseTransformSingle(t *testing.T) {
	got, err := ParseTransform("translate(10,20)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.Translation{Tx: 10, Ty: 20}, got)

	got, err = ParseTransform("translate(7)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.Translation{Tx: 7}, got)

	got, err = ParseTransform("scale(2)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.Scaling{Sx: 2, Sy: 2}, got)

	got, err = ParseTransform("scale(2, 4)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.Scaling{Sx: 2, Sy: 4}, got)

	got, err = ParseTransform("skewX(30)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.SkewX{Angle: 30}, got)

	got, err = ParseTransform("matrix(1,2,3,4,5,6)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.Matrix2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}, got)
}

func TestParseTransformRotation(t *testing.T) {
	const halfSqrt2 = math.Sqrt2 / 2

	got, err := ParseTransform("rotate(45)")
	require.NoError(t, err)
	m := got.Matrix()
	assert.InDelta(t, halfSqrt2, m.A, 1e-12)
	assert.InDelta(t, halfSqrt2, m.B, 1e-12)
	assert.InDelta(t, -halfSqrt2, m.C, 1e-12)

	got, err = ParseTransform("rotate(-45)")
	require.NoError(t, err)
	m = got.Matrix()
	assert.InDelta(t, -halfSqrt2, m.B, 1e-12)
	assert.InDelta(t, halfSqrt2, m.C, 1e-12)
}

func TestParseTransformComposition(t *testing.T) {
	got, err := ParseTransform("translate(10,20) scale(2,3)")
	require.NoError(t, err)

	group, ok := got.(*svgtree.TransformGroup)
	require.True(t, ok, "two commands must yield a group")
	require.Len(t, group.Children, 2)
	assert.Equal(t, svgtree.Translation{Tx: 10, Ty: 20}, group.Children[0])
	assert.Equal(t, svgtree.Scaling{Sx: 2, Sy: 3}, group.Children[1])

	assert.Equal(t, svgtree.Matrix2D{A: 2, D: 3, E: 20, F: 60}, group.Matrix())
}

func TestParseTransformErrors(t *testing.T) {
	for _, input := range []string{
		"invalid(10,20)",
		"translate(10,invalid)",
		"rotate(abc)",
	} {
		_, err := ParseTransform(input)
		assert.ErrorIs(t, err, ErrFormat, "input %q", input)
	}
}

func TestParseTransformMatrixArityQuirk(t *testing.T) {
	// a matrix with the wrong parameter count is skipped, not an error
	got, err := ParseTransform("matrix(1,2,3)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.Identity, got)

	got, err = ParseTransform("matrix(1,2,3) translate(5,6)")
	require.NoError(t, err)
	assert.Equal(t, svgtree.Translation{Tx: 5, Ty: 6}, got)
}

func TestReadFraction(t *testing.T) {
	f, err := readFraction("50%")
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	f, err = readFraction("0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, f)
}
