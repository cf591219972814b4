// Package svgraster renders parsed drawing trees into raster images,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gosvg/svg/svgparse"
	"github.com/gosvg/svg/svgtree"
)

// Renderer rasterizes one drawing tree into a destination image. It is
// not safe for concurrent use; each goroutine should own its instance.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instances
	dst    *image.RGBA
}

// NewRenderer returns a renderer targeting dst. If scanner is nil a
// rasterx.ScannerGV over dst is used.
func NewRenderer(dst *image.RGBA, scanner rasterx.Scanner) *Renderer {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, dst, b)
	}
	return &Renderer{
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
		dst:    dst,
	}
}

// RenderToImage parses the SVG stream and rasterizes it at its
// natural viewBox size.
func RenderToImage(svg io.Reader) (*image.RGBA, error) {
	tree, err := svgparse.ReadTree(svg)
	if err != nil {
		return nil, err
	}
	w, h := int(tree.ViewBox.W), int(tree.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = 512, 512
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	NewRenderer(img, nil).Render(tree)
	return img, nil
}

// Render draws the whole tree scaled to fit the destination image.
func (rd *Renderer) Render(t *svgtree.Tree) {
	b := rd.dst.Bounds()
	base := svgtree.FlattenTransform(t.FitTransform(0, 0, float64(b.Dx()), float64(b.Dy())))
	rd.node(t.Root, base)
}

func (rd *Renderer) node(n svgtree.Node, world svgtree.Matrix2D) {
	switch n := n.(type) {
	case *svgtree.Group:
		m := world.Mult(svgtree.FlattenTransform(n.Transform))
		for _, child := range n.Children {
			rd.node(child, m)
		}
	case *svgtree.Shape:
		rd.shape(n, world)
	case *svgtree.TextRun:
		rd.text(n, world)
	}
}

func (rd *Renderer) shape(s *svgtree.Shape, world svgtree.Matrix2D) {
	geom := s.Geometry
	if geom == nil {
		return
	}
	m := world.Mult(svgtree.FlattenTransform(geom.LocalTransform()))
	figures := geom.Figures()
	if len(figures) == 0 {
		return
	}

	if s.Fill != nil {
		rule := svgtree.Nonzero
		if pg, ok := geom.(*svgtree.PathGeometry); ok {
			rule = pg.Rule
		}
		rd.filler.SetWinding(rule == svgtree.Nonzero)
		tracePath(rd.filler, figures, m)
		setBrush(rd.filler.Scanner, s.Fill)
		rd.filler.Draw()
		rd.filler.Clear()
	}

	if s.Stroke != nil && s.Stroke.Brush != nil {
		pen := s.Stroke
		rd.dasher.SetStroke(
			floatToFixed(pen.Thickness), floatToFixed(pen.MiterLimit),
			capFuncs[pen.StartCap], capFuncs[pen.EndCap], rasterx.FlatGap,
			joinModes[pen.Join], pen.Dashes, pen.DashOffset,
		)
		tracePath(rd.dasher, figures, m)
		setBrush(rd.dasher.Scanner, pen.Brush)
		rd.dasher.Draw()
		rd.dasher.Clear()
	}
}

// text draws a glyph run with the face registered for its family. Only
// the translation part of the accumulated transform is honored.
func (rd *Renderer) text(run *svgtree.TextRun, world svgtree.Matrix2D) {
	col, ok := svgtree.SolidColor(run.Foreground)
	if !ok || col.A == 0 {
		return
	}
	m := world.Mult(svgtree.FlattenTransform(run.Transform))
	face, err := opentype.NewFace(svgparse.LookupFont(run.FontFamily), &opentype.FaceOptions{
		Size:    run.FontSize,
		DPI:     svgparse.DefaultDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return
	}
	defer face.Close()

	origin := m.Apply(run.Origin)
	d := font.Drawer{
		Dst:  rd.dst,
		Src:  image.NewUniform(toNRGBA(col)),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(origin.X), Y: floatToFixed(origin.Y)},
	}
	d.DrawString(runString(run))
}

func runString(run *svgtree.TextRun) string {
	rs := make([]rune, len(run.Glyphs))
	for i, g := range run.Glyphs {
		rs[i] = g.Rune
	}
	return string(rs)
}

// adder is the path sink shared by Filler and Dasher.
type adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

func tracePath(dst adder, p svgtree.Path, m svgtree.Matrix2D) {
	open := false
	for _, op := range p {
		switch op := op.Transform(m).(type) {
		case svgtree.MoveTo:
			if open {
				dst.Stop(false)
			}
			dst.Start(toFixedPoint(svgtree.Point(op)))
			open = true
		case svgtree.LineTo:
			dst.Line(toFixedPoint(svgtree.Point(op)))
		case svgtree.QuadTo:
			dst.QuadBezier(toFixedPoint(op[0]), toFixedPoint(op[1]))
		case svgtree.CubicTo:
			dst.CubeBezier(toFixedPoint(op[0]), toFixedPoint(op[1]), toFixedPoint(op[2]))
		case svgtree.Close:
			dst.Stop(true)
			open = false
		}
	}
	if open {
		dst.Stop(false)
	}
}

// setBrush resolves a brush into a scanner color source. Gradient
// brushes with bounding box mapping read the current path extent, so
// the path must be traced before calling.
func setBrush(scanner rasterx.Scanner, b svgtree.Brush) {
	switch b := b.(type) {
	case svgtree.SolidBrush:
		scanner.SetColor(toNRGBA(b.Color))
	case *svgtree.LinearGradientBrush:
		g := rasterx.Gradient{
			Points: [5]float64{b.Start.X, b.Start.Y, b.End.X, b.End.Y, 0},
			Stops:  gradStops(b.Stops),
			Matrix: toRasterxMatrix(svgtree.FlattenTransform(b.Transform)),
			Spread: spreadMethods[b.Spread],
		}
		setGradient(scanner, &g, b.Mapping)
	case *svgtree.RadialGradientBrush:
		g := rasterx.Gradient{
			Points:   [5]float64{b.Center.X, b.Center.Y, b.Origin.X, b.Origin.Y, b.RadiusX},
			Stops:    gradStops(b.Stops),
			Matrix:   toRasterxMatrix(svgtree.FlattenTransform(b.Transform)),
			Spread:   spreadMethods[b.Spread],
			IsRadial: true,
		}
		setGradient(scanner, &g, b.Mapping)
	}
}

func setGradient(scanner rasterx.Scanner, g *rasterx.Gradient, mapping svgtree.MappingMode) {
	if mapping == svgtree.BoundingBoxMapping {
		g.Units = rasterx.ObjectBoundingBox
		ext := scanner.GetPathExtent()
		mnx, mny := float64(ext.Min.X)/64, float64(ext.Min.Y)/64
		mxx, mxy := float64(ext.Max.X)/64, float64(ext.Max.Y)/64
		g.Bounds.X, g.Bounds.Y = mnx, mny
		g.Bounds.W, g.Bounds.H = mxx-mnx, mxy-mny
	} else {
		g.Units = rasterx.UserSpaceOnUse
	}
	scanner.SetColor(g.GetColorFunction(1))
}

func gradStops(stops []svgtree.GradientStop) []rasterx.GradStop {
	out := make([]rasterx.GradStop, len(stops))
	for i, s := range stops {
		out[i] = rasterx.GradStop{StopColor: toNRGBA(s.Color), Offset: s.Offset, Opacity: 1}
	}
	return out
}

func toRasterxMatrix(m svgtree.Matrix2D) rasterx.Matrix2D {
	return rasterx.Matrix2D{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

func toNRGBA(c svgtree.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toFixedPoint(p svgtree.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: floatToFixed(p.X), Y: floatToFixed(p.Y)}
}

func floatToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

var (
	joinModes = [...]rasterx.JoinMode{
		svgtree.MiterJoin: rasterx.Miter,
		svgtree.RoundJoin: rasterx.Round,
		svgtree.BevelJoin: rasterx.Bevel,
	}

	capFuncs = [...]rasterx.CapFunc{
		svgtree.FlatCap:   rasterx.ButtCap,
		svgtree.RoundCap:  rasterx.RoundCap,
		svgtree.SquareCap: rasterx.SquareCap,
	}

	spreadMethods = [...]rasterx.SpreadMethod{
		svgtree.PadSpread:     rasterx.PadSpread,
		svgtree.ReflectSpread: rasterx.ReflectSpread,
		svgtree.RepeatSpread:  rasterx.RepeatSpread,
	}
)
