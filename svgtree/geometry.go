package svgtree

import "math"

// FillRule selects the winding rule used to fill a geometry.
type FillRule uint8

const (
	Nonzero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	switch f {
	case Nonzero:
		return "Nonzero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return "<unknown FillRule>"
	}
}

// Geometry is the outline of a drawing primitive, one of PathGeometry,
// RectGeometry, EllipseGeometry or LineGeometry. Each variant carries an
// optional local transform (nil when absent).
type Geometry interface {
	// LocalTransform returns the geometry's own transform, or nil.
	LocalTransform() Transform

	// Figures reduces the geometry to path figures in local space.
	Figures() Path

	geometry()
}

// PathGeometry is a free-form outline built from path figures.
type PathGeometry struct {
	Path      Path
	Rule      FillRule
	Transform Transform
}

func (g *PathGeometry) LocalTransform() Transform { return g.Transform }
func (g *PathGeometry) Figures() Path             { return g.Path }
func (g *PathGeometry) geometry()                 {}

// RectGeometry is an axis-aligned rectangle with optional rounded
// corners. RadiusX and RadiusY are independent: one may be set without
// the other being mirrored.
type RectGeometry struct {
	X, Y, Width, Height float64
	RadiusX, RadiusY    float64
	Transform           Transform
}

func (g *RectGeometry) LocalTransform() Transform { return g.Transform }
func (g *RectGeometry) geometry()                 {}

// EllipseGeometry is an axis-aligned ellipse; circles use equal radii.
type EllipseGeometry struct {
	Center           Point
	RadiusX, RadiusY float64
	Transform        Transform
}

func (g *EllipseGeometry) LocalTransform() Transform { return g.Transform }
func (g *EllipseGeometry) geometry()                 {}

// LineGeometry is a straight segment between two points.
type LineGeometry struct {
	P1, P2    Point
	Transform Transform
}

func (g *LineGeometry) LocalTransform() Transform { return g.Transform }
func (g *LineGeometry) geometry()                 {}

func (g *LineGeometry) Figures() Path {
	var p Path
	p.Start(g.P1)
	p.Line(g.P2)
	return p
}

// kappa is the cubic bezier control distance approximating a quarter
// circle of unit radius.
const kappa = 0.5522847498307933

func (g *RectGeometry) Figures() Path {
	minX, minY := g.X, g.Y
	maxX, maxY := g.X+g.Width, g.Y+g.Height
	rx, ry := g.RadiusX, g.RadiusY
	var p Path
	if rx <= 0 || ry <= 0 {
		p.Start(Point{minX, minY})
		p.Line(Point{maxX, minY})
		p.Line(Point{maxX, maxY})
		p.Line(Point{minX, maxY})
		p.Stop(true)
		return p
	}
	if w := maxX - minX; w < rx*2 {
		rx = w / 2
	}
	if h := maxY - minY; h < ry*2 {
		ry = h / 2
	}
	cx, cy := rx*kappa, ry*kappa
	p.Start(Point{minX + rx, minY})
	p.Line(Point{maxX - rx, minY})
	p.CubeBezier(Point{maxX - rx + cx, minY}, Point{maxX, minY + ry - cy}, Point{maxX, minY + ry})
	p.Line(Point{maxX, maxY - ry})
	p.CubeBezier(Point{maxX, maxY - ry + cy}, Point{maxX - rx + cx, maxY}, Point{maxX - rx, maxY})
	p.Line(Point{minX + rx, maxY})
	p.CubeBezier(Point{minX + rx - cx, maxY}, Point{minX, maxY - ry + cy}, Point{minX, maxY - ry})
	p.Line(Point{minX, minY + ry})
	p.CubeBezier(Point{minX, minY + ry - cy}, Point{minX + rx - cx, minY}, Point{minX + rx, minY})
	p.Stop(true)
	return p
}

func (g *EllipseGeometry) Figures() Path {
	cx, cy := g.Center.X, g.Center.Y
	rx, ry := g.RadiusX, g.RadiusY
	dx, dy := rx*kappa, ry*kappa
	var p Path
	p.Start(Point{cx + rx, cy})
	p.CubeBezier(Point{cx + rx, cy + dy}, Point{cx + dx, cy + ry}, Point{cx, cy + ry})
	p.CubeBezier(Point{cx - dx, cy + ry}, Point{cx - rx, cy + dy}, Point{cx - rx, cy})
	p.CubeBezier(Point{cx - rx, cy - dy}, Point{cx - dx, cy - ry}, Point{cx, cy - ry})
	p.CubeBezier(Point{cx + dx, cy - ry}, Point{cx + rx, cy - dy}, Point{cx + rx, cy})
	p.Stop(true)
	return p
}

func cloneGeometry(g Geometry) Geometry {
	switch g := g.(type) {
	case nil:
		return nil
	case *PathGeometry:
		c := *g
		c.Path = g.Path.Clone()
		c.Transform = cloneTransform(g.Transform)
		return &c
	case *RectGeometry:
		c := *g
		c.Transform = cloneTransform(g.Transform)
		return &c
	case *EllipseGeometry:
		c := *g
		c.Transform = cloneTransform(g.Transform)
		return &c
	case *LineGeometry:
		c := *g
		c.Transform = cloneTransform(g.Transform)
		return &c
	}
	return g
}

// Bounds is an axis-aligned box, such as a viewport or a path extent.
type Bounds struct {
	X, Y, W, H float64
}

// GeometryBounds computes the extent of the geometry's figures after
// applying its local transform. Control points bound the true curve, so
// the box may be slightly loose for beziers.
func GeometryBounds(g Geometry) Bounds {
	m := FlattenTransform(g.LocalTransform())
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p Point) {
		p = m.Apply(p)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for _, op := range g.Figures() {
		switch op := op.(type) {
		case MoveTo:
			grow(Point(op))
		case LineTo:
			grow(Point(op))
		case QuadTo:
			grow(op[0])
			grow(op[1])
		case CubicTo:
			grow(op[0])
			grow(op[1])
			grow(op[2])
		}
	}
	if math.IsInf(minX, 1) {
		return Bounds{}
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
