package svgparse

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosvg/svg/svgtree"
)

// Option configures a parse pass.
type Option func(*context)

// WithErrorMode sets how the parser reacts to unsupported elements and
// malformed shape data. The default is IgnoreErrorMode.
func WithErrorMode(m ErrorMode) Option {
	return func(c *context) { c.errorMode = m }
}

// WithDPI sets the pixels-per-inch resolution used for text metrics.
// The default is DefaultDPI.
func WithDPI(dpi float64) Option {
	return func(c *context) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// context carries the per-parse state: one registry per document,
// nothing shared across parses.
type context struct {
	defs      *Defs
	errorMode ErrorMode
	dpi       float64
	tree      *svgtree.Tree
}

// inherited is the group state flowing down the element tree. It is
// copied at each group boundary, so descendants never see the
// mutations of a sibling subtree. Nil pointers mean "not set by any
// ancestor".
type inherited struct {
	Fill        *string
	Stroke      *string
	StrokeWidth *float64
	FillRule    *string
	Opacity     float64 // composed multiplicatively down the chain
}

// ReadTree parses an SVG document from r. A nil or empty stream fails
// with ErrEmptyInput, a non-svg root with ErrInvalidDocument.
func ReadTree(r io.Reader, opts ...Option) (*svgtree.Tree, error) {
	if r == nil {
		return nil, ErrEmptyInput
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	root, err := decodeDocument(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ParseDocument(root, opts...)
}

// ReadTreeFile parses the SVG document stored at path.
func ReadTreeFile(path string, opts ...Option) (*svgtree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTree(f, opts...)
}

// ParseDocument converts an already decoded element tree into a
// drawing tree. The root element must be svg.
func ParseDocument(root *Element, opts ...Option) (*svgtree.Tree, error) {
	if root == nil || root.Name != "svg" {
		return nil, ErrInvalidDocument
	}
	c := &context{
		defs: NewDefs(),
		dpi:  DefaultDPI,
		tree: &svgtree.Tree{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tree.ViewBox = documentViewBox(root)

	group, err := c.parseGroup(root, inherited{Opacity: 1})
	if err != nil {
		return nil, err
	}
	c.tree.Root = group
	return c.tree, nil
}

// documentViewBox prefers the viewBox attribute and falls back to the
// width and height attributes.
func documentViewBox(root *Element) svgtree.Bounds {
	if vb, ok := root.LookupAttr("viewBox"); ok {
		if vals, err := parseNumberList(vb); err == nil && len(vals) == 4 {
			return svgtree.Bounds{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}
		}
	}
	return svgtree.Bounds{
		W: lengthAttr(root, "width", 0),
		H: lengthAttr(root, "height", 0),
	}
}

// parseGroup walks one group level. The inherited state is updated
// from the attributes present directly on this element, then handed by
// value to every child.
func (c *context) parseGroup(e *Element, inh inherited) (*svgtree.Group, error) {
	if v, ok := e.LookupAttr("fill"); ok {
		inh.Fill = &v
	}
	if v, ok := e.LookupAttr("stroke"); ok {
		inh.Stroke = &v
	}
	if v, ok := e.LookupAttr("stroke-width"); ok {
		if w, err := parseBasicFloat(v); err == nil {
			inh.StrokeWidth = &w
		}
	}
	if v, ok := e.LookupAttr("fill-rule"); ok {
		inh.FillRule = &v
	}
	if v, ok := e.LookupAttr("opacity"); ok {
		if op, err := readFraction(v); err == nil {
			inh.Opacity *= clampUnit(op)
		}
	}

	group := &svgtree.Group{Transform: svgtree.Transform(svgtree.Identity)}
	if ts, ok := e.LookupAttr("transform"); ok && ts != "" {
		tf, err := ParseTransform(ts)
		if err != nil {
			return nil, err
		}
		group.Transform = tf
	}

	for _, child := range e.Children {
		node, err := c.parseNode(child, inh)
		if err != nil {
			return nil, err
		}
		if node != nil {
			group.Children = append(group.Children, node)
		}
	}
	return group, nil
}

func (c *context) parseNode(e *Element, inh inherited) (svgtree.Node, error) {
	switch e.Name {
	case "g", "a":
		return c.parseGroup(e, inh)
	case "defs":
		return nil, c.registerDefs(e)
	case "linearGradient", "radialGradient":
		return nil, c.registerGradient(e)
	case "title":
		if t := strings.TrimSpace(e.Text); t != "" {
			c.tree.Titles = append(c.tree.Titles, t)
		}
		return nil, nil
	case "desc":
		if t := strings.TrimSpace(e.Text); t != "" {
			c.tree.Descriptions = append(c.tree.Descriptions, t)
		}
		return nil, nil
	case "text":
		return c.textNode(e, inh)
	}
	if _, ok := geometryFuncs[e.Name]; ok {
		return c.shapeNode(e, inh)
	}
	return nil, c.handleUnsupported(e.Name)
}

// registerDefs stores the direct children of a defs block in the
// registry under their id attribute. Children without an id are
// unreachable and skipped.
func (c *context) registerDefs(defs *Element) error {
	for _, child := range defs.Children {
		id, ok := child.LookupAttr("id")
		if !ok || id == "" {
			continue
		}
		switch child.Name {
		case "linearGradient":
			g, err := parseLinearGradient(child, c.defs)
			if err != nil {
				return err
			}
			c.defs.Register(id, g)
		case "radialGradient":
			g, err := parseRadialGradient(child, c.defs)
			if err != nil {
				return err
			}
			c.defs.Register(id, g)
		default:
			if _, isShape := geometryFuncs[child.Name]; isShape {
				shape, err := c.buildShape(child, inherited{Opacity: 1})
				if err != nil {
					return err
				}
				if shape != nil {
					c.defs.Register(id, shape)
				}
				continue
			}
			if err := c.handleUnsupported(child.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// registerGradient handles gradients declared outside a defs block.
// They emit no drawing node but stay resolvable through url(#id).
func (c *context) registerGradient(e *Element) error {
	id, ok := e.LookupAttr("id")
	if !ok || id == "" {
		return nil
	}
	switch e.Name {
	case "linearGradient":
		g, err := parseLinearGradient(e, c.defs)
		if err != nil {
			return err
		}
		c.defs.Register(id, g)
	case "radialGradient":
		g, err := parseRadialGradient(e, c.defs)
		if err != nil {
			return err
		}
		c.defs.Register(id, g)
	}
	return nil
}

// shapeNode builds a drawing node for a shape element, degrading to a
// skip in the lenient error modes.
func (c *context) shapeNode(e *Element, inh inherited) (svgtree.Node, error) {
	shape, err := c.buildShape(e, inh)
	if err != nil {
		if c.errorMode == StrictErrorMode {
			return nil, err
		}
		if c.errorMode == WarnErrorMode {
			logger().Warn("skipping malformed element", "tag", e.Name, "err", err)
		}
		return nil, nil
	}
	if shape == nil {
		return nil, nil
	}
	return shape, nil
}

// elementProps resolves the cascade for one element: presentation
// attributes first, then the style attribute, so style values win.
func (c *context) elementProps(e *Element) (PropertyMap, error) {
	props, err := parseProperties(e.Attrs, c.defs)
	if err != nil {
		return nil, err
	}
	if styleText, ok := e.LookupAttr("style"); ok && styleText != "" {
		styled, err := ParseStyle(styleText, c.defs)
		if err != nil {
			return nil, err
		}
		for k, v := range styled {
			props[k] = v
		}
	}
	return props, nil
}

// buildShape runs the full converter sequence: inherited baseline,
// cascade, transform, geometry.
func (c *context) buildShape(e *Element, inh inherited) (*svgtree.Shape, error) {
	geom, err := geometryFuncs[e.Name](e)
	if err != nil || geom == nil {
		return nil, err
	}

	props, err := c.elementProps(e)
	if err != nil {
		return nil, err
	}

	// opacities compose multiplicatively with the inherited chain
	opacity := inh.Opacity
	if v, ok := props[PropOpacity]; ok {
		opacity *= clampUnit(v.Scalar)
	}
	fillOpacity := opacity
	if v, ok := props[PropFillOpacity]; ok {
		fillOpacity *= clampUnit(v.Scalar)
	}
	strokeOpacity := opacity
	if v, ok := props[PropStrokeOpacity]; ok {
		strokeOpacity *= clampUnit(v.Scalar)
	}

	shape := &svgtree.Shape{Geometry: geom}

	// lines are stroke-only, fill resolution is skipped entirely
	if e.Name != "line" {
		fill, err := c.resolveBrush(props[PropFill], inh.Fill, svgtree.SolidBrush{Color: svgtree.Black})
		if err != nil {
			return nil, err
		}
		// a fully transparent fill stays transparent whatever the
		// opacity properties say
		if col, isSolid := svgtree.SolidColor(fill); !isSolid || col.A != 0 {
			fill = fill.WithOpacity(fillOpacity)
		}
		shape.Fill = fill
	}

	stroke, err := c.resolveBrush(props[PropStroke], inh.Stroke, nil)
	if err != nil {
		return nil, err
	}
	if stroke != nil {
		if col, isSolid := svgtree.SolidColor(stroke); !isSolid || col.A != 0 {
			pen := svgtree.NewPen(stroke.WithOpacity(strokeOpacity))
			if v, ok := props[PropStrokeWidth]; ok {
				pen.Thickness = v.Scalar
			} else if inh.StrokeWidth != nil {
				pen.Thickness = *inh.StrokeWidth
			}
			if v, ok := props[PropLineCap]; ok {
				pen.StartCap, pen.EndCap = v.Cap, v.Cap
			}
			if v, ok := props[PropLineJoin]; ok {
				pen.Join = v.Join
			}
			if v, ok := props[PropMiterLimit]; ok {
				pen.MiterLimit = v.Scalar
			}
			if v, ok := props[PropDashArray]; ok {
				pen.Dashes = v.Dashes
			}
			if v, ok := props[PropDashOffset]; ok {
				pen.DashOffset = v.Scalar
			}
			shape.Stroke = pen
		}
	}

	if pg, ok := geom.(*svgtree.PathGeometry); ok {
		pg.Rule = c.resolveFillRule(props, inh)
	}

	c.applyShapeTransform(shape, props)
	return shape, nil
}

// resolveBrush picks the cascade winner for a paint: the element's own
// property if set, else the inherited raw value, else the fallback.
func (c *context) resolveBrush(own PropertyValue, inherited *string, fallback svgtree.Brush) (svgtree.Brush, error) {
	if own.Brush != nil {
		return own.Brush, nil
	}
	if inherited != nil {
		return c.paintValue(*inherited)
	}
	return fallback, nil
}

// paintValue parses a raw paint string, resolving url(#id) references
// against the registry with the documented black fallback.
func (c *context) paintValue(v string) (svgtree.Brush, error) {
	if id, ok := urlRef(v); ok {
		if b, found := c.defs.Brush(id); found {
			return b, nil
		}
		logger().Warn("paint reference not found", "id", id)
		return svgtree.SolidBrush{Color: svgtree.Black}, nil
	}
	b, err := ParseBrush(v)
	if err != nil {
		return nil, fmt.Errorf("paint value %q: %w", v, err)
	}
	return b, nil
}

func (c *context) resolveFillRule(props PropertyMap, inh inherited) svgtree.FillRule {
	if v, ok := props[PropFillRule]; ok {
		return v.Rule
	}
	if inh.FillRule != nil && strings.EqualFold(strings.TrimSpace(*inh.FillRule), "evenodd") {
		return svgtree.EvenOdd
	}
	return svgtree.Nonzero
}

// applyShapeTransform attaches the element transform to the geometry
// and, when the fill is a gradient, appends it to the gradient's own
// transform so the gradient follows the shape it paints.
func (c *context) applyShapeTransform(shape *svgtree.Shape, props PropertyMap) {
	v, ok := props[PropTransform]
	if !ok || v.Transform == nil {
		return
	}
	tf := v.Transform

	switch g := shape.Geometry.(type) {
	case *svgtree.PathGeometry:
		g.Transform = tf
	case *svgtree.RectGeometry:
		g.Transform = tf
	case *svgtree.EllipseGeometry:
		g.Transform = tf
	case *svgtree.LineGeometry:
		g.Transform = tf
	}

	switch b := shape.Fill.(type) {
	case *svgtree.LinearGradientBrush:
		b.Transform = svgtree.AppendTransform(b.Transform, tf)
	case *svgtree.RadialGradientBrush:
		b.Transform = svgtree.AppendTransform(b.Transform, tf)
	}
	if shape.Stroke != nil {
		switch b := shape.Stroke.Brush.(type) {
		case *svgtree.LinearGradientBrush:
			b.Transform = svgtree.AppendTransform(b.Transform, tf)
		case *svgtree.RadialGradientBrush:
			b.Transform = svgtree.AppendTransform(b.Transform, tf)
		}
	}
}

// textNode lays out a text element and resolves its foreground brush
// through the same cascade as shape fills.
func (c *context) textNode(e *Element, inh inherited) (svgtree.Node, error) {
	run, err := parseText(e, c.dpi)
	if err != nil {
		if c.errorMode == StrictErrorMode {
			return nil, err
		}
		if c.errorMode == WarnErrorMode {
			logger().Warn("skipping text element", "err", err)
		}
		return nil, nil
	}
	if run == nil {
		return nil, nil
	}

	props, err := c.elementProps(e)
	if err != nil {
		return nil, err
	}
	opacity := inh.Opacity
	if v, ok := props[PropOpacity]; ok {
		opacity *= clampUnit(v.Scalar)
	}
	if v, ok := props[PropFillOpacity]; ok {
		opacity *= clampUnit(v.Scalar)
	}
	fg, err := c.resolveBrush(props[PropFill], inh.Fill, svgtree.SolidBrush{Color: svgtree.Black})
	if err != nil {
		return nil, err
	}
	if col, isSolid := svgtree.SolidColor(fg); !isSolid || col.A != 0 {
		fg = fg.WithOpacity(opacity)
	}
	run.Foreground = fg

	run.Transform = svgtree.Transform(svgtree.Identity)
	if v, ok := props[PropTransform]; ok && v.Transform != nil {
		run.Transform = v.Transform
	}
	return run, nil
}
