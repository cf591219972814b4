// Package svgtree defines an immutable vector-drawing tree: groups,
// shapes and text runs bound to brushes, pens and affine transforms.
// Trees are produced by the svgparse package and consumed by painting
// drivers such as svgraster.
package svgtree

// Node is one element of the drawing tree: a *Group, a *Shape or a
// *TextRun. A tree is frozen once returned by a parse; the only
// sanctioned mutation path is Tree.Clone followed by the replace
// operations in edit.go.
type Node interface {
	cloneNode() Node

	node()
}

// Group owns an ordered sequence of child nodes, optionally bound to a
// common transform. Children are exclusively owned: nodes are never
// shared between groups.
type Group struct {
	Children  []Node
	Transform Transform
}

func (g *Group) cloneNode() Node {
	c := &Group{Transform: cloneTransform(g.Transform)}
	if g.Children != nil {
		c.Children = make([]Node, len(g.Children))
		for i, child := range g.Children {
			c.Children[i] = child.cloneNode()
		}
	}
	return c
}

func (g *Group) node() {}

// Shape binds a geometry to its paint: an optional fill brush and an
// optional stroke pen. A nil Fill or Stroke disables that operation.
type Shape struct {
	Geometry Geometry
	Fill     Brush
	Stroke   *Pen
}

func (s *Shape) cloneNode() Node {
	return &Shape{
		Geometry: cloneGeometry(s.Geometry),
		Fill:     cloneBrush(s.Fill),
		Stroke:   s.Stroke.Clone(),
	}
}

func (s *Shape) node() {}

// PositionedGlyph is one glyph of a text run, positioned relative to
// the run origin.
type PositionedGlyph struct {
	Rune    rune
	Index   uint16  // glyph index in the resolved face
	X       float64 // offset from the run origin along the baseline
	Advance float64
}

// TextRun is a single-baseline glyph run anchored at Origin.
type TextRun struct {
	Origin     Point
	Glyphs     []PositionedGlyph
	FontFamily string
	FontSize   float64
	Bold       bool
	Italic     bool
	Foreground Brush
	Transform  Transform
}

// Width returns the total advance of the run.
func (t *TextRun) Width() float64 {
	var w float64
	for _, g := range t.Glyphs {
		w += g.Advance
	}
	return w
}

func (t *TextRun) cloneNode() Node {
	c := *t
	c.Glyphs = append([]PositionedGlyph(nil), t.Glyphs...)
	c.Foreground = cloneBrush(t.Foreground)
	c.Transform = cloneTransform(t.Transform)
	return &c
}

func (t *TextRun) node() {}

// Tree is a parsed drawing: the root group plus document metadata.
type Tree struct {
	ViewBox      Bounds
	Titles       []string // title elements collect here
	Descriptions []string // desc elements collect here
	Root         *Group
}

// Clone returns a deep copy sharing nothing with the receiver. Editing
// operations work on clones so the original stays recoverable.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		ViewBox:      t.ViewBox,
		Titles:       append([]string(nil), t.Titles...),
		Descriptions: append([]string(nil), t.Descriptions...),
	}
	if t.Root != nil {
		c.Root = t.Root.cloneNode().(*Group)
	}
	return c
}

// FitTransform returns the transform mapping the tree's viewBox onto
// the rectangle (x, y, w, h).
func (t *Tree) FitTransform(x, y, w, h float64) Transform {
	if t.ViewBox.W == 0 || t.ViewBox.H == 0 {
		return Translation{Tx: x, Ty: y}
	}
	return &TransformGroup{Children: []Transform{
		Translation{Tx: -t.ViewBox.X, Ty: -t.ViewBox.Y},
		Scaling{Sx: w / t.ViewBox.W, Sy: h / t.ViewBox.H},
		Translation{Tx: x, Ty: y},
	}}
}
