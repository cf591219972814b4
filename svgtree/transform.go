package svgtree

import "math"

// Transform is a 2D affine transform, either a single primitive
// (translation, scaling, rotation, shear or a raw matrix) or an ordered
// composition of primitives (see TransformGroup).
//
// The distinction between a bare primitive and a group of one is
// observable: consumers may inspect the concrete type to mirror the
// structure of the source document.
type Transform interface {
	// Matrix flattens the transform into its affine matrix.
	Matrix() Matrix2D

	transform()
}

// Matrix2D is an affine matrix in SVG convention:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Matrix2D{A: 1, D: 1}

func (m Matrix2D) Matrix() Matrix2D { return m }

func (m Matrix2D) transform() {}

// Mult returns the product m x other: the resulting transform applies
// `other` first, then m.
func (m Matrix2D) Mult(other Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

// Apply transforms the point p.
func (m Matrix2D) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix2D) IsIdentity() bool { return m == Identity }

// Translation is a translation by (Tx, Ty).
type Translation struct {
	Tx, Ty float64
}

func (t Translation) Matrix() Matrix2D { return Matrix2D{A: 1, D: 1, E: t.Tx, F: t.Ty} }
func (t Translation) transform()       {}

// Scaling is a scaling by (Sx, Sy) about the origin.
type Scaling struct {
	Sx, Sy float64
}

func (s Scaling) Matrix() Matrix2D { return Matrix2D{A: s.Sx, D: s.Sy} }
func (s Scaling) transform()       {}

// Rotation is a rotation about the origin. The angle is in degrees,
// positive values rotating clockwise in SVG's y-down coordinate space.
type Rotation struct {
	Angle float64
}

func (r Rotation) Matrix() Matrix2D {
	rad := r.Angle * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Matrix2D{A: cos, B: sin, C: -sin, D: cos}
}
func (r Rotation) transform() {}

// SkewX is a shear along the x axis, angle in degrees.
type SkewX struct {
	Angle float64
}

func (s SkewX) Matrix() Matrix2D {
	return Matrix2D{A: 1, C: math.Tan(s.Angle * math.Pi / 180), D: 1}
}
func (s SkewX) transform() {}

// SkewY is a shear along the y axis, angle in degrees.
type SkewY struct {
	Angle float64
}

func (s SkewY) Matrix() Matrix2D {
	return Matrix2D{A: 1, B: math.Tan(s.Angle * math.Pi / 180), D: 1}
}
func (s SkewY) transform() {}

// TransformGroup is an ordered composition of transforms. The first
// child is applied first to points, matching the left-to-right
// semantics of an SVG transform list.
type TransformGroup struct {
	Children []Transform
}

func (g *TransformGroup) Matrix() Matrix2D {
	m := Identity
	for _, child := range g.Children {
		m = child.Matrix().Mult(m)
	}
	return m
}

func (g *TransformGroup) transform() {}

// AppendTransform returns a group ending with the extra transforms. The receiver
// may be nil; a non-group receiver becomes the first child. The result
// is always a group, even for a single element, so that composition
// stays visible to consumers.
func AppendTransform(base Transform, extra ...Transform) *TransformGroup {
	g := &TransformGroup{}
	switch t := base.(type) {
	case nil:
	case *TransformGroup:
		g.Children = append(g.Children, t.Children...)
	default:
		g.Children = append(g.Children, t)
	}
	g.Children = append(g.Children, extra...)
	return g
}

// FlattenTransform resolves a possibly-nil transform to its matrix.
func FlattenTransform(t Transform) Matrix2D {
	if t == nil {
		return Identity
	}
	return t.Matrix()
}

func cloneTransform(t Transform) Transform {
	if g, ok := t.(*TransformGroup); ok {
		children := make([]Transform, len(g.Children))
		for i, c := range g.Children {
			children[i] = cloneTransform(c)
		}
		return &TransformGroup{Children: children}
	}
	// primitives are values
	return t
}
