package svgtree

import (
	"fmt"
	"strings"
)

// Point is a position in user space.
type Point struct {
	X, Y float64
}

// PathOp is one drawing command inside a path figure.
type PathOp interface {
	// Transform returns the command with the matrix applied to its points.
	Transform(m Matrix2D) PathOp
}

type MoveTo Point

type LineTo Point

type QuadTo [2]Point

type CubicTo [3]Point

type Close struct{}

func (op MoveTo) Transform(m Matrix2D) PathOp { return MoveTo(m.Apply(Point(op))) }

func (op LineTo) Transform(m Matrix2D) PathOp { return LineTo(m.Apply(Point(op))) }

func (op QuadTo) Transform(m Matrix2D) PathOp {
	return QuadTo{m.Apply(op[0]), m.Apply(op[1])}
}

func (op CubicTo) Transform(m Matrix2D) PathOp {
	return CubicTo{m.Apply(op[0]), m.Apply(op[1]), m.Apply(op[2])}
}

func (op Close) Transform(Matrix2D) PathOp { return op }

// Path is a sequence of figures described by basic drawing commands.
// Higher-level shapes may be reduced to a path.
type Path []PathOp

// Start starts a new figure at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current figure.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current figure.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current figure.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop closes the current figure when closeLoop is true.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Clear zeros the path slice.
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path{}, p...)
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}
