package svgtree

// CapMode defines how to draw caps on the ends of strokes.
type CapMode uint8

const (
	FlatCap CapMode = iota
	RoundCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case FlatCap:
		return "FlatCap"
	case RoundCap:
		return "RoundCap"
	case SquareCap:
		return "SquareCap"
	default:
		return "<unknown CapMode>"
	}
}

// JoinMode determines how stroke segments bridge the gap at a join.
type JoinMode uint8

const (
	MiterJoin JoinMode = iota
	RoundJoin
	BevelJoin
)

func (j JoinMode) String() string {
	switch j {
	case MiterJoin:
		return "MiterJoin"
	case RoundJoin:
		return "RoundJoin"
	case BevelJoin:
		return "BevelJoin"
	default:
		return "<unknown JoinMode>"
	}
}

// Pen is a stroke style: a brush plus the line geometry parameters.
type Pen struct {
	Brush      Brush
	Thickness  float64 // > 0, 1 when unspecified
	StartCap   CapMode
	EndCap     CapMode
	Join       JoinMode
	MiterLimit float64 // >= 1
	Dashes     []float64
	DashOffset float64
}

// NewPen returns a pen with the standard stroke defaults.
func NewPen(brush Brush) *Pen {
	return &Pen{
		Brush:      brush,
		Thickness:  1,
		MiterLimit: 4,
	}
}

// Clone returns a deep copy of the pen.
func (p *Pen) Clone() *Pen {
	if p == nil {
		return nil
	}
	c := *p
	c.Brush = cloneBrush(p.Brush)
	c.Dashes = append([]float64(nil), p.Dashes...)
	return &c
}
