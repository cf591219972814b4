package svgtree

import "math"

// Color is a non-premultiplied RGBA value with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

var (
	Black       = Color{0, 0, 0, 0xff}
	Transparent = Color{}
)

// WithOpacity scales the alpha channel by the given opacity, clamped to
// [0,1]. An opacity of 1 or more returns the color unchanged.
func (c Color) WithOpacity(opacity float64) Color {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

// SpreadMethod is the gradient edge-extension policy beyond the
// defined stop range.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

func (s SpreadMethod) String() string {
	switch s {
	case PadSpread:
		return "Pad"
	case ReflectSpread:
		return "Reflect"
	case RepeatSpread:
		return "Repeat"
	default:
		return "<unknown SpreadMethod>"
	}
}

// MappingMode tells whether gradient coordinates are relative to the
// bounding box of the painted shape or absolute in user space.
type MappingMode uint8

const (
	BoundingBoxMapping MappingMode = iota
	AbsoluteMapping
)

func (m MappingMode) String() string {
	switch m {
	case BoundingBoxMapping:
		return "BoundingBox"
	case AbsoluteMapping:
		return "Absolute"
	default:
		return "<unknown MappingMode>"
	}
}

// GradientStop is a color at an offset in [0,1] along a gradient axis.
type GradientStop struct {
	Offset float64
	Color  Color
}

// Brush is a paint source: a SolidBrush, a LinearGradientBrush or a
// RadialGradientBrush.
type Brush interface {
	// Clone returns a deep, independently mutable copy of the brush.
	Clone() Brush

	// WithOpacity returns a copy whose alpha channels are scaled by the
	// given opacity; the receiver is left untouched. An opacity of 1 or
	// more, or a fully transparent solid, returns the brush unchanged.
	WithOpacity(opacity float64) Brush

	brush()
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color Color
}

func (b SolidBrush) Clone() Brush { return b }

func (b SolidBrush) WithOpacity(opacity float64) Brush {
	if opacity >= 1 || b.Color.A == 0 {
		return b
	}
	b.Color = b.Color.WithOpacity(opacity)
	return b
}

func (b SolidBrush) brush() {}

// NewSolidBrush builds a solid brush from 8-bit channels.
func NewSolidBrush(r, g, b, a uint8) SolidBrush {
	return SolidBrush{Color: Color{r, g, b, a}}
}

// LinearGradientBrush paints a gradient along the segment Start-End.
type LinearGradientBrush struct {
	Start, End Point
	Stops      []GradientStop
	Spread     SpreadMethod
	Mapping    MappingMode
	Transform  Transform
}

func (b *LinearGradientBrush) Clone() Brush {
	c := *b
	c.Stops = append([]GradientStop(nil), b.Stops...)
	c.Transform = cloneTransform(b.Transform)
	return &c
}

func (b *LinearGradientBrush) WithOpacity(opacity float64) Brush {
	if opacity >= 1 {
		return b
	}
	c := b.Clone().(*LinearGradientBrush)
	for i := range c.Stops {
		c.Stops[i].Color = c.Stops[i].Color.WithOpacity(opacity)
	}
	return c
}

func (b *LinearGradientBrush) brush() {}

// RadialGradientBrush paints a gradient radiating from Origin out to
// the ellipse centered at Center with radii RadiusX, RadiusY.
type RadialGradientBrush struct {
	Center, Origin   Point
	RadiusX, RadiusY float64
	Stops            []GradientStop
	Spread           SpreadMethod
	Mapping          MappingMode
	Transform        Transform
}

func (b *RadialGradientBrush) Clone() Brush {
	c := *b
	c.Stops = append([]GradientStop(nil), b.Stops...)
	c.Transform = cloneTransform(b.Transform)
	return &c
}

func (b *RadialGradientBrush) WithOpacity(opacity float64) Brush {
	if opacity >= 1 {
		return b
	}
	c := b.Clone().(*RadialGradientBrush)
	for i := range c.Stops {
		c.Stops[i].Color = c.Stops[i].Color.WithOpacity(opacity)
	}
	return c
}

func (b *RadialGradientBrush) brush() {}

// SolidColor extracts the resolved color of a solid brush. Gradient
// brushes have no single resolved color and report ok=false.
func SolidColor(b Brush) (Color, bool) {
	if s, ok := b.(SolidBrush); ok {
		return s.Color, true
	}
	return Color{}, false
}

func cloneBrush(b Brush) Brush {
	if b == nil {
		return nil
	}
	return b.Clone()
}
