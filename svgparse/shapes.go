package svgparse

import (
	"fmt"

	"github.com/gosvg/svg/svgtree"
)

// geometryFuncs maps element names to their geometry builders. Brushes,
// pens and transforms are resolved by the tree walker; builders only
// read the geometry attributes.
var geometryFuncs = map[string]func(e *Element) (svgtree.Geometry, error){
	"rect":     rectGeometry,
	"circle":   circleGeometry,
	"ellipse":  ellipseGeometry,
	"line":     lineGeometry,
	"polyline": polylineGeometry,
	"polygon":  polygonGeometry,
	"path":     pathGeometry,
}

// lengthAttr reads a numeric attribute, using def when the attribute
// is absent or does not parse. Geometry typos degrade to the default
// instead of aborting the document.
func lengthAttr(e *Element, name string, def float64) float64 {
	v, ok := e.LookupAttr(name)
	if !ok || v == "" {
		return def
	}
	f, err := parseBasicFloat(v)
	if err != nil {
		logger().Debug("skipping malformed attribute", "name", name, "value", v)
		return def
	}
	return f
}

func rectGeometry(e *Element) (svgtree.Geometry, error) {
	g := &svgtree.RectGeometry{
		X:      lengthAttr(e, "x", 0),
		Y:      lengthAttr(e, "y", 0),
		Width:  max(lengthAttr(e, "width", 0), 0),
		Height: max(lengthAttr(e, "height", 0), 0),
		// corner radii are independent, rx does not imply ry
		RadiusX: lengthAttr(e, "rx", 0),
		RadiusY: lengthAttr(e, "ry", 0),
	}
	if g.Width == 0 || g.Height == 0 {
		return nil, nil // zero area, nothing to draw
	}
	return g, nil
}

func circleGeometry(e *Element) (svgtree.Geometry, error) {
	r := lengthAttr(e, "r", 0)
	if r <= 0 {
		return nil, nil
	}
	return &svgtree.EllipseGeometry{
		Center:  svgtree.Point{X: lengthAttr(e, "cx", 0), Y: lengthAttr(e, "cy", 0)},
		RadiusX: r, RadiusY: r,
	}, nil
}

func ellipseGeometry(e *Element) (svgtree.Geometry, error) {
	rx := lengthAttr(e, "rx", 0)
	ry := lengthAttr(e, "ry", 0)
	if rx <= 0 || ry <= 0 {
		return nil, nil
	}
	return &svgtree.EllipseGeometry{
		Center:  svgtree.Point{X: lengthAttr(e, "cx", 0), Y: lengthAttr(e, "cy", 0)},
		RadiusX: rx, RadiusY: ry,
	}, nil
}

func lineGeometry(e *Element) (svgtree.Geometry, error) {
	return &svgtree.LineGeometry{
		P1: svgtree.Point{X: lengthAttr(e, "x1", 0), Y: lengthAttr(e, "y1", 0)},
		P2: svgtree.Point{X: lengthAttr(e, "x2", 0), Y: lengthAttr(e, "y2", 0)},
	}, nil
}

// pointsAttr parses the points attribute shared by polyline and
// polygon. An odd coordinate count is malformed.
func pointsAttr(e *Element) ([]svgtree.Point, error) {
	v, _ := e.LookupAttr("points")
	coords, err := parseNumberList(v)
	if err != nil {
		return nil, err
	}
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinates in points attribute", ErrFormat)
	}
	pts := make([]svgtree.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		pts = append(pts, svgtree.Point{X: coords[i], Y: coords[i+1]})
	}
	return pts, nil
}

func polylineGeometry(e *Element) (svgtree.Geometry, error) {
	pts, err := pointsAttr(e)
	if err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, nil
	}
	var p svgtree.Path
	p.Start(pts[0])
	for _, pt := range pts[1:] {
		p.Line(pt)
	}
	return &svgtree.PathGeometry{Path: p}, nil
}

func polygonGeometry(e *Element) (svgtree.Geometry, error) {
	pts, err := pointsAttr(e)
	if err != nil {
		return nil, err
	}
	if len(pts) < 3 {
		return nil, nil
	}
	// force closure by repeating the first point when needed
	if pts[len(pts)-1] != pts[0] {
		pts = append(pts, pts[0])
	}
	var p svgtree.Path
	p.Start(pts[0])
	for _, pt := range pts[1:] {
		p.Line(pt)
	}
	p.Stop(true)
	return &svgtree.PathGeometry{Path: p}, nil
}

func pathGeometry(e *Element) (svgtree.Geometry, error) {
	d, _ := e.LookupAttr("d")
	if d == "" {
		return nil, nil
	}
	p, err := ParsePathData(d)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return nil, nil
	}
	return &svgtree.PathGeometry{Path: p}, nil
}
