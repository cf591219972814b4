package svgparse

import (
	"fmt"
	"math"
	"strconv"

	gl "github.com/rustyoz/genericlexer"

	"github.com/gosvg/svg/svgtree"
)

// Path-data mini-language evaluation. The d attribute grammar is a
// standard format handled with the genericlexer tokenizer; elliptical
// arcs are approximated with cubic beziers.

// maxArcDx is the maximum radians a cubic spline is allowed to span
// when approximating an off-axis ellipse.
const maxArcDx = math.Pi / 8

type pathCursor struct {
	lex  *gl.Lexer
	path svgtree.Path

	placeX, placeY float64 // current point
	startX, startY float64 // start of the current figure
	cntlX, cntlY   float64 // last cubic control point, for S commands
	quadX, quadY   float64 // last quadratic control point, for T commands
	lastCmd        byte
	inPath         bool
}

// ParsePathData evaluates an SVG path d attribute into path figures.
// Malformed data fails with ErrFormat; callers treat that as a soft
// failure and skip the attribute.
func ParsePathData(d string) (svgtree.Path, error) {
	lex, _ := gl.Lex("d", d)
	c := &pathCursor{lex: lex}
	for {
		c.lex.ConsumeWhiteSpace()
		i := c.lex.NextItem()
		switch i.Type {
		case gl.ItemEOS:
			return c.path, nil
		case gl.ItemError:
			return nil, fmt.Errorf("%w: bad path data %q", ErrFormat, i.Value)
		case gl.ItemLetter:
			if len(i.Value) != 1 {
				return nil, fmt.Errorf("%w: bad path command %q", ErrFormat, i.Value)
			}
			if err := c.command(i.Value[0]); err != nil {
				return nil, err
			}
		}
	}
}

// readNumbers consumes the parameter run following a command letter.
func (c *pathCursor) readNumbers() ([]float64, error) {
	var out []float64
	for {
		c.lex.ConsumeWhiteSpace()
		peek := c.lex.PeekItem()
		if peek.Type == gl.ItemNumber {
			f, err := strconv.ParseFloat(c.lex.NextItem().Value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid number %q", ErrFormat, peek.Value)
			}
			out = append(out, f)
			continue
		}
		if peek.Type == gl.ItemLetter || peek.Type == gl.ItemEOS || peek.Type == gl.ItemError {
			return out, nil
		}
		c.lex.NextItem() // separator
	}
}

func (c *pathCursor) grouped(pts []float64, n int) ([][]float64, error) {
	if n == 0 || len(pts)%n != 0 {
		return nil, fmt.Errorf("%w: path parameter count %d not a multiple of %d", ErrFormat, len(pts), n)
	}
	groups := make([][]float64, 0, len(pts)/n)
	for i := 0; i < len(pts); i += n {
		groups = append(groups, pts[i:i+n])
	}
	return groups, nil
}

func (c *pathCursor) moveTo(x, y float64) {
	c.path.Start(svgtree.Point{X: x, Y: y})
	c.placeX, c.placeY = x, y
	c.startX, c.startY = x, y
	c.inPath = true
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(svgtree.Point{X: x, Y: y})
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) command(cmd byte) error {
	rel := cmd >= 'a'
	pts, err := c.readNumbers()
	if err != nil {
		return err
	}
	upper := cmd &^ 0x20 // ASCII uppercase

	switch upper {
	case 'M':
		groups, err := c.grouped(pts, 2)
		if err != nil || len(groups) == 0 {
			return fmt.Errorf("%w: moveto needs coordinate pairs", ErrFormat)
		}
		for i, g := range groups {
			x, y := g[0], g[1]
			if rel {
				x += c.placeX
				y += c.placeY
			}
			if i == 0 {
				c.moveTo(x, y)
			} else {
				// additional pairs are implicit linetos
				c.lineTo(x, y)
			}
		}
	case 'L':
		groups, err := c.grouped(pts, 2)
		if err != nil {
			return err
		}
		for _, g := range groups {
			x, y := g[0], g[1]
			if rel {
				x += c.placeX
				y += c.placeY
			}
			c.lineTo(x, y)
		}
	case 'H':
		for _, x := range pts {
			if rel {
				x += c.placeX
			}
			c.lineTo(x, c.placeY)
		}
	case 'V':
		for _, y := range pts {
			if rel {
				y += c.placeY
			}
			c.lineTo(c.placeX, y)
		}
	case 'C':
		groups, err := c.grouped(pts, 6)
		if err != nil {
			return err
		}
		for _, g := range groups {
			x1, y1, x2, y2, x, y := g[0], g[1], g[2], g[3], g[4], g[5]
			if rel {
				x1 += c.placeX
				y1 += c.placeY
				x2 += c.placeX
				y2 += c.placeY
				x += c.placeX
				y += c.placeY
			}
			c.cubicTo(x1, y1, x2, y2, x, y)
		}
	case 'S':
		groups, err := c.grouped(pts, 4)
		if err != nil {
			return err
		}
		for _, g := range groups {
			x2, y2, x, y := g[0], g[1], g[2], g[3]
			if rel {
				x2 += c.placeX
				y2 += c.placeY
				x += c.placeX
				y += c.placeY
			}
			x1, y1 := c.placeX, c.placeY
			if c.lastCmd == 'C' || c.lastCmd == 'S' {
				x1 = 2*c.placeX - c.cntlX
				y1 = 2*c.placeY - c.cntlY
			}
			c.cubicTo(x1, y1, x2, y2, x, y)
			c.lastCmd = 'S'
		}
	case 'Q':
		groups, err := c.grouped(pts, 4)
		if err != nil {
			return err
		}
		for _, g := range groups {
			x1, y1, x, y := g[0], g[1], g[2], g[3]
			if rel {
				x1 += c.placeX
				y1 += c.placeY
				x += c.placeX
				y += c.placeY
			}
			c.quadTo(x1, y1, x, y)
		}
	case 'T':
		groups, err := c.grouped(pts, 2)
		if err != nil {
			return err
		}
		for _, g := range groups {
			x, y := g[0], g[1]
			if rel {
				x += c.placeX
				y += c.placeY
			}
			x1, y1 := c.placeX, c.placeY
			if c.lastCmd == 'Q' || c.lastCmd == 'T' {
				x1 = 2*c.placeX - c.quadX
				y1 = 2*c.placeY - c.quadY
			}
			c.quadTo(x1, y1, x, y)
			c.lastCmd = 'T'
		}
	case 'A':
		groups, err := c.grouped(pts, 7)
		if err != nil {
			return err
		}
		for _, g := range groups {
			arc := append([]float64(nil), g...)
			if rel {
				arc[5] += c.placeX
				arc[6] += c.placeY
			}
			c.arcTo(arc)
		}
	case 'Z':
		if len(pts) != 0 {
			return fmt.Errorf("%w: closepath takes no parameters", ErrFormat)
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX, c.placeY = c.startX, c.startY
		}
	default:
		return fmt.Errorf("%w: unknown path command %q", ErrFormat, string(cmd))
	}
	c.lastCmd = upper
	return nil
}

func (c *pathCursor) cubicTo(x1, y1, x2, y2, x, y float64) {
	c.path.CubeBezier(svgtree.Point{X: x1, Y: y1}, svgtree.Point{X: x2, Y: y2}, svgtree.Point{X: x, Y: y})
	c.cntlX, c.cntlY = x2, y2
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) quadTo(x1, y1, x, y float64) {
	c.path.QuadBezier(svgtree.Point{X: x1, Y: y1}, svgtree.Point{X: x, Y: y})
	c.quadX, c.quadY = x1, y1
	c.placeX, c.placeY = x, y
}

// arcTo adds an elliptical arc given the seven absolute arc parameters
// rx, ry, x-axis-rotation, large-arc, sweep, x, y.
func (c *pathCursor) arcTo(pts []float64) {
	if pts[0] == 0 || pts[1] == 0 {
		// degenerate radii collapse to a straight segment
		c.lineTo(pts[5], pts[6])
		return
	}
	cx, cy := findEllipseCenter(&pts[0], &pts[1], pts[2]*math.Pi/180, c.placeX, c.placeY,
		pts[5], pts[6], pts[4] == 0, pts[3] == 0)
	c.placeX, c.placeY = c.addArc(pts, cx, cy, c.placeX, c.placeY)
}

// addArc approximates an elliptical arc with cubic beziers by the
// method of L. Maisonobe, "Drawing an elliptical arc using polylines,
// quadratic or cubic Bezier curves", 2003.
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
func (c *pathCursor) addArc(points []float64, cx, cy, px, py float64) (lx, ly float64) {
	rotX := points[2] * math.Pi / 180
	largeArc := points[3] != 0
	sweep := points[4] != 0
	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(points[6]-cy, points[5]-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/points[1], math.Cos(startAngle)/points[0])
	etaEnd := math.Atan2(math.Sin(endAngle)/points[1], math.Cos(endAngle)/points[0])
	deltaEta := etaEnd - etaStart
	if (arcBig && !largeArc) || (!arcBig && largeArc) {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxArcDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly = px, py
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(points[0], points[1], sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = points[5], points[6] // exact end point, no roundoff error
		} else {
			px, py = ellipsePointAt(points[0], points[1], sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(points[0], points[1], sinTheta, cosTheta, eta)
		c.path.CubeBezier(
			svgtree.Point{X: lx + alpha*ldx, Y: ly + alpha*ldy},
			svgtree.Point{X: px - alpha*dx, Y: py - alpha*dy},
			svgtree.Point{X: px, Y: py})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return lx, ly
}

// ellipsePrime gives tangent vectors for the parameterized ellipse;
// a, b radii, eta parameter.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for the parameterized ellipse; a, b
// radii, eta parameter, center cx, cy.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If
// it does not exist, the radius values are increased minimally for a
// solution to be possible while preserving the ra to rb ratio. ra and
// rb arguments are pointers that can be checked after the call to see
// if the values changed. The method reduces the problem to finding the
// center of a circle that includes the origin and an arbitrary point.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if (sweep && smallArc) || (!sweep && !smallArc) {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	// Reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
