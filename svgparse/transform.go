package svgparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosvg/svg/svgtree"
)

// ParseTransform evaluates an SVG transform attribute into a transform
// value. A single recognized command yields that primitive directly; a
// list of commands yields a *svgtree.TransformGroup preserving order;
// an empty or blank string yields the identity.
//
// Two historical quirks are part of the contract: the keyword "none"
// anywhere in the list collapses the whole result to identity, and a
// matrix command with other than six parameters is skipped instead of
// failing.
func ParseTransform(s string) (svgtree.Transform, error) {
	var prims []svgtree.Transform
	for _, chunk := range strings.Split(s, ")") {
		chunk = strings.Trim(chunk, " \t\n\r,")
		if chunk == "" {
			continue
		}
		name, params, found := strings.Cut(chunk, "(")
		fields := splitOnCommaOrSpace(name)
		for _, f := range fields {
			if strings.EqualFold(f, "none") {
				return svgtree.Identity, nil
			}
		}
		if !found || len(fields) != 1 {
			return svgtree.Identity, fmt.Errorf("%w: malformed transform %q", ErrFormat, chunk)
		}
		points, err := parseNumberList(params)
		if err != nil {
			return svgtree.Identity, err
		}
		prim, err := makeTransform(strings.ToLower(strings.TrimSpace(fields[0])), points)
		if err != nil {
			return svgtree.Identity, err
		}
		if prim != nil {
			prims = append(prims, prim)
		}
	}
	switch len(prims) {
	case 0:
		return svgtree.Identity, nil
	case 1:
		return prims[0], nil
	default:
		return &svgtree.TransformGroup{Children: prims}, nil
	}
}

// makeTransform builds the primitive for one command. A nil transform
// with a nil error means the command is skipped (missing parameters,
// matrix arity quirk).
func makeTransform(cmd string, pts []float64) (svgtree.Transform, error) {
	switch cmd {
	case "translate":
		switch len(pts) {
		case 0:
			return nil, nil
		case 1:
			return svgtree.Translation{Tx: pts[0]}, nil
		default:
			return svgtree.Translation{Tx: pts[0], Ty: pts[1]}, nil
		}
	case "scale":
		switch len(pts) {
		case 0:
			return nil, nil
		case 1:
			return svgtree.Scaling{Sx: pts[0], Sy: pts[0]}, nil
		default:
			return svgtree.Scaling{Sx: pts[0], Sy: pts[1]}, nil
		}
	case "rotate":
		if len(pts) == 0 {
			return nil, nil
		}
		return svgtree.Rotation{Angle: pts[0]}, nil
	case "skewx":
		if len(pts) == 0 {
			return nil, nil
		}
		return svgtree.SkewX{Angle: pts[0]}, nil
	case "skewy":
		if len(pts) == 0 {
			return nil, nil
		}
		return svgtree.SkewY{Angle: pts[0]}, nil
	case "matrix":
		if len(pts) != 6 {
			// historical leniency: wrong arity no-ops
			return nil, nil
		}
		return svgtree.Matrix2D{
			A: pts[0], B: pts[1],
			C: pts[2], D: pts[3],
			E: pts[4], F: pts[5],
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown transform command %q", ErrFormat, cmd)
	}
}

// splitOnCommaOrSpace returns a list of strings after splitting the
// input on comma and whitespace delimiters.
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// parseNumberList reads a whitespace-or-comma separated list of floats,
// ignoring empty tokens.
func parseNumberList(s string) ([]float64, error) {
	tokens := splitOnCommaOrSpace(s)
	out := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrFormat, tok)
		}
		out = append(out, f)
	}
	return out, nil
}

// parseBasicFloat parses one float, tolerating surrounding whitespace
// and a trailing px unit.
func parseBasicFloat(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

// readFraction parses a float that may carry a percent sign, mapping
// "50%" to 0.5.
func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	return f / d, err
}
