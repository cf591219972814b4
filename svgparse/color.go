package svgparse

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gosvg/svg/svgtree"
)

// ParseColor resolves an SVG paint value to a color: "none", hex
// triplets and sextets, the SVG 1.1 color names from the colornames
// package and rgb(r,g,b) function syntax. Unresolvable values fail
// with ErrFormat.
func ParseColor(value string) (svgtree.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.HasPrefix(v, "none"):
		return svgtree.Transparent, nil
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v), nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v)
	}
	if cn, ok := colornames.Map[v]; ok {
		return svgtree.Color{R: cn.R, G: cn.G, B: cn.B, A: cn.A}, nil
	}
	return svgtree.Color{}, fmt.Errorf("%w: unknown color %q", ErrFormat, value)
}

// ParseBrush resolves an SVG paint value to a solid brush under the
// same rules as ParseColor. Gradient url(#id) references are resolved
// by the style layer, not here.
func ParseBrush(value string) (svgtree.Brush, error) {
	c, err := ParseColor(value)
	if err != nil {
		return nil, err
	}
	return svgtree.SolidBrush{Color: c}, nil
}

// parseRGBFunc reads rgb(r,g,b). Malformed components parse as zero;
// this mirrors the tolerant handling of real-world documents.
func parseRGBFunc(v string) svgtree.Color {
	v = strings.TrimPrefix(v, "rgb")
	v = strings.TrimPrefix(strings.TrimSpace(v), "(")
	v = strings.TrimSuffix(strings.TrimSpace(v), ")")
	var comps [3]uint8
	for i, tok := range strings.Split(v, ",") {
		if i >= len(comps) {
			break
		}
		comps[i] = parseColorComponent(tok)
	}
	return svgtree.Color{R: comps[0], G: comps[1], B: comps[2], A: 0xff}
}

// parseColorComponent reads one rgb() component, either a byte value or
// a percentage. Values above 255 clamp; garbage reads as zero.
func parseColorComponent(v string) uint8 {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(v, "%")))
		if err != nil {
			return 0
		}
		if n > 100 {
			n = 100
		}
		return uint8(n * 0xff / 100)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

// parseHexColor reads #rgb and #rrggbb forms; three-digit values
// duplicate each character per the SVG spec.
func parseHexColor(v string) (svgtree.Color, error) {
	s := strings.TrimPrefix(v, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return svgtree.Color{}, fmt.Errorf("%w: invalid hex color %q", ErrFormat, v)
	}
	var channels [3]uint8
	for i := range channels {
		t, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return svgtree.Color{}, fmt.Errorf("%w: invalid hex color %q", ErrFormat, v)
		}
		channels[i] = uint8(t)
	}
	return svgtree.Color{R: channels[0], G: channels[1], B: channels[2], A: 0xff}, nil
}
