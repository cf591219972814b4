package svgparse

import (
	"encoding/xml"
	"strings"

	"github.com/gosvg/svg/svgtree"
)

// Property identifies one recognized styling property.
type Property uint8

const (
	PropFill Property = iota
	PropFillOpacity
	PropFillRule
	PropStroke
	PropStrokeWidth
	PropLineCap
	PropLineJoin
	PropMiterLimit
	PropDashArray
	PropDashOffset
	PropStrokeOpacity
	PropOpacity
	PropStopColor
	PropStopOpacity
	PropTransform
)

// PropertyValue is the closed union of typed values a property can
// hold. Kind tells which field is meaningful; there is no runtime
// reflection anywhere in the cascade.
type PropertyValue struct {
	Kind ValueKind

	Brush     svgtree.Brush
	Scalar    float64
	Rule      svgtree.FillRule
	Cap       svgtree.CapMode
	Join      svgtree.JoinMode
	Dashes    []float64
	Transform svgtree.Transform
}

// ValueKind tags the live field of a PropertyValue.
type ValueKind uint8

const (
	BrushValue ValueKind = iota
	ScalarValue
	RuleValue
	CapValue
	JoinValue
	DashValue
	TransformValue
)

// PropertyMap is a parsed set of style properties.
type PropertyMap map[Property]PropertyValue

// propertySpec binds a property name to its key and coercion function.
// The bool result is false for soft failures: the property is skipped,
// never aborting the surrounding parse.
type propertySpec struct {
	prop  Property
	parse func(d *Defs, v string) (PropertyValue, bool, error)
}

var propertyTable = map[string]propertySpec{
	"fill":              {PropFill, parseBrushProp},
	"fill-opacity":      {PropFillOpacity, parseScalarProp},
	"fill-rule":         {PropFillRule, parseFillRuleProp},
	"stroke":            {PropStroke, parseBrushProp},
	"stroke-width":      {PropStrokeWidth, parseScalarProp},
	"stroke-linecap":    {PropLineCap, parseLineCapProp},
	"stroke-linejoin":   {PropLineJoin, parseLineJoinProp},
	"stroke-miterlimit": {PropMiterLimit, parseMiterLimitProp},
	"stroke-dasharray":  {PropDashArray, parseDashArrayProp},
	"stroke-dashoffset": {PropDashOffset, parseScalarProp},
	"stroke-opacity":    {PropStrokeOpacity, parseScalarProp},
	"opacity":           {PropOpacity, parseScalarProp},
	"stop-color":        {PropStopColor, parseBrushProp},
	"stop-opacity":      {PropStopOpacity, parseScalarProp},
	"transform":         {PropTransform, parseTransformProp},
}

// ParseStyle scans the "key: value;" pairs of a style attribute into a
// typed property map, resolving url(#id) references against the
// registry. Unknown keys and malformed literal values are skipped;
// only a malformed transform list is a hard error.
func ParseStyle(styleText string, defs *Defs) (PropertyMap, error) {
	props := make(PropertyMap)
	for _, pair := range strings.Split(styleText, ";") {
		k, v, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		if err := parseInto(props, defs, k, v); err != nil {
			return nil, err
		}
	}
	return props, nil
}

// parseProperties reads presentation attributes through the same
// coercion table as ParseStyle.
func parseProperties(attrs []xml.Attr, defs *Defs) (PropertyMap, error) {
	props := make(PropertyMap)
	for _, attr := range attrs {
		if err := parseInto(props, defs, attr.Name.Local, attr.Value); err != nil {
			return nil, err
		}
	}
	return props, nil
}

func parseInto(props PropertyMap, defs *Defs, k, v string) error {
	spec, ok := propertyTable[strings.ToLower(strings.TrimSpace(k))]
	if !ok {
		return nil
	}
	val, ok, err := spec.parse(defs, strings.TrimSpace(v))
	if err != nil {
		return err
	}
	if ok {
		props[spec.prop] = val
	}
	return nil
}

// urlRef extracts the id of a url(#id) reference value.
func urlRef(v string) (string, bool) {
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	id := strings.TrimSpace(v[len("url(") : len(v)-1])
	id = strings.TrimPrefix(id, "#")
	return id, id != ""
}

func parseBrushProp(d *Defs, v string) (PropertyValue, bool, error) {
	if id, ok := urlRef(v); ok {
		brush, found := d.Brush(id)
		if !found {
			// dangling reference degrades to black
			brush = svgtree.SolidBrush{Color: svgtree.Black}
		}
		return PropertyValue{Kind: BrushValue, Brush: brush}, true, nil
	}
	brush, err := ParseBrush(v)
	if err != nil {
		return PropertyValue{}, false, nil
	}
	return PropertyValue{Kind: BrushValue, Brush: brush}, true, nil
}

func parseScalarProp(d *Defs, v string) (PropertyValue, bool, error) {
	if id, ok := urlRef(v); ok {
		f, _ := d.Scalar(id) // missing scalar reference degrades to zero
		return PropertyValue{Kind: ScalarValue, Scalar: f}, true, nil
	}
	f, err := parseBasicFloat(v)
	if err != nil {
		return PropertyValue{}, false, nil
	}
	return PropertyValue{Kind: ScalarValue, Scalar: f}, true, nil
}

func parseFillRuleProp(_ *Defs, v string) (PropertyValue, bool, error) {
	rule := svgtree.Nonzero
	if strings.EqualFold(v, "evenodd") {
		rule = svgtree.EvenOdd
	}
	return PropertyValue{Kind: RuleValue, Rule: rule}, true, nil
}

func parseLineCapProp(_ *Defs, v string) (PropertyValue, bool, error) {
	mode := svgtree.FlatCap
	switch strings.ToLower(v) {
	case "round":
		mode = svgtree.RoundCap
	case "square":
		mode = svgtree.SquareCap
	}
	return PropertyValue{Kind: CapValue, Cap: mode}, true, nil
}

func parseLineJoinProp(_ *Defs, v string) (PropertyValue, bool, error) {
	join := svgtree.MiterJoin
	switch strings.ToLower(v) {
	case "round":
		join = svgtree.RoundJoin
	case "bevel":
		join = svgtree.BevelJoin
	}
	return PropertyValue{Kind: JoinValue, Join: join}, true, nil
}

func parseMiterLimitProp(d *Defs, v string) (PropertyValue, bool, error) {
	val, ok, err := parseScalarProp(d, v)
	if !ok || err != nil {
		return val, ok, err
	}
	if val.Scalar < 1 {
		val.Scalar = 1
	}
	return val, true, nil
}

func parseDashArrayProp(_ *Defs, v string) (PropertyValue, bool, error) {
	if strings.EqualFold(v, "none") {
		return PropertyValue{Kind: DashValue}, true, nil
	}
	dashes, err := parseNumberList(v)
	if err != nil {
		return PropertyValue{}, false, nil
	}
	return PropertyValue{Kind: DashValue, Dashes: dashes}, true, nil
}

func parseTransformProp(d *Defs, v string) (PropertyValue, bool, error) {
	if id, ok := urlRef(v); ok {
		t, found := d.Transform(id)
		if !found {
			t = svgtree.Identity
		}
		return PropertyValue{Kind: TransformValue, Transform: t}, true, nil
	}
	t, err := ParseTransform(v)
	if err != nil {
		return PropertyValue{}, false, err
	}
	return PropertyValue{Kind: TransformValue, Transform: t}, true, nil
}
