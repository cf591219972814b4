package svgparse

import "github.com/gosvg/svg/svgtree"

// Defs is the definitions registry: reusable artifacts parsed from
// <defs> blocks, keyed by element id. One registry lives for the
// duration of a single document parse; entries are written while
// walking defs and only read afterwards. Duplicate ids follow
// last-write-wins.
//
// A single mapping holds mixed artifact kinds (brushes, parsed shapes,
// transforms, scalars); lookups are type-checked and report a miss on
// kind mismatch rather than failing.
type Defs struct {
	byID map[string]any
}

// NewDefs returns an empty registry.
func NewDefs() *Defs {
	return &Defs{byID: make(map[string]any)}
}

// Register stores an artifact under id, replacing any previous entry.
func (d *Defs) Register(id string, artifact any) {
	d.byID[id] = artifact
}

// Brush returns the brush registered under id. The returned brush is an
// owned copy: mutating it (opacity adjustment, transform append) never
// touches the registry's cached instance.
func (d *Defs) Brush(id string) (svgtree.Brush, bool) {
	b, ok := d.byID[id].(svgtree.Brush)
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Shape returns the parsed shape node registered under id.
func (d *Defs) Shape(id string) (*svgtree.Shape, bool) {
	s, ok := d.byID[id].(*svgtree.Shape)
	return s, ok
}

// Transform returns the transform registered under id.
func (d *Defs) Transform(id string) (svgtree.Transform, bool) {
	t, ok := d.byID[id].(svgtree.Transform)
	return t, ok
}

// Scalar returns the numeric value registered under id.
func (d *Defs) Scalar(id string) (float64, bool) {
	f, ok := d.byID[id].(float64)
	return f, ok
}
