package svgtree

// Post-parse recoloring. Both operations deep-clone the tree before
// touching it, so the tree obtained from the initial parse stays valid
// for a later reset.

// ReplaceFillBrush returns a copy of the tree in which every shape or
// text-run fill whose resolved solid color matches old (by value, alpha
// ignored) is repainted with a copy of repl. The matched brush's own
// opacity is carried over onto the replacement.
func ReplaceFillBrush(t *Tree, old, repl Brush) *Tree {
	c := t.Clone()
	walkNodes(c.Root, func(n Node) {
		switch n := n.(type) {
		case *Shape:
			if nb, ok := replacementFor(n.Fill, old, repl); ok {
				n.Fill = nb
			}
		case *TextRun:
			if nb, ok := replacementFor(n.Foreground, old, repl); ok {
				n.Foreground = nb
			}
		}
	})
	return c
}

// ReplaceStrokeBrush is the stroke counterpart of ReplaceFillBrush.
// Pen thickness, caps, joins and dashes are preserved: only the brush
// inside the pen changes.
func ReplaceStrokeBrush(t *Tree, old, repl Brush) *Tree {
	c := t.Clone()
	walkNodes(c.Root, func(n Node) {
		s, ok := n.(*Shape)
		if !ok || s.Stroke == nil {
			return
		}
		if nb, ok := replacementFor(s.Stroke.Brush, old, repl); ok {
			s.Stroke.Brush = nb
		}
	})
	return c
}

// replacementFor matches cur against old by resolved solid color and,
// on a match, returns repl adjusted to keep cur's opacity.
func replacementFor(cur, old, repl Brush) (Brush, bool) {
	curCol, ok := SolidColor(cur)
	if !ok {
		return nil, false
	}
	oldCol, ok := SolidColor(old)
	if !ok {
		return nil, false
	}
	if curCol.R != oldCol.R || curCol.G != oldCol.G || curCol.B != oldCol.B {
		return nil, false
	}
	out := repl.Clone()
	if curCol.A < 0xff {
		out = out.WithOpacity(float64(curCol.A) / 0xff)
	}
	return out, true
}

func walkNodes(g *Group, visit func(Node)) {
	if g == nil {
		return
	}
	for _, child := range g.Children {
		visit(child)
		if sub, ok := child.(*Group); ok {
			walkNodes(sub, visit)
		}
	}
}
