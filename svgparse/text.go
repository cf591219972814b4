package svgparse

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gosvg/svg/svgtree"
)

// DefaultDPI is the pixels-per-inch resolution used for text metrics
// when the caller does not provide one.
const DefaultDPI = 96

// Text elements default to Arial at 12 units; families without a
// registered face fall back to Go Regular.
const (
	defaultFontFamily = "Arial"
	defaultFontSize   = 12
)

var fontRegistry = struct {
	sync.RWMutex
	faces map[string]*sfnt.Font
}{faces: make(map[string]*sfnt.Font)}

var fallbackFont = sync.OnceValue(func() *sfnt.Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic("svgparse: invalid embedded fallback font: " + err.Error())
	}
	return f
})

// RegisterFont makes a TTF or OTF font available to text layout under
// the given family name. Family matching is case-insensitive.
func RegisterFont(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("registering font %q: %w", family, err)
	}
	fontRegistry.Lock()
	fontRegistry.faces[strings.ToLower(family)] = f
	fontRegistry.Unlock()
	return nil
}

// LookupFont returns the face registered for family, or the embedded
// fallback face when the family is unknown.
func LookupFont(family string) *sfnt.Font {
	fontRegistry.RLock()
	f := fontRegistry.faces[strings.ToLower(family)]
	fontRegistry.RUnlock()
	if f == nil {
		return fallbackFont()
	}
	return f
}

// parseText lays out a text element as a single baseline glyph run
// anchored at (x, y). Advances come from the typeface advance-width
// table scaled to the font size; there is no kerning and no wrapping.
func parseText(e *Element, dpi float64) (*svgtree.TextRun, error) {
	content := strings.TrimSpace(e.Text)
	if content == "" {
		return nil, nil
	}

	run := &svgtree.TextRun{
		FontFamily: defaultFontFamily,
		FontSize:   defaultFontSize,
	}
	run.Origin = svgtree.Point{X: lengthAttr(e, "x", 0), Y: lengthAttr(e, "y", 0)}
	if v, ok := e.LookupAttr("font-family"); ok && v != "" {
		// only the first family of a fallback list is honored
		run.FontFamily = strings.Trim(strings.TrimSpace(strings.Split(v, ",")[0]), `'"`)
	}
	if v, ok := e.LookupAttr("font-size"); ok && v != "" {
		if size, err := parseBasicFloat(v); err == nil && size > 0 {
			run.FontSize = size
		}
	}
	if v, ok := e.LookupAttr("font-weight"); ok {
		run.Bold = isBoldWeight(v)
	}
	if v, ok := e.LookupAttr("font-style"); ok {
		s := strings.ToLower(strings.TrimSpace(v))
		run.Italic = s == "italic" || s == "oblique"
	}

	face := LookupFont(run.FontFamily)
	ppem := fixed.Int26_6(run.FontSize * dpi / 72 * 64)

	var buf sfnt.Buffer
	x := run.Origin.X
	for _, r := range content {
		gi, err := face.GlyphIndex(&buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyph lookup for %q: %w", r, err)
		}
		adv, err := face.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("glyph advance for %q: %w", r, err)
		}
		advance := float64(adv) / 64
		run.Glyphs = append(run.Glyphs, svgtree.PositionedGlyph{
			Rune:    r,
			Index:   uint16(gi),
			X:       x,
			Advance: advance,
		})
		x += advance
	}
	return run, nil
}

func isBoldWeight(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	switch s {
	case "bold", "bolder":
		return true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n >= 600
	}
	return false
}
