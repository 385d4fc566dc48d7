// Package fonts provides the typefaces used to measure and draw report text.
// The same font files are embedded in the generated HTML, so widths computed
// here match what the browser draws.
package fonts

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Family names a typeface.
type Family string

// Available families.
const (
	Regular Family = "regular"
	Bold    Family = "bold"
	Italic  Family = "italic"
)

// Families lists every available family.
var Families = []Family{Regular, Bold, Italic}

// ErrUnknownFamily is returned for family names outside Families.
var ErrUnknownFamily = errors.New("unknown font family")

var ttf = map[Family][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Italic:  goitalic.TTF,
}

// ParseFamily resolves a family name (case-insensitive, empty means regular).
func ParseFamily(name string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return Regular, nil
	}
	if _, ok := ttf[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	return f, nil
}

// TTF returns the raw font file for family, or nil if unknown.
func TTF(f Family) []byte {
	return ttf[f]
}

// CSSName is the font-family name used in generated stylesheets.
func CSSName(f Family) string {
	return "Report" + strings.ToUpper(string(f[:1])) + string(f[1:])
}

type faceKey struct {
	family Family
	size   float64
}

// Measurer computes advance widths in points. Safe for concurrent use.
type Measurer struct {
	mu    sync.Mutex
	fonts map[Family]*opentype.Font
	faces map[faceKey]font.Face
}

// NewMeasurer parses the embedded fonts.
func NewMeasurer() (*Measurer, error) {
	m := &Measurer{
		fonts: make(map[Family]*opentype.Font, len(ttf)),
		faces: make(map[faceKey]font.Face),
	}
	for fam, data := range ttf {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s font: %w", fam, err)
		}
		m.fonts[fam] = f
	}
	return m, nil
}

// Width returns the advance width of text in points at the given size.
// Unknown families are measured with the regular face.
func (m *Measurer) Width(text string, family Family, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(family, size)
	if err != nil {
		return 0
	}
	return fixedToFloat(font.MeasureString(face, text))
}

// face returns a cached face; callers hold m.mu.
func (m *Measurer) face(family Family, size float64) (font.Face, error) {
	if _, ok := m.fonts[family]; !ok {
		family = Regular
	}
	key := faceKey{family: family, size: size}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	// 72 DPI makes one pixel equal one point.
	f, err := opentype.NewFace(m.fonts[family], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = f
	return f, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
