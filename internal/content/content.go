// Package content defines the logical units emitted by the section renderer
// and placed by the layout engine. Units know nothing about pages.
package content

import (
	"github.com/alnah/go-inspect2pdf/internal/fonts"
	"github.com/alnah/go-inspect2pdf/internal/mediacache"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

// Kind tags a unit variant.
type Kind int

// Unit kinds.
const (
	KindText Kind = iota + 1
	KindCheckbox
	KindLegend
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCheckbox:
		return "checkbox"
	case KindLegend:
		return "legend"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Font selects a typeface, size and color. Sizes are in points.
type Font struct {
	Family     fonts.Family
	Size       float64
	LineHeight float64
	Color      string // CSS color
}

// Style carries the formatting of a unit.
type Style struct {
	Font       Font
	SpaceAfter float64 // vertical gap before the next unit, collapsed at page top
	Indent     float64 // left indent inside the content area
}

// Unit is one renderable piece of a page.
type Unit interface {
	Kind() Kind
	// Splittable reports whether the unit may be broken across pages
	// at line boundaries.
	Splittable() bool
	// UnitStyle returns the unit's formatting.
	UnitStyle() Style
	// SectionIndex is the zero-based index of the source section.
	SectionIndex() int
}

// TextBlock is a comment body.
type TextBlock struct {
	Section     int
	Text        string // plain text; newlines separate lines
	Marker      string // severity marker drawn before the first line, may be empty
	MarkerColor string
	Style       Style
}

func (TextBlock) Kind() Kind          { return KindText }
func (TextBlock) Splittable() bool    { return true }
func (b TextBlock) UnitStyle() Style  { return b.Style }
func (b TextBlock) SectionIndex() int { return b.Section }

// LegendBlock is a section heading with its status glyph.
type LegendBlock struct {
	Section    int
	Title      string
	Status     record.Status
	Glyph      string
	GlyphColor string
	Style      Style
}

func (LegendBlock) Kind() Kind          { return KindLegend }
func (LegendBlock) Splittable() bool    { return true }
func (b LegendBlock) UnitStyle() Style  { return b.Style }
func (b LegendBlock) SectionIndex() int { return b.Section }

// CheckboxGlyph is a row of labelled boxes, one per status.
type CheckboxGlyph struct {
	Section int
	Labels  []string
	Checked int     // index into Labels, -1 for none
	BoxSize float64 // square edge in points
	Gap     float64 // horizontal gap between label and next box
	Style   Style
}

func (CheckboxGlyph) Kind() Kind          { return KindCheckbox }
func (CheckboxGlyph) Splittable() bool    { return false }
func (b CheckboxGlyph) UnitStyle() Style  { return b.Style }
func (b CheckboxGlyph) SectionIndex() int { return b.Section }

// Height is the row height: the box or the label line, whichever is taller.
func (b CheckboxGlyph) Height() float64 {
	return max(b.BoxSize, b.Style.Font.LineHeight)
}

// ImageBlock is a media slot. Asset is nil for placeholders and for videos
// without a thumbnail.
type ImageBlock struct {
	Section     int
	Ref         record.MediaReference
	Asset       *mediacache.Asset
	Width       float64 // display size in points
	Height      float64
	Placeholder bool  // resolution failed
	Failure     error // *mediacache.FetchError or *mediacache.DecodeError
	Style       Style
}

func (ImageBlock) Kind() Kind          { return KindImage }
func (ImageBlock) Splittable() bool    { return false }
func (b ImageBlock) UnitStyle() Style  { return b.Style }
func (b ImageBlock) SectionIndex() int { return b.Section }

// Video reports whether the slot links to a video.
func (b ImageBlock) Video() bool {
	return b.Ref.Kind == record.MediaVideo
}

// FitBox scales (w, h) to fit within (maxW, maxH) preserving aspect ratio.
// It never upscales. Non-positive source sizes yield the box itself.
func FitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	s := min(maxW/w, maxH/h, 1.0)
	return w * s, h * s
}
