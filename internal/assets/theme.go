package assets

import (
	"fmt"

	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/fonts"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

// DefaultThemeName is the name of the built-in theme.
const DefaultThemeName = "default"

// defaultLineHeightRatio applies when a font omits lineHeight.
const defaultLineHeightRatio = 1.25

// FontSpec is the YAML form of content.Font.
type FontSpec struct {
	Family     string  `yaml:"family"`
	Size       float64 `yaml:"size"`
	LineHeight float64 `yaml:"lineHeight"`
	Color      string  `yaml:"color"`

	family fonts.Family
}

func (f *FontSpec) normalize() error {
	fam, err := fonts.ParseFamily(f.Family)
	if err != nil {
		return err
	}
	f.family = fam
	if f.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %g", f.Size)
	}
	if f.LineHeight == 0 {
		f.LineHeight = f.Size * defaultLineHeightRatio
	}
	if f.LineHeight < f.Size {
		return fmt.Errorf("line height %g is below font size %g", f.LineHeight, f.Size)
	}
	if f.Color == "" {
		f.Color = "#000000"
	}
	return nil
}

// Font converts f to a content.Font.
func (f FontSpec) Font() content.Font {
	fam := f.family
	if fam == "" {
		fam = fonts.Regular
	}
	return content.Font{Family: fam, Size: f.Size, LineHeight: f.LineHeight, Color: f.Color}
}

// StatusStyle is how one section status is drawn.
type StatusStyle struct {
	Glyph      string `yaml:"glyph"`
	Color      string `yaml:"color"`
	TitleColor string `yaml:"titleColor"` // legend title color, empty keeps the legend font color
}

// SeverityStyle is the marker drawn before a comment.
type SeverityStyle struct {
	Marker string `yaml:"marker"`
	Color  string `yaml:"color"`
}

// UnitFonts holds one font per unit kind.
type UnitFonts struct {
	Legend   FontSpec `yaml:"legend"`
	Text     FontSpec `yaml:"text"`
	Checkbox FontSpec `yaml:"checkbox"`
	Caption  FontSpec `yaml:"caption"` // image captions and placeholder labels
}

// Spacing holds the gap after each unit kind and the text indent.
type Spacing struct {
	Legend     float64 `yaml:"legend"`
	Checkbox   float64 `yaml:"checkbox"`
	Text       float64 `yaml:"text"`
	Image      float64 `yaml:"image"`
	TextIndent float64 `yaml:"textIndent"`
}

// Box is a width and height in points.
type Box struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Theme describes how content units look.
type Theme struct {
	Name       string                   `yaml:"name"`
	Fonts      UnitFonts                `yaml:"fonts"`
	Spacing    Spacing                  `yaml:"spacing"`
	Statuses   map[string]StatusStyle   `yaml:"statuses"`   // keyed by record.Status.Key
	Severities map[string]SeverityStyle `yaml:"severities"` // keyed by lower-case severity name
	Checkbox   struct {
		Size float64 `yaml:"size"`
		Gap  float64 `yaml:"gap"`
	} `yaml:"checkbox"`
	Image            Box    `yaml:"image"`       // maximum display box
	Placeholder      Box    `yaml:"placeholder"` // failed media slot
	PlaceholderLabel string `yaml:"placeholderLabel"`
	PlaceholderColor string `yaml:"placeholderColor"`
	VideoBadge       string `yaml:"videoBadge"`
	VideoLabel       string `yaml:"videoLabel"`
	Continuation     string `yaml:"continuation"` // marks split legend and text fragments
	EmptySection     string `yaml:"emptySection"` // printed for a section without comments; empty prints nothing
	NumberSections   bool   `yaml:"numberSections"`
}

// StyleFor returns the style for a unit kind in a section with the given
// status. It depends only on its arguments and the theme.
func (t *Theme) StyleFor(kind content.Kind, status record.Status) content.Style {
	switch kind {
	case content.KindLegend:
		f := t.Fonts.Legend.Font()
		if s, ok := t.Statuses[status.Key()]; ok && s.TitleColor != "" {
			f.Color = s.TitleColor
		}
		return content.Style{Font: f, SpaceAfter: t.Spacing.Legend}
	case content.KindCheckbox:
		return content.Style{Font: t.Fonts.Checkbox.Font(), SpaceAfter: t.Spacing.Checkbox}
	case content.KindImage:
		return content.Style{Font: t.Fonts.Caption.Font(), SpaceAfter: t.Spacing.Image}
	default:
		return content.Style{Font: t.Fonts.Text.Font(), SpaceAfter: t.Spacing.Text, Indent: t.Spacing.TextIndent}
	}
}

// Status returns the style for status.
func (t *Theme) Status(status record.Status) StatusStyle {
	return t.Statuses[status.Key()]
}

// Severity returns the marker for sev. SeverityNone has no marker.
func (t *Theme) Severity(sev record.Severity) SeverityStyle {
	if sev == record.SeverityNone {
		return SeverityStyle{}
	}
	return t.Severities[sev.String()]
}

// compile fills defaults and checks that every status has a style.
func (t *Theme) compile() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %q: %s", ErrInvalidTheme, t.Name, fmt.Sprintf(format, args...))
	}
	for name, f := range map[string]*FontSpec{
		"legend": &t.Fonts.Legend, "text": &t.Fonts.Text,
		"checkbox": &t.Fonts.Checkbox, "caption": &t.Fonts.Caption,
	} {
		if err := f.normalize(); err != nil {
			return fail("%s font: %v", name, err)
		}
	}
	for _, s := range record.Statuses {
		st, ok := t.Statuses[s.Key()]
		if !ok || st.Glyph == "" {
			return fail("status %q has no glyph", s.Key())
		}
	}
	for _, sev := range []record.Severity{record.SeverityInfo, record.SeverityLimit, record.SeverityDefect} {
		if _, ok := t.Severities[sev.String()]; !ok {
			return fail("severity %q has no marker", sev)
		}
	}
	if t.Checkbox.Size <= 0 {
		return fail("checkbox size must be positive")
	}
	if t.Image.Width <= 0 || t.Image.Height <= 0 {
		return fail("image box must be positive")
	}
	if t.Placeholder.Width <= 0 || t.Placeholder.Height <= 0 {
		t.Placeholder = Box{Width: t.Image.Width, Height: t.Image.Height / 3}
	}
	if t.PlaceholderLabel == "" {
		t.PlaceholderLabel = "Image unavailable"
	}
	if t.VideoLabel == "" {
		t.VideoLabel = "Play video"
	}
	if t.Continuation == "" {
		t.Continuation = "(continued)"
	}
	return nil
}
