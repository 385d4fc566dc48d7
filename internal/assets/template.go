package assets

import (
	"fmt"
	"strings"
	"text/template"
)

// DefaultTemplateName is the name of the built-in template.
const DefaultTemplateName = "standard"

// RoleName identifies a page role.
type RoleName string

// Page roles.
const (
	RoleCover    RoleName = "cover"
	RoleStandard RoleName = "standard"
	RoleLast     RoleName = "last"
)

// RoleNames lists every role in document order.
var RoleNames = []RoleName{RoleCover, RoleStandard, RoleLast}

// Rect is an axis-aligned rectangle in points, origin at the page's top-left.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Intersects reports whether r and o share any area. Touching edges do not
// count.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Within reports whether r lies entirely inside o.
func (r Rect) Within(o Rect) bool {
	return r.X >= o.X && r.Y >= o.Y &&
		r.X+r.Width <= o.X+o.Width && r.Y+r.Height <= o.Y+o.Height
}

// Band is a header or footer strip.
type Band struct {
	Rect Rect   `yaml:"rect"`
	Text string `yaml:"text"` // text/template over the report header
	// Align is left, center or right.
	Align     string   `yaml:"align"`
	Font      FontSpec `yaml:"font"`
	PageLabel bool     `yaml:"pageLabel"` // draw the "Page N of M" label
	StatusKey bool     `yaml:"statusKey"` // draw the status code legend
	Rule      string   `yaml:"rule"`      // CSS color of a separator line, empty for none

	text *template.Template
}

// Execute renders the band text for data. A band without text yields "".
func (b *Band) Execute(data any) (string, error) {
	if b == nil || b.text == nil {
		return "", nil
	}
	var buf strings.Builder
	if err := b.text.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Role is the page furniture and geometry for one page role.
type Role struct {
	Content         Rect   `yaml:"content"`
	Background      string `yaml:"background"`      // CSS color
	BackgroundImage string `yaml:"backgroundImage"` // file next to template.yaml
	Header          *Band  `yaml:"header"`
	Footer          *Band  `yaml:"footer"`

	// Art holds the loaded background image, nil when none.
	Art     []byte `yaml:"-"`
	ArtMIME string `yaml:"-"`
}

// Template is a page template: size plus one Role per page role.
type Template struct {
	Name       string  `yaml:"name"`
	PageWidth  float64 `yaml:"pageWidth"`
	PageHeight float64 `yaml:"pageHeight"`
	// PageLabel is a text/template over {Number, Total}.
	PageLabel string `yaml:"pageLabel"`
	Cover     Role   `yaml:"cover"`
	Standard  Role   `yaml:"standard"`
	Last      Role   `yaml:"last"`

	pageLabel *template.Template
}

// Page returns the page rectangle.
func (t *Template) Page() Rect {
	return Rect{Width: t.PageWidth, Height: t.PageHeight}
}

// Role returns the role definition for name.
func (t *Template) Role(name RoleName) *Role {
	switch name {
	case RoleCover:
		return &t.Cover
	case RoleLast:
		return &t.Last
	default:
		return &t.Standard
	}
}

// PageLabelFor renders the page label.
func (t *Template) PageLabelFor(number, total int) (string, error) {
	if t.pageLabel == nil {
		return fmt.Sprintf("Page %d of %d", number, total), nil
	}
	var buf strings.Builder
	err := t.pageLabel.Execute(&buf, struct{ Number, Total int }{number, total})
	return buf.String(), err
}

// compile parses every text template and checks basic shape. Geometry
// against the usable area is checked by the assembler.
func (t *Template) compile() error {
	if t.PageWidth <= 0 || t.PageHeight <= 0 {
		return fmt.Errorf("%w: %q: page size %gx%g", ErrInvalidTemplate, t.Name, t.PageWidth, t.PageHeight)
	}
	if t.PageLabel != "" {
		tmpl, err := template.New("pageLabel").Option("missingkey=error").Parse(t.PageLabel)
		if err != nil {
			return fmt.Errorf("%w: %q: page label: %v", ErrInvalidTemplate, t.Name, err)
		}
		t.pageLabel = tmpl
	}
	for _, name := range RoleNames {
		r := t.Role(name)
		if r.Content.Empty() {
			return fmt.Errorf("%w: %q: %s role has no content area", ErrInvalidTemplate, t.Name, name)
		}
		for _, b := range []*Band{r.Header, r.Footer} {
			if b == nil {
				continue
			}
			if err := b.Font.normalize(); err != nil {
				return fmt.Errorf("%w: %q: %s band: %v", ErrInvalidTemplate, t.Name, name, err)
			}
			switch b.Align {
			case "":
				b.Align = "left"
			case "left", "center", "right":
			default:
				return fmt.Errorf("%w: %q: %s band align %q", ErrInvalidTemplate, t.Name, name, b.Align)
			}
			if b.Text == "" {
				continue
			}
			tmpl, err := template.New(string(name)).Option("missingkey=error").Parse(b.Text)
			if err != nil {
				return fmt.Errorf("%w: %q: %s band text: %v", ErrInvalidTemplate, t.Name, name, err)
			}
			b.text = tmpl
		}
	}
	return nil
}
