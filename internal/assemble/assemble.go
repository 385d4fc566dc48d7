// Package assemble merges laid-out pages with a template: page roles,
// backgrounds, header and footer bands, and page labels.
package assemble

import (
	"fmt"
	"strings"

	"github.com/alnah/go-inspect2pdf/internal/assets"
	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/dateutil"
	"github.com/alnah/go-inspect2pdf/internal/layout"
	"github.com/alnah/go-inspect2pdf/internal/logging"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

// Meta is the document-level data drawn in page furniture.
type Meta struct {
	Header record.Header
}

// bandData is what band text templates see.
type bandData struct {
	Address   string
	Client    string
	Inspector string
	Date      string
}

// Band is a rendered header or footer.
type Band struct {
	Rect      assets.Rect
	Text      string
	Align     string
	Font      content.Font
	PageLabel string // empty when the band shows no label
	StatusKey string // empty when the band shows no key
	Rule      string
}

// Page is one fully assembled page. Drawing order is background, bands,
// then placements.
type Page struct {
	Number     int // 1-based position in the document
	Label      string
	Role       assets.RoleName
	Width      float64
	Height     float64
	Background string
	Art        []byte
	ArtMIME    string
	Content    assets.Rect // placements are relative to its top-left corner
	Header     *Band
	Footer     *Band
	Placements []layout.Placement
}

// Document is the assembled report handed to the serializer.
type Document struct {
	Title string
	Pages []Page
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithPageNumberOffset shifts page labels, for reports bound after
// preceding pages.
func WithPageNumberOffset(n int) Option {
	return func(a *Assembler) {
		if n >= 0 {
			a.offset = n
		}
	}
}

// WithDateFormat sets the date format used for {{.Date}} in bands.
func WithDateFormat(format string) Option {
	return func(a *Assembler) { a.dateFormat = format }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Assembler) { a.logger = logging.Component(l, "assemble") }
}

// Assembler applies one template to laid-out pages.
type Assembler struct {
	tmpl       *assets.Template
	geom       layout.Geometry
	offset     int
	dateFormat string
	logger     logging.Logger
}

// New validates tmpl against the usable area geom and returns an
// Assembler. A role whose content area is smaller than geom yields
// *TemplateMismatchError; a band overlapping the content area, or a
// content area leaving the page, yields ErrTemplateOverlap.
func New(tmpl *assets.Template, geom layout.Geometry, opts ...Option) (*Assembler, error) {
	if err := validate(tmpl, geom); err != nil {
		return nil, err
	}
	a := &Assembler{tmpl: tmpl, geom: geom, logger: logging.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func validate(tmpl *assets.Template, geom layout.Geometry) error {
	if err := geom.Validate(); err != nil {
		return err
	}
	page := tmpl.Page()
	for _, name := range assets.RoleNames {
		r := tmpl.Role(name)
		c := r.Content
		if c.Width+1e-6 < geom.Width || c.Height+1e-6 < geom.Height {
			return &TemplateMismatchError{
				Template: tmpl.Name, Role: name,
				ContentWidth: c.Width, ContentHeight: c.Height,
				UsableWidth: geom.Width, UsableHeight: geom.Height,
			}
		}
		if !c.Within(page) {
			return fmt.Errorf("%w: template %q role %s: content area leaves the page", ErrTemplateOverlap, tmpl.Name, name)
		}
		if r.Header != nil && r.Header.Rect.Intersects(c) {
			return fmt.Errorf("%w: template %q role %s: header band", ErrTemplateOverlap, tmpl.Name, name)
		}
		if r.Footer != nil && r.Footer.Rect.Intersects(c) {
			return fmt.Errorf("%w: template %q role %s: footer band", ErrTemplateOverlap, tmpl.Name, name)
		}
	}
	return nil
}

// RoleFor returns the role of page index i (0-based) in a document of n
// pages. The first page is the cover, the last page of a longer document
// is the last role, and a single page is a cover.
func RoleFor(i, n int) assets.RoleName {
	switch {
	case i == 0:
		return assets.RoleCover
	case i == n-1:
		return assets.RoleLast
	default:
		return assets.RoleStandard
	}
}

// Assemble merges pages with the template. A document with no pages gets
// one empty cover page so there is always something to print.
func (a *Assembler) Assemble(pages []layout.Page, meta Meta) (*Document, error) {
	if len(pages) == 0 {
		pages = []layout.Page{{Number: 1}}
	}
	data := bandData{
		Address:   meta.Header.Address,
		Client:    meta.Header.Client,
		Inspector: meta.Header.Inspector,
		Date:      dateutil.NormalizeDate(meta.Header.Date, a.dateFormat),
	}
	statusKey := StatusKey()
	total := len(pages) + a.offset

	doc := &Document{Title: documentTitle(meta.Header), Pages: make([]Page, 0, len(pages))}
	for i, p := range pages {
		roleName := RoleFor(i, len(pages))
		role := a.tmpl.Role(roleName)

		label, err := a.tmpl.PageLabelFor(i+1+a.offset, total)
		if err != nil {
			return nil, fmt.Errorf("page %d label: %w", i+1, err)
		}
		header, err := renderBand(role.Header, data, label, statusKey)
		if err != nil {
			return nil, fmt.Errorf("page %d header: %w", i+1, err)
		}
		footer, err := renderBand(role.Footer, data, label, statusKey)
		if err != nil {
			return nil, fmt.Errorf("page %d footer: %w", i+1, err)
		}

		doc.Pages = append(doc.Pages, Page{
			Number:     i + 1,
			Label:      label,
			Role:       roleName,
			Width:      a.tmpl.PageWidth,
			Height:     a.tmpl.PageHeight,
			Background: role.Background,
			Art:        role.Art,
			ArtMIME:    role.ArtMIME,
			Content:    role.Content,
			Header:     header,
			Footer:     footer,
			Placements: p.Placements,
		})
	}
	a.logger.Debug().Int("pages", len(doc.Pages)).Str("template", a.tmpl.Name).Msg("document assembled")
	return doc, nil
}

func renderBand(b *assets.Band, data bandData, label, statusKey string) (*Band, error) {
	if b == nil {
		return nil, nil
	}
	text, err := b.Execute(data)
	if err != nil {
		return nil, err
	}
	out := &Band{Rect: b.Rect, Text: text, Align: b.Align, Font: b.Font.Font(), Rule: b.Rule}
	if b.PageLabel {
		out.PageLabel = label
	}
	if b.StatusKey {
		out.StatusKey = statusKey
	}
	return out, nil
}

// StatusKey returns the legend of checkbox codes, e.g. "I=Inspected ...".
func StatusKey() string {
	parts := make([]string, len(record.Statuses))
	for i, s := range record.Statuses {
		parts[i] = s.Code() + "=" + s.String()
	}
	return strings.Join(parts, "  ")
}

func documentTitle(h record.Header) string {
	if h.Address == "" {
		return "Inspection Report"
	}
	return "Inspection Report: " + h.Address
}
