package inspect2pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-inspect2pdf/internal/assemble"
	"github.com/alnah/go-inspect2pdf/internal/assets"
	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/fileutil"
	"github.com/alnah/go-inspect2pdf/internal/layout"
)

// checkMark is drawn inside the checked status box.
const checkMark = "X"

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.Style}}</style>
</head>
<body>
{{- range .Pages}}
<div class="page page-{{.Role}}" style="{{.Style}}">
{{- with .Header}}
<div class="band band-header" style="{{.Style}}">{{.Text}}{{if .StatusKey}}<div class="status-key">{{.StatusKey}}</div>{{end}}{{if .Label}}<div class="page-label">{{.Label}}</div>{{end}}</div>
{{- end}}
<div class="content" style="{{.ContentStyle}}">
{{- range .Items}}
{{- if eq .Kind "lines"}}
<div class="unit unit-{{.Class}}" style="{{.Style}}">
{{- if .Marker}}<span class="gutter" style="{{.MarkerStyle}}">{{.Marker}}</span>{{end -}}
<div class="lines" style="{{.LinesStyle}}">{{.Text}}{{if .Suffix}} <span class="continued" style="{{.SuffixStyle}}">{{.Suffix}}</span>{{end}}</div></div>
{{- else if eq .Kind "checkbox"}}
<div class="unit checkbox" style="{{.Style}}">
{{- range .Boxes}}<span class="box" style="{{.Style}}">{{if .Checked}}{{$.CheckMark}}{{end}}</span><span class="box-label" style="{{.LabelStyle}}">{{.Label}}</span>{{end -}}
</div>
{{- else if eq .Kind "image"}}
{{- if .Video}}
<a class="unit video" style="{{.Style}}" href="{{.Href}}"><img src="{{.Src}}" width="100%" height="100%" alt="{{.Text}}"><span class="badge" style="{{.MarkerStyle}}">{{.Marker}}</span></a>
{{- else if .Href}}
<a class="unit photo" style="{{.Style}}" href="{{.Href}}"><img class="image" src="{{.Src}}" width="100%" height="100%" alt="{{.Text}}"></a>
{{- else}}
<img class="unit image" style="{{.Style}}" src="{{.Src}}" alt="{{.Text}}">
{{- end}}
{{- else if eq .Kind "frame"}}
<a class="unit frame" style="{{.Style}}" href="{{.Href}}"><span class="badge" style="{{.MarkerStyle}}">{{.Marker}} {{.Text}}</span></a>
{{- else}}
<div class="unit placeholder" style="{{.Style}}">{{.Text}}</div>
{{- end}}
{{- end}}
</div>
{{- with .Footer}}
<div class="band band-footer" style="{{.Style}}">{{.Text}}{{if .StatusKey}}<div class="status-key">{{.StatusKey}}</div>{{end}}{{if .Label}}<div class="page-label">{{.Label}}</div>{{end}}</div>
{{- end}}
</div>
{{- end}}
</body>
</html>
`

type docView struct {
	Title     string
	Style     template.CSS
	CheckMark string
	Pages     []pageView
}

type pageView struct {
	Role         string
	Style        template.CSS
	ContentStyle template.CSS
	Header       *bandView
	Footer       *bandView
	Items        []itemView
}

type bandView struct {
	Style     template.CSS
	Text      string
	Label     string
	StatusKey string
}

type itemView struct {
	Kind        string // lines, checkbox, image, frame or placeholder
	Class       string
	Style       template.CSS
	Text        string
	Marker      string
	MarkerStyle template.CSS
	LinesStyle  template.CSS
	Suffix      string
	SuffixStyle template.CSS
	Boxes       []boxView
	Src         template.URL
	Href        string
	Video       bool
}

type boxView struct {
	Style      template.CSS
	LabelStyle template.CSS
	Label      string
	Checked    bool
}

// htmlBuilder turns an assembled document into a self-contained HTML page
// set: fonts and thumbnails are inlined, every unit is absolutely placed.
type htmlBuilder struct {
	theme   *assets.Theme
	tmpl    *template.Template
	fontCSS string
}

func newHTMLBuilder(theme *assets.Theme) (*htmlBuilder, error) {
	tmpl, err := template.New("document").Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLGeneration, err)
	}
	return &htmlBuilder{theme: theme, tmpl: tmpl, fontCSS: buildFontFaceCSS()}, nil
}

// Build renders doc.
func (b *htmlBuilder) Build(doc *assemble.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrHTMLGeneration)
	}
	first := doc.Pages[0]
	view := docView{
		Title: doc.Title,
		// #nosec G203 -- built from numbers, sanitized colors and base64 fonts
		Style:     template.CSS(b.fontCSS + buildPageCSS(first.Width, first.Height)),
		CheckMark: checkMark,
		Pages:     make([]pageView, 0, len(doc.Pages)),
	}
	for _, p := range doc.Pages {
		view.Pages = append(view.Pages, b.page(p))
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLGeneration, err)
	}
	return buf.Bytes(), nil
}

func (b *htmlBuilder) page(p assemble.Page) pageView {
	pv := pageView{
		Role:         string(p.Role),
		Style:        css(backgroundCSS(p.Background, p.Art, p.ArtMIME)),
		ContentStyle: css(rectCSS(p.Content.X, p.Content.Y, p.Content.Width, p.Content.Height)),
		Header:       band(p.Header),
		Footer:       band(p.Footer),
		Items:        make([]itemView, 0, len(p.Placements)),
	}
	for _, pl := range p.Placements {
		pv.Items = append(pv.Items, b.item(pl))
	}
	return pv
}

func band(bd *assemble.Band) *bandView {
	if bd == nil {
		return nil
	}
	return &bandView{
		Style:     css(bandCSS(bd.Rect, bd.Align, bd.Rule, bd.Font)),
		Text:      bd.Text,
		Label:     bd.PageLabel,
		StatusKey: bd.StatusKey,
	}
}

func (b *htmlBuilder) item(pl layout.Placement) itemView {
	box := rectCSS(pl.X, pl.Y, pl.Width, pl.Height)
	switch u := pl.Unit.(type) {
	case content.LegendBlock:
		v := b.lines(pl, box, u.Style.Font, u.Glyph, u.GlyphColor)
		v.Class = "legend"
		if pl.Continued {
			v.Suffix = b.theme.Continuation
			v.SuffixStyle = css(fontCSS(b.theme.Fonts.Caption.Font()))
		}
		return v
	case content.TextBlock:
		marker := u.Marker
		if pl.Continued {
			marker = ""
		}
		v := b.lines(pl, box, u.Style.Font, marker, u.MarkerColor)
		v.Class = "text"
		if pl.Continues {
			// Drawn on the line the layout keeps free below the fragment.
			v.Suffix = b.theme.Continuation
			v.SuffixStyle = css(fmt.Sprintf("display: block; line-height: %s; %s",
				pt(pl.LineHeight), fontCSS(b.theme.Fonts.Caption.Font())))
		}
		return v
	case content.CheckboxGlyph:
		return b.checkbox(box, u)
	case content.ImageBlock:
		return b.image(box, u)
	}
	return itemView{Kind: "placeholder", Style: css(box)}
}

func (b *htmlBuilder) lines(pl layout.Placement, box string, f content.Font, marker, markerColor string) itemView {
	v := itemView{
		Kind:       "lines",
		Style:      css(box + " " + fontCSS(f)),
		Text:       strings.Join(pl.Lines, "\n"),
		LinesStyle: css(fmt.Sprintf("left: %s; top: 0;", pt(pl.Gutter))),
	}
	if marker != "" {
		v.Marker = marker
		v.MarkerStyle = css("color: " + safeColor(markerColor, safeColor(f.Color, fallbackColor)) + ";")
	}
	return v
}

func (b *htmlBuilder) checkbox(box string, u content.CheckboxGlyph) itemView {
	f := u.Style.Font
	v := itemView{Kind: "checkbox", Style: css(box + " " + fontCSS(f))}
	boxStyle := fmt.Sprintf("width: %s; height: %s; line-height: %s; font-size: %s;",
		pt(u.BoxSize), pt(u.BoxSize), pt(u.BoxSize), pt(u.BoxSize*0.8))
	labelStyle := fmt.Sprintf("margin-left: %s; margin-right: %s;", pt(u.BoxSize/3), pt(u.Gap))
	for i, label := range u.Labels {
		v.Boxes = append(v.Boxes, boxView{
			Style:      css(boxStyle),
			LabelStyle: css(labelStyle),
			Label:      label,
			Checked:    i == u.Checked,
		})
	}
	return v
}

func (b *htmlBuilder) image(box string, u content.ImageBlock) itemView {
	caption := b.theme.Fonts.Caption.Font()
	badge := css(fmt.Sprintf("font-size: %s;", pt(max(caption.Size*2, 12))))
	switch {
	case u.Placeholder:
		return itemView{
			Kind:  "placeholder",
			Style: css(box + " " + fontCSS(caption) + " color: " + safeColor(b.theme.PlaceholderColor, "#999999") + ";"),
			Text:  b.theme.PlaceholderLabel,
		}
	case u.Asset == nil:
		return itemView{
			Kind: "frame", Style: css(box + " " + fontCSS(caption)),
			Href: u.Ref.URL, Marker: b.theme.VideoBadge, MarkerStyle: badge, Text: b.theme.VideoLabel,
		}
	}
	v := itemView{
		Kind:  "image",
		Style: css(box),
		// #nosec G203 -- data URI built from cached thumbnail bytes
		Src:  template.URL(dataURI(u.Asset.MIME, u.Asset.Data)),
		Text: u.Ref.URL,
	}
	switch {
	case u.Video():
		v.Video = true
		v.Href = u.Ref.URL
		v.Marker = b.theme.VideoBadge
		v.MarkerStyle = badge
	case fileutil.IsURL(u.Ref.URL):
		// Photos link to the full-size original.
		v.Href = u.Ref.URL
	}
	return v
}

// css marks generated style text as safe. Callers only pass text built
// from numbers, sanitized colors and known font names.
func css(s string) template.CSS {
	return template.CSS(s) // #nosec G203 -- see above
}
