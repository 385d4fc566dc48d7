package assets

import (
	"errors"
	"testing"

	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/fonts"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := NewEmbeddedLoader().LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if tmpl.PageWidth != 612 || tmpl.PageHeight != 792 {
		t.Errorf("page = %gx%g, want 612x792", tmpl.PageWidth, tmpl.PageHeight)
	}
	for _, role := range RoleNames {
		r := tmpl.Role(role)
		if r.Content.Width < 468 || r.Content.Height < 576 {
			t.Errorf("%s content area %+v is smaller than 468x576", role, r.Content)
		}
		if r.Header == nil || r.Footer == nil {
			t.Errorf("%s role should have header and footer bands", role)
		}
	}

	got, err := tmpl.Cover.Header.Execute(record.Header{Address: "12 Elm St"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "Report Identification: 12 Elm St" {
		t.Errorf("cover header = %q", got)
	}

	label, err := tmpl.PageLabelFor(3, 7)
	if err != nil {
		t.Fatalf("PageLabelFor() error = %v", err)
	}
	if label != "Page 3 of 7" {
		t.Errorf("PageLabelFor(3, 7) = %q", label)
	}
}

func TestEmbeddedLoader_LoadTheme(t *testing.T) {
	t.Parallel()

	for _, name := range []string{DefaultThemeName, "monochrome"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			th, err := NewEmbeddedLoader().LoadTheme(name)
			if err != nil {
				t.Fatalf("LoadTheme(%q) error = %v", name, err)
			}
			for _, s := range record.Statuses {
				if th.Status(s).Glyph == "" {
					t.Errorf("status %s has no glyph", s)
				}
			}
			if th.Image.Width != 252 || th.Image.Height != 180 {
				t.Errorf("image box = %+v, want 252x180", th.Image)
			}
			if f := th.StyleFor(content.KindText, record.StatusInspected).Font; f.LineHeight < f.Size {
				t.Errorf("text line height %g below size %g", f.LineHeight, f.Size)
			}
		})
	}
}

func TestEmbeddedLoader_Errors(t *testing.T) {
	t.Parallel()

	l := NewEmbeddedLoader()
	tests := []struct {
		name    string
		load    func() error
		wantErr error
	}{
		{
			name:    "missing template",
			load:    func() error { _, err := l.LoadTemplate("nonexistent"); return err },
			wantErr: ErrTemplateNotFound,
		},
		{
			name:    "missing theme",
			load:    func() error { _, err := l.LoadTheme("nonexistent"); return err },
			wantErr: ErrThemeNotFound,
		},
		{
			name:    "traversal in template name",
			load:    func() error { _, err := l.LoadTemplate("../themes"); return err },
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "dot in theme name",
			load:    func() error { _, err := l.LoadTheme("default.yaml"); return err },
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.load(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTheme_StyleFor(t *testing.T) {
	t.Parallel()

	th, err := NewEmbeddedLoader().LoadTheme(DefaultThemeName)
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}

	tests := []struct {
		name       string
		kind       content.Kind
		status     record.Status
		wantFamily fonts.Family
		wantColor  string
		wantIndent float64
	}{
		{name: "legend inspected", kind: content.KindLegend, status: record.StatusInspected, wantFamily: fonts.Bold, wantColor: "#1f2d3d"},
		{name: "legend deficient uses title color", kind: content.KindLegend, status: record.StatusDeficient, wantFamily: fonts.Bold, wantColor: "#c62828"},
		{name: "text indented", kind: content.KindText, status: record.StatusDeficient, wantFamily: fonts.Regular, wantColor: "#222222", wantIndent: 12},
		{name: "checkbox", kind: content.KindCheckbox, status: record.StatusNotPresent, wantFamily: fonts.Regular, wantColor: "#333333"},
		{name: "image caption", kind: content.KindImage, status: record.StatusInspected, wantFamily: fonts.Italic, wantColor: "#666666"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := th.StyleFor(tt.kind, tt.status)
			if got.Font.Family != tt.wantFamily {
				t.Errorf("family = %q, want %q", got.Font.Family, tt.wantFamily)
			}
			if got.Font.Color != tt.wantColor {
				t.Errorf("color = %q, want %q", got.Font.Color, tt.wantColor)
			}
			if got.Indent != tt.wantIndent {
				t.Errorf("indent = %g, want %g", got.Indent, tt.wantIndent)
			}
			if again := th.StyleFor(tt.kind, tt.status); again != got {
				t.Errorf("StyleFor is not stable: %+v then %+v", got, again)
			}
		})
	}
}

func TestTheme_Severity(t *testing.T) {
	t.Parallel()

	th, err := NewEmbeddedLoader().LoadTheme(DefaultThemeName)
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if m := th.Severity(record.SeverityNone); m.Marker != "" {
		t.Errorf("SeverityNone marker = %q, want empty", m.Marker)
	}
	want := map[record.Severity]string{
		record.SeverityDefect: "■",
		record.SeverityLimit:  "▲",
		record.SeverityInfo:   "●",
	}
	for sev, marker := range want {
		if got := th.Severity(sev).Marker; got != marker {
			t.Errorf("Severity(%s).Marker = %q, want %q", sev, got, marker)
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	t.Parallel()

	templates := BuiltinTemplates()
	if len(templates) != 1 || templates[0] != "standard" {
		t.Errorf("BuiltinTemplates() = %v, want [standard]", templates)
	}

	themes := BuiltinThemes()
	want := []string{"default", "monochrome"}
	if len(themes) != len(want) {
		t.Fatalf("BuiltinThemes() = %v, want %v", themes, want)
	}
	for i := range want {
		if themes[i] != want[i] {
			t.Errorf("BuiltinThemes()[%d] = %q, want %q", i, themes[i], want[i])
		}
	}
}
