package inspect2pdf

import (
	"context"
	"errors"
	"os"
	"testing"
)

// mockRenderer implements closableRenderer for testing.
type mockRenderer struct {
	Result     []byte
	Err        error
	CalledWith string
	CalledOpts *pdfOptions
	FileBody   []byte
	Closed     bool
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.CalledOpts = opts
	m.FileBody, _ = os.ReadFile(filePath)
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.Closed = true
	return nil
}

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mock    *mockRenderer
		wantErr error
	}{
		{
			name: "successful render returns PDF bytes",
			mock: &mockRenderer{Result: []byte("%PDF-1.7 fake")},
		},
		{
			name:    "renderer error propagates",
			mock:    &mockRenderer{Err: ErrPageLoad},
			wantErr: ErrPageLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &rodConverter{renderer: tt.mock}
			html := []byte("<html><body>Report</body></html>")
			opts := &pdfOptions{PageWidth: 595, PageHeight: 842}

			got, err := conv.ToPDF(context.Background(), html, opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if string(got) != string(tt.mock.Result) {
				t.Errorf("ToPDF() = %q, want %q", got, tt.mock.Result)
			}

			if string(tt.mock.FileBody) != string(html) {
				t.Errorf("renderer saw %q, want the HTML", tt.mock.FileBody)
			}
			if tt.mock.CalledOpts != opts {
				t.Error("options not forwarded")
			}
			if _, err := os.Stat(tt.mock.CalledWith); !os.IsNotExist(err) {
				t.Error("temp HTML file should be removed after rendering")
			}
		})
	}
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	m := &mockRenderer{}
	conv := &rodConverter{renderer: m}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !m.Closed {
		t.Error("Close() should close the renderer")
	}
	if err := (&rodConverter{}).Close(); err != nil {
		t.Errorf("Close() without renderer = %v, want nil", err)
	}
}

func TestRodRenderer_CancelledBeforeLaunch(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.RenderFromFile(ctx, "/nonexistent.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("no browser should be launched for a cancelled context")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unused renderer = %v", err)
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  *pdfOptions
		wantW float64
		wantH float64
	}{
		{name: "nil uses letter", opts: nil, wantW: 8.5, wantH: 11},
		{name: "letter", opts: &pdfOptions{PageWidth: 612, PageHeight: 792}, wantW: 8.5, wantH: 11},
		{name: "A4", opts: &pdfOptions{PageWidth: 595.5, PageHeight: 842.25}, wantW: 595.5 / 72, wantH: 842.25 / 72},
		{name: "zero falls back", opts: &pdfOptions{}, wantW: 8.5, wantH: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPDFOptions(tt.opts)
			if *got.PaperWidth != tt.wantW || *got.PaperHeight != tt.wantH {
				t.Errorf("paper = %gx%g, want %gx%g", *got.PaperWidth, *got.PaperHeight, tt.wantW, tt.wantH)
			}
			for name, m := range map[string]*float64{"top": got.MarginTop, "bottom": got.MarginBottom, "left": got.MarginLeft, "right": got.MarginRight} {
				if m == nil || *m != 0 {
					t.Errorf("margin %s = %v, want 0", name, m)
				}
			}
			if !got.PrintBackground {
				t.Error("PrintBackground should be set for template art")
			}
		})
	}
}
