package inspect2pdf

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/alnah/go-inspect2pdf/internal/mediacache"
)

// mockPDFConverter implements pdfConverter without a browser.
type mockPDFConverter struct {
	mu        sync.Mutex
	calls     int
	inputHTML []byte
	inputOpts *pdfOptions
	output    []byte
	err       error
}

func (m *mockPDFConverter) ToPDF(_ context.Context, htmlContent []byte, opts *pdfOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.inputHTML = htmlContent
	m.inputOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.7 mock"), nil
}

func (m *mockPDFConverter) Close() error { return nil }

func (m *mockPDFConverter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// withPDFConverter injects a PDF backend.
func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}

// countingFetcher serves fixed bodies and counts calls per source.
type countingFetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	calls  map[string]int
}

func newCountingFetcher(bodies map[string][]byte) *countingFetcher {
	return &countingFetcher{bodies: bodies, calls: make(map[string]int)}
}

func (f *countingFetcher) Fetch(_ context.Context, source string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[source]++
	body, ok := f.bodies[source]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return body, nil
}

func (f *countingFetcher) Calls(source string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[source]
}

// pngBytes encodes a w x h opaque image.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// newTestConverter returns a converter whose media comes from f and whose
// PDF backend is pdf.
func newTestConverter(t *testing.T, f mediacache.Fetcher, pdf *mockPDFConverter, opts ...Option) *Converter {
	t.Helper()

	all := append([]Option{
		withPDFConverter(pdf),
		WithMediaCache(mediacache.New(f)),
	}, opts...)
	conv, err := NewConverter(all...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

func section(title string, status Status, comments []Comment, media ...MediaReference) Section {
	return Section{Title: title, Status: status, Comments: comments, Media: media}
}

func imageRef(url string) MediaReference {
	return MediaReference{URL: url, Kind: MediaImage}
}
