package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	inspect2pdf "github.com/alnah/go-inspect2pdf"
	"github.com/alnah/go-inspect2pdf/internal/config"
)

// mockConverter records calls and writes a fixed body to the output path.
type mockConverter struct {
	mu     sync.Mutex
	inputs []inspect2pdf.Input
	paths  []string
	result *inspect2pdf.ConvertResult
	err    error
}

func (m *mockConverter) ConvertToFile(_ context.Context, input inspect2pdf.Input, path string) (*inspect2pdf.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	res := m.result
	if res == nil {
		res = &inspect2pdf.ConvertResult{HTML: []byte("<html></html>"), PDF: []byte("%PDF-1.7 mock"), Pages: 1}
	}
	if err := os.WriteFile(path, res.PDF, filePermissions); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *mockConverter) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// mockPool hands out one shared mockConverter.
type mockPool struct {
	conv       Converter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func newMockPool(conv Converter, size int) *mockPool {
	return &mockPool{conv: conv, size: size}
}

func (p *mockPool) Acquire() (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *mockPool) Release(Converter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// testEnv captures output and injects pool.
func testEnv(t *testing.T, pool Pool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cacheDir := t.TempDir()
	env := &Environment{
		Now:      func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
		Stdout:   &stdout,
		Stderr:   &stderr,
		Config:   config.DefaultConfig(),
		CacheDir: func() (string, error) { return cacheDir, nil },
		NewPool:  DefaultEnv().NewPool,
	}
	if pool != nil {
		env.NewPool = func(int, ...inspect2pdf.Option) Pool { return pool }
	}
	return env, &stdout, &stderr
}

const recordJSON = `{
  "header": {"address": "12 Elm St", "client": "J. Doe", "inspector": "A. Smith", "date": "2026-03-14"},
  "sections": [
    {"title": "Roof", "status": "inspected", "comments": [{"text": "Shingles worn near ridge.", "severity": "defect"}]},
    {"title": "Attic", "status": "ni"}
  ]
}`

// writeRecord writes a record file into dir and returns its path.
func writeRecord(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return path
}

// writePNG writes a w×h opaque PNG into dir.
func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write png: %v", err)
	}
}
