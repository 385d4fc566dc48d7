package mediacache

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
)

// pngBytes encodes a w x h image filled with c.
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// mockFetcher serves fixed bodies by source and counts calls.
type mockFetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	calls  map[string]int
	gate   chan struct{} // when set, Fetch blocks until closed
}

func newMockFetcher(bodies map[string][]byte) *mockFetcher {
	return &mockFetcher{bodies: bodies, calls: make(map[string]int)}
}

func (m *mockFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	m.mu.Lock()
	m.calls[source]++
	gate := m.gate
	body, ok := m.bodies[source]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, errors.New("connection refused")
	}
	return body, nil
}

func (m *mockFetcher) Calls(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[source]
}
