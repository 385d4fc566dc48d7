package mediacache

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestBoundedSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		w, h, edge   int
		wantW, wantH int
	}{
		{name: "landscape", w: 4000, h: 3000, edge: 1000, wantW: 1000, wantH: 750},
		{name: "portrait", w: 1000, h: 2000, edge: 500, wantW: 250, wantH: 500},
		{name: "already small", w: 300, h: 200, edge: 1000, wantW: 300, wantH: 200},
		{name: "exact edge", w: 1000, h: 10, edge: 1000, wantW: 1000, wantH: 10},
		{name: "extreme aspect keeps one pixel", w: 10000, h: 1, edge: 100, wantW: 100, wantH: 1},
		{name: "no bound", w: 5000, h: 5000, edge: 0, wantW: 5000, wantH: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotW, gotH := boundedSize(tt.w, tt.h, tt.edge)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("boundedSize(%d, %d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.edge, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestThumbnail_Encoding(t *testing.T) {
	t.Parallel()

	opaque, err := thumbnail(pngBytes(t, 64, 32, color.White), 16)
	if err != nil {
		t.Fatalf("thumbnail(opaque) error = %v", err)
	}
	if opaque.MIME != "image/jpeg" {
		t.Errorf("opaque MIME = %q, want image/jpeg", opaque.MIME)
	}
	if opaque.Width != 16 || opaque.Height != 8 {
		t.Errorf("opaque size = %dx%d, want 16x8", opaque.Width, opaque.Height)
	}

	translucent, err := thumbnail(pngBytes(t, 8, 8, color.NRGBA{A: 100}), 16)
	if err != nil {
		t.Fatalf("thumbnail(translucent) error = %v", err)
	}
	if translucent.MIME != "image/png" {
		t.Errorf("translucent MIME = %q, want image/png", translucent.MIME)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(opaque.Data))
	if err != nil {
		t.Fatalf("thumbnail data does not decode: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 8 {
		t.Errorf("encoded size = %dx%d, want 16x8", cfg.Width, cfg.Height)
	}
}

func TestThumbnail_Deterministic(t *testing.T) {
	t.Parallel()

	raw := pngBytes(t, 120, 90, color.RGBA{R: 10, G: 120, B: 200, A: 255})
	a, err := thumbnail(raw, 50)
	if err != nil {
		t.Fatalf("thumbnail() error = %v", err)
	}
	b, err := thumbnail(raw, 50)
	if err != nil {
		t.Fatalf("thumbnail() error = %v", err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Error("thumbnail output differs between calls")
	}
}

func TestThumbnail_Undecodable(t *testing.T) {
	t.Parallel()

	if _, err := thumbnail([]byte("plain text"), 100); err == nil {
		t.Error("thumbnail(text) should fail")
	}
}
