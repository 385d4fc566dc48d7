package mediacache

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// Thumbnail defaults.
const (
	DefaultMaxEdge = 1024
	maxPixels      = 80_000_000
	jpegQuality    = 85
)

// thumbnail decodes raw and scales it so neither side exceeds maxEdge.
// Small images are re-encoded at their own size. Opaque images are encoded
// as JPEG, the rest as PNG. Encoding is deterministic for a given input.
func thumbnail(raw []byte, maxEdge int) (*Asset, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("image %dx%d exceeds pixel limit", cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	w, h := boundedSize(cfg.Width, cfg.Height, maxEdge)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == src.Bounds().Dx() && h == src.Bounds().Dy() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	var buf bytes.Buffer
	mime := "image/png"
	if dst.Opaque() {
		mime = "image/jpeg"
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	} else {
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return &Asset{MIME: mime, Data: buf.Bytes(), Width: w, Height: h}, nil
}

// boundedSize scales (w, h) down so the longer side equals maxEdge. It
// never scales up.
func boundedSize(w, h, maxEdge int) (int, int) {
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return w, h
	}
	if w >= h {
		nh := h * maxEdge / w
		return maxEdge, max(nh, 1)
	}
	nw := w * maxEdge / h
	return max(nw, 1), maxEdge
}

// decodeAsset rebuilds an Asset from stored thumbnail bytes.
func decodeAsset(key string, data []byte) (*Asset, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	mime := "image/png"
	if format == "jpeg" {
		mime = "image/jpeg"
	}
	return &Asset{Key: key, MIME: mime, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}
