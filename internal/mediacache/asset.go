// Package mediacache resolves media references to thumbnailed images,
// fetching and decoding each identity at most once and persisting the
// results in a content-addressed store.
package mediacache

// Asset is a decoded, thumbnailed image. Assets are shared between callers
// and must not be modified.
type Asset struct {
	Key    string // sha256 of the raw source bytes, hex encoded
	MIME   string // "image/jpeg" or "image/png"
	Data   []byte // encoded thumbnail
	Width  int    // thumbnail size in pixels
	Height int
}
