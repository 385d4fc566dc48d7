package mediacache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-inspect2pdf/internal/fileutil"
)

// Fetcher retrieves the raw bytes behind a media identity.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, source string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, source string) ([]byte, error) {
	return f(ctx, source)
}

// Fetch defaults.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultMaxBytes     = 50 << 20
	defaultUserAgent    = "inspect2pdf/1"
)

var errTooLarge = errors.New("source exceeds size limit")

// HTTPFetcher downloads http and https sources.
type HTTPFetcher struct {
	Client    *http.Client
	Timeout   time.Duration // per request; zero means DefaultFetchTimeout
	MaxBytes  int64         // zero means DefaultMaxBytes
	UserAgent string
}

// Fetch performs a GET and fails on any non-2xx status.
func (h *HTTPFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	ua := h.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return readLimited(resp.Body, h.MaxBytes)
}

// FileFetcher reads local paths and file:// URLs.
type FileFetcher struct {
	BaseDir  string // resolves relative paths; empty means working directory
	MaxBytes int64
}

// Fetch reads the file.
func (f *FileFetcher) Fetch(_ context.Context, source string) ([]byte, error) {
	p := source
	if strings.HasPrefix(strings.ToLower(p), "file://") {
		u, err := url.Parse(p)
		if err != nil {
			return nil, err
		}
		p = u.Path
	}
	if !filepath.IsAbs(p) && f.BaseDir != "" {
		p = filepath.Join(f.BaseDir, p)
	}
	file, err := os.Open(filepath.Clean(p))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return readLimited(file, f.MaxBytes)
}

// DataURIFetcher decodes inline data: URIs.
type DataURIFetcher struct{}

// Fetch decodes the payload. Only base64 and percent-encoded payloads are
// supported.
func (DataURIFetcher) Fetch(_ context.Context, source string) ([]byte, error) {
	if !fileutil.IsDataURI(source) {
		return nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(source[len("data:"):], ",")
	if !ok {
		return nil, errors.New("malformed data URI: missing comma")
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URI: %w", err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(data), nil
}

// Router dispatches to a fetcher by source scheme.
type Router struct {
	HTTP Fetcher
	File Fetcher
	Data Fetcher
}

// NewRouter returns a Router with default fetchers.
func NewRouter(client *http.Client, timeout time.Duration, baseDir string) *Router {
	return &Router{
		HTTP: &HTTPFetcher{Client: client, Timeout: timeout},
		File: &FileFetcher{BaseDir: baseDir},
		Data: DataURIFetcher{},
	}
}

// Fetch picks the fetcher for source.
func (r *Router) Fetch(ctx context.Context, source string) ([]byte, error) {
	var f Fetcher
	switch {
	case fileutil.IsURL(source):
		f = r.HTTP
	case fileutil.IsDataURI(source):
		f = r.Data
	default:
		f = r.File
	}
	if f == nil {
		return nil, fmt.Errorf("no fetcher for %q", source)
	}
	return f.Fetch(ctx, source)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errTooLarge
	}
	return data, nil
}
