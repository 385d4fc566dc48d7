package inspect2pdf

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alnah/go-inspect2pdf/internal/logging"
	"github.com/alnah/go-inspect2pdf/internal/mediacache"
)

// MediaCache resolves media references to thumbnails, fetching each unique
// URL at most once per cache lifetime. Safe for concurrent use.
type MediaCache = mediacache.Cache

// MediaStats reports cache activity.
type MediaStats = mediacache.Stats

// Store kinds for MediaConfig.Store.
const (
	StoreMemory = "memory"
	StoreDisk   = "disk"
	StoreS3     = "s3"
)

// MediaConfig configures NewMediaCache.
type MediaConfig struct {
	MaxThumbnailEdge int           // pixels; 0 uses the default
	FetchTimeout     time.Duration // per HTTP fetch; 0 uses the default
	BaseDir          string        // resolves relative file references
	Store            string        // StoreMemory (default), StoreDisk or StoreS3
	CacheDir         string        // StoreDisk root
	S3               S3Config
	Logger           *logging.Logger // nil disables logging
}

// S3Config locates an S3-compatible bucket for StoreS3.
type S3Config = mediacache.S3Config

// NewMediaCache builds a cache with an HTTP, file and data URI fetcher and
// the configured thumbnail store.
func NewMediaCache(ctx context.Context, cfg MediaConfig) (*MediaCache, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts := []mediacache.Option{mediacache.WithStore(store)}
	if cfg.Logger != nil {
		opts = append(opts, mediacache.WithLogger(*cfg.Logger))
	}
	if cfg.MaxThumbnailEdge > 0 {
		opts = append(opts, mediacache.WithMaxEdge(cfg.MaxThumbnailEdge))
	}
	if cfg.FetchTimeout > 0 {
		opts = append(opts, mediacache.WithFetchTimeout(cfg.FetchTimeout))
	}
	fetcher := mediacache.NewRouter(http.DefaultClient, cfg.FetchTimeout, cfg.BaseDir)
	return mediacache.New(fetcher, opts...), nil
}

func newStore(ctx context.Context, cfg MediaConfig) (mediacache.Store, error) {
	switch cfg.Store {
	case "", StoreMemory:
		return mediacache.NewMemoryStore(), nil
	case StoreDisk:
		return mediacache.NewDiskStore(cfg.CacheDir)
	case StoreS3:
		return mediacache.NewMinIOStore(ctx, cfg.S3)
	}
	return nil, fmt.Errorf("unknown media store %q", cfg.Store)
}
