package mediacache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"

	"github.com/alnah/go-inspect2pdf/internal/logging"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

var errEmptyIdentity = errors.New("media reference has no identity")

// Option configures a Cache.
type Option func(*Cache)

// WithStore sets the persistent store. Defaults to a MemoryStore.
func WithStore(s Store) Option {
	return func(c *Cache) {
		if s != nil {
			c.store = s
		}
	}
}

// WithMaxEdge bounds the longest thumbnail edge in pixels.
func WithMaxEdge(px int) Option {
	return func(c *Cache) {
		if px > 0 {
			c.maxEdge = px
		}
	}
}

// WithFetchTimeout bounds the shared work for one identity. Zero leaves the
// bound to the fetcher.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Cache) {
		c.logger = logging.Component(l, "mediacache")
	}
}

// Stats counts cache work since creation or the last Clear.
type Stats struct {
	Fetches int64 // fetcher calls
	Decodes int64 // thumbnails built from raw bytes
	Hits    int64 // resolutions served from memory or the store
}

type result struct {
	asset *Asset
	err   error
}

// Cache resolves media references to thumbnails. Each identity is fetched
// at most once and each distinct content is decoded at most once for the
// lifetime of the cache; failures are remembered the same way.
// Safe for concurrent use.
type Cache struct {
	fetcher      Fetcher
	store        Store
	maxEdge      int
	fetchTimeout time.Duration
	logger       logging.Logger

	byIdentityFlight singleflight.Group
	byKeyFlight      singleflight.Group

	mu         sync.Mutex
	byIdentity map[string]result
	byKey      map[string]result

	fetches atomic.Int64
	decodes atomic.Int64
	hits    atomic.Int64
}

// New creates a cache that fetches through f.
func New(f Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:    f,
		store:      NewMemoryStore(),
		maxEdge:    DefaultMaxEdge,
		logger:     logging.Nop(),
		byIdentity: make(map[string]result),
		byKey:      make(map[string]result),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxEdge returns the configured thumbnail bound.
func (c *Cache) MaxEdge() int { return c.maxEdge }

// Resolve returns the thumbnail for ref. Failures are *FetchError or
// *DecodeError and are never fatal to the caller's run.
//
// The work for an identity is shared by every concurrent caller and is not
// tied to any caller's context: a caller whose ctx ends gets ctx.Err() while
// the work completes and is remembered for the others.
func (c *Cache) Resolve(ctx context.Context, ref record.MediaReference) (*Asset, error) {
	id := ref.Identity()
	if id == "" {
		return nil, &FetchError{Identity: id, Err: errEmptyIdentity}
	}
	if r, ok := c.lookupIdentity(id); ok {
		c.hits.Add(1)
		return r.asset, r.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := c.byIdentityFlight.DoChan(id, func() (any, error) {
		if r, ok := c.lookupIdentity(id); ok {
			return r, nil
		}
		wctx := context.WithoutCancel(ctx)
		if c.fetchTimeout > 0 {
			var cancel context.CancelFunc
			wctx, cancel = context.WithTimeout(wctx, c.fetchTimeout)
			defer cancel()
		}
		a, err := c.resolve(wctx, id)
		r := result{asset: a, err: err}
		c.mu.Lock()
		c.byIdentity[id] = r
		c.mu.Unlock()
		return r, nil
	})

	select {
	case res := <-ch:
		r := res.Val.(result)
		return r.asset, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) lookupIdentity(id string) (result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.byIdentity[id]
	return r, ok
}

func (c *Cache) resolve(ctx context.Context, id string) (*Asset, error) {
	log := c.logger.With().Str(logging.FieldIdentity, id).Logger()
	idHash := hashHex([]byte(id))

	if a := c.fromStoredRef(ctx, idHash); a != nil {
		c.hits.Add(1)
		log.Debug().Str(logging.FieldKey, a.Key).Msg("media served from store")
		return a, nil
	}

	raw, err := c.fetcher.Fetch(ctx, id)
	c.fetches.Add(1)
	if err != nil {
		log.Warn().Err(err).Msg("media fetch failed")
		return nil, &FetchError{Identity: id, Err: err}
	}

	key := hashHex(raw)
	log.Debug().Str(logging.FieldKey, key).Str("size", humanize.Bytes(uint64(len(raw)))).Msg("media fetched")

	a, err := c.byContent(ctx, key, raw)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			log.Warn().Err(de.Err).Str(logging.FieldKey, key).Msg("media decode failed")
			return nil, &DecodeError{Identity: id, Key: key, Err: de.Err}
		}
		return nil, err
	}

	if err := c.store.Put(ctx, refKey(idHash), []byte(key)); err != nil {
		log.Warn().Err(err).Msg("persisting media reference failed")
	}
	return a, nil
}

// fromStoredRef returns a persisted thumbnail for the identity hash, or nil.
func (c *Cache) fromStoredRef(ctx context.Context, idHash string) *Asset {
	keyBytes, err := c.store.Get(ctx, refKey(idHash))
	if err != nil {
		return nil
	}
	key := string(keyBytes)
	if ValidateKey(key) != nil || len(key) != sha256.Size*2 {
		return nil
	}
	c.mu.Lock()
	r, ok := c.byKey[key]
	c.mu.Unlock()
	if ok {
		return r.asset
	}
	data, err := c.store.Get(ctx, thumbKey(key, c.maxEdge))
	if err != nil {
		return nil
	}
	a, err := decodeAsset(key, data)
	if err != nil {
		return nil
	}
	c.remember(key, result{asset: a})
	return a
}

// byContent returns the thumbnail for a content key, loading it from the
// store or building it from raw.
func (c *Cache) byContent(ctx context.Context, key string, raw []byte) (*Asset, error) {
	c.mu.Lock()
	r, ok := c.byKey[key]
	c.mu.Unlock()
	if ok {
		return r.asset, r.err
	}

	v, err, _ := c.byKeyFlight.Do(key, func() (any, error) {
		if data, err := c.store.Get(ctx, thumbKey(key, c.maxEdge)); err == nil {
			if a, err := decodeAsset(key, data); err == nil {
				c.remember(key, result{asset: a})
				return a, nil
			}
		}
		a, err := thumbnail(raw, c.maxEdge)
		c.decodes.Add(1)
		if err != nil {
			de := &DecodeError{Key: key, Err: err}
			c.remember(key, result{err: de})
			return nil, de
		}
		a.Key = key
		if err := c.store.Put(ctx, thumbKey(key, c.maxEdge), a.Data); err != nil {
			c.logger.Warn().Err(err).Str(logging.FieldKey, key).Msg("persisting thumbnail failed")
		}
		c.logger.Debug().
			Str(logging.FieldKey, key).
			Str("thumbnail", humanize.Bytes(uint64(len(a.Data)))).
			Int("width", a.Width).Int("height", a.Height).
			Msg("thumbnail built")
		c.remember(key, result{asset: a})
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Asset), nil
}

func (c *Cache) remember(key string, r result) {
	c.mu.Lock()
	c.byKey[key] = r
	c.mu.Unlock()
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Fetches: c.fetches.Load(),
		Decodes: c.decodes.Load(),
		Hits:    c.hits.Load(),
	}
}

// Clear drops every remembered result and clears the store when it
// supports clearing.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.byIdentity = make(map[string]result)
	c.byKey = make(map[string]result)
	c.mu.Unlock()

	c.fetches.Store(0)
	c.decodes.Store(0)
	c.hits.Store(0)

	if cl, ok := c.store.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

func hashHex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
