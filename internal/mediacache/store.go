package mediacache

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Store persists cache entries by key. Implementations must be safe for
// concurrent use. Get returns ErrNotFound for missing keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Clearer is implemented by stores that support explicit invalidation.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Compile-time interface checks.
var (
	_ Store   = (*MemoryStore)(nil)
	_ Clearer = (*MemoryStore)(nil)
	_ Store   = (*DiskStore)(nil)
	_ Clearer = (*DiskStore)(nil)
	_ Store   = (*MinIOStore)(nil)
)

// Key prefixes.
const (
	thumbPrefix = "thumb"
	refPrefix   = "ref"
)

// thumbKey addresses a thumbnail by source content hash and edge bound, so
// changing the configured edge never serves a stale size.
func thumbKey(contentKey string, maxEdge int) string {
	return fmt.Sprintf("%s/%d/%s/%s", thumbPrefix, maxEdge, contentKey[:2], contentKey)
}

// refKey addresses the identity -> content key mapping.
func refKey(identityHash string) string {
	return fmt.Sprintf("%s/%s/%s", refPrefix, identityHash[:2], identityHash)
}

// ValidateKey accepts slash-separated segments of [a-z0-9-].
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidKey, key)
		}
		for _, r := range seg {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
				return fmt.Errorf("%w: %q", ErrInvalidKey, key)
			}
		}
	}
	return nil
}

// MemoryStore keeps entries in memory. Useful for tests and single runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the stored bytes.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of data.
func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Exists reports whether key is stored.
func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[key]
	return ok, nil
}

// Clear drops every entry.
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string][]byte)
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
