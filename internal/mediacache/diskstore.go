package mediacache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/alnah/go-inspect2pdf/internal/fileutil"
)

const (
	lockFileName   = ".lock"
	lockRetryDelay = 50 * time.Millisecond
	filePerm       = 0o640
)

// DiskStore persists entries as files under a root directory. Writes are
// atomic, so a concurrent reader sees either nothing or a complete entry.
// The store is append-only; only Clear takes a file lock, so two processes
// clearing the same directory do not interleave.
type DiskStore struct {
	root string
	mu   sync.RWMutex
	lock *flock.Flock
}

// NewDiskStore creates root if needed and returns a store over it.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, errors.New("disk store requires a directory")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &DiskStore{
		root: root,
		lock: flock.New(filepath.Join(root, lockFileName)),
	}, nil
}

// Root returns the store directory.
func (d *DiskStore) Root() string { return d.root }

func (d *DiskStore) path(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(key))
}

// Get reads an entry.
func (d *DiskStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, err := os.ReadFile(d.path(key)) // #nosec G304 -- key validated
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Put writes an entry atomically.
func (d *DiskStore) Put(_ context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := fileutil.AtomicWriteFile(d.path(key), data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key is stored.
func (d *DiskStore) Exists(_ context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, err := os.Stat(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every entry, keeping the root and its lock file.
func (d *DiskStore) Clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ok, err := d.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquiring cache lock: %w", err)
	}
	if !ok {
		return errors.New("cache lock unavailable")
	}
	defer func() { _ = d.lock.Unlock() }()

	for _, dir := range []string{thumbPrefix, refPrefix} {
		if err := os.RemoveAll(filepath.Join(d.root, dir)); err != nil {
			return fmt.Errorf("clearing %s: %w", dir, err)
		}
	}
	return nil
}
