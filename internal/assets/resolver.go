package assets

import "errors"

// Resolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadTemplate loads a template, trying the custom loader first.
func (r *Resolver) LoadTemplate(name string) (*Template, error) {
	return loadWithFallback(r, func(l Loader) (*Template, error) { return l.LoadTemplate(name) })
}

// LoadTheme loads a theme, trying the custom loader first.
func (r *Resolver) LoadTheme(name string) (*Theme, error) {
	return loadWithFallback(r, func(l Loader) (*Theme, error) { return l.LoadTheme(name) })
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// loadWithFallback only falls back on not-found errors; validation and
// I/O errors from the custom loader are returned as-is.
func loadWithFallback[T any](r *Resolver, load func(Loader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}
	v, err := load(r.custom)
	if err == nil || !isNotFoundError(err) {
		return v, err
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrThemeNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
