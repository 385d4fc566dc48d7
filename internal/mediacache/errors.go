package mediacache

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrFetch      = errors.New("media fetch failed")
	ErrDecode     = errors.New("media decode failed")
	ErrNotFound   = errors.New("store key not found")
	ErrInvalidKey = errors.New("invalid store key")
)

// FetchError reports an unreachable media source. It is never fatal to a
// run: the renderer substitutes a placeholder.
type FetchError struct {
	Identity string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrFetch, e.Identity, e.Err)
}

// Unwrap returns both the sentinel and the cause.
func (e *FetchError) Unwrap() []error { return []error{ErrFetch, e.Err} }

// DecodeError reports bytes that are not a decodable image.
type DecodeError struct {
	Identity string
	Key      string // content key of the raw bytes
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrDecode, e.Identity, e.Err)
}

// Unwrap returns both the sentinel and the cause.
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }
