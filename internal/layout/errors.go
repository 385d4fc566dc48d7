package layout

import (
	"errors"
	"fmt"

	"github.com/alnah/go-inspect2pdf/internal/content"
)

// Sentinel errors.
var (
	ErrOverflow        = errors.New("layout overflow")
	ErrFinalized       = errors.New("canvas is finalized")
	ErrInvalidGeometry = errors.New("invalid page geometry")
)

// OverflowError reports a unit that cannot be placed on any page. It means
// the theme and geometry disagree, not that the input is bad.
type OverflowError struct {
	Kind      content.Kind
	Section   int
	Height    float64 // smallest indivisible height of the unit
	Available float64 // usable page height
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: %s unit in section %d needs %.2fpt, page holds %.2fpt",
		ErrOverflow, e.Kind, e.Section, e.Height, e.Available)
}

// Unwrap returns ErrOverflow.
func (e *OverflowError) Unwrap() error { return ErrOverflow }
