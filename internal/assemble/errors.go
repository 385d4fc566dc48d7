package assemble

import (
	"errors"
	"fmt"

	"github.com/alnah/go-inspect2pdf/internal/assets"
)

// Sentinel errors.
var (
	ErrTemplateMismatch = errors.New("template content area smaller than usable area")
	ErrTemplateOverlap  = errors.New("template bands overlap content area")
)

// TemplateMismatchError reports a role whose content area cannot hold the
// usable area the layout engine fills.
type TemplateMismatchError struct {
	Template      string
	Role          assets.RoleName
	ContentWidth  float64
	ContentHeight float64
	UsableWidth   float64
	UsableHeight  float64
}

func (e *TemplateMismatchError) Error() string {
	return fmt.Sprintf("%v: template %q role %s: content %gx%g, usable %gx%g",
		ErrTemplateMismatch, e.Template, e.Role,
		e.ContentWidth, e.ContentHeight, e.UsableWidth, e.UsableHeight)
}

// Unwrap returns ErrTemplateMismatch.
func (e *TemplateMismatchError) Unwrap() error { return ErrTemplateMismatch }
