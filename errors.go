package inspect2pdf

import (
	"errors"

	"github.com/alnah/go-inspect2pdf/internal/assemble"
	"github.com/alnah/go-inspect2pdf/internal/assets"
	"github.com/alnah/go-inspect2pdf/internal/layout"
	"github.com/alnah/go-inspect2pdf/internal/mediacache"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

// Sentinel errors for library operations.
var (
	ErrNilRecord       = errors.New("inspection record cannot be nil")
	ErrHTMLGeneration  = errors.New("HTML generation failed")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrEmptyOutputPath = errors.New("output path cannot be empty")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Pipeline errors re-exported so callers can match them with errors.Is
// without importing internal packages.
var (
	ErrSchema           = record.ErrSchema
	ErrFetch            = mediacache.ErrFetch
	ErrDecode           = mediacache.ErrDecode
	ErrTemplateMismatch = assemble.ErrTemplateMismatch
	ErrTemplateOverlap  = assemble.ErrTemplateOverlap
	ErrOverflow         = layout.ErrOverflow
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrThemeNotFound    = assets.ErrThemeNotFound
	ErrInvalidTemplate  = assets.ErrInvalidTemplate
	ErrInvalidTheme     = assets.ErrInvalidTheme
)

// Typed errors carried by failed runs and by ConvertResult.FailedMedia.
type (
	SchemaError           = record.SchemaError
	FetchError            = mediacache.FetchError
	DecodeError           = mediacache.DecodeError
	TemplateMismatchError = assemble.TemplateMismatchError
	OverflowError         = layout.OverflowError
)
