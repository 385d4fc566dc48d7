package main

import (
	"errors"
	"os"

	inspect2pdf "github.com/alnah/go-inspect2pdf"
	"github.com/alnah/go-inspect2pdf/internal/config"
)

// Exit codes for the inspect2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every record converted
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, template or record
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, inspect2pdf.ErrBrowserConnect) ||
		errors.Is(err, inspect2pdf.ErrPageCreate) ||
		errors.Is(err, inspect2pdf.ErrPageLoad) ||
		errors.Is(err, inspect2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadRecord) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, inspect2pdf.ErrSchema) ||
		errors.Is(err, inspect2pdf.ErrNilRecord) ||
		errors.Is(err, inspect2pdf.ErrTemplateMismatch) ||
		errors.Is(err, inspect2pdf.ErrTemplateOverlap) ||
		errors.Is(err, inspect2pdf.ErrTemplateNotFound) ||
		errors.Is(err, inspect2pdf.ErrThemeNotFound) ||
		errors.Is(err, inspect2pdf.ErrInvalidTemplate) ||
		errors.Is(err, inspect2pdf.ErrInvalidTheme) ||
		errors.Is(err, inspect2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
