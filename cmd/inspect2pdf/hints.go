package main

import (
	"context"
	"errors"
	"strings"

	inspect2pdf "github.com/alnah/go-inspect2pdf"
	"github.com/alnah/go-inspect2pdf/internal/assets"
	"github.com/alnah/go-inspect2pdf/internal/config"
	"github.com/alnah/go-inspect2pdf/internal/hints"
)

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, inspect2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, inspect2pdf.ErrTemplateNotFound):
		return hints.ForAssetNotFound(assets.BuiltinTemplates())
	case errors.Is(err, inspect2pdf.ErrThemeNotFound):
		return hints.ForAssetNotFound(assets.BuiltinThemes())
	case errors.Is(err, inspect2pdf.ErrTemplateMismatch):
		return hints.ForTemplateMismatch()
	case errors.Is(err, inspect2pdf.ErrSchema):
		return hints.ForSchema()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the searched paths from a config-not-found message.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
