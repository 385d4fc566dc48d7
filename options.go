package inspect2pdf

import (
	"time"

	"github.com/alnah/go-inspect2pdf/internal/logging"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout      time.Duration
	templateName string
	themeName    string
	assetPath    string
	lookahead    int
	usableWidth  float64
	usableHeight float64
	pageOffset   int
	dateFormat   string
}

// Defaults: US Letter with 1in side margins and room for header and footer bands.
const (
	defaultTimeout      = 30 * time.Second
	DefaultUsableWidth  = 468.0
	DefaultUsableHeight = 576.0
	DefaultDateFormat   = "MM/DD/YYYY"
	DefaultTemplateName = "standard"
	DefaultThemeName    = "default"
)

// WithTimeout sets the PDF printing timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("inspect2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTemplate selects the page template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithTheme selects the content theme by name.
func WithTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.themeName = name
	}
}

// WithAssetPath adds a directory searched for templates and themes before
// the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithMediaCache shares a media cache between converters. Without it each
// Converter owns an in-memory cache with default settings.
func WithMediaCache(m *MediaCache) Option {
	return func(c *Converter) {
		c.media = m
	}
}

// WithLookahead sets how many media references are resolved ahead of the
// section being rendered.
func WithLookahead(n int) Option {
	return func(c *Converter) {
		c.cfg.lookahead = n
	}
}

// WithUsableArea sets the content area every page role must provide, in points.
func WithUsableArea(width, height float64) Option {
	return func(c *Converter) {
		c.cfg.usableWidth = width
		c.cfg.usableHeight = height
	}
}

// WithPageNumberOffset shifts printed page numbers, for reports bound
// after other pages.
func WithPageNumberOffset(n int) Option {
	return func(c *Converter) {
		c.cfg.pageOffset = n
	}
}

// WithDateFormat sets the format of the report date, e.g. "YYYY-MM-DD" or "long".
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}

// WithLogger sets the logger shared by every pipeline stage.
func WithLogger(l logging.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}
