package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-inspect2pdf/internal/dateutil"
	"github.com/alnah/go-inspect2pdf/internal/logging"
	"github.com/alnah/go-inspect2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength   = 4096
	MaxNameLength   = 100
	MinThumbEdge    = 16
	MaxThumbEdge    = 8192
	MaxLookahead    = 64
	MaxFetchTimeout = 10 * time.Minute
)

// Store kinds.
const (
	StoreDisk   = "disk"
	StoreMemory = "memory"
	StoreS3     = "s3"
)

// configDirName is the directory under the user config dir searched by LoadConfig.
const configDirName = "go-inspect2pdf"

// Config holds all configuration for report generation.
type Config struct {
	Media    MediaConfig    `yaml:"media"`
	Page     PageConfig     `yaml:"page"`
	Template TemplateConfig `yaml:"template"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// MediaConfig controls media fetching and the thumbnail cache.
type MediaConfig struct {
	MaxThumbnailEdge int         `yaml:"maxThumbnailEdge"` // pixels
	FetchTimeout     string      `yaml:"fetchTimeout"`     // Go duration, e.g. "30s"
	Lookahead        int         `yaml:"lookahead"`        // references resolved ahead of rendering
	CacheDir         string      `yaml:"cacheDir"`         // empty = user cache dir
	Store            StoreConfig `yaml:"store"`
}

// StoreConfig selects where thumbnails persist.
type StoreConfig struct {
	Kind string   `yaml:"kind"` // "disk", "memory" or "s3"
	S3   S3Config `yaml:"s3"`
}

// S3Config locates an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
}

// PageConfig defines the usable content area and page numbering.
type PageConfig struct {
	UsableWidth      float64 `yaml:"usableWidth"`      // points
	UsableHeight     float64 `yaml:"usableHeight"`     // points
	PageNumberOffset int     `yaml:"pageNumberOffset"` // added to printed page numbers
	DateFormat       string  `yaml:"dateFormat"`       // dateutil tokens or preset
}

// TemplateConfig selects the template and theme.
type TemplateConfig struct {
	Name      string `yaml:"name"`
	Theme     string `yaml:"theme"`
	AssetPath string `yaml:"assetPath"` // empty = embedded assets only
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = next to the input record
}

// LogConfig defines logging options.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the built-in configuration: US Letter with 1in side
// and bottom margins and a 1.5in top margin.
func DefaultConfig() *Config {
	return &Config{
		Media: MediaConfig{
			MaxThumbnailEdge: 1024,
			FetchTimeout:     "30s",
			Lookahead:        4,
			Store:            StoreConfig{Kind: StoreDisk},
		},
		Page: PageConfig{
			UsableWidth:  468,
			UsableHeight: 576,
			DateFormat:   "MM/DD/YYYY",
		},
		Template: TemplateConfig{Name: "standard", Theme: "default"},
		Log:      LogConfig{Level: "info", Format: logging.FormatConsole},
	}
}

// FetchTimeoutDuration parses Media.FetchTimeout.
func (c *Config) FetchTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Media.FetchTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: media.fetchTimeout: %v", ErrInvalidValue, err)
	}
	return d, nil
}

// Validate checks ranges and enumerations. Called automatically by
// LoadConfig, but available for callers who build a Config by hand.
func (c *Config) Validate() error {
	m := c.Media
	if m.MaxThumbnailEdge < MinThumbEdge || m.MaxThumbnailEdge > MaxThumbEdge {
		return fmt.Errorf("%w: media.maxThumbnailEdge must be between %d and %d, got %d",
			ErrInvalidValue, MinThumbEdge, MaxThumbEdge, m.MaxThumbnailEdge)
	}
	d, err := c.FetchTimeoutDuration()
	if err != nil {
		return err
	}
	if d <= 0 || d > MaxFetchTimeout {
		return fmt.Errorf("%w: media.fetchTimeout must be positive and at most %s, got %s",
			ErrInvalidValue, MaxFetchTimeout, d)
	}
	if m.Lookahead < 1 || m.Lookahead > MaxLookahead {
		return fmt.Errorf("%w: media.lookahead must be between 1 and %d, got %d", ErrInvalidValue, MaxLookahead, m.Lookahead)
	}
	if err := validateFieldLength("media.cacheDir", m.CacheDir, MaxPathLength); err != nil {
		return err
	}
	switch m.Store.Kind {
	case StoreDisk, StoreMemory:
	case StoreS3:
		if m.Store.S3.Endpoint == "" || m.Store.S3.Bucket == "" {
			return fmt.Errorf("%w: media.store.s3: endpoint and bucket are required", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: media.store.kind %q (must be disk, memory or s3)", ErrInvalidValue, m.Store.Kind)
	}

	if c.Page.UsableWidth <= 0 || c.Page.UsableHeight <= 0 {
		return fmt.Errorf("%w: page usable area must be positive, got %gx%g",
			ErrInvalidValue, c.Page.UsableWidth, c.Page.UsableHeight)
	}
	if c.Page.PageNumberOffset < 0 {
		return fmt.Errorf("%w: page.pageNumberOffset must not be negative", ErrInvalidValue)
	}
	if _, err := dateutil.ParseDateFormat(c.Page.DateFormat); err != nil {
		return fmt.Errorf("page.dateFormat: %w", err)
	}

	if err := validateFieldLength("template.name", c.Template.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.theme", c.Template.Theme, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.assetPath", c.Template.AssetPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("log.format: %w: %q", logging.ErrInvalidFormat, c.Log.Format)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-inspect2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
