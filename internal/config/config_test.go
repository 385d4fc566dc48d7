package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-inspect2pdf/internal/dateutil"
	"github.com/alnah/go-inspect2pdf/internal/logging"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Media.MaxThumbnailEdge != 1024 {
		t.Errorf("Media.MaxThumbnailEdge = %d, want 1024", cfg.Media.MaxThumbnailEdge)
	}
	if cfg.Media.Lookahead != 4 {
		t.Errorf("Media.Lookahead = %d, want 4", cfg.Media.Lookahead)
	}
	if cfg.Media.Store.Kind != StoreDisk {
		t.Errorf("Media.Store.Kind = %q, want %q", cfg.Media.Store.Kind, StoreDisk)
	}
	if cfg.Page.UsableWidth != 468 || cfg.Page.UsableHeight != 576 {
		t.Errorf("usable area = %gx%g, want 468x576", cfg.Page.UsableWidth, cfg.Page.UsableHeight)
	}
	if cfg.Page.PageNumberOffset != 0 {
		t.Errorf("Page.PageNumberOffset = %d, want 0", cfg.Page.PageNumberOffset)
	}
	if cfg.Template.Name != "standard" || cfg.Template.Theme != "default" {
		t.Errorf("Template = %+v, want standard/default", cfg.Template)
	}
	if cfg.Output.Dir != "" {
		t.Errorf("Output.Dir = %q, want empty", cfg.Output.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	d, err := cfg.FetchTimeoutDuration()
	if err != nil || d != 30*time.Second {
		t.Errorf("FetchTimeoutDuration() = %v, %v, want 30s", d, err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", fieldName: "test", value: "", maxLength: 10},
		{name: "value at limit is valid", fieldName: "test", value: "1234567890", maxLength: 10},
		{name: "value under limit is valid", fieldName: "test", value: "12345", maxLength: 10},
		{name: "value over limit returns error", fieldName: "test.field", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error %q should name field %q", err, tt.fieldName)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "edge at minimum", mutate: func(c *Config) { c.Media.MaxThumbnailEdge = MinThumbEdge }},
		{name: "edge at maximum", mutate: func(c *Config) { c.Media.MaxThumbnailEdge = MaxThumbEdge }},
		{name: "edge too small", mutate: func(c *Config) { c.Media.MaxThumbnailEdge = MinThumbEdge - 1 }, wantErr: ErrInvalidValue},
		{name: "edge too large", mutate: func(c *Config) { c.Media.MaxThumbnailEdge = MaxThumbEdge + 1 }, wantErr: ErrInvalidValue},
		{name: "timeout unparsable", mutate: func(c *Config) { c.Media.FetchTimeout = "soon" }, wantErr: ErrInvalidValue},
		{name: "timeout zero", mutate: func(c *Config) { c.Media.FetchTimeout = "0s" }, wantErr: ErrInvalidValue},
		{name: "timeout too long", mutate: func(c *Config) { c.Media.FetchTimeout = "1h" }, wantErr: ErrInvalidValue},
		{name: "lookahead zero", mutate: func(c *Config) { c.Media.Lookahead = 0 }, wantErr: ErrInvalidValue},
		{name: "lookahead too large", mutate: func(c *Config) { c.Media.Lookahead = MaxLookahead + 1 }, wantErr: ErrInvalidValue},
		{name: "cache dir too long", mutate: func(c *Config) { c.Media.CacheDir = strings.Repeat("a", MaxPathLength+1) }, wantErr: ErrFieldTooLong},
		{name: "memory store", mutate: func(c *Config) { c.Media.Store.Kind = StoreMemory }},
		{name: "unknown store", mutate: func(c *Config) { c.Media.Store.Kind = "tape" }, wantErr: ErrInvalidValue},
		{name: "s3 without bucket", mutate: func(c *Config) {
			c.Media.Store.Kind = StoreS3
			c.Media.Store.S3.Endpoint = "localhost:9000"
		}, wantErr: ErrInvalidValue},
		{name: "s3 complete", mutate: func(c *Config) {
			c.Media.Store.Kind = StoreS3
			c.Media.Store.S3 = S3Config{Endpoint: "localhost:9000", Bucket: "thumbs"}
		}},
		{name: "zero usable width", mutate: func(c *Config) { c.Page.UsableWidth = 0 }, wantErr: ErrInvalidValue},
		{name: "negative usable height", mutate: func(c *Config) { c.Page.UsableHeight = -1 }, wantErr: ErrInvalidValue},
		{name: "negative page offset", mutate: func(c *Config) { c.Page.PageNumberOffset = -1 }, wantErr: ErrInvalidValue},
		{name: "page offset two", mutate: func(c *Config) { c.Page.PageNumberOffset = 2 }},
		{name: "empty date format", mutate: func(c *Config) { c.Page.DateFormat = "" }, wantErr: dateutil.ErrInvalidDateFormat},
		{name: "unclosed date bracket", mutate: func(c *Config) { c.Page.DateFormat = "[DD" }, wantErr: dateutil.ErrInvalidDateFormat},
		{name: "template name too long", mutate: func(c *Config) { c.Template.Name = strings.Repeat("t", MaxNameLength+1) }, wantErr: ErrFieldTooLong},
		{name: "theme name too long", mutate: func(c *Config) { c.Template.Theme = strings.Repeat("t", MaxNameLength+1) }, wantErr: ErrFieldTooLong},
		{name: "asset path too long", mutate: func(c *Config) { c.Template.AssetPath = strings.Repeat("p", MaxPathLength+1) }, wantErr: ErrFieldTooLong},
		{name: "output dir too long", mutate: func(c *Config) { c.Output.Dir = strings.Repeat("o", MaxPathLength+1) }, wantErr: ErrFieldTooLong},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: logging.ErrInvalidLevel},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: logging.ErrInvalidFormat},
		{name: "json log format", mutate: func(c *Config) { c.Log.Format = "JSON" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path loads and merges over defaults", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, `media:
  maxThumbnailEdge: 512
  store:
    kind: s3
    s3:
      endpoint: "localhost:9000"
      bucket: "thumbs"
      prefix: "reports"
page:
  pageNumberOffset: 2
template:
  theme: "monochrome"
log:
  level: debug
  format: json
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Media.MaxThumbnailEdge != 512 {
			t.Errorf("Media.MaxThumbnailEdge = %d, want 512", cfg.Media.MaxThumbnailEdge)
		}
		if cfg.Media.Store.Kind != StoreS3 || cfg.Media.Store.S3.Bucket != "thumbs" || cfg.Media.Store.S3.Prefix != "reports" {
			t.Errorf("Media.Store = %+v", cfg.Media.Store)
		}
		if cfg.Page.PageNumberOffset != 2 {
			t.Errorf("Page.PageNumberOffset = %d, want 2", cfg.Page.PageNumberOffset)
		}
		if cfg.Template.Theme != "monochrome" {
			t.Errorf("Template.Theme = %q, want monochrome", cfg.Template.Theme)
		}
		// Untouched fields keep their defaults.
		if cfg.Template.Name != "standard" {
			t.Errorf("Template.Name = %q, want standard", cfg.Template.Name)
		}
		if cfg.Media.Lookahead != 4 {
			t.Errorf("Media.Lookahead = %d, want 4", cfg.Media.Lookahead)
		}
		if cfg.Page.UsableWidth != 468 {
			t.Errorf("Page.UsableWidth = %g, want 468", cfg.Page.UsableWidth)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "media: [unclosed"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "media:\n  maxEdge: 10\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "media:\n  lookahead: 0\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("unknown config name returns ErrConfigNotFound listing tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("definitely-not-a-config-9f2c")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "definitely-not-a-config-9f2c.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestResolveConfigPath_UserConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	userDir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	dir := filepath.Join(userDir, configDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	want := filepath.Join(dir, "office.yml")
	if err := os.WriteFile(want, []byte("page:\n  pageNumberOffset: 1\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := resolveConfigPath("office")
	if err != nil {
		t.Fatalf("resolveConfigPath() error = %v", err)
	}
	if got != want {
		t.Errorf("resolveConfigPath() = %q, want %q", got, want)
	}

	cfg, err := LoadConfig("office")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Page.PageNumberOffset != 1 {
		t.Errorf("Page.PageNumberOffset = %d, want 1", cfg.Page.PageNumberOffset)
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"work.yaml", false},
		{"./work.yaml", true},
		{"/etc/inspect2pdf/work.yaml", true},
		{`C:\configs\work.yaml`, true},
	}
	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
