package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	inspect2pdf "github.com/alnah/go-inspect2pdf"
	"github.com/alnah/go-inspect2pdf/internal/config"
	"github.com/alnah/go-inspect2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadRecord         = errors.New("failed to read record file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrCreateOutputDir    = errors.New("failed to create output directory")
	ErrInvalidExtension   = errors.New("record file must have .json extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrUsage              = errors.New("invalid usage")
	ErrConversionsFailed  = errors.New("conversions failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

const defaultTimeout = 30 * time.Second

// FileToConvert pairs a record file with its output path.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// runConvert loads configuration, builds the shared media cache and converts
// every record through the pool.
func runConvert(ctx context.Context, positional []string, flags *cliFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.outputMode.html && flags.outputMode.htmlOnly {
		return fmt.Errorf("%w: --html and --html-only are mutually exclusive", ErrUsage)
	}

	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags win over the config file.
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout)
	if err != nil {
		return err
	}

	logger, err := logging.New(env.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if !flags.media.clearCache && len(positional) == 0 {
		return ErrNoInput
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	files, err := resolveFiles(positional, outputDir, flags.outputMode.htmlOnly)
	if err != nil {
		return err
	}

	cache, err := newMediaCache(ctx, cfg, env, logger)
	if err != nil {
		return fmt.Errorf("creating media cache: %w", err)
	}

	if flags.media.clearCache {
		if err := cache.Clear(ctx); err != nil {
			return fmt.Errorf("clearing media cache: %w", err)
		}
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "Cleared media cache")
		}
		if len(files) == 0 {
			return nil
		}
	}

	opts := []inspect2pdf.Option{
		inspect2pdf.WithTimeout(timeout),
		inspect2pdf.WithTemplate(cfg.Template.Name),
		inspect2pdf.WithTheme(cfg.Template.Theme),
		inspect2pdf.WithAssetPath(cfg.Template.AssetPath),
		inspect2pdf.WithMediaCache(cache),
		inspect2pdf.WithLookahead(cfg.Media.Lookahead),
		inspect2pdf.WithUsableArea(cfg.Page.UsableWidth, cfg.Page.UsableHeight),
		inspect2pdf.WithPageNumberOffset(cfg.Page.PageNumberOffset),
		inspect2pdf.WithDateFormat(cfg.Page.DateFormat),
		inspect2pdf.WithLogger(logger),
	}

	poolSize := inspect2pdf.ResolvePoolSize(flags.workers)
	if poolSize > len(files) {
		poolSize = len(files)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, &conversionParams{
		htmlOnly:   flags.outputMode.htmlOnly,
		htmlOutput: flags.outputMode.html,
	})

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if !flags.common.quiet {
		printMediaFailures(env.Stdout, results)
	}
	if flags.common.verbose {
		stats := cache.Stats()
		fmt.Fprintf(env.Stderr, "Media: %d fetched, %d decoded, %d cache hits\n", stats.Fetches, stats.Decodes, stats.Hits)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d: %w", ErrConversionsFailed, failed, len(results), firstError(results))
	}
	return nil
}

// newMediaCache builds the cache shared by every converter in the batch.
func newMediaCache(ctx context.Context, cfg *config.Config, env *Environment, logger logging.Logger) (*inspect2pdf.MediaCache, error) {
	timeout, err := cfg.FetchTimeoutDuration()
	if err != nil {
		return nil, err
	}

	mc := inspect2pdf.MediaConfig{
		MaxThumbnailEdge: cfg.Media.MaxThumbnailEdge,
		FetchTimeout:     timeout,
		Store:            cfg.Media.Store.Kind,
		CacheDir:         cfg.Media.CacheDir,
		S3:               inspect2pdf.S3Config(cfg.Media.Store.S3),
		Logger:           &logger,
	}
	if mc.Store == inspect2pdf.StoreDisk && mc.CacheDir == "" {
		dir, err := env.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("locating cache directory: %w", err)
		}
		mc.CacheDir = dir
	}
	return inspect2pdf.NewMediaCache(ctx, mc)
}

// mergeFlags copies explicitly set flags over the config.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.assets.template != "" {
		cfg.Template.Name = f.assets.template
	}
	if f.assets.theme != "" {
		cfg.Template.Theme = f.assets.theme
	}
	if f.assets.assetPath != "" {
		cfg.Template.AssetPath = f.assets.assetPath
	}
	if f.media.cacheDir != "" {
		cfg.Media.CacheDir = f.media.cacheDir
	}
	if f.media.store != "" {
		cfg.Media.Store.Kind = f.media.store
	}
	if f.media.thumbEdge != 0 {
		cfg.Media.MaxThumbnailEdge = f.media.thumbEdge
	}
	if f.media.lookahead != 0 {
		cfg.Media.Lookahead = f.media.lookahead
	}
	if f.media.fetchTimeout != "" {
		cfg.Media.FetchTimeout = f.media.fetchTimeout
	}
	if f.changed("page-offset") {
		cfg.Page.PageNumberOffset = f.page.offset
	}
	if f.page.dateFormat != "" {
		cfg.Page.DateFormat = f.page.dateFormat
	}
	if f.common.logFormat != "" {
		cfg.Log.Format = f.common.logFormat
	}
	if f.common.logLevel != "" {
		cfg.Log.Level = f.common.logLevel
	}
	switch {
	case f.common.verbose:
		cfg.Log.Level = "debug"
	case f.common.quiet:
		cfg.Log.Level = "error"
	}
}

// resolveTimeout parses the --timeout flag, falling back to the default.
func resolveTimeout(s string) (time.Duration, error) {
	if s == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, s)
	}
	return d, nil
}

// validateWorkers rejects worker counts outside [0, MaxPoolSize].
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > inspect2pdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, inspect2pdf.MaxPoolSize)
	}
	return nil
}

// resolveFiles maps each record path to its output path. Outputs go next to
// the record unless outputDir is set.
func resolveFiles(inputs []string, outputDir string, htmlOnly bool) ([]FileToConvert, error) {
	ext := ".pdf"
	if htmlOnly {
		ext = ".html"
	}

	files := make([]FileToConvert, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		if !strings.EqualFold(filepath.Ext(in), ".json") {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, in)
		}
		dir := filepath.Dir(in)
		if outputDir != "" {
			dir = outputDir
		}
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out := filepath.Join(dir, base+ext)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, in, out)
		}
		seen[out] = in
		files = append(files, FileToConvert{InputPath: in, OutputPath: out})
	}
	return files, nil
}

// firstError returns the first failed conversion's error, prefixed with
// its input path.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.InputPath, r.Err)
		}
	}
	return nil
}
