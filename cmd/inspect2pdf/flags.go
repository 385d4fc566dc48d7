package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling output verbosity and configuration.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logLevel  string
	logFormat string
}

// assetFlags selects the page template and theme.
type assetFlags struct {
	template  string
	theme     string
	assetPath string
}

// mediaFlags tunes the media cache.
type mediaFlags struct {
	cacheDir     string
	store        string
	thumbEdge    int
	lookahead    int
	fetchTimeout string
	clearCache   bool
}

// pageFlags overrides page geometry and furniture.
type pageFlags struct {
	offset     int
	dateFormat string
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// cliFlags holds every flag of the inspect2pdf command.
type cliFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	assets     assetFlags
	media      mediaFlags
	page       pageFlags
	outputMode outputFlags
	version    bool
	help       bool

	set func(name string) bool
}

// changed reports whether the named flag was given on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.set != nil && f.set(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

// addAssetFlags adds template and theme flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "page template name")
	fs.StringVar(&f.theme, "theme", "", "theme name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom templates and themes")
}

// addMediaFlags adds media cache flags to a FlagSet.
func addMediaFlags(fs *flag.FlagSet, f *mediaFlags) {
	fs.StringVar(&f.cacheDir, "cache-dir", "", "thumbnail cache directory")
	fs.StringVar(&f.store, "store", "", "thumbnail store: disk, memory, s3")
	fs.IntVar(&f.thumbEdge, "thumb-edge", 0, "longest thumbnail edge in pixels")
	fs.IntVar(&f.lookahead, "lookahead", 0, "media references fetched ahead of rendering")
	fs.StringVar(&f.fetchTimeout, "fetch-timeout", "", "per-request media fetch timeout (e.g., 30s)")
	fs.BoolVar(&f.clearCache, "clear-cache", false, "remove cached thumbnails before converting")
}

// addPageFlags adds page furniture flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.IntVar(&f.offset, "page-offset", 0, "added to page numbers in labels")
	fs.StringVar(&f.dateFormat, "date-format", "", "header date format (e.g., MM/DD/YYYY, iso)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// parseFlags parses command flags and returns positional args.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("inspect2pdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addMediaFlags(fs, &f.media)
	addPageFlags(fs, &f.page)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.set = func(name string) bool { return fs.Changed(name) }

	return f, fs.Args(), nil
}
