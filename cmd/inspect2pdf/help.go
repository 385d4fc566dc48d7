package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: inspect2pdf [flags] <record.json>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render inspection records to branded PDF reports.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to each record)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "      --template <name>     Page template (default: standard)")
	fmt.Fprintln(w, "      --theme <name>        Theme (default: default)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with templates/ and themes/")
	fmt.Fprintln(w, "      --page-offset <n>     Added to page numbers in labels")
	fmt.Fprintln(w, "      --date-format <s>     Header date format")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Media:")
	fmt.Fprintln(w, "      --cache-dir <dir>     Thumbnail cache directory")
	fmt.Fprintln(w, "      --store <kind>        Thumbnail store: disk, memory, s3")
	fmt.Fprintln(w, "      --thumb-edge <px>     Longest thumbnail edge (default: 1024)")
	fmt.Fprintln(w, "      --lookahead <n>       Media fetched ahead of rendering (default: 4)")
	fmt.Fprintln(w, "      --fetch-timeout <d>   Per-request fetch timeout (default: 30s)")
	fmt.Fprintln(w, "      --clear-cache         Remove cached thumbnails first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --html                Write HTML alongside the PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip Chrome")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing, cache stats and debug logs")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage/config/record, 3 I/O, 4 browser")
}
