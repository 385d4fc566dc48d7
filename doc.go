// Package inspect2pdf turns a home inspection record into a multi-page,
// template-branded PDF report using headless Chrome.
//
// # Quick Start
//
// Decode a record, create a converter, convert, and close when done:
//
//	rec, err := inspect2pdf.DecodeRecord(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv, err := inspect2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.ConvertToFile(ctx, inspect2pdf.Input{Record: rec}, "report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range result.FailedMedia {
//	    log.Printf("section %q: %s: %v", m.Title, m.URL, m.Err)
//	}
//
// # Conversion Pipeline
//
//  1. Section rendering: each section becomes a legend, a status checkbox
//     row, one text block per comment and one image slot per media
//     reference. Media is resolved ahead of rendering through the media
//     cache, which fetches each URL once and keeps bounded thumbnails.
//  2. Layout: units are placed top to bottom on pages of the usable area.
//     Images and checkbox rows never split; text splits at line
//     boundaries only when taller than a whole page.
//  3. Assembly: the first page gets the cover role, the last page of a
//     longer report the last role, the rest the standard role, each with
//     its background, header and footer and a "Page N of M" label.
//  4. Serialization: pages become absolutely positioned HTML with the
//     report fonts inlined, printed to PDF by headless Chrome (go-rod).
//
// # Failures
//
// A record with an unknown status fails with *SchemaError before any page
// is produced. A template whose content area is smaller than the usable
// area fails NewConverter with *TemplateMismatchError. Media that cannot
// be fetched or decoded never fails a run: its slot shows a placeholder
// and ConvertResult.FailedMedia lists it.
//
// # Parallel Processing
//
// For batch conversion, share one MediaCache across a ConverterPool:
//
//	cache, err := inspect2pdf.NewMediaCache(ctx, inspect2pdf.MediaConfig{
//	    Store:    inspect2pdf.StoreDisk,
//	    CacheDir: dir,
//	})
//	pool := inspect2pdf.NewConverterPool(4, inspect2pdf.WithMediaCache(cache))
//	defer pool.Close()
//
// # Custom Assets
//
// Templates and themes are YAML files. WithAssetPath adds a directory
// searched before the embedded ones:
//
//	assets/
//	├── templates/
//	│   └── acme/
//	│       ├── template.yaml
//	│       └── cover.png
//	└── themes/
//	    └── acme.yaml
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package inspect2pdf
