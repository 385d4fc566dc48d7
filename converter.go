package inspect2pdf

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-inspect2pdf/internal/assemble"
	"github.com/alnah/go-inspect2pdf/internal/assets"
	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/fileutil"
	"github.com/alnah/go-inspect2pdf/internal/fonts"
	"github.com/alnah/go-inspect2pdf/internal/layout"
	"github.com/alnah/go-inspect2pdf/internal/logging"
	"github.com/alnah/go-inspect2pdf/internal/mediacache"
	"github.com/alnah/go-inspect2pdf/internal/record"
	"github.com/alnah/go-inspect2pdf/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ render.MediaResolver = (*mediacache.Cache)(nil)
	_ layout.Measurer      = layout.FontMeasurer{}
	_ assets.Loader        = (*assets.Resolver)(nil)
)

// Converter orchestrates the record-to-PDF pipeline: render, layout,
// assemble, then HTML and PDF serialization.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
type Converter struct {
	cfg          converterConfig
	logger       logging.Logger
	media        *MediaCache
	template     *assets.Template
	theme        *assets.Theme
	renderer     *render.Renderer
	engine       *layout.Engine
	assembler    *assemble.Assembler
	html         *htmlBuilder
	pdfConverter pdfConverter
}

// NewConverter loads the template and theme, checks the template against
// the usable area and wires the pipeline. A template whose content area is
// smaller than the usable area fails here with *TemplateMismatchError,
// before any record is read.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			templateName: DefaultTemplateName,
			themeName:    DefaultThemeName,
			lookahead:    render.DefaultLookahead,
			usableWidth:  DefaultUsableWidth,
			usableHeight: DefaultUsableHeight,
			dateFormat:   DefaultDateFormat,
		},
		logger: logging.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.Component(c.logger, "converter")

	resolver, err := assets.NewResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	if c.template, err = resolver.LoadTemplate(c.cfg.templateName); err != nil {
		return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}
	if c.theme, err = resolver.LoadTheme(c.cfg.themeName); err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", c.cfg.themeName, err)
	}

	geom := layout.Geometry{Width: c.cfg.usableWidth, Height: c.cfg.usableHeight}
	if c.assembler, err = assemble.New(c.template, geom,
		assemble.WithPageNumberOffset(c.cfg.pageOffset),
		assemble.WithDateFormat(c.cfg.dateFormat),
		assemble.WithLogger(c.logger),
	); err != nil {
		return nil, err
	}

	measurer, err := fonts.NewMeasurer()
	if err != nil {
		return nil, err
	}
	if c.engine, err = layout.New(geom, layout.FontMeasurer{Fonts: measurer}, layout.WithLogger(c.logger)); err != nil {
		return nil, err
	}

	if c.media == nil {
		c.media = mediacache.New(mediacache.NewRouter(nil, 0, ""), mediacache.WithLogger(c.logger))
	}
	c.renderer = render.New(c.theme, c.media, render.WithLookahead(c.cfg.lookahead), render.WithLogger(c.logger))

	if c.html, err = newHTMLBuilder(c.theme); err != nil {
		return nil, err
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline and returns the result containing HTML and PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped (for debugging).
//
// A schema error, a template mismatch or an overflow fails the run with no
// output. Media that cannot be fetched or decoded is drawn as a placeholder
// and listed in ConvertResult.FailedMedia.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Record == nil {
		return nil, ErrNilRecord
	}
	rec, err := withAbsoluteMedia(input.Record, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving media paths: %w", err)
	}

	runID := uuid.NewString()
	log := c.logger.With().Str(logging.FieldRunID, runID).Logger()
	start := time.Now()
	log.Info().Int("sections", len(rec.Sections)).Str("template", c.template.Name).Msg("conversion started")

	var failed []MediaFailure
	units := collectFailures(c.renderer.Render(ctx, rec), rec, &failed)

	pages, err := c.engine.Layout(ctx, units)
	if err != nil {
		log.Error().Err(err).Msg("layout failed")
		return nil, err
	}

	doc, err := c.assembler.Assemble(pages, assemble.Meta{Header: rec.Header})
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	htmlContent, err := c.html.Build(doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{HTML: htmlContent, Pages: len(doc.Pages), FailedMedia: failed}
	for _, f := range failed {
		log.Warn().Str(logging.FieldIdentity, f.Identity).Int("section", f.Section).Err(f.Err).Msg("media drawn as placeholder")
	}

	if input.HTMLOnly {
		log.Info().Int("pages", res.Pages).Dur("elapsed", time.Since(start)).Msg("conversion finished (HTML only)")
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		PageWidth:  c.template.PageWidth,
		PageHeight: c.template.PageHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes

	log.Info().Int("pages", res.Pages).Int("failed_media", len(failed)).
		Dur("elapsed", time.Since(start)).Msg("conversion finished")
	return res, nil
}

// ConvertToFile converts input and writes the PDF (or the HTML when
// input.HTMLOnly is set) to path. Nothing is written unless the whole run
// succeeds, and the file appears atomically.
func (c *Converter) ConvertToFile(ctx context.Context, input Input, path string) (*ConvertResult, error) {
	if path == "" {
		return nil, ErrEmptyOutputPath
	}
	res, err := c.Convert(ctx, input)
	if err != nil {
		return nil, err
	}
	data := res.PDF
	if input.HTMLOnly {
		data = res.HTML
	}
	// #nosec G306 -- reports are meant to be shared
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return res, nil
}

// MediaCache returns the cache used by this converter.
func (c *Converter) MediaCache() *MediaCache {
	return c.media
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// collectFailures passes units through unchanged and records every
// placeholder image in failed.
func collectFailures(units iter.Seq2[content.Unit, error], rec *InspectionRecord, failed *[]MediaFailure) iter.Seq2[content.Unit, error] {
	return func(yield func(content.Unit, error) bool) {
		for u, err := range units {
			if blk, ok := u.(content.ImageBlock); ok && blk.Placeholder {
				*failed = append(*failed, MediaFailure{
					Section:  blk.Section,
					Title:    record.SectionTitle(rec.Sections[blk.Section], blk.Section),
					URL:      blk.Ref.URL,
					Identity: blk.Ref.Identity(),
					Err:      blk.Failure,
				})
			}
			if !yield(u, err) {
				return
			}
		}
	}
}
