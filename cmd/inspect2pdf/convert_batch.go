package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	inspect2pdf "github.com/alnah/go-inspect2pdf"
	"github.com/alnah/go-inspect2pdf/internal/fileutil"
)

// Converter is the interface for the conversion service.
type Converter interface {
	ConvertToFile(ctx context.Context, input inspect2pdf.Input, path string) (*inspect2pdf.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*inspect2pdf.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// poolAdapter exposes an inspect2pdf.ConverterPool as a Pool.
type poolAdapter struct {
	pool *inspect2pdf.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (Converter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics on a Converter the pool did not hand out.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*inspect2pdf.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }

// conversionParams groups parameters shared across the batch.
type conversionParams struct {
	htmlOnly   bool
	htmlOutput bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	HTMLPath    string
	Pages       int
	FailedMedia []inspect2pdf.MediaFailure
	Err         error
	Duration    time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Without a converter, fail every job this worker drains.
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("creating converter: %w", err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile decodes one record and writes its report.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	rec, err := readRecord(f.InputPath)
	if err != nil {
		return done(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: %w", ErrCreateOutputDir, err))
	}

	res, err := conv.ConvertToFile(ctx, inspect2pdf.Input{
		Record:    rec,
		SourceDir: filepath.Dir(f.InputPath),
		HTMLOnly:  params.htmlOnly,
	}, f.OutputPath)
	if err != nil {
		return done(err)
	}
	result.Pages = res.Pages
	result.FailedMedia = res.FailedMedia

	if params.htmlOutput {
		htmlPath := htmlOutputPath(f.OutputPath)
		if err := fileutil.AtomicWriteFile(htmlPath, res.HTML, filePermissions); err != nil {
			return done(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.HTMLPath = htmlPath
	}

	return done(nil)
}

// readRecord opens and decodes a record file.
func readRecord(path string) (*inspect2pdf.InspectionRecord, error) {
	fh, err := os.Open(path) // #nosec G304 -- user-provided record path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadRecord, err)
	}
	defer fh.Close()

	return inspect2pdf.DecodeRecord(fh)
}

// htmlOutputPath swaps the .pdf extension for .html.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.HTMLPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.HTMLPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
