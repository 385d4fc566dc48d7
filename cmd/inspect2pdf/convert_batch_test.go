package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	inspect2pdf "github.com/alnah/go-inspect2pdf"
)

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("keeps order and passes source dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var files []FileToConvert
		for _, name := range []string{"a", "b", "c"} {
			in := writeRecord(t, dir, name+".json", recordJSON)
			files = append(files, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "out", name+".pdf")})
		}
		conv := &mockConverter{}
		pool := newMockPool(conv, 2)

		results := convertBatch(context.Background(), pool, files, &conversionParams{})

		for i, r := range results {
			if r.Err != nil {
				t.Fatalf("results[%d].Err = %v", i, r.Err)
			}
			if r.InputPath != files[i].InputPath {
				t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, files[i].InputPath)
			}
			if _, err := os.Stat(files[i].OutputPath); err != nil {
				t.Errorf("output %s not written: %v", files[i].OutputPath, err)
			}
		}
		for _, in := range conv.inputs {
			if in.SourceDir != dir {
				t.Errorf("SourceDir = %q, want %q", in.SourceDir, dir)
			}
			if in.Record == nil || len(in.Record.Sections) != 2 {
				t.Errorf("record not decoded: %+v", in.Record)
			}
		}
		if pool.acquired != 2 || pool.released != 2 {
			t.Errorf("acquired=%d released=%d, want 2/2", pool.acquired, pool.released)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		if got := convertBatch(context.Background(), newMockPool(&mockConverter{}, 1), nil, &conversionParams{}); got != nil {
			t.Errorf("convertBatch(nil) = %v, want nil", got)
		}
	})

	t.Run("acquire failure fails every file", func(t *testing.T) {
		t.Parallel()

		pool := newMockPool(nil, 2)
		pool.acquireErr = inspect2pdf.ErrInvalidAssetPath
		files := []FileToConvert{{InputPath: "a.json"}, {InputPath: "b.json"}, {InputPath: "c.json"}}

		for _, r := range convertBatch(context.Background(), pool, files, &conversionParams{}) {
			if !errors.Is(r.Err, inspect2pdf.ErrInvalidAssetPath) {
				t.Errorf("%s: Err = %v, want ErrInvalidAssetPath", r.InputPath, r.Err)
			}
		}
	})

	t.Run("cancelled context skips conversion", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		conv := &mockConverter{}
		files := []FileToConvert{{InputPath: "a.json", OutputPath: "a.pdf"}}

		results := convertBatch(ctx, newMockPool(conv, 1), files, &conversionParams{})
		if !errors.Is(results[0].Err, context.Canceled) {
			t.Errorf("Err = %v, want context.Canceled", results[0].Err)
		}
		if len(conv.Paths()) != 0 {
			t.Error("converter should not be called after cancellation")
		}
	})
}

func TestConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("html alongside pdf", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeRecord(t, dir, "roof.json", recordJSON)
		out := filepath.Join(dir, "roof.pdf")
		conv := &mockConverter{result: &inspect2pdf.ConvertResult{
			HTML:  []byte("<html>roof</html>"),
			PDF:   []byte("%PDF"),
			Pages: 3,
			FailedMedia: []inspect2pdf.MediaFailure{
				{Section: 0, Title: "Roof", URL: "https://x/a.jpg", Err: inspect2pdf.ErrFetch},
			},
		}}

		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: out}, &conversionParams{htmlOutput: true})
		if r.Err != nil {
			t.Fatalf("convertFile() error = %v", r.Err)
		}
		if r.Pages != 3 || len(r.FailedMedia) != 1 {
			t.Errorf("Pages=%d FailedMedia=%d, want 3/1", r.Pages, len(r.FailedMedia))
		}
		html, err := os.ReadFile(filepath.Join(dir, "roof.html"))
		if err != nil {
			t.Fatalf("html not written: %v", err)
		}
		if string(html) != "<html>roof</html>" {
			t.Errorf("html = %q", html)
		}
		if r.HTMLPath != filepath.Join(dir, "roof.html") {
			t.Errorf("HTMLPath = %q", r.HTMLPath)
		}
	})

	t.Run("html only forwarded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeRecord(t, dir, "roof.json", recordJSON)
		conv := &mockConverter{}

		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "roof.html")}, &conversionParams{htmlOnly: true})
		if r.Err != nil {
			t.Fatalf("convertFile() error = %v", r.Err)
		}
		if !conv.inputs[0].HTMLOnly {
			t.Error("HTMLOnly not forwarded")
		}
	})

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		r := convertFile(context.Background(), &mockConverter{}, FileToConvert{InputPath: filepath.Join(t.TempDir(), "none.json")}, &conversionParams{})
		if !errors.Is(r.Err, ErrReadRecord) || !errors.Is(r.Err, os.ErrNotExist) {
			t.Errorf("Err = %v, want ErrReadRecord wrapping os.ErrNotExist", r.Err)
		}
	})

	t.Run("schema error stops before converting", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeRecord(t, dir, "bad.json", `{"sections":[{"title":"Roof","status":"maybe"}]}`)
		conv := &mockConverter{}

		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "bad.pdf")}, &conversionParams{})
		var se *inspect2pdf.SchemaError
		if !errors.As(r.Err, &se) {
			t.Fatalf("Err = %v, want *SchemaError", r.Err)
		}
		if se.Section != 0 {
			t.Errorf("Section = %d, want 0", se.Section)
		}
		if len(conv.Paths()) != 0 {
			t.Error("converter called for an invalid record")
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeRecord(t, dir, "roof.json", recordJSON)
		conv := &mockConverter{err: inspect2pdf.ErrBrowserConnect}

		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "roof.pdf")}, &conversionParams{})
		if !errors.Is(r.Err, inspect2pdf.ErrBrowserConnect) {
			t.Errorf("Err = %v, want ErrBrowserConnect", r.Err)
		}
	})
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.json", OutputPath: "a.pdf", HTMLPath: "a.html", Pages: 2},
		{InputPath: "b.json", Err: inspect2pdf.ErrTemplateMismatch},
	}

	t.Run("normal", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, nil)
		failed := printResults(results, false, false, env)

		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		for _, want := range []string{"Created a.pdf", "Created a.html", "1 succeeded, 1 failed"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout missing %q:\n%s", want, stdout)
			}
		}
		if !strings.Contains(stderr.String(), "FAILED b.json") || !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, nil)
		printResults(results, true, false, env)

		if stdout.Len() != 0 {
			t.Errorf("quiet stdout = %q", stdout)
		}
		if !strings.Contains(stderr.String(), "FAILED") {
			t.Error("errors must be shown even when quiet")
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(t, nil)
		printResults(results[:1], false, true, env)

		if !strings.Contains(stdout.String(), "a.json -> a.pdf (2 pages") {
			t.Errorf("stdout = %q", stdout)
		}
	})
}

func TestPoolAdapter(t *testing.T) {
	t.Parallel()

	pool := inspect2pdf.NewConverterPool(3)
	adapter := &poolAdapter{pool: pool}
	defer adapter.Close()

	if adapter.Size() != 3 {
		t.Errorf("Size() = %d, want 3", adapter.Size())
	}

	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "unexpected type") {
			t.Errorf("Release(wrong type) panic = %v, want unexpected type", r)
		}
	}()
	adapter.Release(&mockConverter{})
}
