package yamlutil_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alnah/go-inspect2pdf/internal/yamlutil"
)

type pageSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Label  string  `yaml:"label"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		anyErr  bool
	}{
		{name: "valid", data: []byte("width: 612\nheight: 792\nlabel: letter"), dest: &pageSpec{}},
		{name: "unknown field", data: []byte("width: 612\ncolour: red"), dest: &pageSpec{}, anyErr: true},
		{name: "type mismatch", data: []byte("width: wide"), dest: &pageSpec{}, anyErr: true},
		{name: "empty", data: nil, dest: &pageSpec{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("width: 1"), dest: nil, wantErr: yamlutil.ErrNilDestination},
		{
			name:    "too large",
			data:    []byte("label: " + strings.Repeat("x", yamlutil.MaxInputSize)),
			dest:    &pageSpec{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Error("UnmarshalStrict() expected error, got nil")
				}
			default:
				if err != nil {
					t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
				}
				got := tt.dest.(*pageSpec)
				if got.Width != 612 || got.Height != 792 || got.Label != "letter" {
					t.Errorf("UnmarshalStrict() = %+v", got)
				}
			}
		})
	}
}

func TestReadStrict(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"page.yaml": {Data: []byte("width: 100\nheight: 200\n")},
		"bad.yaml":  {Data: []byte("depth: 3\n")},
	}

	var p pageSpec
	if err := yamlutil.ReadStrict(fsys, "page.yaml", &p); err != nil {
		t.Fatalf("ReadStrict() error = %v", err)
	}
	if p.Width != 100 || p.Height != 200 {
		t.Errorf("ReadStrict() = %+v", p)
	}

	err := yamlutil.ReadStrict(fsys, "missing.yaml", &p)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadStrict(missing) error = %v, want fs.ErrNotExist", err)
	}

	err = yamlutil.ReadStrict(fsys, "bad.yaml", &p)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("ReadStrict(bad) error = %v, want error naming the file", err)
	}
}
