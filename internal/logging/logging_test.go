package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		format  string
		wantErr error
	}{
		{name: "defaults", level: "", format: ""},
		{name: "debug json", level: "debug", format: "json"},
		{name: "console", level: "warn", format: "console"},
		{name: "uppercase level", level: "ERROR", format: "json"},
		{name: "bad level", level: "loud", format: "json", wantErr: ErrInvalidLevel},
		{name: "bad format", level: "info", format: "xml", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			_, err := New(&buf, tt.level, tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base, err := New(&buf, "info", FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l := Component(base, "mediacache")
	l.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry[FieldComponent] != "mediacache" {
		t.Errorf("component = %v, want mediacache", entry[FieldComponent])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, "warn", FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn message should be written")
	}
}
