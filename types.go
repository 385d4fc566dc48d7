package inspect2pdf

import (
	"io"

	"github.com/alnah/go-inspect2pdf/internal/record"
)

// Record types. The pipeline never modifies a record.
type (
	InspectionRecord = record.InspectionRecord
	Header           = record.Header
	Section          = record.Section
	Comment          = record.Comment
	MediaReference   = record.MediaReference
	Status           = record.Status
	Severity         = record.Severity
	MediaKind        = record.MediaKind
)

// Section statuses.
const (
	StatusInspected    = record.StatusInspected
	StatusNotInspected = record.StatusNotInspected
	StatusNotPresent   = record.StatusNotPresent
	StatusDeficient    = record.StatusDeficient
)

// Comment severities.
const (
	SeverityNone   = record.SeverityNone
	SeverityInfo   = record.SeverityInfo
	SeverityLimit  = record.SeverityLimit
	SeverityDefect = record.SeverityDefect
)

// Media kinds.
const (
	MediaImage = record.MediaImage
	MediaVideo = record.MediaVideo
)

// DecodeRecord reads a JSON inspection record. Unknown statuses, severities
// and media kinds are reported as *SchemaError.
func DecodeRecord(r io.Reader) (*InspectionRecord, error) {
	return record.Decode(r)
}

// ParseRecord parses a JSON inspection record held in memory.
func ParseRecord(data []byte) (*InspectionRecord, error) {
	return record.Parse(data)
}

// Input contains all parameters for a single conversion.
type Input struct {
	Record *InspectionRecord // required

	// SourceDir resolves relative media paths, usually the record's directory.
	SourceDir string

	// HTMLOnly skips Chrome and returns the intermediate HTML only.
	HTMLOnly bool
}

// ConvertResult holds the output of a conversion.
// HTML is always populated; PDF is empty when Input.HTMLOnly is set.
type ConvertResult struct {
	HTML  []byte
	PDF   []byte
	Pages int

	// FailedMedia lists every media slot drawn as a placeholder, in
	// document order. A non-empty list does not make the run fail.
	FailedMedia []MediaFailure
}

// MediaFailure describes one media reference that could not be drawn.
type MediaFailure struct {
	Section  int    // zero-based section index
	Title    string // section title as printed
	URL      string
	Identity string // URL or video thumbnail actually fetched
	Err      error  // *FetchError or *DecodeError
}
