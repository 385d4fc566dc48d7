// Package record defines the inspection record consumed by the rendering
// pipeline and decodes it from JSON.
package record

import (
	"fmt"
	"strings"
)

// Status is the inspection outcome of a section.
type Status int

// Recognized statuses. StatusUnknown is the zero value and never valid.
const (
	StatusUnknown Status = iota
	StatusInspected
	StatusNotInspected
	StatusNotPresent
	StatusDeficient
)

// Statuses lists the valid statuses in checkbox order.
var Statuses = []Status{StatusInspected, StatusNotInspected, StatusNotPresent, StatusDeficient}

var statusNames = map[Status]string{
	StatusInspected:    "Inspected",
	StatusNotInspected: "Not Inspected",
	StatusNotPresent:   "Not Present",
	StatusDeficient:    "Deficient",
}

var statusCodes = map[Status]string{
	StatusInspected:    "I",
	StatusNotInspected: "NI",
	StatusNotPresent:   "NP",
	StatusDeficient:    "D",
}

// statusAliases maps lowercase input spellings to statuses.
var statusAliases = map[string]Status{
	"i":             StatusInspected,
	"inspected":     StatusInspected,
	"ni":            StatusNotInspected,
	"not inspected": StatusNotInspected,
	"not_inspected": StatusNotInspected,
	"notinspected":  StatusNotInspected,
	"np":            StatusNotPresent,
	"not present":   StatusNotPresent,
	"not_present":   StatusNotPresent,
	"notpresent":    StatusNotPresent,
	"d":             StatusDeficient,
	"deficient":     StatusDeficient,
	"defect":        StatusDeficient,
}

// ParseStatus resolves a status name, code or alias (case-insensitive).
func ParseStatus(s string) (Status, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// String returns the display name ("Not Inspected").
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Code returns the checkbox code ("NI").
func (s Status) Code() string {
	return statusCodes[s]
}

// Key returns the snake_case key used in theme files ("not_inspected").
func (s Status) Key() string {
	return strings.ReplaceAll(strings.ToLower(s.String()), " ", "_")
}

// Severity tags a comment.
type Severity int

// Comment severities. SeverityNone means the comment carried no tag.
const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityLimit
	SeverityDefect
)

var severityNames = map[string]Severity{
	"":       SeverityNone,
	"info":   SeverityInfo,
	"limit":  SeverityLimit,
	"defect": SeverityDefect,
}

// ParseSeverity resolves a severity tag (case-insensitive, empty allowed).
func ParseSeverity(s string) (Severity, bool) {
	sev, ok := severityNames[strings.ToLower(strings.TrimSpace(s))]
	return sev, ok
}

// String returns the lowercase tag, empty for SeverityNone.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityLimit:
		return "limit"
	case SeverityDefect:
		return "defect"
	}
	return ""
}

// MediaKind distinguishes still images from videos.
type MediaKind int

// Media kinds.
const (
	MediaImage MediaKind = iota
	MediaVideo
)

// ParseMediaKind resolves "image"/"photo" (or empty) and "video".
func ParseMediaKind(s string) (MediaKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "image", "photo":
		return MediaImage, true
	case "video":
		return MediaVideo, true
	}
	return MediaImage, false
}

// String returns "image" or "video".
func (k MediaKind) String() string {
	if k == MediaVideo {
		return "video"
	}
	return "image"
}

// MediaReference points at a photo or video attached to a section.
type MediaReference struct {
	URL       string    // http(s) URL, local path or data: URI
	Kind      MediaKind // image or video
	Thumbnail string    // videos only: optional still to fetch instead of the video
}

// Identity is the cache identity of the reference: the URL for images and
// the thumbnail URL for videos. Empty means there is nothing to fetch.
func (m MediaReference) Identity() string {
	if m.Kind == MediaVideo {
		return m.Thumbnail
	}
	return m.URL
}

// Comment is free-form inspector text.
type Comment struct {
	Text     string
	Severity Severity
}

// Section is one inspected item.
type Section struct {
	Title    string
	Status   Status
	Comments []Comment
	Media    []MediaReference
}

// Empty reports whether the section carries no comments and no media.
func (s Section) Empty() bool {
	return len(s.Comments) == 0 && len(s.Media) == 0
}

// Header holds report identification printed in page furniture.
type Header struct {
	Address   string
	Client    string
	Inspector string
	Date      string // raw value; formatted at assembly time
}

// InspectionRecord is the read-only input of one pipeline run.
type InspectionRecord struct {
	Header   Header
	Sections []Section
}

// Validate checks every section and media reference. It returns the first
// *SchemaError found, so a broken record never reaches layout.
func (r *InspectionRecord) Validate() error {
	if r == nil {
		return &SchemaError{Section: -1, Field: "record", Reason: "record is nil"}
	}
	for i, s := range r.Sections {
		if !s.Status.Valid() {
			return &SchemaError{Section: i, Field: "status", Value: s.Status.String(), Reason: "unrecognized status"}
		}
		for j, c := range s.Comments {
			if c.Severity < SeverityNone || c.Severity > SeverityDefect {
				return &SchemaError{Section: i, Field: fmt.Sprintf("comments[%d].severity", j), Value: fmt.Sprint(int(c.Severity)), Reason: "unrecognized severity"}
			}
		}
		for j, m := range s.Media {
			if strings.TrimSpace(m.URL) == "" {
				return &SchemaError{Section: i, Field: fmt.Sprintf("media[%d].url", j), Reason: "media url is empty"}
			}
			if m.Kind != MediaImage && m.Kind != MediaVideo {
				return &SchemaError{Section: i, Field: fmt.Sprintf("media[%d].kind", j), Value: fmt.Sprint(int(m.Kind)), Reason: "unrecognized media kind"}
			}
		}
	}
	return nil
}

// SectionTitle returns the section title or a positional fallback.
func SectionTitle(s Section, index int) string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	return fmt.Sprintf("Section %d", index+1)
}
