package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MaxInputSize bounds the JSON input to prevent memory exhaustion (32MB).
const MaxInputSize = 32 << 20

type rawRecord struct {
	Header   rawHeader    `json:"header"`
	Sections []rawSection `json:"sections"`
}

type rawHeader struct {
	Address   string          `json:"address"`
	Client    string          `json:"client"`
	Inspector string          `json:"inspector"`
	Date      json.RawMessage `json:"date"`
}

type rawSection struct {
	Title    string       `json:"title"`
	Name     string       `json:"name"`
	Status   string       `json:"status"`
	Comments []rawComment `json:"comments"`
	Media    []rawMedia   `json:"media"`
}

type rawComment struct {
	Text     string `json:"text"`
	Value    string `json:"value"`
	Severity string `json:"severity"`
	Type     string `json:"type"`
}

type rawMedia struct {
	URL       string `json:"url"`
	Kind      string `json:"kind"`
	Thumbnail string `json:"thumbnail"`
}

// Decode reads a JSON inspection record and validates it. Any structural
// problem is returned as a *SchemaError.
func Decode(r io.Reader) (*InspectionRecord, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	if len(data) > MaxInputSize {
		return nil, &SchemaError{Section: -1, Field: "record", Reason: fmt.Sprintf("input exceeds %d bytes", MaxInputSize)}
	}
	return Parse(data)
}

// Parse decodes and validates a JSON inspection record.
func Parse(data []byte) (*InspectionRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &SchemaError{Section: -1, Field: "record", Reason: "input is empty"}
	}

	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Section: -1, Field: "record", Reason: err.Error()}
	}

	date, err := rawDate(raw.Header.Date)
	if err != nil {
		return nil, err
	}

	rec := &InspectionRecord{
		Header: Header{
			Address:   strings.TrimSpace(raw.Header.Address),
			Client:    strings.TrimSpace(raw.Header.Client),
			Inspector: strings.TrimSpace(raw.Header.Inspector),
			Date:      date,
		},
		Sections: make([]Section, 0, len(raw.Sections)),
	}

	for i, rs := range raw.Sections {
		s, err := convertSection(i, rs)
		if err != nil {
			return nil, err
		}
		rec.Sections = append(rec.Sections, s)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func convertSection(i int, rs rawSection) (Section, error) {
	status, ok := ParseStatus(rs.Status)
	if !ok {
		return Section{}, &SchemaError{Section: i, Field: "status", Value: rs.Status, Reason: "unrecognized status"}
	}

	title := rs.Title
	if strings.TrimSpace(title) == "" {
		title = rs.Name
	}

	s := Section{
		Title:    strings.TrimSpace(title),
		Status:   status,
		Comments: make([]Comment, 0, len(rs.Comments)),
		Media:    make([]MediaReference, 0, len(rs.Media)),
	}

	for j, rc := range rs.Comments {
		tag := rc.Severity
		if tag == "" {
			tag = rc.Type
		}
		sev, ok := ParseSeverity(tag)
		if !ok {
			return Section{}, &SchemaError{Section: i, Field: fmt.Sprintf("comments[%d].severity", j), Value: tag, Reason: "unrecognized severity"}
		}
		text := rc.Text
		if text == "" {
			text = rc.Value
		}
		s.Comments = append(s.Comments, Comment{Text: text, Severity: sev})
	}

	for j, rm := range rs.Media {
		kind, ok := ParseMediaKind(rm.Kind)
		if !ok {
			return Section{}, &SchemaError{Section: i, Field: fmt.Sprintf("media[%d].kind", j), Value: rm.Kind, Reason: "unrecognized media kind"}
		}
		s.Media = append(s.Media, MediaReference{
			URL:       strings.TrimSpace(rm.URL),
			Kind:      kind,
			Thumbnail: strings.TrimSpace(rm.Thumbnail),
		})
	}

	return s, nil
}

// rawDate accepts a JSON string or number and returns its textual form.
func rawDate(msg json.RawMessage) (string, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return "", nil
	}
	if msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", &SchemaError{Section: -1, Field: "header.date", Reason: err.Error()}
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err != nil {
		return "", &SchemaError{Section: -1, Field: "header.date", Value: string(msg), Reason: "date must be a string or a number"}
	}
	return n.String(), nil
}
