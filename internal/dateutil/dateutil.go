// Package dateutil parses inspection dates and formats them with
// user-friendly format tokens.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date value")
)

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat matches the layout printed on inspection reports.
const DefaultDateFormat = "MM/DD/YYYY"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// inputLayouts are the string layouts accepted for inspection dates.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"01-02-2006",
}

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds is year 5138; 1e11 milliseconds is March 1973.
const epochMillisThreshold = 1e11

// ParseDateFormat converts a format such as "MM/DD/YYYY" to a Go layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Bracketed text is literal.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// ParseInspectionDate accepts epoch milliseconds (or seconds), RFC 3339 and a
// handful of common date layouts. Numeric values are interpreted in UTC.
func ParseInspectionDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	if n, err := strconv.ParseFloat(value, 64); err == nil {
		if n >= epochMillisThreshold {
			return time.UnixMilli(int64(n)).UTC(), nil
		}
		return time.Unix(int64(n), 0).UTC(), nil
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// FormatDate renders t using a token format (see ParseDateFormat).
// An empty format uses DefaultDateFormat.
func FormatDate(t time.Time, format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// NormalizeDate parses value and re-renders it with format. Values that
// cannot be parsed are returned trimmed and unchanged, as printed reports
// prefer the raw text over an empty field.
func NormalizeDate(value, format string) string {
	t, err := ParseInspectionDate(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	out, err := FormatDate(t, format)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return out
}
