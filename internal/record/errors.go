package record

import (
	"errors"
	"fmt"
)

// ErrSchema is the sentinel wrapped by every *SchemaError.
var ErrSchema = errors.New("invalid inspection record")

// SchemaError reports a malformed record. Section is the zero-based section
// index, or -1 when the problem is not tied to a section.
type SchemaError struct {
	Section int
	Field   string
	Value   string
	Reason  string
}

func (e *SchemaError) Error() string {
	loc := e.Field
	if e.Section >= 0 {
		loc = fmt.Sprintf("sections[%d].%s", e.Section, e.Field)
	}
	if e.Value != "" {
		return fmt.Sprintf("%v: %s: %s (%q)", ErrSchema, loc, e.Reason, e.Value)
	}
	return fmt.Sprintf("%v: %s: %s", ErrSchema, loc, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
