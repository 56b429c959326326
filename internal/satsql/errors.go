package satsql

import (
	"fmt"
)

// MalformedInputError reports an input file that is missing, is not valid
// JSON, or is not an array of objects. Index is the offending array element,
// or -1 when the document as a whole is at fault.
type MalformedInputError struct {
	Path  string
	Index int
	Err   error
}

func (e *MalformedInputError) Error() string {
	src := e.Path
	if src == "" {
		src = "input"
	}
	if e.Index >= 0 {
		return fmt.Sprintf("malformed input %s: element %d: %v", src, e.Index, e.Err)
	}
	return fmt.Sprintf("malformed input %s: %v", src, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// MissingRequiredFieldError reports a record that lacks its primary key or
// another field marked required by the schema. ID holds the record's primary
// key when it is known.
type MissingRequiredFieldError struct {
	Index int
	Field string
	ID    string
}

func (e *MissingRequiredFieldError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (id %s): missing required field %q", e.Index, e.ID, e.Field)
	}
	return fmt.Sprintf("record %d: missing required field %q", e.Index, e.Field)
}

// IOError reports a failure to write an output file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
