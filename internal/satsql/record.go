package satsql

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Record is one satellite object read from the input document. Numbers are
// held as json.Number so that their source text survives untouched.
type Record map[string]any

// Lookup returns the value stored under key. Key matching is case-sensitive.
// An absent key and a JSON null both report ok == false.
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// LoadRecords reads the JSON array of satellite objects stored at path.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Index: -1, Err: err}
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		var mErr *MalformedInputError
		if errors.As(err, &mErr) {
			mErr.Path = path
		}
		return nil, err
	}
	return records, nil
}

// DecodeRecords decodes a JSON array of objects from r. Any other document
// shape is reported as a *MalformedInputError.
func DecodeRecords(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var elems []json.RawMessage
	if err := dec.Decode(&elems); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, &MalformedInputError{Index: -1, Err: err}
	}
	if elems == nil {
		return nil, &MalformedInputError{Index: -1, Err: errors.New("document is null, want an array of objects")}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedInputError{Index: -1, Err: errors.New("unexpected data after the top-level array")}
	}

	records := make([]Record, 0, len(elems))
	for i, raw := range elems {
		if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
			return nil, &MalformedInputError{Index: i, Err: fmt.Errorf("want an object, got %s", describeJSON(raw))}
		}

		elemDec := json.NewDecoder(bytes.NewReader(raw))
		elemDec.UseNumber()

		var rec Record
		if err := elemDec.Decode(&rec); err != nil {
			return nil, &MalformedInputError{Index: i, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// describeJSON names the kind of a raw JSON value for error messages.
func describeJSON(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '[':
		return "an array"
	case '"':
		return "a string"
	case 'n':
		return "null"
	case 't', 'f':
		return "a boolean"
	default:
		return "a number"
	}
}

// textOf renders v the way it appeared in the source document. Values that
// were not decoded from JSON fall back to their JSON encoding.
func textOf(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
