// Package jsonutil holds JSON helpers that encoding/json does not provide:
// walking object members in document order and encoding without HTML escaping.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned by [WalkObject] when the value is valid JSON
// but not an object.
var ErrNotObject = errors.New("json value is not an object")

// WalkObject calls fn for every member of the JSON object in data, in
// document order. Duplicate keys are reported each time they appear.
func WalkObject(data []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}

	// closing brace
	_, err = dec.Token()
	return err
}

// ObjectKeys returns the distinct member names of the JSON object in data,
// in order of first appearance.
func ObjectKeys(data []byte) ([]string, error) {
	var keys []string
	seen := make(map[string]bool)
	err := WalkObject(data, func(key string, _ json.RawMessage) error {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// IsObject reports whether data holds a JSON object, ignoring leading whitespace.
func IsObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// MarshalNoEscape encodes v into JSON without escaping <, >, & into <, etc.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode appends a newline
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
