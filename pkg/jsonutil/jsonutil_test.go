package jsonutil

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestObjectKeys(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{"document order", `{"zeta": 1, "alpha": 2, "mid": 3}`, []string{"zeta", "alpha", "mid"}, nil},
		{"empty object", `{}`, nil, nil},
		{"duplicate keeps first position", `{"a": 1, "b": 2, "a": 3}`, []string{"a", "b"}, nil},
		{"nested values", `{"x": {"y": [1, 2]}, "z": null}`, []string{"x", "z"}, nil},
		{"array", `["a", "b"]`, nil, ErrNotObject},
		{"string", `"dependencies"`, nil, ErrNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectKeys([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ObjectKeys() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ObjectKeys() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ObjectKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObjectKeysTruncated(t *testing.T) {
	if _, err := ObjectKeys([]byte(`{"a": 1, "b":`)); err == nil {
		t.Error("ObjectKeys() expected error for truncated input")
	}
}

func TestWalkObjectValues(t *testing.T) {
	var values []string
	err := WalkObject([]byte(`{"a": "1.0", "b": 2}`), func(_ string, v json.RawMessage) error {
		values = append(values, string(v))
		return nil
	})
	if err != nil {
		t.Fatalf("WalkObject() error: %v", err)
	}
	if !reflect.DeepEqual(values, []string{`"1.0"`, `2`}) {
		t.Errorf("values = %v", values)
	}
}

func TestIsObject(t *testing.T) {
	if !IsObject([]byte("  \n{\"a\":1}")) {
		t.Error("IsObject() = false for object")
	}
	if IsObject([]byte("[1]")) || IsObject(nil) {
		t.Error("IsObject() = true for non-object")
	}
}

func TestMarshalNoEscape(t *testing.T) {
	got, err := MarshalNoEscape(map[string]int{"a<b": 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a<b":1}` {
		t.Errorf("MarshalNoEscape() = %s", got)
	}
}
