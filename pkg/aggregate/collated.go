package aggregate

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/stackcensus/pkg/deps"
	"github.com/matzehuels/stackcensus/pkg/jsonutil"
)

// Collated holds one table per ecosystem, in [deps.Ecosystems] order.
type Collated struct {
	tables map[deps.Ecosystem]*Table
}

// NewCollated returns a Collated with an empty table for every ecosystem.
func NewCollated() *Collated {
	c := &Collated{tables: make(map[deps.Ecosystem]*Table, len(deps.Ecosystems))}
	for _, e := range deps.Ecosystems {
		c.tables[e] = NewTable()
	}
	return c
}

// Table returns the table for e, creating it if needed.
func (c *Collated) Table(e deps.Ecosystem) *Table {
	if c.tables == nil {
		c.tables = make(map[deps.Ecosystem]*Table)
	}
	t, ok := c.tables[e]
	if !ok {
		t = NewTable()
		c.tables[e] = t
	}
	return t
}

// Add counts one manifest of ecosystem e.
func (c *Collated) Add(e deps.Ecosystem, ids []string) {
	c.Table(e).Add(ids)
}

// Sections returns each ecosystem's encoded table, keyed by ecosystem name.
// This is the shape merged into the persisted document.
func (c *Collated) Sections() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(deps.Ecosystems))
	for _, e := range deps.Ecosystems {
		data, err := c.Table(e).MarshalJSON()
		if err != nil {
			return nil, err
		}
		out[e.String()] = data
	}
	return out, nil
}

// MarshalJSON encodes {"maven": {...}, "npm": {...}, "pypi": {...}}.
func (c *Collated) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range deps.Ecosystems {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := jsonutil.MarshalNoEscape(e.String())
		if err != nil {
			return nil, err
		}
		table, err := c.Table(e).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(table)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a persisted document. Members that are not an
// ecosystem name are ignored; ecosystems missing from data get empty tables.
func (c *Collated) UnmarshalJSON(data []byte) error {
	fresh := NewCollated()
	err := jsonutil.WalkObject(data, func(key string, value json.RawMessage) error {
		e, err := deps.ParseEcosystem(key)
		if err != nil {
			return nil
		}
		return fresh.Table(e).UnmarshalJSON(value)
	})
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}
