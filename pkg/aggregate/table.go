package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/stackcensus/pkg/jsonutil"
)

// Separator joins identifiers into a key.
const Separator = ", "

// Key builds the table key for one manifest's identifiers.
func Key(ids []string) string {
	return strings.Join(ids, Separator)
}

// Entry is one key and how many manifests produced it.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Table is a frequency table that remembers first-insertion order.
// The zero value is ready to use.
type Table struct {
	index   map[string]int
	entries []Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add counts one manifest. An empty list is ignored.
func (t *Table) Add(ids []string) {
	if len(ids) == 0 {
		return
	}
	t.increment(Key(ids), 1)
}

func (t *Table) increment(key string, n int) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[key]; ok {
		t.entries[i].Count += n
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: key, Count: n})
}

// Count returns the count for key, zero if absent.
func (t *Table) Count(key string) int {
	if i, ok := t.index[key]; ok {
		return t.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct keys.
func (t *Table) Len() int { return len(t.entries) }

// Total returns the number of manifests counted.
func (t *Table) Total() int {
	n := 0
	for _, e := range t.entries {
		n += e.Count
	}
	return n
}

// MostCommon returns all entries by descending count. Entries with equal
// counts keep their first-insertion order.
func (t *Table) MostCommon() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Top returns at most n entries of [Table.MostCommon]. n <= 0 means all.
func (t *Table) Top(n int) []Entry {
	all := t.MostCommon()
	if n > 0 && n < len(all) {
		return all[:n]
	}
	return all
}

// MarshalJSON encodes the table as an object in [Table.MostCommon] order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.MostCommon() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := jsonutil.MarshalNoEscape(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the table with the object in data, keeping the
// document's member order. Counts must be non-negative integers.
func (t *Table) UnmarshalJSON(data []byte) error {
	fresh := Table{}
	err := jsonutil.WalkObject(data, func(key string, value json.RawMessage) error {
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return fmt.Errorf("count for %q: %w", key, err)
		}
		if n < 0 {
			return fmt.Errorf("count for %q is negative", key)
		}
		fresh.increment(key, n)
		return nil
	})
	if err != nil {
		return err
	}
	*t = fresh
	return nil
}
