package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/stackcensus/pkg/deps"
)

func TestCollatedMarshalEmpty(t *testing.T) {
	got, err := json.Marshal(NewCollated())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"maven":{},"npm":{},"pypi":{}}` {
		t.Errorf("Marshal = %s", got)
	}
}

func TestCollatedMarshal(t *testing.T) {
	c := NewCollated()
	c.Add(deps.PyPI, []string{"boto", "chardet", "cookies", "cryptography", "flask"})
	c.Add(deps.Maven, []string{websocket})
	c.Add(deps.NPM, nil)

	got, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"maven":{"org.springframework:spring-websocket":1},"npm":{},"pypi":{"boto, chardet, cookies, cryptography, flask":1}}`
	if string(got) != want {
		t.Errorf("Marshal = %s\nwant      %s", got, want)
	}
}

func TestCollatedSections(t *testing.T) {
	c := NewCollated()
	c.Add(deps.NPM, []string{"request"})

	sections, err := c.Sections()
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 3 {
		t.Fatalf("Sections() has %d members, want 3", len(sections))
	}
	if string(sections["npm"]) != `{"request":1}` || string(sections["maven"]) != `{}` {
		t.Errorf("Sections() = %s / %s", sections["npm"], sections["maven"])
	}
}

func TestCollatedUnmarshal(t *testing.T) {
	doc := `{"npm": {"request": 3, "ejs": 4}, "generated_by": "x", "Maven": {"a:b": 1}}`

	var c Collated
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got := c.Table(deps.NPM).MostCommon(); got[0].Key != "ejs" || got[1].Count != 3 {
		t.Errorf("npm = %v", got)
	}
	if c.Table(deps.Maven).Count("a:b") != 1 {
		t.Error("maven table not read")
	}
	if c.Table(deps.PyPI).Len() != 0 {
		t.Error("missing ecosystem should be empty")
	}

	if err := json.Unmarshal([]byte(`{"npm": {"a": "x"}}`), &c); err == nil {
		t.Error("Unmarshal expected error for bad count")
	}
}

func TestCollatedZeroValue(t *testing.T) {
	var c Collated
	c.Add(deps.Maven, []string{"g:a"})
	if c.Table(deps.Maven).Count("g:a") != 1 {
		t.Error("zero Collated should be usable")
	}
}
