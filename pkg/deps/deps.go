package deps

import (
	"fmt"
	"strings"
)

// Ecosystem is a package-manager domain with its own manifest format.
type Ecosystem string

const (
	Maven Ecosystem = "maven" // pom.xml
	NPM   Ecosystem = "npm"   // package.json
	PyPI  Ecosystem = "pypi"  // requirements.txt
)

// Ecosystems lists every supported ecosystem in classification order.
var Ecosystems = []Ecosystem{Maven, NPM, PyPI}

var manifests = map[Ecosystem]string{
	Maven: "pom.xml",
	NPM:   "package.json",
	PyPI:  "requirements.txt",
}

// Manifest returns the canonical manifest filename suffix for e,
// or "" for an unknown ecosystem.
func (e Ecosystem) Manifest() string { return manifests[e] }

func (e Ecosystem) String() string { return string(e) }

// ParseEcosystem converts a name such as "npm" into an Ecosystem.
func ParseEcosystem(name string) (Ecosystem, error) {
	e := Ecosystem(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := manifests[e]; !ok {
		return "", fmt.Errorf("unknown ecosystem %q (available: maven, npm, pypi)", name)
	}
	return e, nil
}

// Classify returns the ecosystem whose manifest suffix path ends with.
// The first match in [Ecosystems] order wins.
func Classify(path string) (Ecosystem, bool) {
	for _, e := range Ecosystems {
		if strings.HasSuffix(path, e.Manifest()) {
			return e, true
		}
	}
	return "", false
}

// Suffixes returns the manifest suffixes in [Ecosystems] order.
func Suffixes() []string {
	out := make([]string, len(Ecosystems))
	for i, e := range Ecosystems {
		out[i] = e.Manifest()
	}
	return out
}
