package javascript

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/tailscale/hujson"

	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/jsonutil"
)

// PackageJSON parses package.json content.
type PackageJSON struct {
	logger *log.Logger
}

// NewPackageJSON returns a parser that reports unreadable manifests on logger.
// A nil logger uses the charmbracelet default.
func NewPackageJSON(logger *log.Logger) *PackageJSON {
	if logger == nil {
		logger = log.Default()
	}
	return &PackageJSON{logger: logger}
}

// Parse returns the dependency names of the manifest, falling back to
// [RecoverDependencies] when the content is not decodable JSON.
// validate is ignored.
func (p *PackageJSON) Parse(_ context.Context, content []byte, _ bool) []string {
	names, err := ExtractDependencies(content)
	if err == nil {
		return names
	}
	p.logger.Warn("malformed package.json, attempting recovery", "err", err)

	names, err = RecoverDependencies(content)
	if err != nil {
		p.logger.Warn("skipping package.json", "err", err)
		return nil
	}
	return names
}

// ExtractDependencies decodes content and returns the keys of its
// "dependencies" object. A document that decodes but has no such object
// (absent, null, an array, or a top level that is not an object) yields no
// names and no error. Only undecodable content is an error.
func ExtractDependencies(content []byte) ([]string, error) {
	// Standardize rewrites its argument in place.
	std, err := hujson.Standardize(bytes.Clone(content))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "decode package.json")
	}
	if !jsonutil.IsObject(std) {
		return nil, nil
	}

	var pkg packageFile
	if err := json.Unmarshal(std, &pkg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "decode package.json")
	}
	if !jsonutil.IsObject(pkg.Dependencies) {
		return nil, nil
	}

	keys, err := jsonutil.ObjectKeys(pkg.Dependencies)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "read dependencies")
	}
	return nonEmpty(keys), nil
}

// packageFile decodes only the top-level dependencies member, so other
// members of any type never fail the decode.
type packageFile struct {
	Dependencies json.RawMessage `json:"dependencies"`
}

func nonEmpty(names []string) []string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
