package javascript

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

var (
	// The first "dependencies" key and everything up to the next closing brace.
	// Case-sensitive, so "devDependencies" never matches.
	blockPattern = regexp.MustCompile(`(?s)dependencies['"](?:|.|\s+):(?:|.|\s+)\{(.*?)\}`)

	// A quoted name directly followed by a colon, then a value. The value's
	// quotes are optional; trailing commas were already split off.
	quotedPair = regexp.MustCompile(`(?s)["']([^"]*)["']:\s*["']?(.*)["']`)
	barePair   = regexp.MustCompile(`(?s)["']([^"]*)["']:\s*(\S.*)`)
)

// RecoverDependencies salvages dependency names from a package.json that
// could not be decoded. It isolates the first dependencies block with a
// pattern match, extracts name/value pairs line by line, and decodes the
// rebuilt {"dependencies": {...}} document with [ExtractDependencies].
//
// A manifest without a recognizable block is an error. Pairs that do not
// match are dropped.
func RecoverDependencies(content []byte) (ids []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ids, err = nil, errors.New(errors.ErrCodeParseFailure, "recover package.json: %v", r)
		}
	}()

	m := blockPattern.FindSubmatch(content)
	if m == nil {
		return nil, errors.New(errors.ErrCodeParseFailure, "no dependencies block found")
	}

	var pairs []string
	lines := strings.FieldsFunc(string(m[1]), func(r rune) bool { return r == '\n' || r == '\r' })
	for _, line := range lines {
		for _, field := range strings.Split(line, ",") {
			if pair, ok := matchPair(strings.TrimSpace(field)); ok {
				pairs = append(pairs, pair)
			}
		}
	}

	doc := `{"dependencies": {` + strings.Join(pairs, ", ") + `}}`
	return ExtractDependencies([]byte(doc))
}

// matchPair rewrites one "name": "value" fragment as a JSON member.
func matchPair(field string) (string, bool) {
	sub := quotedPair.FindStringSubmatch(field)
	if sub == nil {
		sub = barePair.FindStringSubmatch(field)
	}
	if sub == nil {
		return "", false
	}
	name, _ := json.Marshal(sub[1])
	version, _ := json.Marshal(strings.TrimSpace(sub[2]))
	return string(name) + ": " + string(version), true
}
