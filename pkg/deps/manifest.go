package deps

import (
	"context"
	"fmt"
	"path/filepath"
)

// Parser extracts dependency identifiers from one manifest.
type Parser interface {
	// Parse returns the identifiers declared in content. Failures are logged
	// by the parser and reported as an empty result, never as an error.
	// validate asks the parser to drop identifiers that fail an existence
	// check; parsers without a validation step ignore it.
	Parse(ctx context.Context, content []byte, validate bool) []string
}

// ParserFunc adapts a plain function to the [Parser] interface.
type ParserFunc func(ctx context.Context, content []byte, validate bool) []string

// Parse calls f.
func (f ParserFunc) Parse(ctx context.Context, content []byte, validate bool) []string {
	return f(ctx, content, validate)
}

// Parsers maps each ecosystem to its parser. It is built once by the caller
// and passed explicitly; there is no package-level registry.
type Parsers map[Ecosystem]Parser

// Check reports an error if any ecosystem in [Ecosystems] has no parser.
func (p Parsers) Check() error {
	for _, e := range Ecosystems {
		if p[e] == nil {
			return fmt.Errorf("no parser registered for %s", e)
		}
	}
	return nil
}

// DetectManifest classifies a local file path by its base name.
// Returns an error if the file is not a supported manifest.
func DetectManifest(path string) (Ecosystem, error) {
	name := filepath.Base(path)
	if e, ok := Classify(name); ok {
		return e, nil
	}
	return "", fmt.Errorf("unsupported manifest: %s", name)
}
