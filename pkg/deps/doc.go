// Package deps defines the ecosystems stackcensus understands and the parser
// capability that turns one manifest into a dependency identifier list.
//
// # Overview
//
// Three ecosystems are supported, each with exactly one manifest suffix:
//
//   - [Maven]: pom.xml, identifiers are "group:artifact"
//   - [NPM]: package.json, identifiers are bare package names
//   - [PyPI]: requirements.txt, identifiers are PEP 503 normalized names
//
// [Classify] maps a corpus path to its ecosystem by suffix. The fixed order
// of [Ecosystems] decides ties, though the suffixes are disjoint in practice.
//
// # Parsers
//
// A [Parser] never returns an error. Malformed content is logged at warning
// level by the parser itself and yields an empty list, so one broken manifest
// can never abort a pass. Callers hold parsers in an explicit [Parsers] map
// built once at setup:
//
//	parsers := deps.Parsers{
//	    deps.Maven: java.NewPOMParser(logger),
//	    deps.NPM:   javascript.NewPackageJSON(logger),
//	    deps.PyPI:  python.NewRequirements(v, logger),
//	}
//	ids := parsers[deps.NPM].Parse(ctx, content, true)
//
// The validate flag is only meaningful for PyPI, where it filters names
// through a [python.Validator].
//
// # Subpackages
//
//   - [java]: pom.xml
//   - [javascript]: package.json, including corrupt-JSON recovery
//   - [python]: requirements.txt and name validation
//
// [java]: github.com/matzehuels/stackcensus/pkg/deps/java
// [javascript]: github.com/matzehuels/stackcensus/pkg/deps/javascript
// [python]: github.com/matzehuels/stackcensus/pkg/deps/python
// [python.Validator]: github.com/matzehuels/stackcensus/pkg/deps/python.Validator
package deps
