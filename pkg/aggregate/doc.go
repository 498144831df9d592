// Package aggregate counts how often each dependency combination occurs.
//
// A [Table] belongs to one ecosystem. Every manifest contributes one key: its
// identifier list joined with ", " in the order the parser returned it.
// Two manifests with the same dependencies in a different order therefore
// produce different keys. Parsers that sort (npm keys follow the document,
// PyPI names are sorted) make that order stable; Maven keeps document order.
//
// [Collated] holds one table per ecosystem and encodes to the persisted form:
//
//	{"maven": {"<key>": <count>, ...}, "npm": {...}, "pypi": {...}}
//
// with each inner object ordered most frequent first.
//
// Neither type is safe for concurrent use.
package aggregate
