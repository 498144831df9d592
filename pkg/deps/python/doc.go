// Package python extracts PyPI project names from requirements files.
//
// [Requirements] implements [deps.Parser] for the pypi ecosystem. Each
// requirement line is parsed as a PEP 508 specifier; the project name is
// normalized per PEP 503 and version specifiers are checked with
// go-pep440-version. Option lines, editable installs and direct URL or path
// references carry no project name and are skipped.
//
// The result is deduplicated and sorted. With validation enabled the names
// are passed through a [Validator] and anything it rejects is dropped:
//
//	v := python.NewRegistryValidator(pypiClient, logger)
//	p := python.NewRequirements(v, logger)
//	names := p.Parse(ctx, content, true)
//
// A line that cannot be parsed, or a validator error, discards the whole
// manifest.
//
// [deps.Parser]: github.com/matzehuels/stackcensus/pkg/deps.Parser
package python
