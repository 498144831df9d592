// Package javascript extracts npm package names from package.json manifests.
//
// # Overview
//
// [PackageJSON] implements [deps.Parser] for the npm ecosystem. It returns
// the keys of the top-level "dependencies" object in document order.
// devDependencies, peerDependencies and the rest of the manifest are ignored.
//
//	p := javascript.NewPackageJSON(logger)
//	names := p.Parse(ctx, content, true)
//
// # Lenient Decoding
//
// Manifests are standardized with [hujson] before decoding, so comments and
// trailing commas are accepted.
//
// # Recovery
//
// When a manifest cannot be decoded at all, a regex pass looks for the first
// "dependencies" block, rebuilds it as a minimal JSON document and decodes
// that instead. See [RecoverDependencies]. A manifest that defeats both
// paths contributes no names.
//
// [hujson]: https://pkg.go.dev/github.com/tailscale/hujson
// [deps.Parser]: github.com/matzehuels/stackcensus/pkg/deps.Parser
package javascript
