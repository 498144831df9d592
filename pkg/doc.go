// Package pkg holds the libraries behind stackcensus, a batch job that
// measures which dependency lists open source projects declare.
//
// # Overview
//
// One census pass flows through these packages:
//
//	BigQuery github_repos corpus (or a JSON-lines rows file)
//	         ↓
//	    [query] (submit the manifest query, stream path/content rows)
//	         ↓
//	    [deps] (classify by manifest suffix, parse to identifier lists)
//	         ↓
//	    [aggregate] (count identical lists per ecosystem)
//	         ↓
//	    [store] (merge the tables into the collated JSON document)
//
// [job] wires the stages together and is what the CLI runs.
//
// # Main Packages
//
// [deps] - Ecosystems (maven, npm, pypi), suffix classification and the
// parser capability. Parsers live in deps/java, deps/javascript and
// deps/python.
//
// [aggregate] - Frequency tables keyed by the ", "-joined identifier list,
// encoded most-common-first.
//
// [store] - Shallow-merge update of the persisted document over S3, MongoDB,
// a local directory or memory.
//
// [query] - BigQuery client and the file-backed row source.
//
// # Supporting Packages
//
// [config] - Defaults, TOML file, dotenv and environment layering.
//
// [cache] - Null, LRU, file and Redis caches for registry lookups.
//
// [integrations] - Cached, retrying HTTP client and the PyPI JSON API client
// used to validate requirement names.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hook interfaces for job, cache and HTTP events.
//
// # Testing
//
//	go test ./...                        # unit tests
//	go test -tags integration ./pkg/...  # MinIO, MongoDB, Redis via testcontainers
//
// [query]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/query
// [deps]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/deps
// [aggregate]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/aggregate
// [store]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/store
// [job]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/job
// [config]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/cache
// [integrations]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/integrations
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackcensus/pkg/observability
package pkg
