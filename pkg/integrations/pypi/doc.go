// Package pypi provides an HTTP client for the Python Package Index JSON API.
//
// # Usage
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//	ok, err := client.Exists(ctx, "Flask")  // true, nil
//
// Names are normalized following PEP 503 before lookup, so "Flask",
// "flask" and "FLASK" share one cache entry.
//
// # Caching
//
// Lookups are cached in the [cache.Cache] given to [NewClient], including
// negative answers from [Client.Exists]. Network failures are never cached.
//
// [cache.Cache]: github.com/matzehuels/stackcensus/pkg/cache.Cache
package pypi
