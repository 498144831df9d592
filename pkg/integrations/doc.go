// Package integrations provides HTTP clients for package registry APIs.
//
// The only registry in use is PyPI ([pypi]), queried to confirm that project
// names found in requirements files exist. [Client] holds the shared
// plumbing: JSON GETs, status mapping to [ErrNotFound] and [ErrNetwork],
// retries via [httputil.Backoff], and response caching in a [cache.Cache].
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//	ok, err := client.Exists(ctx, "flask")
//
// [pypi]: github.com/matzehuels/stackcensus/pkg/integrations/pypi
// [httputil.Backoff]: github.com/matzehuels/stackcensus/pkg/httputil.Backoff
// [cache.Cache]: github.com/matzehuels/stackcensus/pkg/cache.Cache
package integrations
