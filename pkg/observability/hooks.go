// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through hook interfaces with no-op defaults; the
// binary registers real implementations at startup. No observability backend
// is imported here.
//
//	func main() {
//	    observability.SetJobHooks(myJobHooks{})
//	    observability.SetCacheHooks(myCacheHooks{})
//	    // ... run
//	}
//
// Emitting:
//
//	observability.Job().OnManifestParsed(ctx, "pypi", path, len(ids), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// JobHooks receives events from a collection run.
type JobHooks interface {
	OnRunStart(ctx context.Context, runID string)
	// OnRowSkipped is called for rows that are not parsed: missing path or
	// content, or an unrecognized manifest name.
	OnRowSkipped(ctx context.Context, path, reason string)
	OnManifestParsed(ctx context.Context, ecosystem, path string, deps int, duration time.Duration)
	OnPersist(ctx context.Context, key string, duration time.Duration, err error)
	OnRunComplete(ctx context.Context, runID string, rows int, duration time.Duration, err error)
}

// CacheHooks receives events from cached registry lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, namespace string)
	OnCacheMiss(ctx context.Context, namespace string)
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// HTTPHooks receives events from registry HTTP calls.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopJobHooks is a no-op implementation of JobHooks.
type NoopJobHooks struct{}

func (NoopJobHooks) OnRunStart(context.Context, string)                                   {}
func (NoopJobHooks) OnRowSkipped(context.Context, string, string)                         {}
func (NoopJobHooks) OnManifestParsed(context.Context, string, string, int, time.Duration) {}
func (NoopJobHooks) OnPersist(context.Context, string, time.Duration, error)              {}
func (NoopJobHooks) OnRunComplete(context.Context, string, int, time.Duration, error)     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	jobHooks   JobHooks   = NoopJobHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetJobHooks registers job hooks. Call once at startup; nil is ignored.
func SetJobHooks(h JobHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		jobHooks = h
	}
}

// SetCacheHooks registers cache hooks. Call once at startup; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Call once at startup; nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Job returns the registered job hooks.
func Job() JobHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return jobHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	jobHooks = NoopJobHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
