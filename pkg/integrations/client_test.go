package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/stackcensus/pkg/cache"
	"github.com/matzehuels/stackcensus/pkg/httputil"
	"github.com/matzehuels/stackcensus/pkg/observability"
)

func testClient(t *testing.T, server *httptest.Server, headers map[string]string) (*Client, cache.Cache) {
	t.Helper()
	c, err := cache.NewMemoryCache(16)
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(c, "test", time.Hour, headers)
	client.SetBackoff(httputil.Backoff{Attempts: 2, Delay: time.Millisecond})
	if server != nil {
		client.SetHTTPClient(server.Client())
	}
	return client, c
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)
	if client.cache == nil {
		t.Error("NewClient() should fall back to a null cache")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client, _ := testClient(t, server, nil)

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var override, def string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		override = r.Header.Get("X-Override")
		def = r.Header.Get("X-Default")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client, _ := testClient(t, server, map[string]string{"X-Override": "default", "X-Default": "kept"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if override != "overridden" || def != "kept" {
		t.Errorf("headers = %q, %q", override, def)
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client, _ := testClient(t, server, nil)

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientCached(t *testing.T) {
	client, backend := testClient(t, nil, nil)
	ctx := context.Background()

	type record struct {
		Value string `json:"value"`
	}
	fetches := 0
	load := func(refresh bool) record {
		var v record
		err := client.Cached(ctx, "flask", refresh, &v, func() error {
			fetches++
			v = record{Value: "fetched"}
			return nil
		})
		if err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
		return v
	}

	if got := load(false); got.Value != "fetched" {
		t.Errorf("first load = %+v", got)
	}
	if got := load(false); got.Value != "fetched" || fetches != 1 {
		t.Errorf("second load = %+v, fetches = %d, want cache hit", got, fetches)
	}
	load(true)
	if fetches != 2 {
		t.Errorf("refresh should bypass cache, fetches = %d", fetches)
	}

	if _, hit, _ := backend.Get(ctx, cache.HTTPKey("test", "flask")); !hit {
		t.Error("value should be stored under the namespaced key")
	}
}

func TestClientCachedRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer server.Close()

	client, _ := testClient(t, server, nil)

	var v map[string]bool
	err := client.Cached(context.Background(), "k", false, &v, func() error {
		return client.Get(context.Background(), server.URL, &v)
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls.Load() != 2 || !v["ok"] {
		t.Errorf("calls = %d, v = %v", calls.Load(), v)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client, backend := testClient(t, nil, nil)

	var value string
	err := client.Cached(context.Background(), "missing", false, &value, func() error {
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if _, hit, _ := backend.Get(context.Background(), cache.HTTPKey("test", "missing")); hit {
		t.Error("failed fetch must not be cached")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "429 Too Many Requests", code: 429, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "500 Internal Server Error", code: 500, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "503 Service Unavailable", code: 503, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "400 Bad Request", code: 400, wantErr: true, wantType: ErrNetwork},
		{name: "403 Forbidden", code: 403, wantErr: true, wantType: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			var retryErr *httputil.RetryableError
			if got := errors.As(err, &retryErr); got != tt.isRetryErr {
				t.Errorf("retryable = %v, want %v", got, tt.isRetryErr)
			}
		})
	}
}

func TestNormalizePkgName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Package", "package"},
		{"underscore to dash", "my_package", "my-package"},
		{"dots", "zope.interface", "zope-interface"},
		{"runs collapse", "a.-_b", "a-b"},
		{"trim spaces", "  package  ", "package"},
		{"combined", "  My_Package  ", "my-package"},
		{"empty", "", ""},
		{"already normalized", "my-package", "my-package"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePkgName(tt.input); got != tt.want {
				t.Errorf("NormalizePkgName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()
	if client.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, httpTimeout)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestClientCachedHooks(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	client, _ := testClient(t, nil, nil)
	var v string
	fetch := func() error { v = "x"; return nil }

	_ = client.Cached(context.Background(), "k", false, &v, fetch)
	_ = client.Cached(context.Background(), "k", false, &v, fetch)

	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %+v, want 1 miss, 1 hit, 1 set", *hooks)
	}
}
