package pypi

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
	"github.com/matzehuels/stackcensus/pkg/integrations"
)

func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	backend, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(backend, time.Hour).WithBaseURL(server.URL)
	c.SetHTTPClient(server.Client())
	c.SetBackoff(httputil.Backoff{Attempts: 1})
	return c
}

func flaskServer(hits *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		switch r.URL.Path {
		case "/flask/json":
			json.NewEncoder(w).Encode(apiResponse{Info: apiInfo{
				Name:    "Flask",
				Version: "2.0.0",
				Summary: "A micro web framework",
			}})
		case "/broken/json":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClient_FetchPackage(t *testing.T) {
	server := flaskServer(nil)
	defer server.Close()

	info, err := testClient(t, server).FetchPackage(context.Background(), "Flask", true)
	if err != nil {
		t.Fatalf("FetchPackage failed: %v", err)
	}
	if info.Name != "Flask" || info.Version != "2.0.0" {
		t.Errorf("FetchPackage() = %+v", info)
	}
}

func TestClient_FetchPackage_NotFound(t *testing.T) {
	server := flaskServer(nil)
	defer server.Close()

	_, err := testClient(t, server).FetchPackage(context.Background(), "missing-pkg", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Exists(t *testing.T) {
	var hits atomic.Int32
	server := flaskServer(&hits)
	defer server.Close()

	c := testClient(t, server)
	ctx := context.Background()

	tests := []struct {
		name string
		want bool
	}{
		{"flask", true},
		{"FLASK", true},
		{"unknown1", false},
		{"unknown1", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := c.Exists(ctx, tt.name)
		if err != nil {
			t.Fatalf("Exists(%q) error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Exists(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	// flask once, unknown1 once; repeats and normalized spellings hit the cache
	if hits.Load() != 2 {
		t.Errorf("server hits = %d, want 2", hits.Load())
	}
}

func TestClient_ExistsNetworkError(t *testing.T) {
	server := flaskServer(nil)
	defer server.Close()

	_, err := testClient(t, server).Exists(context.Background(), "broken")
	if !errors.Is(err, integrations.ErrNetwork) {
		t.Errorf("Exists() error = %v, want ErrNetwork", err)
	}
}
