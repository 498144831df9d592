package pypi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/stackcensus/pkg/cache"
	"github.com/matzehuels/stackcensus/pkg/integrations"
)

// DefaultBaseURL is the PyPI JSON API root.
const DefaultBaseURL = "https://pypi.org/pypi"

// PackageInfo holds the parts of a PyPI project record used for validation.
type PackageInfo struct {
	Name    string `json:"name"`    // as published, not normalized
	Version string `json:"version"` // latest release
	Summary string `json:"summary,omitempty"`
}

// Client provides access to the PyPI JSON API.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client whose responses are cached in backend
// for cacheTTL. A nil backend disables caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "pypi", cacheTTL, nil),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL points the client at a mirror or a test server.
func (c *Client) WithBaseURL(base string) *Client {
	if base != "" {
		c.baseURL = strings.TrimRight(base, "/")
	}
	return c
}

// FetchPackage retrieves the project record for pkg. The name is PEP 503
// normalized first. Returns [integrations.ErrNotFound] for unknown projects.
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)

	var info PackageInfo
	err := c.Cached(ctx, "info:"+pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

type existence struct {
	Exists bool `json:"exists"`
}

// Exists reports whether pkg is a published PyPI project. Both answers are
// cached; network failures are returned as errors.
func (c *Client) Exists(ctx context.Context, pkg string) (bool, error) {
	pkg = integrations.NormalizePkgName(pkg)
	if pkg == "" {
		return false, nil
	}

	var res existence
	err := c.Cached(ctx, "exists:"+pkg, false, &res, func() error {
		var info PackageInfo
		err := c.fetch(ctx, pkg, &info)
		switch {
		case errors.Is(err, integrations.ErrNotFound):
			res.Exists = false
			return nil
		case err != nil:
			return err
		}
		res.Exists = true
		return nil
	})
	return res.Exists, err
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(pkg)), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return err
	}
	*info = PackageInfo{
		Name:    data.Info.Name,
		Version: data.Info.Version,
		Summary: data.Info.Summary,
	}
	return nil
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
}
