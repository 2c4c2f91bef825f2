package upc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned by LookupClient.Get when the service has no usable
// record for a code.
var ErrNotFound = errors.New("upc not found")

// DefaultLookupURL is the public UPC lookup service.
const DefaultLookupURL = "https://upc.skystuff.cc/api/"

const (
	defaultUserAgent     = "stockroom/0.1"
	lookupRequestTimeout = 10 * time.Second
)

// LookupClient talks to the UPC lookup HTTP API.
type LookupClient struct {
	baseURL   string
	http      *http.Client
	userAgent string
	inflight  singleflight.Group
}

// NewLookupClient builds a LookupClient rooted at baseURL. An empty baseURL
// uses DefaultLookupURL and a nil httpClient gets a client with a 10s timeout.
func NewLookupClient(baseURL string, httpClient *http.Client) (*LookupClient, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultLookupURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse lookup url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse lookup url %q: scheme and host required", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: lookupRequestTimeout}
	}
	return &LookupClient{
		baseURL:   trimmed,
		http:      httpClient,
		userAgent: defaultUserAgent,
	}, nil
}

// Validate checks a UPC-A locally. The remote validation endpoint rate-limits
// repeated calls, so it is never used.
func (c *LookupClient) Validate(code string) bool {
	return ValidateUPCA(code)
}

// Get fetches the catalog record for code. Non-200 responses and bodies that
// are not a single catalog object yield ErrNotFound. Concurrent calls for the
// same code share one request. Each caller's ctx only ends its own wait; the
// shared request is bounded by the transport timeout.
func (c *LookupClient) Get(ctx context.Context, code string) (CatalogItem, error) {
	if c == nil {
		return CatalogItem{}, fmt.Errorf("client is nil")
	}
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(code, func() (any, error) {
		return c.fetch(shared, code)
	})
	select {
	case <-ctx.Done():
		return CatalogItem{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return CatalogItem{}, res.Err
		}
		return res.Val.(CatalogItem), nil
	}
}

func (c *LookupClient) fetch(ctx context.Context, code string) (CatalogItem, error) {
	reqURL := buildURL(c.baseURL, "upc", url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return CatalogItem{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return CatalogItem{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return CatalogItem{}, fmt.Errorf("%w: lookup %s returned status %d", ErrNotFound, code, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CatalogItem{}, fmt.Errorf("%w: read response: %v", ErrNotFound, err)
	}
	item, err := decodeCatalogItem(body)
	if err != nil {
		return CatalogItem{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return item, nil
}

// decodeCatalogItem accepts only a JSON object whose keys are catalog fields.
func decodeCatalogItem(body []byte) (CatalogItem, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	var item *CatalogItem
	if err := decoder.Decode(&item); err != nil {
		return CatalogItem{}, fmt.Errorf("decode response: %w", err)
	}
	if item == nil {
		return CatalogItem{}, fmt.Errorf("decode response: empty payload")
	}
	return *item, nil
}

// buildURL joins path segments onto base, trimming slashes and skipping
// empty segments.
func buildURL(base string, segments ...string) string {
	out := strings.TrimRight(base, "/")
	for _, seg := range segments {
		trimmed := strings.Trim(seg, "/")
		if trimmed == "" {
			continue
		}
		out = out + "/" + trimmed
	}
	return out
}
