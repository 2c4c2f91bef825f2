package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API defines the inventory operations. It is implemented by *Client and can
// be faked in tests.
type API interface {
	AddStock(ctx context.Context, upc, shelf string) error
	RemoveStock(ctx context.Context, upc, shelf string) error
	CountStock(ctx context.Context, upc string) (*ItemCount, error)
	ListStock(ctx context.Context, opts ListOptions) (*ItemList, error)
	CreateShelf(ctx context.Context, name, parent string) error
	DeleteShelf(ctx context.Context, name string, deleteItems bool) error
	GetShelf(ctx context.Context, shelf string, opts ListOptions) (*Shelf, error)
	ShelfItems(ctx context.Context, shelf string, opts ShelfItemsOptions) (*ItemList, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the inventory HTTP API.
//
// The transport is created on first use unless supplied with WithHTTPClient.
// That first initialisation is not synchronised: make one call (or pass a
// transport) before sharing a Client across goroutines.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "stockroom/0.1"
	defaultTimeout   = 10 * time.Second

	// DefaultLimit is the page size used when ListOptions.Limit is unset.
	DefaultLimit = 50
)

// The shelf read endpoints reuse the stocking paths; the server in use
// answers shelf queries there.
const (
	pathStockAdd    = "/stocking/add/"
	pathStockRemove = "/stocking/remove/"
	pathStockCount  = "/stocking/count/"
	pathStockList   = "/stocking/list/"
	pathShelfCreate = "/shelves/create/"
	pathShelfDelete = "/shelves/delete/"
	pathShelfGet    = "/stocking/count/"
	pathShelfItems  = "/stocking/list/"
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient supplies the transport instead of creating one lazily.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the overall request timeout of the lazily created
// transport. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the inventory API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListOptions pages through list endpoints. A Limit of zero or less sends
// DefaultLimit, so limit=0 can never be requested.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) values() url.Values {
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	values.Set("offset", strconv.Itoa(o.Offset))
	return values
}

// ShelfItemsOptions configures ShelfItems.
type ShelfItemsOptions struct {
	ListOptions
	IncludeSubshelves bool
	RecurseSubshelves bool
}

type stockPacket struct {
	UPC   string `json:"upc"`
	Shelf string `json:"shelf"`
}

type shelfPacket struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// AddStock records one unit of upc on shelf.
func (c *Client) AddStock(ctx context.Context, upc, shelf string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.send(ctx, "add stock", http.MethodPost, pathStockAdd, nil, stockPacket{UPC: upc, Shelf: shelf})
}

// RemoveStock removes one unit of upc from shelf.
func (c *Client) RemoveStock(ctx context.Context, upc, shelf string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("upc", upc)
	values.Set("shelf", shelf)
	return c.send(ctx, "remove stock", http.MethodDelete, pathStockRemove, values, nil)
}

// CountStock returns the stocked total of upc and its per-shelf breakdown.
func (c *Client) CountStock(ctx context.Context, upc string) (*ItemCount, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("upc", upc)
	var payload ItemCount
	if err := c.fetch(ctx, "count stock", pathStockCount, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListStock returns one page of stocked items.
func (c *Client) ListStock(ctx context.Context, opts ListOptions) (*ItemList, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ItemList
	if err := c.fetch(ctx, "list stock", pathStockList, opts.values(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateShelf creates a shelf, nested under parent when parent is non-empty.
func (c *Client) CreateShelf(ctx context.Context, name, parent string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.send(ctx, "create shelf", http.MethodPost, pathShelfCreate, nil, shelfPacket{Name: name, Parent: parent})
}

// DeleteShelf deletes a shelf. Callers normally pass deleteItems=true so the
// shelf's stock goes with it.
func (c *Client) DeleteShelf(ctx context.Context, name string, deleteItems bool) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("name", name)
	values.Set("delete_items", strconv.FormatBool(deleteItems))
	return c.send(ctx, "delete shelf", http.MethodDelete, pathShelfDelete, values, nil)
}

// GetShelf returns a shelf with its item count and subshelves.
func (c *Client) GetShelf(ctx context.Context, shelf string, opts ListOptions) (*Shelf, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := opts.values()
	values.Set("shelf", shelf)
	var payload Shelf
	if err := c.fetch(ctx, "get shelf", pathShelfGet, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ShelfItems returns one page of the items stocked on shelf.
func (c *Client) ShelfItems(ctx context.Context, shelf string, opts ShelfItemsOptions) (*ItemList, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := opts.values()
	values.Set("shelf", shelf)
	values.Set("include_subshelves", strconv.FormatBool(opts.IncludeSubshelves))
	values.Set("recurse_subshelves", strconv.FormatBool(opts.RecurseSubshelves))
	var payload ItemList
	if err := c.fetch(ctx, "shelf items", pathShelfItems, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ensureTransport creates the HTTP client on first use.
func (c *Client) ensureTransport() *http.Client {
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c.http
}

// send performs a write call. A failure keeps the response text.
func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, body any) error {
	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		text, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s: read response: %w", op, err)
		}
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(text)}
	}
	return nil
}

// fetch performs a read call and decodes the JSON payload into dest. A
// failure discards the response body.
func (c *Client) fetch(ctx context.Context, op, path string, query url.Values, dest any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.ensureTransport().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func parseBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse inventory url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("parse inventory url %q: host is empty", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
