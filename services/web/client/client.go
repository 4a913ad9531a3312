// Package client calls the Items API over HTTP on behalf of the web binary.
package client

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 10 * time.Second

// Item mirrors the API item representation.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConnectionInfo mirrors GET /api/db-info.
type ConnectionInfo struct {
	DatabaseURL    string `json:"databaseUrl"`
	DatabaseName   string `json:"databaseName"`
	Connected      bool   `json:"connected"`
	AuthEnabled    bool   `json:"authEnabled"`
	AdminInterface string `json:"adminInterface"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default traced HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New returns a Client for the API rooted at baseURL (e.g. http://localhost:5000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListItems fetches all items, newest first.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem creates an item with name, sent exactly as given.
func (c *Client) CreateItem(ctx context.Context, name string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/api/items", map[string]string{"name": name}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem renames the item with id.
func (c *Client) UpdateItem(ctx context.Context, id, name string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPut, "/api/items/"+url.PathEscape(id), map[string]string{"name": name}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes the item with id.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil)
}

// ConnectionInfo fetches the API's store connection summary.
func (c *Client) ConnectionInfo(ctx context.Context) (*ConnectionInfo, error) {
	var info ConnectionInfo
	if err := c.do(ctx, http.MethodGet, "/api/db-info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Ping checks the API is reachable. Satisfies httpx.HealthChecker.
// db-info is used because it never touches the store.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ConnectionInfo(ctx)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusBadRequest {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
