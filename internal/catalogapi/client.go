package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cafe_storefront_backend/internal/models"
)

const (
	defaultBaseURL    = "https://connect.squareup.com"
	searchPath        = "/v2/catalog/search"
	listPath          = "/v2/catalog/list"
	defaultAPIVersion = "2023-10-18"
)

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SearchResult is one page of a catalog search.
type SearchResult struct {
	Objects        []models.CatalogObject `json:"objects"`
	RelatedObjects []models.CatalogObject `json:"related_objects"`
	Cursor         string                 `json:"cursor"`
}

// ListResult is one page of a catalog list.
type ListResult struct {
	Objects []models.CatalogObject `json:"objects"`
	Cursor  string                 `json:"cursor"`
}

// API describes the catalog service operations the storefront consumes.
type API interface {
	Search(ctx context.Context, objectTypes []string, cursor string, includeRelated bool) (*SearchResult, error)
	List(ctx context.Context, objectType string, cursor string) (*ListResult, error)
	Configured() bool
}

// Client queries the point-of-sale catalog service over HTTP.
type Client struct {
	httpClient  HTTPClient
	baseURL     string
	accessToken string
	apiVersion  string
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL replaces the default upstream base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithAPIVersion overrides the upstream API version header.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// NewClient creates a catalog client. An empty accessToken yields an
// unconfigured client whose calls fail fast with ErrNotConfigured.
func NewClient(accessToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		apiVersion:  defaultAPIVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client holds an access token.
func (c *Client) Configured() bool {
	return c.accessToken != ""
}

// Search fetches one page of catalog objects of the given types.
func (c *Client) Search(ctx context.Context, objectTypes []string, cursor string, includeRelated bool) (*SearchResult, error) {
	body := map[string]any{
		"object_types":            objectTypes,
		"include_related_objects": includeRelated,
	}
	if cursor != "" {
		body["cursor"] = cursor
	}

	result := &SearchResult{}
	if err := c.doJSONRequest(ctx, http.MethodPost, c.baseURL+searchPath, nil, body, result); err != nil {
		return nil, err
	}
	return result, nil
}

// List fetches one page of catalog objects of a single type.
func (c *Client) List(ctx context.Context, objectType string, cursor string) (*ListResult, error) {
	params := url.Values{}
	params.Set("types", objectType)
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	result := &ListResult{}
	if err := c.doJSONRequest(ctx, http.MethodGet, c.baseURL+listPath, params, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) doJSONRequest(ctx context.Context, method, rawURL string, params url.Values, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", c.apiVersion)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamRequestError{
			Method: method,
			URL:    rawURL,
			Cause:  err,
		}
	}
	defer func() {
		_ = res.Body.Close()
	}()

	rawResponse, err := io.ReadAll(res.Body)
	if err != nil {
		return &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Cause:      fmt.Errorf("read response body: %w", err),
		}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(rawResponse),
		}
	}
	if len(rawResponse) == 0 {
		return nil
	}

	if err := json.Unmarshal(rawResponse, out); err != nil {
		return &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(rawResponse),
			Cause:      fmt.Errorf("decode response body: %w", err),
		}
	}
	return nil
}
