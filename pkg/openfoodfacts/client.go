package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/ssamu04/groceria/pkg/errors"
)

const (
	defaultBaseURL             = "https://world.openfoodfacts.org"
	searchPath                 = "/cgi/search.pl"
	responseFields             = "product_name,brands,image_url"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

// Client wraps the Open Food Facts search API used for product suggestions.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured search base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Open Food Facts client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// SearchRequest describes one upstream search call.
type SearchRequest struct {
	Terms    string
	SortBy   string
	PageSize int
}

// Product is the normalized subset of an upstream catalog entry.
type Product struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Search queries the upstream catalog for products matching the terms. The
// upstream relevance filtering is treated as a superset; callers narrow the
// result themselves.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}
	if strings.TrimSpace(req.Terms) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search terms are required")
	}

	query := url.Values{}
	query.Set("search_terms", req.Terms)
	query.Set("search_simple", "1")
	query.Set("action", "process")
	query.Set("json", "1")
	query.Set("fields", responseFields)
	if req.SortBy != "" {
		query.Set("sort_by", req.SortBy)
	}
	if req.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(req.PageSize))
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + searchPath + "?" + query.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog search request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog search request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog search request failed")
	}

	var apiResp struct {
		Products []struct {
			ProductName string  `json:"product_name"`
			Brands      string  `json:"brands"`
			ImageURL    string  `json:"image_url"`
			Price       float64 `json:"price"`
		} `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog search response")
	}

	products := make([]Product, 0, len(apiResp.Products))
	for _, p := range apiResp.Products {
		products = append(products, Product{
			Name:     strings.TrimSpace(p.ProductName),
			Brand:    strings.TrimSpace(p.Brands),
			Price:    p.Price,
			ImageURL: strings.TrimSpace(p.ImageURL),
		})
	}

	return products, nil
}
