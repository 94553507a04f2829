// Package crossref is a rate-limited client for the Crossref works API.
// Crossref is the authoritative registry for DOI metadata; no API key is
// required, but a mailto address grants polite-pool priority.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/refcheck/internal/normalize"
	"github.com/matsen/refcheck/internal/paper"
)

const (
	// BaseURL is the Crossref REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 10 requests per second, well under Crossref's guidance.
	RateLimit = 10.0

	// MaxSearchRows caps bibliographic search result pages.
	MaxSearchRows = 20
)

// Client is a rate-limited HTTP client for the Crossref API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailto sets the polite-pool contact address.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new Crossref API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		userAgent:  "refcheck/1.0",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a rate-limited GET and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	ua := c.userAgent
	if c.mailto != "" {
		ua = fmt.Sprintf("%s (mailto:%s)", c.userAgent, c.mailto)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// ResolveDOI fetches the work registered for the given DOI. The DOI is
// normalized before the lookup.
func (c *Client) ResolveDOI(ctx context.Context, doi string) (*paper.Record, error) {
	doi = normalize.DOI(doi)
	if doi == "" {
		return nil, ErrNotFound
	}

	var result struct {
		Message work `json:"message"`
	}
	if err := c.get(ctx, "/works/"+url.PathEscape(doi), nil, &result); err != nil {
		return nil, err
	}

	rec := result.Message.toRecord()
	return &rec, nil
}

// Search runs a bibliographic query and returns up to limit candidate works.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	if limit <= 0 || limit > MaxSearchRows {
		limit = MaxSearchRows
	}

	params := url.Values{}
	params.Set("query.bibliographic", query)
	params.Set("rows", fmt.Sprint(limit))

	var result struct {
		Message struct {
			Items []work `json:"items"`
		} `json:"message"`
	}
	if err := c.get(ctx, "/works", params, &result); err != nil {
		return nil, err
	}

	records := make([]paper.Record, len(result.Message.Items))
	for i, item := range result.Message.Items {
		records[i] = item.toRecord()
	}
	return records, nil
}
