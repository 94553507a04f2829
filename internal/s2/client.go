// Package s2 is a rate-limited client for the Semantic Scholar graph and
// recommendations APIs.
package s2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/refcheck/internal/paper"
)

const (
	// BaseURL is the Semantic Scholar graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// RecommendBaseURL is the recommendations API base URL.
	RecommendBaseURL = "https://api.semanticscholar.org/recommendations/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RequestInterval is the minimum spacing between requests; the public
	// pool allows just under one request per second.
	RequestInterval = 1100 * time.Millisecond

	// PaperFields are the fields requested for every paper lookup.
	PaperFields = "paperId,externalIds,title,abstract,year,venue," +
		"publicationVenue,citationCount,authors,journal,publicationDate"

	// CitationFields are the slimmer fields requested for citation graphs.
	CitationFields = "paperId,externalIds,title,year,venue,citationCount,authors"

	// AuthorFields are the fields requested for author searches.
	AuthorFields = "authorId,name,paperCount,citationCount,hIndex"

	// MaxLimit caps list requests.
	MaxLimit = 100
)

// Direction selects a citation graph traversal.
type Direction string

const (
	// CitedBy lists papers citing the given paper (forward).
	CitedBy Direction = "citedBy"
	// References lists papers the given paper cites (backward).
	References Direction = "references"
)

// Author is an author search result.
type Author struct {
	AuthorID      string `json:"authorId"`
	Name          string `json:"name"`
	PaperCount    int    `json:"paperCount"`
	CitationCount int    `json:"citationCount"`
	HIndex        int    `json:"hIndex"`
}

// Client is a rate-limited HTTP client for the Semantic Scholar API.
type Client struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	apiKey       string
	baseURL      string
	recommendURL string
	userAgent    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets custom graph and recommendation base URLs (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
		c.recommendURL = u
	}
}

// NewClient creates a new Semantic Scholar API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		limiter:      rate.NewLimiter(rate.Every(RequestInterval), 1),
		baseURL:      BaseURL,
		recommendURL: RecommendBaseURL,
		userAgent:    "refcheck/1.0",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do performs a rate-limited request and decodes the JSON response into v.
func (c *Client) do(ctx context.Context, method, u string, body any, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

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

// GetPaper fetches one paper by any supported identifier, including
// prefixed forms such as "DOI:10.1/x" and "PMID:12345".
func (c *Client) GetPaper(ctx context.Context, paperID string) (*paper.Record, error) {
	params := url.Values{}
	params.Set("fields", PaperFields)

	var p s2Paper
	u := c.baseURL + "/paper/" + url.PathEscape(paperID) + "?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, u, nil, &p); err != nil {
		return nil, err
	}
	if p.PaperID == "" {
		return nil, ErrNotFound
	}

	rec := p.toRecord()
	return &rec, nil
}

// Search runs a relevance search and returns up to limit papers.
func (c *Client) Search(ctx context.Context, query string, limit int, yearRange, fieldsOfStudy string) ([]paper.Record, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", fmt.Sprint(limit))
	params.Set("fields", PaperFields)
	if yearRange != "" {
		params.Set("year", yearRange)
	}
	if fieldsOfStudy != "" {
		params.Set("fieldsOfStudy", fieldsOfStudy)
	}

	var result struct {
		Data []s2Paper `json:"data"`
	}
	u := c.baseURL + "/paper/search?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, u, nil, &result); err != nil {
		return nil, err
	}

	return toRecords(result.Data), nil
}

// Citations traverses the citation graph for a paper in the given direction.
func (c *Client) Citations(ctx context.Context, paperID string, dir Direction, limit int) ([]paper.Record, error) {
	if limit <= 0 {
		limit = MaxLimit
	}

	var endpoint, wrapperKey string
	switch dir {
	case CitedBy:
		endpoint, wrapperKey = "citations", "citingPaper"
	case References:
		endpoint, wrapperKey = "references", "citedPaper"
	default:
		return nil, fmt.Errorf("invalid direction %q: use %q or %q", dir, CitedBy, References)
	}

	params := url.Values{}
	params.Set("fields", CitationFields)
	params.Set("limit", fmt.Sprint(limit))

	var result struct {
		Data []map[string]s2Paper `json:"data"`
	}
	u := c.baseURL + "/paper/" + url.PathEscape(paperID) + "/" + endpoint + "?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, u, nil, &result); err != nil {
		return nil, err
	}

	var records []paper.Record
	for _, item := range result.Data {
		p, ok := item[wrapperKey]
		if !ok || p.PaperID == "" {
			continue
		}
		records = append(records, p.toRecord())
	}
	return records, nil
}

// SearchAuthors searches authors by name.
func (c *Client) SearchAuthors(ctx context.Context, name string, limit int) ([]Author, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("query", name)
	params.Set("limit", fmt.Sprint(limit))
	params.Set("fields", AuthorFields)

	var result struct {
		Data []Author `json:"data"`
	}
	u := c.baseURL + "/author/search?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, u, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// AuthorPapers fetches papers by an author.
func (c *Client) AuthorPapers(ctx context.Context, authorID string, limit int) ([]paper.Record, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}

	params := url.Values{}
	params.Set("fields", PaperFields)
	params.Set("limit", fmt.Sprint(limit))

	var result struct {
		Data []s2Paper `json:"data"`
	}
	u := c.baseURL + "/author/" + url.PathEscape(authorID) + "/papers?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, u, nil, &result); err != nil {
		return nil, err
	}
	return toRecords(result.Data), nil
}

// Recommend returns papers recommended from the given seed paper ids.
func (c *Client) Recommend(ctx context.Context, seedIDs []string, limit int) ([]paper.Record, error) {
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("fields", PaperFields)
	params.Set("limit", fmt.Sprint(limit))

	body := map[string][]string{"positivePaperIds": seedIDs}
	var result struct {
		RecommendedPapers []s2Paper `json:"recommendedPapers"`
	}
	u := c.recommendURL + "/papers/?" + params.Encode()
	if err := c.do(ctx, http.MethodPost, u, body, &result); err != nil {
		return nil, err
	}
	return toRecords(result.RecommendedPapers), nil
}

func toRecords(papers []s2Paper) []paper.Record {
	records := make([]paper.Record, len(papers))
	for i, p := range papers {
		records[i] = p.toRecord()
	}
	return records
}
