// Package pubmed is a rate-limited client for the NCBI E-utilities API.
// It searches PubMed, fetches article metadata as XML, and batch-checks
// retraction status.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/refcheck/internal/paper"
)

const (
	// BaseURL is the E-utilities base URL.
	BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RequestInterval spaces requests to stay under NCBI's 3 req/s
	// unauthenticated limit.
	RequestInterval = 350 * time.Millisecond

	// toolName and contactEmail identify this client to NCBI, as their
	// usage policy asks.
	toolName     = "refcheck"
	contactEmail = "research@example.com"
)

// Client is a rate-limited HTTP client for PubMed E-utilities.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the NCBI API key, which raises the rate limit.
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

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new PubMed E-utilities client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(RequestInterval), 1),
		baseURL:    BaseURL,
		userAgent:  "refcheck/1.0",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a rate-limited GET against an E-utilities endpoint and
// returns the raw response body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("tool", toolName)
	params.Set("email", contactEmail)
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	u := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// Search runs a PubMed term search and fetches full metadata for the hits.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]paper.Record, error) {
	return c.SearchRange(ctx, term, limit, "", "")
}

// SearchAuthor searches for papers by a specific author.
func (c *Client) SearchAuthor(ctx context.Context, name string, limit int) ([]paper.Record, error) {
	return c.Search(ctx, name+"[Author]", limit)
}

// SearchRange is Search restricted to a publication-date window. Dates
// are YYYY/MM/DD; empty strings leave the search unbounded.
func (c *Client) SearchRange(ctx context.Context, term string, limit int, minDate, maxDate string) ([]paper.Record, error) {
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", term)
	params.Set("retmax", fmt.Sprint(limit))
	params.Set("retmode", "json")
	params.Set("sort", "relevance")
	if minDate != "" && maxDate != "" {
		params.Set("mindate", minDate)
		params.Set("maxdate", maxDate)
		params.Set("datetype", "pdat")
	}

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parsing search response: %v", ErrInvalidResponse, err)
	}

	if len(result.ESearchResult.IDList) == 0 {
		return nil, nil
	}
	return c.Fetch(ctx, result.ESearchResult.IDList)
}

// Fetch retrieves full article metadata for the given PMIDs.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]paper.Record, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	set, err := c.fetchArticleSet(ctx, pmids)
	if err != nil {
		return nil, err
	}

	records := make([]paper.Record, len(set.Articles))
	for i := range set.Articles {
		records[i] = set.Articles[i].toRecord()
	}
	return records, nil
}

// FetchByPMID retrieves one article by PMID.
func (c *Client) FetchByPMID(ctx context.Context, pmid string) (*paper.Record, error) {
	records, err := c.Fetch(ctx, []string{pmid})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// CheckRetractions batch-checks which of the given PMIDs are retracted.
// An article counts as retracted when its publication types include
// "retracted publication" or a comments/corrections entry carries the
// RetractionIn relation.
func (c *Client) CheckRetractions(ctx context.Context, pmids []string) (map[string]bool, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	set, err := c.fetchArticleSet(ctx, pmids)
	if err != nil {
		return nil, err
	}

	retracted := make(map[string]bool)
	for i := range set.Articles {
		a := &set.Articles[i]
		if a.isRetracted() {
			retracted[a.pmid()] = true
		}
	}
	return retracted, nil
}

// fetchArticleSet efetches and parses the PubmedArticleSet for pmids.
func (c *Client) fetchArticleSet(ctx context.Context, pmids []string) (*articleSet, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}
	return parseArticleSet(body)
}
