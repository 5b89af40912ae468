// Package catalog is the HTTP client for the file-catalog search API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"filegrip/internal/domain"
)

// Page sizes used by the client. The feed always loads full pages of 20;
// suggestion lookups use a small direct page and a large fuzzy pool.
const (
	FeedPageSize    = 20
	SuggestPageSize = 8
	SuggestPoolSize = 200
)

// Page is one page of records as returned by /api/search and /api/latest.
type Page struct {
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
	Items   []domain.FileRecord `json:"items"`
}

// linkResponse is the body of /api/send_link/{id}
type linkResponse struct {
	Link string `json:"link"`
}

// Client talks to the catalog API. All failures, transport or non-2xx status,
// collapse into a single error return; callers log and retry implicitly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL (e.g. "http://localhost:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Search requests one page of search results for the given query and filters.
func (c *Client) Search(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
	params := url.Values{}
	if q.Text != "" {
		params.Set("q", q.Text)
	}
	if q.Year != 0 {
		params.Set("year", strconv.Itoa(q.Year))
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Sort != "" {
		params.Set("sort", string(q.Sort))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	return c.fetchPage(ctx, "/api/search", params)
}

// Latest requests one page of the newest records, no filters applied.
func (c *Client) Latest(ctx context.Context, page, perPage int) ([]domain.FileRecord, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	return c.fetchPage(ctx, "/api/latest", params)
}

// SendLink asks the API for the deep link belonging to a record.
func (c *Client) SendLink(ctx context.Context, recordID string) (string, error) {
	u := c.baseURL + "/api/send_link/" + url.PathEscape(recordID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("requesting %s: unexpected status %d", u, resp.StatusCode)
	}

	var body linkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding link response: %w", err)
	}
	return body.Link, nil
}

func (c *Client) fetchPage(ctx context.Context, path string, params url.Values) ([]domain.FileRecord, error) {
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting %s: unexpected status %d", path, resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}

	// The backend does not always tag records with a type; infer it here so
	// every record downstream carries one.
	for i := range page.Items {
		if page.Items[i].FileType == "" {
			page.Items[i].FileType = domain.InferType(page.Items[i].FileName)
		}
	}

	return page.Items, nil
}
