// Package newsapi is a minimal HTTP client for the NewsAPI /v2/everything
// endpoint, shared by the article fetcher and the officer lookup.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrUnavailable indicates NewsAPI is unreachable.
var ErrUnavailable = errors.New("newsapi unavailable")

// ErrRequestFailed indicates NewsAPI returned a non-ok status payload.
var ErrRequestFailed = errors.New("newsapi request failed")

// Client is an HTTP client for NewsAPI.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Article is one article in an /everything response.
type Article struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// EverythingRequest carries the query parameters for /v2/everything.
// Zero-valued fields are omitted.
type EverythingRequest struct {
	Query    string
	From     time.Time
	SortBy   string
	PageSize int
}

type everythingResponse struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// NewClient creates a NewsAPI client. An empty baseURL selects the public
// endpoint; tests point it at a local server.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Everything searches articles. Returns ErrUnavailable when NewsAPI is
// unreachable and ErrRequestFailed when it rejects the request.
func (c *Client) Everything(ctx context.Context, req EverythingRequest) ([]Article, error) {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("language", "en")
	if !req.From.IsZero() {
		params.Set("from", req.From.UTC().Format("2006-01-02"))
	}
	if req.SortBy != "" {
		params.Set("sortBy", req.SortBy)
	}
	if req.PageSize > 0 {
		params.Set("pageSize", fmt.Sprintf("%d", req.PageSize))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/everything?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var body everythingResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	if resp.StatusCode != http.StatusOK || body.Status != "ok" {
		return nil, fmt.Errorf("%w: status %d %s %s",
			ErrRequestFailed, resp.StatusCode, body.Code, body.Message)
	}

	return body.Articles, nil
}
