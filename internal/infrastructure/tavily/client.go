package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsReporter/internal/config"
	"NewsReporter/internal/domain"
	"NewsReporter/internal/ports"
)

// Client implements ports.ArticleSearcher backed by the Tavily search API.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.ArticleSearcher = (*Client)(nil)

// NewClient builds a search client from configuration.
func NewClient(cfg config.SearchConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: 20 * time.Second},
	}
}

type searchRequest struct {
	Query       string `json:"query"`
	Topic       string `json:"topic,omitempty"`
	TimeRange   string `json:"time_range,omitempty"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

// Search posts the query and returns one Article per result, in result order.
func (c *Client) Search(ctx context.Context, query ports.SearchQuery) ([]domain.Article, error) {
	if c.apiKey == "" || c.endpoint == "" {
		return nil, fmt.Errorf("tavily client misconfigured")
	}

	body, err := json.Marshal(searchRequest{
		Query:       query.Query,
		Topic:       query.Topic,
		TimeRange:   query.TimeRange,
		SearchDepth: query.SearchDepth,
		MaxResults:  query.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tavily error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	articles := make([]domain.Article, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		articles = append(articles, domain.Article{
			Title:       result.Title,
			URL:         result.URL,
			Content:     result.Content,
			Score:       result.Score,
			PublishedAt: parseDate(result.PublishedDate),
		})
	}

	return articles, nil
}

// parseDate handles the date shapes Tavily is known to return; a zero time
// means the date was absent or unrecognized.
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"Mon, 02 Jan 2006 15:04:05 MST",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}

	return time.Time{}
}
