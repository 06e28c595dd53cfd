package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsReporter/internal/config"
	"NewsReporter/internal/ports"
)

func TestSearchSendsQueryAndPreservesOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query != "ai news" || req.Topic != "news" || req.TimeRange != "week" {
			t.Errorf("unexpected request: %+v", req)
		}
		if req.SearchDepth != "advanced" || req.MaxResults != 5 {
			t.Errorf("unexpected request: %+v", req)
		}

		_ = json.NewEncoder(w).Encode(searchResponse{Results: []searchResult{
			{Title: "First", URL: "https://a", Content: "alpha", Score: 0.9, PublishedDate: "2026-08-30"},
			{Title: "Second", URL: "https://b", Content: "beta", Score: 0.7},
		}})
	}))
	defer server.Close()

	client := NewClient(config.SearchConfig{Endpoint: server.URL, APIKey: "test-key"})
	client.http = server.Client()

	articles, err := client.Search(context.Background(), ports.SearchQuery{
		Query:       "ai news",
		Topic:       "news",
		TimeRange:   "week",
		SearchDepth: "advanced",
		MaxResults:  5,
	})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "First" || articles[1].Title != "Second" {
		t.Fatalf("result order not preserved: %+v", articles)
	}
	if articles[0].Content != "alpha" || articles[0].URL != "https://a" {
		t.Fatalf("unexpected first article: %+v", articles[0])
	}

	wantDate := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	if !articles[0].PublishedAt.Equal(wantDate) {
		t.Fatalf("unexpected published date: %v", articles[0].PublishedAt)
	}
	if !articles[1].PublishedAt.IsZero() {
		t.Fatalf("missing date must stay zero, got %v", articles[1].PublishedAt)
	}
}

func TestSearchZeroResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer server.Close()

	client := NewClient(config.SearchConfig{Endpoint: server.URL, APIKey: "test-key"})
	client.http = server.Client()

	articles, err := client.Search(context.Background(), ports.SearchQuery{Query: "quiet week"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if articles == nil || len(articles) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", articles)
	}
}

func TestSearchSurfacesAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(config.SearchConfig{Endpoint: server.URL, APIKey: "test-key"})
	client.http = server.Client()

	if _, err := client.Search(context.Background(), ports.SearchQuery{Query: "ai"}); err == nil {
		t.Fatalf("expected error on 429 response")
	}
}

func TestSearchRequiresCredentials(t *testing.T) {
	t.Parallel()

	client := NewClient(config.SearchConfig{Endpoint: "https://api.tavily.com/search"})
	if _, err := client.Search(context.Background(), ports.SearchQuery{Query: "ai"}); err == nil {
		t.Fatalf("expected misconfiguration error without api key")
	}
}
