package fetch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/fetch"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/newsapi"
)

func TestNewsSearch_Search(t *testing.T) {
	t.Helper()

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Every query returns the same article; the search must dedupe it.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"articles": []map[string]any{
				{
					"source":      map[string]string{"id": "", "name": "Reuters"},
					"title":       "Trump meets retail executives",
					"description": "Dinner at the club",
					"url":         "https://example.com/retail-dinner",
					"publishedAt": "2025-01-15T10:00:00Z",
				},
			},
		})
	}))
	defer srv.Close()

	client := newsapi.NewClient(srv.URL, "test-key")
	s := fetch.NewNewsSearch(client, "Trump", logger.NewNop())

	articles := s.Search(context.Background(), 7)
	if len(articles) != 1 {
		t.Fatalf("articles = %d, want 1 after URL dedupe", len(articles))
	}
	if requests < 2 {
		t.Errorf("requests = %d, want one per query", requests)
	}

	a := articles[0]
	if a.Title != "Trump meets retail executives" || a.Source != "Reuters" {
		t.Errorf("article = %+v", a)
	}
}

func TestNewsSearch_Search_FailedQueriesSkipped(t *testing.T) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "error", "code": "rateLimited", "message": "slow down",
		})
	}))
	defer srv.Close()

	client := newsapi.NewClient(srv.URL, "test-key")
	s := fetch.NewNewsSearch(client, "Trump", logger.NewNop())

	if articles := s.Search(context.Background(), 7); len(articles) != 0 {
		t.Errorf("articles = %d, want 0", len(articles))
	}
}

func TestDedupeByURL(t *testing.T) {
	t.Helper()

	first := []domain.Article{
		{Title: "from search", URL: "https://example.com/a"},
		{URL: "https://example.com/b"},
	}
	second := []domain.Article{
		{Title: "from rss", URL: "https://example.com/a"},
		{URL: "https://example.com/c"},
		{URL: ""},
	}

	merged := fetch.DedupeByURL(first, second)
	if len(merged) != 3 {
		t.Fatalf("merged = %d, want 3: %+v", len(merged), merged)
	}
	// The first occurrence wins.
	if merged[0].Title != "from search" {
		t.Errorf("merged[0] = %+v", merged[0])
	}
}
