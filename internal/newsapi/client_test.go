package newsapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/newsapi"
)

func TestClient_Everything(t *testing.T) {
	t.Helper()

	var gotPath, gotKey string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       "ok",
			"totalResults": 1,
			"articles": []map[string]any{
				{
					"source":      map[string]string{"id": "reuters", "name": "Reuters"},
					"title":       "Trump meets retail executives",
					"url":         "https://example.com/a",
					"publishedAt": "2025-01-15T10:00:00Z",
				},
			},
		})
	}))
	defer srv.Close()

	c := newsapi.NewClient(srv.URL, "secret-key")
	articles, err := c.Everything(context.Background(), newsapi.EverythingRequest{
		Query:    "Trump CEO meeting",
		From:     time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		SortBy:   "relevancy",
		PageSize: 15,
	})
	if err != nil {
		t.Fatalf("Everything: %v", err)
	}

	if gotPath != "/v2/everything" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	for param, want := range map[string]string{
		"q":        "Trump CEO meeting",
		"from":     "2025-01-08",
		"sortBy":   "relevancy",
		"pageSize": "15",
		"language": "en",
	} {
		if got := gotQuery[param]; len(got) != 1 || got[0] != want {
			t.Errorf("param %s = %v, want %q", param, got, want)
		}
	}

	if len(articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(articles))
	}
	if articles[0].Source.Name != "Reuters" || articles[0].Title != "Trump meets retail executives" {
		t.Errorf("article = %+v", articles[0])
	}
}

func TestClient_Everything_RequestFailed(t *testing.T) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "error", "code": "apiKeyInvalid", "message": "bad key",
		})
	}))
	defer srv.Close()

	c := newsapi.NewClient(srv.URL, "bad-key")
	_, err := c.Everything(context.Background(), newsapi.EverythingRequest{Query: "x"})
	if !errors.Is(err, newsapi.ErrRequestFailed) {
		t.Errorf("err = %v, want ErrRequestFailed", err)
	}
}

func TestClient_Everything_Unavailable(t *testing.T) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := newsapi.NewClient(srv.URL, "key")
	_, err := c.Everything(context.Background(), newsapi.EverythingRequest{Query: "x"})
	if !errors.Is(err, newsapi.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
