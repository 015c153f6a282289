// Package fetch gathers candidate articles from news search and RSS feeds
// and optionally enriches them with scraped full text.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/newsapi"
)

const (
	// DefaultDaysBack is the search window when the caller does not set one.
	DefaultDaysBack = 7

	searchPageSize = 15
)

// searcher is the slice of the news client the fetcher needs.
type searcher interface {
	Everything(ctx context.Context, req newsapi.EverythingRequest) ([]newsapi.Article, error)
}

// NewsSearch queries the news search API with a battery of meeting-oriented
// queries built around the tracked figure.
type NewsSearch struct {
	client  searcher
	queries []string
	log     logger.Logger
}

// NewNewsSearch creates a search source for the given figure, e.g. "Trump".
func NewNewsSearch(client searcher, figure string, log logger.Logger) *NewsSearch {
	return &NewsSearch{
		client:  client,
		queries: meetingQueries(figure),
		log:     log,
	}
}

// meetingQueries builds the query battery. Broad queries with relevancy
// sorting outperform narrow ones here.
func meetingQueries(figure string) []string {
	return []string{
		fmt.Sprintf("%s CEO meeting", figure),
		fmt.Sprintf("%s business leaders", figure),
		fmt.Sprintf("%s executives meeting", figure),

		"Mar-a-Lago CEO",
		fmt.Sprintf("White House business meeting %s", figure),

		fmt.Sprintf("Business Roundtable %s", figure),
		fmt.Sprintf("%s tech leaders", figure),
		fmt.Sprintf("%s manufacturers", figure),

		fmt.Sprintf("%q CEO OR chairman OR executive", figure+" meets"),
		fmt.Sprintf("%q business OR executives", figure+" hosted"),
	}
}

// Search runs every query and returns the articles, deduplicated by URL.
// A failed query is logged and skipped; the rest still run.
func (s *NewsSearch) Search(ctx context.Context, daysBack int) []domain.Article {
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}
	from := time.Now().AddDate(0, 0, -daysBack)

	seen := make(map[string]struct{})
	var articles []domain.Article

	for _, query := range s.queries {
		results, err := s.client.Everything(ctx, newsapi.EverythingRequest{
			Query:    query,
			From:     from,
			SortBy:   "relevancy",
			PageSize: searchPageSize,
		})
		if err != nil {
			s.log.Warn("news search query failed",
				logger.String("query", query),
				logger.Error(err))
			continue
		}

		for _, result := range results {
			if _, dup := seen[result.URL]; dup || result.URL == "" {
				continue
			}
			seen[result.URL] = struct{}{}
			articles = append(articles, domain.Article{
				Title:       result.Title,
				Description: result.Description,
				Content:     result.Content,
				URL:         result.URL,
				Source:      result.Source.Name,
				PublishedAt: result.PublishedAt,
			})
		}
	}

	s.log.Info("news search complete",
		logger.Int("queries", len(s.queries)),
		logger.Int("articles", len(articles)))
	return articles
}

// DedupeByURL merges article lists, keeping the first occurrence of each URL.
func DedupeByURL(lists ...[]domain.Article) []domain.Article {
	seen := make(map[string]struct{})
	var merged []domain.Article
	for _, list := range lists {
		for _, article := range list {
			key := strings.TrimSpace(article.URL)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, article)
		}
	}
	return merged
}
