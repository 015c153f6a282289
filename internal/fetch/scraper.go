package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	scrapeTimeout = 10 * time.Second

	// minArticleChars is the smallest extraction accepted from a scoped
	// selector before falling back to the whole page.
	minArticleChars = 200

	// maxArticleChars caps the returned text. Extraction patterns only
	// need the opening of the article.
	maxArticleChars = 5000
)

// articleSelectors are tried in order; the first one yielding substantial
// paragraph text wins.
var articleSelectors = []string{
	"article",
	"[class*=article]",
	"[class*=story]",
	"[class*=content]",
	"[class*=body]",
	"main",
	".post-content",
}

// chromeSelectors are stripped before extraction.
var chromeSelectors = []string{"script", "style", "nav", "header", "footer", "aside"}

// Scraper downloads an article page and extracts its body text.
type Scraper struct {
	client *http.Client
}

// NewScraper creates a scraper with a bounded request timeout.
func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: scrapeTimeout},
	}
}

// FullText fetches the page at url and returns its article text, capped at
// maxArticleChars. Returns "" with an error when the page cannot be fetched
// or parsed; thin pages return whatever paragraph text was found.
func (s *Scraper) FullText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", rssUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	return extractArticleText(doc), nil
}

func extractArticleText(doc *goquery.Document) string {
	for _, selector := range chromeSelectors {
		doc.Find(selector).Remove()
	}

	var text string
	for _, selector := range articleSelectors {
		scope := doc.Find(selector).First()
		if scope.Length() == 0 {
			continue
		}
		text = paragraphText(scope)
		if len(text) > minArticleChars {
			break
		}
	}

	if len(text) < minArticleChars {
		text = paragraphText(doc.Selection)
	}

	if len(text) > maxArticleChars {
		text = text[:maxArticleChars]
	}
	return text
}

func paragraphText(scope *goquery.Selection) string {
	var parts []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}
