package fetch

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

const (
	rssFetchTimeout = 15 * time.Second
	rssUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// DefaultFeeds is the broadcast and national-paper feed set scanned on each
// run. Google News entries are pre-filtered searches; the rest are general
// feeds filtered by keyword after download.
func DefaultFeeds(figure string) []string {
	q := strings.ReplaceAll(figure, " ", "+")
	return []string{
		"https://news.google.com/rss/search?q=" + q + "+CEO+meeting&hl=en-US&gl=US&ceid=US:en",
		"https://news.google.com/rss/search?q=" + q + "+business+leaders&hl=en-US&gl=US&ceid=US:en",
		"https://news.google.com/rss/search?q=" + q + "+executives+meeting&hl=en-US&gl=US&ceid=US:en",
		"https://news.google.com/rss/search?q=Mar-a-Lago+CEO&hl=en-US&gl=US&ceid=US:en",

		"https://feeds.bbci.co.uk/news/rss.xml",
		"https://feeds.bbci.co.uk/news/business/rss.xml",
		"http://rss.cnn.com/rss/cnn_topstories.rss",
		"http://rss.cnn.com/rss/cnn_allpolitics.rss",
		"http://rss.cnn.com/rss/money_latest.rss",
		"https://feeds.reuters.com/reuters/topNews",
		"https://feeds.reuters.com/Reuters/domesticNews",

		"https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml",
		"https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml",
		"https://rss.nytimes.com/services/xml/rss/nyt/Business.xml",
		"http://feeds.washingtonpost.com/rss/politics",
		"http://feeds.washingtonpost.com/rss/business",
		"https://feeds.a.dj.com/rss/RSSWorldNews.xml",
		"https://feeds.a.dj.com/rss/WSJcomUSBusiness.xml",

		"https://feeds.npr.org/1001/rss.xml",
		"https://feeds.npr.org/1014/rss.xml",
		"https://feeds.abcnews.com/abcnews/topstories",
		"https://www.cbsnews.com/latest/rss/main",
		"https://feeds.nbcnews.com/nbcnews/public/news",

		"https://www.politico.com/rss/politicopicks.xml",
		"http://feeds.foxnews.com/foxnews/latest",
		"https://www.yahoo.com/news/rss",
		"https://www.vox.com/rss/index.xml",
	}
}

// rssDocument covers RSS 2.0 and the Atom shape Google News emits.
type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
	// Atom feeds carry entries at the document root.
	Title   string    `xml:"title"`
	Entries []rssItem `xml:"entry"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Description string  `xml:"description"`
	Summary     string  `xml:"summary"`
	Link        rssLink `xml:"link"`
	PubDate     string  `xml:"pubDate"`
	Published   string  `xml:"published"`
}

// rssLink reads both the RSS form (<link>url</link>) and the Atom form
// (<link href="url"/>).
type rssLink struct {
	Href  string `xml:"href,attr"`
	Value string `xml:",chardata"`
}

func (l rssLink) URL() string {
	if v := strings.TrimSpace(l.Value); v != "" {
		return v
	}
	return strings.TrimSpace(l.Href)
}

var rssDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z",
}

// RSSFetcher downloads feeds and keeps entries that are recent and mention
// the tracked figure. It is a coarse prefilter; the relevance gates run
// downstream.
type RSSFetcher struct {
	feeds   []string
	keyword string
	client  *http.Client
	log     logger.Logger
}

// NewRSSFetcher creates a fetcher over the given feed URLs. keyword is
// matched case-insensitively against title and summary.
func NewRSSFetcher(feeds []string, keyword string, log logger.Logger) *RSSFetcher {
	return &RSSFetcher{
		feeds:   feeds,
		keyword: strings.ToLower(keyword),
		client:  &http.Client{Timeout: rssFetchTimeout},
		log:     log,
	}
}

// Fetch downloads every feed and returns the matching entries. A feed that
// fails to download or parse is logged and skipped.
func (f *RSSFetcher) Fetch(ctx context.Context, daysBack int) []domain.Article {
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}
	cutoff := time.Now().AddDate(0, 0, -daysBack)

	var articles []domain.Article
	failed := 0

	for _, feedURL := range f.feeds {
		feedArticles, err := f.fetchOne(ctx, feedURL, cutoff)
		if err != nil {
			failed++
			f.log.Debug("feed fetch failed",
				logger.String("feed", feedURL),
				logger.Error(err))
			continue
		}
		articles = append(articles, feedArticles...)
	}

	f.log.Info("rss scan complete",
		logger.Int("feeds", len(f.feeds)),
		logger.Int("failed", failed),
		logger.Int("articles", len(articles)))
	return articles
}

func (f *RSSFetcher) fetchOne(ctx context.Context, feedURL string, cutoff time.Time) ([]domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", rssUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	var doc rssDocument
	if err = xml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	feedTitle := doc.Channel.Title
	items := doc.Channel.Items
	if len(items) == 0 {
		feedTitle = doc.Title
		items = doc.Entries
	}
	if feedTitle == "" {
		feedTitle = "RSS Feed"
	}

	var articles []domain.Article
	for _, item := range items {
		published := item.PubDate
		if published == "" {
			published = item.Published
		}
		// Entries with unparseable dates are kept; stale ones are cut.
		if ts, ok := parseRSSDate(published); ok && ts.Before(cutoff) {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Summary
		}
		if !f.mentionsKeyword(item.Title, summary) {
			continue
		}

		articles = append(articles, domain.Article{
			Title:       item.Title,
			Description: summary,
			Content:     summary,
			URL:         item.Link.URL(),
			Source:      feedTitle,
			PublishedAt: published,
		})
	}
	return articles, nil
}

func (f *RSSFetcher) mentionsKeyword(title, summary string) bool {
	if f.keyword == "" {
		return true
	}
	text := strings.ToLower(title + " " + summary)
	return strings.Contains(text, f.keyword)
}

func parseRSSDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range rssDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
