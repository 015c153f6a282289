// Command tracker runs one collection pass: fetch articles, extract and
// classify meetings, store them, and deliver the report email.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/classifier"
	"github.com/jonesrussell/meeting-tracker/internal/config"
	"github.com/jonesrussell/meeting-tracker/internal/database"
	"github.com/jonesrussell/meeting-tracker/internal/dedup"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/fetch"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/lookup"
	"github.com/jonesrussell/meeting-tracker/internal/newsapi"
	"github.com/jonesrussell/meeting-tracker/internal/processor"
	"github.com/jonesrussell/meeting-tracker/internal/report"
	"github.com/jonesrussell/meeting-tracker/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tracker failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewSQLiteConnection(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	meetingsRepo := database.NewMeetingsRepository(db, log)
	tp := telemetry.NewProvider()
	ctx := context.Background()

	articles := collectArticles(ctx, cfg, tp, log)
	if len(articles) == 0 {
		log.Warn("no articles collected, nothing to do")
		return nil
	}

	proc := buildProcessor(cfg, meetingsRepo, tp, log)
	summary := proc.Run(ctx, articles)

	if count, countErr := meetingsRepo.Count(ctx); countErr == nil {
		tp.SetMeetingsStored(count)
	}

	if summary.New+summary.Merged == 0 {
		log.Info("no new meetings this run, skipping report")
		return nil
	}
	return sendReport(ctx, cfg, meetingsRepo, log)
}

// collectArticles gathers candidate articles from the news search API and
// the RSS feed set, deduplicated by URL.
func collectArticles(ctx context.Context, cfg *config.Config, tp *telemetry.Provider, log logger.Logger) []domain.Article {
	var searched, fromFeeds []domain.Article

	if cfg.Sources.NewsAPI.APIKey != "" {
		client := newsapi.NewClient(cfg.Sources.NewsAPI.BaseURL, cfg.Sources.NewsAPI.APIKey)
		search := fetch.NewNewsSearch(client, cfg.Tracking.Figure, log)
		searched = search.Search(ctx, cfg.Tracking.DaysBack)
		tp.RecordFetched(ctx, "newsapi", len(searched))
	} else {
		log.Warn("NEWS_API_KEY not set, skipping news search")
	}

	feeds := cfg.Sources.RSSFeeds
	if len(feeds) == 0 {
		feeds = fetch.DefaultFeeds(cfg.Tracking.Figure)
	}
	rss := fetch.NewRSSFetcher(feeds, cfg.Tracking.Figure, log)
	fromFeeds = rss.Fetch(ctx, cfg.Tracking.DaysBack)
	tp.RecordFetched(ctx, "rss", len(fromFeeds))

	articles := fetch.DedupeByURL(searched, fromFeeds)
	log.Info("articles collected",
		logger.Int("newsapi", len(searched)),
		logger.Int("rss", len(fromFeeds)),
		logger.Int("unique", len(articles)))
	return articles
}

func buildProcessor(cfg *config.Config, meetingsRepo *database.MeetingsRepository, tp *telemetry.Provider, log logger.Logger) *processor.Processor {
	validator := classifier.NewNameValidator(cfg.Tracking.LowercaseRatio)

	var officerLookup classifier.OfficerLookup
	if cfg.Tracking.EnableDynamicLookup && cfg.Sources.NewsAPI.APIKey != "" {
		client := newsapi.NewClient(cfg.Sources.NewsAPI.BaseURL, cfg.Sources.NewsAPI.APIKey)
		officerLookup = lookup.NewNewsSearchLookup(client, validator,
			cfg.Tracking.LookupRatePerSecond, log)
	}

	relevance := classifier.NewRelevanceFilter(cfg.Tracking.Figure,
		cfg.Tracking.PoliticalKeywordLimit, log)
	extractor := classifier.NewExtractor(validator, officerLookup, nil, log)
	industry := classifier.NewIndustryClassifier(cfg.Industries,
		cfg.Tracking.KeywordScoreThreshold, log)
	resolver := dedup.NewResolver(meetingsRepo, log)

	var scraper *fetch.Scraper
	if cfg.Tracking.EnableScraping {
		scraper = fetch.NewScraper()
	}

	// A nil *Scraper must stay a nil interface inside the processor.
	if scraper != nil {
		return processor.New(relevance, extractor, industry, resolver, scraper, tp, log)
	}
	return processor.New(relevance, extractor, industry, resolver, nil, tp, log)
}

func sendReport(ctx context.Context, cfg *config.Config, meetingsRepo *database.MeetingsRepository, log logger.Logger) error {
	cutoff := time.Now().AddDate(0, 0, -cfg.Tracking.DaysBack)
	recent, err := meetingsRepo.AddedSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("load recent meetings: %w", err)
	}
	if len(recent) == 0 {
		log.Info("no recent meetings to report")
		return nil
	}

	generator := report.NewGenerator(cfg.Tracking.Figure)
	html, err := generator.EmailHTML(recent, cfg.Tracking.DaysBack)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	all, err := meetingsRepo.ListRecent(ctx, 0)
	if err != nil {
		return fmt.Errorf("load all meetings: %w", err)
	}
	csvPath := "meetings.csv"
	if err = writeCSVFile(csvPath, all); err != nil {
		return err
	}
	log.Info("export written",
		logger.String("path", csvPath),
		logger.Int("meetings", len(all)))

	if cfg.Email.SendGridAPIKey == "" || len(cfg.Email.Recipients) == 0 {
		log.Warn("email not configured, report rendered but not sent",
			logger.Int("recipients", len(cfg.Email.Recipients)))
		return nil
	}

	csvData, err := os.ReadFile(csvPath)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	mailer := report.NewMailer(cfg.Email.BaseURL, cfg.Email.SendGridAPIKey, cfg.Email.Sender, log)
	subject := fmt.Sprintf("%s Meetings Update - %d Meeting(s) (%s)",
		cfg.Tracking.Figure, len(recent), time.Now().Format("Jan 2, 2006"))

	return mailer.Send(ctx, cfg.Email.Recipients, subject, html, report.Attachment{
		Filename:    csvPath,
		ContentType: "text/csv",
		Data:        csvData,
	})
}

func writeCSVFile(path string, meetings []*domain.Meeting) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := report.WriteCSV(f, meetings); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
