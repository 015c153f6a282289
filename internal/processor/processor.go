// Package processor runs articles through the relevance gates, extraction
// cascade, industry classification, and duplicate resolution, and records
// the accepted meetings.
package processor

import (
	"context"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/classifier"
	"github.com/jonesrussell/meeting-tracker/internal/data"
	"github.com/jonesrussell/meeting-tracker/internal/dedup"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/telemetry"
)

// maxNotesLength caps the context snippet stored with a meeting.
const maxNotesLength = 200

// pageScraper fetches the full text of an article page.
type pageScraper interface {
	FullText(ctx context.Context, url string) (string, error)
}

// Result is the outcome of processing one article.
type Result struct {
	Accepted     bool
	RejectReason string
	Decision     domain.DedupDecision
	MeetingID    int64
}

// Summary aggregates a full run.
type Summary struct {
	Processed  int
	Rejected   int
	Failed     int
	New        int
	Merged     int
	Duplicates int
}

// Processor is the single-article pipeline. Articles are processed one at a
// time so duplicate resolution always sees the meetings accepted before it.
type Processor struct {
	relevance *classifier.RelevanceFilter
	extractor *classifier.Extractor
	industry  *classifier.IndustryClassifier
	resolver  *dedup.Resolver
	scraper   pageScraper
	telemetry *telemetry.Provider
	log       logger.Logger
}

// New creates a processor. scraper may be nil to skip full-text scraping.
func New(
	relevance *classifier.RelevanceFilter,
	extractor *classifier.Extractor,
	industry *classifier.IndustryClassifier,
	resolver *dedup.Resolver,
	scraper pageScraper,
	tp *telemetry.Provider,
	log logger.Logger,
) *Processor {
	return &Processor{
		relevance: relevance,
		extractor: extractor,
		industry:  industry,
		resolver:  resolver,
		scraper:   scraper,
		telemetry: tp,
		log:       log,
	}
}

// Run processes the articles in order. A failure on one article is counted
// and logged; the rest of the batch still runs.
func (p *Processor) Run(ctx context.Context, articles []domain.Article) Summary {
	var summary Summary
	for i := range articles {
		if ctx.Err() != nil {
			p.log.Warn("run cancelled",
				logger.Int("remaining", len(articles)-i))
			break
		}

		result, err := p.ProcessArticle(ctx, &articles[i])
		if err != nil {
			summary.Failed++
			p.telemetry.RecordFailure(ctx)
			p.log.Warn("article processing failed",
				logger.String("url", articles[i].URL),
				logger.Error(err))
			continue
		}

		summary.Processed++
		if !result.Accepted {
			summary.Rejected++
			continue
		}
		switch result.Decision.Outcome {
		case domain.DedupNew:
			summary.New++
		case domain.DedupMerge:
			summary.Merged++
		case domain.DedupDuplicate:
			summary.Duplicates++
		}
	}

	p.log.Info("run complete",
		logger.Int("processed", summary.Processed),
		logger.Int("rejected", summary.Rejected),
		logger.Int("failed", summary.Failed),
		logger.Int("new", summary.New),
		logger.Int("merged", summary.Merged),
		logger.Int("duplicates", summary.Duplicates))
	return summary
}

// ProcessArticle runs one article through the pipeline and applies the
// duplicate decision to the store.
func (p *Processor) ProcessArticle(ctx context.Context, article *domain.Article) (Result, error) {
	start := time.Now()
	defer func() {
		p.telemetry.RecordProcessed(ctx, time.Since(start))
	}()

	// Relevance runs on the summary text only; scraping is paid for
	// relevant articles, not every headline.
	text := article.Text()
	relevance := p.relevance.IsRelevant(text)
	if !relevance.Relevant {
		p.telemetry.RecordRejection(ctx, relevance.Reason)
		p.log.Debug("article rejected",
			logger.String("reason", relevance.Reason),
			logger.String("url", article.URL))
		return Result{RejectReason: relevance.Reason}, nil
	}

	if p.scraper != nil {
		scrapeStart := time.Now()
		fullText, err := p.scraper.FullText(ctx, article.URL)
		p.telemetry.RecordScrape(ctx, time.Since(scrapeStart), err == nil)
		if err != nil {
			p.log.Debug("scrape failed, using summary text",
				logger.String("url", article.URL),
				logger.Error(err))
		} else if fullText != "" {
			text = text + " " + fullText
		}
	}

	candidates := p.extractor.Extract(ctx, text)
	if len(candidates) == 0 {
		p.telemetry.RecordRejection(ctx, "no-attendees")
		return Result{RejectReason: "no-attendees"}, nil
	}

	meeting := p.assembleMeeting(ctx, article, text, candidates)

	decision := p.resolver.Resolve(ctx, meeting)
	id, err := p.resolver.Apply(ctx, meeting, decision)
	if err != nil {
		return Result{}, err
	}
	p.telemetry.RecordDedupOutcome(ctx, decision.Outcome.String())

	p.log.Info("meeting resolved",
		logger.String("outcome", decision.Outcome.String()),
		logger.Int64("meeting_id", id),
		logger.String("date", meeting.Date),
		logger.Int("attendees", len(meeting.Attendees)))

	return Result{Accepted: true, Decision: decision, MeetingID: id}, nil
}

func (p *Processor) assembleMeeting(ctx context.Context, article *domain.Article, text string, candidates []domain.AttendeeCandidate) *domain.Meeting {
	notes := article.Title
	if len(notes) > maxNotesLength {
		notes = notes[:maxNotesLength]
	}

	meeting := &domain.Meeting{
		Date:              classifier.ExtractMeetingDate(text, article.PublishedAt),
		Location:          data.MatchVenue(text),
		MeetingType:       domain.MeetingTypeBusiness,
		SourceURL:         article.URL,
		SourcePublication: article.Source,
		DateAdded:         time.Now().UTC(),
		Notes:             notes,
		SourceURLs:        []string{article.URL},
		SourceCount:       1,
	}

	for _, candidate := range candidates {
		classification := p.industry.Classify(candidate.Organization)
		p.telemetry.RecordIndustryMatch(ctx, classification.MatchConfidence)

		attendee := classifier.ResolveConfidence(candidate, classification, article.Source)
		meeting.Attendees = append(meeting.Attendees, attendee)
	}
	return meeting
}
