// Package telemetry provides OpenTelemetry instrumentation for the meeting
// tracker. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "meeting-tracker"

// Metrics holds all tracker Prometheus metrics
type Metrics struct {
	// Fetch metrics
	ArticlesFetched *prometheus.CounterVec
	ScrapeFailures  prometheus.Counter
	ScrapeDuration  prometheus.Histogram

	// Pipeline metrics
	ArticlesProcessed  prometheus.Counter
	ArticlesRejected   *prometheus.CounterVec
	ArticlesFailed     prometheus.Counter
	ProcessingDuration prometheus.Histogram

	// Extraction metrics
	RuleHits           *prometheus.CounterVec
	AttendeesExtracted prometheus.Counter
	LookupCalls        *prometheus.CounterVec

	// Classification metrics
	IndustryMatches *prometheus.CounterVec

	// Storage metrics
	DedupOutcomes  *prometheus.CounterVec
	MeetingsStored prometheus.Gauge
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initFetchMetrics(m)
	initPipelineMetrics(m)
	initExtractionMetrics(m)
	initClassificationMetrics(m)
	initStorageMetrics(m)
	return m
}

func initFetchMetrics(m *Metrics) {
	m.ArticlesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_articles_fetched_total",
		Help: "Articles collected per source kind (newsapi, rss)",
	}, []string{"source_kind"})

	m.ScrapeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_scrape_failures_total",
		Help: "Article pages that could not be scraped",
	})

	m.ScrapeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracker_scrape_duration_seconds",
		Help:    "Time to download and extract one article page",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
}

func initPipelineMetrics(m *Metrics) {
	m.ArticlesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_articles_processed_total",
		Help: "Articles run through the full pipeline",
	})

	m.ArticlesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_articles_rejected_total",
		Help: "Articles rejected by the relevance gates, by reason",
	}, []string{"reason"})

	m.ArticlesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_articles_failed_total",
		Help: "Articles whose processing errored",
	})

	m.ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracker_processing_duration_seconds",
		Help:    "Time to process a single article",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
}

func initExtractionMetrics(m *Metrics) {
	m.RuleHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_extraction_rule_hits_total",
		Help: "Attendee candidates produced per extraction rule",
	}, []string{"rule"})

	m.AttendeesExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_attendees_extracted_total",
		Help: "Total attendee candidates extracted",
	})

	m.LookupCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_lookup_calls_total",
		Help: "Dynamic lookup calls by kind and outcome",
	}, []string{"kind", "status"})
}

func initClassificationMetrics(m *Metrics) {
	m.IndustryMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_industry_matches_total",
		Help: "Industry classifications by match confidence",
	}, []string{"confidence"})
}

func initStorageMetrics(m *Metrics) {
	m.DedupOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_dedup_outcomes_total",
		Help: "Duplicate resolution outcomes (new, duplicate, merge)",
	}, []string{"outcome"})

	m.MeetingsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tracker_meetings_stored",
		Help: "Meetings currently in the store",
	})
}

// RecordFetched records articles collected from one source kind.
func (p *Provider) RecordFetched(ctx context.Context, sourceKind string, count int) {
	p.Metrics.ArticlesFetched.WithLabelValues(sourceKind).Add(float64(count))
}

// RecordScrape records one scrape attempt.
func (p *Provider) RecordScrape(ctx context.Context, duration time.Duration, success bool) {
	p.Metrics.ScrapeDuration.Observe(duration.Seconds())
	if !success {
		p.Metrics.ScrapeFailures.Inc()
	}
}

// RecordProcessed records metrics for one processed article.
func (p *Provider) RecordProcessed(ctx context.Context, duration time.Duration) {
	p.Metrics.ArticlesProcessed.Inc()
	p.Metrics.ProcessingDuration.Observe(duration.Seconds())
}

// RecordRejection records a relevance gate rejection.
func (p *Provider) RecordRejection(ctx context.Context, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	p.Metrics.ArticlesRejected.WithLabelValues(reason).Inc()
}

// RecordFailure records an article whose processing errored.
func (p *Provider) RecordFailure(ctx context.Context) {
	p.Metrics.ArticlesFailed.Inc()
}

// RecordRuleHit records candidates produced by one extraction rule.
func (p *Provider) RecordRuleHit(ctx context.Context, rule string, candidates int) {
	p.Metrics.RuleHits.WithLabelValues(rule).Add(float64(candidates))
	p.Metrics.AttendeesExtracted.Add(float64(candidates))
}

// RecordLookup records one dynamic lookup call.
func (p *Provider) RecordLookup(ctx context.Context, kind, status string) {
	p.Metrics.LookupCalls.WithLabelValues(kind, status).Inc()
}

// RecordIndustryMatch records one industry classification.
func (p *Provider) RecordIndustryMatch(ctx context.Context, confidence string) {
	p.Metrics.IndustryMatches.WithLabelValues(confidence).Inc()
}

// RecordDedupOutcome records one duplicate resolution.
func (p *Provider) RecordDedupOutcome(ctx context.Context, outcome string) {
	p.Metrics.DedupOutcomes.WithLabelValues(outcome).Inc()
}

// SetMeetingsStored sets the stored meeting gauge.
func (p *Provider) SetMeetingsStored(count int64) {
	p.Metrics.MeetingsStored.Set(float64(count))
}
