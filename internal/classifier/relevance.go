package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/meeting-tracker/internal/data"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

// defaultPoliticalThreshold is the number of distinct political keywords
// above which an article is rejected as primarily geopolitical.
const defaultPoliticalThreshold = 4

// Relevance rejection reasons, reportable for diagnostics.
const (
	RejectNoFigure         = "no-figure-mention"
	RejectNoMeetingPattern = "no-meeting-pattern"
	RejectNoBusinessWords  = "no-business-context"
	RejectPolitical        = "political"
)

// RelevanceResult reports the gate decision and, on rejection, which gate
// failed.
type RelevanceResult struct {
	Relevant       bool
	Reason         string
	PoliticalCount int
}

// RelevanceFilter gates whole articles in or out before extraction runs.
// It is a coarse topic filter, deliberately permissive.
type RelevanceFilter struct {
	figure           string
	meetingPatterns  []string
	businessMatcher  *ahocorasick.Matcher
	politicalMatcher *ahocorasick.Matcher
	threshold        int
	log              logger.Logger
}

// NewRelevanceFilter builds the gate for one tracked figure. The political
// threshold falls back to the default when zero or negative.
func NewRelevanceFilter(figure string, politicalThreshold int, log logger.Logger) *RelevanceFilter {
	if politicalThreshold <= 0 {
		politicalThreshold = defaultPoliticalThreshold
	}
	fig := strings.ToLower(strings.TrimSpace(figure))

	return &RelevanceFilter{
		figure: fig,
		meetingPatterns: []string{
			fig + " meet", fig + " met", fig + " host", fig + " welcomed",
			"meeting with " + fig, "met with " + fig, "hosted by " + fig,
			"meet " + fig, "meets " + fig, "met " + fig,
		},
		businessMatcher:  ahocorasick.NewStringMatcher(data.BusinessContextWords()),
		politicalMatcher: ahocorasick.NewStringMatcher(data.PoliticalKeywords()),
		threshold:        politicalThreshold,
		log:              log,
	}
}

// IsRelevant runs the four gates in order, short-circuiting on the first
// failure.
func (f *RelevanceFilter) IsRelevant(text string) RelevanceResult {
	lower := strings.ToLower(text)

	if !strings.Contains(lower, f.figure) {
		return RelevanceResult{Reason: RejectNoFigure}
	}

	if !containsAny(lower, f.meetingPatterns) {
		return RelevanceResult{Reason: RejectNoMeetingPattern}
	}

	if len(f.businessMatcher.Match([]byte(lower))) == 0 {
		return RelevanceResult{Reason: RejectNoBusinessWords}
	}

	// Matcher hits are distinct patterns, so this counts how many political
	// keywords appear at least once, not total occurrences.
	politicalCount := len(f.politicalMatcher.Match([]byte(lower)))
	if politicalCount > f.threshold {
		if f.log != nil {
			f.log.Debug("article rejected as geopolitical",
				logger.Int("political_keywords", politicalCount),
				logger.Int("threshold", f.threshold))
		}
		return RelevanceResult{Reason: RejectPolitical, PoliticalCount: politicalCount}
	}

	return RelevanceResult{Relevant: true, PoliticalCount: politicalCount}
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
