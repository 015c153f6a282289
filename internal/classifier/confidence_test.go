package classifier_test

import (
	"slices"
	"testing"

	"github.com/jonesrussell/meeting-tracker/internal/classifier"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
)

func TestResolveConfidence(t *testing.T) {
	t.Helper()

	tests := []struct {
		name           string
		candidate      domain.AttendeeCandidate
		match          string
		wantConfidence string
		wantReview     bool
	}{
		{
			name:           "article provenance with strong industry match",
			candidate:      domain.AttendeeCandidate{Name: "Doug McMillon", FoundInArticle: true},
			match:          domain.MatchVeryHigh,
			wantConfidence: domain.ConfidenceHigh,
			wantReview:     false,
		},
		{
			name:           "weak industry match downgrades article provenance",
			candidate:      domain.AttendeeCandidate{Name: "Jane Doe", FoundInArticle: true},
			match:          domain.MatchLow,
			wantConfidence: domain.ConfidenceLow,
			wantReview:     true,
		},
		{
			name:           "lookup provenance defaults to medium",
			candidate:      domain.AttendeeCandidate{Name: "John Roe", FoundInArticle: false},
			match:          domain.MatchHigh,
			wantConfidence: domain.ConfidenceMedium,
			wantReview:     false,
		},
		{
			name: "lookup provenance keeps reported confidence",
			candidate: domain.AttendeeCandidate{
				Name:             "John Roe",
				FoundInArticle:   false,
				LookupConfidence: domain.ConfidenceMedium,
			},
			match:          domain.MatchMediumHigh,
			wantConfidence: domain.ConfidenceMedium,
			wantReview:     false,
		},
		{
			name: "weak industry match downgrades lookup provenance",
			candidate: domain.AttendeeCandidate{
				Name:             "John Roe",
				FoundInArticle:   false,
				LookupConfidence: domain.ConfidenceMedium,
			},
			match:          domain.MatchLow,
			wantConfidence: domain.ConfidenceLow,
			wantReview:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.ResolveConfidence(tt.candidate,
				domain.ClassificationResult{MatchConfidence: tt.match}, "Reuters")

			if got.ConfidenceLevel != tt.wantConfidence {
				t.Errorf("confidence = %q, want %q", got.ConfidenceLevel, tt.wantConfidence)
			}
			if got.RequiresReview != tt.wantReview {
				t.Errorf("requires review = %v, want %v", got.RequiresReview, tt.wantReview)
			}
		})
	}
}

func TestResolveConfidence_Reasons(t *testing.T) {
	t.Helper()

	fromArticle := classifier.ResolveConfidence(
		domain.AttendeeCandidate{Name: "Doug McMillon", FoundInArticle: true},
		domain.ClassificationResult{MatchConfidence: domain.MatchVeryHigh}, "Reuters")

	if !slices.Contains(fromArticle.ConfidenceReasons, "Extracted from article: Reuters") {
		t.Errorf("missing source reason in %v", fromArticle.ConfidenceReasons)
	}
	if slices.Contains(fromArticle.ConfidenceReasons, "Company identified via dynamic web search") {
		t.Error("article provenance should not carry the web-search reason")
	}

	fromLookup := classifier.ResolveConfidence(
		domain.AttendeeCandidate{Name: "John Roe", FoundInArticle: false},
		domain.ClassificationResult{MatchConfidence: domain.MatchHigh}, "AP")

	if !slices.Contains(fromLookup.ConfidenceReasons, "Company identified via dynamic web search") {
		t.Errorf("missing web-search reason in %v", fromLookup.ConfidenceReasons)
	}
}
