package classifier_test

import (
	"testing"

	"github.com/jonesrussell/meeting-tracker/internal/classifier"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

func testTaxonomy() []domain.IndustryCategory {
	return []domain.IndustryCategory{
		{
			Name:             "Retail",
			Keywords:         []string{"retail", "store"},
			RelatedCompanies: []string{"Walmart", "Target"},
		},
		{
			Name:             "Technology",
			Keywords:         []string{"software", "cloud"},
			RelatedCompanies: []string{"Microsoft"},
		},
	}
}

func TestIndustryClassifier_Classify(t *testing.T) {
	t.Helper()

	c := classifier.NewIndustryClassifier(testTaxonomy(), 0, logger.NewNop())

	tests := []struct {
		name           string
		org            string
		wantIndustry   string
		wantConfidence string
	}{
		{
			name:           "exact known company",
			org:            "Walmart",
			wantIndustry:   "Retail",
			wantConfidence: domain.MatchVeryHigh,
		},
		{
			name:           "exact match is case insensitive",
			org:            "  WALMART ",
			wantIndustry:   "Retail",
			wantConfidence: domain.MatchVeryHigh,
		},
		{
			name:           "known company with extra words",
			org:            "Walmart Stores",
			wantIndustry:   "Retail",
			wantConfidence: domain.MatchHigh,
		},
		{
			name:           "fuzzy variant of known company",
			org:            "Wal-Mart",
			wantIndustry:   "Retail",
			wantConfidence: domain.MatchMediumHigh,
		},
		{
			name:           "keyword score at threshold",
			org:            "Pacific Retail Group",
			wantIndustry:   "Retail",
			wantConfidence: domain.MatchMedium,
		},
		{
			name:           "keyword score below threshold",
			org:            "Continental Retail Holdings Company",
			wantIndustry:   domain.IndustryOther,
			wantConfidence: domain.MatchLow,
		},
		{
			name:           "no match at all",
			org:            "Quantum Dynamics Partners",
			wantIndustry:   domain.IndustryOther,
			wantConfidence: domain.MatchLow,
		},
		{
			name:           "empty organization",
			org:            "",
			wantIndustry:   domain.IndustryOther,
			wantConfidence: domain.MatchLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.org)
			if got.PrimaryIndustry != tt.wantIndustry {
				t.Errorf("industry = %q, want %q", got.PrimaryIndustry, tt.wantIndustry)
			}
			if got.MatchConfidence != tt.wantConfidence {
				t.Errorf("confidence = %q, want %q", got.MatchConfidence, tt.wantConfidence)
			}
		})
	}
}

func TestIndustryClassifier_KeywordTieBreak(t *testing.T) {
	t.Helper()

	// Equal keyword scores resolve to the category declared first.
	categories := []domain.IndustryCategory{
		{Name: "Agriculture", Keywords: []string{"fresh"}},
		{Name: "Food & Beverage", Keywords: []string{"foods"}},
	}
	c := classifier.NewIndustryClassifier(categories, 0, logger.NewNop())

	got := c.Classify("Freshfoods Co")
	if got.PrimaryIndustry != "Agriculture" {
		t.Errorf("industry = %q, want Agriculture", got.PrimaryIndustry)
	}
	if got.MatchConfidence != domain.MatchMedium {
		t.Errorf("confidence = %q, want %q", got.MatchConfidence, domain.MatchMedium)
	}
}
