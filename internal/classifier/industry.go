package classifier

import (
	"strings"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

// Industry classifier constants.
const (
	// fuzzyMaxOrgLength bounds tier-2 fuzzy matching to short organization
	// strings to avoid false positives on long ones.
	fuzzyMaxOrgLength = 20
	// fuzzyCoreLength is the substring window used by the fuzzy tier.
	fuzzyCoreLength = 4
	// minKeywordLength skips very short taxonomy keywords in tier 3.
	minKeywordLength = 4
	// defaultKeywordScoreThreshold is the minimum keyword-length /
	// organization-length ratio tier 3 accepts.
	defaultKeywordScoreThreshold = 0.3
)

// IndustryClassifier maps an organization string to an industry category
// with a confidence tier. Three ordered priority tiers; the first tier that
// produces a result wins.
type IndustryClassifier struct {
	categories []domain.IndustryCategory
	threshold  float64
	log        logger.Logger
}

// NewIndustryClassifier creates a classifier over the configured taxonomy.
// A zero threshold falls back to the default of 0.3.
func NewIndustryClassifier(categories []domain.IndustryCategory, keywordThreshold float64, log logger.Logger) *IndustryClassifier {
	if keywordThreshold <= 0 {
		keywordThreshold = defaultKeywordScoreThreshold
	}
	return &IndustryClassifier{
		categories: categories,
		threshold:  keywordThreshold,
		log:        log,
	}
}

// Classify resolves the organization's industry. SecondaryIndustries is
// reserved for future multi-label support and is always empty.
func (c *IndustryClassifier) Classify(orgName string) domain.ClassificationResult {
	orgLower := strings.ToLower(strings.TrimSpace(orgName))

	if result, ok := c.matchKnownCompany(orgLower); ok {
		return result
	}

	if len(orgLower) <= fuzzyMaxOrgLength {
		if result, ok := c.matchFuzzy(orgLower); ok {
			return result
		}
	}

	if result, ok := c.matchKeywords(orgLower); ok {
		return result
	}

	return domain.ClassificationResult{
		PrimaryIndustry:     domain.IndustryOther,
		SecondaryIndustries: []string{},
		MatchConfidence:     domain.MatchLow,
	}
}

// matchKnownCompany is tier 1: exact or whole-word containment of a known
// company name. Exact equality scores "very high", boundary containment
// "high".
func (c *IndustryClassifier) matchKnownCompany(orgLower string) (domain.ClassificationResult, bool) {
	for _, cat := range c.categories {
		for _, known := range cat.RelatedCompanies {
			knownLower := strings.ToLower(known)

			if orgLower == knownLower {
				return classification(cat.Name, domain.MatchVeryHigh), true
			}

			if strings.Contains(" "+orgLower+" ", " "+knownLower+" ") ||
				strings.HasPrefix(orgLower, knownLower+" ") ||
				strings.HasSuffix(orgLower, " "+knownLower) {
				return classification(cat.Name, domain.MatchHigh), true
			}
		}
	}
	return domain.ClassificationResult{}, false
}

// matchFuzzy is tier 2: a sliding 4-character window of the known company
// name occurring anywhere in the organization string. Catches minor spelling
// and abbreviation drift that tier 1's boundary requirement misses.
func (c *IndustryClassifier) matchFuzzy(orgLower string) (domain.ClassificationResult, bool) {
	for _, cat := range c.categories {
		for _, known := range cat.RelatedCompanies {
			if fuzzyMatch(strings.ToLower(known), orgLower) {
				return classification(cat.Name, domain.MatchMediumHigh), true
			}
		}
	}
	return domain.ClassificationResult{}, false
}

// matchKeywords is tier 3: keyword containment scored by keyword length
// relative to organization length. The best score must reach the threshold;
// ties resolve to the category declared earliest in the taxonomy.
func (c *IndustryClassifier) matchKeywords(orgLower string) (domain.ClassificationResult, bool) {
	if len(orgLower) == 0 {
		return domain.ClassificationResult{}, false
	}

	bestScore := 0.0
	bestIndustry := ""

	for _, cat := range c.categories {
		for _, keyword := range cat.Keywords {
			kw := strings.ToLower(keyword)
			if len(kw) < minKeywordLength {
				continue
			}
			if !strings.Contains(orgLower, kw) {
				continue
			}
			score := float64(len(kw)) / float64(len(orgLower))
			// Strictly greater keeps the earliest category on ties.
			if score > bestScore {
				bestScore = score
				bestIndustry = cat.Name
			}
		}
	}

	if bestIndustry != "" && bestScore >= c.threshold {
		if c.log != nil {
			c.log.Debug("industry matched by keyword",
				logger.String("industry", bestIndustry),
				logger.Float64("score", bestScore))
		}
		return classification(bestIndustry, domain.MatchMedium), true
	}
	return domain.ClassificationResult{}, false
}

// fuzzyMatch reports whether any 4-character substring of known occurs in
// org. Both strings must be at least 4 characters.
func fuzzyMatch(known, org string) bool {
	if len(known) < fuzzyCoreLength || len(org) < fuzzyCoreLength {
		return false
	}
	for i := 0; i+fuzzyCoreLength <= len(known); i++ {
		if strings.Contains(org, known[i:i+fuzzyCoreLength]) {
			return true
		}
	}
	return false
}

func classification(industry, confidence string) domain.ClassificationResult {
	return domain.ClassificationResult{
		PrimaryIndustry:     industry,
		SecondaryIndustries: []string{},
		MatchConfidence:     confidence,
	}
}
