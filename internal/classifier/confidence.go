package classifier

import (
	"github.com/jonesrussell/meeting-tracker/internal/domain"
)

// ResolveConfidence combines extraction provenance with the industry match
// confidence into the persisted attendee shape.
//
// Base confidence is "high" when the name and organization were both read
// from article text, otherwise the provenance confidence reported by the
// dynamic lookup (defaulting to "medium"). An industry classification of
// Other/low forces the final confidence to "low" regardless of base; the
// industry signal can only lower confidence, never raise it.
func ResolveConfidence(candidate domain.AttendeeCandidate, classification domain.ClassificationResult, sourcePublication string) domain.Attendee {
	base := domain.ConfidenceHigh
	if !candidate.FoundInArticle {
		base = candidate.LookupConfidence
		if base == "" {
			base = domain.ConfidenceMedium
		}
	}

	final := base
	if classification.MatchConfidence == domain.MatchLow {
		final = domain.ConfidenceLow
	}

	reasons := []string{"Extracted from article: " + sourcePublication}
	if !candidate.FoundInArticle {
		reasons = append(reasons, "Company identified via dynamic web search")
	}

	return domain.Attendee{
		Name:                candidate.Name,
		Title:               candidate.Title,
		Organization:        candidate.Organization,
		PrimaryIndustry:     classification.PrimaryIndustry,
		SecondaryIndustries: classification.SecondaryIndustries,
		ConfidenceLevel:     final,
		ConfidenceReasons:   reasons,
		RequiresReview:      final == domain.ConfidenceLow,
	}
}
