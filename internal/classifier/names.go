// Package classifier implements the heuristic extraction-classification
// engine: the relevance gate, the attendee extraction cascade, the name and
// organization validators, the tiered industry classifier, and the
// confidence resolver.
package classifier

import (
	"strings"
	"unicode"

	"github.com/jonesrussell/meeting-tracker/internal/data"
)

// Name shape constants.
const (
	minNameTokens         = 2
	maxNameTokens         = 3
	minTokenLength        = 2
	maxTokenLength        = 15
	defaultLowercaseRatio = 0.4
)

// NameValidator decides whether a token sequence plausibly denotes a human
// personal name. It is a pure gate shared by the extraction rules.
type NameValidator struct {
	// LowercaseRatio is the minimum fraction of lowercase letters among the
	// characters after the first in each token. Filters all-caps fragments
	// and acronym noise.
	LowercaseRatio float64
}

// NewNameValidator creates a validator with the given lowercase-ratio
// threshold. Zero means the default of 0.4.
func NewNameValidator(lowercaseRatio float64) *NameValidator {
	if lowercaseRatio <= 0 {
		lowercaseRatio = defaultLowercaseRatio
	}
	return &NameValidator{LowercaseRatio: lowercaseRatio}
}

// LooksLikePersonName reports whether the candidate passes all four name
// shape rules: 2-3 tokens, capitalized hyphen components of length 2-15,
// the lowercase-ratio check, and the non-name blocklist.
func (v *NameValidator) LooksLikePersonName(candidate string) bool {
	parts := strings.Fields(candidate)
	if len(parts) < minNameTokens || len(parts) > maxNameTokens {
		return false
	}

	for _, part := range parts {
		for _, sub := range strings.Split(part, "-") {
			if !validNameComponent(sub) {
				return false
			}
		}
	}

	for _, part := range parts {
		if !v.mostlyLowercase(part) {
			return false
		}
	}

	for _, part := range parts {
		if data.IsNonNameWord(part) {
			return false
		}
	}

	return true
}

// validNameComponent checks a single hyphen component: leading uppercase,
// length within [2,15].
func validNameComponent(sub string) bool {
	if sub == "" {
		return false
	}
	runes := []rune(sub)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	if len(runes) < minTokenLength || len(runes) > maxTokenLength {
		return false
	}
	return true
}

// mostlyLowercase checks that enough of the token after its first character
// is lowercase. Fragments like "Bu Tan" shed from longer words fail this.
func (v *NameValidator) mostlyLowercase(token string) bool {
	runes := []rune(token)
	if len(runes) < 2 {
		return true
	}

	var lower, alpha int
	for _, r := range runes[1:] {
		if unicode.IsLetter(r) {
			alpha++
			if unicode.IsLower(r) {
				lower++
			}
		}
	}
	if alpha == 0 {
		return true
	}
	return float64(lower) >= float64(alpha)*v.LowercaseRatio
}
