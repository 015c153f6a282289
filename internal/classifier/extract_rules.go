package classifier

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/meeting-tracker/internal/data"
)

// Extraction rule names, used in logs and rule-by-rule tests.
const (
	ruleNameTitleOrg     = "name-title-of-org"
	ruleOrgTitleName     = "org-title-name"
	ruleOrgOfficerLookup = "org-officer-lookup"
	ruleProminentFigure  = "prominent-figure"
	ruleUnknownName      = "unknown-name-lookup"
)

// maxOrgWords rejects organization captures that grabbed too much text.
const maxOrgWords = 4

// businessWindow is the character window around a candidate name that must
// contain a business indicator before a dynamic lookup is attempted.
const businessWindow = 150

// maxScannedNames bounds how many capitalized sequences the unknown-name
// rule inspects per article.
const maxScannedNames = 5

// legalSuffixPattern strips legal-entity suffixes from organization strings.
var legalSuffixPattern = regexp.MustCompile(`\s+Inc\.?|\s+Corp\.?|\s+LLC|\s+Ltd\.?`)

// politicalQualifiers reject organization captures whose first word marks a
// political phrase rather than a company ("President Trump", "Former ...").
var politicalQualifiers = map[string]struct{}{
	"President": {}, "Former": {}, "Vice": {}, "Senator": {}, "The": {},
}

// contextIndicators are the business words the unknown-name rule requires
// within the window around a candidate name.
var contextIndicators = []string{
	"ceo", "chief", "executive", "chairman", "president", "founder", "company",
}

// titleAlternation joins a title vocabulary into a regex alternation, with
// interior spaces widened to \s+.
func titleAlternation(titles []string) string {
	parts := make([]string, len(titles))
	for i, t := range titles {
		parts[i] = strings.ReplaceAll(regexp.QuoteMeta(t), " ", `\s+`)
	}
	return strings.Join(parts, "|")
}

// Pattern "Name, Title of Organization": a capitalized two-to-three word
// name, a comma, a title from the vocabulary, "of"/"at", and an organization
// phrase terminated by punctuation or a reporting verb.
var nameTitleOrgPattern = regexp.MustCompile(
	`([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?),\s+(` +
		titleAlternation(data.ExecutiveTitles()) +
		`)\s+(?:of\s+|at\s+)([A-Z][A-Za-z0-9\s&\.]+?)(?:\.|,|\s+(?:said|told|announced|met|joined|attended))`)

// orgTitleNameTitles is the title subset accepted between an organization
// and a trailing name ("Amazon CEO Andy Jassy").
var orgTitleNameTitles = []string{
	"Chief Executive", "Executive Chairman", "Managing Director",
	"Co-Founder", "Founder", "Chairman", "President", "CEO",
}

// Pattern "Organization Title Name": a short capitalized organization phrase,
// a title, then a two-word (optionally hyphenated) capitalized name.
var orgTitleNamePattern = regexp.MustCompile(
	`([A-Z][A-Za-z0-9]+(?:\s+[A-Z&][A-Za-z0-9]+){0,2})\s+(` +
		titleAlternation(orgTitleNameTitles) +
		`)\s+([A-Z][a-z]+(?:-[A-Z][a-z]+)?\s+[A-Z][a-z]+)`)

// Pattern "meets Organization CEO" with no name: the officer is resolved via
// the dynamic lookup collaborator.
var orgOfficerPattern = regexp.MustCompile(
	`(?:meets|met|hosted|host|meeting\s+with)\s+(?:with\s+)?([A-Z][A-Za-z0-9]+(?:\s+[A-Z&][A-Za-z0-9]+){0,2})\s+(` +
		titleAlternation([]string{"Chief Executive", "Chairman", "President", "CEO"}) +
		`)`)

// namePattern matches two/three-word capitalized token sequences that might
// be executives the fixed tables do not know.
var namePattern = regexp.MustCompile(
	`\b([A-Z][a-z]+(?:-[A-Z][a-z]+)?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)

// stripLegalSuffix removes Inc/Corp/LLC/Ltd suffixes and trims the result.
func stripLegalSuffix(org string) string {
	return strings.TrimSpace(legalSuffixPattern.ReplaceAllString(org, ""))
}

// hasPoliticalQualifier reports whether the organization capture starts with
// a political qualifier word.
func hasPoliticalQualifier(org string) bool {
	words := strings.Fields(org)
	if len(words) == 0 {
		return false
	}
	_, ok := politicalQualifiers[words[0]]
	return ok
}

// nearBusinessContext reports whether a business indicator occurs within the
// window around the name's first occurrence in text.
func nearBusinessContext(name, text string) bool {
	lowerText := strings.ToLower(text)
	pos := strings.Index(lowerText, strings.ToLower(name))
	if pos < 0 {
		return false
	}

	start := pos - businessWindow
	if start < 0 {
		start = 0
	}
	end := pos + businessWindow
	if end > len(lowerText) {
		end = len(lowerText)
	}

	window := lowerText[start:end]
	return containsAny(window, contextIndicators)
}
