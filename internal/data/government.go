package data

import "strings"

// governmentKeywords are substrings that mark an "organization" as a
// government or political institution rather than a company.
var governmentKeywords = []string{
	"national assembly", "government", "ministry", "parliament", "congress",
	"senate", "administration", "department of", "agency", "commission",
	"federal", "state department", "white house", "embassy", "consulate",
	"republic", "kingdom", "federation", "union", "nation", "country",
	"military", "army", "navy", "defense", "homeland security",
	"foreign affairs", "state", "democratic", "republic of",
	"united states", "european union", "nato", "un ", "u.n.",
}

// countries lists country and region names rejected as organizations.
var countries = []string{
	"venezuela", "france", "ukraine", "russia", "iran", "mexico", "colombia",
	"denmark", "greenland", "china", "israel", "syria", "iraq", "afghanistan",
	"canada", "britain", "germany", "italy", "spain", "poland", "japan",
	"korea", "brazil", "argentina", "egypt", "turkey", "india", "pakistan",
	"saudi arabia", "united arab emirates", "qatar", "taiwan", "vietnam",
	"thailand", "indonesia", "australia", "new zealand", "south africa",
}

// nationalityAdjectives are rejected only when the organization string is
// exactly that single word ("Danish" alone is not a company; "Danish Crown"
// might be).
var nationalityAdjectives = map[string]struct{}{
	"danish": {}, "venezuelan": {}, "colombian": {}, "mexican": {},
	"iranian": {}, "french": {}, "canadian": {}, "british": {},
	"german": {}, "italian": {}, "spanish": {}, "japanese": {},
	"korean": {}, "chinese": {}, "russian": {}, "ukrainian": {},
	"israeli": {}, "egyptian": {},
}

// IsGovernmentOrCountry reports whether an organization string denotes a
// government entity, country, or bare nationality rather than a company.
func IsGovernmentOrCountry(org string) bool {
	lower := strings.ToLower(strings.TrimSpace(org))
	if lower == "" {
		return false
	}

	for _, kw := range governmentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, c := range countries {
		if strings.Contains(lower, c) {
			return true
		}
	}

	if !strings.Contains(lower, " ") {
		if _, ok := nationalityAdjectives[lower]; ok {
			return true
		}
	}

	return false
}

// PoliticalKeywords returns the vocabulary whose density marks an article as
// primarily geopolitical. Used by the relevance filter's rejection gate.
func PoliticalKeywords() []string {
	out := make([]string, len(politicalKeywords))
	copy(out, politicalKeywords)
	return out
}

var politicalKeywords = []string{
	"ukraine", "russia", "venezuela", "maduro", "macron", "zelensky", "iran",
	"foreign leader", "prime minister", "nato", "invasion", "military",
	"war", "sanctions", "diplomacy", "treaty", "ambassador",
}
