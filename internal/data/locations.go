package data

import "strings"

// LocationTBD is reported when no known venue appears in the article.
const LocationTBD = "Location TBD"

// venue pairs a display name with the phrases that identify it.
type venue struct {
	display  string
	keywords []string
}

// knownVenues lists the venues meetings are matched against, in priority
// order. The first venue whose keyword appears in the text wins.
var knownVenues = []venue{
	{display: "Mar-a-Lago", keywords: []string{"mar-a-lago", "mar a lago"}},
	{display: "White House, DC", keywords: []string{"white house"}},
	{display: "Trump Tower, NY", keywords: []string{"trump tower"}},
	{display: "Bedminster, NJ", keywords: []string{"bedminster"}},
}

// MatchVenue returns the display name of the first known venue mentioned in
// the text, or LocationTBD when none appears.
func MatchVenue(text string) string {
	lower := strings.ToLower(text)
	for _, v := range knownVenues {
		for _, kw := range v.keywords {
			if strings.Contains(lower, kw) {
				return v.display
			}
		}
	}
	return LocationTBD
}
