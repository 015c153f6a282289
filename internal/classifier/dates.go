package classifier

import (
	"regexp"
	"strings"
	"time"
)

// meetingDateLayout is the display format meetings are recorded under.
// Dates are display strings, not ISO timestamps; dedup compares them by
// exact string equality.
const meetingDateLayout = "January 2, 2006"

const monthAlternation = `January|February|March|April|May|June|July|August|September|October|November|December`

// datePatterns match explicit dates in article text, tried in order.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:` + monthAlternation + `)\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),?\s+(?:` + monthAlternation + `)\s+\d{1,2}`),
}

// publishedAtLayouts are the timestamp formats feeds and NewsAPI emit.
var publishedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ExtractMeetingDate finds the meeting date in article text. Unparseable
// input is never an error: it falls back to the article's published
// timestamp and finally to the current date.
func ExtractMeetingDate(text, publishedAt string) string {
	for _, p := range datePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}

	if publishedAt != "" {
		for _, layout := range publishedAtLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(publishedAt)); err == nil {
				return t.Format(meetingDateLayout)
			}
		}
	}

	return time.Now().Format(meetingDateLayout)
}
