package domain

// Article represents a single news item pulled from NewsAPI or an RSS feed.
// This is the input to the extraction pipeline; it is never mutated.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// Text returns the combined searchable text of the article, summary first.
func (a Article) Text() string {
	return a.Title + " " + a.Description + " " + a.Content
}

// AttendeeCandidate is a provisional (name, title, organization) triple
// extracted from article text, before industry and confidence resolution.
// FoundInArticle is false when the organization was resolved via a dynamic
// lookup rather than read from the article itself.
type AttendeeCandidate struct {
	Name           string
	Title          string
	Organization   string
	FoundInArticle bool
	// LookupConfidence is the provenance confidence reported by the dynamic
	// lookup collaborator when FoundInArticle is false. Empty otherwise.
	LookupConfidence string
}
