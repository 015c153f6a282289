package domain

import "time"

// Confidence levels for persisted attendees, ordered strongest first.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Industry match confidence tiers, ordered strongest first. These describe
// how the organization was matched against the taxonomy, not the extraction
// provenance.
const (
	MatchVeryHigh   = "very high"
	MatchHigh       = "high"
	MatchMediumHigh = "medium-high"
	MatchMedium     = "medium"
	MatchLow        = "low"
)

// IndustryOther is the industry assigned when no taxonomy tier matched.
const IndustryOther = "Other"

// MeetingTypeBusiness is the only meeting type produced by this pipeline.
const MeetingTypeBusiness = "Business Meeting"

// ClassificationResult is the outcome of classifying an organization against
// the industry taxonomy. Ephemeral, scoped to one attendee.
type ClassificationResult struct {
	PrimaryIndustry     string   `json:"primary_industry"`
	SecondaryIndustries []string `json:"secondary_industries"`
	MatchConfidence     string   `json:"match_confidence"`
}

// Attendee is the persisted shape of a meeting participant.
type Attendee struct {
	ID                  int64    `db:"id"                   json:"id"`
	MeetingID           int64    `db:"meeting_id"           json:"meeting_id"`
	Name                string   `db:"name"                 json:"name"`
	Title               string   `db:"title"                json:"title"`
	Organization        string   `db:"company"              json:"company"`
	PrimaryIndustry     string   `db:"primary_industry"     json:"primary_industry"`
	SecondaryIndustries []string `db:"-"                    json:"secondary_industries"`
	ConfidenceLevel     string   `db:"confidence_level"     json:"confidence_level"`
	ConfidenceReasons   []string `db:"-"                    json:"confidence_reasons"`
	RequiresReview      bool     `db:"requires_review"      json:"requires_review"`
}

// Meeting is a durable record of one reported meeting. After insertion the
// only permitted mutation is the merge operation, which appends to
// SourceURLs and recomputes SourceCount and SourcePublication.
type Meeting struct {
	ID                int64      `db:"id"                 json:"id"`
	Date              string     `db:"date"               json:"date"`
	Location          string     `db:"location"           json:"location"`
	MeetingType       string     `db:"meeting_type"       json:"meeting_type"`
	SourceURL         string     `db:"source_url"         json:"source_url"`
	SourcePublication string     `db:"source_publication" json:"source_publication"`
	DateAdded         time.Time  `db:"date_added"         json:"date_added"`
	Notes             string     `db:"notes"              json:"notes"`
	SourceURLs        []string   `db:"-"                  json:"source_urls"`
	SourceCount       int        `db:"source_count"       json:"source_count"`
	Attendees         []Attendee `db:"-"                  json:"attendees"`
}

// DedupOutcome is the duplicate/merge resolver's classification of a newly
// assembled meeting against the store of previously accepted meetings.
type DedupOutcome int

const (
	// DedupNew means no prior meeting matches; insert a new record.
	DedupNew DedupOutcome = iota
	// DedupDuplicate means the exact source URL is already recorded; ignore.
	DedupDuplicate
	// DedupMerge means the same event was reported by a different source;
	// merge the new source into the existing record.
	DedupMerge
)

// String returns a human-readable name for the outcome.
func (o DedupOutcome) String() string {
	switch o {
	case DedupNew:
		return "new"
	case DedupDuplicate:
		return "duplicate"
	case DedupMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// DedupDecision pairs an outcome with the existing meeting it refers to.
// MeetingID is zero for DedupNew.
type DedupDecision struct {
	Outcome   DedupOutcome
	MeetingID int64
}
