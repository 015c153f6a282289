// Package dedup decides whether a newly assembled meeting is new, an exact
// duplicate of a stored meeting, or a second source reporting the same
// real-world event.
package dedup

import (
	"context"
	"strings"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

// minSharedNameLength: a substring name match only counts as the same person
// when the longer of the two names exceeds this length. Keeps short
// fragments from collapsing unrelated meetings.
const minSharedNameLength = 5

// DateMatch is one stored meeting sharing a candidate's date, with the
// attendee names already recorded for it.
type DateMatch struct {
	MeetingID     int64
	AttendeeNames []string
}

// MeetingStore is the persistence collaborator the resolver is defined over.
// The resolver never touches storage through any other operations.
type MeetingStore interface {
	// FindBySourceURL returns the meeting recorded under the exact URL.
	FindBySourceURL(ctx context.Context, url string) (int64, bool, error)
	// FindByDate returns stored meetings whose date string matches exactly,
	// along with their attendee names.
	FindByDate(ctx context.Context, date string) ([]DateMatch, error)
	// Insert stores a new meeting and returns its id.
	Insert(ctx context.Context, meeting *domain.Meeting) (int64, error)
	// AppendSource merges a source into an existing meeting. Returns false
	// when the URL was already present (a no-op, not an error).
	AppendSource(ctx context.Context, meetingID int64, url, publication string) (bool, error)
}

// Resolver classifies meetings against the store and applies the outcome.
type Resolver struct {
	store MeetingStore
	log   logger.Logger
}

// NewResolver creates a resolver over the given store.
func NewResolver(store MeetingStore, log logger.Logger) *Resolver {
	return &Resolver{store: store, log: log}
}

// Resolve classifies the meeting without mutating the store. Store errors
// degrade to "not a duplicate" so a flaky store never halts the run; the
// resulting double record is recoverable, a silently dropped meeting is not.
func (r *Resolver) Resolve(ctx context.Context, meeting *domain.Meeting) domain.DedupDecision {
	if meeting.Date == "" || len(meeting.Attendees) == 0 {
		return domain.DedupDecision{Outcome: domain.DedupNew}
	}

	id, found, err := r.store.FindBySourceURL(ctx, meeting.SourceURL)
	if err != nil {
		r.log.Warn("source URL lookup failed, treating as new",
			logger.String("url", meeting.SourceURL),
			logger.Error(err))
	} else if found {
		return domain.DedupDecision{Outcome: domain.DedupDuplicate, MeetingID: id}
	}

	matches, err := r.store.FindByDate(ctx, meeting.Date)
	if err != nil {
		r.log.Warn("date lookup failed, treating as new",
			logger.String("date", meeting.Date),
			logger.Error(err))
		return domain.DedupDecision{Outcome: domain.DedupNew}
	}

	for _, match := range matches {
		for _, attendee := range meeting.Attendees {
			for _, existing := range match.AttendeeNames {
				if sameAttendee(attendee.Name, existing) {
					return domain.DedupDecision{Outcome: domain.DedupMerge, MeetingID: match.MeetingID}
				}
			}
		}
	}

	return domain.DedupDecision{Outcome: domain.DedupNew}
}

// Apply executes the decision: insert for NEW, merge for MERGE, nothing for
// DUPLICATE. Returns the id of the affected meeting (zero when a DUPLICATE
// was ignored).
func (r *Resolver) Apply(ctx context.Context, meeting *domain.Meeting, decision domain.DedupDecision) (int64, error) {
	switch decision.Outcome {
	case domain.DedupDuplicate:
		return 0, nil

	case domain.DedupMerge:
		added, err := r.store.AppendSource(ctx, decision.MeetingID, meeting.SourceURL, meeting.SourcePublication)
		if err != nil {
			return 0, err
		}
		if added {
			r.log.Info("merged additional source into existing meeting",
				logger.Int64("meeting_id", decision.MeetingID),
				logger.String("url", meeting.SourceURL))
		}
		return decision.MeetingID, nil

	default:
		return r.store.Insert(ctx, meeting)
	}
}

// sameAttendee reports whether two recorded names denote the same person:
// case-insensitive equality, or substring containment where the longer name
// exceeds the minimum length.
func sameAttendee(a, b string) bool {
	na := normalizeName(a)
	nb := normalizeName(b)

	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	longer, shorter := na, nb
	if len(nb) > len(na) {
		longer, shorter = nb, na
	}
	return len(longer) > minSharedNameLength && strings.Contains(longer, shorter)
}

// normalizeName lowercases and collapses runs of whitespace so "Andy  Jassy"
// and "Andy Jassy" compare equal across sources.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
