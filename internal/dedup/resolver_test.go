package dedup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jonesrussell/meeting-tracker/internal/dedup"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

// fakeStore is an in-memory MeetingStore with injectable failures.
type fakeStore struct {
	byURL  map[string]int64
	byDate map[string][]dedup.DateMatch

	urlErr  error
	dateErr error

	inserted []*domain.Meeting
	appended []appendCall
	nextID   int64
}

type appendCall struct {
	meetingID   int64
	url         string
	publication string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byURL:  map[string]int64{},
		byDate: map[string][]dedup.DateMatch{},
		nextID: 100,
	}
}

func (s *fakeStore) FindBySourceURL(_ context.Context, url string) (int64, bool, error) {
	if s.urlErr != nil {
		return 0, false, s.urlErr
	}
	id, ok := s.byURL[url]
	return id, ok, nil
}

func (s *fakeStore) FindByDate(_ context.Context, date string) ([]dedup.DateMatch, error) {
	if s.dateErr != nil {
		return nil, s.dateErr
	}
	return s.byDate[date], nil
}

func (s *fakeStore) Insert(_ context.Context, meeting *domain.Meeting) (int64, error) {
	s.nextID++
	s.inserted = append(s.inserted, meeting)
	return s.nextID, nil
}

func (s *fakeStore) AppendSource(_ context.Context, meetingID int64, url, publication string) (bool, error) {
	s.appended = append(s.appended, appendCall{meetingID, url, publication})
	return true, nil
}

func testMeeting(url string, attendees ...string) *domain.Meeting {
	m := &domain.Meeting{
		Date:      "January 15, 2025",
		SourceURL: url,
	}
	for _, name := range attendees {
		m.Attendees = append(m.Attendees, domain.Attendee{Name: name})
	}
	return m
}

func TestResolver_Resolve(t *testing.T) {
	t.Helper()

	tests := []struct {
		name        string
		setup       func(*fakeStore)
		meeting     *domain.Meeting
		wantOutcome domain.DedupOutcome
		wantID      int64
	}{
		{
			name:        "unseen meeting is new",
			setup:       func(_ *fakeStore) {},
			meeting:     testMeeting("https://a.example/1", "Andy Jassy"),
			wantOutcome: domain.DedupNew,
		},
		{
			name: "known source URL is a duplicate",
			setup: func(s *fakeStore) {
				s.byURL["https://a.example/1"] = 7
			},
			meeting:     testMeeting("https://a.example/1", "Andy Jassy"),
			wantOutcome: domain.DedupDuplicate,
			wantID:      7,
		},
		{
			name: "same date and attendee merges",
			setup: func(s *fakeStore) {
				s.byDate["January 15, 2025"] = []dedup.DateMatch{
					{MeetingID: 9, AttendeeNames: []string{"Andy Jassy"}},
				}
			},
			meeting:     testMeeting("https://b.example/2", "Andy Jassy"),
			wantOutcome: domain.DedupMerge,
			wantID:      9,
		},
		{
			name: "substring name match merges",
			setup: func(s *fakeStore) {
				s.byDate["January 15, 2025"] = []dedup.DateMatch{
					{MeetingID: 9, AttendeeNames: []string{"Andrew R Jassy"}},
				}
			},
			meeting:     testMeeting("https://b.example/2", "R Jassy"),
			wantOutcome: domain.DedupMerge,
			wantID:      9,
		},
		{
			name: "whitespace drift still matches",
			setup: func(s *fakeStore) {
				s.byDate["January 15, 2025"] = []dedup.DateMatch{
					{MeetingID: 9, AttendeeNames: []string{"Andy  Jassy"}},
				}
			},
			meeting:     testMeeting("https://b.example/2", "andy jassy"),
			wantOutcome: domain.DedupMerge,
			wantID:      9,
		},
		{
			name: "short fragment does not merge",
			setup: func(s *fakeStore) {
				s.byDate["January 15, 2025"] = []dedup.DateMatch{
					{MeetingID: 9, AttendeeNames: []string{"Li Wu"}},
				}
			},
			meeting:     testMeeting("https://b.example/2", "Wu"),
			wantOutcome: domain.DedupNew,
		},
		{
			name: "same date different attendees is new",
			setup: func(s *fakeStore) {
				s.byDate["January 15, 2025"] = []dedup.DateMatch{
					{MeetingID: 9, AttendeeNames: []string{"Tim Cook"}},
				}
			},
			meeting:     testMeeting("https://b.example/2", "Andy Jassy"),
			wantOutcome: domain.DedupNew,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tt.setup(store)
			r := dedup.NewResolver(store, logger.NewNop())

			got := r.Resolve(context.Background(), tt.meeting)
			if got.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.MeetingID != tt.wantID {
				t.Errorf("meeting id = %d, want %d", got.MeetingID, tt.wantID)
			}
		})
	}
}

func TestResolver_Resolve_MissingFields(t *testing.T) {
	t.Helper()

	store := newFakeStore()
	store.byURL["https://a.example/1"] = 7
	r := dedup.NewResolver(store, logger.NewNop())

	// Without a date or attendees the meeting cannot be matched; it is
	// recorded as new rather than guessed at.
	noDate := testMeeting("https://a.example/1", "Andy Jassy")
	noDate.Date = ""
	if got := r.Resolve(context.Background(), noDate); got.Outcome != domain.DedupNew {
		t.Errorf("outcome without date = %v, want new", got.Outcome)
	}

	noAttendees := testMeeting("https://a.example/1")
	if got := r.Resolve(context.Background(), noAttendees); got.Outcome != domain.DedupNew {
		t.Errorf("outcome without attendees = %v, want new", got.Outcome)
	}
}

func TestResolver_Resolve_StoreErrorsDegradeToNew(t *testing.T) {
	t.Helper()

	store := newFakeStore()
	store.byURL["https://a.example/1"] = 7
	store.urlErr = errors.New("connection reset")
	store.dateErr = errors.New("connection reset")
	r := dedup.NewResolver(store, logger.NewNop())

	got := r.Resolve(context.Background(), testMeeting("https://a.example/1", "Andy Jassy"))
	if got.Outcome != domain.DedupNew {
		t.Errorf("outcome = %v, want new on store failure", got.Outcome)
	}
}

func TestResolver_Apply(t *testing.T) {
	t.Helper()

	store := newFakeStore()
	r := dedup.NewResolver(store, logger.NewNop())
	ctx := context.Background()

	meeting := testMeeting("https://a.example/1", "Andy Jassy")
	meeting.SourcePublication = "Reuters"

	// NEW inserts.
	id, err := r.Apply(ctx, meeting, domain.DedupDecision{Outcome: domain.DedupNew})
	if err != nil {
		t.Fatalf("apply new: %v", err)
	}
	if id == 0 || len(store.inserted) != 1 {
		t.Fatalf("insert not recorded: id=%d inserted=%d", id, len(store.inserted))
	}

	// MERGE appends the source to the existing record.
	id, err = r.Apply(ctx, meeting, domain.DedupDecision{Outcome: domain.DedupMerge, MeetingID: 9})
	if err != nil {
		t.Fatalf("apply merge: %v", err)
	}
	if id != 9 {
		t.Errorf("merge id = %d, want 9", id)
	}
	if len(store.appended) != 1 || store.appended[0].url != "https://a.example/1" {
		t.Errorf("append calls = %+v", store.appended)
	}

	// DUPLICATE is a no-op.
	id, err = r.Apply(ctx, meeting, domain.DedupDecision{Outcome: domain.DedupDuplicate, MeetingID: 9})
	if err != nil {
		t.Fatalf("apply duplicate: %v", err)
	}
	if id != 0 {
		t.Errorf("duplicate id = %d, want 0", id)
	}
	if len(store.inserted) != 1 || len(store.appended) != 1 {
		t.Error("duplicate must not touch the store")
	}
}
