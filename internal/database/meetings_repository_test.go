package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/database"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

func newTestRepository(t *testing.T) *database.MeetingsRepository {
	t.Helper()

	db, err := database.NewSQLiteConnection(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return database.NewMeetingsRepository(db, logger.NewNop())
}

func sampleMeeting() *domain.Meeting {
	return &domain.Meeting{
		Date:              "January 15, 2025",
		Location:          "Mar-a-Lago",
		MeetingType:       domain.MeetingTypeBusiness,
		SourceURL:         "https://news.example/amazon-dinner",
		SourcePublication: "Reuters",
		Notes:             "Trump dines with tech executives",
		Attendees: []domain.Attendee{
			{
				Name:              "Andy Jassy",
				Title:             "CEO",
				Organization:      "Amazon",
				PrimaryIndustry:   "E-Commerce",
				ConfidenceLevel:   domain.ConfidenceHigh,
				ConfidenceReasons: []string{"Extracted from article: Reuters"},
			},
			{
				Name:            "Doug McMillon",
				Title:           "CEO",
				Organization:    "Walmart",
				PrimaryIndustry: "Retail",
				ConfidenceLevel: domain.ConfidenceHigh,
			},
		},
	}
}

func TestMeetingsRepository_InsertAndGet(t *testing.T) {
	t.Helper()

	repo := newTestRepository(t)
	ctx := context.Background()

	meeting := sampleMeeting()
	id, err := repo.Insert(ctx, meeting)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 || meeting.ID != id {
		t.Fatalf("id = %d, meeting.ID = %d", id, meeting.ID)
	}
	if meeting.DateAdded.IsZero() {
		t.Error("DateAdded not defaulted")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date != "January 15, 2025" || got.Location != "Mar-a-Lago" {
		t.Errorf("meeting = %+v", got)
	}
	if got.SourceCount != 1 || len(got.SourceURLs) != 1 {
		t.Errorf("sources = %d %v", got.SourceCount, got.SourceURLs)
	}
	if len(got.Attendees) != 2 {
		t.Fatalf("attendees = %d, want 2", len(got.Attendees))
	}

	a := got.Attendees[0]
	if a.Name != "Andy Jassy" || a.Organization != "Amazon" || a.MeetingID != id {
		t.Errorf("attendee = %+v", a)
	}
	if len(a.ConfidenceReasons) != 1 || a.ConfidenceReasons[0] != "Extracted from article: Reuters" {
		t.Errorf("confidence reasons = %v", a.ConfidenceReasons)
	}
}

func TestMeetingsRepository_GetByID_NotFound(t *testing.T) {
	t.Helper()

	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, database.ErrMeetingNotFound) {
		t.Errorf("err = %v, want ErrMeetingNotFound", err)
	}
}

func TestMeetingsRepository_FindBySourceURL(t *testing.T) {
	t.Helper()

	repo := newTestRepository(t)
	ctx := context.Background()

	meeting := sampleMeeting()
	id, err := repo.Insert(ctx, meeting)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	gotID, found, err := repo.FindBySourceURL(ctx, meeting.SourceURL)
	if err != nil || !found || gotID != id {
		t.Errorf("primary URL: id=%d found=%v err=%v", gotID, found, err)
	}

	if _, found, _ := repo.FindBySourceURL(ctx, "https://news.example/other"); found {
		t.Error("unexpected hit for unknown URL")
	}

	// A merged URL is found through the source_urls list.
	if _, err := repo.AppendSource(ctx, id, "https://ap.example/dinner", "AP"); err != nil {
		t.Fatalf("append: %v", err)
	}
	gotID, found, err = repo.FindBySourceURL(ctx, "https://ap.example/dinner")
	if err != nil || !found || gotID != id {
		t.Errorf("merged URL: id=%d found=%v err=%v", gotID, found, err)
	}
}

func TestMeetingsRepository_FindByDate(t *testing.T) {
	t.Helper()

	repo := newTestRepository(t)
	ctx := context.Background()

	meeting := sampleMeeting()
	id, err := repo.Insert(ctx, meeting)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	matches, err := repo.FindByDate(ctx, "January 15, 2025")
	if err != nil {
		t.Fatalf("find by date: %v", err)
	}
	if len(matches) != 1 || matches[0].MeetingID != id {
		t.Fatalf("matches = %+v", matches)
	}
	if len(matches[0].AttendeeNames) != 2 || matches[0].AttendeeNames[0] != "Andy Jassy" {
		t.Errorf("attendee names = %v", matches[0].AttendeeNames)
	}

	matches, err = repo.FindByDate(ctx, "February 1, 2025")
	if err != nil {
		t.Fatalf("find by date: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("unexpected matches %+v", matches)
	}
}

func TestMeetingsRepository_AppendSource(t *testing.T) {
	t.Helper()

	repo := newTestRepository(t)
	ctx := context.Background()

	meeting := sampleMeeting()
	id, err := repo.Insert(ctx, meeting)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	added, err := repo.AppendSource(ctx, id, "https://ap.example/dinner", "AP")
	if err != nil || !added {
		t.Fatalf("append: added=%v err=%v", added, err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SourceCount != 2 || len(got.SourceURLs) != 2 {
		t.Errorf("sources = %d %v", got.SourceCount, got.SourceURLs)
	}
	if got.SourcePublication != "Reuters, AP" {
		t.Errorf("publication = %q", got.SourcePublication)
	}

	// Re-appending the same URL is a no-op, not an error.
	added, err = repo.AppendSource(ctx, id, "https://ap.example/dinner", "AP")
	if err != nil {
		t.Fatalf("re-append: %v", err)
	}
	if added {
		t.Error("re-append reported a write")
	}
	got, _ = repo.GetByID(ctx, id)
	if got.SourceCount != 2 {
		t.Errorf("source count after re-append = %d", got.SourceCount)
	}

	// A publication already present is not concatenated again.
	if _, err = repo.AppendSource(ctx, id, "https://reuters.example/follow-up", "Reuters"); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, _ = repo.GetByID(ctx, id)
	if got.SourcePublication != "Reuters, AP" {
		t.Errorf("publication = %q", got.SourcePublication)
	}

	if _, err = repo.AppendSource(ctx, 999, "https://x.example", "X"); !errors.Is(err, database.ErrMeetingNotFound) {
		t.Errorf("err = %v, want ErrMeetingNotFound", err)
	}
}

func TestMeetingsRepository_ListRecentAndCount(t *testing.T) {
	t.Helper()

	repo := newTestRepository(t)
	ctx := context.Background()

	first := sampleMeeting()
	first.DateAdded = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}

	second := sampleMeeting()
	second.SourceURL = "https://news.example/second"
	second.Date = "January 16, 2025"
	second.DateAdded = time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(ctx, second); err != nil {
		t.Fatalf("insert: %v", err)
	}

	meetings, err := repo.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(meetings) != 2 {
		t.Fatalf("meetings = %d, want 2", len(meetings))
	}
	if meetings[0].ID != second.ID {
		t.Errorf("newest first: got id %d", meetings[0].ID)
	}
	if len(meetings[0].Attendees) != 2 {
		t.Errorf("attendees not loaded: %+v", meetings[0])
	}

	limited, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Errorf("limited = %+v", limited)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Errorf("count = %d err=%v", n, err)
	}
}

func TestMeetingsRepository_AddedSince(t *testing.T) {
	t.Helper()

	repo := newTestRepository(t)
	ctx := context.Background()

	old := sampleMeeting()
	old.DateAdded = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(ctx, old); err != nil {
		t.Fatalf("insert: %v", err)
	}

	recent := sampleMeeting()
	recent.SourceURL = "https://news.example/recent"
	recent.Date = "January 20, 2025"
	recent.DateAdded = time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(ctx, recent); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.AddedSince(ctx, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("added since: %v", err)
	}
	if len(got) != 1 || got[0].ID != recent.ID {
		t.Errorf("got = %+v", got)
	}
}
