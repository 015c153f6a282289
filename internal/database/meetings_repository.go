package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/meeting-tracker/internal/dedup"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

// ErrMeetingNotFound is returned when a meeting id does not exist.
var ErrMeetingNotFound = errors.New("meeting not found")

// MeetingsRepository persists meetings and their attendees. It implements
// dedup.MeetingStore.
type MeetingsRepository struct {
	db  *sqlx.DB
	log logger.Logger
}

// NewMeetingsRepository creates a repository over an open connection.
func NewMeetingsRepository(db *sqlx.DB, log logger.Logger) *MeetingsRepository {
	return &MeetingsRepository{db: db, log: log}
}

// meetingRow is the scan target for the meetings table. JSON columns are
// decoded separately.
type meetingRow struct {
	ID                int64  `db:"id"`
	Date              string `db:"date"`
	Location          string `db:"location"`
	MeetingType       string `db:"meeting_type"`
	SourceURL         string `db:"source_url"`
	SourcePublication string `db:"source_publication"`
	DateAdded         string `db:"date_added"`
	Notes             string `db:"notes"`
	SourceURLs        string `db:"source_urls"`
	SourceCount       int    `db:"source_count"`
}

type attendeeRow struct {
	ID                  int64  `db:"id"`
	MeetingID           int64  `db:"meeting_id"`
	Name                string `db:"name"`
	Title               string `db:"title"`
	Company             string `db:"company"`
	PrimaryIndustry     string `db:"primary_industry"`
	SecondaryIndustries string `db:"secondary_industries"`
	ConfidenceLevel     string `db:"confidence_level"`
	ConfidenceReasons   string `db:"confidence_reasons"`
	RequiresReview      bool   `db:"requires_review"`
}

// FindBySourceURL reports whether any stored meeting carries the exact URL,
// either as its primary source or inside its merged source list.
func (r *MeetingsRepository) FindBySourceURL(ctx context.Context, url string) (int64, bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`SELECT id FROM meetings WHERE source_url = ? LIMIT 1`, url)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to query source URL: %w", err)
	}

	// Merged URLs live in the source_urls JSON array. The LIKE prefilter
	// keeps the scan cheap; the decode confirms exact membership.
	var rows []meetingRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT id, source_urls FROM meetings WHERE source_urls LIKE ?`,
		"%"+url+"%")
	if err != nil {
		return 0, false, fmt.Errorf("failed to query merged sources: %w", err)
	}
	for i := range rows {
		for _, merged := range decodeStringList(rows[i].SourceURLs) {
			if merged == url {
				return rows[i].ID, true, nil
			}
		}
	}
	return 0, false, nil
}

// FindByDate returns the stored meetings whose date string matches exactly,
// with their attendee names.
func (r *MeetingsRepository) FindByDate(ctx context.Context, date string) ([]dedup.DateMatch, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids,
		`SELECT id FROM meetings WHERE date = ? ORDER BY id`, date); err != nil {
		return nil, fmt.Errorf("failed to query meetings by date: %w", err)
	}

	matches := make([]dedup.DateMatch, 0, len(ids))
	for _, id := range ids {
		var names []string
		if err := r.db.SelectContext(ctx, &names,
			`SELECT name FROM attendees WHERE meeting_id = ? ORDER BY id`, id); err != nil {
			return nil, fmt.Errorf("failed to query attendees for meeting %d: %w", id, err)
		}
		matches = append(matches, dedup.DateMatch{MeetingID: id, AttendeeNames: names})
	}
	return matches, nil
}

// Insert stores a meeting and its attendees in one transaction and returns
// the new meeting id. The caller's Meeting is updated with the id.
func (r *MeetingsRepository) Insert(ctx context.Context, meeting *domain.Meeting) (int64, error) {
	if meeting.DateAdded.IsZero() {
		meeting.DateAdded = time.Now().UTC()
	}
	if len(meeting.SourceURLs) == 0 && meeting.SourceURL != "" {
		meeting.SourceURLs = []string{meeting.SourceURL}
	}
	if meeting.SourceCount == 0 {
		meeting.SourceCount = len(meeting.SourceURLs)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO meetings
			(date, location, meeting_type, source_url, source_publication,
			 date_added, notes, source_urls, source_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meeting.Date,
		meeting.Location,
		meeting.MeetingType,
		meeting.SourceURL,
		meeting.SourcePublication,
		meeting.DateAdded.Format(time.RFC3339),
		meeting.Notes,
		encodeStringList(meeting.SourceURLs),
		meeting.SourceCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert meeting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read meeting id: %w", err)
	}

	for i := range meeting.Attendees {
		a := &meeting.Attendees[i]
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO attendees
				(meeting_id, name, title, company, primary_industry,
				 secondary_industries, confidence_level, confidence_reasons,
				 requires_review)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			a.Name,
			a.Title,
			a.Organization,
			a.PrimaryIndustry,
			encodeStringList(a.SecondaryIndustries),
			a.ConfidenceLevel,
			encodeStringList(a.ConfidenceReasons),
			a.RequiresReview,
		); err != nil {
			return 0, fmt.Errorf("failed to insert attendee %q: %w", a.Name, err)
		}
		a.MeetingID = id
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit meeting: %w", err)
	}

	meeting.ID = id
	return id, nil
}

// AppendSource merges a second source into an existing meeting. It appends
// the URL to source_urls, bumps source_count, and concatenates the
// publication name onto source_publication. Returns false without writing
// when the URL is already recorded.
func (r *MeetingsRepository) AppendSource(ctx context.Context, meetingID int64, url, publication string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var row meetingRow
	err = tx.GetContext(ctx, &row,
		`SELECT id, source_url, source_publication, source_urls, source_count
		 FROM meetings WHERE id = ?`, meetingID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrMeetingNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to load meeting %d: %w", meetingID, err)
	}

	urls := decodeStringList(row.SourceURLs)
	if len(urls) == 0 && row.SourceURL != "" {
		urls = []string{row.SourceURL}
	}
	for _, existing := range urls {
		if existing == url {
			return false, nil
		}
	}
	urls = append(urls, url)

	pub := row.SourcePublication
	if publication != "" && !strings.Contains(pub, publication) {
		if pub == "" {
			pub = publication
		} else {
			pub = pub + ", " + publication
		}
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE meetings
		 SET source_urls = ?, source_count = ?, source_publication = ?
		 WHERE id = ?`,
		encodeStringList(urls), len(urls), pub, meetingID); err != nil {
		return false, fmt.Errorf("failed to merge source into meeting %d: %w", meetingID, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit merge: %w", err)
	}
	return true, nil
}

// GetByID loads one meeting with its attendees.
func (r *MeetingsRepository) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	var row meetingRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM meetings WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting %d: %w", id, err)
	}

	meeting := rowToMeeting(row)
	if err = r.loadAttendees(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

// ListRecent returns the most recently added meetings with attendees,
// newest first. A limit of zero or less means no limit.
func (r *MeetingsRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Meeting, error) {
	query := `SELECT * FROM meetings ORDER BY date_added DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []meetingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	meetings := make([]*domain.Meeting, 0, len(rows))
	for _, row := range rows {
		meeting := rowToMeeting(row)
		if err := r.loadAttendees(ctx, meeting); err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

// AddedSince returns meetings recorded at or after the cutoff, newest first.
func (r *MeetingsRepository) AddedSince(ctx context.Context, cutoff time.Time) ([]*domain.Meeting, error) {
	var rows []meetingRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM meetings WHERE date_added >= ? ORDER BY date_added DESC, id DESC`,
		cutoff.UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("failed to list meetings since %s: %w", cutoff, err)
	}

	meetings := make([]*domain.Meeting, 0, len(rows))
	for _, row := range rows {
		meeting := rowToMeeting(row)
		if err := r.loadAttendees(ctx, meeting); err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

// Count returns the total number of stored meetings.
func (r *MeetingsRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM meetings`); err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return n, nil
}

func (r *MeetingsRepository) loadAttendees(ctx context.Context, meeting *domain.Meeting) error {
	var rows []attendeeRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM attendees WHERE meeting_id = ? ORDER BY id`, meeting.ID); err != nil {
		return fmt.Errorf("failed to load attendees for meeting %d: %w", meeting.ID, err)
	}
	meeting.Attendees = make([]domain.Attendee, 0, len(rows))
	for _, row := range rows {
		meeting.Attendees = append(meeting.Attendees, domain.Attendee{
			ID:                  row.ID,
			MeetingID:           row.MeetingID,
			Name:                row.Name,
			Title:               row.Title,
			Organization:        row.Company,
			PrimaryIndustry:     row.PrimaryIndustry,
			SecondaryIndustries: decodeStringList(row.SecondaryIndustries),
			ConfidenceLevel:     row.ConfidenceLevel,
			ConfidenceReasons:   decodeStringList(row.ConfidenceReasons),
			RequiresReview:      row.RequiresReview,
		})
	}
	return nil
}

func rowToMeeting(row meetingRow) *domain.Meeting {
	added, err := time.Parse(time.RFC3339, row.DateAdded)
	if err != nil {
		added = time.Time{}
	}
	urls := decodeStringList(row.SourceURLs)
	if len(urls) == 0 && row.SourceURL != "" {
		urls = []string{row.SourceURL}
	}
	return &domain.Meeting{
		ID:                row.ID,
		Date:              row.Date,
		Location:          row.Location,
		MeetingType:       row.MeetingType,
		SourceURL:         row.SourceURL,
		SourcePublication: row.SourcePublication,
		DateAdded:         added,
		Notes:             row.Notes,
		SourceURLs:        urls,
		SourceCount:       row.SourceCount,
	}
}

func encodeStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
