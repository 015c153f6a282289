package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/report"
)

func TestWriteCSV(t *testing.T) {
	t.Helper()

	meetings := []*domain.Meeting{
		{
			Date:              "January 15, 2025",
			Location:          "Mar-a-Lago",
			MeetingType:       domain.MeetingTypeBusiness,
			SourcePublication: "Reuters, AP",
			SourceURLs:        []string{"https://example.com/a", "https://ap.example/b"},
			SourceCount:       2,
			Notes:             "Dinner with executives",
			Attendees: []domain.Attendee{
				{Name: "Andy Jassy", Title: "CEO", Organization: "Amazon",
					PrimaryIndustry: "E-Commerce", ConfidenceLevel: domain.ConfidenceHigh},
				{Name: "Doug McMillon", Title: "CEO", Organization: "Walmart",
					PrimaryIndustry: "Retail", ConfidenceLevel: domain.ConfidenceHigh},
			},
		},
		{
			Date: "January 16, 2025",
			// No attendees: the meeting still gets a row.
		},
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, meetings); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	// Header, two attendee rows, one attendee-less row.
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][3] != "Attendee Name" {
		t.Errorf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "January 15, 2025" || first[3] != "Andy Jassy" || first[5] != "Amazon" {
		t.Errorf("row = %v", first)
	}
	if first[8] != "2" || first[9] != "Reuters, AP" {
		t.Errorf("source columns = %v", first[8:10])
	}
	if first[10] != "https://example.com/a\nhttps://ap.example/b" {
		t.Errorf("urls column = %q", first[10])
	}

	second := rows[2]
	if second[3] != "Doug McMillon" || second[0] != "January 15, 2025" {
		t.Errorf("row = %v", second)
	}

	empty := rows[3]
	if empty[0] != "January 16, 2025" || empty[3] != "" {
		t.Errorf("attendee-less row = %v", empty)
	}
}
