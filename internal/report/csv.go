package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
)

// csvHeader is the flat export schema: one row per attendee, meeting fields
// repeated.
var csvHeader = []string{
	"Date", "Location", "Meeting Type", "Attendee Name",
	"Title", "Company", "Primary Industry", "Confidence Level",
	"Source Count", "Source Publication", "Source URLs", "Notes",
}

// WriteCSV writes the meetings as CSV. Attendee-less meetings still emit
// one row so no meeting silently disappears from the export.
func WriteCSV(w io.Writer, meetings []*domain.Meeting) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, meeting := range meetings {
		urls := strings.Join(meeting.SourceURLs, "\n")
		count := meeting.SourceCount
		if count == 0 {
			count = len(meeting.SourceURLs)
		}

		attendees := meeting.Attendees
		if len(attendees) == 0 {
			attendees = []domain.Attendee{{}}
		}
		for _, attendee := range attendees {
			row := []string{
				meeting.Date,
				meeting.Location,
				meeting.MeetingType,
				attendee.Name,
				attendee.Title,
				attendee.Organization,
				attendee.PrimaryIndustry,
				attendee.ConfidenceLevel,
				strconv.Itoa(count),
				meeting.SourcePublication,
				urls,
				meeting.Notes,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
