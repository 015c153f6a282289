// Package report renders meeting digests as HTML email and CSV, and
// delivers the email through SendGrid.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
)

// priorityIndustries are the industries the report's audience cares about.
// Meetings touching one of these are promoted above the fold.
var priorityIndustries = map[string]struct{}{
	"3PL":                     {},
	"Asian 3PL":               {},
	"Agriculture":             {},
	"Automotive":              {},
	"Building Materials":      {},
	"Data Center":             {},
	"E-Commerce":              {},
	"Asian E-Commerce":        {},
	"Food & Beverage":         {},
	"Fulfillment & Packaging": {},
	"Life Sciences":           {},
	"Manufacturing":           {},
	"Powered Land":            {},
	"Retail":                  {},
	"Wholesaler":              {},
	"Cold Storage":            {},
}

type emailData struct {
	Figure      string
	GeneratedAt string
	DaysBack    int
	Total       int
	High        []meetingView
	Medium      []meetingView
	Low         []meetingView
}

// meetingView pairs a meeting with the CSS class of its priority band.
type meetingView struct {
	Class string
	*domain.Meeting
}

// MultiSource reports whether more than one source backs the meeting.
func (v meetingView) MultiSource() bool { return len(v.SourceURLs) > 1 }

// SourceLabel is the link text for a single-source meeting.
func (v meetingView) SourceLabel() string {
	if v.SourcePublication != "" {
		return v.SourcePublication
	}
	return "View Article"
}

// Generator renders the digest for a tracked figure.
type Generator struct {
	figure string
	now    func() time.Time
}

// NewGenerator creates a report generator. figure appears in headings, e.g.
// "Trump".
func NewGenerator(figure string) *Generator {
	return &Generator{figure: figure, now: time.Now}
}

// EmailHTML renders the meetings as an HTML email body. An empty slice
// renders a short "nothing new" page.
func (g *Generator) EmailHTML(meetings []*domain.Meeting, daysBack int) (string, error) {
	if len(meetings) == 0 {
		var buf bytes.Buffer
		if err := emptyTemplate.Execute(&buf, emailData{Figure: g.figure}); err != nil {
			return "", fmt.Errorf("render empty report: %w", err)
		}
		return buf.String(), nil
	}

	data := emailData{
		Figure:      g.figure,
		GeneratedAt: g.now().Format("January 2, 2006 at 3:04 PM"),
		DaysBack:    daysBack,
		Total:       len(meetings),
	}
	for _, meeting := range meetings {
		switch meetingPriority(meeting) {
		case domain.ConfidenceHigh:
			data.High = append(data.High, meetingView{Class: "high-priority", Meeting: meeting})
		case domain.ConfidenceMedium:
			data.Medium = append(data.Medium, meetingView{Class: "medium-priority", Meeting: meeting})
		default:
			data.Low = append(data.Low, meetingView{Class: "low-priority", Meeting: meeting})
		}
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// meetingPriority is the strongest (industry, confidence) pairing across
// attendees: a priority industry at high confidence makes the meeting high
// priority, at medium confidence medium, anything else low.
func meetingPriority(meeting *domain.Meeting) string {
	priority := domain.ConfidenceLow
	for _, attendee := range meeting.Attendees {
		if _, hot := priorityIndustries[attendee.PrimaryIndustry]; !hot {
			continue
		}
		switch attendee.ConfidenceLevel {
		case domain.ConfidenceHigh:
			return domain.ConfidenceHigh
		case domain.ConfidenceMedium:
			priority = domain.ConfidenceMedium
		}
	}
	return priority
}

var emptyTemplate = template.Must(template.New("empty").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
	<h2>{{.Figure}} Meetings Update</h2>
	<p>No new meetings found this period.</p>
</body>
</html>
`))

var emailTemplate = template.Must(template.New("email").Parse(`<html>
<head>
<style>
	body { font-family: "Georgia", "Times New Roman", serif; line-height: 1.6; color: #1f2a33; max-width: 820px; margin: 0 auto; padding: 24px; background: #ffffff; }
	h1 { color: #0f1f2e; font-size: 26px; letter-spacing: 0.3px; border-bottom: 2px solid #d5dde6; padding-bottom: 12px; margin-bottom: 18px; }
	h2 { color: #0f1f2e; font-size: 18px; margin-top: 28px; border-bottom: 1px solid #e6ebf0; padding-bottom: 6px; }
	.summary { background-color: #f6f8fa; padding: 16px 18px; border: 1px solid #e1e6eb; margin: 18px 0; }
	.high-priority { border-left: 4px solid #9b1c1c; padding: 14px 16px; margin: 14px 0; background: #fbf6f6; }
	.medium-priority { border-left: 4px solid #b45309; padding: 14px 16px; margin: 14px 0; background: #fff8ed; }
	.low-priority { border-left: 4px solid #6b7280; padding: 14px 16px; margin: 14px 0; background: #f8f9fb; }
	.meeting-date { font-weight: bold; color: #111827; margin-bottom: 8px; }
	.attendee { margin: 10px 0; padding: 10px 12px; background-color: #ffffff; border: 1px solid #e5e7eb; }
	.company { color: #1d4ed8; font-weight: bold; }
	.industry { color: #065f46; font-weight: 600; }
	.confidence { font-size: 0.9em; font-style: italic; color: #4b5563; }
	.source { font-size: 0.85em; margin-top: 10px; padding-top: 10px; border-top: 1px solid #e5e7eb; color: #374151; }
	.source a { color: #1d4ed8; text-decoration: none; }
</style>
</head>
<body>
	<h1>{{.Figure}} Meetings Report</h1>
	<div class="summary">
		<strong>Report Generated:</strong> {{.GeneratedAt}}<br>
		<strong>Period:</strong> Last {{.DaysBack}} days<br>
		<strong>New Meetings:</strong> {{.Total}}<br>
		<strong>High Priority:</strong> {{len .High}} |
		<strong>Medium Priority:</strong> {{len .Medium}} |
		<strong>Other:</strong> {{len .Low}}
	</div>
{{if .High}}	<h2>High Priority - Your Industries</h2>
{{range .High}}{{template "meeting" .}}{{end}}{{end}}
{{if .Medium}}	<h2>Medium Priority</h2>
{{range .Medium}}{{template "meeting" .}}{{end}}{{end}}
{{if .Low}}	<h2>Other Meetings</h2>
{{range .Low}}{{template "meeting" .}}{{end}}{{end}}
	<div style="margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb; font-size: 0.9em; color: #4b5563;">
		<p><strong>About This Report</strong></p>
		<ul>
			<li>Automated tracking of {{.Figure}}'s meetings with business leaders</li>
			<li>Sources: news search and RSS feeds from major outlets</li>
			<li>Industries classified from company information</li>
			<li>Confidence levels indicate certainty of the company and industry match</li>
			<li>Review low-confidence meetings manually</li>
		</ul>
	</div>
</body>
</html>

{{define "meeting"}}	<div class="{{.Class}}">
		<div class="meeting-date">{{.Date}} - {{if .Location}}{{.Location}}{{else}}Location TBD{{end}}</div>
{{range .Attendees}}		<div class="attendee">
			<strong>{{.Name}}</strong> - {{if .Title}}{{.Title}}{{else}}Executive{{end}}<br>
			<span class="company">{{if .Organization}}{{.Organization}}{{else}}Unknown Company{{end}}</span><br>
			<span class="industry">Industry: {{if .PrimaryIndustry}}{{.PrimaryIndustry}}{{else}}Unknown{{end}}</span><br>
			<span class="confidence {{.ConfidenceLevel}}">Confidence: {{.ConfidenceLevel}}</span>
		</div>
{{end}}{{if .Notes}}		<div style="margin-top:10px; font-size:0.9em; color:#666;"><strong>Context:</strong> {{.Notes}}</div>
{{end}}{{if .MultiSource}}		<div class="source"><strong>Reported by {{len .SourceURLs}} sources:</strong><br>
{{range .SourceURLs}}			<a href="{{.}}">{{.}}</a><br>
{{end}}		</div>
{{else if .SourceURL}}		<div class="source">Source: <a href="{{.SourceURL}}">{{.SourceLabel}}</a></div>
{{end}}	</div>
{{end}}`))
