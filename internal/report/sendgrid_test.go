package report_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/report"
)

func TestMailer_Send(t *testing.T) {
	t.Helper()

	var gotAuth, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := report.NewMailer(srv.URL, "sg-key", "alerts@trumptracker.com", logger.NewNop())
	err := m.Send(context.Background(),
		[]string{"one@example.com", "two@example.com"},
		"Trump Meetings Update",
		"<html><body>report</body></html>",
		report.Attachment{
			Filename:    "meetings.csv",
			ContentType: "text/csv",
			Data:        []byte("Date,Location\n"),
		})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotAuth != "Bearer sg-key" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotPath != "/v3/mail/send" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["subject"] != "Trump Meetings Update" {
		t.Errorf("subject = %v", gotBody["subject"])
	}

	from, _ := gotBody["from"].(map[string]any)
	if from["email"] != "alerts@trumptracker.com" {
		t.Errorf("from = %v", from)
	}

	personalizations, _ := gotBody["personalizations"].([]any)
	if len(personalizations) != 1 {
		t.Fatalf("personalizations = %v", personalizations)
	}
	to, _ := personalizations[0].(map[string]any)["to"].([]any)
	if len(to) != 2 {
		t.Errorf("recipients = %v", to)
	}

	attachments, _ := gotBody["attachments"].([]any)
	if len(attachments) != 1 {
		t.Fatalf("attachments = %v", attachments)
	}
	att, _ := attachments[0].(map[string]any)
	if att["filename"] != "meetings.csv" || att["disposition"] != "attachment" {
		t.Errorf("attachment = %v", att)
	}
	decoded, _ := base64.StdEncoding.DecodeString(att["content"].(string))
	if string(decoded) != "Date,Location\n" {
		t.Errorf("attachment content = %q", decoded)
	}
}

func TestMailer_Send_NoRecipients(t *testing.T) {
	t.Helper()

	m := report.NewMailer("http://127.0.0.1:0", "key", "from@example.com", logger.NewNop())
	if err := m.Send(context.Background(), nil, "subject", "body"); err == nil {
		t.Error("expected error with no recipients")
	}
}

func TestMailer_Send_RejectedStatus(t *testing.T) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	m := report.NewMailer(srv.URL, "key", "from@example.com", logger.NewNop())
	err := m.Send(context.Background(), []string{"one@example.com"}, "subject", "body")
	if err == nil {
		t.Error("expected error on 400 response")
	}
}

func TestMailer_Send_Unavailable(t *testing.T) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	m := report.NewMailer(srv.URL, "key", "from@example.com", logger.NewNop())
	err := m.Send(context.Background(), []string{"one@example.com"}, "subject", "body")
	if !errors.Is(err, report.ErrMailUnavailable) {
		t.Errorf("err = %v, want ErrMailUnavailable", err)
	}
}
