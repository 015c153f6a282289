package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

const sendTimeout = 15 * time.Second

// ErrMailUnavailable indicates the mail service is unreachable.
var ErrMailUnavailable = errors.New("mail service unavailable")

// Attachment is a file attached to an outgoing report email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer delivers report emails through the SendGrid v3 API.
type Mailer struct {
	baseURL    string
	apiKey     string
	sender     string
	httpClient *http.Client
	log        logger.Logger
}

// NewMailer creates a mailer. An empty baseURL selects the public API;
// tests point it at a local server.
func NewMailer(baseURL, apiKey, sender string, log logger.Logger) *Mailer {
	if baseURL == "" {
		baseURL = "https://api.sendgrid.com"
	}
	return &Mailer{
		baseURL: baseURL,
		apiKey:  apiKey,
		sender:  sender,
		httpClient: &http.Client{
			Timeout: sendTimeout,
		},
		log: log,
	}
}

type sendgridAddress struct {
	Email string `json:"email"`
}

type sendgridAttachment struct {
	Content     string `json:"content"`
	Type        string `json:"type,omitempty"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridMail struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
	Attachments      []sendgridAttachment      `json:"attachments,omitempty"`
}

// Send delivers the HTML body to the recipients, with optional attachments.
func (m *Mailer) Send(ctx context.Context, recipients []string, subject, htmlBody string, attachments ...Attachment) error {
	if len(recipients) == 0 {
		return errors.New("no recipients")
	}

	to := make([]sendgridAddress, 0, len(recipients))
	for _, recipient := range recipients {
		to = append(to, sendgridAddress{Email: recipient})
	}

	mail := sendgridMail{
		Personalizations: []sendgridPersonalization{{To: to}},
		From:             sendgridAddress{Email: m.sender},
		Subject:          subject,
		Content:          []sendgridContent{{Type: "text/html", Value: htmlBody}},
	}

	for _, att := range attachments {
		mail.Attachments = append(mail.Attachments, sendgridAttachment{
			Content:     base64.StdEncoding.EncodeToString(att.Data),
			Type:        att.ContentType,
			Filename:    att.Filename,
			Disposition: "attachment",
		})
	}

	body, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail send returned %d", resp.StatusCode)
	}

	m.log.Info("report email sent",
		logger.Int("recipients", len(recipients)),
		logger.String("subject", subject))
	return nil
}
