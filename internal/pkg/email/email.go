package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/shiftpoint/attendance-backend-go/internal/config"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/notification"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// templateFor maps a notification kind to its template and subject.
var templateFor = map[notification.Kind]struct {
	file    string
	subject string
}{
	notification.KindLeaveRequestNotify:   {"leave_request.html", "New Leave Request"},
	notification.KindLeaveRequestConfirm:  {"leave_decision.html", "Leave Request Update"},
	notification.KindCampaignAssignment:   {"assignment.html", "Campaign Assignment"},
	notification.KindTeamAssignment:       {"assignment.html", "Team Assignment"},
	notification.KindTeamLeaderPromotion:  {"assignment.html", "Team Leader Promotion"},
	notification.KindLateArrival:          {"late_arrival.html", "Late Arrival Notice"},
	notification.KindLateArrivalEscalated: {"late_arrival_escalated.html", "Late Arrival Escalation"},
}

// Sender delivers notifications over SMTP. It implements
// notification.Sender: failures are logged and surfaced only as a false
// return, never as an error or panic.
type Sender struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewSender(cfg config.SMTPConfig) (*Sender, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &Sender{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

func (s *Sender) Send(ctx context.Context, kind notification.Kind, payload notification.Payload) bool {
	t, ok := templateFor[kind]
	if !ok {
		slog.Error("Unknown notification kind", "kind", kind)
		return false
	}

	if len(payload.To) == 0 {
		slog.Warn("Notification has no recipients, skipping", "kind", kind)
		return false
	}

	subject := payload.Subject
	if subject == "" {
		subject = t.subject
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, t.file, payload.Data); err != nil {
		slog.Error("Failed to render notification template", "kind", kind, "error", err)
		return false
	}

	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping notification send",
			"kind", kind, "to", payload.To, "subject", subject)
		return true
	}

	if err := s.sendHTML(ctx, payload.To, subject, body.String()); err != nil {
		slog.Error("Failed to deliver notification", "kind", kind, "to", payload.To, "error", err)
		return false
	}

	return true
}

func (s *Sender) sendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to[0])
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := smtp.SendMail(addr, auth, from, to, message)
		if err == nil {
			slog.Info("Notification sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
