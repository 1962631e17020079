package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"

	"finance-ledger/internal/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Alert is the payload handed to a notification sink: the account identity
// plus the matched rule's parameters. Delivery is out-of-band and
// fire-and-forget; the transaction pipeline never waits on it.
type Alert struct {
	EventID        uuid.UUID
	AccountID      uuid.UUID
	Kind           string
	Threshold      decimal.Decimal
	RecipientEmail string
	RecipientName  string
}

// Sink delivers an alert to the user. Implementations must be safe for
// concurrent use; errors are reported to the dispatcher and never retried.
type Sink interface {
	Send(ctx context.Context, alert Alert) error
}

// EmailSink delivers alerts over SMTP.
type EmailSink struct {
	addr string
	from string
}

// NewEmailSink creates an SMTP-backed notification sink
func NewEmailSink(cfg config.NotifierConfig) *EmailSink {
	return &EmailSink{
		addr: net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.FromAddress,
	}
}

// Send delivers a single alert email
func (s *EmailSink) Send(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, alert.RecipientEmail, subjectFor(alert.Kind), bodyFor(alert))

	if err := smtp.SendMail(s.addr, nil, s.from, []string{alert.RecipientEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

func subjectFor(kind string) string {
	if kind == "target_amount" {
		return "Savings Target Alert"
	}
	return "Balance Drop Alert"
}

func bodyFor(alert Alert) string {
	if alert.Kind == "target_amount" {
		return fmt.Sprintf("Hi %s,\r\n\r\nYour balance has reached %s of your savings target.",
			alert.RecipientName, alert.Threshold.StringFixed(2))
	}
	return fmt.Sprintf("Hi %s,\r\n\r\nYour balance dropped by more than %s in a single transaction.",
		alert.RecipientName, alert.Threshold.StringFixed(2))
}

// LogSink writes alerts to the structured log. Used in development and
// testing environments where no SMTP relay is available.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a log-backed notification sink
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Send logs the alert instead of delivering it
func (s *LogSink) Send(ctx context.Context, alert Alert) error {
	s.logger.Info("alert notification",
		"event_id", alert.EventID,
		"account_id", alert.AccountID,
		"kind", alert.Kind,
		"threshold", alert.Threshold.StringFixed(2),
		"recipient", alert.RecipientEmail,
	)
	return nil
}
