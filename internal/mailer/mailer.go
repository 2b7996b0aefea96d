package mailer

import (
	"context"
	"fmt"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/config"
)

// Mailer sends a single email per call. One attempt, no retries; failures are
// returned to the caller to decide what to do.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New builds the mailer selected by cfg.Transport.
func New(cfg config.Mail) (Mailer, error) {
	switch cfg.Transport {
	case "", "smtp":
		return NewSMTPMailer(cfg), nil
	case "ses":
		return NewSESMailer(cfg)
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}
