package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/config"
)

const senderName = "Priority Transfers"

// SMTPMailer sends HTML email through a plain-auth SMTP relay.
type SMTPMailer struct {
	from     string
	password string
	host     string
	port     string
}

func NewSMTPMailer(cfg config.Mail) *SMTPMailer {
	return &SMTPMailer{
		from:     cfg.From,
		password: cfg.Password,
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.from == "" || m.password == "" || m.host == "" || m.port == "" {
		return fmt.Errorf("email configuration not set")
	}

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", senderName, m.from)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "PriorityTransfers-Mailer"

	var b strings.Builder
	for key, value := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", key, value)
	}
	b.WriteString("\r\n" + htmlBody)

	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(b.String())); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send email")
		return err
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
