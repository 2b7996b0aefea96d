package mailer

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/rs/zerolog/log"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/config"
)

// SESMailer sends HTML email through AWS SES.
type SESMailer struct {
	svc  *ses.SES
	from string
}

func NewSESMailer(cfg config.Mail) (*SESMailer, error) {
	if cfg.AWSRegion == "" || cfg.From == "" {
		return nil, fmt.Errorf("SES mail configuration not set")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %v", err)
	}

	return &SESMailer{svc: ses.New(sess), from: cfg.From}, nil
}

func (m *SESMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(fmt.Sprintf("%s <%s>", senderName, m.from)),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(to)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(htmlBody),
				},
			},
		},
	}

	if _, err := m.svc.SendEmailWithContext(ctx, input); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send email via SES")
		return err
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent via SES")
	return nil
}
