package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/config"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
)

func TestNewSelectsTransport(t *testing.T) {
	m, err := New(config.Mail{Transport: "smtp"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = New(config.Mail{})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	_, err = New(config.Mail{Transport: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestSESRequiresConfiguration(t *testing.T) {
	_, err := NewSESMailer(config.Mail{Transport: "ses"})
	assert.Error(t, err)
}

func TestSMTPSendRequiresConfiguration(t *testing.T) {
	m := NewSMTPMailer(config.Mail{})
	err := m.Send(context.Background(), "driver@example.com", "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email configuration not set")
}

func TestConfirmationEmailBody(t *testing.T) {
	pickup := time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)
	subject, body := ConfirmationEmail(models.ConfirmationRequest{
		BookingID:      "B42",
		DriverEmail:    "driver@example.com",
		DriverName:     "Alex",
		Customer:       "Jordan",
		Pickup:         "Airport T2",
		Destination:    "Harbour Hotel",
		PickupDateTime: pickup,
		BookingType:    "transfer",
	})

	assert.Contains(t, subject, "B42")
	assert.Contains(t, body, "Alex")
	assert.Contains(t, body, "Jordan")
	assert.Contains(t, body, "Airport T2")
	assert.Contains(t, body, "Harbour Hotel")
	assert.Contains(t, body, pickup.Format(timeLayout))
	assert.Contains(t, body, "Priority Transfers")
}

func TestReminderEmailBody(t *testing.T) {
	pickup := time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)
	subject, body := ReminderEmail(models.ReminderInfo{
		BookingID:   "B42",
		DriverName:  "Alex",
		Customer:    "Jordan",
		Pickup:      "Airport T2",
		Destination: "Harbour Hotel",
		BookingType: "transfer",
	}, pickup)

	assert.Contains(t, subject, "Reminder")
	assert.Contains(t, body, "Upcoming Pickup")
	assert.Contains(t, body, pickup.Format(timeLayout))
}
