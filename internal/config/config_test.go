package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REMINDER_LEAD_HOURS", "")
	t.Setenv("MAIL_TRANSPORT", "")
	t.Setenv("REMINDER_STORE", "")
	t.Setenv("SMTP_PORT", "")

	cfg := Load()
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 1, cfg.LeadHours)
	assert.Equal(t, "smtp", cfg.Mail.Transport)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "587", cfg.Mail.SMTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REMINDER_LEAD_HOURS", "3")
	t.Setenv("MAIL_TRANSPORT", "ses")
	t.Setenv("REMINDER_STORE", "redis")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.LeadHours)
	assert.Equal(t, "ses", cfg.Mail.Transport)
	assert.Equal(t, "redis", cfg.Store.Backend)
}

func TestLeadHoursRejectsInvalidValues(t *testing.T) {
	t.Setenv("REMINDER_LEAD_HOURS", "-2")
	assert.Equal(t, 1, Load().LeadHours)

	t.Setenv("REMINDER_LEAD_HOURS", "not-a-number")
	assert.Equal(t, 1, Load().LeadHours)
}
