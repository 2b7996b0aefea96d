package config

import (
	"os"
	"strconv"
)

// Mail holds the outbound email settings. Transport selects between the SMTP
// and SES senders.
type Mail struct {
	Transport string // "smtp" or "ses"
	From      string
	Password  string
	SMTPHost  string
	SMTPPort  string
	AWSRegion string
}

// Store holds the reminder store settings. Backend selects between "memory",
// "postgres" and "redis".
type Store struct {
	Backend  string
	RedisURL string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
}

type Config struct {
	Port      string
	LeadHours int
	JWTSecret string
	Mail      Mail
	Store     Store
}

// Load reads configuration from the environment, applying defaults. A .env
// file, if present, is expected to have been loaded by the caller.
func Load() Config {
	return Config{
		Port:      getenv("PORT", "3001"),
		LeadHours: getint("REMINDER_LEAD_HOURS", 1),
		JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		Mail: Mail{
			Transport: getenv("MAIL_TRANSPORT", "smtp"),
			From:      os.Getenv("EMAIL_FROM"),
			Password:  os.Getenv("EMAIL_PASSWORD"),
			SMTPHost:  os.Getenv("SMTP_HOST"),
			SMTPPort:  getenv("SMTP_PORT", "587"),
			AWSRegion: os.Getenv("AWS_REGION"),
		},
		Store: Store{
			Backend:    getenv("REMINDER_STORE", "memory"),
			RedisURL:   getenv("REDIS_URL", "redis://redis:6379"),
			DBHost:     os.Getenv("DB_HOST"),
			DBUser:     os.Getenv("DB_USER"),
			DBPassword: os.Getenv("DB_PASSWORD"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     getenv("DB_PORT", "5432"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
