package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/config"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/handlers"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/mailer"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/middleware"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/registry"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/services"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/workflow"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment")
	}

	cfg := config.Load()

	m, err := mailer.New(cfg.Mail)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize mailer")
	}

	store, err := newStore(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to initialize reminder store")
	}
	reg := registry.New(store)

	// Reminder event feed for the back-office SPA.
	hub := services.NewHub()
	go hub.Run()

	wf := workflow.New(m, reg, cfg.LeadHours, workflow.WithEvents(hub))

	// Durable backends re-schedule reminders that survived a restart.
	if restored, err := wf.RestoreReminders(context.Background()); err != nil {
		log.Error().Err(err).Msg("reminder recovery failed")
	} else if restored > 0 {
		log.Info().Int("count", restored).Msg("reminders recovered")
	}

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{"*"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")

	api.GET("/health", handlers.Health())

	// Token verification is delegated to the hosted identity provider; the
	// middleware only checks its signature when a secret is configured.
	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}

	api.POST("/notify-driver", handlers.NotifyDriver(m))
	api.POST("/confirm-booking", handlers.ConfirmBooking(wf))
	api.DELETE("/cancel-reminder/:bookingId", handlers.CancelReminder(wf))
	api.GET("/scheduled-reminders", handlers.ListReminders(wf))
	api.POST("/test-email", handlers.TestEmail(wf))
	api.GET("/ws", handlers.WebSocketHandler(hub))

	log.Info().
		Str("port", cfg.Port).
		Int("lead_hours", cfg.LeadHours).
		Str("mail_transport", cfg.Mail.Transport).
		Str("reminder_store", cfg.Store.Backend).
		Msg("notification service starting")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func newStore(cfg config.Store) (registry.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return registry.NewMemoryStore(), nil
	case "postgres":
		return registry.NewPostgresStore(cfg)
	case "redis":
		return registry.NewRedisStore(cfg)
	default:
		log.Warn().Str("backend", cfg.Backend).Msg("unknown reminder store backend, falling back to memory")
		return registry.NewMemoryStore(), nil
	}
}
