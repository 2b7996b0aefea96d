// Package workflow orchestrates the booking confirmation flow: validate the
// request, send the confirmation email, and schedule a one-shot pickup
// reminder when the computed fire time is still in the future.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/mailer"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/registry"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/scheduler"
)

const defaultBookingType = "transfer"

// EventPublisher receives reminder lifecycle events. A nil publisher disables
// the feed.
type EventPublisher interface {
	Publish(event models.ReminderEvent)
}

// Workflow wires the mailer, registry and scheduler together. One instance
// serves the whole process.
type Workflow struct {
	mailer   mailer.Mailer
	registry *registry.Registry
	lead     time.Duration
	events   EventPublisher
	now      func() time.Time
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithEvents attaches a reminder-event publisher.
func WithEvents(p EventPublisher) Option {
	return func(w *Workflow) { w.events = p }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// New builds a Workflow. leadHours is the number of hours before pickup at
// which reminders fire.
func New(m mailer.Mailer, reg *registry.Registry, leadHours int, opts ...Option) *Workflow {
	w := &Workflow{
		mailer:   m,
		registry: reg,
		lead:     time.Duration(leadHours) * time.Hour,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Confirm validates the request, sends the confirmation email to the driver
// and, if the reminder time is still in the future, registers a one-shot
// reminder. A confirmation send failure short-circuits reminder scheduling.
//
// Calling Confirm again for a booking that already has an active reminder
// cancels and replaces the old one.
func (w *Workflow) Confirm(ctx context.Context, req models.ConfirmationRequest) (models.ConfirmationResult, error) {
	var result models.ConfirmationResult

	if missing := req.MissingFields(); len(missing) > 0 {
		return result, &models.ValidationError{Fields: missing}
	}
	if req.BookingType == "" {
		req.BookingType = defaultBookingType
	}

	subject, body := mailer.ConfirmationEmail(req)
	if err := w.mailer.Send(ctx, req.DriverEmail, subject, body); err != nil {
		return result, fmt.Errorf("confirmation email failed: %w", err)
	}
	result.ConfirmationSent = true

	fireAt := req.PickupDateTime.Add(-w.lead)
	if !fireAt.After(w.now()) {
		log.Info().
			Str("booking_id", req.BookingID).
			Time("pickup_at", req.PickupDateTime).
			Msg("reminder time already passed; skipping reminder")
		return result, nil
	}

	info := models.ReminderInfo{
		BookingID:    req.BookingID,
		ReminderTime: fireAt,
		DriverEmail:  req.DriverEmail,
		DriverName:   req.DriverName,
		Customer:     req.Customer,
		Pickup:       req.Pickup,
		Destination:  req.Destination,
		BookingType:  req.BookingType,
	}
	if err := w.schedule(ctx, info); err != nil {
		// The confirmation already went out; report the scheduling miss
		// without failing the call.
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to schedule reminder")
		return result, nil
	}

	result.ReminderScheduled = true
	result.ReminderTime = &fireAt
	return result, nil
}

// schedule registers a one-shot reminder job for the given metadata. The
// entry is registered before the timer is armed, so a job that fires right
// away still finds its own entry to deregister.
func (w *Workflow) schedule(ctx context.Context, info models.ReminderInfo) error {
	bookingID := info.BookingID
	job, err := scheduler.New(info.ReminderTime, func() {
		w.fire(info)
	})
	if err != nil {
		return err
	}

	if err := w.registry.Register(ctx, &registry.Entry{Info: info, Job: job}); err != nil {
		// Keep the live timer; only the durable mirror failed.
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to mirror reminder to store")
	}
	job.Start()

	w.publish(models.ReminderEvent{
		Type:         models.EventReminderScheduled,
		BookingID:    bookingID,
		ReminderTime: &info.ReminderTime,
	})
	log.Info().
		Str("booking_id", bookingID).
		Time("fire_at", info.ReminderTime).
		Str("driver_email", info.DriverEmail).
		Msg("reminder scheduled")
	return nil
}

// fire runs at the reminder time. The job deregisters itself whether or not
// the send succeeds; a failed reminder is logged, never retried.
func (w *Workflow) fire(info models.ReminderInfo) {
	ctx := context.Background()
	defer w.registry.Remove(ctx, info.BookingID)

	pickupAt := info.ReminderTime.Add(w.lead)
	subject, body := mailer.ReminderEmail(info, pickupAt)
	if err := w.mailer.Send(ctx, info.DriverEmail, subject, body); err != nil {
		log.Error().Err(err).Str("booking_id", info.BookingID).Msg("reminder email failed")
		w.publish(models.ReminderEvent{
			Type:      models.EventReminderSendFailed,
			BookingID: info.BookingID,
			Error:     err.Error(),
		})
		return
	}

	log.Info().Str("booking_id", info.BookingID).Msg("reminder sent")
	w.publish(models.ReminderEvent{
		Type:      models.EventReminderFired,
		BookingID: info.BookingID,
	})
}

// Cancel removes the booking's active reminder. Returns ErrReminderNotFound
// when there is none.
func (w *Workflow) Cancel(ctx context.Context, bookingID string) error {
	if !w.registry.Remove(ctx, bookingID) {
		return models.ErrReminderNotFound
	}

	w.publish(models.ReminderEvent{
		Type:      models.EventReminderCancelled,
		BookingID: bookingID,
	})
	log.Info().Str("booking_id", bookingID).Msg("reminder cancelled")
	return nil
}

// List returns a snapshot of all active reminders.
func (w *Workflow) List() []models.ReminderInfo {
	return w.registry.List()
}

// SendTest sends a delivery-check email, independent of any booking.
func (w *Workflow) SendTest(ctx context.Context, to string) error {
	subject, body := mailer.TestEmail()
	return w.mailer.Send(ctx, to, subject, body)
}

// RestoreReminders reloads reminder metadata from the durable store and
// re-schedules entries whose fire time is still in the future. Past-due
// entries are dropped from the store. Returns the number restored.
func (w *Workflow) RestoreReminders(ctx context.Context) (int, error) {
	records, err := w.registry.Store().Load(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, info := range records {
		if !info.ReminderTime.After(w.now()) {
			if err := w.registry.Store().Delete(ctx, info.BookingID); err != nil {
				log.Error().Err(err).Str("booking_id", info.BookingID).Msg("failed to drop stale reminder")
			}
			continue
		}
		if err := w.schedule(ctx, info); err != nil {
			log.Error().Err(err).Str("booking_id", info.BookingID).Msg("failed to restore reminder")
			continue
		}
		restored++
	}

	if restored > 0 {
		log.Info().Int("restored", restored).Msg("reminders restored from store")
	}
	return restored, nil
}

func (w *Workflow) publish(event models.ReminderEvent) {
	if w.events == nil {
		return
	}
	w.events.Publish(event)
}
