// Package registry tracks active reminder jobs per booking. The map of live
// timer handles is process state; a Store mirrors the metadata so durable
// backends can restore reminders after a restart.
package registry

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/scheduler"
)

// Entry pairs a reminder's metadata with its live timer handle.
type Entry struct {
	Info models.ReminderInfo
	Job  *scheduler.Job
}

// Registry is the in-memory table of active reminders. All methods are safe
// for concurrent use; timer callbacks interleave with request handlers.
type Registry struct {
	mu    sync.RWMutex
	jobs  map[string]*Entry
	store Store
}

func New(store Store) *Registry {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Registry{
		jobs:  make(map[string]*Entry),
		store: store,
	}
}

// Register stores the entry under its booking id. An existing entry for the
// same booking is cancelled and replaced, so the prior timer never leaks.
// The store mirror is written under the lock, keeping it in step with the map
// when Registers race on one booking.
func (r *Registry) Register(ctx context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prior, ok := r.jobs[entry.Info.BookingID]; ok {
		prior.Job.Stop()
		log.Warn().Str("booking_id", entry.Info.BookingID).Msg("replacing existing reminder")
	}
	r.jobs[entry.Info.BookingID] = entry

	return r.store.Save(ctx, entry.Info)
}

// Get returns the entry for the booking id, if any.
func (r *Registry) Get(bookingID string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.jobs[bookingID]
	return entry, ok
}

// Remove deletes the booking's entry and stops its timer. It reports whether
// an entry was present; removing an absent id is a no-op.
func (r *Registry) Remove(ctx context.Context, bookingID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.jobs[bookingID]
	if !ok {
		return false
	}
	delete(r.jobs, bookingID)
	entry.Job.Stop()

	if err := r.store.Delete(ctx, bookingID); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to delete reminder from store")
	}
	return true
}

// List returns a snapshot of all active reminders.
func (r *Registry) List() []models.ReminderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ReminderInfo, 0, len(r.jobs))
	for _, entry := range r.jobs {
		out = append(out, entry.Info)
	}
	return out
}

// Len reports the number of active reminders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// Store returns the durable mirror backing this registry.
func (r *Registry) Store() Store {
	return r.store
}
