package registry

import (
	"context"
	"sync"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
)

// Store mirrors reminder metadata outside the process so reminders can be
// restored after a restart. The in-memory backend makes the mirror a no-op,
// which keeps the documented "registry dies with the process" behavior.
type Store interface {
	Save(ctx context.Context, info models.ReminderInfo) error
	Delete(ctx context.Context, bookingID string) error
	Load(ctx context.Context) ([]models.ReminderInfo, error)
}

// MemoryStore is the default, non-durable backend.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]models.ReminderInfo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.ReminderInfo)}
}

func (s *MemoryStore) Save(ctx context.Context, info models.ReminderInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[info.BookingID] = info
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, bookingID)
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) ([]models.ReminderInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ReminderInfo, 0, len(s.records))
	for _, info := range s.records {
		out = append(out, info)
	}
	return out, nil
}
