// Package scheduler provides one-shot timers keyed by absolute fire time.
// Jobs fire exactly once and release their timer; there is no recurring
// schedule to tear down.
package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrPastFireTime is returned when the requested fire time is not in the
// future. Callers are expected to check before scheduling; this is the
// backstop.
var ErrPastFireTime = errors.New("fire time is not in the future")

// Job is the handle for a scheduled one-shot callback.
type Job struct {
	mu      sync.Mutex
	timer   *time.Timer
	fireAt  time.Time
	onFire  func()
	stopped bool
}

// New creates a job without arming its timer. This lets callers publish the
// handle (for example into a registry) before the callback can possibly run.
func New(fireAt time.Time, onFire func()) (*Job, error) {
	if !fireAt.After(time.Now()) {
		return nil, ErrPastFireTime
	}
	return &Job{fireAt: fireAt, onFire: onFire}, nil
}

// Start arms the timer. Starting a stopped or already-started job is a
// no-op. A fire time that lapsed between New and Start fires immediately.
func (j *Job) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stopped || j.timer != nil {
		return
	}
	j.timer = time.AfterFunc(time.Until(j.fireAt), j.run)
}

func (j *Job) run() {
	j.mu.Lock()
	if j.stopped {
		j.mu.Unlock()
		return
	}
	j.stopped = true
	j.mu.Unlock()

	log.Debug().Time("fire_at", j.fireAt).Msg("one-shot job firing")
	j.onFire()
}

// Stop cancels the job. It reports whether the callback was prevented from
// running; stopping an already-fired or already-stopped job is a no-op.
func (j *Job) Stop() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stopped {
		return false
	}
	j.stopped = true
	if j.timer == nil {
		return true
	}
	return j.timer.Stop()
}

// At creates a job and starts it immediately.
func At(fireAt time.Time, onFire func()) (*Job, error) {
	job, err := New(fireAt, onFire)
	if err != nil {
		return nil, err
	}
	job.Start()
	return job, nil
}
