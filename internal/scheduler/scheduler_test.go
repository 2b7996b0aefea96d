package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtRejectsPastFireTime(t *testing.T) {
	job, err := At(time.Now().Add(-time.Second), func() {})
	assert.ErrorIs(t, err, ErrPastFireTime)
	assert.Nil(t, job)
}

func TestAtFiresExactlyOnce(t *testing.T) {
	var fired int32
	job, err := At(time.Now().Add(30*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})
	require.NoError(t, err)
	require.NotNil(t, job)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// Already fired; Stop is a no-op.
	assert.False(t, job.Stop())
}

func TestStopPreventsFiring(t *testing.T) {
	var fired int32
	job, err := At(time.Now().Add(50*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})
	require.NoError(t, err)

	assert.True(t, job.Stop())
	assert.False(t, job.Stop())

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestNewDoesNotArmTimer(t *testing.T) {
	var fired int32
	job, err := New(time.Now().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))

	// The fire time has lapsed by now; Start fires immediately.
	job.Start()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestStartAfterStopDoesNotFire(t *testing.T) {
	var fired int32
	job, err := New(time.Now().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})
	require.NoError(t, err)

	assert.True(t, job.Stop())
	job.Start()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestStartTwiceFiresOnce(t *testing.T) {
	var fired int32
	job, err := New(time.Now().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})
	require.NoError(t, err)

	job.Start()
	job.Start()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}
