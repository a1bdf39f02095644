package board

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushRecorder struct {
	mu      sync.Mutex
	flushes []struct{ persisted, active bool }
}

func (r *flushRecorder) record(persisted, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes = append(r.flushes, struct{ persisted, active bool }{persisted, active})
}

func (r *flushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flushes)
}

func (r *flushRecorder) last() (persisted, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.flushes[len(r.flushes)-1]
	return f.persisted, f.active
}

func TestSchedulerCoalescesRequestsWithinFrame(t *testing.T) {
	rec := &flushRecorder{}
	s := newFrameScheduler(rec.record)
	defer s.Stop()

	// A burst of requests inside one frame yields exactly one flush.
	for i := 0; i < 25; i++ {
		s.Request(SurfaceActive)
	}
	s.Request(SurfacePersisted)

	require.Eventually(t, func() bool { return rec.count() == 1 },
		500*time.Millisecond, 2*time.Millisecond)
	persisted, active := rec.last()
	assert.True(t, persisted)
	assert.True(t, active)

	// Quiet afterwards: no stray extra flushes.
	time.Sleep(3 * frameInterval)
	assert.Equal(t, 1, rec.count())
}

func TestSchedulerSeparateFramesFlushSeparately(t *testing.T) {
	rec := &flushRecorder{}
	s := newFrameScheduler(rec.record)
	defer s.Stop()

	s.Request(SurfaceActive)
	require.Eventually(t, func() bool { return rec.count() == 1 },
		500*time.Millisecond, 2*time.Millisecond)

	s.Request(SurfacePersisted)
	require.Eventually(t, func() bool { return rec.count() == 2 },
		500*time.Millisecond, 2*time.Millisecond)

	persisted, active := rec.last()
	assert.True(t, persisted)
	assert.False(t, active, "the second frame only had a persisted request")
}

func TestSchedulerStopCancelsPendingFlush(t *testing.T) {
	rec := &flushRecorder{}
	s := newFrameScheduler(rec.record)

	s.Request(SurfaceActive)
	s.Stop()
	time.Sleep(3 * frameInterval)
	assert.Equal(t, 0, rec.count())

	// Requests after Stop are ignored.
	s.Request(SurfacePersisted)
	time.Sleep(3 * frameInterval)
	assert.Equal(t, 0, rec.count())
}
