package storage

import (
	"sync"
	"time"

	"tradeboard/internal/board"
)

// DebounceDelay is how long after the last mutation a write actually runs.
// Rapid drawing produces one write instead of one per committed stroke.
const DebounceDelay = 250 * time.Millisecond

// Saver debounces writes to an underlying Store. Each Schedule replaces the
// pending snapshot and restarts the timer (true debounce, not throttle), so
// only the latest document state is written.
type Saver struct {
	store Store
	delay time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	pending    []*board.Element
	hasPending bool
}

// NewSaver wraps store with the default debounce delay.
func NewSaver(store Store) *Saver {
	return &Saver{store: store, delay: DebounceDelay}
}

// NewSaverWithDelay is used by tests to shorten the debounce window.
func NewSaverWithDelay(store Store, delay time.Duration) *Saver {
	return &Saver{store: store, delay: delay}
}

// Schedule queues elements to be written once the debounce window elapses.
// The caller hands over ownership of the slice (the engine passes a deep
// clone).
func (s *Saver) Schedule(elements []*board.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = elements
	s.hasPending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.write)
}

func (s *Saver) write() {
	s.mu.Lock()
	elements, ok := s.pending, s.hasPending
	s.pending = nil
	s.hasPending = false
	s.timer = nil
	s.mu.Unlock()
	if !ok {
		return
	}
	s.store.Save(elements)
}

// Flush writes any pending snapshot immediately. Called on unmount so the
// last quarter second of edits is not lost.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.write()
}
