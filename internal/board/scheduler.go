package board

import (
	"sync"
	"time"
)

// Surface identifies one of the two independently redrawn drawing targets.
type Surface int

const (
	// SurfacePersisted holds the committed document and is redrawn only when
	// the document or transform changes.
	SurfacePersisted Surface = iota
	// SurfaceActive holds the in-progress element and selection chrome and
	// is redrawn on every pointer move.
	SurfaceActive
)

// frameInterval approximates one display frame.
const frameInterval = 16 * time.Millisecond

// frameScheduler coalesces redraw requests so each surface is painted at
// most once per frame. Requests arriving while a flush is pending only mark
// flags; the flush paints from the latest state, so later mutations always
// win over earlier scheduled-but-unpainted ones.
type frameScheduler struct {
	mu        sync.Mutex
	flush     func(persisted, active bool)
	timer     *time.Timer
	persisted bool
	active    bool
	stopped   bool
}

func newFrameScheduler(flush func(persisted, active bool)) *frameScheduler {
	return &frameScheduler{flush: flush}
}

// Request marks a surface dirty and arms the frame timer if idle.
func (s *frameScheduler) Request(surface Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if surface == SurfacePersisted {
		s.persisted = true
	} else {
		s.active = true
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(frameInterval, s.fire)
	}
}

func (s *frameScheduler) fire() {
	s.mu.Lock()
	persisted, active := s.persisted, s.active
	s.persisted, s.active = false, false
	s.timer = nil
	stopped := s.stopped
	s.mu.Unlock()
	if stopped || (!persisted && !active) {
		return
	}
	s.flush(persisted, active)
}

// Stop cancels any pending flush. Used on unmount.
func (s *frameScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
