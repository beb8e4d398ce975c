package gesture

import (
	"sync"
	"time"
)

// FrameScheduler coalesces viewport updates to animation-frame cadence.
// Request replaces any pending callback, so at most one is ever outstanding.
// Flush runs a pending callback immediately (used when a gesture ends so the
// final position is never dropped); Cancel discards it.
type FrameScheduler interface {
	Request(fn func())
	Cancel()
	Flush()
}

// frameInterval approximates one display frame.
const frameInterval = 16 * time.Millisecond

// timerScheduler implements FrameScheduler on a one-shot timer.
type timerScheduler struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// NewFrameScheduler returns a timer-backed scheduler running callbacks at
// most once per frame interval.
func NewFrameScheduler() FrameScheduler {
	return &timerScheduler{}
}

func (s *timerScheduler) Request(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = fn
	if s.timer == nil {
		s.timer = time.AfterFunc(frameInterval, s.fire)
	}
}

func (s *timerScheduler) fire() {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (s *timerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *timerScheduler) Flush() {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}
