package ports

import (
	"sync"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// SharedDisplayState is the single piece of state shared between the
// acquisition loop (writer) and the background display-refresh jobs
// (readers). The triple is written atomically as a unit under one lock:
// a reader never observes fields from two different iterations. A reader may
// see data up to one full acquisition period old; the lock bounds tearing,
// not staleness.
type SharedDisplayState struct {
	mu    sync.Mutex
	state domain.DisplayState
}

// NewSharedDisplayState creates the shared state with zero values.
func NewSharedDisplayState() *SharedDisplayState {
	return &SharedDisplayState{}
}

// Set replaces all three fields in one critical section.
func (s *SharedDisplayState) Set(state domain.DisplayState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Snapshot returns the most recently completed write.
func (s *SharedDisplayState) Snapshot() domain.DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
