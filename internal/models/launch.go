package models

import "sync"

// LaunchSettings holds configuration consulted once, when the toolbar window
// is first presented.
type LaunchSettings struct {
	mu             sync.Mutex
	startMinimized bool
	presented      bool
}

// SetStartMinimized records the flag. It reports false, and changes nothing,
// once the window has been presented.
func (s *LaunchSettings) SetStartMinimized(minimized bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.presented {
		return false
	}
	s.startMinimized = minimized
	return true
}

// Present marks the window as presented and returns whether it should be
// minimized. Only the first call can return true.
func (s *LaunchSettings) Present() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.presented {
		return false
	}
	s.presented = true
	return s.startMinimized
}

// Presented reports whether Present has run.
func (s *LaunchSettings) Presented() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presented
}
