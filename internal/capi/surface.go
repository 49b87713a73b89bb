// Package capi keeps the state behind the toolbar's C exports: the one
// frontend, the start-minimized request that may arrive before it exists,
// and the C copy of the selected path handed to the host.
package capi

import (
	"sync"
	"unsafe"

	"intuition-toolbar/internal/debug/memtracker"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/toolbar"
)

// Strings allocates and frees NUL-terminated C strings.
type Strings interface {
	CString(s string) unsafe.Pointer
	Free(p unsafe.Pointer)
}

// Selection caches the C copy of the selected path. The copy is borrowed by
// the host and stays valid until a different path arrives.
type Selection struct {
	strings Strings
	ptr     unsafe.Pointer
	path    string
}

// Borrow returns the C copy of path, allocating a new one only when path
// differs from the cached copy. It returns nil when nothing is selected.
func (s *Selection) Borrow(path string, ok bool) unsafe.Pointer {
	if !ok {
		return nil
	}
	if s.ptr != nil && path == s.path {
		return s.ptr
	}
	if s.ptr != nil {
		s.strings.Free(s.ptr)
	}
	s.ptr = s.strings.CString(path)
	s.path = path
	return s.ptr
}

// Surface is the state behind the exported C functions. All methods are safe
// from any thread.
type Surface struct {
	mu        sync.Mutex
	frontend  toolbar.Frontend
	minimized bool
	selection Selection
	log       logger.Logger
	tracker   *memtracker.Tracker
}

func NewSurface(strings Strings, tracker *memtracker.Tracker) *Surface {
	return &Surface{
		selection: Selection{strings: strings},
		log:       logger.NoOpLogger{},
		tracker:   tracker,
	}
}

func (s *Surface) SetLogger(log logger.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log == nil {
		log = logger.NoOpLogger{}
	}
	s.log = log
}

func (s *Surface) Logger() logger.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log
}

func (s *Surface) Tracker() *memtracker.Tracker {
	return s.tracker
}

// Create builds the frontend with newFrontend and creates its window. A
// start-minimized request made before Create is carried over and combined
// with minimized.
func (s *Surface) Create(newFrontend func() (toolbar.Frontend, error), minimized bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frontend != nil {
		s.log.Warning("CAPI", "create_window called twice", nil)
		return toolbar.ErrAlreadyCreated
	}
	fe, err := newFrontend()
	if err != nil {
		return err
	}
	if err := fe.CreateWindow(); err != nil {
		return err
	}
	fe.SetStartMinimized(s.minimized || minimized)
	s.frontend = fe
	return nil
}

// Show runs the frontend's event loop on the calling thread.
func (s *Surface) Show() error {
	fe := s.current()
	if fe == nil {
		return toolbar.ErrNotCreated
	}
	return fe.ShowWindow()
}

// Close ends the event loop and reports any host buffers still outstanding.
func (s *Surface) Close() error {
	fe := s.current()
	if fe == nil {
		return toolbar.ErrNotCreated
	}
	err := fe.Close()
	s.tracker.Report(s.Logger())
	return err
}

// SelectedFile returns the borrowed C copy of the selected path, or nil.
func (s *Surface) SelectedFile() unsafe.Pointer {
	fe := s.current()
	if fe == nil {
		return nil
	}
	path, ok := fe.SelectedFile()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Borrow(path, ok)
}

// ShouldExecute is read-and-reset, as 1 or 0.
func (s *Surface) ShouldExecute() int {
	fe := s.current()
	if fe == nil || !fe.ShouldExecute() {
		return 0
	}
	return 1
}

// SendCommand forwards a host command and maps the outcome to 0 or -1. A
// failure is logged.
func (s *Surface) SendCommand(cmd toolbar.Command) int {
	fe := s.current()
	if fe == nil {
		s.Logger().Error("CAPI", toolbar.ErrNotCreated, nil)
		return -1
	}
	if err := fe.SendCommand(cmd); err != nil {
		s.Logger().Error("CAPI", err, nil)
		return -1
	}
	return 0
}

// IsVisible is 1 while the toolbar's event loop runs.
func (s *Surface) IsVisible() int {
	fe := s.current()
	if fe == nil || !fe.IsVisible() {
		return 0
	}
	return 1
}

// SetStartMinimized records the request for a later Create and forwards it to
// an existing frontend.
func (s *Surface) SetStartMinimized(minimized bool) {
	s.mu.Lock()
	s.minimized = minimized
	fe := s.frontend
	s.mu.Unlock()

	if fe != nil {
		fe.SetStartMinimized(minimized)
	}
}

func (s *Surface) current() toolbar.Frontend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frontend
}
