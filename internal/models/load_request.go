package models

import (
	"sync"
	"time"

	"intuition-toolbar/internal/programs"

	"github.com/google/uuid"
)

// LoadRequest is one accepted file-chooser completion.
type LoadRequest struct {
	ID           uuid.UUID
	Path         string
	Architecture programs.Architecture
	AcceptedAt   time.Time
}

// NewLoadRequest describes path as a program accepted now.
func NewLoadRequest(path string) LoadRequest {
	return LoadRequest{
		ID:           uuid.New(),
		Path:         path,
		Architecture: programs.Detect(path),
		AcceptedAt:   time.Now(),
	}
}

// LoadMailbox is the pending load request shared between the GUI thread,
// which writes it, and the host engine, which polls it.
//
// The selected path and the should-execute flag live under one mutex so a
// reader can never see the flag raised next to a stale path.
type LoadMailbox struct {
	mu       sync.Mutex
	selected *LoadRequest
	pending  bool
	accepted uint64
	now      func() time.Time
}

// NewLoadMailbox creates an empty mailbox.
func NewLoadMailbox() *LoadMailbox {
	return &LoadMailbox{now: time.Now}
}

// Accept replaces the selected path and raises should-execute.
func (m *LoadMailbox) Accept(path string) LoadRequest {
	req := NewLoadRequest(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	req.AcceptedAt = m.now()
	m.selected = &req
	m.pending = true
	m.accepted++
	return req
}

// SelectedFile returns the most recently accepted path. It never mutates.
func (m *LoadMailbox) SelectedFile() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == nil {
		return "", false
	}
	return m.selected.Path, true
}

// ShouldExecute is read-and-reset: it returns the flag and clears it
// whatever its value was.
func (m *LoadMailbox) ShouldExecute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending := m.pending
	m.pending = false
	return pending
}

// Take consumes the pending request together with its path.
func (m *LoadMailbox) Take() (LoadRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.pending {
		return LoadRequest{}, false
	}
	m.pending = false
	return *m.selected, true
}

// Accepted counts selections accepted since creation.
func (m *LoadMailbox) Accepted() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accepted
}
