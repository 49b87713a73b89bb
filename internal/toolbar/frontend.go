// Package toolbar defines the control toolbar contract the engine embeds and
// the toolkit-independent pieces every backend shares: lifecycle, polling
// state, button dispatch and the file-load bridge.
package toolbar

import (
	"errors"
	"sync"

	"intuition-toolbar/internal/host"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/models"
)

var (
	ErrNotCreated     = errors.New("toolbar window not created")
	ErrAlreadyCreated = errors.New("toolbar window already created")
	ErrAlreadyShown   = errors.New("toolbar window already shown")
)

// Frontend is what the host engine sees of a toolbar, whichever toolkit
// draws it.
type Frontend interface {
	// CreateWindow builds the window and wires its buttons. Call once.
	CreateWindow() error
	// ShowWindow presents the window and runs the toolkit event loop on the
	// calling goroutine until the window closes.
	ShowWindow() error
	// Close ends the event loop. Safe from any goroutine.
	Close() error

	SelectedFile() (string, bool)
	// ShouldExecute is read-and-reset.
	ShouldExecute() bool
	// TakeLoadRequest consumes the pending request and its path together.
	TakeLoadRequest() (models.LoadRequest, bool)
	// SetStartMinimized only takes effect before ShowWindow.
	SetStartMinimized(minimized bool)

	// SendCommand lets the host start a program, reset or quit without a
	// click. Safe from any goroutine.
	SendCommand(cmd Command) error
	IsVisible() bool
	LastError() error
}

// State is the window lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateCreated
	StateShown
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreated:
		return "created"
	case StateShown:
		return "shown"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Core carries the lifecycle and polling state shared by every backend.
// Backends embed it and supply the toolkit calls.
type Core struct {
	mu        sync.Mutex
	state     State
	component string
	logger    logger.Logger
	engine    host.Engine
	closeFn   func() error
	lastErr   error

	Mailbox *models.LoadMailbox
	Launch  models.LaunchSettings
}

func NewCore(component string, log logger.Logger) *Core {
	return &Core{
		component: component,
		logger:    log,
		Mailbox:   models.NewLoadMailbox(),
	}
}

// Create runs build and moves to StateCreated if it succeeds.
func (c *Core) Create(build func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateUninitialized {
		return ErrAlreadyCreated
	}
	if err := build(); err != nil {
		return err
	}
	c.state = StateCreated
	c.logger.Debug(c.component, "window created", nil)
	return nil
}

// Show moves to StateShown, consults the start-minimized flag and hands it to
// present, which is expected to block in the event loop.
func (c *Core) Show(present func(minimized bool) error) error {
	c.mu.Lock()
	switch c.state {
	case StateUninitialized:
		c.mu.Unlock()
		return ErrNotCreated
	case StateShown, StateClosed:
		c.mu.Unlock()
		return ErrAlreadyShown
	}
	c.state = StateShown
	c.mu.Unlock()

	minimized := c.Launch.Present()
	c.logger.Info(c.component, "entering event loop", map[string]interface{}{
		"minimized": minimized,
	})

	err := present(minimized)
	c.RecordError(err)

	c.mu.Lock()
	c.state = StateClosed
	c.mu.Unlock()
	c.logger.Info(c.component, "event loop returned", nil)
	return err
}

func (c *Core) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Core) SelectedFile() (string, bool) {
	return c.Mailbox.SelectedFile()
}

func (c *Core) ShouldExecute() bool {
	return c.Mailbox.ShouldExecute()
}

func (c *Core) TakeLoadRequest() (models.LoadRequest, bool) {
	return c.Mailbox.Take()
}

func (c *Core) SetStartMinimized(minimized bool) {
	if !c.Launch.SetStartMinimized(minimized) {
		c.logger.Warning(c.component, "start-minimized ignored, window already presented", map[string]interface{}{
			"minimized": minimized,
		})
	}
}
