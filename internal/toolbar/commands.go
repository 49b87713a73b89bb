package toolbar

import (
	"errors"
	"fmt"

	"intuition-toolbar/internal/host"
)

var (
	ErrUnknownCommand = errors.New("unknown toolbar command")
	ErrNoProgram      = errors.New("start command without a program path")
	ErrNotBound       = errors.New("toolbar not bound to an engine")
)

// CommandKind is a request the host sends the toolbar outside of any click.
type CommandKind int

const (
	// CommandStart selects a program as if the user had picked it, so the
	// next poll resets the machine and loads it.
	CommandStart CommandKind = iota
	CommandReset
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandStart:
		return "start"
	case CommandReset:
		return "reset"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

type Command struct {
	Kind CommandKind
	Path string
}

// Bind gives the core the engine Reset goes to and the backend's Close.
// Backends call it from their constructor.
func (c *Core) Bind(engine host.Engine, closeFn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine = engine
	c.closeFn = closeFn
}

// SendCommand runs cmd on the calling goroutine. A failure is also kept as
// the last error.
func (c *Core) SendCommand(cmd Command) error {
	c.mu.Lock()
	engine, closeFn := c.engine, c.closeFn
	c.mu.Unlock()

	c.logger.Debug(c.component, "host command", map[string]interface{}{
		"command": cmd.Kind.String(),
		"path":    cmd.Path,
	})

	var err error
	switch cmd.Kind {
	case CommandStart:
		if cmd.Path == "" {
			err = ErrNoProgram
			break
		}
		req := c.Mailbox.Accept(cmd.Path)
		c.logger.Info(c.component, "program selected by host", map[string]interface{}{
			"request_id":   req.ID.String(),
			"path":         req.Path,
			"architecture": req.Architecture.String(),
		})
	case CommandReset:
		if engine == nil {
			err = ErrNotBound
			break
		}
		engine.Reset()
	case CommandQuit:
		if closeFn == nil {
			err = ErrNotBound
			break
		}
		err = closeFn()
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd.Kind))
	}

	if err != nil {
		err = fmt.Errorf("%s command: %w", cmd.Kind, err)
		c.RecordError(err)
	}
	return err
}

// IsVisible reports whether the window is presented and its event loop is
// running. A minimized window still counts.
func (c *Core) IsVisible() bool {
	return c.State() == StateShown
}

// RecordError keeps err as the last error. nil is ignored.
func (c *Core) RecordError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

// LastError returns the most recent failure of a command, click handler or
// file dialog, if any.
func (c *Core) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
