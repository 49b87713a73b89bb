package headless

import (
	"errors"
	"sync"

	"intuition-toolbar/internal/toolbar"
)

// ErrNoDialogOpen is returned by Answer and Cancel when no Load is waiting.
var ErrNoDialogOpen = errors.New("no file dialog open")

type answer struct {
	path string
	err  error
}

// Chooser answers file dialogs. Queued answers are returned as soon as the
// dialog opens, like a blocking toolkit dialog. With an empty queue the
// dialog stays open until Answer or Cancel delivers the result through the
// event loop, like an async one.
type Chooser struct {
	post func(func()) error

	mu      sync.Mutex
	queued  []answer
	pending func(string, error)
	opened  []toolbar.ChooseRequest
}

func (c *Chooser) Choose(req toolbar.ChooseRequest, done func(string, error)) {
	c.mu.Lock()
	c.opened = append(c.opened, req)
	if len(c.queued) == 0 {
		c.pending = done
		c.mu.Unlock()
		return
	}
	next := c.queued[0]
	c.queued = c.queued[1:]
	c.mu.Unlock()

	done(next.path, next.err)
}

// Queue scripts the result of a future dialog.
func (c *Chooser) Queue(path string) {
	c.enqueue(answer{path: path})
}

// QueueCancel scripts a dismissed dialog.
func (c *Chooser) QueueCancel() {
	c.enqueue(answer{err: toolbar.ErrDialogCancelled})
}

// QueueError scripts a dialog whose selection could not be resolved.
func (c *Chooser) QueueError(err error) {
	c.enqueue(answer{err: err})
}

func (c *Chooser) enqueue(a answer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queued = append(c.queued, a)
}

// Answer completes the open dialog with path. Must not be called from the
// event loop.
func (c *Chooser) Answer(path string) error {
	return c.complete(answer{path: path})
}

// Cancel dismisses the open dialog.
func (c *Chooser) Cancel() error {
	return c.complete(answer{err: toolbar.ErrDialogCancelled})
}

func (c *Chooser) complete(a answer) error {
	c.mu.Lock()
	done := c.pending
	c.pending = nil
	c.mu.Unlock()

	if done == nil {
		return ErrNoDialogOpen
	}
	return c.post(func() { done(a.path, a.err) })
}

// Open reports whether a dialog is waiting for Answer or Cancel.
func (c *Chooser) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Requests returns every dialog opened so far.
func (c *Chooser) Requests() []toolbar.ChooseRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]toolbar.ChooseRequest(nil), c.opened...)
}
