package toolbar

import (
	"errors"
	"sync/atomic"

	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/models"
	"intuition-toolbar/internal/programs"
)

// ErrDialogCancelled is what choosers report when the user dismisses the
// dialog without picking a file.
var ErrDialogCancelled = errors.New("file dialog cancelled")

// ChooseRequest describes the dialog a Chooser opens.
type ChooseRequest struct {
	Title  string
	Dir    string
	Filter programs.Filter
}

// Chooser opens a toolkit's file dialog. Completion may arrive before Choose
// returns (blocking dialogs) or later from the toolkit's own loop (async
// dialogs); either way done runs once, on the GUI thread.
type Chooser interface {
	Choose(req ChooseRequest, done func(path string, err error))
}

// LoadBridge turns file dialog completions into mailbox updates. Accepting a
// path replaces the previous one and raises should-execute; cancellation and
// resolution errors leave the mailbox untouched.
type LoadBridge struct {
	mailbox  *models.LoadMailbox
	events   EventPublisher
	logger   logger.Logger
	awaiting atomic.Bool
}

func NewLoadBridge(mailbox *models.LoadMailbox, events EventPublisher, log logger.Logger) *LoadBridge {
	if events == nil {
		events = noopPublisher{}
	}
	return &LoadBridge{mailbox: mailbox, events: events, logger: log}
}

// Begin moves to AwaitingDialog. It returns false while another dialog is
// still open.
func (b *LoadBridge) Begin() bool {
	return b.awaiting.CompareAndSwap(false, true)
}

// Awaiting reports whether a dialog is open.
func (b *LoadBridge) Awaiting() bool {
	return b.awaiting.Load()
}

// Complete finishes the dialog opened by Begin.
func (b *LoadBridge) Complete(path string, err error) {
	b.awaiting.Store(false)

	switch {
	case errors.Is(err, ErrDialogCancelled):
		b.logger.Debug("LoadBridge", "file dialog cancelled", nil)
		return
	case err != nil:
		b.logger.Warning("LoadBridge", "file dialog failed, selection unchanged", map[string]interface{}{
			"error": err.Error(),
		})
		return
	case path == "":
		b.logger.Debug("LoadBridge", "file dialog closed without a path", nil)
		return
	}

	req := b.mailbox.Accept(path)
	b.logger.Info("LoadBridge", "program selected", map[string]interface{}{
		"request_id":   req.ID.String(),
		"path":         req.Path,
		"architecture": req.Architecture.String(),
	})
	b.events.Publish(EventLoadAccepted, map[string]interface{}{
		"request_id": req.ID.String(),
		"path":       req.Path,
	})
}
