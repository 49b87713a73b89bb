package toolbar

import (
	"errors"

	"intuition-toolbar/internal/host"
	"intuition-toolbar/internal/logger"
)

const (
	EventLoadAccepted = "toolbar.load.accepted"
	EventReset        = "toolbar.reset"
	EventDebug        = "toolbar.debug"
	EventAbout        = "toolbar.about"
)

// EventPublisher receives one event per handled click.
type EventPublisher interface {
	Publish(eventType string, data map[string]interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, map[string]interface{}) {}

// AboutSurface is the toolkit's informational dialog. Implementations build
// it on first use and reuse it afterwards, replacing only the text.
type AboutSurface interface {
	ShowAbout(title, text string) error
}

// Dispatcher routes button clicks. Reset and Debug go straight to the engine;
// Load opens the chooser; About borrows the engine's text for one display.
// All methods run on the GUI thread.
type Dispatcher struct {
	core    *Core
	engine  host.Engine
	chooser Chooser
	about   AboutSurface
	bridge  *LoadBridge
	events  EventPublisher
	logger  logger.Logger
	request ChooseRequest
}

// DispatcherConfig groups the collaborators a Dispatcher needs.
type DispatcherConfig struct {
	Engine  host.Engine
	Chooser Chooser
	About   AboutSurface
	Core    *Core
	Events  EventPublisher
	Logger  logger.Logger
	Request ChooseRequest
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	events := cfg.Events
	if events == nil {
		events = noopPublisher{}
	}
	return &Dispatcher{
		core:    cfg.Core,
		engine:  cfg.Engine,
		chooser: cfg.Chooser,
		about:   cfg.About,
		bridge:  NewLoadBridge(cfg.Core.Mailbox, events, cfg.Logger),
		events:  events,
		logger:  cfg.Logger,
		request: cfg.Request,
	}
}

// Handler returns the click callback for b.
func (d *Dispatcher) Handler(b Button) func() {
	switch b {
	case ButtonLoad:
		return d.Load
	case ButtonReset:
		return d.Reset
	case ButtonDebug:
		return d.Debug
	case ButtonAbout:
		return d.About
	default:
		return func() {}
	}
}

func (d *Dispatcher) Load() {
	if !d.bridge.Begin() {
		d.logger.Debug("Dispatcher", "load ignored, file dialog already open", nil)
		return
	}
	d.logger.Debug("Dispatcher", "opening file dialog", map[string]interface{}{
		"dir":    d.request.Dir,
		"filter": d.request.Filter.Description,
	})
	d.chooser.Choose(d.request, d.complete)
}

func (d *Dispatcher) complete(path string, err error) {
	if err != nil && !errors.Is(err, ErrDialogCancelled) {
		d.core.RecordError(err)
	}
	d.bridge.Complete(path, err)
}

func (d *Dispatcher) Reset() {
	d.engine.Reset()
	d.events.Publish(EventReset, nil)
}

// Debug forwards to the engine. A returned error is logged and kept as the
// last error.
func (d *Dispatcher) Debug() {
	if err := d.engine.Debug(); err != nil {
		d.core.RecordError(err)
		d.logger.Error("Dispatcher", err, map[string]interface{}{
			"button": ButtonDebug.String(),
		})
	}
	d.events.Publish(EventDebug, nil)
}

// About shows the engine's About text. Nothing is shown when the engine has
// no text; the text is released whether or not the display succeeded.
func (d *Dispatcher) About() {
	shown, err := host.UseAbout(d.engine, func(text string) error {
		return d.about.ShowAbout(AboutTitle, text)
	})
	if err != nil {
		d.core.RecordError(err)
		d.logger.Error("Dispatcher", err, map[string]interface{}{
			"button": ButtonAbout.String(),
		})
		return
	}
	if !shown {
		d.logger.Debug("Dispatcher", "no about text, surface not shown", nil)
		return
	}
	d.events.Publish(EventAbout, nil)
}

// Bridge exposes the load bridge for backends that complete dialogs directly.
func (d *Dispatcher) Bridge() *LoadBridge {
	return d.bridge
}
