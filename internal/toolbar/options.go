package toolbar

import (
	"intuition-toolbar/internal/host"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/programs"
)

// Options configures a backend. Zero fields fall back to defaults.
type Options struct {
	Engine   host.Engine
	Events   EventPublisher
	Logger   logger.Logger
	Layout   Layout
	StartDir string
	Filter   programs.Filter
}

// Normalize fills unset fields.
func (o Options) Normalize() Options {
	if o.Logger == nil {
		o.Logger = logger.NoOpLogger{}
	}
	if o.Events == nil {
		o.Events = noopPublisher{}
	}
	if o.Layout.Title == "" {
		o.Layout = DefaultLayout
	}
	if o.StartDir == "" {
		o.StartDir = "."
	}
	if len(o.Filter.Extensions) == 0 {
		o.Filter = programs.ExecutableFilter
	}
	return o
}

func (o Options) ChooseRequest() ChooseRequest {
	return ChooseRequest{
		Title:  LoadDialogTitle,
		Dir:    o.StartDir,
		Filter: o.Filter,
	}
}

// NewDispatcherFor builds the dispatcher a backend wires its buttons to.
func (o Options) NewDispatcherFor(core *Core, chooser Chooser, about AboutSurface) *Dispatcher {
	return NewDispatcher(DispatcherConfig{
		Engine:  o.Engine,
		Chooser: chooser,
		About:   about,
		Core:    core,
		Events:  o.Events,
		Logger:  o.Logger,
		Request: o.ChooseRequest(),
	})
}
