package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"intuition-toolbar/internal/config"
	"intuition-toolbar/internal/debug/eventbus"
	"intuition-toolbar/internal/debug/memtracker"
	"intuition-toolbar/internal/debug/timing"
	"intuition-toolbar/internal/host"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/models"
	"intuition-toolbar/internal/shutdown"
	"intuition-toolbar/internal/toolbar"
)

const (
	AppName    = host.ProductName + " Toolbar"
	AppVersion = "1.0.0"

	eventBufferSize = 256
)

// Application wires the toolbar frontend to the standalone program engine.
type Application struct {
	cfg      config.Config
	logger   logger.Logger
	bus      *eventbus.Bus
	tracker  *memtracker.Tracker
	timings  *timing.Tracker
	engine   *host.ProgramEngine
	frontend toolbar.Frontend
	poller   *host.Poller
	shutdown *shutdown.Manager
	pollDone sync.WaitGroup
	closed   atomic.Bool
	program  string
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	bus := eventbus.NewBus(eventBufferSize)
	tracker := memtracker.NewTracker(bus, isDebug(cfg))
	engine := host.NewProgramEngine(log, tracker)
	timings := timing.NewTracker(bus)

	frontend, err := NewFrontend(cfg.Frontend, toolbar.Options{
		Engine:   engine,
		Events:   bus,
		Logger:   log,
		StartDir: cfg.Frontend.StartDir,
	})
	if err != nil {
		bus.Shutdown()
		return nil, err
	}

	a := &Application{
		cfg:      cfg,
		logger:   log,
		bus:      bus,
		tracker:  tracker,
		timings:  timings,
		engine:   engine,
		frontend: frontend,
		poller:   host.NewPoller(frontend, &timedLoader{loader: engine, timings: timings}, cfg.Poll.Interval, log),
		shutdown: shutdown.NewManager(log, shutdown.DefaultTimeout),
	}
	a.subscribe()
	a.shutdown.Register("event-bus", a.bus)
	a.shutdown.Register("leak-report", shutdown.Func(a.reportLeaks))

	log.Info("Application", "starting application", map[string]interface{}{
		"version":         AppVersion,
		"backend":         cfg.Frontend.Backend,
		"start_minimized": cfg.Frontend.StartMinimized,
		"poll_interval":   cfg.Poll.Interval.String(),
	})
	return a, nil
}

// LoadAtStart names a program Run loads before presenting the toolbar. The
// toolbar then starts minimized.
func (a *Application) LoadAtStart(path string) {
	a.program = path
}

// Run creates and shows the toolbar and blocks until it closes or a signal
// arrives.
func (a *Application) Run() error {
	if err := a.frontend.CreateWindow(); err != nil {
		a.shutdown.Shutdown()
		return fmt.Errorf("create window: %w", err)
	}

	minimized := a.cfg.Frontend.StartMinimized
	if a.program != "" {
		req := models.NewLoadRequest(a.program)
		loader := &timedLoader{loader: a.engine, timings: a.timings}
		if err := loader.LoadProgram(a.shutdown.Context(), req); err != nil {
			a.shutdown.Shutdown()
			return fmt.Errorf("program argument: %w", err)
		}
		minimized = true
	}
	a.frontend.SetStartMinimized(minimized)

	a.shutdown.Register("poller", shutdown.Func(a.pollDone.Wait))
	a.shutdown.Register("frontend", shutdown.Func(a.Stop))
	a.shutdown.Listen()

	a.pollDone.Add(1)
	go func() {
		defer a.pollDone.Done()
		if err := a.poller.Run(a.shutdown.Context()); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("Application", err, nil)
		}
	}()

	err := a.frontend.ShowWindow()
	a.closed.Store(true)
	a.logger.Info("Application", "toolbar closed", nil)
	a.shutdown.Shutdown()
	if err != nil {
		return fmt.Errorf("show window: %w", err)
	}
	return nil
}

// Stop closes the toolbar, which makes Run return.
func (a *Application) Stop() {
	if a.closed.Load() {
		return
	}
	if err := a.frontend.Close(); err != nil {
		a.logger.Error("Application", err, nil)
	}
}

func (a *Application) Frontend() toolbar.Frontend { return a.frontend }

func (a *Application) Engine() *host.ProgramEngine { return a.engine }

func (a *Application) Tracker() *memtracker.Tracker { return a.tracker }

func (a *Application) Timings() *timing.Tracker { return a.timings }

const loadOperation = "load_program"

type timedLoader struct {
	loader  host.Loader
	timings *timing.Tracker
}

func (l *timedLoader) LoadProgram(ctx context.Context, req models.LoadRequest) error {
	defer l.timings.Start(loadOperation)()
	return l.loader.LoadProgram(ctx, req)
}

func isDebug(cfg config.Config) bool {
	return cfg.Log.Level == "debug"
}
