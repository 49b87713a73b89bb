package app

import (
	"intuition-toolbar/internal/debug/eventbus"
	"intuition-toolbar/internal/toolbar"
)

// subscribe logs toolbar activity and flags double releases.
func (a *Application) subscribe() {
	logEvent := eventbus.HandlerFunc{ID: "event-log", Fn: func(e eventbus.Event) {
		a.logger.Debug("EventBus", e.Type, e.Data)
	}}
	for _, t := range []string{
		toolbar.EventLoadAccepted,
		toolbar.EventReset,
		toolbar.EventDebug,
		toolbar.EventAbout,
	} {
		a.bus.Subscribe(t, logEvent)
	}

	a.bus.Subscribe("memory_untracked_deallocation", eventbus.HandlerFunc{ID: "double-release", Fn: func(e eventbus.Event) {
		a.logger.Warning("MemoryTracker", "release of unknown allocation", e.Data)
	}})

	a.bus.OnPanic(func(id string, recovered interface{}) {
		a.logger.Warning("EventBus", "subscriber panicked", map[string]interface{}{
			"handler": id,
			"panic":   recovered,
		})
	})
}

// reportLeaks runs during shutdown after the window and poller are gone; the
// bus stops after it so the summary's events are still delivered.
func (a *Application) reportLeaks() {
	a.tracker.Report(a.logger)

	if err := a.poller.LastError(); err != nil {
		a.logger.Warning("Application", "last program load failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if loads := a.timings.GetTimings(loadOperation); len(loads) > 0 {
		a.logger.Info("Application", "program load timings", map[string]interface{}{
			"loads":   len(loads),
			"average": a.timings.GetAverageTime(loadOperation).String(),
		})
	}
}
