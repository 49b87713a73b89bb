package host

import (
	"context"
	"time"

	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/models"
)

// DefaultPollInterval matches the cadence the engine has always polled the
// toolbar at.
const DefaultPollInterval = 100 * time.Millisecond

// RequestSource is the polling side of the toolbar.
type RequestSource interface {
	TakeLoadRequest() (models.LoadRequest, bool)
}

// Loader starts a program the user picked.
type Loader interface {
	LoadProgram(ctx context.Context, req models.LoadRequest) error
}

// Poller runs on the engine's side of the boundary and turns accepted file
// selections into program loads. It must not run on the toolkit's thread.
type Poller struct {
	source   RequestSource
	loader   Loader
	interval time.Duration
	logger   logger.Logger
	lastErr  chan error
}

func NewPoller(source RequestSource, loader Loader, interval time.Duration, log logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		source:   source,
		loader:   loader,
		interval: interval,
		logger:   log,
		lastErr:  make(chan error, 1),
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Debug("Poller", "polling started", map[string]interface{}{
		"interval": p.interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Poller", "polling stopped", nil)
			return ctx.Err()
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce consumes at most one pending request. It reports whether a load
// was attempted.
func (p *Poller) PollOnce(ctx context.Context) bool {
	req, ok := p.source.TakeLoadRequest()
	if !ok {
		return false
	}

	fields := map[string]interface{}{
		"request_id":   req.ID.String(),
		"path":         req.Path,
		"architecture": req.Architecture.String(),
	}
	p.logger.Info("Poller", "loading program", fields)

	if err := p.loader.LoadProgram(ctx, req); err != nil {
		p.logger.Error("Poller", err, fields)
		p.recordErr(err)
	}
	return true
}

// LastError returns the most recent load failure, if any, and clears it.
func (p *Poller) LastError() error {
	select {
	case err := <-p.lastErr:
		return err
	default:
		return nil
	}
}

func (p *Poller) recordErr(err error) {
	select {
	case <-p.lastErr:
	default:
	}
	p.lastErr <- err
}
