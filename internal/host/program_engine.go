package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"intuition-toolbar/internal/debug/memtracker"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/models"
	"intuition-toolbar/internal/programs"
)

// AboutTextTag labels About strings in the memory tracker.
const AboutTextTag = "about_text"

var (
	ErrUnsupportedProgram = errors.New("unsupported program type")
	ErrNotRegularFile     = errors.New("not a regular file")
)

// ProgramEngine stands in for the emulation core when the toolbar runs on its
// own. It validates and records loads, and counts Reset and Debug requests.
type ProgramEngine struct {
	mu        sync.Mutex
	logger    logger.Logger
	tracker   *memtracker.Tracker
	aboutText string
	current   *models.LoadRequest
	resets    int
	debugging bool
}

func NewProgramEngine(log logger.Logger, tracker *memtracker.Tracker) *ProgramEngine {
	return &ProgramEngine{
		logger:    log,
		tracker:   tracker,
		aboutText: AboutMessage,
	}
}

func (e *ProgramEngine) Reset() {
	e.mu.Lock()
	e.resets++
	count := e.resets
	e.mu.Unlock()

	e.logger.Info("ProgramEngine", "system reset", map[string]interface{}{
		"resets": count,
	})
}

// Debug toggles the engine's debug monitor.
func (e *ProgramEngine) Debug() error {
	e.mu.Lock()
	e.debugging = !e.debugging
	enabled := e.debugging
	e.mu.Unlock()

	e.logger.Info("ProgramEngine", "debug monitor toggled", map[string]interface{}{
		"enabled": enabled,
	})
	return nil
}

// About allocates a fresh copy of the About text for the caller to release.
func (e *ProgramEngine) About() *OwnedText {
	e.mu.Lock()
	text := e.aboutText
	e.mu.Unlock()

	if text == "" {
		return nil
	}

	handle := e.tracker.NextHandle()
	e.tracker.TrackAllocation(handle, int64(len(text)), AboutTextTag)
	return NewOwnedText(text, func() {
		e.tracker.TrackDeallocation(handle, AboutTextTag)
	})
}

// SetAboutText replaces the About text; an empty string suppresses the About
// surface.
func (e *ProgramEngine) SetAboutText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aboutText = text
}

// LoadProgram resets the system and records req as the running program.
func (e *ProgramEngine) LoadProgram(ctx context.Context, req models.LoadRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return fmt.Errorf("load %s: %w", req.Path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("load %s: %w", req.Path, ErrNotRegularFile)
	}
	if programs.Detect(req.Path) == programs.ArchNone {
		return fmt.Errorf("load %s: %w", req.Path, ErrUnsupportedProgram)
	}

	e.Reset()

	e.mu.Lock()
	loaded := req
	e.current = &loaded
	e.mu.Unlock()

	e.logger.Info("ProgramEngine", "program loaded", map[string]interface{}{
		"request_id":   req.ID.String(),
		"path":         req.Path,
		"architecture": req.Architecture.String(),
		"size":         info.Size(),
	})
	return nil
}

// Current returns the running program, if any.
func (e *ProgramEngine) Current() (models.LoadRequest, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return models.LoadRequest{}, false
	}
	return *e.current, true
}

// Resets counts Reset requests, including those issued by LoadProgram.
func (e *ProgramEngine) Resets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resets
}

// Debugging reports whether the debug monitor is on.
func (e *ProgramEngine) Debugging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debugging
}
