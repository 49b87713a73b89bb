// Package headless is a toolbar backend with no display. It runs the same
// event-loop discipline as the GUI backends, with clicks and dialog answers
// injected programmatically, and backs CI runs and scripted sessions.
package headless

import (
	"errors"
	"sync"
	"sync/atomic"

	"intuition-toolbar/internal/toolbar"
)

var ErrNotRunning = errors.New("headless event loop not running")

// Frontend implements toolbar.Frontend without a window system.
type Frontend struct {
	*toolbar.Core

	opts    toolbar.Options
	disp    *toolbar.Dispatcher
	chooser *Chooser
	about   *AboutPanel

	queue     chan func()
	quit      chan struct{}
	closeOnce sync.Once
	minimized atomic.Bool
	buttons   []string
}

func New(opts toolbar.Options) *Frontend {
	opts = opts.Normalize()
	f := &Frontend{
		Core:  toolbar.NewCore("HeadlessFrontend", opts.Logger),
		opts:  opts,
		queue: make(chan func(), 64),
		quit:  make(chan struct{}),
	}
	f.chooser = &Chooser{post: f.post}
	f.about = &AboutPanel{}
	f.Bind(opts.Engine, f.Close)
	return f
}

func (f *Frontend) CreateWindow() error {
	return f.Create(func() error {
		f.disp = f.opts.NewDispatcherFor(f.Core, f.chooser, f.about)
		for _, b := range toolbar.Buttons {
			f.buttons = append(f.buttons, b.String())
		}
		return nil
	})
}

// ShowWindow runs the event loop until Close.
func (f *Frontend) ShowWindow() error {
	return f.Show(func(minimized bool) error {
		f.minimized.Store(minimized)

		for {
			select {
			case fn := <-f.queue:
				fn()
			case <-f.quit:
				return nil
			}
		}
	})
}

func (f *Frontend) Close() error {
	f.closeOnce.Do(func() { close(f.quit) })
	return nil
}

// Click delivers a button press through the event loop and waits until its
// handler has returned.
func (f *Frontend) Click(b toolbar.Button) error {
	if f.State() != toolbar.StateShown {
		return ErrNotRunning
	}
	return f.post(f.disp.Handler(b))
}

// Minimized reports how the window was presented.
func (f *Frontend) Minimized() bool {
	return f.minimized.Load()
}

// ButtonLabels lists the buttons in layout order.
func (f *Frontend) ButtonLabels() []string {
	return append([]string(nil), f.buttons...)
}

func (f *Frontend) Chooser() *Chooser {
	return f.chooser
}

func (f *Frontend) AboutPanel() *AboutPanel {
	return f.about
}

// post runs fn on the event loop goroutine and waits for it.
func (f *Frontend) post(fn func()) error {
	done := make(chan struct{})
	select {
	case f.queue <- func() { defer close(done); fn() }:
	case <-f.quit:
		return ErrNotRunning
	}
	select {
	case <-done:
		return nil
	case <-f.quit:
		return ErrNotRunning
	}
}

var _ toolbar.Frontend = (*Frontend)(nil)
