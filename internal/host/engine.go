// Package host describes what the toolbar consumes from the embedding
// emulation engine and what the engine side runs against the toolbar.
package host

import (
	"errors"
	"sync/atomic"
)

// Engine is the set of entry points the toolbar forwards button clicks to.
// Implementations are owned by the engine and may be called from the GUI
// thread at any time after the window is created.
type Engine interface {
	Reset()
	Debug() error
	// About returns informational text whose ownership passes to the caller,
	// or nil when the engine has nothing to show.
	About() *OwnedText
}

// ErrTextReleased is returned by UseAbout when the engine hands over text
// that was already released.
var ErrTextReleased = errors.New("about text already released")

// OwnedText is a string whose backing storage belongs to whoever holds it.
// The callee allocates; the receiver must call Release exactly once.
type OwnedText struct {
	text     string
	release  func()
	released atomic.Bool
}

// NewOwnedText wraps text with the function that frees its storage.
// release may be nil for storage the garbage collector owns.
func NewOwnedText(text string, release func()) *OwnedText {
	return &OwnedText{text: text, release: release}
}

func (o *OwnedText) String() string {
	return o.text
}

// Release frees the storage. Later calls are no-ops.
func (o *OwnedText) Release() {
	if o.released.Swap(true) {
		return
	}
	if o.release != nil {
		o.release()
	}
}

// Released reports whether Release has run.
func (o *OwnedText) Released() bool {
	return o.released.Load()
}

// UseAbout acquires the engine's About text, hands it to show and releases
// it on every path out, including a failing or panicking show. It reports
// whether there was any text to show.
func UseAbout(engine Engine, show func(text string) error) (bool, error) {
	owned := engine.About()
	if owned == nil {
		return false, nil
	}
	defer owned.Release()

	if owned.Released() {
		return false, ErrTextReleased
	}
	if owned.String() == "" {
		return false, nil
	}
	return true, show(owned.String())
}
