package gtkui

import (
	"os"
	"testing"

	"intuition-toolbar/internal/debug/memtracker"
	"intuition-toolbar/internal/host"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/toolbar"

	"github.com/gotk3/gotk3/gtk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogOutcome(t *testing.T) {
	path, err := dialogOutcome(gtk.RESPONSE_ACCEPT, "/roms/game.iex")
	require.NoError(t, err)
	assert.Equal(t, "/roms/game.iex", path)

	_, err = dialogOutcome(gtk.RESPONSE_CANCEL, "/roms/game.iex")
	assert.ErrorIs(t, err, toolbar.ErrDialogCancelled)

	_, err = dialogOutcome(gtk.RESPONSE_DELETE_EVENT, "")
	assert.ErrorIs(t, err, toolbar.ErrDialogCancelled)

	_, err = dialogOutcome(gtk.RESPONSE_ACCEPT, "")
	assert.ErrorIs(t, err, ErrNoFilename)
}

func TestShowBeforeCreate(t *testing.T) {
	f := New(toolbar.Options{})
	assert.ErrorIs(t, f.ShowWindow(), toolbar.ErrNotCreated)
}

func TestCreateWindowBuildsButtons(t *testing.T) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		t.Skip("no display")
	}

	tracker := memtracker.NewTracker(nil, false)
	engine := host.NewProgramEngine(logger.NoOpLogger{}, tracker)
	f := New(toolbar.Options{Engine: engine})
	require.NoError(t, f.CreateWindow())
	t.Cleanup(f.window.Destroy)

	require.Len(t, f.buttons, len(toolbar.Buttons))
	for i, b := range toolbar.Buttons {
		label, err := f.buttons[i].GetLabel()
		require.NoError(t, err)
		assert.Equal(t, b.String(), label)
	}

	f.buttons[1].Clicked()
	assert.Equal(t, 1, engine.Resets())

	f.buttons[3].Clicked()
	f.about.dlg.Hide()
	f.buttons[3].Clicked()
	assert.NotNil(t, f.about.dlg)
	assert.Zero(t, tracker.GetStats().CurrentlyActive)
}
