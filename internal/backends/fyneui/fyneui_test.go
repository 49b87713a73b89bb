package fyneui

import (
	"errors"
	"testing"
	"time"

	"intuition-toolbar/internal/debug/memtracker"
	"intuition-toolbar/internal/host"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/programs"
	"intuition-toolbar/internal/toolbar"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChooser struct {
	paths []string
}

func (s *stubChooser) Choose(_ toolbar.ChooseRequest, done func(string, error)) {
	if len(s.paths) == 0 {
		done("", toolbar.ErrDialogCancelled)
		return
	}
	next := s.paths[0]
	s.paths = s.paths[1:]
	done(next, nil)
}

type fakeTray struct {
	menu *fyne.Menu
}

func (t *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) { t.menu = menu }

// trayApp is a test app that also offers the desktop tray API, as every
// desktop driver does.
type trayApp struct {
	fyne.App
	fakeTray
}

func newTestFrontend(t *testing.T, chooser toolbar.Chooser) (*Frontend, *host.ProgramEngine, *memtracker.Tracker) {
	t.Helper()
	return newTestFrontendWith(t, Config{Chooser: chooser})
}

func newTestFrontendWith(t *testing.T, cfg Config) (*Frontend, *host.ProgramEngine, *memtracker.Tracker) {
	t.Helper()
	if cfg.App == nil {
		cfg.App = test.NewApp()
	}
	t.Cleanup(cfg.App.Quit)

	tracker := memtracker.NewTracker(nil, false)
	engine := host.NewProgramEngine(logger.NoOpLogger{}, tracker)
	f := New(toolbar.Options{Engine: engine}, cfg)
	require.NoError(t, f.CreateWindow())
	return f, engine, tracker
}

func TestWindowHasFourButtonsInOrder(t *testing.T) {
	f, _, _ := newTestFrontend(t, &stubChooser{})

	require.Len(t, f.buttons, 4)
	for _, b := range toolbar.Buttons {
		assert.Equal(t, b.String(), f.buttons[b].Text)
	}
	assert.Equal(t, toolbar.DefaultLayout.Title, f.window.Title())
	assert.True(t, f.window.FixedSize())
	assert.ErrorIs(t, f.CreateWindow(), toolbar.ErrAlreadyCreated)
}

func TestLoadButtonFeedsMailbox(t *testing.T) {
	f, _, _ := newTestFrontend(t, &stubChooser{paths: []string{"game.iex", "demo.ie68"}})

	test.Tap(f.buttons[toolbar.ButtonLoad])
	assert.True(t, f.ShouldExecute())
	path, ok := f.SelectedFile()
	require.True(t, ok)
	assert.Equal(t, "game.iex", path)

	test.Tap(f.buttons[toolbar.ButtonLoad])
	test.Tap(f.buttons[toolbar.ButtonLoad])
	path, _ = f.SelectedFile()
	assert.Equal(t, "demo.ie68", path, "the cancelled third dialog keeps the selection")
	assert.True(t, f.ShouldExecute())
	assert.False(t, f.ShouldExecute())
}

func TestResetAndDebugButtons(t *testing.T) {
	f, engine, _ := newTestFrontend(t, &stubChooser{})

	test.Tap(f.buttons[toolbar.ButtonReset])
	test.Tap(f.buttons[toolbar.ButtonDebug])

	assert.Equal(t, 1, engine.Resets())
	assert.True(t, engine.Debugging())
	assert.False(t, f.ShouldExecute())
}

func TestAboutDialogBuiltOnce(t *testing.T) {
	f, engine, tracker := newTestFrontend(t, &stubChooser{})

	test.Tap(f.buttons[toolbar.ButtonAbout])
	engine.SetAboutText("Intuition Engine\nnightly")
	test.Tap(f.buttons[toolbar.ButtonAbout])

	assert.Equal(t, 1, f.about.builds)
	assert.Equal(t, "Intuition Engine\nnightly", f.about.label.Text)
	assert.Zero(t, tracker.GetStats().CurrentlyActive)
}

func TestPresentNormally(t *testing.T) {
	f, _, _ := newTestFrontend(t, &stubChooser{})
	f.tray = nil

	f.present(false)
	assert.True(t, f.shown)
	assert.False(t, f.parked)
}

func TestPresentMinimizedParksInTray(t *testing.T) {
	a := &trayApp{App: test.NewApp()}
	f, _, _ := newTestFrontendWith(t, Config{App: a, Chooser: &stubChooser{}, Tray: true})
	tray := &a.fakeTray
	require.NotNil(t, f.tray)

	f.present(true)
	assert.True(t, f.parked)
	assert.False(t, f.shown)
	require.NotNil(t, tray.menu)
	require.Len(t, tray.menu.Items, 1)

	tray.menu.Items[0].Action()
	assert.True(t, f.shown)
	assert.False(t, f.parked)
}

func TestPresentMinimizedDesktopAppWithoutTrayKeyShows(t *testing.T) {
	a := &trayApp{App: test.NewApp()}
	f, _, _ := newTestFrontendWith(t, Config{App: a, Chooser: &stubChooser{}})

	f.present(true)
	assert.True(t, f.shown)
	assert.False(t, f.parked)
	assert.Nil(t, a.menu, "no tray menu without the tray setting")
	assert.Nil(t, f.tray)
}

func TestPresentMinimizedWithoutTrayShows(t *testing.T) {
	f, _, _ := newTestFrontend(t, &stubChooser{})
	f.tray = nil

	f.present(true)
	assert.True(t, f.shown)
}

func TestLocalPath(t *testing.T) {
	path, err := localPath(storage.NewFileURI("/tmp/demo.ie86"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/demo.ie86", path)

	remote, err := storage.ParseURI("http://example.com/demo.iex")
	require.NoError(t, err)
	_, err = localPath(remote)
	assert.ErrorIs(t, err, ErrNotLocalFile)

	_, err = localPath(nil)
	assert.ErrorIs(t, err, ErrNotLocalFile)
}

func TestNativeChooserPostsResult(t *testing.T) {
	var got toolbar.ChooseRequest
	c := &nativeChooser{
		open: func(req toolbar.ChooseRequest) (string, error) {
			got = req
			return "", toolbar.ErrDialogCancelled
		},
		post: func(fn func()) { fn() },
	}

	done := make(chan error, 1)
	c.Choose(toolbar.ChooseRequest{Title: toolbar.LoadDialogTitle, Filter: programs.ExecutableFilter},
		func(_ string, err error) { done <- err })

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, toolbar.ErrDialogCancelled))
	case <-time.After(time.Second):
		t.Fatal("native chooser never completed")
	}
	assert.Equal(t, toolbar.LoadDialogTitle, got.Title)
}

func TestNativeChooserRejectsFilesOutsideFilter(t *testing.T) {
	c := &nativeChooser{
		open: func(toolbar.ChooseRequest) (string, error) { return "/tmp/notes.txt", nil },
		post: func(fn func()) { fn() },
	}

	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)
	c.Choose(toolbar.ChooseRequest{Filter: programs.ExecutableFilter},
		func(path string, err error) { done <- result{path, err} })

	select {
	case r := <-done:
		assert.ErrorIs(t, r.err, ErrFilteredOut)
		assert.Empty(t, r.path)
	case <-time.After(time.Second):
		t.Fatal("native chooser never completed")
	}
}
