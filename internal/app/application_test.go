package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"intuition-toolbar/internal/backends/fyneui"
	"intuition-toolbar/internal/backends/gtkui"
	"intuition-toolbar/internal/backends/headless"
	"intuition-toolbar/internal/config"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/programs"
	"intuition-toolbar/internal/toolbar"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessConfig(dir string) config.Config {
	return config.Config{
		Frontend: config.FrontendConfig{Backend: config.BackendHeadless, StartDir: dir},
		Poll:     config.PollConfig{Interval: time.Millisecond},
		Log:      config.LogConfig{Level: "debug"},
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
		return nil
	}
}

func TestNewFrontendSelectsBackend(t *testing.T) {
	opts := toolbar.Options{}

	fe, err := NewFrontend(config.FrontendConfig{Backend: config.BackendHeadless}, opts)
	require.NoError(t, err)
	assert.IsType(t, &headless.Frontend{}, fe)

	fe, err = NewFrontend(config.FrontendConfig{Backend: config.BackendFyne}, opts)
	require.NoError(t, err)
	assert.IsType(t, &fyneui.Frontend{}, fe)

	fe, err = NewFrontend(config.FrontendConfig{Backend: config.BackendGTK}, opts)
	require.NoError(t, err)
	assert.IsType(t, &gtkui.Frontend{}, fe)

	_, err = NewFrontend(config.FrontendConfig{Backend: "motif"}, opts)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestNewApplicationRejectsInvalidConfig(t *testing.T) {
	cfg := headlessConfig(".")
	cfg.Poll.Interval = 0

	_, err := NewApplication(cfg, logger.NoOpLogger{})
	assert.ErrorIs(t, err, config.ErrInvalidInterval)
}

func TestRunLoadsSelectedProgram(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "demo.ie68")
	require.NoError(t, os.WriteFile(prog, []byte{0x4e, 0x71}, 0o644))

	cfg := headlessConfig(dir)
	cfg.Frontend.StartMinimized = true
	a, err := NewApplication(cfg, logger.NoOpLogger{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	fe := a.Frontend().(*headless.Frontend)
	require.Eventually(t, func() bool { return fe.State() == toolbar.StateShown }, time.Second, time.Millisecond)
	assert.True(t, fe.Minimized())

	fe.Chooser().Queue(prog)
	require.NoError(t, fe.Click(toolbar.ButtonLoad))
	require.NoError(t, fe.Click(toolbar.ButtonAbout))
	require.NoError(t, fe.Click(toolbar.ButtonAbout))

	require.Eventually(t, func() bool {
		cur, ok := a.Engine().Current()
		return ok && cur.Path == prog
	}, time.Second, time.Millisecond)
	cur, _ := a.Engine().Current()
	assert.Equal(t, programs.ArchM68K, cur.Architecture)
	assert.Equal(t, 1, a.Engine().Resets(), "loading resets the machine")

	a.Stop()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	assert.Len(t, a.Timings().GetTimings("load_program"), 1)

	stats := a.Tracker().GetStats()
	assert.Equal(t, int64(2), stats.AllocationCount)
	assert.Zero(t, stats.CurrentlyActive)
}

func TestRunFailsWhenCreatedTwice(t *testing.T) {
	a, err := NewApplication(headlessConfig(t.TempDir()), nil)
	require.NoError(t, err)
	require.NoError(t, a.Frontend().CreateWindow())

	err = a.Run()
	assert.ErrorIs(t, err, toolbar.ErrAlreadyCreated)
}

func TestRunLoadsProgramArgumentMinimized(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "boot.ie65")
	require.NoError(t, os.WriteFile(prog, []byte{0xea}, 0o644))

	a, err := NewApplication(headlessConfig(dir), logger.NoOpLogger{})
	require.NoError(t, err)
	a.LoadAtStart(prog)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	fe := a.Frontend().(*headless.Frontend)
	require.Eventually(t, func() bool { return fe.State() == toolbar.StateShown }, time.Second, time.Millisecond)
	assert.True(t, fe.Minimized(), "a program argument starts the toolbar minimized")

	cur, ok := a.Engine().Current()
	require.True(t, ok)
	assert.Equal(t, prog, cur.Path)
	assert.Equal(t, programs.Arch6502, cur.Architecture)
	assert.Equal(t, 1, a.Engine().Resets())
	assert.False(t, fe.ShouldExecute(), "the argument bypasses the toolbar mailbox")

	a.Stop()
	require.NoError(t, waitRun(t, done))
	assert.Len(t, a.Timings().GetTimings("load_program"), 1)
}

func TestRunFailsOnMissingProgramArgument(t *testing.T) {
	dir := t.TempDir()
	a, err := NewApplication(headlessConfig(dir), logger.NoOpLogger{})
	require.NoError(t, err)
	a.LoadAtStart(filepath.Join(dir, "absent.iex"))

	err = a.Run()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, toolbar.StateCreated, a.Frontend().(*headless.Frontend).State(), "the window is never shown")
}

func TestShutdownReportsLastLoadFailure(t *testing.T) {
	out := &syncBuffer{}
	dir := t.TempDir()
	a, err := NewApplication(headlessConfig(dir), logger.NewZerolog(out, zerolog.DebugLevel))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	fe := a.Frontend().(*headless.Frontend)
	require.Eventually(t, fe.IsVisible, time.Second, time.Millisecond)

	require.NoError(t, fe.SendCommand(toolbar.Command{Kind: toolbar.CommandStart, Path: filepath.Join(dir, "gone.ie68")}))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "no such file") },
		time.Second, time.Millisecond)

	require.NoError(t, fe.SendCommand(toolbar.Command{Kind: toolbar.CommandQuit}))
	require.NoError(t, waitRun(t, done))

	logged := out.String()
	assert.Contains(t, logged, "last program load failed")
	assert.Contains(t, logged, "allocation summary")
	_, ok := a.Engine().Current()
	assert.False(t, ok)
}
