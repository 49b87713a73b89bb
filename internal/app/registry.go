package app

import (
	"fmt"

	"intuition-toolbar/internal/backends/fyneui"
	"intuition-toolbar/internal/backends/gtkui"
	"intuition-toolbar/internal/backends/headless"
	"intuition-toolbar/internal/config"
	"intuition-toolbar/internal/toolbar"
)

// NewFrontend picks the toolbar backend named in cfg.
func NewFrontend(cfg config.FrontendConfig, opts toolbar.Options) (toolbar.Frontend, error) {
	switch cfg.Backend {
	case config.BackendFyne:
		return fyneui.New(opts, fyneui.Config{NativeDialog: cfg.NativeDialog, Tray: cfg.Tray}), nil
	case config.BackendGTK:
		return gtkui.New(opts), nil
	case config.BackendHeadless:
		return headless.New(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
