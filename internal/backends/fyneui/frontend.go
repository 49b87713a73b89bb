// Package fyneui is the fyne toolbar backend.
package fyneui

import (
	"intuition-toolbar/internal/toolbar"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config selects fyne specific behaviour.
type Config struct {
	// NativeDialog swaps fyne's file dialog for the platform one.
	NativeDialog bool
	// App overrides the application, mainly for tests.
	App fyne.App
	// Chooser overrides the file dialog entirely.
	Chooser toolbar.Chooser
	// Tray parks a minimized toolbar in the system tray. Desktop drivers
	// always offer a tray API even where no tray is drawn, so this stays
	// opt-in.
	Tray bool
}

// trayHost is the part of desktop.App used to park a minimized toolbar.
type trayHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

type Frontend struct {
	*toolbar.Core

	opts toolbar.Options
	cfg  Config

	app     fyne.App
	window  fyne.Window
	tray    trayHost
	about   *aboutDialog
	disp    *toolbar.Dispatcher
	buttons map[toolbar.Button]*widget.Button

	shown  bool
	parked bool
}

func New(opts toolbar.Options, cfg Config) *Frontend {
	opts = opts.Normalize()
	f := &Frontend{
		Core: toolbar.NewCore("FyneFrontend", opts.Logger),
		opts: opts,
		cfg:  cfg,
	}
	f.Bind(opts.Engine, f.Close)
	return f
}

func (f *Frontend) CreateWindow() error {
	return f.Create(func() error {
		f.app = f.cfg.App
		if f.app == nil {
			f.app = app.NewWithID(f.opts.Layout.AppID)
		}
		if t, ok := f.app.(trayHost); ok && f.cfg.Tray {
			f.tray = t
		}

		f.window = f.app.NewWindow(f.opts.Layout.Title)
		f.window.SetFixedSize(true)
		f.window.SetMaster()

		f.about = &aboutDialog{window: f.window}
		f.disp = f.opts.NewDispatcherFor(f.Core, f.chooser(), f.about)

		f.buttons = make(map[toolbar.Button]*widget.Button, len(toolbar.Buttons))
		row := container.NewHBox()
		for _, b := range toolbar.Buttons {
			btn := widget.NewButton(b.String(), f.disp.Handler(b))
			f.buttons[b] = btn
			row.Add(btn)
		}
		f.window.SetContent(container.NewPadded(row))

		w, h := f.opts.Layout.Size()
		f.window.Resize(fyne.NewSize(float32(w), float32(h)))

		f.opts.Logger.Debug("FyneFrontend", "toolbar built", map[string]interface{}{
			"native_dialog": f.cfg.NativeDialog,
			"width":         w,
			"height":        h,
		})
		return nil
	})
}

func (f *Frontend) chooser() toolbar.Chooser {
	switch {
	case f.cfg.Chooser != nil:
		return f.cfg.Chooser
	case f.cfg.NativeDialog:
		return newNativeChooser()
	default:
		return &dialogChooser{window: f.window}
	}
}

// ShowWindow presents the toolbar and runs the fyne event loop.
func (f *Frontend) ShowWindow() error {
	return f.Show(func(minimized bool) error {
		f.present(minimized)
		f.app.Run()
		return nil
	})
}

// present shows the window, or parks it in the system tray when a minimized
// launch was requested and the tray is enabled. fyne cannot iconify a window,
// so otherwise the window is shown normally.
func (f *Frontend) present(minimized bool) {
	if minimized && f.cfg.Tray && f.tray != nil {
		f.tray.SetSystemTrayMenu(fyne.NewMenu(f.opts.Layout.Title,
			fyne.NewMenuItem("Show Toolbar", f.restore),
		))
		f.parked = true
		return
	}
	if minimized {
		f.opts.Logger.Warning("FyneFrontend", "fyne cannot start a window iconified, starting visible", map[string]interface{}{
			"tray": f.cfg.Tray,
		})
	}
	f.window.Show()
	f.shown = true
}

func (f *Frontend) restore() {
	f.window.Show()
	f.window.RequestFocus()
	f.shown = true
	f.parked = false
}

func (f *Frontend) Close() error {
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}

var _ toolbar.Frontend = (*Frontend)(nil)
