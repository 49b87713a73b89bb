// Package gtkui is the GTK3 toolbar backend, built on gotk3.
package gtkui

import (
	"fmt"

	"intuition-toolbar/internal/toolbar"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

type Frontend struct {
	*toolbar.Core

	opts toolbar.Options

	window  *gtk.Window
	about   *aboutDialog
	disp    *toolbar.Dispatcher
	buttons []*gtk.Button
}

func New(opts toolbar.Options) *Frontend {
	opts = opts.Normalize()
	f := &Frontend{
		Core: toolbar.NewCore("GtkFrontend", opts.Logger),
		opts: opts,
	}
	f.Bind(opts.Engine, f.Close)
	return f
}

// CreateWindow initialises GTK and builds the toolbar. It must run on the
// thread that later calls ShowWindow.
func (f *Frontend) CreateWindow() error {
	return f.Create(func() error {
		if err := gtk.InitCheck(nil); err != nil {
			return fmt.Errorf("gtk init: %w", err)
		}

		layout := f.opts.Layout
		win, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
		win.SetTitle(layout.Title)
		win.SetResizable(false)
		w, h := layout.Size()
		win.SetDefaultSize(w, h)
		win.Connect("destroy", gtk.MainQuit)

		fixed, err := gtk.FixedNew()
		if err != nil {
			return fmt.Errorf("create container: %w", err)
		}
		fixed.SetSizeRequest(w, h)

		f.window = win
		f.about = &aboutDialog{parent: win}
		f.disp = f.opts.NewDispatcherFor(f.Core, &fileChooser{parent: win}, f.about)

		for i, b := range toolbar.Buttons {
			btn, err := gtk.ButtonNewWithLabel(b.String())
			if err != nil {
				return fmt.Errorf("create %s button: %w", b, err)
			}
			btn.SetSizeRequest(layout.ButtonWidth, layout.ButtonHeight)
			btn.Connect("clicked", f.disp.Handler(b))
			x, y := layout.ButtonOrigin(i)
			fixed.Put(btn, x, y)
			f.buttons = append(f.buttons, btn)
		}
		win.Add(fixed)
		return nil
	})
}

// ShowWindow presents the toolbar and runs gtk.Main. A minimized launch
// iconifies before the first map so the window never flashes on screen.
func (f *Frontend) ShowWindow() error {
	return f.Show(func(minimized bool) error {
		if minimized {
			f.window.Iconify()
		}
		f.window.ShowAll()
		gtk.Main()
		return nil
	})
}

// Close asks the GTK loop to quit. Safe from any goroutine.
func (f *Frontend) Close() error {
	glib.IdleAdd(gtk.MainQuit)
	return nil
}

var _ toolbar.Frontend = (*Frontend)(nil)
