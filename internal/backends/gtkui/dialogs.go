package gtkui

import (
	"errors"

	"intuition-toolbar/internal/programs"
	"intuition-toolbar/internal/toolbar"

	"github.com/gotk3/gotk3/gtk"
)

var ErrNoFilename = errors.New("file dialog accepted without a filename")

// fileChooser runs a modal GTK file dialog. Run blocks in a nested main
// loop, so done fires before Choose returns.
type fileChooser struct {
	parent *gtk.Window
}

func (c *fileChooser) Choose(req toolbar.ChooseRequest, done func(string, error)) {
	fc, err := gtk.FileChooserDialogNewWith2Buttons(
		req.Title, c.parent, gtk.FILE_CHOOSER_ACTION_OPEN,
		"_Cancel", gtk.RESPONSE_CANCEL,
		"_Open", gtk.RESPONSE_ACCEPT,
	)
	if err != nil {
		done("", err)
		return
	}
	defer fc.Destroy()

	if req.Dir != "" {
		fc.SetCurrentFolder(req.Dir)
	}
	if filter, err := newFileFilter(req.Filter); err == nil {
		fc.AddFilter(filter)
	}

	resp := fc.Run()
	done(dialogOutcome(resp, fc.GetFilename()))
}

func newFileFilter(f programs.Filter) (*gtk.FileFilter, error) {
	filter, err := gtk.FileFilterNew()
	if err != nil {
		return nil, err
	}
	filter.SetName(f.Description)
	for _, p := range f.Patterns() {
		filter.AddPattern(p)
	}
	return filter, nil
}

// dialogOutcome maps a dialog response to the chooser result.
func dialogOutcome(resp gtk.ResponseType, filename string) (string, error) {
	if resp != gtk.RESPONSE_ACCEPT {
		return "", toolbar.ErrDialogCancelled
	}
	if filename == "" {
		return "", ErrNoFilename
	}
	return filename, nil
}

// aboutDialog is constructed on first show and hidden, not destroyed, when
// dismissed.
type aboutDialog struct {
	parent *gtk.Window
	dlg    *gtk.MessageDialog
}

func (a *aboutDialog) ShowAbout(title, text string) error {
	if a.dlg == nil {
		a.dlg = gtk.MessageDialogNew(a.parent, gtk.DIALOG_DESTROY_WITH_PARENT,
			gtk.MESSAGE_INFO, gtk.BUTTONS_OK, "%s", title)
		if a.dlg == nil {
			return errors.New("about dialog unavailable")
		}
		a.dlg.SetTitle(title)
		a.dlg.Connect("response", func() { a.dlg.Hide() })
		a.dlg.Connect("delete-event", func() bool {
			a.dlg.Hide()
			return true
		})
	}
	a.dlg.FormatSecondaryText("%s", text)
	a.dlg.ShowAll()
	a.dlg.Present()
	return nil
}
