package fyneui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// aboutDialog is built on first use; later shows swap the label text.
type aboutDialog struct {
	window fyne.Window
	dlg    dialog.Dialog
	label  *widget.Label
	builds int
}

func (a *aboutDialog) ShowAbout(title, text string) error {
	if a.dlg == nil {
		a.label = widget.NewLabel(text)
		a.label.Alignment = fyne.TextAlignCenter
		a.dlg = dialog.NewCustom(title, "OK", a.label, a.window)
		a.builds++
	} else {
		a.label.SetText(text)
	}
	a.dlg.Show()
	return nil
}
