package fyneui

import (
	"errors"
	"fmt"

	"intuition-toolbar/internal/toolbar"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	native "github.com/sqweek/dialog"
)

var (
	// ErrNotLocalFile is reported when the picked URI has no filesystem path.
	ErrNotLocalFile = errors.New("selected item is not a local file")
	// ErrFilteredOut is reported when a platform dialog lets through a file
	// outside the requested filter.
	ErrFilteredOut = errors.New("selected file is not an accepted program")
)

// dialogChooser uses fyne's own file dialog. It is asynchronous: Choose
// returns at once and the callback fires later on the app goroutine.
type dialogChooser struct {
	window fyne.Window
}

func (c *dialogChooser) Choose(req toolbar.ChooseRequest, done func(string, error)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			done("", err)
			return
		}
		if reader == nil {
			done("", toolbar.ErrDialogCancelled)
			return
		}
		path, perr := localPath(reader.URI())
		reader.Close()
		done(path, perr)
	}, c.window)

	fd.SetFilter(storage.NewExtensionFileFilter(req.Filter.DottedExtensions()))
	if req.Dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(req.Dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Resize(fyne.NewSize(640, 480))
	fd.Show()
}

func localPath(uri fyne.URI) (string, error) {
	if uri == nil || uri.Scheme() != "file" || uri.Path() == "" {
		return "", ErrNotLocalFile
	}
	return uri.Path(), nil
}

// nativeChooser opens the platform's own file dialog. The dialog blocks, so
// it runs off the app goroutine and posts the result back with fyne.Do.
type nativeChooser struct {
	open func(req toolbar.ChooseRequest) (string, error)
	post func(func())
}

func newNativeChooser() *nativeChooser {
	return &nativeChooser{open: openNative, post: fyne.Do}
}

func (c *nativeChooser) Choose(req toolbar.ChooseRequest, done func(string, error)) {
	go func() {
		path, err := c.open(req)
		if err == nil && path != "" && !req.Filter.Matches(path) {
			path, err = "", fmt.Errorf("%w: %s", ErrFilteredOut, path)
		}
		c.post(func() { done(path, err) })
	}()
}

func openNative(req toolbar.ChooseRequest) (string, error) {
	builder := native.File().
		Title(req.Title).
		Filter(req.Filter.Description, req.Filter.Extensions...)
	if req.Dir != "" {
		builder = builder.SetStartDir(req.Dir)
	}

	path, err := builder.Load()
	if errors.Is(err, native.ErrCancelled) {
		return "", toolbar.ErrDialogCancelled
	}
	return path, err
}
