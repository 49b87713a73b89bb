// Command ietoolbar-capi builds the toolbar as a C library for hosts that
// drive it through create_window/show_window and poll for selected programs:
//
//	go build -buildmode=c-archive -o libietoolbar.a ./cmd/ietoolbar-capi
//
// send_event(kind, path) takes 0 (start the program at path), 1 (reset) or
// 2 (quit) and returns 0 on success, -1 otherwise.
//
// The host must define do_reset, do_debug and do_about. do_about returns a
// malloc'd string (or NULL), which the toolbar frees after displaying it.
package main

/*
#include <stdlib.h>

extern void do_reset(void);
extern void do_debug(void);
extern char* do_about(void);
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"intuition-toolbar/internal/app"
	"intuition-toolbar/internal/capi"
	"intuition-toolbar/internal/config"
	"intuition-toolbar/internal/debug/memtracker"
	"intuition-toolbar/internal/host"
	"intuition-toolbar/internal/logger"
	"intuition-toolbar/internal/toolbar"
)

// cEngine forwards toolbar commands to the host's C callbacks.
type cEngine struct {
	tracker *memtracker.Tracker
}

func (e *cEngine) Reset() { C.do_reset() }

func (e *cEngine) Debug() error {
	C.do_debug()
	return nil
}

func (e *cEngine) About() *host.OwnedText {
	p := C.do_about()
	if p == nil {
		return nil
	}
	text := C.GoString(p)
	handle := uintptr(unsafe.Pointer(p))
	e.tracker.TrackAllocation(handle, int64(len(text)+1), host.AboutTextTag)

	return host.NewOwnedText(text, func() {
		e.tracker.TrackDeallocation(handle, host.AboutTextTag)
		C.free(unsafe.Pointer(p))
	})
}

type cStrings struct{}

func (cStrings) CString(s string) unsafe.Pointer { return unsafe.Pointer(C.CString(s)) }

func (cStrings) Free(p unsafe.Pointer) { C.free(p) }

var surface = capi.NewSurface(cStrings{}, memtracker.NewTracker(nil, false))

func main() {}

//export create_window
func create_window() {
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ietoolbar: configuration: %v\n", err)
		cfg = config.Config{
			Frontend: config.FrontendConfig{Backend: config.BackendFyne, StartDir: "."},
			Poll:     config.PollConfig{Interval: host.DefaultPollInterval},
			Log:      config.LogConfig{Level: "info"},
		}
	}
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ietoolbar: %v\n", err)
	}
	log := logger.New(level, cfg.Log.JSON)
	surface.SetLogger(log)

	err = surface.Create(func() (toolbar.Frontend, error) {
		return app.NewFrontend(cfg.Frontend, toolbar.Options{
			Engine:   &cEngine{tracker: surface.Tracker()},
			Logger:   log,
			StartDir: cfg.Frontend.StartDir,
		})
	}, cfg.Frontend.StartMinimized)
	if err != nil {
		log.Error("CAPI", err, nil)
	}
}

//export show_window
func show_window() {
	if err := surface.Show(); err != nil {
		surface.Logger().Error("CAPI", err, nil)
	}
}

//export close_window
func close_window() {
	if err := surface.Close(); err != nil {
		surface.Logger().Error("CAPI", err, nil)
	}
}

//export get_selected_file
func get_selected_file() *C.char {
	return (*C.char)(surface.SelectedFile())
}

//export get_should_execute
func get_should_execute() C.int {
	return C.int(surface.ShouldExecute())
}

//export set_start_minimized
func set_start_minimized(flag C.int) {
	surface.SetStartMinimized(flag != 0)
}

//export send_event
func send_event(kind C.int, path *C.char) C.int {
	cmd := toolbar.Command{Kind: toolbar.CommandKind(kind)}
	if path != nil {
		cmd.Path = C.GoString(path)
	}
	return C.int(surface.SendCommand(cmd))
}

//export is_visible
func is_visible() C.int {
	return C.int(surface.IsVisible())
}
