package main

import (
	"fmt"
	"os"
	"runtime"

	"intuition-toolbar/internal/app"
	"intuition-toolbar/internal/config"
	"intuition-toolbar/internal/logger"

	"github.com/spf13/pflag"
)

// Both toolkits must run on the process main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	fs := pflag.NewFlagSet("ietoolbar", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: ietoolbar [flags] [program]")
		os.Exit(2)
	}
	if *showVersion {
		fmt.Printf("%s %s\n", app.AppName, app.AppVersion)
		return
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(2)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(level, cfg.Log.JSON)

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}

	if program := fs.Arg(0); program != "" {
		application.LoadAtStart(program)
	}

	if err := application.Run(); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}
