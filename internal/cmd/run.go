// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/aibor/innit/internal/exitcode"
	"github.com/aibor/innit/scripts"
	"github.com/aibor/innit/segment"
	"github.com/aibor/innit/sysinit"
)

const name = "innit"

// IO provides output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

func newRegistry(segmentsPath string) (*segment.Registry, error) {
	if segmentsPath == "" {
		return scripts.Registry() //nolint:wrapcheck
	}

	file, err := os.Open(segmentsPath)
	if err != nil {
		return nil, fmt.Errorf("open segments: %w", err)
	}
	defer file.Close()

	extra, err := segment.FromCPIO(file)
	if err != nil {
		return nil, fmt.Errorf("read segments %s: %w", segmentsPath, err)
	}

	registry, err := scripts.Registry(extra...)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	return registry, nil
}

func newHost(cfg sysinit.Config, argv []string) (*sysinit.Host, error) {
	registry, err := newRegistry(cfg.Segments)
	if err != nil {
		return nil, err
	}

	host, err := sysinit.NewHost(registry, argv)
	if err != nil {
		return nil, fmt.Errorf("new host: %w", err)
	}

	return host, nil
}

// withScript returns a [sysinit.Func] that creates the script host and runs
// the entry module. The host is created only once the system is set up, so
// the segments archive may be located on a mounted file system.
func withScript(ctx context.Context, cfg sysinit.Config, argv []string) sysinit.Func {
	return func(state *sysinit.State) error {
		host, err := newHost(cfg, argv)
		if err != nil {
			return err
		}

		return sysinit.WithScript(ctx, host, cfg.Entry)(state)
	}
}

// runScript runs only the script without any system setup.
func runScript(ctx context.Context, cfg sysinit.Config, argv []string) error {
	host, err := newHost(cfg, argv)
	if err != nil {
		return err
	}

	slog.Debug("Run script", slog.String("entry", cfg.Entry))

	return host.Run(ctx, cfg.Entry) //nolint:wrapcheck
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	if err == nil {
		return 0
	}

	// Exit codes requested by the script are not failures of innit.
	exitCode, isExitErr := exitcode.From(err)
	if !isExitErr {
		slog.Error(err.Error())
	}

	return exitCode
}

// Run is the main entry point for the CLI command.
//
// As PID 1, it sets up the system, runs the script and shuts the system down.
// It does not return in this case. Invalid arguments or config are logged and
// the defaults are used instead, as there is no way to report them otherwise.
//
// If not PID 1, it only runs the script and returns its exit code.
func Run(ctx context.Context, args []string, cfg IO) int {
	log.SetOutput(cfg.Stderr)
	log.SetFlags(log.Lmicroseconds)
	log.SetPrefix("INNIT: ")

	setupLogging(cfg.Stderr, false)

	pidOne := sysinit.IsPidOne()

	flags := newFlags(name, cfg.Stderr)

	if len(args) > 0 {
		args = args[1:]
	}

	err := flags.ParseArgs(args)
	if err != nil {
		if !pidOne {
			return handleParseArgsError(err)
		}

		slog.Error("Invalid arguments, using defaults", slog.Any("error", err))

		flags.cfg = sysinit.DefaultConfig()
	}

	setupLogging(cfg.Stderr, flags.cfg.Debug)

	if !pidOne {
		return handleRunError(runScript(ctx, flags.cfg, flags.ScriptArgs()))
	}

	funcs := append(flags.cfg.Funcs(), withScript(ctx, flags.cfg, flags.ScriptArgs()))

	sysinit.Run(flags.cfg.Shutdown, sysinit.ExitCodePrinter(cfg.Stdout), funcs...)

	return 0
}
