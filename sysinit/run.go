// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"log/slog"
)

// Func is a function run by [Run].
type Func func(*State) error

// Run is the entry point for the init process.
//
// It runs the given functions in the given order, then the [ExitHandler] and
// finally shuts the system down with the given [ShutdownAction]. It never
// returns. It must be run as PID 1, otherwise it panics immediately.
//
// The [Func]s must not terminate the program (e.g. by [os.Exit]). Panics are
// recovered from and reported as [ErrPanic]. Cleanup functions registered
// with [State.Cleanup] run before the [ExitHandler].
//
// A typical setup would be:
//
//	Run(
//		ShutdownPoweroff,
//		ExitCodePrinter(os.Stdout),
//		WithMountPoints(SystemMountPoints()),
//		WithSymlinks(DevSymlinks()),
//		WithInterfaceUp("lo"),
//		WithKernelModules("/lib/modules/*"),
//		WithEnv(EnvVars{"PATH": "/bin"}),
//		WithScript(ctx, host, "src/innit.js"),
//	)
//
// Pay attention to the proper order: symlinks should be created after the
// dependent mounts.
func Run(action ShutdownAction, exitHandler ExitHandler, funcs ...Func) {
	if !IsPidOne() {
		panic(ErrNotPidOne)
	}

	run(exitHandler, funcs)

	if err := Shutdown(action); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}

	// Shutdown only returns on error. Nothing left to do for PID 1, so block
	// until the kernel takes over.
	select {}
}

func run(exitHandler ExitHandler, funcs []Func) {
	state := new(State)

	err := runFuncs(state, funcs)

	state.doCleanup()

	if exitHandler != nil {
		exitHandler(err)
	}
}

func runFuncs(state *State, funcs []Func) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		if recoveredErr, ok := rec.(error); ok {
			err = fmt.Errorf("%w: %w", ErrPanic, recoveredErr)
		} else {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	for _, fn := range funcs {
		if err = fn(state); err != nil {
			return err
		}
	}

	return nil
}
