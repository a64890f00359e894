// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"io"
	"log/slog"

	"github.com/aibor/innit/internal/exitcode"
)

// ExitHandler is passed to [Run] and called with the first error a [Func]
// returns or nil if all [Func]s ran without error.
type ExitHandler func(err error)

// ExitCodePrinter returns an [ExitHandler] that writes the exit code line for
// the given error into the given writer. Errors that do not carry an exit
// code are logged.
func ExitCodePrinter(writer io.Writer) ExitHandler {
	return func(err error) {
		exitCode, isExitErr := exitcode.From(err)
		if err != nil && !isExitErr {
			slog.Error("init failed", slog.Any("error", err))
		}

		_, _ = exitcode.Fprint(writer, exitCode)
	}
}
