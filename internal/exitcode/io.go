// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode

import (
	"fmt"
	"io"
)

// Identifier prefixes the exit code line written to the console, so a
// supervising host can pick it up from the guest output.
const Identifier = "INNIT_EXIT_CODE"

const format = Identifier + ": %d\n"

// Fprint writes the exit code line for the given code into w.
func Fprint(w io.Writer, exitCode int) (int, error) {
	return fmt.Fprintf(w, format, exitCode) //nolint:wrapcheck
}
