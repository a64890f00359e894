// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"fmt"
	"os"
)

// Spawn starts the executable at path with the given argument vector and
// environment and returns the process ID of the new process.
//
// The child inherits stdin, stdout and stderr. The process is not waited for.
// The caller is responsible to reap it with wait4(2).
func Spawn(path string, argv, env []string) (int, error) {
	if len(argv) == 0 {
		argv = []string{path}
	}

	proc, err := os.StartProcess(path, argv, &os.ProcAttr{
		Env:   env,
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})
	if err != nil {
		return 0, fmt.Errorf("start process: %w", err)
	}

	pid := proc.Pid

	// Only drops the handle. The child is reaped by the caller.
	if err := proc.Release(); err != nil {
		return pid, fmt.Errorf("release process: %w", err)
	}

	return pid, nil
}
