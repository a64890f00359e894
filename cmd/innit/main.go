// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Command innit is a minimal init system. It sets up the system and runs a
// boot script that starts and supervises services.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aibor/innit/internal/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	exitCode := cmd.Run(ctx, os.Args, cmd.IO{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	cancel()
	os.Exit(exitCode)
}
