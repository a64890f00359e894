// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"log/slog"
	"slices"
)

// CleanupFunc is run by [Run] after all [Func]s ran.
type CleanupFunc func() error

// State is shared by the [Func]s of a single [Run].
type State struct {
	cleanupFns []CleanupFunc
}

// Cleanup registers a function that is run after all [Func]s ran, even if
// one of them failed. Cleanup functions are run in reverse order.
func (s *State) Cleanup(fn CleanupFunc) {
	s.cleanupFns = append(s.cleanupFns, fn)
}

func (s *State) doCleanup() {
	slices.Reverse(s.cleanupFns)

	for _, fn := range s.cleanupFns {
		if err := fn(); err != nil {
			slog.Error("cleanup failed", slog.Any("error", err))
		}
	}

	s.cleanupFns = nil
}
