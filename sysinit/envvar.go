// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"os"
)

// EnvVars is a map of environment variable values by name.
type EnvVars map[string]string

// SetEnv sets the given [EnvVars] in the process environment, so scripts and
// the processes they spawn see them.
func SetEnv(envVars EnvVars) error {
	for key, value := range byPath(envVars) {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setenv %s: %w", key, err)
		}
	}

	return nil
}

// WithEnv returns a setup [Func] that wraps [SetEnv] and can be used with
// [Run].
func WithEnv(envVars EnvVars) Func {
	return func(_ *State) error {
		return SetEnv(envVars)
	}
}
