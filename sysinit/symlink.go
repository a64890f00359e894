// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
	"os"
)

// DevSymlinks returns a map with well-known symlinks for /dev.
func DevSymlinks() Symlinks {
	return Symlinks{
		"/dev/core":   "/proc/kcore",
		"/dev/fd":     "/proc/self/fd/",
		"/dev/rtc":    "rtc0",
		"/dev/stdin":  "/proc/self/fd/0",
		"/dev/stdout": "/proc/self/fd/1",
		"/dev/stderr": "/proc/self/fd/2",
	}
}

// Symlinks is a collection of symbolic links. Keys are symbolic links to
// create with the value being the target to link to.
type Symlinks map[string]string

// CreateSymlinks creates the given symbolic links. Existing files are left
// untouched, so devtmpfs provided links survive.
//
// This must be run after all file systems have been mounted.
func CreateSymlinks(symlinks Symlinks) error {
	for link, target := range byPath(symlinks) {
		err := os.Symlink(target, link)
		if err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create symlink %s: %w", link, err)
		}
	}

	return nil
}

// WithSymlinks returns a setup [Func] that wraps [CreateSymlinks] and can be
// used with [Run].
func WithSymlinks(symlinks Symlinks) Func {
	return func(_ *State) error {
		return CreateSymlinks(symlinks)
	}
}
