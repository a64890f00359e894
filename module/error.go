// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package module

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned if there is no source for a module name.
var ErrNotFound = errors.New("module not found")

// NotFoundError is returned by [Loader.Require] if there is no segment for
// the requested module name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Name)
}

func (*NotFoundError) Is(other error) bool {
	return other == ErrNotFound
}
