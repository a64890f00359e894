// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package segment

import "errors"

var (
	// ErrEmptyName is returned if a segment without a name is added to a
	// [Registry].
	ErrEmptyName = errors.New("empty segment name")

	// ErrDuplicateSegment is returned if more than one segment with the same
	// name is added to a [Registry].
	ErrDuplicateSegment = errors.New("duplicate segment")
)
