// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scripts bundles the init scripts run by innit.
package scripts

import (
	"embed"
	"fmt"

	"github.com/aibor/innit/segment"
	"github.com/aibor/innit/sysbridge"
)

// Entry is the name of the module that boots the system.
const Entry = "src/innit.js"

// Names of the generated modules.
const (
	NumbersName   = "src/syscall_nums.js"
	ConstantsName = "src/syscall_consts.js"
)

//go:embed src
var sources embed.FS

// Segments returns the bundled scripts and the generated system call tables
// for the running architecture.
func Segments() ([]segment.Segment, error) {
	segments, err := segment.FromFS(sources, "src")
	if err != nil {
		return nil, fmt.Errorf("bundled scripts: %w", err)
	}

	return append(segments,
		sysbridge.NumbersSegment(NumbersName),
		sysbridge.ConstantsSegment(ConstantsName),
	), nil
}

// Registry returns a registry with the bundled segments and the given
// additional ones. Additional segments must not use the bundled names.
func Registry(extra ...segment.Segment) (*segment.Registry, error) {
	segments, err := Segments()
	if err != nil {
		return nil, err
	}

	return segment.NewRegistry(append(segments, extra...)...) //nolint:wrapcheck
}
