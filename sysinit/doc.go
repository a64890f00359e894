// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sysinit provides the init system side of innit.
//
// [Run] is the entry point of the init process. It runs setup [Func]s, like
// mounting file systems or loading kernel modules, then the script [Host]
// and finally shuts the system down.
package sysinit
