// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package segment provides the read-only table of named byte ranges the
// script modules are loaded from.
//
// Segments are collected once at startup, usually from an embedded file
// system and optionally from additional cpio archives, and put into a
// [Registry]. The [Registry] is never mutated after it has been created, so
// it is safe to read from any goroutine.
package segment
