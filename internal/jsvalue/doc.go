// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package jsvalue provides helpers for raising errors inside a
// [goja.Runtime] from native Go functions bound into it.
package jsvalue
