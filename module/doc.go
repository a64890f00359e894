// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package module implements CommonJS style module loading for scripts whose
// sources are [segment.Segment]s.
//
// Each module source is wrapped into a function taking the parameters
// (module, exports, require). The module body may add properties to exports
// or replace module.exports entirely. The final value of module.exports is
// what require returns.
//
// A module body runs at most once. The cache entry of a module is created
// with the initial exports object before its body runs, so a circular require
// returns the exports as far as they are populated at that moment instead of
// recursing.
//
// If a module body throws, the exception is passed on to the caller of
// require unchanged. The cache entry keeps pointing to the initial exports
// object and the module is not loaded again.
package module
