// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the entry point of the innit command. It handles flag
// parsing, config loading, and error handling.
package cmd
