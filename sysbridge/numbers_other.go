// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !amd64

package sysbridge

func legacyNumbers() map[string]uintptr {
	return nil
}
