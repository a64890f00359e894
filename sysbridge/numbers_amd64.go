// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import "golang.org/x/sys/unix"

func legacyNumbers() map[string]uintptr {
	return map[string]uintptr{
		"access":  unix.SYS_ACCESS,
		"dup2":    unix.SYS_DUP2,
		"fork":    unix.SYS_FORK,
		"mkdir":   unix.SYS_MKDIR,
		"mknod":   unix.SYS_MKNOD,
		"open":    unix.SYS_OPEN,
		"rmdir":   unix.SYS_RMDIR,
		"symlink": unix.SYS_SYMLINK,
		"unlink":  unix.SYS_UNLINK,
	}
}
