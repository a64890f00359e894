// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"github.com/aibor/innit/segment"
	"golang.org/x/sys/unix"
)

// Constants returns flag and error values for use with the calls in
// [Numbers]. Some of them differ between architectures.
func Constants() map[string]int64 {
	return map[string]int64{
		"AT_FDCWD":             unix.AT_FDCWD,
		"AT_REMOVEDIR":         unix.AT_REMOVEDIR,
		"O_RDONLY":             unix.O_RDONLY,
		"O_WRONLY":             unix.O_WRONLY,
		"O_RDWR":               unix.O_RDWR,
		"O_CREAT":              unix.O_CREAT,
		"O_TRUNC":              unix.O_TRUNC,
		"O_APPEND":             unix.O_APPEND,
		"O_DIRECTORY":          unix.O_DIRECTORY,
		"O_NOFOLLOW":           unix.O_NOFOLLOW,
		"O_CLOEXEC":            unix.O_CLOEXEC,
		"F_OK":                 0,
		"X_OK":                 1,
		"MS_RDONLY":            unix.MS_RDONLY,
		"MS_NOSUID":            unix.MS_NOSUID,
		"MS_NODEV":             unix.MS_NODEV,
		"MS_NOEXEC":            unix.MS_NOEXEC,
		"MS_NOATIME":           unix.MS_NOATIME,
		"MS_RELATIME":          unix.MS_RELATIME,
		"MS_REMOUNT":           unix.MS_REMOUNT,
		"MS_BIND":              unix.MS_BIND,
		"MS_REC":               unix.MS_REC,
		"S_IFCHR":              unix.S_IFCHR,
		"S_IFDIR":              unix.S_IFDIR,
		"WNOHANG":              unix.WNOHANG,
		"SIGTERM":              int64(unix.SIGTERM),
		"SIGKILL":              int64(unix.SIGKILL),
		"ENOENT":               int64(unix.ENOENT),
		"EINTR":                int64(unix.EINTR),
		"EBADF":                int64(unix.EBADF),
		"ECHILD":               int64(unix.ECHILD),
		"EBUSY":                int64(unix.EBUSY),
		"EEXIST":               int64(unix.EEXIST),
		"ENOTDIR":              int64(unix.ENOTDIR),
		"EINVAL":               int64(unix.EINVAL),
		"LINUX_REBOOT_MAGIC1":  unix.LINUX_REBOOT_MAGIC1,
		"LINUX_REBOOT_MAGIC2":  unix.LINUX_REBOOT_MAGIC2,
		"REBOOT_CMD_RESTART":   unix.LINUX_REBOOT_CMD_RESTART,
		"REBOOT_CMD_POWER_OFF": unix.LINUX_REBOOT_CMD_POWER_OFF,
	}
}

// ConstantsSegment returns a segment with a module that exports the table
// returned by [Constants].
func ConstantsSegment(name string) segment.Segment {
	return exportsSegment(name, Constants())
}
