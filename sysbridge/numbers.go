// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aibor/innit/segment"
	"golang.org/x/sys/unix"
)

// Numbers returns the system call numbers by name for the running
// architecture.
//
// It contains the calls available on all architectures. The legacy calls
// that newer architectures only provide as *at variants, like open or
// mkdir, are only present where the kernel has them.
func Numbers() map[string]uintptr {
	numbers := map[string]uintptr{
		"chdir":         unix.SYS_CHDIR,
		"chroot":        unix.SYS_CHROOT,
		"clock_gettime": unix.SYS_CLOCK_GETTIME,
		"close":         unix.SYS_CLOSE,
		"dup3":          unix.SYS_DUP3,
		"execve":        unix.SYS_EXECVE,
		"exit":          unix.SYS_EXIT,
		"exit_group":    unix.SYS_EXIT_GROUP,
		"faccessat":     unix.SYS_FACCESSAT,
		"fchmodat":      unix.SYS_FCHMODAT,
		"fchownat":      unix.SYS_FCHOWNAT,
		"finit_module":  unix.SYS_FINIT_MODULE,
		"fsync":         unix.SYS_FSYNC,
		"getdents64":    unix.SYS_GETDENTS64,
		"getpid":        unix.SYS_GETPID,
		"getppid":       unix.SYS_GETPPID,
		"ioctl":         unix.SYS_IOCTL,
		"kill":          unix.SYS_KILL,
		"mkdirat":       unix.SYS_MKDIRAT,
		"mknodat":       unix.SYS_MKNODAT,
		"mount":         unix.SYS_MOUNT,
		"nanosleep":     unix.SYS_NANOSLEEP,
		"openat":        unix.SYS_OPENAT,
		"pipe2":         unix.SYS_PIPE2,
		"pivot_root":    unix.SYS_PIVOT_ROOT,
		"read":          unix.SYS_READ,
		"reboot":        unix.SYS_REBOOT,
		"sethostname":   unix.SYS_SETHOSTNAME,
		"setsid":        unix.SYS_SETSID,
		"symlinkat":     unix.SYS_SYMLINKAT,
		"sync":          unix.SYS_SYNC,
		"umask":         unix.SYS_UMASK,
		"umount2":       unix.SYS_UMOUNT2,
		"uname":         unix.SYS_UNAME,
		"unlinkat":      unix.SYS_UNLINKAT,
		"wait4":         unix.SYS_WAIT4,
		"write":         unix.SYS_WRITE,
	}

	maps.Copy(numbers, legacyNumbers())

	return numbers
}

// NumbersSegment returns a segment with a module that exports the table
// returned by [Numbers].
func NumbersSegment(name string) segment.Segment {
	return exportsSegment(name, Numbers())
}

// exportsSegment renders the given table as module exporting one number
// property per entry.
func exportsSegment[V uintptr | int64](name string, table map[string]V) segment.Segment {
	var src strings.Builder

	src.WriteString("module.exports = {\n")

	for _, key := range slices.Sorted(maps.Keys(table)) {
		fmt.Fprintf(&src, "  %q: %d,\n", key, table[key])
	}

	src.WriteString("};\n")

	return segment.Segment{
		Name: name,
		Data: []byte(src.String()),
	}
}
