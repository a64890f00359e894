// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"log/slog"

	"golang.org/x/sys/unix"
)

// MaxArgs is the number of argument slots of a system call.
const MaxArgs = 6

// failure is the sentinel result of a failed system call (-1).
const failure = ^uintptr(0)

// RawSyscallFunc executes a system call. It has the signature of
// [unix.Syscall6].
type RawSyscallFunc func(trap, a1, a2, a3, a4, a5, a6 uintptr) (r1, r2 uintptr, err unix.Errno)

var _ RawSyscallFunc = unix.Syscall6

// Option configures a [Bridge].
type Option func(*Bridge)

// WithRawSyscall sets the function used for executing system calls. By
// default, [unix.Syscall6] is used.
func WithRawSyscall(fn RawSyscallFunc) Option {
	return func(b *Bridge) {
		b.raw = fn
	}
}

// WithAllocator sets the [Allocator] for argument copies. By default,
// [HeapAllocator] is used.
func WithAllocator(allocator Allocator) Option {
	return func(b *Bridge) {
		b.allocator = allocator
	}
}

// WithLogger sets the logger. By default, [slog.Default] is used.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// Call describes a single system call.
type Call struct {
	// Name is the name of the system call. It is only used for diagnostics.
	Name string

	// Number is the system call number.
	Number uintptr

	// Args are the arguments. Only the first [MaxArgs] are passed, unused
	// slots are zero.
	Args []Arg
}

// Bridge executes system calls with script provided arguments.
//
// A Bridge is not safe for concurrent use.
type Bridge struct {
	raw       RawSyscallFunc
	allocator Allocator
	logger    *slog.Logger

	errno unix.Errno
}

// New creates a new [Bridge].
func New(opts ...Option) *Bridge {
	bridge := &Bridge{
		raw:       unix.Syscall6,
		allocator: HeapAllocator{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(bridge)
	}

	return bridge
}

// Errno returns the error code of the last failed call.
func (b *Bridge) Errno() unix.Errno {
	return b.errno
}

// Invoke executes the given call.
//
// All arguments are converted before the call is made. If an argument can
// not be converted, an [*ArgumentError] is returned and no call is made. If
// the call returns -1, an [*Error] is returned. All argument copies are
// released before Invoke returns.
func (b *Bridge) Invoke(call Call) (int64, error) {
	mem := newArena(b.allocator)
	defer mem.release()

	var words [MaxArgs]uintptr

	for idx, arg := range call.Args[:min(len(call.Args), MaxArgs)] {
		word, err := mem.word(arg)
		if err != nil {
			return 0, &ArgumentError{Index: idx, Err: err}
		}

		words[idx] = word
	}

	result, _, errno := b.raw(
		call.Number,
		words[0], words[1], words[2], words[3], words[4], words[5],
	)
	if result == failure {
		b.errno = errno

		b.logger.Debug("syscall failed",
			slog.String("name", call.Name),
			slog.Uint64("number", uint64(call.Number)),
			slog.String("errno", errno.Error()),
		)

		return 0, &Error{
			Syscall: call.Name,
			Number:  call.Number,
			Errno:   errno,
			Args:    call.Args,
		}
	}

	return int64(result), nil
}
