// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrMissingArguments is returned if a script calls syscall without
	// name and number.
	ErrMissingArguments = errors.New("syscall name and number required")

	// ErrInvalidArgument is returned if an argument can not be converted.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgumentError is returned if the argument at Index could not be converted
// into a machine word.
type ArgumentError struct {
	Index int
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %d: %v", e.Index, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Error is returned if a system call failed.
type Error struct {
	// Syscall is the name the call was made with. It is only used for
	// diagnostics.
	Syscall string

	// Number is the system call number.
	Number uintptr

	// Errno is the error code reported by the kernel.
	Errno unix.Errno

	// Args are the arguments the call was made with.
	Args []Arg
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Syscall, e.Errno)
}

func (e *Error) Unwrap() error {
	return e.Errno
}
