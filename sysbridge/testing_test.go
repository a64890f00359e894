// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge_test

import (
	"unsafe"

	"github.com/aibor/innit/sysbridge"
	"golang.org/x/sys/unix"
)

// pointer converts an address back into a pointer without being subject to
// checkptr instrumentation.
func pointer(addr uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

func readCString(addr uintptr) string {
	var buf []byte

	for ptr := pointer(addr); *(*byte)(ptr) != 0; ptr = unsafe.Add(ptr, 1) {
		buf = append(buf, *(*byte)(ptr))
	}

	return string(buf)
}

func readVector(addr uintptr) []string {
	var strs []string

	for ptr := pointer(addr); *(*uintptr)(ptr) != 0; ptr = unsafe.Add(ptr, unsafe.Sizeof(uintptr(0))) {
		strs = append(strs, readCString(*(*uintptr)(ptr)))
	}

	return strs
}

func addressOf(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
}

type countingAllocator struct {
	allocs int
	frees  int
	live   map[uintptr]int
}

func newCountingAllocator() *countingAllocator {
	return &countingAllocator{live: map[uintptr]int{}}
}

func (a *countingAllocator) Alloc(size int) []byte {
	buf := make([]byte, size)
	a.allocs++
	a.live[addressOf(buf)]++

	return buf
}

func (a *countingAllocator) Free(buf []byte) {
	a.frees++
	a.live[addressOf(buf)]--
}

// doubleFrees returns the number of buffers freed more than once.
func (a *countingAllocator) doubleFrees() int {
	var count int

	for _, refs := range a.live {
		if refs < 0 {
			count++
		}
	}

	return count
}

type recordedCall struct {
	trap  uintptr
	words [sysbridge.MaxArgs]uintptr
}

// recorder is a fake raw syscall that records the calls and returns the
// configured result. The inspect function is called during the call, while
// the argument memory is still valid.
type recorder struct {
	calls   []recordedCall
	result  uintptr
	errno   unix.Errno
	inspect func(words [sysbridge.MaxArgs]uintptr)
}

func (r *recorder) syscall(trap, a1, a2, a3, a4, a5, a6 uintptr) (uintptr, uintptr, unix.Errno) {
	words := [sysbridge.MaxArgs]uintptr{a1, a2, a3, a4, a5, a6}
	r.calls = append(r.calls, recordedCall{trap: trap, words: words})

	if r.inspect != nil {
		r.inspect(words)
	}

	return r.result, 0, r.errno
}
