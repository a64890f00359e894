// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

const wordSize = int(unsafe.Sizeof(uintptr(0)))

// Allocator provides memory for the copies of system call arguments.
type Allocator interface {
	// Alloc returns a zeroed buffer of the given size.
	Alloc(size int) []byte

	// Free is called exactly once for each buffer returned by Alloc, once it
	// is not used anymore.
	Free(buf []byte)
}

// HeapAllocator allocates on the Go heap. Buffers are pinned while they are
// in use and left to the garbage collector once freed.
type HeapAllocator struct{}

// Alloc implements [Allocator].
func (HeapAllocator) Alloc(size int) []byte {
	return make([]byte, size)
}

// Free implements [Allocator].
func (HeapAllocator) Free([]byte) {}

// arena tracks the memory used by a single system call.
type arena struct {
	allocator Allocator
	owned     [][]byte
	pinner    runtime.Pinner
}

func newArena(allocator Allocator) *arena {
	return &arena{allocator: allocator}
}

// word converts the given argument into a machine word.
func (a *arena) word(arg Arg) (uintptr, error) {
	switch arg := arg.(type) {
	case StringArg:
		return a.cString(string(arg))
	case NumberArg:
		return uintptr(arg), nil
	case VectorArg:
		return a.vector(arg)
	case BufferArg:
		return a.borrow(arg)
	case NullArg, UnsupportedArg, nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidArgument, arg)
	}
}

func (a *arena) alloc(size int) []byte {
	buf := a.allocator.Alloc(size)
	a.owned = append(a.owned, buf)

	return buf
}

func (a *arena) pin(ptr unsafe.Pointer) uintptr {
	a.pinner.Pin(ptr)
	return uintptr(ptr)
}

func (a *arena) cString(str string) (uintptr, error) {
	terminated, err := unix.ByteSliceFromString(str)
	if err != nil {
		return 0, fmt.Errorf("%w: string contains NUL byte", ErrInvalidArgument)
	}

	buf := a.alloc(len(terminated))
	copy(buf, terminated)

	return a.pin(unsafe.Pointer(&buf[0])), nil
}

func (a *arena) vector(strs VectorArg) (uintptr, error) {
	buf := a.alloc((len(strs) + 1) * wordSize)
	ptrs := unsafe.Slice((*uintptr)(unsafe.Pointer(&buf[0])), len(strs)+1)

	for idx, str := range strs {
		ptr, err := a.cString(str)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", idx, err)
		}

		ptrs[idx] = ptr
	}

	ptrs[len(strs)] = 0

	return a.pin(unsafe.Pointer(&buf[0])), nil
}

func (a *arena) borrow(arg BufferArg) (uintptr, error) {
	if arg.Offset < 0 || arg.Offset > len(arg.Data) {
		return 0, fmt.Errorf("%w: offset %d out of range", ErrInvalidArgument, arg.Offset)
	}

	base := unsafe.SliceData(arg.Data)
	if base == nil {
		return 0, nil
	}

	return a.pin(unsafe.Pointer(base)) + uintptr(arg.Offset), nil
}

// release unpins all memory and frees all owned buffers. It is safe to call
// it more than once.
func (a *arena) release() {
	a.pinner.Unpin()

	for _, buf := range a.owned {
		a.allocator.Free(buf)
	}

	a.owned = nil
}
