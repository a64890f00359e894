// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge_test

import (
	"testing"

	"github.com/aibor/innit/sysbridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestBridge_Invoke(t *testing.T) {
	buffer := []byte("0123456789")

	tests := []struct {
		name    string
		args    []sysbridge.Arg
		inspect func(t *testing.T, words [sysbridge.MaxArgs]uintptr)
		allocs  int
	}{
		{
			name: "numbers",
			args: []sysbridge.Arg{
				sysbridge.NumberArg(1),
				sysbridge.NumberArg(-100),
				sysbridge.NumberArg(0o755),
			},
			inspect: func(t *testing.T, words [sysbridge.MaxArgs]uintptr) {
				t.Helper()
				assert.Equal(t, [sysbridge.MaxArgs]uintptr{1, ^uintptr(99), 0o755}, words)
			},
		},
		{
			name: "string",
			args: []sysbridge.Arg{sysbridge.StringArg("/proc")},
			inspect: func(t *testing.T, words [sysbridge.MaxArgs]uintptr) {
				t.Helper()
				assert.Equal(t, "/proc", readCString(words[0]))
			},
			allocs: 1,
		},
		{
			name: "empty string",
			args: []sysbridge.Arg{sysbridge.StringArg("")},
			inspect: func(t *testing.T, words [sysbridge.MaxArgs]uintptr) {
				t.Helper()
				assert.NotZero(t, words[0])
				assert.Empty(t, readCString(words[0]))
			},
			allocs: 1,
		},
		{
			name: "vector",
			args: []sysbridge.Arg{
				sysbridge.StringArg("/bin/sh"),
				sysbridge.VectorArg{"sh", "-c", "true"},
				sysbridge.VectorArg{},
			},
			inspect: func(t *testing.T, words [sysbridge.MaxArgs]uintptr) {
				t.Helper()
				assert.Equal(t, []string{"sh", "-c", "true"}, readVector(words[1]))
				assert.Empty(t, readVector(words[2]))
			},
			allocs: 1 + 4 + 1,
		},
		{
			name: "buffer with offset",
			args: []sysbridge.Arg{
				sysbridge.BufferArg{Data: buffer},
				sysbridge.BufferArg{Data: buffer, Offset: 4},
			},
			inspect: func(t *testing.T, words [sysbridge.MaxArgs]uintptr) {
				t.Helper()
				assert.Equal(t, addressOf(buffer), words[0])
				assert.Equal(t, addressOf(buffer)+4, words[1])
			},
		},
		{
			name: "null and unsupported",
			args: []sysbridge.Arg{
				sysbridge.NumberArg(7),
				sysbridge.NullArg{},
				sysbridge.UnsupportedArg{Type: "bool"},
				sysbridge.BufferArg{},
			},
			inspect: func(t *testing.T, words [sysbridge.MaxArgs]uintptr) {
				t.Helper()
				assert.Equal(t, [sysbridge.MaxArgs]uintptr{7}, words)
			},
		},
		{
			name: "extra arguments ignored",
			args: []sysbridge.Arg{
				sysbridge.NumberArg(1),
				sysbridge.NumberArg(2),
				sysbridge.NumberArg(3),
				sysbridge.NumberArg(4),
				sysbridge.NumberArg(5),
				sysbridge.NumberArg(6),
				sysbridge.StringArg("seven"),
			},
			inspect: func(t *testing.T, words [sysbridge.MaxArgs]uintptr) {
				t.Helper()
				assert.Equal(t, [sysbridge.MaxArgs]uintptr{1, 2, 3, 4, 5, 6}, words)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocator := newCountingAllocator()
			raw := &recorder{
				result: 42,
				inspect: func(words [sysbridge.MaxArgs]uintptr) {
					tt.inspect(t, words)
				},
			}

			bridge := sysbridge.New(
				sysbridge.WithRawSyscall(raw.syscall),
				sysbridge.WithAllocator(allocator),
			)

			result, err := bridge.Invoke(sysbridge.Call{
				Name:   "test",
				Number: 1234,
				Args:   tt.args,
			})
			require.NoError(t, err)

			assert.Equal(t, int64(42), result)
			require.Len(t, raw.calls, 1)
			assert.Equal(t, uintptr(1234), raw.calls[0].trap)
			assert.Equal(t, tt.allocs, allocator.allocs, "allocs")
			assert.Equal(t, tt.allocs, allocator.frees, "frees")
			assert.Zero(t, allocator.doubleFrees())
		})
	}
}

func TestBridge_Invoke_Failure(t *testing.T) {
	allocator := newCountingAllocator()
	raw := &recorder{result: ^uintptr(0), errno: unix.EBADF}
	bridge := sysbridge.New(
		sysbridge.WithRawSyscall(raw.syscall),
		sysbridge.WithAllocator(allocator),
	)

	args := []sysbridge.Arg{
		sysbridge.NumberArg(-1),
		sysbridge.StringArg("hi"),
		sysbridge.NumberArg(2),
	}

	_, err := bridge.Invoke(sysbridge.Call{
		Name:   "write",
		Number: unix.SYS_WRITE,
		Args:   args,
	})
	require.ErrorIs(t, err, unix.EBADF)

	var sysErr *sysbridge.Error
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, "write", sysErr.Syscall)
	assert.Equal(t, uintptr(unix.SYS_WRITE), sysErr.Number)
	assert.Equal(t, args, sysErr.Args)
	assert.Equal(t, "write: bad file descriptor", sysErr.Error())

	assert.Equal(t, unix.EBADF, bridge.Errno())
	assert.Equal(t, 1, allocator.allocs)
	assert.Equal(t, 1, allocator.frees)
}

func TestBridge_Invoke_ErrnoKeptOnSuccess(t *testing.T) {
	raw := &recorder{result: ^uintptr(0), errno: unix.ENOENT}
	bridge := sysbridge.New(sysbridge.WithRawSyscall(raw.syscall))

	_, err := bridge.Invoke(sysbridge.Call{Name: "open"})
	require.Error(t, err)

	raw.result = 0
	raw.errno = 0

	_, err = bridge.Invoke(sysbridge.Call{Name: "close"})
	require.NoError(t, err)

	assert.Equal(t, unix.ENOENT, bridge.Errno())
}

func TestBridge_Invoke_InvalidArgument(t *testing.T) {
	tests := []struct {
		name   string
		args   []sysbridge.Arg
		index  int
		allocs int
	}{
		{
			name:  "string with NUL",
			args:  []sysbridge.Arg{sysbridge.StringArg("a\x00b")},
			index: 0,
		},
		{
			name: "after conversions",
			args: []sysbridge.Arg{
				sysbridge.StringArg("ok"),
				sysbridge.VectorArg{"fine"},
				sysbridge.StringArg("bad\x00"),
			},
			index:  2,
			allocs: 3,
		},
		{
			name: "vector element with NUL",
			args: []sysbridge.Arg{
				sysbridge.VectorArg{"a", "b\x00"},
			},
			index:  0,
			allocs: 2,
		},
		{
			name: "buffer offset out of range",
			args: []sysbridge.Arg{
				sysbridge.StringArg("ok"),
				sysbridge.BufferArg{Data: make([]byte, 4), Offset: 5},
			},
			index:  1,
			allocs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocator := newCountingAllocator()
			raw := &recorder{}
			bridge := sysbridge.New(
				sysbridge.WithRawSyscall(raw.syscall),
				sysbridge.WithAllocator(allocator),
			)

			_, err := bridge.Invoke(sysbridge.Call{Name: "test", Args: tt.args})
			require.ErrorIs(t, err, sysbridge.ErrInvalidArgument)

			var argErr *sysbridge.ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.index, argErr.Index)

			assert.Empty(t, raw.calls, "no call must be made")
			assert.Equal(t, tt.allocs, allocator.allocs, "allocs")
			assert.Equal(t, tt.allocs, allocator.frees, "frees")
		})
	}
}

func TestBridge_Invoke_Kernel(t *testing.T) {
	bridge := sysbridge.New()

	t.Run("write to pipe", func(t *testing.T) {
		var fds [2]int
		require.NoError(t, unix.Pipe2(fds[:], unix.O_CLOEXEC))

		t.Cleanup(func() {
			_ = unix.Close(fds[0])
			_ = unix.Close(fds[1])
		})

		result, err := bridge.Invoke(sysbridge.Call{
			Name:   "write",
			Number: unix.SYS_WRITE,
			Args: []sysbridge.Arg{
				sysbridge.NumberArg(fds[1]),
				sysbridge.BufferArg{Data: []byte("hi")},
				sysbridge.NumberArg(2),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result)

		buf := make([]byte, 8)
		n, err := unix.Read(fds[0], buf)
		require.NoError(t, err)
		assert.Equal(t, "hi", string(buf[:n]))
	})

	t.Run("bad file descriptor", func(t *testing.T) {
		_, err := bridge.Invoke(sysbridge.Call{
			Name:   "write",
			Number: unix.SYS_WRITE,
			Args: []sysbridge.Arg{
				sysbridge.NumberArg(-1),
				sysbridge.StringArg("hi"),
				sysbridge.NumberArg(2),
			},
		})
		require.ErrorIs(t, err, unix.EBADF)
		assert.Equal(t, unix.EBADF, bridge.Errno())
	})

	t.Run("string argument", func(t *testing.T) {
		_, err := bridge.Invoke(sysbridge.Call{
			Name:   "faccessat",
			Number: unix.SYS_FACCESSAT,
			Args: []sysbridge.Arg{
				sysbridge.NumberArg(unix.AT_FDCWD),
				sysbridge.StringArg("/nonexistent/innit"),
				sysbridge.NumberArg(0),
				sysbridge.NumberArg(0),
			},
		})
		require.ErrorIs(t, err, unix.ENOENT)
	})
}
