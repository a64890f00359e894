// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"errors"
	"fmt"

	"github.com/aibor/innit/internal/jsvalue"
	"github.com/dop251/goja"
	"golang.org/x/sys/unix"
)

// ErrorName is the name property of errors thrown for failed system calls.
const ErrorName = "SyscallError"

// Func returns the syscall function for use in scripts:
//
//	syscall(name, number, ...args)
//
// It returns the result of the call as number. Failed calls throw an Error
// with name "SyscallError" and the properties errno, syscall and args.
//
// The function object has these additional properties:
//
//	getErrno()               error code of the last failed call
//	utf8Encode(str)          ArrayBuffer with the UTF-8 bytes of str
//	spawn(path, argv, env)   start a new process, returns its pid
func (b *Bridge) Func(runtime *goja.Runtime) *goja.Object {
	fn := runtime.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.syscall(runtime, call)
	}).ToObject(runtime)

	_ = fn.Set("getErrno", func(goja.FunctionCall) goja.Value {
		return runtime.ToValue(int(b.Errno()))
	})

	_ = fn.Set("utf8Encode", func(call goja.FunctionCall) goja.Value {
		return runtime.ToValue(runtime.NewArrayBuffer(Encode(call.Argument(0).String())))
	})

	_ = fn.Set("spawn", func(call goja.FunctionCall) goja.Value {
		return b.spawn(runtime, call)
	})

	return fn
}

func (b *Bridge) syscall(runtime *goja.Runtime, call goja.FunctionCall) goja.Value {
	if len(call.Arguments) < 2 || goja.IsUndefined(call.Arguments[1]) || goja.IsNull(call.Arguments[1]) {
		jsvalue.Throw(runtime, jsvalue.TypeError, ErrMissingArguments.Error())
	}

	name := call.Arguments[0]
	values := call.Arguments[2:]

	args := make([]Arg, 0, min(len(values), MaxArgs))

	for idx, value := range values[:min(len(values), MaxArgs)] {
		arg, err := ArgFrom(runtime, value)
		if err != nil {
			err = &ArgumentError{Index: idx, Err: err}
			jsvalue.Throw(runtime, jsvalue.TypeError, "syscall: "+err.Error())
		}

		args = append(args, arg)
	}

	result, err := b.Invoke(Call{
		Name:   name.String(),
		Number: uintptr(call.Arguments[1].ToInteger()),
		Args:   args,
	})
	if err != nil {
		var sysErr *Error
		if errors.As(err, &sysErr) {
			panic(newErrorObject(runtime, sysErr.Errno, name, values))
		}

		jsvalue.Throw(runtime, jsvalue.TypeError, "syscall: "+err.Error())
	}

	return runtime.ToValue(result)
}

func (b *Bridge) spawn(runtime *goja.Runtime, call goja.FunctionCall) goja.Value {
	var vectors [2]VectorArg

	for idx := range vectors {
		arg, err := ArgFrom(runtime, call.Argument(idx+1))
		if err != nil {
			jsvalue.Throw(runtime, jsvalue.TypeError, fmt.Sprintf("spawn: argument %d: %v", idx+1, err))
		}

		switch arg := arg.(type) {
		case VectorArg:
			vectors[idx] = arg
		case NullArg:
		default:
			jsvalue.Throw(runtime, jsvalue.TypeError, fmt.Sprintf("spawn: argument %d: array required", idx+1))
		}
	}

	pid, err := Spawn(call.Argument(0).String(), vectors[0], vectors[1])
	if err != nil {
		var errno unix.Errno
		if !errors.As(err, &errno) {
			jsvalue.Throw(runtime, jsvalue.Error, "spawn: "+err.Error())
		}

		b.errno = errno

		panic(newErrorObject(runtime, errno, runtime.ToValue("spawn"), call.Arguments))
	}

	return runtime.ToValue(pid)
}

func newErrorObject(
	runtime *goja.Runtime,
	errno unix.Errno,
	name goja.Value,
	values []goja.Value,
) *goja.Object {
	args := make([]any, len(values))
	for idx, value := range values {
		args[idx] = value
	}

	obj := jsvalue.NewError(runtime, jsvalue.Error, errno.Error())
	_ = obj.Set("name", ErrorName)
	_ = obj.Set("errno", int(errno))
	_ = obj.Set("syscall", name)
	_ = obj.Set("args", runtime.NewArray(args...))

	return obj
}

// Encode returns the UTF-8 encoded bytes of the given string. The returned
// slice is not NUL terminated and owned by the caller.
func Encode(str string) []byte {
	return []byte(str)
}
