// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package jsvalue

import (
	"errors"

	"github.com/dop251/goja"
)

// Error constructor names of the ECMAScript standard library.
const (
	Error          = "Error"
	ReferenceError = "ReferenceError"
	SyntaxError    = "SyntaxError"
	TypeError      = "TypeError"
)

// NewError creates a new error object by calling the global constructor with
// the given name. If there is no such constructor, the plain Error
// constructor is used.
func NewError(runtime *goja.Runtime, constructor, message string) *goja.Object {
	ctor, ok := goja.AssertConstructor(runtime.Get(constructor))
	if !ok {
		ctor, _ = goja.AssertConstructor(runtime.Get(Error))
	}

	obj, err := ctor(nil, runtime.ToValue(message))
	if err != nil {
		return runtime.NewGoError(err)
	}

	return obj
}

// Throw throws a new error object created by [NewError].
//
// It must only be called from native functions called by the runtime.
func Throw(runtime *goja.Runtime, constructor, message string) {
	panic(NewError(runtime, constructor, message))
}

// Rethrow raises the given error returned by a nested call into the runtime
// in the calling script.
//
// Exceptions are thrown again with their original value. An interrupt is
// re-armed with its original value, so the calling script stops as well. In
// that case Rethrow returns and the caller must return the returned value to
// the runtime. Syntax errors become SyntaxError objects. Any other error is
// thrown as GoError.
func Rethrow(runtime *goja.Runtime, err error) goja.Value {
	var (
		exception   *goja.Exception
		interrupted *goja.InterruptedError
		syntaxErr   *goja.CompilerSyntaxError
	)

	switch {
	case errors.As(err, &interrupted):
		runtime.Interrupt(interrupted.Value())
		return goja.Undefined()
	case errors.As(err, &exception):
		panic(exception.Value())
	case errors.As(err, &syntaxErr):
		Throw(runtime, SyntaxError, err.Error())
	default:
		panic(runtime.NewGoError(err))
	}

	return goja.Undefined()
}
