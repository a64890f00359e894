// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysbridge

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/dop251/goja"
)

// MaxVectorLen is the maximum number of elements of an array argument.
const MaxVectorLen = 1 << 16

// Arg is a system call argument.
//
// It is one of [StringArg], [NumberArg], [VectorArg], [BufferArg],
// [NullArg] or [UnsupportedArg].
type Arg interface {
	isArg()
}

// StringArg is passed as pointer to a NUL terminated copy of the string.
type StringArg string

// NumberArg is passed as is.
type NumberArg int64

// VectorArg is passed as pointer to a NULL terminated array of pointers to
// NUL terminated copies of the strings.
type VectorArg []string

// BufferArg is passed as pointer into Data at Offset. Data is not copied.
type BufferArg struct {
	Data   []byte
	Offset int
}

// NullArg is passed as zero.
type NullArg struct{}

// UnsupportedArg is a value of any other kind. It is passed as zero.
type UnsupportedArg struct {
	Type string
}

func (StringArg) isArg()      {}
func (NumberArg) isArg()      {}
func (VectorArg) isArg()      {}
func (BufferArg) isArg()      {}
func (NullArg) isArg()        {}
func (UnsupportedArg) isArg() {}

// ArgFrom returns the [Arg] for the given script value.
//
// An error is returned if an array has more than [MaxVectorLen] elements or
// an element can not be converted into a string.
func ArgFrom(runtime *goja.Runtime, value goja.Value) (Arg, error) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return NullArg{}, nil
	}

	if obj, ok := value.(*goja.Object); ok {
		return objectArg(runtime, obj)
	}

	typ := value.ExportType()
	if typ == nil {
		return UnsupportedArg{}, nil
	}

	switch typ.Kind() {
	case reflect.String:
		return StringArg(value.String()), nil
	case reflect.Int64, reflect.Float64:
		return NumberArg(value.ToInteger()), nil
	default:
		return UnsupportedArg{Type: typ.String()}, nil
	}
}

func objectArg(runtime *goja.Runtime, obj *goja.Object) (Arg, error) {
	if obj.ClassName() == "Array" {
		return vectorArg(runtime, obj)
	}

	if buffer, ok := obj.Export().(goja.ArrayBuffer); ok {
		return BufferArg{Data: buffer.Bytes()}, nil
	}

	if view := obj.Get("buffer"); view != nil && isView(runtime, obj) {
		if buffer, ok := view.Export().(goja.ArrayBuffer); ok {
			return BufferArg{
				Data:   buffer.Bytes(),
				Offset: int(obj.Get("byteOffset").ToInteger()),
			}, nil
		}
	}

	return UnsupportedArg{Type: obj.ClassName()}, nil
}

// isView reports whether obj is a typed array or a DataView.
func isView(runtime *goja.Runtime, obj *goja.Object) bool {
	// Typed arrays export as slices of their element type.
	if typ := obj.ExportType(); typ != nil && typ.Kind() == reflect.Slice {
		return true
	}

	dataView, ok := runtime.Get("DataView").(*goja.Object)

	return ok && runtime.InstanceOf(obj, dataView)
}

func vectorArg(runtime *goja.Runtime, obj *goja.Object) (Arg, error) {
	length := obj.Get("length").ToInteger()
	if length > MaxVectorLen {
		return nil, fmt.Errorf("%w: array of length %d exceeds %d elements",
			ErrInvalidArgument, length, MaxVectorLen)
	}

	vector := make(VectorArg, 0, length)

	for idx := range length {
		var str string

		exception := runtime.Try(func() {
			str = obj.Get(strconv.FormatInt(idx, 10)).String()
		})
		if exception != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidArgument, idx, exception.Value())
		}

		vector = append(vector, str)
	}

	return vector, nil
}
