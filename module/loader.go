// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package module

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aibor/innit/internal/jsvalue"
	"github.com/aibor/innit/segment"
	"github.com/dop251/goja"
)

// The prologue must not contain a newline, so line numbers reported for a
// module match its segment.
const (
	wrapperPrologue = "(function (module, exports, require) {"
	wrapperEpilogue = "\n})"
)

// Registry provides module sources by name.
type Registry interface {
	Lookup(name string) (segment.Segment, bool)
}

var _ Registry = (*segment.Registry)(nil)

// Option configures a [Loader].
type Option func(*Loader)

// WithLogger sets the logger used by the [Loader]. By default,
// [slog.Default] is used.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

type entry struct {
	name    string
	exports goja.Value
}

// Loader loads modules from a [Registry] into a [goja.Runtime] and caches
// their exports.
//
// A Loader must only be used from the goroutine that uses its runtime.
type Loader struct {
	runtime  *goja.Runtime
	registry Registry
	logger   *slog.Logger

	cache   map[string]*entry
	require goja.Value
}

// NewLoader creates a new [Loader] with an empty module cache.
func NewLoader(runtime *goja.Runtime, registry Registry, opts ...Option) *Loader {
	loader := &Loader{
		runtime:  runtime,
		registry: registry,
		logger:   slog.Default(),
		cache:    map[string]*entry{},
	}

	for _, opt := range opts {
		opt(loader)
	}

	loader.require = runtime.ToValue(loader.requireFunc)

	return loader
}

// RequireFunc returns the require function for use in scripts.
//
// It is the same function object that is passed to module bodies. A missing
// module results in a ReferenceError. Exceptions thrown by module bodies are
// thrown again unchanged.
func (l *Loader) RequireFunc() goja.Value {
	return l.require
}

func (l *Loader) requireFunc(call goja.FunctionCall) goja.Value {
	name := call.Argument(0)
	if goja.IsUndefined(name) || goja.IsNull(name) {
		jsvalue.Throw(l.runtime, jsvalue.TypeError, "require: module name required")
	}

	exports, err := l.Require(name.String())
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			obj := jsvalue.NewError(l.runtime, jsvalue.ReferenceError, err.Error())
			_ = obj.Set("moduleName", notFound.Name)

			panic(obj)
		}

		return jsvalue.Rethrow(l.runtime, err)
	}

	return exports
}

// Require returns the exports of the module with the given name.
//
// If the module is cached, the cached exports are returned, even if the
// module is still loading. Otherwise the module source is looked up in the
// registry, wrapped and run. A [*NotFoundError] is returned if there is no
// source. Errors thrown by the module body are returned as
// [*goja.Exception].
func (l *Loader) Require(name string) (goja.Value, error) {
	if cached, exists := l.cache[name]; exists {
		return cached.exports, nil
	}

	source, found := l.registry.Lookup(name)
	if !found {
		return nil, &NotFoundError{Name: name}
	}

	wrapper, err := l.compile(source)
	if err != nil {
		return nil, err
	}

	module := l.runtime.NewObject()
	exports := l.runtime.NewObject()

	if err := module.Set("exports", exports); err != nil {
		return nil, fmt.Errorf("set module exports: %w", err)
	}

	// Insert before running the body, so circular requires find it.
	cached := &entry{name: name, exports: exports}
	l.cache[name] = cached

	l.logger.Debug("load module", slog.String("name", name))

	_, err = wrapper(exports, module, exports, l.require)
	if err != nil {
		l.logger.Debug("module failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)

		return nil, err
	}

	cached.exports = module.Get("exports")

	return cached.exports, nil
}

func (l *Loader) compile(source segment.Segment) (goja.Callable, error) {
	src := wrapperPrologue + source.String() + wrapperEpilogue

	program, err := goja.Compile(source.Name, src, false)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", source.Name, err)
	}

	value, err := l.runtime.RunProgram(program)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", source.Name, err)
	}

	wrapper, ok := goja.AssertFunction(value)
	if !ok {
		return nil, fmt.Errorf("evaluate %s: wrapper is not a function", source.Name)
	}

	return wrapper, nil
}

// Cached returns the currently cached exports of the module with the given
// name.
func (l *Loader) Cached(name string) (goja.Value, bool) {
	cached, exists := l.cache[name]
	if !exists {
		return nil, false
	}

	return cached.exports, true
}

// Len returns the number of cached modules, including those still loading
// and those whose body failed.
func (l *Loader) Len() int {
	return len(l.cache)
}
