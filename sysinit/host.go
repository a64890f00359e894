// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/aibor/innit/internal/exitcode"
	"github.com/aibor/innit/module"
	"github.com/aibor/innit/sysbridge"
	"github.com/dop251/goja"
	"golang.org/x/sync/errgroup"
)

// exitRequest is the interrupt value of sys.exit.
type exitRequest int

// cancelRequest is the interrupt value if the context of [Host.Run] is done.
type cancelRequest struct {
	cause error
}

// HostOption configures a [Host].
type HostOption func(*Host)

// WithLogger sets the logger for the host and the script log bindings. By
// default, [slog.Default] is used.
func WithLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithEnviron sets the environment exposed as sys.env. By default, the
// process environment at the time [Host.Run] is called is used.
func WithEnviron(environ []string) HostOption {
	return func(h *Host) {
		h.environ = environ
	}
}

// WithBridgeOptions passes options to the system call bridge.
func WithBridgeOptions(opts ...sysbridge.Option) HostOption {
	return func(h *Host) {
		h.bridgeOpts = append(h.bridgeOpts, opts...)
	}
}

// Host runs scripts. It binds these globals:
//
//	require(name)     module loader
//	syscall(...)      system call bridge
//	sys.argv          arguments
//	sys.env           environment variables by name
//	sys.exit(code)    stop the script with the given exit code
//	log.i, log.d, log.e, console.*
//
// A Host runs one script at a time.
type Host struct {
	vm         *goja.Runtime
	sys        *goja.Object
	loader     *module.Loader
	bridge     *sysbridge.Bridge
	logger     *slog.Logger
	environ    []string
	bridgeOpts []sysbridge.Option
}

// NewHost creates a new [Host] that loads modules from the given registry and
// exposes argv to scripts.
func NewHost(registry module.Registry, argv []string, opts ...HostOption) (*Host, error) {
	host := &Host{
		vm:     goja.New(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(host)
	}

	host.loader = module.NewLoader(host.vm, registry, module.WithLogger(host.logger))
	host.bridge = sysbridge.New(append(
		[]sysbridge.Option{sysbridge.WithLogger(host.logger)},
		host.bridgeOpts...,
	)...)

	if err := host.bind(argv); err != nil {
		return nil, fmt.Errorf("bind globals: %w", err)
	}

	return host, nil
}

func (h *Host) bind(argv []string) error {
	h.sys = h.vm.NewObject()

	args := make([]any, len(argv))
	for idx, arg := range argv {
		args[idx] = arg
	}

	if err := h.sys.Set("argv", h.vm.NewArray(args...)); err != nil {
		return fmt.Errorf("sys.argv: %w", err)
	}

	if err := h.sys.Set("exit", h.exit); err != nil {
		return fmt.Errorf("sys.exit: %w", err)
	}

	logObj, err := h.logObject(map[string]slog.Level{
		"i": slog.LevelInfo,
		"d": slog.LevelDebug,
		"e": slog.LevelError,
	})
	if err != nil {
		return err
	}

	console, err := h.logObject(map[string]slog.Level{
		"log":   slog.LevelInfo,
		"info":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	})
	if err != nil {
		return err
	}

	globals := map[string]any{
		"require": h.loader.RequireFunc(),
		"syscall": h.bridge.Func(h.vm),
		"sys":     h.sys,
		"log":     logObj,
		"console": console,
	}

	for name, value := range globals {
		if err := h.vm.Set(name, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func (h *Host) logObject(levels map[string]slog.Level) (*goja.Object, error) {
	obj := h.vm.NewObject()

	for name, level := range levels {
		fn := func(call goja.FunctionCall) goja.Value {
			h.logger.Log(context.Background(), level, joinArgs(call.Arguments),
				slog.String("source", "script"),
			)

			return goja.Undefined()
		}

		if err := obj.Set(name, fn); err != nil {
			return nil, fmt.Errorf("log function %s: %w", name, err)
		}
	}

	return obj, nil
}

func (h *Host) exit(call goja.FunctionCall) goja.Value {
	h.vm.Interrupt(exitRequest(call.Argument(0).ToInteger()))
	return goja.Undefined()
}

// Run runs the module with the given name and returns once its body
// returned.
//
// If the script calls sys.exit, it is stopped and an [exitcode.Error] is
// returned for non-zero codes. If ctx is done before the script returned, the
// script is interrupted and [ErrInterrupted] is returned. Errors of uncaught
// exceptions wrap the [*goja.Exception].
func (h *Host) Run(ctx context.Context, entry string) error {
	environ := h.environ
	if environ == nil {
		environ = os.Environ()
	}

	env, err := h.environObject(environ)
	if err != nil {
		return err
	}

	if err := h.sys.Set("env", env); err != nil {
		return fmt.Errorf("sys.env: %w", err)
	}

	var group errgroup.Group

	done := make(chan struct{})

	group.Go(func() error {
		defer close(done)

		// Thread scoped system calls, like unshare, must all hit the same
		// thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		_, err := h.loader.Require(entry)

		return scriptResult(err)
	})

	group.Go(func() error {
		select {
		case <-ctx.Done():
			h.vm.Interrupt(cancelRequest{cause: context.Cause(ctx)})
		case <-done:
		}

		return nil
	})

	err = group.Wait()

	h.vm.ClearInterrupt()

	return err
}

// Loader returns the module loader of the host.
func (h *Host) Loader() *module.Loader {
	return h.loader
}

func scriptResult(err error) error {
	if err == nil {
		return nil
	}

	var interrupted *goja.InterruptedError
	if !errors.As(err, &interrupted) {
		return fmt.Errorf("script: %w", err)
	}

	switch value := interrupted.Value().(type) {
	case exitRequest:
		return exitcode.FromCode(int(value))
	case cancelRequest:
		return fmt.Errorf("%w: %w", ErrInterrupted, value.cause)
	default:
		return fmt.Errorf("%w: %v", ErrInterrupted, value)
	}
}

// WithScript returns a [Func] that wraps [Host.Run] and can be used with
// [Run].
func WithScript(ctx context.Context, host *Host, entry string) Func {
	return func(_ *State) error {
		return host.Run(ctx, entry)
	}
}

func (h *Host) environObject(environ []string) (*goja.Object, error) {
	env := h.vm.NewObject()

	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}

		if err := env.Set(key, value); err != nil {
			return nil, fmt.Errorf("sys.env.%s: %w", key, err)
		}
	}

	return env, nil
}

func joinArgs(args []goja.Value) string {
	strs := make([]string, len(args))
	for idx, arg := range args {
		strs[idx] = arg.String()
	}

	return strings.Join(strs, " ")
}
