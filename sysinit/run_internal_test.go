// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"testing"

	"github.com/aibor/innit/internal/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NotPanics(t, func() {
			run(nil, nil)
		})
	})

	t.Run("exit handler", func(t *testing.T) {
		tests := []struct {
			name        string
			funcs       []Func
			expectedErr error
		}{
			{
				name:        "without error",
				expectedErr: nil,
			},
			{
				name: "with exit code",
				funcs: []Func{
					func(_ *State) error { return exitcode.FromCode(42) },
				},
				expectedErr: exitcode.Error(42),
			},
			{
				name: "with error",
				funcs: []Func{
					func(_ *State) error { return assert.AnError },
				},
				expectedErr: assert.AnError,
			},
			{
				name: "with panic",
				funcs: []Func{
					func(_ *State) error { panic(assert.AnError) },
				},
				expectedErr: assert.AnError,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var (
					called    bool
					calledErr error
				)

				exitHandler := func(err error) {
					require.False(t, called, "exit handler already called")

					called = true
					calledErr = err
				}

				run(exitHandler, tt.funcs)

				require.True(t, called, "exit handler called")
				require.ErrorIs(t, calledErr, tt.expectedErr)
			})
		}
	})

	t.Run("cleanup before exit handler", func(t *testing.T) {
		var calls []string

		run(
			func(_ error) { calls = append(calls, "exit") },
			[]Func{
				func(state *State) error {
					state.Cleanup(func() error {
						calls = append(calls, "cleanup")
						return nil
					})

					return assert.AnError
				},
			},
		)

		assert.Equal(t, []string{"cleanup", "exit"}, calls)
	})
}

func TestRunFuncs(t *testing.T) {
	tests := []struct {
		name          string
		funcs         []Func
		expectedErr   error
		expectedCalls int
	}{
		{
			name: "none",
		},
		{
			name: "success",
			funcs: []Func{
				func(_ *State) error { return nil },
				func(_ *State) error { return nil },
			},
		},
		{
			name: "first fails",
			funcs: []Func{
				func(_ *State) error { return assert.AnError },
				func(_ *State) error { return errors.New("second") },
			},
			expectedErr: assert.AnError,
		},
		{
			name: "second fails",
			funcs: []Func{
				func(_ *State) error { return nil },
				func(_ *State) error { return assert.AnError },
				func(_ *State) error { return errors.New("third") },
			},
			expectedErr: assert.AnError,
		},
		{
			name: "exit code stops",
			funcs: []Func{
				func(_ *State) error { return exitcode.FromCode(2) },
				func(_ *State) error { return errors.New("second") },
			},
			expectedErr: exitcode.Error(2),
		},
		{
			name: "panic without error",
			funcs: []Func{
				func(_ *State) error { panic(true) },
			},
			expectedErr: ErrPanic,
		},
		{
			name: "panic with error",
			funcs: []Func{
				func(_ *State) error { panic(assert.AnError) },
			},
			expectedErr: assert.AnError,
		},
		{
			name: "cleanup with error",
			funcs: []Func{
				func(state *State) error {
					state.Cleanup(func() error {
						return assert.AnError
					})

					return nil
				},
			},
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := new(State)

			err := runFuncs(state, tt.funcs)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr == nil {
				require.NoError(t, err)
			}

			assert.Len(t, state.cleanupFns, tt.expectedCalls)
		})
	}
}
