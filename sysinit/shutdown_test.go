// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit_test

import (
	"testing"

	"github.com/aibor/innit/sysinit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestShutdownAction_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    sysinit.ShutdownAction
		expectedErr error
	}{
		{
			input:    "poweroff",
			expected: sysinit.ShutdownPoweroff,
		},
		{
			input:    "reboot",
			expected: sysinit.ShutdownReboot,
		},
		{
			input:       "halt",
			expectedErr: sysinit.ErrInvalidShutdownAction,
		},
		{
			input:       "",
			expectedErr: sysinit.ErrInvalidShutdownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var actual sysinit.ShutdownAction

			err := actual.UnmarshalText([]byte(tt.input))
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestShutdownAction_MarshalText(t *testing.T) {
	text, err := sysinit.ShutdownReboot.MarshalText()
	require.NoError(t, err)

	assert.Equal(t, "reboot", string(text))
	assert.Equal(t, "poweroff", sysinit.ShutdownPoweroff.String())
}

func TestShutdownAction_UnmarshalYAML(t *testing.T) {
	var actual struct {
		Action sysinit.ShutdownAction `yaml:"action"`
	}

	err := yaml.Unmarshal([]byte("action: reboot\n"), &actual)
	require.NoError(t, err)
	assert.Equal(t, sysinit.ShutdownReboot, actual.Action)

	err = yaml.Unmarshal([]byte("action: suspend\n"), &actual)
	require.ErrorIs(t, err, sysinit.ErrInvalidShutdownAction)

	err = yaml.Unmarshal([]byte("action: [reboot]\n"), &actual)
	require.Error(t, err)
}
