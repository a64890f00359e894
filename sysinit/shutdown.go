// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
)

// ShutdownAction defines what happens after the init process is done.
type ShutdownAction string

// Supported shutdown actions.
const (
	ShutdownPoweroff ShutdownAction = "poweroff"
	ShutdownReboot   ShutdownAction = "reboot"
)

func (a ShutdownAction) String() string {
	return string(a)
}

// MarshalText implements [encoding.TextMarshaler].
func (a ShutdownAction) MarshalText() ([]byte, error) {
	return []byte(a), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *ShutdownAction) UnmarshalText(text []byte) error {
	action := ShutdownAction(text)

	switch action {
	case ShutdownPoweroff, ShutdownReboot:
		*a = action
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidShutdownAction, text)
	}
}

// UnmarshalYAML implements the yaml.v2 Unmarshaler interface.
func (a *ShutdownAction) UnmarshalYAML(unmarshal func(any) error) error {
	var text string
	if err := unmarshal(&text); err != nil {
		return err
	}

	return a.UnmarshalText([]byte(text))
}

// Shutdown syncs file systems and powers off or reboots the system. It only
// returns on error.
func Shutdown(action ShutdownAction) error {
	// Silence the kernel so it does not clutter the console.
	_ = sysctl("kernel/printk", "0")

	syncFS()

	switch action {
	case ShutdownReboot:
		return reboot()
	case ShutdownPoweroff, "":
		return poweroff()
	default:
		return fmt.Errorf("%w: %s", ErrInvalidShutdownAction, action)
	}
}
