// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

// SetInterfaceUp brings the network interface with the given name up.
//
// For the loopback interface, the kernel configures the addresses itself.
func SetInterfaceUp(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("find link %s: %w", name, err)
	}

	if err := netlink.LinkSetUp(link); err != nil {
		return fmt.Errorf("set link %s up: %w", name, err)
	}

	return nil
}

// WithInterfaceUp returns a setup [Func] that wraps [SetInterfaceUp] and can
// be used with [Run].
func WithInterfaceUp(name string) Func {
	return func(_ *State) error {
		return SetInterfaceUp(name)
	}
}
