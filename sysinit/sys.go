// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

type finitFlags int

const finitFlagCompressedFile finitFlags = unix.MODULE_INIT_COMPRESSED_FILE

// IsPidOne returns true if the running process has PID 1.
func IsPidOne() bool {
	return unix.Getpid() == 1
}

func mount(path, source, fsType string, flags MountFlags, data string) error {
	if source == "" {
		source = fsType
	}

	if err := unix.Mount(source, path, fsType, uintptr(flags), data); err != nil {
		return fmt.Errorf("mount %s: %w", path, err)
	}

	return nil
}

func initModule(data []byte, params string) error {
	if err := unix.InitModule(data, params); err != nil {
		return fmt.Errorf("init_module: %w", err)
	}

	return nil
}

func finitModule(fd int, params string, flags finitFlags) error {
	if err := unix.FinitModule(fd, params, int(flags)); err != nil {
		// If finit_module is not available, EOPNOTSUPP is returned.
		if errors.Is(err, unix.EOPNOTSUPP) {
			err = errors.ErrUnsupported
		}

		return fmt.Errorf("finit_module: %w", err)
	}

	return nil
}

func sysctl(key, value string) error {
	path := filepath.Join("/proc/sys", key)

	//nolint:gosec
	if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
		return fmt.Errorf("sysctl %s: %w", key, err)
	}

	return nil
}

func syncFS() {
	unix.Sync()
}

func reboot() error {
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}

	return nil
}

func poweroff() error {
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF); err != nil {
		return fmt.Errorf("poweroff: %w", err)
	}

	return nil
}
