// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aibor/innit/scripts"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is the path of the configuration file read if none is
// given.
const DefaultConfigFile = "/etc/innit.yaml"

// Config is the system setup and script configuration of innit.
//
// Map values read from a file are merged with the defaults, all other values
// replace them.
type Config struct {
	// Entry is the name of the module run as script.
	Entry string `yaml:"entry"`
	// Segments is an optional path to a cpio archive with additional
	// modules.
	Segments string `yaml:"segments"`
	// MountPoints are mounted before the script runs.
	MountPoints MountPoints `yaml:"mountPoints"`
	// Symlinks are created after mounting, by link name.
	Symlinks Symlinks `yaml:"symlinks"`
	// Env is set for the script and inherited by all processes it starts.
	Env EnvVars `yaml:"env"`
	// Interfaces are network interfaces set up before the script runs.
	Interfaces []string `yaml:"interfaces"`
	// KernelModules is a glob pattern of kernel modules loaded before the
	// script runs.
	KernelModules string `yaml:"kernelModules"`
	// Shutdown is the action taken once everything is done.
	Shutdown ShutdownAction `yaml:"shutdown"`
	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the configuration used if there is no config file.
//
// The pseudo file systems are mounted by the bundled scripts, so only the
// ones required before are mounted here.
func DefaultConfig() Config {
	return Config{
		Entry: scripts.Entry,
		MountPoints: MountPoints{
			"/proc": {FSType: FSTypeProc, Flags: mountSecure},
		},
		Env: EnvVars{
			"PATH": "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin",
		},
		Interfaces:    []string{"lo"},
		KernelModules: "/lib/modules/innit/*.ko*",
		Shutdown:      ShutdownPoweroff,
	}
}

// LoadConfig reads the YAML configuration file at the given path on top of
// [DefaultConfig]. A missing file is not an error. Unknown keys are.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Funcs returns the [Func]s that set up the system as configured, in the
// order they should run.
func (c Config) Funcs() []Func {
	funcs := []Func{
		WithMountPoints(c.MountPoints),
		WithSymlinks(c.Symlinks),
		WithEnv(c.Env),
	}

	for _, name := range c.Interfaces {
		funcs = append(funcs, WithInterfaceUp(name))
	}

	return append(funcs, WithKernelModules(c.KernelModules))
}
