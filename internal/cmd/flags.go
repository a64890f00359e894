// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/innit/sysinit"
)

// Set on build.
var version = "dev"

const usageMessage = `Usage of '%[1]s':
    %[1]s [flags...] [args...]

Running as PID 1, %[1]s sets up the system, runs the boot script and shuts
the system down once the script is done. Otherwise only the script runs,
which is useful to render the unit dependency graph:
    %[1]s gen-graph units.dot

Flags take precedence over the config file.

`

type flags struct {
	name    string
	cfg     sysinit.Config
	flagSet *flag.FlagSet

	configFile string
	version    bool
}

func newFlags(name string, output io.Writer) *flags {
	flags := &flags{
		name: name,
		cfg:  sysinit.DefaultConfig(),
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	fs := flag.NewFlagSet(f.name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usageMessage, f.name)
		fs.PrintDefaults()
	}

	fs.StringVar(
		&f.configFile,
		"config",
		sysinit.DefaultConfigFile,
		"YAML config file, may not exist",
	)

	fs.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	bindConfig(fs, &f.cfg)

	f.flagSet = fs
}

// bindConfig registers the flags for all [sysinit.Config] values that can be
// set on the command line.
func bindConfig(fs *flag.FlagSet, cfg *sysinit.Config) {
	fs.StringVar(
		&cfg.Entry,
		"entry",
		cfg.Entry,
		"name of the module to run",
	)

	fs.StringVar(
		&cfg.Segments,
		"segments",
		cfg.Segments,
		"cpio archive with additional modules",
	)

	fs.StringVar(
		&cfg.KernelModules,
		"modules",
		cfg.KernelModules,
		"glob pattern of kernel modules to load",
	)

	fs.TextVar(
		&cfg.Shutdown,
		"shutdown",
		cfg.Shutdown,
		"action once done: poweroff, reboot",
	)

	fs.BoolVar(
		&cfg.Debug,
		"debug",
		cfg.Debug,
		"enable debug output",
	)
}

// Fail fails like flag does. It prints the error first and then usage.
func (f *flags) Fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

// ScriptArgs returns the arguments for the script. The first one is the
// command name, followed by all positional arguments.
func (f *flags) ScriptArgs() []string {
	return append([]string{f.name}, f.flagSet.Args()...)
}

func (f *flags) printVersionInformation() {
	fmt.Fprintf(f.flagSet.Output(), "%s: %s\n", f.name, version)

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	fmt.Fprintln(f.flagSet.Output(), buildInfo.String())
}

// ParseArgs parses the given arguments and loads the config file.
func (f *flags) ParseArgs(args []string) error {
	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	if err := f.flagSet.Parse(args); err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: ErrHelp}
	}

	cfg, err := sysinit.LoadConfig(f.configFile)
	if err != nil {
		return f.Fail("config", err)
	}

	// Apply the flags that were set explicitly again on top of the loaded
	// config.
	overrides := flag.NewFlagSet(f.name, flag.ContinueOnError)
	overrides.SetOutput(io.Discard)
	bindConfig(overrides, &cfg)

	f.flagSet.Visit(func(fl *flag.Flag) {
		if overrides.Lookup(fl.Name) == nil || err != nil {
			return
		}

		err = overrides.Set(fl.Name, fl.Value.String())
	})

	if err != nil {
		return f.Fail("flag override", err)
	}

	f.cfg = cfg

	return nil
}
