// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Command mksegments packs a directory of script modules into a cpio archive
// that can be passed to innit with -segments.
//
// The module names are the paths relative to the given directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aibor/innit/segment"
)

var errNoDirectory = errors.New("no directory given")

type config struct {
	output string
	prefix string
	dir    string
}

func (c *config) parseArgs(args []string) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n    %s [flags...] dir\n\n", args[0], args[0])
		fs.PrintDefaults()
	}

	fs.StringVar(&c.output, "o", "", "output file, stdout if empty")
	fs.StringVar(&c.prefix, "prefix", "", "directory prefix for all module names")

	if err := fs.Parse(args[1:]); err != nil {
		return err //nolint:wrapcheck
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errNoDirectory
	}

	c.dir = fs.Arg(0)

	return nil
}

func collect(dir, prefix string) ([]segment.Segment, error) {
	segments, err := segment.FromFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", dir, err)
	}

	for idx := range segments {
		segments[idx].Name = path.Join(prefix, segments[idx].Name)
	}

	// Fail early on conflicts instead of when innit loads the archive.
	if _, err := segment.NewRegistry(segments...); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return segments, nil
}

func write(output string, segments []segment.Segment, stdout io.Writer) error {
	if output == "" {
		return segment.WriteCPIO(stdout, segments...) //nolint:wrapcheck
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := segment.WriteCPIO(file, segments...); err != nil {
		_ = file.Close()
		_ = os.Remove(output)

		return fmt.Errorf("write archive: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}

func run(args []string, stdout io.Writer) error {
	var cfg config

	if err := cfg.parseArgs(args); err != nil {
		return err
	}

	segments, err := collect(cfg.dir, cfg.prefix)
	if err != nil {
		return err
	}

	return write(cfg.output, segments, stdout)
}

func main() {
	err := run(os.Args, os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
