// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type kmodType string

const (
	kmodTypeUnknown kmodType = ""
	kmodTypePlain   kmodType = ".ko"
	kmodTypeGZIP    kmodType = ".ko.gz"
	kmodTypeXZ      kmodType = ".ko.xz"
	kmodTypeZSTD    kmodType = ".ko.zst"
)

// finit_module(2) decompresses these itself.
var finitCompressedTypes = []kmodType{kmodTypeGZIP, kmodTypeXZ, kmodTypeZSTD}

func parseKmodType(fileName string) kmodType {
	for _, typ := range []kmodType{kmodTypePlain, kmodTypeGZIP, kmodTypeXZ, kmodTypeZSTD} {
		if strings.HasSuffix(fileName, string(typ)) {
			return typ
		}
	}

	return kmodTypeUnknown
}

// LoadKernelModules loads all files matching the given glob pattern as kernel
// modules, in lexicographic order. Directories are skipped.
//
// See [filepath.Glob] for the pattern format. An empty pattern loads nothing.
func LoadKernelModules(pattern string) error {
	if pattern == "" {
		return nil
	}

	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("list module files: %w", err)
	}

	for _, file := range files {
		if info, err := os.Stat(file); err == nil && info.IsDir() {
			continue
		}

		if err := LoadKernelModule(file, ""); err != nil {
			return fmt.Errorf("load module %s: %w", file, err)
		}

		slog.Debug("kernel module loaded", slog.String("path", file))
	}

	return nil
}

// WithKernelModules returns a setup [Func] that wraps [LoadKernelModules] and
// can be used with [Run].
func WithKernelModules(pattern string) Func {
	return func(_ *State) error {
		return LoadKernelModules(pattern)
	}
}

// LoadKernelModule loads the kernel module located at the given path with the
// given parameters.
//
// The file may be compressed. The caller is responsible to ensure the module
// belongs to the running kernel and all dependencies are satisfied.
func LoadKernelModule(path string, params string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	typ := parseKmodType(file.Name())

	// Try finit_module(2) first. If it is not available fall back to
	// init_module(2), which needs the decompressed module in memory.
	err = finitModule(int(file.Fd()), params, finitFlagsFor(typ))
	if !errors.Is(err, errors.ErrUnsupported) {
		return err
	}

	reader, err := newKmodReader(file, typ)
	if err != nil {
		return fmt.Errorf("module reader: %w", err)
	}

	var data bytes.Buffer
	if _, err := data.ReadFrom(reader); err != nil {
		return fmt.Errorf("read module: %w", err)
	}

	return initModule(data.Bytes(), params)
}

func newKmodReader(reader io.Reader, typ kmodType) (io.Reader, error) {
	switch typ {
	case kmodTypePlain:
		return reader, nil
	case kmodTypeGZIP:
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}

		return gzipReader, nil
	default:
		return nil, fmt.Errorf("extension %q: %w", typ, errors.ErrUnsupported)
	}
}

func finitFlagsFor(typ kmodType) finitFlags {
	var flags finitFlags

	if slices.Contains(finitCompressedTypes, typ) {
		flags |= finitFlagCompressedFile
	}

	return flags
}
