// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package segment

import (
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/cavaliergopher/cpio"
)

const (
	numLinks    = 2
	segmentMode = 0o444
)

// FromCPIO reads all regular files from the given cpio archive as segments.
//
// Leading "./" and "/" are removed from the entry names. Any other entry
// type is skipped.
func FromCPIO(reader io.Reader) ([]Segment, error) {
	var segments []Segment

	archive := cpio.NewReader(reader)

	for {
		header, err := archive.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}

		if !header.Mode.IsRegular() {
			continue
		}

		data, err := io.ReadAll(archive)
		if err != nil {
			return nil, fmt.Errorf("read body for %s: %w", header.Name, err)
		}

		segments = append(segments, Segment{
			Name: cleanName(header.Name),
			Data: data,
		})
	}

	return segments, nil
}

func cleanName(name string) string {
	name = strings.TrimPrefix(name, "./")
	return strings.TrimLeft(name, "/")
}

// WriteCPIO writes the given segments as read-only regular files into a new
// cpio archive written to w.
//
// Parent directory entries are added as required. Entries are written in
// lexicographic order of the segment names.
func WriteCPIO(writer io.Writer, segments ...Segment) error {
	archive := cpio.NewWriter(writer)
	dirs := map[string]bool{}

	sorted := slices.SortedFunc(slices.Values(segments), func(a, b Segment) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, segment := range sorted {
		if err := writeParents(archive, dirs, path.Dir(segment.Name)); err != nil {
			return err
		}

		header := &cpio.Header{
			Name: segment.Name,
			Mode: cpio.TypeReg | segmentMode,
			Size: int64(segment.Len()),
		}

		if err := archive.WriteHeader(header); err != nil {
			return fmt.Errorf("write header for %s: %w", segment.Name, err)
		}

		if _, err := archive.Write(segment.Data); err != nil {
			return fmt.Errorf("write body for %s: %w", segment.Name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func writeParents(archive *cpio.Writer, written map[string]bool, dir string) error {
	if dir == "." || dir == "/" || written[dir] {
		return nil
	}

	if err := writeParents(archive, written, path.Dir(dir)); err != nil {
		return err
	}

	header := &cpio.Header{
		Name:  dir,
		Mode:  cpio.TypeDir | cpio.ModePerm,
		Links: numLinks,
	}

	if err := archive.WriteHeader(header); err != nil {
		return fmt.Errorf("write header for %s: %w", dir, err)
	}

	written[dir] = true

	return nil
}
