// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package segment

import (
	"fmt"
	"io/fs"
)

// FromFS collects all regular files below root in the given file system as
// segments.
//
// The segment names are the slash separated paths relative to the root of
// fsys, not relative to root. So with an embedded directory "src" the file
// "src/init.js" results in a segment named "src/init.js".
func FromFS(fsys fs.FS, root string) ([]Segment, error) {
	var segments []Segment

	walkFunc := func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		segments = append(segments, Segment{Name: path, Data: data})

		return nil
	}

	if err := fs.WalkDir(fsys, root, walkFunc); err != nil {
		return nil, fmt.Errorf("walk dir: %w", err)
	}

	return segments, nil
}
