// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// byPath returns an iterator over the given map in order of its keys.
//
// Keys are compared path element by path element, so a directory is always
// directly followed by its sub paths.
func byPath[V any](m map[string]V) iter.Seq2[string, V] {
	keys := slices.SortedFunc(maps.Keys(m), comparePaths)

	return func(yield func(string, V) bool) {
		for _, key := range keys {
			if !yield(key, m[key]) {
				return
			}
		}
	}
}

func comparePaths(a, b string) int {
	return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
}
