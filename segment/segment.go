// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package segment

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Segment is a named, immutable byte range.
//
// Data must not be modified once the segment is part of a [Registry].
type Segment struct {
	Name string
	Data []byte
}

// Len returns the length of the segment's data.
func (s Segment) Len() int {
	return len(s.Data)
}

// String returns the segment's data as string.
func (s Segment) String() string {
	return string(s.Data)
}

// Registry maps segment names to [Segment]s.
//
// The zero value is an empty registry.
type Registry struct {
	segments map[string]Segment
}

// NewRegistry creates a new [Registry] with the given segments.
//
// Each name must be non-empty and unique across all given segments.
func NewRegistry(segments ...Segment) (*Registry, error) {
	registry := &Registry{
		segments: make(map[string]Segment, len(segments)),
	}

	for _, segment := range segments {
		if segment.Name == "" {
			return nil, ErrEmptyName
		}

		if _, exists := registry.segments[segment.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSegment, segment.Name)
		}

		registry.segments[segment.Name] = segment
	}

	return registry, nil
}

// Lookup returns the segment with the given name. The second return value
// is false if there is no such segment.
func (r *Registry) Lookup(name string) (Segment, bool) {
	if r == nil {
		return Segment{}, false
	}

	segment, exists := r.segments[name]

	return segment, exists
}

// Len returns the number of segments in the registry.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.segments)
}

// Names returns an iterator over all segment names in lexicographic order.
func (r *Registry) Names() iter.Seq[string] {
	if r == nil {
		return func(func(string) bool) {}
	}

	return slices.Values(slices.Sorted(maps.Keys(r.segments)))
}
