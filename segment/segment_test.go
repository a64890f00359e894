// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package segment_test

import (
	"slices"
	"testing"

	"github.com/aibor/innit/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name        string
		segments    []segment.Segment
		expectedLen int
		expectedErr error
	}{
		{
			name: "empty",
		},
		{
			name: "unique",
			segments: []segment.Segment{
				{Name: "src/a.js", Data: []byte("a")},
				{Name: "src/b.js", Data: []byte("b")},
			},
			expectedLen: 2,
		},
		{
			name: "empty data",
			segments: []segment.Segment{
				{Name: "src/empty.js"},
			},
			expectedLen: 1,
		},
		{
			name: "empty name",
			segments: []segment.Segment{
				{Name: "", Data: []byte("a")},
			},
			expectedErr: segment.ErrEmptyName,
		},
		{
			name: "duplicate",
			segments: []segment.Segment{
				{Name: "src/a.js", Data: []byte("a")},
				{Name: "src/a.js", Data: []byte("b")},
			},
			expectedErr: segment.ErrDuplicateSegment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := segment.NewRegistry(tt.segments...)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				return
			}

			assert.Equal(t, tt.expectedLen, registry.Len())
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry, err := segment.NewRegistry(
		segment.Segment{Name: "src/a.js", Data: []byte("exports.a = 1;")},
		segment.Segment{Name: "src/b.js", Data: []byte("exports.b = 2;")},
	)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		actual, found := registry.Lookup("src/b.js")
		require.True(t, found)
		assert.Equal(t, "src/b.js", actual.Name)
		assert.Equal(t, "exports.b = 2;", actual.String())
		assert.Equal(t, 14, actual.Len())
	})

	t.Run("not found", func(t *testing.T) {
		_, found := registry.Lookup("src/c.js")
		assert.False(t, found)
	})

	t.Run("nil registry", func(t *testing.T) {
		var nilRegistry *segment.Registry

		_, found := nilRegistry.Lookup("src/a.js")
		assert.False(t, found)
		assert.Zero(t, nilRegistry.Len())
		assert.Empty(t, slices.Collect(nilRegistry.Names()))
	})
}

func TestRegistry_Names(t *testing.T) {
	registry, err := segment.NewRegistry(
		segment.Segment{Name: "src/mount.js"},
		segment.Segment{Name: "src/fs.js"},
		segment.Segment{Name: "lib/x.js"},
	)
	require.NoError(t, err)

	expected := []string{"lib/x.js", "src/fs.js", "src/mount.js"}
	assert.Equal(t, expected, slices.Collect(registry.Names()))
}
