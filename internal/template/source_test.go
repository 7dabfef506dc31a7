// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSource_LocalName verifies a bare name resolves to a local template
// rooted at the current directory.
func TestParseSource_LocalName(t *testing.T) {
	src, err := ParseSource("vpc.yaml")

	require.NoError(t, err)
	assert.Equal(t, "vpc.yaml", src.Name)
	assert.Equal(t, ".", src.Root)
	assert.False(t, src.Remote())
}

// TestParseSource_Mapping verifies a structured descriptor preserves name and
// repo.
func TestParseSource_Mapping(t *testing.T) {
	src, err := ParseSource(map[string]interface{}{
		"name": "vpc.yaml",
		"repo": "https://github.com/jwoffindin/stk-templates.git",
	})

	require.NoError(t, err)
	assert.Equal(t, "vpc.yaml", src.Name)
	assert.Equal(t, "https://github.com/jwoffindin/stk-templates.git", src.Repo)
	assert.True(t, src.Remote())
}

// TestParseSource_YAMLString verifies a descriptor passed through a CLI flag
// as YAML text parses like the mapping form.
func TestParseSource_YAMLString(t *testing.T) {
	src, err := ParseSource("{name: vpc.yaml, repo: 'https://example.com/t.git', ref: main}")

	require.NoError(t, err)
	assert.Equal(t, "vpc.yaml", src.Name)
	assert.Equal(t, "https://example.com/t.git", src.Repo)
	assert.Equal(t, "main", src.Ref)
	assert.True(t, src.Remote())
}

// TestParseSource_Errors verifies rejection of malformed descriptors.
func TestParseSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
	}{
		{"nil", nil},
		{"mapping without name", map[string]interface{}{"repo": "https://x"}},
		{"unsupported type", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(tt.raw)
			assert.Error(t, err)
		})
	}
}

// TestParseSource_ExplicitRoot verifies a local descriptor with a root keeps
// it.
func TestParseSource_ExplicitRoot(t *testing.T) {
	src, err := ParseSource(map[string]interface{}{"name": "vpc.yaml", "root": "templates"})

	require.NoError(t, err)
	assert.Equal(t, "templates", src.Root)
	assert.False(t, src.Remote())
}
