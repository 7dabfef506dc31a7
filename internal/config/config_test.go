// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stkctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("STKCTL_CFG_FILE", path)
	t.Cleanup(func() { Config = Type{} })
	_, err := Load()
	require.NoError(t, err)
}

// TestGetString verifies dotted key traversal.
func TestGetString(t *testing.T) {
	writeConfig(t, "region: ap-southeast-2\ntemplate:\n  cfn_bucket: artifacts\n")

	v, err := GetString("region")
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", v)

	v, err = GetString("template.cfn_bucket")
	require.NoError(t, err)
	assert.Equal(t, "artifacts", v)
}

// TestGetString_Default verifies the default kicks in for missing keys.
func TestGetString_Default(t *testing.T) {
	writeConfig(t, "region: ap-southeast-2\n")

	v, err := GetString("cfn_bucket", "None")

	require.NoError(t, err)
	assert.Equal(t, "None", v)
}

// TestGetString_WrongType verifies a non-string value is an error.
func TestGetString_WrongType(t *testing.T) {
	writeConfig(t, "region:\n  nested: true\n")

	_, err := GetString("region")

	assert.Error(t, err)
}

// TestNamespace verifies namespaced lookups win over bare keys.
func TestNamespace(t *testing.T) {
	writeConfig(t, "region: global\noutputs:\n  region: scoped\n")
	Config.Namespace = "outputs"

	v, err := GetString("region")

	require.NoError(t, err)
	assert.Equal(t, "scoped", v)
}

// TestGetInt verifies integer values decode and defaults apply.
func TestGetInt(t *testing.T) {
	writeConfig(t, "cache:\n  clean: 24\n")

	v, err := GetInt("cache.clean")
	require.NoError(t, err)
	assert.Equal(t, 24, v)

	v, err = GetInt("cache.missing", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

// TestGetInt_WrongType verifies a non-numeric value is an error.
func TestGetInt_WrongType(t *testing.T) {
	writeConfig(t, "cache:\n  clean: soon\n")

	_, err := GetInt("cache.clean")

	assert.Error(t, err)
}

// TestGetStringSlice verifies list values decode.
func TestGetStringSlice(t *testing.T) {
	writeConfig(t, "template:\n  helpers:\n    - user_data\n    - upload\n")

	v, err := GetStringSlice("template.helpers")

	require.NoError(t, err)
	assert.Equal(t, []string{"user_data", "upload"}, v)
}

// TestLoad_MissingFile verifies a clear error when STKCTL_CFG_FILE dangles.
func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("STKCTL_CFG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Cleanup(func() { Config = Type{} })

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "STKCTL_CFG_FILE")
}
