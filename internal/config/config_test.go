// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/patternengine/internal/config"
)

func TestFromMapFlattensNestedScalars(t *testing.T) {
	ctx, err := config.FromMap(map[string]any{
		"service": map[string]any{
			"name":    "patternctl",
			"retries": 3,
		},
		"enabled": true,
	})
	require.NoError(t, err)

	v, ok := ctx.Get("service.name")
	require.True(t, ok)
	s, _ := v.TryString()
	assert.Equal(t, "patternctl", s)

	v, ok = ctx.Get("enabled")
	require.True(t, ok)
	b, _ := v.TryBoolean()
	assert.True(t, b)
}

func TestGetMissingKeyIsNotOK(t *testing.T) {
	ctx, err := config.FromMap(map[string]any{"a": 1})
	require.NoError(t, err)
	_, ok := ctx.Get("missing")
	assert.False(t, ok)
}

func TestLoadYAMLFlattensNestedScalars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	src := "service:\n  name: patternctl\n  retries: 3\nenabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	ctx, err := config.Load(path)
	require.NoError(t, err)

	v, ok := ctx.Get("service.name")
	require.True(t, ok)
	s, _ := v.TryString()
	assert.Equal(t, "patternctl", s)
}

func TestLoadUnsupportedExtensionIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("a=1"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestNonScalarLeafIsDropped(t *testing.T) {
	ctx, err := config.FromMap(map[string]any{
		"list": []any{1, 2, 3},
	})
	require.NoError(t, err)
	_, ok := ctx.Get("list")
	assert.False(t, ok)
}
