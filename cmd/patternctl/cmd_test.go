// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, relPath, src string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(src), 0o644))
}

func TestBuildWorldGroupsPackagesByDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "demo/greeting.pattern", "pattern greeting = string")

	world, errs := buildWorld(dir)
	require.Empty(t, errs)
	_, ok := world.SlotByName("demo::greeting")
	assert.True(t, ok)
}

func TestBuildWorldReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "broken.pattern", "pattern p = (((")

	_, errs := buildWorld(dir)
	assert.NotEmpty(t, errs)
}

func TestBuildCmdRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "demo/greeting.pattern", "pattern greeting = string")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"build", dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "built world")
}

func TestEvalCmdPrintsResponse(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "demo/greeting.pattern", "pattern greeting = string")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"eval", dir, "demo::greeting", `"hello"`})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"satisfied": true`)
}

func TestEvalCmdTracePrintsEvents(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "demo/greeting.pattern", "pattern greeting = string")

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"eval", dir, "demo::greeting", `"hello"`, "--trace"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"satisfied": true`)
	assert.Contains(t, errOut.String(), "trace: start")
	assert.Contains(t, errOut.String(), "trace: done")
}

func TestFmtCmdPrintsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.pattern")
	require.NoError(t, os.WriteFile(path, []byte("pattern p = anything"), 0o644))

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fmt", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "pattern p = anything")
}

func TestInfoCmdSchemaFlag(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"info", ".", "--schema"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "PatternEngine Response")
}

func TestEvalCmdLoadsConfigBindings(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "demo/threshold.pattern", "pattern threshold = integer")
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"limit": 10}`), 0o644))

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"eval", dir, "demo::threshold", "5", "--config", cfgPath})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"satisfied": true`)
}

func TestConfigBindingsEmptyPathReturnsEmptyMap(t *testing.T) {
	bindings, err := configBindings("")
	require.NoError(t, err)
	assert.Empty(t, bindings)
}
