// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package introspect_test

import (
	"bytes"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/introspect"
	"github.com/holomush/patternengine/internal/lang"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/listfn"
	"github.com/holomush/patternengine/internal/mir"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/internal/resolve"
)

func buildWorld(t *testing.T, src string) *lir.World {
	t.Helper()
	w := mir.NewWorld()
	registry.RegisterPackage(w, lang.Package())
	registry.RegisterPackage(w, listfn.Package())

	unit, err := ast.Parse("t.dog", src)
	require.NoError(t, err)
	vis := resolve.BuildVisibility([]string{"demo"}, unit)
	res, rerrs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Empty(t, rerrs)

	errs := mir.Lower(w, []mir.UnitInput{{Source: "t.dog", PackagePath: []string{"demo"}, Unit: unit, Resolution: res}})
	require.Empty(t, errs)

	frozen, ferrs := lir.Freeze(w)
	require.Empty(t, ferrs)
	return frozen
}

func TestDescribeListsEveryPattern(t *testing.T) {
	world := buildWorld(t, "pattern greeting = string")
	info := introspect.Describe(world)
	assert.Equal(t, world.Len(), info.SlotCount)
	assert.Len(t, info.Patterns, world.Len())
	assert.Equal(t, world.BuildID, info.BuildID)

	var found bool
	for _, p := range info.Patterns {
		if p.Name == "greeting" {
			found = true
			assert.Equal(t, []string{"demo"}, p.Package)
		}
	}
	assert.True(t, found)
}

func TestDescribeBuildsPackageTree(t *testing.T) {
	world := buildWorld(t, "pattern greeting = string")
	info := introspect.Describe(world)
	require.NotNil(t, info.Root)

	var demo *introspect.PackageInfo
	for _, c := range info.Root.Children {
		if c.Name == "demo" {
			demo = c
		}
	}
	require.NotNil(t, demo)
	assert.Len(t, demo.Patterns, 1)
}

func TestResponseSchemaProducesValidJSON(t *testing.T) {
	data, err := introspect.ResponseSchema()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"title\": \"PatternEngine Response\"")
}

func TestResponseSchemaCompilesAsJSONSchema(t *testing.T) {
	data, err := introspect.ResponseSchema()
	require.NoError(t, err)

	decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("response.json", decoded))

	_, err = compiler.Compile("response.json")
	assert.NoError(t, err, "invopop's reflected schema must itself be a valid JSON Schema document")
}
