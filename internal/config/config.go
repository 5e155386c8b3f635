// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package config builds the flat dotted-key config context patterns can
// be evaluated against (spec §6 "Config context"): JSON or TOML flattened
// to scalar-only leaves via koanf, previously a direct but unwired teacher
// dependency.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	tomlv2 "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/patternengine/pkg/value"
)

const delimiter = "."

// Context is the flat dotted-key table an embedder hands to evaluation:
// scalar values only, non-scalar leaves are dropped during flattening.
type Context struct {
	k *koanf.Koanf
}

// Load reads path (JSON, TOML, or YAML, by extension) into a Context.
func Load(path string) (*Context, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadWithParser(path, json.Parser())
	case ".toml":
		return loadWithParser(path, tomlv2.Parser())
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return nil, oops.Code("UNSUPPORTED_CONFIG_FORMAT").Errorf("unrecognized config extension %q", ext)
	}
}

func loadWithParser(path string, parser koanf.Parser) (*Context, error) {
	k := koanf.New(delimiter)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrapf(err, "load config %s", path)
	}
	return &Context{k: k}, nil
}

// loadYAML reads a YAML config file. koanf ships JSON and TOML parsers but
// no YAML one in this dependency set, so the file is decoded directly with
// yaml.v3 into a map and loaded via the confmap provider, the same path
// FromMap uses for already-decoded data.
func loadYAML(path string) (*Context, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrapf(err, "read config %s", path)
	}

	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrapf(err, "parse config %s", path)
	}
	return FromMap(m)
}

// FromMap builds a Context directly from an already-decoded map, for
// embedders that parse their own config format upstream.
func FromMap(m map[string]any) (*Context, error) {
	k := koanf.New(delimiter)
	if err := k.Load(confmap.Provider(m, delimiter), nil); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrapf(err, "load config map")
	}
	return &Context{k: k}, nil
}

// Keys returns every scalar dotted key present in the context.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.k.All()))
	for k, v := range c.k.All() {
		if isScalar(v) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Get looks up a dotted key, returning its scalar value as a
// pkg/value.Value. Non-scalar or absent keys report ok=false.
func (c *Context) Get(key string) (*value.Value, bool) {
	if !c.k.Exists(key) {
		return nil, false
	}
	raw := c.k.Get(key)
	if !isScalar(raw) {
		return nil, false
	}
	return value.FromJSON(raw), true
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
