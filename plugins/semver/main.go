// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Command semver is a standalone Function plugin exposing
// "semver::parse" and "semver::satisfies", served over pluginhost's
// net/rpc protocol — this pack's equivalent of the teacher's echo
// directory: a small, real, runnable plugin demonstrating the host
// contract end to end, generalized from the original engine's
// semver::parse (core/semver/parse.rs) to a pair of Functions fit for
// out-of-process hosting.
package main

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/holomush/patternengine/internal/pluginhost"
	"github.com/holomush/patternengine/pkg/value"
)

type handler struct{}

func (handler) Call(name string, v *value.Value, bindings map[string]*value.Value) (bool, *value.Value, string, string, error) {
	switch name {
	case "semver::parse":
		return parse(v)
	case "semver::satisfies":
		return satisfies(v, bindings)
	default:
		return false, nil, "error", fmt.Sprintf("semver plugin has no function %q", name), nil
	}
}

func parse(v *value.Value) (bool, *value.Value, string, string, error) {
	s, ok := v.TryString()
	if !ok {
		return false, nil, "error", "not a string", nil
	}
	ver, err := semver.NewVersion(s)
	if err != nil {
		return false, nil, "error", "not a valid semantic version", nil
	}

	obj := value.NewObject()
	obj.Set("major", value.NewInteger(int64(ver.Major())))
	obj.Set("minor", value.NewInteger(int64(ver.Minor())))
	obj.Set("patch", value.NewInteger(int64(ver.Patch())))
	if ver.Prerelease() != "" {
		obj.Set("pre", value.NewString(ver.Prerelease()))
	}
	if ver.Metadata() != "" {
		obj.Set("build", value.NewString(ver.Metadata()))
	}
	return true, value.NewObjectValue(obj), "none", "", nil
}

func satisfies(v *value.Value, bindings map[string]*value.Value) (bool, *value.Value, string, string, error) {
	s, ok := v.TryString()
	if !ok {
		return false, nil, "error", "not a string", nil
	}
	constraintStr, ok := bindings["constraint"]
	if !ok {
		return false, nil, "error", "missing constraint argument", nil
	}
	constraintText, ok := constraintStr.TryString()
	if !ok {
		return false, nil, "error", "constraint argument is not a string", nil
	}

	ver, err := semver.NewVersion(s)
	if err != nil {
		return false, nil, "error", "not a valid semantic version", nil
	}
	constraint, err := semver.NewConstraint(constraintText)
	if err != nil {
		return false, nil, "error", "invalid constraint syntax", nil
	}

	if !constraint.Check(ver) {
		return false, nil, "error", fmt.Sprintf("%s does not satisfy %s", s, constraintText), nil
	}
	return true, v, "none", "", nil
}

func main() {
	pluginhost.Serve(handler{})
}
