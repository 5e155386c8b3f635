// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lang"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/listfn"
	"github.com/holomush/patternengine/internal/mir"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/internal/resolve"
)

// sourceExtension is the file suffix patternctl treats as pattern source.
const sourceExtension = ".pattern"

// buildWorld walks root, parsing every *.pattern file found; a file's
// package path is its directory relative to root, split on the OS
// separator — the same per-directory-is-a-package convention Go itself
// uses, generalized to this source tree instead of Go packages.
func buildWorld(root string) (*lir.World, ir.BuildErrors) {
	w := mir.NewWorld()
	registry.RegisterPackage(w, lang.Package())
	registry.RegisterPackage(w, listfn.Package())

	var units []mir.UnitInput
	var errs ir.BuildErrors

	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, sourceExtension) {
			return nil
		}

		src, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, &ir.BuildError{Kind: ir.ErrParse, Source: path, Msg: readErr.Error()})
			return nil
		}

		unit, parseErr := ast.Parse(path, string(src))
		if parseErr != nil {
			errs = append(errs, &ir.BuildError{Kind: ir.ErrParse, Source: path, Msg: parseErr.Error()})
			return nil
		}

		pkgPath := packagePathOf(root, path)
		vis := resolve.BuildVisibility(pkgPath, unit)
		res, rerrs := resolve.ResolveUnit(path, unit, vis)
		if len(rerrs) > 0 {
			errs = append(errs, rerrs...)
			return nil
		}

		units = append(units, mir.UnitInput{Source: path, PackagePath: pkgPath, Unit: unit, Resolution: res})
		return nil
	})
	if walkErr != nil {
		errs = append(errs, &ir.BuildError{Kind: ir.ErrParse, Source: root, Msg: walkErr.Error()})
		return nil, errs
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if lowerErrs := mir.Lower(w, units); len(lowerErrs) > 0 {
		return nil, lowerErrs
	}

	return lir.Freeze(w)
}

func packagePathOf(root, path string) []string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(rel, string(filepath.Separator))
}
