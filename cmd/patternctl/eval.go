// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/holomush/patternengine/internal/config"
	"github.com/holomush/patternengine/internal/eval"
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/tracing"
	"github.com/holomush/patternengine/internal/xdg"
	"github.com/holomush/patternengine/pkg/value"
)

// configBindings loads configFile (if set) and turns each scalar key into
// a const binding, the way an embedder's config context feeds evaluation
// without going through a second pattern source. With no explicit path,
// it falls back to the XDG config directory's config.json if present.
func configBindings(path string) (map[string]*ir.Pattern, error) {
	bindings := map[string]*ir.Pattern{}
	if path == "" {
		path = filepath.Join(xdg.ConfigDir(), "config.json")
		if _, err := os.Stat(path); err != nil {
			return bindings, nil
		}
	}

	ctx, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range ctx.Keys() {
		v, ok := ctx.Get(key)
		if !ok {
			continue
		}
		bindings[key] = &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerConst, ConstValue: v}}
	}
	return bindings, nil
}

func newEvalCmd() *cobra.Command {
	var collapse bool
	var trace bool

	cmd := &cobra.Command{
		Use:   "eval <source-dir> <pattern> <json-input>",
		Short: "Evaluate one pattern against JSON input and print its Response",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			world, errs := buildWorld(args[0])
			if len(errs) > 0 {
				return errs
			}

			slot, ok := world.SlotByName(args[1])
			if !ok {
				return fmt.Errorf("no such pattern: %s", args[1])
			}
			pattern := world.Pattern(slot)

			input, err := value.ParseJSON([]byte(args[2]))
			if err != nil {
				return fmt.Errorf("invalid JSON input: %w", err)
			}

			bindings, err := configBindings(configFile)
			if err != nil {
				return err
			}

			// A Monitor is always wired so RecordEvaluation/RecordTraceDrop
			// fire on every real evaluation, not only in unit tests; --trace
			// additionally subscribes to print the Start/Complete events.
			monitor := tracing.New()
			evaluator := &eval.Evaluator{Tracer: monitor}

			var events <-chan tracing.Event
			var unsubscribe func()
			if trace {
				events, unsubscribe, err = monitor.Subscribe("**")
				if err != nil {
					return fmt.Errorf("subscribe trace: %w", err)
				}
			}

			result := evaluator.Evaluate(cmd.Context(), input, pattern, bindings, world)

			if unsubscribe != nil {
				unsubscribe()
				for evt := range events {
					printTraceEvent(cmd, evt)
				}
			}

			response := result.ToResponse()
			if collapse {
				response = rationale.Collapse(response)
			}

			data, err := json.MarshalIndent(response, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal response: %w", err)
			}
			cmd.Println(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&collapse, "collapse", false, "collapse the rationale tree to only unsatisfied leaves")
	cmd.Flags().BoolVar(&trace, "trace", false, "print Start/Complete trace events from the Monitor to stderr")
	return cmd
}

func printTraceEvent(cmd *cobra.Command, evt tracing.Event) {
	switch {
	case evt.Start != nil:
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: start  correlation=%d pattern=%s\n", evt.Start.Correlation, evt.Start.PatternName)
	case evt.Complete != nil:
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: done   correlation=%d pattern=%s completion=%d elapsed=%s\n",
			evt.Complete.Correlation, evt.Complete.PatternName, evt.Complete.Completion, evt.Complete.Elapsed)
	}
}
