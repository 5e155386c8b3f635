// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package pluginhost

import (
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/holomush/patternengine/pkg/value"
)

// FunctionHandler is what a standalone plugin binary implements: a
// pure, leaf-level evaluation of an already-decoded value against its
// already-decoded constant bindings. name is the qualified pattern name
// the host invoked this plugin under, letting one binary multiplex
// several related functions (e.g. "semver::parse" and
// "semver::satisfies") behind a single dispensed handle.
type FunctionHandler interface {
	Call(name string, v *value.Value, bindings map[string]*value.Value) (satisfied bool, output *value.Value, severity string, reason string, err error)
}

// Serve starts the plugin's net/rpc server. Call this from a plugin
// binary's main(); it blocks until the host kills the process.
func Serve(handler FunctionHandler) {
	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins: map[string]goplugin.Plugin{
			"plugin": &FunctionPlugin{Impl: &handlerAdapter{handler: handler}},
		},
	})
}

// handlerAdapter decodes CallArgs' JSON payloads, runs the user's
// FunctionHandler, and re-encodes its result as a CallReply.
type handlerAdapter struct {
	handler FunctionHandler
}

func (a *handlerAdapter) Call(args CallArgs) (CallReply, error) {
	v, err := value.ParseJSON([]byte(args.ValueJSON))
	if err != nil {
		return CallReply{}, err
	}

	bindings := make(map[string]*value.Value, len(args.BindingJSON))
	for name, raw := range args.BindingJSON {
		bv, err := value.ParseJSON([]byte(raw))
		if err != nil {
			return CallReply{}, err
		}
		bindings[name] = bv
	}

	satisfied, output, severity, reason, err := a.handler.Call(args.PatternName, v, bindings)
	if err != nil {
		return CallReply{}, err
	}

	reply := CallReply{Satisfied: satisfied, Severity: severity, Reason: reason}
	if output != nil {
		data, err := output.MarshalJSON()
		if err != nil {
			return CallReply{}, err
		}
		reply.OutputSet = true
		reply.OutputJSON = string(data)
	}
	return reply, nil
}
