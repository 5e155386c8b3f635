// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package pluginhost

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	goplugin "github.com/hashicorp/go-plugin"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/pkg/value"
)

// ErrHostClosed is returned when operating on a closed Host, mirroring
// the teacher's goplugin.Host lifecycle guard.
var ErrHostClosed = errors.New("pluginhost: host is closed")

// DialRetries bounds the exponential backoff used to connect to a freshly
// spawned plugin subprocess (its net/rpc listener may not be up yet).
const DialRetries = 3

// Host launches and owns binary Function plugins.
type Host struct {
	mu      sync.Mutex
	clients map[string]*goplugin.Client
	closed  bool
}

// NewHost builds an empty Host.
func NewHost() *Host {
	return &Host{clients: make(map[string]*goplugin.Client)}
}

// Load spawns execPath as a plugin process and adapts it into a
// registry.Function bound to name/params. qualifiedName and parameters
// are supplied by the caller (typically from the plugin's manifest) since
// a net/rpc handle carries no metadata of its own.
func (h *Host) Load(ctx context.Context, name, execPath string, parameters []string, order uint8) (registry.Function, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHostClosed
	}
	if _, ok := h.clients[name]; ok {
		h.mu.Unlock()
		return nil, oops.Code("PLUGIN_ALREADY_LOADED").Errorf("plugin %s already loaded", name)
	}
	h.mu.Unlock()

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins:         map[string]goplugin.Plugin{"plugin": &FunctionPlugin{}},
		Cmd:             exec.Command(execPath), // #nosec G204 -- execPath resolved from a trusted plugin manifest
	})

	var raw interface{}
	backoff := retry.WithMaxRetries(DialRetries, retry.NewExponential(50*time.Millisecond))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		rpcClient, err := client.Client()
		if err != nil {
			return retry.RetryableError(err)
		}
		dispensed, err := rpcClient.Dispense("plugin")
		if err != nil {
			return retry.RetryableError(err)
		}
		raw = dispensed
		return nil
	}); err != nil {
		client.Kill()
		return nil, oops.Code("PLUGIN_DIAL_FAILED").Wrapf(err, "connect to plugin %s", name)
	}

	handle, ok := raw.(Handler)
	if !ok {
		client.Kill()
		return nil, oops.Code("PLUGIN_PROTOCOL_MISMATCH").Errorf("plugin %s does not implement the Function protocol", name)
	}

	h.mu.Lock()
	h.clients[name] = client
	h.mu.Unlock()

	return &remoteFunction{name: name, params: parameters, order: order, handle: handle}, nil
}

// Unload kills the named plugin's subprocess.
func (h *Host) Unload(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.clients[name]
	if !ok {
		return oops.Code("PLUGIN_NOT_LOADED").Errorf("plugin %s is not loaded", name)
	}
	client.Kill()
	delete(h.clients, name)
	return nil
}

// Close kills every loaded plugin subprocess.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name, client := range h.clients {
		client.Kill()
		delete(h.clients, name)
	}
	h.closed = true
}

// remoteFunction adapts a dispensed Handler into registry.Function.
type remoteFunction struct {
	name   string
	params []string
	order  uint8
	handle Handler
}

var _ registry.Function = (*remoteFunction)(nil)
var _ ir.Function = (*remoteFunction)(nil)

func (f *remoteFunction) QualifiedName() string { return f.name }
func (f *remoteFunction) Parameters() []string  { return f.params }
func (f *remoteFunction) Order() uint8          { return f.order }

func (f *remoteFunction) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: fmt.Sprintf("out-of-process function %s", f.name)}
}

func (f *remoteFunction) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

// Call marshals v and every binding to JSON and invokes the plugin over
// net/rpc. A binding must already be a constant: this host has no way to
// hand the plugin process a callback into the local Evaluator, so a
// pattern-valued binding is rejected rather than silently mishandled.
func (f *remoteFunction) Call(_ context.Context, v *value.Value, bindings map[string]*ir.Pattern, _ *lir.World, _ registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	args := CallArgs{PatternName: f.name, BindingJSON: make(map[string]string, len(bindings))}

	raw, err := v.MarshalJSON()
	if err != nil {
		return registry.FunctionEvaluationResult{}, oops.Code("PLUGIN_ENCODE_FAILED").Wrapf(err, "marshal value for plugin %s", f.name)
	}
	args.ValueJSON = string(raw)

	for name, pat := range bindings {
		if pat == nil || pat.Inner.Kind != ir.InnerConst {
			return registry.FunctionEvaluationResult{}, oops.Code("PLUGIN_ARGUMENT_NOT_CONST").Errorf("plugin %s: argument %s is not a constant", f.name, name)
		}
		encoded, err := pat.Inner.ConstValue.MarshalJSON()
		if err != nil {
			return registry.FunctionEvaluationResult{}, oops.Code("PLUGIN_ENCODE_FAILED").Wrapf(err, "marshal argument %s for plugin %s", name, f.name)
		}
		args.BindingJSON[name] = string(encoded)
	}

	reply, err := f.handle.Call(args)
	if err != nil {
		return registry.FunctionEvaluationResult{}, oops.Code("PLUGIN_CALL_FAILED").Wrapf(err, "call plugin %s", f.name)
	}

	sev, _ := rationale.ParseSeverity(reply.Severity)
	result := registry.FunctionEvaluationResult{Satisfied: reply.Satisfied, Severity: sev, Reason: reply.Reason}
	if reply.OutputSet {
		out, err := value.ParseJSON([]byte(reply.OutputJSON))
		if err != nil {
			return registry.FunctionEvaluationResult{}, oops.Code("PLUGIN_DECODE_FAILED").Wrapf(err, "decode output from plugin %s", f.name)
		}
		result.Output = out
	}
	return result, nil
}
