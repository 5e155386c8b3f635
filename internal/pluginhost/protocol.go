// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package pluginhost hosts out-of-process Function plugins (§13) over
// HashiCorp go-plugin's net/rpc transport, generalized from
// plugin/goplugin's gRPC lifecycle (Load/Unload/Close, handshake cookie,
// subprocess Cmd) to a net/rpc Plugin: go-plugin's gRPC kind needs a
// generated PluginClient/PluginServer from a .proto, and no .proto for
// the teacher's plugin service survived distillation into this pack —
// only its _test.go files did. net/rpc needs no generated stubs, so the
// same handshake/lifecycle shape carries over without fabricating code
// behind a proto that was never retrieved.
//
// A hosted Function is necessarily a leaf: its bindings may only be
// already-evaluated constants, never a pattern the plugin would need to
// recurse back into the host's Evaluator for. Call rejects anything
// else rather than pretend to support it.
package pluginhost

import (
	"net/rpc"

	goplugin "github.com/hashicorp/go-plugin"
)

// HandshakeConfig is shared verbatim between host and plugin processes;
// a mismatch here is a protocol version or cookie bug, not a runtime one.
var HandshakeConfig = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PATTERNENGINE_PLUGIN",
	MagicCookieValue: "patternengine-v1",
}

// CallArgs is the net/rpc request: v and every binding are carried as
// JSON text, the same "payload is an opaque encoded blob" choice
// pluginsdk.Event makes for its Payload field.
type CallArgs struct {
	PatternName string
	ValueJSON   string
	BindingJSON map[string]string
}

// CallReply is the net/rpc response.
type CallReply struct {
	Satisfied bool
	OutputSet bool
	OutputJSON string
	Severity  string
	Reason    string
}

// Handler is what a plugin binary implements; pluginhost.Serve adapts it
// to the net/rpc wire.
type Handler interface {
	Call(args CallArgs) (CallReply, error)
}

// FunctionPlugin implements goplugin.Plugin for the net/rpc protocol.
type FunctionPlugin struct {
	Impl Handler
}

// Server is called in the plugin process to construct the RPC server.
func (p *FunctionPlugin) Server(*goplugin.MuxBroker) (interface{}, error) {
	return &rpcServer{impl: p.Impl}, nil
}

// Client is called in the host process to construct the RPC client.
func (p *FunctionPlugin) Client(_ *goplugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &rpcClient{client: c}, nil
}

type rpcServer struct {
	impl Handler
}

func (s *rpcServer) Call(args CallArgs, resp *CallReply) error {
	r, err := s.impl.Call(args)
	if err != nil {
		return err
	}
	*resp = r
	return nil
}

type rpcClient struct {
	client *rpc.Client
}

func (c *rpcClient) Call(args CallArgs) (CallReply, error) {
	var resp CallReply
	err := c.client.Call("Plugin.Call", args, &resp)
	return resp, err
}
