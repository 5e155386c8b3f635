// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package tracing implements the Monitor (C7 §4.7.2, §15): an atomic
// correlation counter fanning Start/Complete events out to path-filtered
// subscribers over bounded channels, translated from the original
// engine's runtime/monitor/dispatcher.rs (tokio::sync::mpsc, try_send,
// disconnect-on-closed) to Go buffered channels and a mutex-guarded
// subscriber list. A full channel drops the event rather than blocking
// evaluation, matching spec §5's resource policy.
package tracing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/patternengine/internal/eval"
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/metrics"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/pkg/value"
)

// subscriberCapacity mirrors the original dispatcher's channel(500).
const subscriberCapacity = 500

var tracer = otel.Tracer("github.com/holomush/patternengine/internal/tracing")

// Completion discriminates how a traced evaluation finished.
type Completion int

const (
	CompletionOutput Completion = iota
	CompletionError
)

// StartEvent is emitted when a pattern evaluation begins.
type StartEvent struct {
	Correlation uint64
	Timestamp   time.Time
	Input       *value.Value
	PatternName string
}

// CompleteEvent is emitted when a pattern evaluation ends, successfully
// or not; a dropped top-level evaluation leaves its Start orphaned —
// subscribers must tolerate that (spec §5 "Cancellation").
type CompleteEvent struct {
	Correlation uint64
	Timestamp   time.Time
	PatternName string
	Completion  Completion
	Err         string
	Elapsed     time.Duration
}

// Event is the sum type fanned out to subscribers.
type Event struct {
	Start    *StartEvent
	Complete *CompleteEvent
}

type subscriber struct {
	filter       glob.Glob
	ch           chan Event
	disconnected bool
}

// Monitor is the process-wide trace fanout point; it satisfies
// internal/eval's Tracer interface structurally (eval never imports
// tracing, the same acyclic shape registry uses for Evaluator).
type Monitor struct {
	correlation uint64
	mu          sync.Mutex
	subs        []*subscriber
}

// New builds an empty Monitor.
func New() *Monitor { return &Monitor{} }

// Subscribe registers a receiver for every traced pattern whose qualified
// name matches pathGlob (e.g. "lang::*", "billing::**"). The returned
// channel is closed by Unsubscribe, never by the Monitor itself.
func (m *Monitor) Subscribe(pathGlob string) (<-chan Event, func(), error) {
	g, err := glob.Compile(pathGlob, ':')
	if err != nil {
		return nil, nil, err
	}
	sub := &subscriber{filter: g, ch: make(chan Event, subscriberCapacity)}

	m.mu.Lock()
	m.subs = append(m.subs, sub)
	m.mu.Unlock()

	unsubscribe := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		sub.disconnected = true
		close(sub.ch)
	}
	return sub.ch, unsubscribe, nil
}

// Start implements eval.Tracer: it issues a correlation ID, emits a
// StartEvent, opens an OTel span, and returns a handle that emits the
// matching CompleteEvent and ends the span.
func (m *Monitor) Start(ctx context.Context, v *value.Value, pattern *ir.Pattern) (context.Context, eval.TraceHandle) {
	correlation := atomic.AddUint64(&m.correlation, 1)
	name := ""
	if pattern.Name != nil {
		name = pattern.Name.Qualified()
	}

	spanCtx, span := tracer.Start(ctx, "pattern.evaluate", trace.WithAttributes())
	m.fanout(Event{Start: &StartEvent{Correlation: correlation, Timestamp: now(), Input: v, PatternName: name}}, name)

	return spanCtx, &Handle{monitor: m, correlation: correlation, name: name, span: span, started: now()}
}

// Handle closes out one traced evaluation.
type Handle struct {
	monitor     *Monitor
	correlation uint64
	name        string
	span        trace.Span
	started     time.Time
}

// Complete implements eval.TraceHandle.
func (h *Handle) Complete(res *rationale.EvaluationResult) {
	elapsed := now().Sub(h.started)
	evt := CompleteEvent{Correlation: h.correlation, Timestamp: now(), PatternName: h.name, Elapsed: elapsed}
	if res.Severity == rationale.SeverityError && !res.Satisfied {
		evt.Completion = CompletionError
		evt.Err = res.Reason
	} else {
		evt.Completion = CompletionOutput
	}
	h.monitor.fanout(Event{Complete: &evt}, h.name)
	h.span.End()
	metrics.RecordEvaluation(h.name, res.Severity, elapsed)
}

func (m *Monitor) fanout(evt Event, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	eventKind := "start"
	if evt.Complete != nil {
		eventKind = "complete"
	}

	live := m.subs[:0]
	for _, sub := range m.subs {
		if sub.disconnected {
			continue
		}
		if sub.filter.Match(name) {
			select {
			case sub.ch <- evt:
			default:
				metrics.RecordTraceDrop(eventKind)
			}
		}
		live = append(live, sub)
	}
	m.subs = live
}

// now is a seam so tests can avoid a live wall clock if needed; real use
// just wraps time.Now.
func now() time.Time { return time.Now() }
