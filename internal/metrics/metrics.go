// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package metrics is the ambient Prometheus layer for evaluation
// telemetry (§16): a duration histogram and a per-pattern/severity
// evaluation counter, grounded on access/policy's metrics.go shape
// (promauto.NewHistogram/NewCounterVec, one Record* entrypoint called
// after each completed evaluation). This is deliberately thin — no
// dispatch or export subsystem, just the counters and histogram an
// embedder scrapes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/holomush/patternengine/internal/rationale"
)

var (
	evaluateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "patternengine_evaluate_duration_seconds",
		Help:    "Histogram of pattern evaluation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
	patternEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "patternengine_pattern_evaluations_total",
		Help: "Total number of pattern evaluations by pattern name and severity",
	}, []string{"pattern", "severity"})
	traceEventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "patternengine_trace_events_dropped_total",
		Help: "Total number of trace events dropped because a subscriber's channel was full",
	}, []string{"event"})
)

// RecordEvaluation records one completed traced pattern evaluation (the
// tracing Monitor calls it for nested evaluations too, not only the
// top-level one): its
// pattern name (qualified, or "" for an anonymous/inline pattern), the
// folded severity it finished with, and how long it took.
func RecordEvaluation(patternName string, severity rationale.Severity, duration time.Duration) {
	evaluateDuration.Observe(duration.Seconds())
	if patternName == "" {
		patternName = "unknown"
	}
	patternEvaluations.WithLabelValues(patternName, severity.String()).Inc()
}

// RecordTraceDrop records a trace event the Monitor could not deliver
// to a subscriber because its channel was at capacity.
func RecordTraceDrop(event string) {
	traceEventsDropped.WithLabelValues(event).Inc()
}
