// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/patternengine/internal/rationale"
)

func TestMetricsRegistered(t *testing.T) {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, family := range families {
		registered[family.GetName()] = true
	}

	for _, name := range []string{
		"patternengine_evaluate_duration_seconds",
		"patternengine_pattern_evaluations_total",
		"patternengine_trace_events_dropped_total",
	} {
		assert.True(t, registered[name], "metric %q should be registered", name)
	}
}

func TestRecordEvaluationIncrementsCounterAndHistogram(t *testing.T) {
	initial := testutil.ToFloat64(patternEvaluations.WithLabelValues("demo::greeting", "none"))
	count := testutil.CollectAndCount(evaluateDuration)

	RecordEvaluation("demo::greeting", rationale.SeverityNone, 5*time.Millisecond)

	updated := testutil.ToFloat64(patternEvaluations.WithLabelValues("demo::greeting", "none"))
	assert.Equal(t, initial+1, updated)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(evaluateDuration), count+1)
}

func TestRecordEvaluationDefaultsUnnamedPattern(t *testing.T) {
	initial := testutil.ToFloat64(patternEvaluations.WithLabelValues("unknown", "error"))

	RecordEvaluation("", rationale.SeverityError, time.Millisecond)

	updated := testutil.ToFloat64(patternEvaluations.WithLabelValues("unknown", "error"))
	assert.Equal(t, initial+1, updated)
}

func TestRecordTraceDropIncrementsCounter(t *testing.T) {
	initial := testutil.ToFloat64(traceEventsDropped.WithLabelValues("start"))

	RecordTraceDrop("start")

	updated := testutil.ToFloat64(traceEventsDropped.WithLabelValues("start"))
	assert.Equal(t, initial+1, updated)
}
