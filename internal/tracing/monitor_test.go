// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package tracing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/tracing"
	"github.com/holomush/patternengine/pkg/value"
)

// TestMain verifies the Monitor's subscriber goroutines and fanout channels
// never outlive the test that started them.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubscriberReceivesMatchingEvents(t *testing.T) {
	m := tracing.New()
	ch, unsubscribe, err := m.Subscribe("lang::*")
	require.NoError(t, err)
	defer unsubscribe()

	name := ir.PatternName{Package: []string{"lang"}, Name: "and"}
	pattern := &ir.Pattern{Name: &name}

	_, handle := m.Start(context.Background(), value.NewInteger(1), pattern)
	handle.Complete(&rationale.EvaluationResult{Satisfied: true})

	select {
	case evt := <-ch:
		require.NotNil(t, evt.Start)
		assert.Equal(t, "lang::and", evt.Start.PatternName)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for start event")
	}

	select {
	case evt := <-ch:
		require.NotNil(t, evt.Complete)
		assert.Equal(t, tracing.CompletionOutput, evt.Complete.Completion)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for complete event")
	}
}

func TestSubscriberIgnoresNonMatchingPath(t *testing.T) {
	m := tracing.New()
	ch, unsubscribe, err := m.Subscribe("billing::*")
	require.NoError(t, err)
	defer unsubscribe()

	name := ir.PatternName{Package: []string{"lang"}, Name: "and"}
	pattern := &ir.Pattern{Name: &name}
	_, handle := m.Start(context.Background(), value.NewInteger(1), pattern)
	handle.Complete(&rationale.EvaluationResult{Satisfied: true})

	select {
	case evt := <-ch:
		t.Fatalf("unexpected event delivered: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCompleteReportsErrorSeverity(t *testing.T) {
	m := tracing.New()
	ch, unsubscribe, err := m.Subscribe("*")
	require.NoError(t, err)
	defer unsubscribe()

	pattern := &ir.Pattern{}
	_, handle := m.Start(context.Background(), value.NewInteger(1), pattern)
	handle.Complete(&rationale.EvaluationResult{Satisfied: false, Severity: rationale.SeverityError, Reason: "boom"})

	<-ch // start
	evt := <-ch
	require.NotNil(t, evt.Complete)
	assert.Equal(t, tracing.CompletionError, evt.Complete.Completion)
	assert.Equal(t, "boom", evt.Complete.Err)
}
