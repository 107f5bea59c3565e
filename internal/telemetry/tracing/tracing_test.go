package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingSpan struct {
	noop.Span

	ended       bool
	status      codes.Code
	description string
	recorded    []error
}

func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }

func (s *recordingSpan) SetStatus(code codes.Code, description string) {
	s.status = code
	s.description = description
}

func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.recorded = append(s.recorded, err)
}

func TestEndSpanWithErrCheck(t *testing.T) {
	t.Run("no error", func(t *testing.T) {
		span := &recordingSpan{}
		var err error
		EndSpanWithErrCheck(span, &err)
		assert.True(t, span.ended)
		assert.Equal(t, codes.Unset, span.status)
		assert.Empty(t, span.recorded)
	})

	t.Run("nil pointer", func(t *testing.T) {
		span := &recordingSpan{}
		EndSpanWithErrCheck(span, nil)
		assert.True(t, span.ended)
	})

	t.Run("with error", func(t *testing.T) {
		span := &recordingSpan{}
		err := errors.New("invalid metric [Fat]")
		EndSpanWithErrCheck(span, &err)
		assert.True(t, span.ended)
		assert.Equal(t, codes.Error, span.status)
		assert.Equal(t, "invalid metric [Fat]", span.description)
		require.Len(t, span.recorded, 1)
	})
}

func TestHoneycombSetup_Disabled(t *testing.T) {
	shutdown, err := HoneycombSetup(false, "fitinsights-test", nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()
}
