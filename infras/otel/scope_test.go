package otel_test

import (
	"context"
	"errors"
	"testing"

	"resto/infras/otel"
	"resto/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, err error, attrs map[string]any) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)
	scope.SetAttributes(attrs)
	scope.TraceIfError(err)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestTraceIfErrorServerFailure(t *testing.T) {
	span := record(t, errors.New("connection refused"), nil)

	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Len(t, span.Events(), 1)
	assert.Equal(t, "exception", span.Events()[0].Name)
}

func TestTraceIfErrorClientFailure(t *testing.T) {
	span := record(t, failure.BadRequestFromString("cannot move order from completed to cooking"), nil)

	assert.Equal(t, codes.Unset, span.Status().Code)
	require.Len(t, span.Events(), 1)
	assert.Equal(t, "request.rejected", span.Events()[0].Name)
}

func TestTraceIfErrorNil(t *testing.T) {
	span := record(t, nil, map[string]any{"order.id": "o-1", "items": 2, "paid": true})

	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Empty(t, span.Events())
	assert.Len(t, span.Attributes(), 3)
}
