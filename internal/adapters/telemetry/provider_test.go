package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/telemetry"
)

func TestOTelTracer_SpanLifecycle(t *testing.T) {
	tracer := telemetry.NewOTelTracer("pinset-test")
	defer func() {
		require.NoError(t, tracer.Shutdown(context.Background()))
	}()

	ctx, span := tracer.Start(context.Background(), "check")
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttribute("manifests", 2)
	span.SetAttribute("packages", []string{"black", "mypy"})
	span.RecordError(errors.New("manifest validation failed"))
	span.End()
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(context.Background(), "lock")
	assert.NotNil(t, ctx)
	require.NotNil(t, span)

	// All span operations are safe no-ops.
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}
