package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newMetricsRecorder(t *testing.T, detailedLabels bool) (*Metrics, context.Context) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	config := testConfig(ExporterPrometheus, ExporterNone)
	config.DetailedLabels = detailedLabels
	provider, err := NewProvider(ctx, config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	metrics := provider.Metrics()
	require.NotNil(t, metrics)
	return metrics, ctx
}

func TestMetricsRecorders(t *testing.T) {
	metrics, ctx := newMetricsRecorder(t, false)

	// Writes across the instrument set complete without panicking.
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "POST", "/mcp", 500, 50*time.Millisecond)

	metrics.RecordEngineOperation(ctx, ComponentScheduler, OperationFindSlots, StatusSuccess, 2*time.Millisecond)
	metrics.RecordEngineOperation(ctx, ComponentScorer, OperationScore, StatusError, time.Millisecond)
	metrics.RecordEngineOperation(ctx, ComponentStore, OperationCreate, StatusSuccess, 100*time.Microsecond)

	metrics.RecordToolInvocation(ctx, "find_optimal_slots", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "create_meeting", StatusError, 500*time.Millisecond)

	metrics.AddStoredMeetings(ctx, 1)
	metrics.AddStoredMeetings(ctx, 5)
	metrics.AddStoredMeetings(ctx, -2)
}

func TestMetricsUserLabelGating(t *testing.T) {
	// Without detailed labels the user hash is dropped; with them it is
	// attached. Either way the write succeeds.
	plain, ctx := newMetricsRecorder(t, false)
	plain.RecordToolInvocationWithUser(ctx, "find_optimal_slots", StatusSuccess, "user:abc123", 100*time.Millisecond)

	detailed, ctx := newMetricsRecorder(t, true)
	detailed.RecordToolInvocationWithUser(ctx, "find_optimal_slots", StatusSuccess, "user:abc123", 100*time.Millisecond)
}

func TestMetricsZeroValueIsNoOp(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, Config{Enabled: false})
	require.NoError(t, err)

	metrics := provider.Metrics()
	require.NotNil(t, metrics)

	// Every recorder tolerates uninitialized instruments.
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, 100*time.Millisecond)
	metrics.RecordEngineOperation(ctx, ComponentScheduler, OperationFindSlots, StatusSuccess, 2*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "test_tool", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocationWithUser(ctx, "test_tool", StatusSuccess, "user:abc123", 100*time.Millisecond)
	metrics.AddStoredMeetings(ctx, 1)
}
