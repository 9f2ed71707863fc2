package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrComponent = "component"
	attrTool      = "tool"
	attrUser      = "user"
)

// Metrics records the module's observability metrics. The zero value
// is a usable no-op recorder; every Record method checks its
// instruments before writing.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	storedMeetings metric.Int64UpDownCounter

	engineOperationsTotal   metric.Int64Counter
	engineOperationDuration metric.Float64Histogram

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels admits high-cardinality labels such as user
	// hashes.
	detailedLabels bool
}

// NewMetrics registers all instruments on the meter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}
	var err error

	if m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	if m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	); err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	if m.storedMeetings, err = meter.Int64UpDownCounter(
		"stored_meetings",
		metric.WithDescription("Number of meetings currently held in the store"),
		metric.WithUnit("{meeting}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create stored_meetings gauge: %w", err)
	}

	if m.engineOperationsTotal, err = meter.Int64Counter(
		"scheduling_operations_total",
		metric.WithDescription("Total number of scheduling engine operations"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create scheduling_operations_total counter: %w", err)
	}

	if m.engineOperationDuration, err = meter.Float64Histogram(
		"scheduling_operation_duration_seconds",
		metric.WithDescription("Scheduling engine operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	); err != nil {
		return nil, fmt.Errorf("failed to create scheduling_operation_duration_seconds histogram: %w", err)
	}

	if m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	if m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	); err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest counts a request and records its latency, labeled
// by method, path and status code.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordEngineOperation counts an engine operation and records its
// latency, labeled by component, operation and status.
func (m *Metrics) RecordEngineOperation(ctx context.Context, component, operation, status string, duration time.Duration) {
	if m.engineOperationsTotal == nil || m.engineOperationDuration == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrComponent, component),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.engineOperationsTotal.Add(ctx, 1, attrs)
	m.engineOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordToolInvocation counts an MCP tool call and records its
// latency, labeled by tool name and status.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordToolInvocationWithUser is RecordToolInvocation plus the
// anonymized user hash, which is attached only when detailed labels
// are enabled.
func (m *Metrics) RecordToolInvocationWithUser(ctx context.Context, toolName, status, userHash string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}
	kvs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && userHash != "" {
		kvs = append(kvs, attribute.String(attrUser, userHash))
	}
	attrs := metric.WithAttributes(kvs...)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// AddStoredMeetings moves the stored meetings gauge by delta, positive
// on insert and negative on removal.
func (m *Metrics) AddStoredMeetings(ctx context.Context, delta int64) {
	if m.storedMeetings == nil {
		return
	}
	m.storedMeetings.Add(ctx, delta)
}
