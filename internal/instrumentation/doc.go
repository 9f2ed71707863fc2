// Package instrumentation wires OpenTelemetry metrics and tracing into
// the meetfewer server.
//
// A Provider owns the meter and tracer providers and hands out a
// Metrics recorder plus span helpers. Metrics cover three layers:
// HTTP transport (http_requests_total, http_request_duration_seconds,
// stored_meetings), the scheduling engine (scheduling_operations_total,
// scheduling_operation_duration_seconds) and MCP tools
// (mcp_tool_invocations_total, mcp_tool_duration_seconds). Spans follow
// the same split, named tool.<name> and engine.<component>.<operation>.
//
// Exporters are selected through Config, normally populated from the
// environment by DefaultConfig: Prometheus scrape, OTLP push or stdout
// for metrics, and OTLP, stdout or none for traces. See config.go for
// the full variable list.
//
// Typical setup:
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolInvocation(ctx, "find_optimal_slots", instrumentation.StatusSuccess, time.Since(start))
//
// User identifiers never reach metric labels directly. The audit and
// cardinality helpers reduce emails to domains (or salted hashes when
// detailed labels are enabled) before they are attached anywhere.
package instrumentation
