package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies this module's tracer.
const TracerName = "github.com/meetfewer/meetfewer"

// Span attribute keys shared by all spans.
const (
	SpanAttrTool         = "mcp.tool"
	SpanAttrComponent    = "engine.component"
	SpanAttrOperation    = "engine.operation"
	SpanAttrUser         = "mcp.user"
	SpanAttrStatus       = "mcp.status"
	SpanAttrMeetingID    = "meeting.id"
	SpanAttrParticipants = "meeting.participants"
	SpanAttrReadOnly     = "mcp.read_only"
)

// SpanAttributeBuilder accumulates span attributes under the shared
// keys. User and meeting attributes are skipped when empty.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{attrs: make([]attribute.KeyValue, 0, 10)}
}

func (b *SpanAttributeBuilder) WithTool(tool string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrTool, tool))
	return b
}

func (b *SpanAttributeBuilder) WithComponent(component string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrComponent, component))
	return b
}

func (b *SpanAttributeBuilder) WithOperation(operation string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrOperation, operation))
	return b
}

// WithUser takes an already anonymized user hash, never a raw address.
func (b *SpanAttributeBuilder) WithUser(userHash string) *SpanAttributeBuilder {
	if userHash != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrUser, userHash))
	}
	return b
}

func (b *SpanAttributeBuilder) WithMeeting(meetingID string) *SpanAttributeBuilder {
	if meetingID != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrMeetingID, meetingID))
	}
	return b
}

func (b *SpanAttributeBuilder) WithParticipants(count int) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Int(SpanAttrParticipants, count))
	return b
}

func (b *SpanAttributeBuilder) WithReadOnly(readOnly bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Bool(SpanAttrReadOnly, readOnly))
	return b
}

// Build returns the accumulated attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

func moduleTracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(TracerName)
}

// StartSpan opens a span with the given name and attributes. The
// caller must end it.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return moduleTracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartToolSpan opens a server-kind span named after the MCP tool.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{attribute.String(SpanAttrTool, toolName)}, attrs...)
	return moduleTracer().Start(ctx, "tool."+toolName,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartEngineSpan opens an internal-kind span for an engine operation,
// tagged with the component and operation.
func StartEngineSpan(ctx context.Context, component, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{
		attribute.String(SpanAttrComponent, component),
		attribute.String(SpanAttrOperation, operation),
	}, attrs...)
	return moduleTracer().Start(ctx, "engine."+component+"."+operation,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// SetSpanError records the error and flips the span status. A nil
// error is a no-op.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks the span OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent attaches a named event with optional attributes.
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the current trace ID, or "" outside a valid span.
func GetTraceID(ctx context.Context) string {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// GetSpanID returns the current span ID, or "" outside a valid span.
func GetSpanID(ctx context.Context) string {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		return sc.SpanID().String()
	}
	return ""
}

// SpanContextString renders "trace_id=X span_id=Y" for log correlation,
// or "" outside a valid span.
func SpanContextString(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return "trace_id=" + sc.TraceID().String() + " span_id=" + sc.SpanID().String()
}
