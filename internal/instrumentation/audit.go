package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ToolInvocation is the audit record of a single MCP tool call.
//
// UserID holds a full email address. General logs should go through
// LogAttrs, which reduces it to the domain; LogAuditAttrs emits the
// full identifier and belongs in access-controlled audit streams only.
type ToolInvocation struct {
	Tool   string
	UserID string

	// Engine routing for the call.
	Component string
	Operation string
	MeetingID string

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts the timer for a tool call. Finish it with
// one of the Complete methods.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{Tool: tool, StartTime: time.Now()}
}

// WithUser records the user the tool acts on behalf of.
func (ti *ToolInvocation) WithUser(userID string) *ToolInvocation {
	ti.UserID = userID
	return ti
}

// WithEngine records the engine component and operation serving the
// call.
func (ti *ToolInvocation) WithEngine(component, operation string) *ToolInvocation {
	ti.Component = component
	ti.Operation = operation
	return ti
}

// WithMeeting records the meeting the tool targets.
func (ti *ToolInvocation) WithMeeting(meetingID string) *ToolInvocation {
	ti.MeetingID = meetingID
	return ti
}

// WithSpanContext copies trace identifiers from the active span, if
// any.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		ti.TraceID = sc.TraceID().String()
		ti.SpanID = sc.SpanID().String()
	}
	return ti
}

// Complete stops the timer and records the outcome.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteWithError marks the invocation failed with the given error.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// CompleteSuccess marks the invocation successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// UserDomain returns the domain half of the user identifier for
// lower-cardinality logging.
func (ti *ToolInvocation) UserDomain() string {
	return ExtractUserDomain(ti.UserID)
}

// Status maps Success onto the shared status label values.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns the cardinality-controlled attribute set: the user
// appears only as a domain. Use LogAuditAttrs for the full record.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("user_domain", ti.UserDomain()),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	return ti.appendOptional(attrs, false)
}

// LogAuditAttrs returns the full attribute set including the user's
// email address. Route these only to secured audit storage.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("user", ti.UserID),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	return ti.appendOptional(attrs, true)
}

func (ti *ToolInvocation) appendOptional(attrs []slog.Attr, withSpan bool) []slog.Attr {
	if ti.Component != "" {
		attrs = append(attrs, slog.String("component", ti.Component))
	}
	if ti.Operation != "" {
		attrs = append(attrs, slog.String("operation", ti.Operation))
	}
	if ti.MeetingID != "" {
		attrs = append(attrs, slog.String("meeting_id", ti.MeetingID))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if withSpan && ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	return attrs
}

// AuditLogger writes structured audit entries for tool invocations.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates an enabled logger that anonymizes user
// identifiers. A nil logger falls back to slog.Default().
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger, enabled: true}
}

// NewAuditLoggerWithConfig creates a logger honoring the audit section
// of the instrumentation config.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// SetIncludePII switches between full and anonymized user identifiers.
func (al *AuditLogger) SetIncludePII(include bool) {
	al.includePII = include
}

// SetEnabled turns audit logging on or off.
func (al *AuditLogger) SetEnabled(enabled bool) {
	al.enabled = enabled
}

// LogToolInvocation writes one entry per tool call, at Warn level for
// failures. The IncludePII setting picks the attribute set.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	attrs := ti.LogAttrs()
	if al.includePII {
		attrs = ti.LogAuditAttrs()
	}

	if ti.Success {
		al.logger.Info("tool_executed", attrsToArgs(attrs)...)
	} else {
		al.logger.Warn("tool_failed", attrsToArgs(attrs)...)
	}
}

// LogToolAudit writes a full-detail audit entry, always including the
// user identifier regardless of the IncludePII setting.
func (al *AuditLogger) LogToolAudit(ti *ToolInvocation) {
	if !al.enabled {
		return
	}
	al.logger.Info("tool_audit", attrsToArgs(ti.LogAuditAttrs())...)
}

func attrsToArgs(attrs []slog.Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}
