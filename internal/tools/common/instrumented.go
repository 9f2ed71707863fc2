package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetfewer/meetfewer/internal/instrumentation"
	"github.com/meetfewer/meetfewer/internal/server"
)

// ToolHandlerFunc is the mcp-go tool handler signature.
type ToolHandlerFunc = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with invocation metrics
// and audit logging. Handlers run unwrapped when the server context has
// neither a metrics recorder nor an audit logger.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return instrumented(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithEngine additionally records which engine
// component and operation served the tool, so the per-tool MCP metrics
// and the per-component engine metrics stay correlated.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithEngine("my_tool", "scheduler", "find_slots", sc, handler))
func InstrumentedToolHandlerWithEngine(toolName, component, operation string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return instrumented(toolName, component, operation, sc, handler)
}

func instrumented(toolName, component, operation string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).WithSpanContext(ctx)
		if component != "" {
			invocation.WithEngine(component, operation)
		}
		if user := GetUserFromArgs(request.GetArguments()); user != "" {
			invocation.WithUser(user)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		// A tool-level error result counts as a failure even though the
		// handler returned err == nil.
		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			invocation.CompleteWithError(err)
		case result != nil && result.IsError:
			status = instrumentation.StatusError
			invocation.Complete(false, nil)
		default:
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
			if component != "" {
				metrics.RecordEngineOperation(ctx, component, operation, status, duration)
			}
		}
		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}
		return result, err
	}
}
