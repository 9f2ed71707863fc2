package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPServer wraps an MCP server with a streamable HTTP transport and
// health endpoints for Kubernetes probes.
type HTTPServer struct {
	mcpServer        *mcpserver.MCPServer
	health           *HealthChecker
	httpServer       *http.Server
	disableStreaming bool
}

// HTTPServerConfig holds configuration for the HTTP transport.
type HTTPServerConfig struct {
	// DisableStreaming turns the /mcp endpoint into plain request/response
	// mode for clients that cannot consume SSE streams.
	DisableStreaming bool

	// HealthChecker serves /healthz and /readyz on the same listener.
	// Optional; endpoints are omitted when nil.
	HealthChecker *HealthChecker
}

// NewHTTPServer creates a new HTTP transport around the given MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) (*HTTPServer, error) {
	if mcpServer == nil {
		return nil, fmt.Errorf("mcp server is required for HTTP transport")
	}

	return &HTTPServer{
		mcpServer:        mcpServer,
		health:           config.HealthChecker,
		disableStreaming: config.DisableStreaming,
	}, nil
}

// Start starts the HTTP server on addr in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	var streamable http.Handler
	if s.disableStreaming {
		streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
			mcpserver.WithDisableStreaming(true),
		)
	} else {
		streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
		)
	}
	mux.Handle("/mcp", streamable)

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting HTTP transport", "addr", addr, "streaming", !s.disableStreaming)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down HTTP transport")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
