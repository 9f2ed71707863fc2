package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetfewer/meetfewer/internal/instrumentation"
	"github.com/meetfewer/meetfewer/internal/meetings"
	"github.com/meetfewer/meetfewer/internal/seed"
	"github.com/meetfewer/meetfewer/internal/server"
	"github.com/meetfewer/meetfewer/internal/tools/agenda_tools"
	"github.com/meetfewer/meetfewer/internal/tools/insight_tools"
	"github.com/meetfewer/meetfewer/internal/tools/scheduling_tools"
)

// MetricsConfig holds metrics server settings
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// DemoConfig holds demo dataset settings
type DemoConfig struct {
	Enabled  bool
	Seed     int64
	Meetings int
}

func newServeCmd() *cobra.Command {
	var (
		transport        string
		httpAddr         string
		disableStreaming bool
		// Demo dataset configuration
		demoData     bool
		demoSeed     int64
		demoMeetings int
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide scheduling
intelligence tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport with health endpoints

The store is empty on startup unless --demo-data is given, in which case a
deterministic sample dataset of meetings and user preferences is seeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{Enabled: metricsEnabled, Addr: metricsAddr}
			demoConfig := DemoConfig{Enabled: demoData, Seed: demoSeed, Meetings: demoMeetings}
			return runServe(transport, httpAddr, disableStreaming, demoConfig, metricsConfig)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&disableStreaming, "disable-streaming", false, "Disable streaming for HTTP transport (for compatibility with certain clients)")
	cmd.Flags().BoolVar(&demoData, "demo-data", false, "Seed the store with a deterministic sample dataset. Can also use MEETFEWER_DEMO_DATA env var.")
	cmd.Flags().Int64Var(&demoSeed, "demo-seed", 42, "Random seed for the demo dataset")
	cmd.Flags().IntVar(&demoMeetings, "demo-meetings", seed.DefaultMeetingCount, "Number of demo meetings to seed")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport, httpAddr string, disableStreaming bool, demoConfig DemoConfig, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled {
		if os.Getenv("METRICS_ENABLED") == "true" {
			metricsConfig.Enabled = true
		}
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == ":9090" {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Load demo config from environment if not set via flags
	if !demoConfig.Enabled {
		if os.Getenv("MEETFEWER_DEMO_DATA") == "true" {
			demoConfig.Enabled = true
		}
	}
	if envSeed := os.Getenv("MEETFEWER_DEMO_SEED"); envSeed != "" {
		if parsed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			demoConfig.Seed = parsed
		} else {
			log.Printf("Warning: invalid MEETFEWER_DEMO_SEED value %q, using default", envSeed)
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server stopped with error: %v", err)
			}
		}()
	}

	// Build the store, optionally seeded with demo data
	store := meetings.NewStore(nil)
	if demoConfig.Enabled {
		builder := seed.NewBuilder(demoConfig.Seed, nil)
		count, err := builder.Populate(store, demoConfig.Meetings)
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		if transport != "stdio" {
			log.Printf("Seeded %d demo meetings for %d users (seed %d)", count, len(seed.Users()), demoConfig.Seed)
		}
	}

	serverContext, err := server.NewServerContextWithStore(shutdownCtx, store)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
		// Account for demo meetings seeded before the recorder was attached.
		serverContext.RecordMeetingsStored(shutdownCtx, int64(store.Len()))
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("meetfewer", version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register all tools
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, disableStreaming)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, disableStreaming bool) error {
	health := server.NewHealthChecker(serverContext)

	httpServer, err := server.NewHTTPServer(mcpSrv, server.HTTPServerConfig{
		DisableStreaming: disableStreaming,
		HealthChecker:    health,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		health.SetReady(true)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Scheduling",
			register: func() error {
				return scheduling_tools.RegisterSchedulingTools(mcpSrv, ctx)
			},
		},
		{
			name: "Insights",
			register: func() error {
				return insight_tools.RegisterInsightTools(mcpSrv, ctx)
			},
		},
		{
			name: "Agenda",
			register: func() error {
				return agenda_tools.RegisterAgendaTools(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
