// Package server provides the MCP server context, HTTP transport, and
// operational endpoints for the meetfewer application.
//
// # Key Components
//
// ServerContext owns the in-memory meeting store and the engine components
// built on top of it (scheduler, analyzer, scorer, optimizer, agenda
// generator). Tool handlers reach the engine exclusively through the
// context, which also carries the optional metrics recorder and audit
// logger.
//
// HTTPServer exposes the MCP server over streamable HTTP on /mcp and
// serves health endpoints on the same listener.
//
// HealthChecker implements Kubernetes liveness (/healthz) and readiness
// (/readyz) probes plus a detailed endpoint that reports store contents
// and uptime.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational metrics isolated from application traffic.
package server
