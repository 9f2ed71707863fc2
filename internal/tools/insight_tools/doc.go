// Package insight_tools provides MCP (Model Context Protocol) tools for meeting analytics.
//
// This package exposes the analysis side of the scheduling engine: pattern
// analysis over a user's meeting history, team workload balancing,
// per-meeting effectiveness scoring, and schedule-level optimization
// recommendations.
package insight_tools
