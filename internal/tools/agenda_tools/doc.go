// Package agenda_tools provides MCP (Model Context Protocol) tools for agenda generation.
//
// This package exposes the agenda generator: it classifies a free-text
// meeting topic against a fixed set of templates and produces a
// structured, time-budgeted agenda with preparation tips.
package agenda_tools
