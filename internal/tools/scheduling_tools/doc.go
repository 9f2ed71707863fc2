// Package scheduling_tools provides MCP (Model Context Protocol) tools for meeting scheduling.
//
// This package exposes the scheduling engine through a standardized MCP interface,
// allowing AI assistants to create meetings, find optimal time slots, and detect
// scheduling conflicts on behalf of users.
package scheduling_tools
