// Package cmd wires up the meetfewer CLI.
//
// Commands: serve (the MCP server, run by default when no subcommand is
// given), demo (seed sample data and print every analysis once),
// version, and generate-docs (markdown reference for the MCP tools).
package cmd
