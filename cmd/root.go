package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meetfewer",
	Short: "Scheduling intelligence for teams with too many meetings",
	Long: `meetfewer keeps an in-memory store of meetings and user preferences and
exposes scheduling intelligence over MCP: finding optimal slots, detecting
conflicts, analyzing meeting patterns, balancing team workload, scoring
meeting effectiveness and recommending schedule optimizations.

Run it as an MCP server for AI assistants (the default), or use the demo
command to seed sample data and print every analysis once.`,
	SilenceUsage: true,
}

// version is injected by main at build time.
var version = "dev"

// SetVersion records the build version on the root command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.AddCommand(
		newServeCmd(),
		newDemoCmd(),
		newVersionCmd(),
		newGenerateDocsCmd(),
	)
}

// Execute runs the CLI. With no arguments it behaves as "meetfewer serve".
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meetfewer version %s\n" .Version}}`)

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
