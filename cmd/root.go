// Package cmd provides the CLI commands for the FortiGate MCP server.
//
// Commands:
//   - serve: MCP server on stdio transport (the default action)
//   - version: build information
//
// Signal handling and graceful shutdown are implemented via context
// cancellation.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fortigate-mcp",
	Short: "MCP server for FortiGate firewall management",
	Long: `fortigate-mcp exposes FortiGate firewall management as MCP tools:
firewall policies, network interfaces, static routes, address objects,
service objects and service groups.

Running fortigate-mcp without a subcommand starts the MCP server on
stdio, ready to be launched by an MCP client such as Claude Desktop.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
