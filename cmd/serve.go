package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/netopslab/fortigate-mcp/internal/config"
	"github.com/netopslab/fortigate-mcp/internal/firewall"
	"github.com/netopslab/fortigate-mcp/internal/fortigate"
	"github.com/netopslab/fortigate-mcp/internal/log"
	"github.com/netopslab/fortigate-mcp/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio transport",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serverName identifies this server to MCP clients.
const serverName = "fortigate-mcp"

// runServe initializes and starts the MCP server on stdio transport.
//
// A failed device-client construction is not fatal: the server still
// starts and every tool reports the client as unavailable, so an MCP
// client can surface the misconfiguration instead of seeing the server
// vanish.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{
		Level: parseLogLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting MCP server", "version", AppVersion)

	var fw *firewall.Service
	client, err := fortigate.New(cfg, logger)
	if err != nil {
		logger.Error("FortiGate client initialization failed, tools will report it as unavailable", "error", err)
	} else {
		fw = firewall.New(client, logger)
	}

	server, err := mcp.NewServer(mcp.Config{
		Name:     serverName,
		Version:  AppVersion,
		Logger:   logger,
		Firewall: fw,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	logger.Info("MCP server ready", "name", serverName, "version", AppVersion, "transport", "stdio")

	if err := server.Run(ctx, &mcpSdk.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	logger.Info("MCP server shut down gracefully")
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
