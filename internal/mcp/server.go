// Package mcp exposes the firewall resource operations as MCP tools.
//
// Each tool accepts its resource-specific arguments, short-circuits with
// a fixed error when no device client is available, delegates to the
// firewall service, and reshapes the outcome mapping into the JSON
// contract the tool promises. Failures never escape a handler: every
// path terminates in a returned mapping, with IsError set when it
// carries an "error" key.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/netopslab/fortigate-mcp/internal/firewall"
	"github.com/netopslab/fortigate-mcp/internal/log"
)

// Server wraps the MCP SDK server and the firewall service.
type Server struct {
	mcpServer *mcp.Server
	fw        *firewall.Service
	logger    log.Logger
	name      string
	version   string
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	Logger  log.Logger

	// Firewall may be nil when the device client could not be
	// constructed at startup; every tool then reports the client as
	// unavailable for the process lifetime.
	Firewall *firewall.Service
}

// NewServer creates the MCP server and registers all tools.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		fw:        cfg.Firewall,
		logger:    logger,
		name:      cfg.Name,
		version:   cfg.Version,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport. Blocking; handles
// all protocol communication until the context is canceled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) registerTools() error {
	registrations := []struct {
		name string
		fn   func() error
	}{
		{"policy tools", s.registerPolicyTools},
		{"interface tools", s.registerInterfaceTools},
		{"route tools", s.registerRouteTools},
		{"address tools", s.registerAddressTools},
		{"service tools", s.registerServiceTools},
		{"log tools", s.registerLogTools},
	}
	for _, r := range registrations {
		if err := r.fn(); err != nil {
			return fmt.Errorf("failed to register %s: %w", r.name, err)
		}
	}
	return nil
}
