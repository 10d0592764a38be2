package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StaticRoutesInput selects one static route by sequence number, or all
// routes when it is omitted.
type StaticRoutesInput struct {
	SeqNum *int `json:"seq_num,omitempty" jsonschema:"Sequence number of the static route. Omit to list all static routes."`
}

// CreateStaticRouteInput carries the new route's configuration mapping.
type CreateStaticRouteInput struct {
	RouteConfig map[string]any `json:"route_config" jsonschema:"Static route configuration. Required: dst, gateway, device. The status field defaults to 'enable' when omitted."`
}

func (s *Server) registerRouteTools() error {
	routesSchema, err := jsonschema.For[StaticRoutesInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_fortigate_static_routes: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_fortigate_static_routes",
		Description: "Retrieve one static route by sequence number, or all static routes when seq_num is omitted.",
		InputSchema: routesSchema,
	}, s.GetStaticRoutes)

	createSchema, err := jsonschema.For[CreateStaticRouteInput](nil)
	if err != nil {
		return fmt.Errorf("schema for create_fortigate_static_route: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_fortigate_static_route",
		Description: "Create a new static route. Creating an already-existing route yields a warning, not an error.",
		InputSchema: createSchema,
	}, s.CreateStaticRoute)

	return nil
}

// GetStaticRoutes handles the get_fortigate_static_routes tool call.
func (s *Server) GetStaticRoutes(ctx context.Context, req *mcp.CallToolRequest, in StaticRoutesInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("get_fortigate_static_routes")
	logger.Info("tool called", "seq_num", in.SeqNum)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	result := guard(logger, func() any {
		if in.SeqNum != nil {
			return wrap("static_route", s.fw.StaticRoute(ctx, *in.SeqNum))
		}
		return wrap("static_routes", s.fw.StaticRoutes(ctx))
	})
	return toMCP(result), nil, nil
}

// CreateStaticRoute handles the create_fortigate_static_route tool call.
func (s *Server) CreateStaticRoute(ctx context.Context, req *mcp.CallToolRequest, in CreateStaticRouteInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("create_fortigate_static_route")
	logger.Info("tool called", "dst", in.RouteConfig["dst"])
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.RouteConfig == nil {
		return toMCP(map[string]any{"error": "Invalid route_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.CreateStaticRoute(ctx, in.RouteConfig)
	})
	return toMCP(result), nil, nil
}
