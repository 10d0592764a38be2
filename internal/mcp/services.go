package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/netopslab/fortigate-mcp/internal/firewall"
)

// ServiceObjectInput selects one service object by name, or all service
// objects of the given type when the name is omitted.
type ServiceObjectInput struct {
	Name        string `json:"name,omitempty" jsonschema:"Name of the service object. Omit to list all service objects."`
	ServiceType string `json:"service_type,omitempty" jsonschema:"Either 'custom' (the default) or 'predefined'. Predefined lookups are best effort."`
}

// CreateServiceObjectInput carries the new service object's configuration
// mapping.
type CreateServiceObjectInput struct {
	ServiceConfig map[string]any `json:"service_config" jsonschema:"Service object configuration. Required: name, protocol. TCP/UDP/SCTP services need one of tcp-portrange, udp-portrange or sctp-portrange; an IP service needs protocol-number."`
}

// ServiceGroupInput selects one service group by name, or all groups when
// the name is omitted.
type ServiceGroupInput struct {
	Name string `json:"name,omitempty" jsonschema:"Name of the service group. Omit to list all service groups."`
}

// CreateServiceGroupInput carries the new service group's configuration
// mapping.
type CreateServiceGroupInput struct {
	GroupConfig map[string]any `json:"group_config" jsonschema:"Service group configuration. Required: name and a non-empty member list of {\"name\": ...} entries naming existing services."`
}

func (s *Server) registerServiceTools() error {
	getObjSchema, err := jsonschema.For[ServiceObjectInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_fortigate_service_object: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_fortigate_service_object",
		Description: "Retrieve one service object by name, or all service objects when name is omitted. service_type selects custom or predefined services.",
		InputSchema: getObjSchema,
	}, s.GetServiceObject)

	createObjSchema, err := jsonschema.For[CreateServiceObjectInput](nil)
	if err != nil {
		return fmt.Errorf("schema for create_fortigate_service_object: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_fortigate_service_object",
		Description: "Create a new custom service object. Creating an already-existing service yields a warning, not an error.",
		InputSchema: createObjSchema,
	}, s.CreateServiceObject)

	getGroupSchema, err := jsonschema.For[ServiceGroupInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_fortigate_service_group: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_fortigate_service_group",
		Description: "Retrieve one service group by name, or all service groups when name is omitted.",
		InputSchema: getGroupSchema,
	}, s.GetServiceGroup)

	createGroupSchema, err := jsonschema.For[CreateServiceGroupInput](nil)
	if err != nil {
		return fmt.Errorf("schema for create_fortigate_service_group: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_fortigate_service_group",
		Description: "Create a new service group from existing service names. Creating an already-existing group yields a warning, not an error.",
		InputSchema: createGroupSchema,
	}, s.CreateServiceGroup)

	return nil
}

// GetServiceObject handles the get_fortigate_service_object tool call.
func (s *Server) GetServiceObject(ctx context.Context, req *mcp.CallToolRequest, in ServiceObjectInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("get_fortigate_service_object")
	logger.Info("tool called", "name", in.Name, "service_type", in.ServiceType)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = firewall.ServiceTypeCustom
	}
	result := guard(logger, func() any {
		if in.Name != "" {
			return wrap("service_object", s.fw.ServiceObject(ctx, in.Name, serviceType))
		}
		return wrap("service_objects", s.fw.ServiceObjects(ctx, serviceType))
	})
	return toMCP(result), nil, nil
}

// CreateServiceObject handles the create_fortigate_service_object tool call.
func (s *Server) CreateServiceObject(ctx context.Context, req *mcp.CallToolRequest, in CreateServiceObjectInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("create_fortigate_service_object")
	logger.Info("tool called", "name", in.ServiceConfig["name"])
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.ServiceConfig == nil {
		return toMCP(map[string]any{"error": "Invalid service_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.CreateServiceObject(ctx, in.ServiceConfig)
	})
	return toMCP(result), nil, nil
}

// GetServiceGroup handles the get_fortigate_service_group tool call.
func (s *Server) GetServiceGroup(ctx context.Context, req *mcp.CallToolRequest, in ServiceGroupInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("get_fortigate_service_group")
	logger.Info("tool called", "name", in.Name)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	result := guard(logger, func() any {
		if in.Name != "" {
			return wrap("service_group", s.fw.ServiceGroup(ctx, in.Name))
		}
		return wrap("service_groups", s.fw.ServiceGroups(ctx))
	})
	return toMCP(result), nil, nil
}

// CreateServiceGroup handles the create_fortigate_service_group tool call.
func (s *Server) CreateServiceGroup(ctx context.Context, req *mcp.CallToolRequest, in CreateServiceGroupInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("create_fortigate_service_group")
	logger.Info("tool called", "name", in.GroupConfig["name"])
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.GroupConfig == nil {
		return toMCP(map[string]any{"error": "Invalid group_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.CreateServiceGroup(ctx, in.GroupConfig)
	})
	return toMCP(result), nil, nil
}
