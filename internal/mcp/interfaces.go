package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InterfaceDetailsInput selects one interface by name, or all interfaces
// when the name is omitted.
type InterfaceDetailsInput struct {
	InterfaceName string `json:"interface_name,omitempty" jsonschema:"Name of the network interface. Omit to list all interfaces."`
}

// CreateInterfaceInput carries the new interface's configuration mapping.
type CreateInterfaceInput struct {
	InterfaceConfig map[string]any `json:"interface_config" jsonschema:"Network interface configuration. Required: name, type. A vlan interface also needs vlanid, interface and ip; a loopback interface needs ip."`
}

// UpdateInterfaceInput replaces fields of an existing interface.
type UpdateInterfaceInput struct {
	InterfaceName   string         `json:"interface_name" jsonschema:"Name of the interface to update."`
	InterfaceConfig map[string]any `json:"interface_config" jsonschema:"Partial interface configuration with the fields to replace."`
}

func (s *Server) registerInterfaceTools() error {
	detailsSchema, err := jsonschema.For[InterfaceDetailsInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_fortigate_interface_details: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_fortigate_interface_details",
		Description: "Retrieve one network interface by name, or all interfaces when interface_name is omitted.",
		InputSchema: detailsSchema,
	}, s.GetInterfaceDetails)

	createSchema, err := jsonschema.For[CreateInterfaceInput](nil)
	if err != nil {
		return fmt.Errorf("schema for create_fortigate_network_interface: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_fortigate_network_interface",
		Description: "Create a new network interface. Creating an already-existing interface yields a warning, not an error.",
		InputSchema: createSchema,
	}, s.CreateInterface)

	updateSchema, err := jsonschema.For[UpdateInterfaceInput](nil)
	if err != nil {
		return fmt.Errorf("schema for update_fortigate_network_interface: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_fortigate_network_interface",
		Description: "Update fields of an existing network interface by name.",
		InputSchema: updateSchema,
	}, s.UpdateInterface)

	return nil
}

// GetInterfaceDetails handles the get_fortigate_interface_details tool call.
func (s *Server) GetInterfaceDetails(ctx context.Context, req *mcp.CallToolRequest, in InterfaceDetailsInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("get_fortigate_interface_details")
	logger.Info("tool called", "interface_name", in.InterfaceName)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	result := guard(logger, func() any {
		if in.InterfaceName != "" {
			return wrap("interface", s.fw.Interface(ctx, in.InterfaceName))
		}
		return wrap("interfaces", s.fw.Interfaces(ctx))
	})
	return toMCP(result), nil, nil
}

// CreateInterface handles the create_fortigate_network_interface tool call.
func (s *Server) CreateInterface(ctx context.Context, req *mcp.CallToolRequest, in CreateInterfaceInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("create_fortigate_network_interface")
	logger.Info("tool called", "name", in.InterfaceConfig["name"])
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.InterfaceConfig == nil {
		return toMCP(map[string]any{"error": "Invalid interface_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.CreateInterface(ctx, in.InterfaceConfig)
	})
	return toMCP(result), nil, nil
}

// UpdateInterface handles the update_fortigate_network_interface tool call.
func (s *Server) UpdateInterface(ctx context.Context, req *mcp.CallToolRequest, in UpdateInterfaceInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("update_fortigate_network_interface")
	logger.Info("tool called", "interface_name", in.InterfaceName)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.InterfaceName == "" {
		return toMCP(map[string]any{"error": "Invalid interface_name: must not be empty."}), nil, nil
	}
	if in.InterfaceConfig == nil {
		return toMCP(map[string]any{"error": "Invalid interface_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.UpdateInterface(ctx, in.InterfaceName, in.InterfaceConfig)
	})
	return toMCP(result), nil, nil
}
