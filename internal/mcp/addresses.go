package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddressObjectInput selects one address object by name, or all address
// objects when the name is omitted.
type AddressObjectInput struct {
	Name string `json:"name,omitempty" jsonschema:"Name of the address object. Omit to list all address objects."`
}

// CreateAddressObjectInput carries the new address object's configuration
// mapping.
type CreateAddressObjectInput struct {
	ObjectConfig map[string]any `json:"object_config" jsonschema:"Address object configuration. Required: name, type. An fqdn object needs fqdn; an iprange object needs start-ip and end-ip; an ipmask object needs subnet."`
}

func (s *Server) registerAddressTools() error {
	getSchema, err := jsonschema.For[AddressObjectInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_fortigate_address_object: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_fortigate_address_object",
		Description: "Retrieve one address object by name, or all address objects when name is omitted.",
		InputSchema: getSchema,
	}, s.GetAddressObject)

	createSchema, err := jsonschema.For[CreateAddressObjectInput](nil)
	if err != nil {
		return fmt.Errorf("schema for create_fortigate_address_object: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_fortigate_address_object",
		Description: "Create a new address object (ipmask, iprange or fqdn). Creating an already-existing object yields a warning, not an error.",
		InputSchema: createSchema,
	}, s.CreateAddressObject)

	return nil
}

// GetAddressObject handles the get_fortigate_address_object tool call.
func (s *Server) GetAddressObject(ctx context.Context, req *mcp.CallToolRequest, in AddressObjectInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("get_fortigate_address_object")
	logger.Info("tool called", "name", in.Name)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	result := guard(logger, func() any {
		if in.Name != "" {
			return wrap("address_object", s.fw.AddressObject(ctx, in.Name))
		}
		return wrap("address_objects", s.fw.AddressObjects(ctx))
	})
	return toMCP(result), nil, nil
}

// CreateAddressObject handles the create_fortigate_address_object tool call.
func (s *Server) CreateAddressObject(ctx context.Context, req *mcp.CallToolRequest, in CreateAddressObjectInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("create_fortigate_address_object")
	logger.Info("tool called", "name", in.ObjectConfig["name"])
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.ObjectConfig == nil {
		return toMCP(map[string]any{"error": "Invalid object_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.CreateAddressObject(ctx, in.ObjectConfig)
	})
	return toMCP(result), nil, nil
}
