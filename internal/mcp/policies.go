package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PolicyDetailsInput selects one policy by id, or all policies when the
// id is omitted.
type PolicyDetailsInput struct {
	PolicyID *int `json:"policy_id,omitempty" jsonschema:"Numeric id of the firewall policy. Omit to list all policies."`
}

// CreatePolicyInput carries the new policy's configuration mapping.
type CreatePolicyInput struct {
	PolicyConfig map[string]any `json:"policy_config" jsonschema:"Firewall policy configuration. Required: name, srcintf, dstintf, srcaddr, dstaddr, action, schedule, service, status. List fields take [{\"name\": ...}] entries."`
}

// UpdatePolicyInput replaces fields of an existing policy.
type UpdatePolicyInput struct {
	PolicyID     int            `json:"policy_id" jsonschema:"Numeric id of the policy to update."`
	PolicyConfig map[string]any `json:"policy_config" jsonschema:"Partial policy configuration with the fields to replace."`
}

// DeletePolicyInput removes a policy by id.
type DeletePolicyInput struct {
	PolicyID int `json:"policy_id" jsonschema:"Numeric id of the policy to delete. Deleting an absent policy succeeds."`
}

// MovePolicyInput reorders a policy relative to another one.
type MovePolicyInput struct {
	PolicyID       int    `json:"policy_id" jsonschema:"Numeric id of the policy to move."`
	TargetPolicyID int    `json:"target_policy_id" jsonschema:"Numeric id of the reference policy."`
	MoveAction     string `json:"move_action" jsonschema:"Either 'before' or 'after' the reference policy."`
}

func (s *Server) registerPolicyTools() error {
	detailsSchema, err := jsonschema.For[PolicyDetailsInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_fortigate_policy_details: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_fortigate_policy_details",
		Description: "Retrieve one firewall policy by numeric id, or all policies when policy_id is omitted.",
		InputSchema: detailsSchema,
	}, s.GetPolicyDetails)

	createSchema, err := jsonschema.For[CreatePolicyInput](nil)
	if err != nil {
		return fmt.Errorf("schema for create_fortigate_firewall_policy: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_fortigate_firewall_policy",
		Description: "Create a new firewall policy. Interface, address and service names must already exist on the device. Creating an already-existing policy yields a warning, not an error.",
		InputSchema: createSchema,
	}, s.CreatePolicy)

	updateSchema, err := jsonschema.For[UpdatePolicyInput](nil)
	if err != nil {
		return fmt.Errorf("schema for update_fortigate_firewall_policy: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_fortigate_firewall_policy",
		Description: "Update fields of an existing firewall policy by numeric id.",
		InputSchema: updateSchema,
	}, s.UpdatePolicy)

	deleteSchema, err := jsonschema.For[DeletePolicyInput](nil)
	if err != nil {
		return fmt.Errorf("schema for delete_fortigate_firewall_policy: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_fortigate_firewall_policy",
		Description: "Delete a firewall policy by numeric id. Idempotent: deleting an absent policy succeeds.",
		InputSchema: deleteSchema,
	}, s.DeletePolicy)

	moveSchema, err := jsonschema.For[MovePolicyInput](nil)
	if err != nil {
		return fmt.Errorf("schema for move_fortigate_firewall_policy: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "move_fortigate_firewall_policy",
		Description: "Reorder a firewall policy before or after another policy. An ambiguous device response is reported as status 'processed' and needs caller-side verification.",
		InputSchema: moveSchema,
	}, s.MovePolicy)

	return nil
}

// GetPolicyDetails handles the get_fortigate_policy_details tool call.
func (s *Server) GetPolicyDetails(ctx context.Context, req *mcp.CallToolRequest, in PolicyDetailsInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("get_fortigate_policy_details")
	logger.Info("tool called", "policy_id", in.PolicyID)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	result := guard(logger, func() any {
		if in.PolicyID != nil {
			return s.fw.Policy(ctx, *in.PolicyID)
		}
		return wrap("policies", s.fw.Policies(ctx))
	})
	return toMCP(result), nil, nil
}

// CreatePolicy handles the create_fortigate_firewall_policy tool call.
func (s *Server) CreatePolicy(ctx context.Context, req *mcp.CallToolRequest, in CreatePolicyInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("create_fortigate_firewall_policy")
	logger.Info("tool called", "name", in.PolicyConfig["name"])
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.PolicyConfig == nil {
		return toMCP(map[string]any{"error": "Invalid policy_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.CreatePolicy(ctx, in.PolicyConfig)
	})
	return toMCP(result), nil, nil
}

// UpdatePolicy handles the update_fortigate_firewall_policy tool call.
func (s *Server) UpdatePolicy(ctx context.Context, req *mcp.CallToolRequest, in UpdatePolicyInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("update_fortigate_firewall_policy")
	logger.Info("tool called", "policy_id", in.PolicyID)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	if in.PolicyConfig == nil {
		return toMCP(map[string]any{"error": "Invalid policy_config: must be a mapping."}), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.UpdatePolicy(ctx, in.PolicyID, in.PolicyConfig)
	})
	return toMCP(result), nil, nil
}

// DeletePolicy handles the delete_fortigate_firewall_policy tool call.
func (s *Server) DeletePolicy(ctx context.Context, req *mcp.CallToolRequest, in DeletePolicyInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("delete_fortigate_firewall_policy")
	logger.Info("tool called", "policy_id", in.PolicyID)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.DeletePolicy(ctx, in.PolicyID)
	})
	return toMCP(result), nil, nil
}

// MovePolicy handles the move_fortigate_firewall_policy tool call.
func (s *Server) MovePolicy(ctx context.Context, req *mcp.CallToolRequest, in MovePolicyInput) (*mcp.CallToolResult, any, error) {
	logger := s.toolLogger("move_fortigate_firewall_policy")
	logger.Info("tool called",
		"policy_id", in.PolicyID, "target_policy_id", in.TargetPolicyID, "move_action", in.MoveAction)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}

	result := guard(logger, func() any {
		return s.fw.MovePolicy(ctx, in.PolicyID, in.TargetPolicyID, in.MoveAction)
	})
	return toMCP(result), nil, nil
}
