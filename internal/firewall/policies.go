package firewall

import (
	"context"
	"fmt"
	"strconv"

	"github.com/netopslab/fortigate-mcp/internal/outcome"
)

// Fields every new firewall policy must carry. The list-valued ones must
// be non-empty lists of {"name": ...} entries.
var (
	policyRequiredFields = []string{
		"name", "srcintf", "dstintf", "srcaddr", "dstaddr",
		"action", "schedule", "service", "status",
	}
	policyListFields = []string{"srcintf", "dstintf", "srcaddr", "dstaddr", "service"}
)

// Policy retrieves one firewall policy by its numeric id.
func (s *Service) Policy(ctx context.Context, policyID int) any {
	s.logger.Info("fetching policy", "policy_id", policyID)
	return s.getOne(ctx, s.client.Policies, "Policy", strconv.Itoa(policyID))
}

// Policies retrieves all firewall policies.
func (s *Service) Policies(ctx context.Context) any {
	s.logger.Info("fetching all policies")
	return s.getAll(ctx, s.client.Policies, "policies")
}

// CreatePolicy validates and creates a firewall policy. Conflicts with
// an existing policy come back as a warning, not an error. The returned
// mapping carries the device-assigned id under "policy_id", falling back
// to the configured name when the device did not report one.
func (s *Service) CreatePolicy(ctx context.Context, policyConfig map[string]any) map[string]any {
	name, _ := policyConfig["name"].(string)
	if name == "" {
		name = "UnnamedPolicy"
	}
	s.logger.Info("creating policy", "name", name)

	if msg := requireFields(policyConfig, "policy", policyRequiredFields...); msg != "" {
		s.logger.Error("policy validation failed", "name", name, "reason", msg)
		return errorMap("%s for '%s'", msg, name)
	}
	for _, field := range policyListFields {
		if !validNameList(policyConfig[field]) {
			msg := fmt.Sprintf("field '%s' must be a non-empty list of {\"name\": ...} entries for '%s'", field, name)
			s.logger.Error("policy validation failed", "name", name, "reason", msg)
			return errorMap("%s", msg)
		}
	}

	resp, err := s.client.Policies.Create(ctx, policyConfig)
	if err != nil {
		s.logger.Error("policy create call failed", "name", name, "error", err)
		return errorMap("API error during policy '%s' creation: %v", name, err)
	}

	o := outcome.Normalize(resp, "policy creation")
	switch o.Class {
	case outcome.ClassSuccess:
		result := o.AsMap()
		if mkey, ok := extractMkey(o.Details); ok {
			result["policy_id"] = mkey
		} else {
			s.logger.Warn("no mkey in create response, falling back to policy name", "name", name)
			result["policy_id"] = name
		}
		s.logger.Info("policy created", "name", name, "policy_id", result["policy_id"])
		return result
	case outcome.ClassConflict:
		s.logger.Warn("policy already exists", "name", name)
		return o.AsWarningMap()
	default:
		s.logger.Error("policy creation failed", "name", name, "details", o.Details)
		return o.AsMap()
	}
}

// UpdatePolicy replaces fields of an existing policy by id. A missing
// target is reported explicitly instead of echoing the device error.
func (s *Service) UpdatePolicy(ctx context.Context, policyID int, policyConfig map[string]any) map[string]any {
	if policyID == 0 {
		return errorMap("policy id not provided for update")
	}
	s.logger.Info("updating policy", "policy_id", policyID)

	resp, err := s.client.Policies.Set(ctx, strconv.Itoa(policyID), policyConfig)
	if err != nil {
		if isNotFoundErr(err) {
			return errorMap("Policy '%d' not found for update", policyID)
		}
		s.logger.Error("policy update call failed", "policy_id", policyID, "error", err)
		return errorMap("API error during policy '%d' update: %v", policyID, err)
	}

	o := outcome.Normalize(resp, "policy update")
	if o.Class == outcome.ClassNotFound {
		return map[string]any{
			"error":   fmt.Sprintf("Policy '%d' not found for update", policyID),
			"details": o.Details,
		}
	}
	if o.Class == outcome.ClassSuccess {
		s.logger.Info("policy updated", "policy_id", policyID)
	}
	return o.AsMap()
}

// DeletePolicy removes a policy by id. Deleting an absent policy is a
// success: deletion is idempotent by design.
func (s *Service) DeletePolicy(ctx context.Context, policyID int) map[string]any {
	s.logger.Info("deleting policy", "policy_id", policyID)

	resp, err := s.client.Policies.Delete(ctx, strconv.Itoa(policyID))
	if err != nil {
		if isNotFoundErr(err) {
			s.logger.Warn("policy already absent", "policy_id", policyID)
			return map[string]any{
				"status":  "success",
				"message": fmt.Sprintf("Policy '%d' not found or already deleted.", policyID),
			}
		}
		s.logger.Error("policy delete call failed", "policy_id", policyID, "error", err)
		return errorMap("API error during policy '%d' deletion: %v", policyID, err)
	}

	o := outcome.Normalize(resp, "policy deletion")
	switch o.Class {
	case outcome.ClassSuccess:
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Policy '%d' deletion request submitted.", policyID),
			"details": o.Details,
		}
	case outcome.ClassNotFound:
		s.logger.Warn("policy already absent", "policy_id", policyID)
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Policy '%d' not found or already deleted.", policyID),
		}
	default:
		return o.AsMap()
	}
}

// MovePolicy reorders a policy before or after another one. When the
// device response carries no explicit success or error marker the result
// is the distinct "processed" status: the move was accepted but the
// outcome needs caller-side verification.
func (s *Service) MovePolicy(ctx context.Context, policyID, targetPolicyID int, moveAction string) map[string]any {
	if moveAction != "before" && moveAction != "after" {
		return errorMap("invalid move action %q: must be 'before' or 'after'", moveAction)
	}
	s.logger.Info("moving policy",
		"policy_id", policyID, "target_policy_id", targetPolicyID, "action", moveAction)

	payload := map[string]any{"action": "move", moveAction: targetPolicyID}
	resp, err := s.client.Policies.Set(ctx, strconv.Itoa(policyID), payload)
	if err != nil {
		s.logger.Error("policy move call failed", "policy_id", policyID, "error", err)
		return errorMap("API error during policy '%d' move: %v", policyID, err)
	}

	body := responseBody(resp)
	if body != nil {
		switch body["status"] {
		case "success":
			s.logger.Info("policy moved", "policy_id", policyID)
			return map[string]any{
				"status":  "success",
				"message": fmt.Sprintf("Policy '%d' moved successfully.", policyID),
				"details": body,
			}
		case "error":
			detail := outcome.ErrorDetails(body)
			s.logger.Error("policy move rejected", "policy_id", policyID, "details", detail)
			return map[string]any{
				"error":   fmt.Sprintf("FortiGate API error during policy move: %s", detail),
				"details": body,
			}
		}
	}

	// No explicit marker either way: genuinely ambiguous device
	// behavior, surfaced as its own status.
	return map[string]any{
		"status":  "processed",
		"message": fmt.Sprintf("Policy '%d' move action processed; verify the resulting order.", policyID),
		"details": outcome.ErrorDetails(resp),
	}
}

// responseBody extracts a decoded mapping from either response shape,
// or nil when there is none.
func responseBody(resp any) map[string]any {
	switch r := resp.(type) {
	case outcome.Responder:
		if body, ok := r.JSON(); ok {
			return body
		}
		return nil
	case map[string]any:
		return r
	default:
		return nil
	}
}
