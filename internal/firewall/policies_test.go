package firewall

import (
	"context"
	"testing"

	"github.com/netopslab/fortigate-mcp/internal/fortigate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPolicyConfig() map[string]any {
	return map[string]any{
		"name":     "MCP_Policy_01",
		"srcintf":  []any{map[string]any{"name": "port1"}},
		"dstintf":  []any{map[string]any{"name": "port2"}},
		"srcaddr":  []any{map[string]any{"name": "all"}},
		"dstaddr":  []any{map[string]any{"name": "all"}},
		"action":   "accept",
		"schedule": "always",
		"service":  []any{map[string]any{"name": "HTTPS"}},
		"status":   "enable",
	}
}

func TestCreatePolicy_Success(t *testing.T) {
	fake := &fakeCollection{createResp: okCreated(7)}
	svc, _ := newTestService(fake)

	result := svc.CreatePolicy(context.Background(), validPolicyConfig())

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, float64(7), result["policy_id"])
	assert.Equal(t, 1, fake.createCalls)
}

func TestCreatePolicy_MkeyFallbackToName(t *testing.T) {
	fake := &fakeCollection{createResp: okCreated(nil)}
	svc, _ := newTestService(fake)

	result := svc.CreatePolicy(context.Background(), validPolicyConfig())

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "MCP_Policy_01", result["policy_id"])
}

func TestCreatePolicy_MkeyFromNestedResults(t *testing.T) {
	fake := &fakeCollection{createResp: fortigate.NewResponse(200,
		[]byte(`{"results":{"mkey":42}}`))}
	svc, _ := newTestService(fake)

	result := svc.CreatePolicy(context.Background(), validPolicyConfig())

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, float64(42), result["policy_id"])
}

func TestCreatePolicy_MissingActionRejectedLocally(t *testing.T) {
	fake := &fakeCollection{createResp: okCreated(7)}
	svc, _ := newTestService(fake)

	cfg := validPolicyConfig()
	delete(cfg, "action")
	result := svc.CreatePolicy(context.Background(), cfg)

	require.Contains(t, result, "error")
	assert.Contains(t, result["error"], "'action'")
	assert.Equal(t, 0, fake.createCalls, "device must not be contacted on validation failure")
}

func TestCreatePolicy_SrcintfNotAListRejected(t *testing.T) {
	fake := &fakeCollection{createResp: okCreated(7)}
	svc, _ := newTestService(fake)

	cfg := validPolicyConfig()
	cfg["srcintf"] = map[string]any{"name": "port1"}
	result := svc.CreatePolicy(context.Background(), cfg)

	require.Contains(t, result, "error")
	assert.Contains(t, result["error"], "srcintf")
	assert.Equal(t, 0, fake.createCalls)
}

func TestCreatePolicy_EmptyListRejected(t *testing.T) {
	fake := &fakeCollection{createResp: okCreated(7)}
	svc, _ := newTestService(fake)

	cfg := validPolicyConfig()
	cfg["service"] = []any{}
	result := svc.CreatePolicy(context.Background(), cfg)

	require.Contains(t, result, "error")
	assert.Equal(t, 0, fake.createCalls)
}

func TestCreatePolicy_ConflictBecomesWarning(t *testing.T) {
	fake := &fakeCollection{createResp: conflict500()}
	svc, _ := newTestService(fake)

	result := svc.CreatePolicy(context.Background(), validPolicyConfig())

	assert.Equal(t, "warning", result["status"])
	assert.NotContains(t, result, "error")
}

// Creating twice with identical input must never hard-fail on the
// second attempt.
func TestCreatePolicy_DoubleCreateIdempotent(t *testing.T) {
	fake := &fakeCollection{createResp: okCreated(7)}
	svc, _ := newTestService(fake)

	first := svc.CreatePolicy(context.Background(), validPolicyConfig())
	assert.Equal(t, "success", first["status"])

	fake.createResp = conflict500()
	second := svc.CreatePolicy(context.Background(), validPolicyConfig())
	assert.Equal(t, "warning", second["status"])
	assert.NotContains(t, second, "error")
}

func TestPolicy_NotFound(t *testing.T) {
	fake := &fakeCollection{getResp: map[string]any{"results": []any{}}}
	svc, _ := newTestService(fake)

	result := svc.Policy(context.Background(), 999)

	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Policy '999' not found", m["error"])
}

func TestPolicy_Found(t *testing.T) {
	fake := &fakeCollection{getResp: map[string]any{
		"results": []any{map[string]any{"policyid": float64(1), "name": "allow-dns"}},
	}}
	svc, _ := newTestService(fake)

	result := svc.Policy(context.Background(), 1)

	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "allow-dns", m["name"])
	assert.Equal(t, "1", fake.lastGetKey)
}

func TestPolicies_UnwrapsResultsEnvelope(t *testing.T) {
	fake := &fakeCollection{listResp: map[string]any{
		"results": []any{
			map[string]any{"policyid": float64(1)},
			map[string]any{"policyid": float64(2)},
		},
	}}
	svc, _ := newTestService(fake)

	result := svc.Policies(context.Background())

	list, ok := result.([]any)
	require.True(t, ok, "collection fetch must return the bare list")
	assert.Len(t, list, 2)
}

func TestDeletePolicy_Idempotent(t *testing.T) {
	fake := &fakeCollection{deleteResp: fortigate.NewResponse(404,
		[]byte(`{"message":"entry not found"}`))}
	svc, _ := newTestService(fake)

	result := svc.DeletePolicy(context.Background(), 12)

	assert.Equal(t, "success", result["status"], "deleting an absent policy is not an error")
	assert.NotContains(t, result, "error")
}

func TestDeletePolicy_Success(t *testing.T) {
	fake := &fakeCollection{deleteResp: fortigate.NewResponse(200,
		[]byte(`{"status":"success"}`))}
	svc, _ := newTestService(fake)

	result := svc.DeletePolicy(context.Background(), 12)

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "12", fake.lastDelKey)
}

func TestUpdatePolicy_NotFoundForUpdate(t *testing.T) {
	fake := &fakeCollection{setResp: fortigate.NewResponse(404,
		[]byte(`{"message":"entry not found"}`))}
	svc, _ := newTestService(fake)

	result := svc.UpdatePolicy(context.Background(), 55, map[string]any{"status": "disable"})

	require.Contains(t, result, "error")
	assert.Equal(t, "Policy '55' not found for update", result["error"])
}

func TestUpdatePolicy_Success(t *testing.T) {
	fake := &fakeCollection{setResp: fortigate.NewResponse(200,
		[]byte(`{"status":"success"}`))}
	svc, _ := newTestService(fake)

	result := svc.UpdatePolicy(context.Background(), 55, map[string]any{"status": "disable"})

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "55", fake.lastSetKey)
	assert.Equal(t, "disable", fake.lastSetData["status"])
}

func TestMovePolicy_InvalidAction(t *testing.T) {
	svc, _ := newTestService(&fakeCollection{})

	result := svc.MovePolicy(context.Background(), 1, 2, "sideways")

	require.Contains(t, result, "error")
	assert.Contains(t, result["error"], "before")
}

func TestMovePolicy_ExplicitSuccess(t *testing.T) {
	fake := &fakeCollection{setResp: fortigate.NewResponse(200,
		[]byte(`{"status":"success"}`))}
	svc, _ := newTestService(fake)

	result := svc.MovePolicy(context.Background(), 3, 9, "before")

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "3", fake.lastSetKey)
	assert.Equal(t, "move", fake.lastSetData["action"])
	assert.Equal(t, 9, fake.lastSetData["before"])
}

func TestMovePolicy_AmbiguousResponseIsProcessed(t *testing.T) {
	fake := &fakeCollection{setResp: fortigate.NewResponse(200, []byte(`{}`))}
	svc, _ := newTestService(fake)

	result := svc.MovePolicy(context.Background(), 3, 9, "after")

	assert.Equal(t, "processed", result["status"],
		"a device response with no explicit marker stays ambiguous")
}

func TestMovePolicy_ExplicitError(t *testing.T) {
	fake := &fakeCollection{setResp: fortigate.NewResponse(200,
		[]byte(`{"status":"error","cli_error":"move target missing"}`))}
	svc, _ := newTestService(fake)

	result := svc.MovePolicy(context.Background(), 3, 9, "after")

	require.Contains(t, result, "error")
	assert.Contains(t, result["error"], "move target missing")
}
