package firewall

import (
	"context"
	"testing"

	"github.com/netopslab/fortigate-mcp/internal/fortigate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRouteConfig() map[string]any {
	return map[string]any{
		"dst":     "10.150.0.0 255.255.0.0",
		"gateway": "192.168.1.254",
		"device":  "port1",
	}
}

func TestCreateStaticRoute_DefaultsStatusEnable(t *testing.T) {
	fake := &fakeCollection{createResp: fortigate.NewResponse(200,
		[]byte(`{"status":"success","mkey":5}`))}
	svc, _ := newTestService(fake)

	cfg := validRouteConfig()
	result := svc.CreateStaticRoute(context.Background(), cfg)

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "enable", fake.lastCreate["status"],
		"device call must receive the defaulted status")
	assert.NotContains(t, cfg, "status",
		"caller-supplied configuration must never be mutated")
}

func TestCreateStaticRoute_ExplicitStatusKept(t *testing.T) {
	fake := &fakeCollection{createResp: fortigate.NewResponse(200,
		[]byte(`{"status":"success"}`))}
	svc, _ := newTestService(fake)

	cfg := validRouteConfig()
	cfg["status"] = "disable"
	svc.CreateStaticRoute(context.Background(), cfg)

	assert.Equal(t, "disable", fake.lastCreate["status"])
}

func TestCreateStaticRoute_MissingGateway(t *testing.T) {
	fake := &fakeCollection{}
	svc, _ := newTestService(fake)

	cfg := validRouteConfig()
	delete(cfg, "gateway")
	result := svc.CreateStaticRoute(context.Background(), cfg)

	require.Contains(t, result, "error")
	assert.Contains(t, result["error"], "'gateway'")
	assert.Equal(t, 0, fake.createCalls)
}

func TestCreateStaticRoute_SeqNumExtracted(t *testing.T) {
	fake := &fakeCollection{createResp: fortigate.NewResponse(200,
		[]byte(`{"status":"success","mkey":17}`))}
	svc, _ := newTestService(fake)

	result := svc.CreateStaticRoute(context.Background(), validRouteConfig())

	assert.Equal(t, float64(17), result["seq-num"])
}

func TestCreateStaticRoute_ConflictBecomesWarning(t *testing.T) {
	fake := &fakeCollection{createResp: conflict500()}
	svc, _ := newTestService(fake)

	result := svc.CreateStaticRoute(context.Background(), validRouteConfig())

	assert.Equal(t, "warning", result["status"])
}

func TestStaticRoute_NotFound(t *testing.T) {
	fake := &fakeCollection{getResp: map[string]any{"results": []any{}}}
	svc, _ := newTestService(fake)

	result := svc.StaticRoute(context.Background(), 42)

	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Static route '42' not found", m["error"])
	assert.Equal(t, "42", fake.lastGetKey)
}

func TestStaticRoutes_All(t *testing.T) {
	fake := &fakeCollection{listResp: map[string]any{
		"results": []any{map[string]any{"seq-num": float64(1)}},
	}}
	svc, _ := newTestService(fake)

	result := svc.StaticRoutes(context.Background())

	list, ok := result.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}
