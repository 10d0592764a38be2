package firewall

import (
	"context"
	"testing"

	"github.com/netopslab/fortigate-mcp/internal/fortigate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAddressObject_TypeSpecificValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     map[string]any
		wantErr string
	}{
		{
			name:    "missing name",
			cfg:     map[string]any{"type": "fqdn"},
			wantErr: "'name'",
		},
		{
			name:    "missing type",
			cfg:     map[string]any{"name": "mysite"},
			wantErr: "'type'",
		},
		{
			name:    "fqdn without fqdn field",
			cfg:     map[string]any{"name": "mysite", "type": "fqdn"},
			wantErr: "'fqdn'",
		},
		{
			name:    "iprange without end-ip",
			cfg:     map[string]any{"name": "r1", "type": "iprange", "start-ip": "10.0.0.1"},
			wantErr: "'start-ip' or 'end-ip'",
		},
		{
			name:    "ipmask without subnet",
			cfg:     map[string]any{"name": "net1", "type": "ipmask"},
			wantErr: "'subnet'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCollection{}
			svc, _ := newTestService(fake)

			result := svc.CreateAddressObject(context.Background(), tt.cfg)

			require.Contains(t, result, "error")
			assert.Contains(t, result["error"], tt.wantErr)
			assert.Equal(t, 0, fake.createCalls)
		})
	}
}

func TestCreateAddressObject_Success(t *testing.T) {
	fake := &fakeCollection{createResp: fortigate.NewResponse(200,
		[]byte(`{"status":"success","mkey":"mysite"}`))}
	svc, _ := newTestService(fake)

	result := svc.CreateAddressObject(context.Background(), map[string]any{
		"name": "mysite", "type": "fqdn", "fqdn": "mysite.example.com",
	})

	assert.Equal(t, "success", result["status"])
	assert.Contains(t, result["message"], "mysite")
}

func TestCreateAddressObject_ConflictBecomesWarning(t *testing.T) {
	fake := &fakeCollection{createResp: fortigate.NewResponse(500,
		[]byte(`Command fail. An address with this name already exists`))}
	svc, _ := newTestService(fake)

	result := svc.CreateAddressObject(context.Background(), map[string]any{
		"name": "mysite", "type": "fqdn", "fqdn": "mysite.example.com",
	})

	assert.Equal(t, "warning", result["status"],
		"a 500 with already-exists text is an idempotent conflict")
	assert.NotContains(t, result, "error")
}

func TestAddressObject_NotFound(t *testing.T) {
	fake := &fakeCollection{getResp: map[string]any{"results": []any{}}}
	svc, _ := newTestService(fake)

	result := svc.AddressObject(context.Background(), "ghost")

	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Address object 'ghost' not found", m["error"])
}
