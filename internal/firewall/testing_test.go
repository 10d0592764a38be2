package firewall

import (
	"context"

	"github.com/netopslab/fortigate-mcp/internal/fortigate"
	"github.com/netopslab/fortigate-mcp/internal/log"
)

// fakeCollection is a scriptable fortigate.Collection. Each method
// returns its configured value/error pair and records the last call.
type fakeCollection struct {
	listResp   any
	listErr    error
	getResp    any
	getErr     error
	createResp any
	createErr  error
	setResp    any
	setErr     error
	deleteResp any
	deleteErr  error

	createCalls int
	lastCreate  map[string]any
	lastSetKey  string
	lastSetData map[string]any
	lastGetKey  string
	lastDelKey  string
}

func (f *fakeCollection) List(ctx context.Context) (any, error) {
	return f.listResp, f.listErr
}

func (f *fakeCollection) Get(ctx context.Context, mkey string) (any, error) {
	f.lastGetKey = mkey
	return f.getResp, f.getErr
}

func (f *fakeCollection) Create(ctx context.Context, data map[string]any) (any, error) {
	f.createCalls++
	f.lastCreate = data
	return f.createResp, f.createErr
}

func (f *fakeCollection) Set(ctx context.Context, mkey string, data map[string]any) (any, error) {
	f.lastSetKey = mkey
	f.lastSetData = data
	return f.setResp, f.setErr
}

func (f *fakeCollection) Delete(ctx context.Context, mkey string) (any, error) {
	f.lastDelKey = mkey
	return f.deleteResp, f.deleteErr
}

// newTestService wires a Service around fake collections. The same fake
// backs every resource kind unless the test swaps one out afterwards.
func newTestService(fake *fakeCollection) (*Service, *fortigate.Client) {
	client := &fortigate.Client{
		Policies:      fake,
		Interfaces:    fake,
		Routes:        fake,
		Addresses:     fake,
		Services:      fake,
		ServiceGroups: fake,
	}
	return New(client, log.NewNop()), client
}

// okCreated is a typical 2xx creation response body.
func okCreated(mkey any) *fortigate.Response {
	body := `{"status":"success","mkey":7}`
	switch mkey {
	case nil:
		body = `{"status":"success"}`
	case "name":
		body = `{"status":"success","mkey":"mcp_vlan99"}`
	}
	return fortigate.NewResponse(200, []byte(body))
}

// conflict500 is the device's already-exists rejection.
func conflict500() *fortigate.Response {
	return fortigate.NewResponse(500, []byte(`{"error":-5,"cli_error":"The object already exists"}`))
}
