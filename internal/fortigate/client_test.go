package fortigate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netopslab/fortigate-mcp/internal/config"
	"github.com/netopslab/fortigate-mcp/internal/log"
)

func validConfig() *config.Config {
	return &config.Config{
		Host:     "192.0.2.10",
		APIToken: "token-abc",
		VDOM:     "root",
		Scheme:   "http",
		Port:     80,
		Timeout:  20 * time.Second,
	}
}

func TestNewRequiresHost(t *testing.T) {
	cfg := validConfig()
	cfg.Host = ""

	_, err := New(cfg, log.NewNop())

	require.ErrorIs(t, err, ErrClient)
	assert.Contains(t, err.Error(), "missing host")
}

func TestNewRequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.APIToken = ""

	_, err := New(cfg, log.NewNop())

	require.ErrorIs(t, err, ErrClient)
	assert.Contains(t, err.Error(), "missing credentials")
}

func TestNewRejectsAmbiguousCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Username = "admin"
	cfg.Password = "secret"

	_, err := New(cfg, log.NewNop())

	require.ErrorIs(t, err, ErrClient)
}

func TestNewWiresAllCollections(t *testing.T) {
	c, err := New(validConfig(), log.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "192.0.2.10", c.Host())
	assert.Equal(t, "root", c.VDOM())
	assert.NotNil(t, c.Policies)
	assert.NotNil(t, c.Interfaces)
	assert.NotNil(t, c.Routes)
	assert.NotNil(t, c.Addresses)
	assert.NotNil(t, c.Services)
	assert.NotNil(t, c.ServiceGroups)
}

// testClient points a real client at an httptest server.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := validConfig()
	cfg.Host = u.Hostname()
	cfg.Port = port

	c, err := New(cfg, log.NewNop())
	require.NoError(t, err)
	return c
}

func TestCollectionGetSendsAuthAndScope(t *testing.T) {
	var gotPath, gotAuth, gotVDOM string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVDOM = r.URL.Query().Get("vdom")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","results":[{"policyid":7}]}`))
	}))

	v, err := c.Policies.Get(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/cmdb/firewall/policy/7", gotPath)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "root", gotVDOM)

	body, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, body, "results")
}

func TestCollectionGetNotFoundCarriesDeviceMessage(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error","message":"entry not found"}`))
	}))

	_, err := c.Policies.Get(context.Background(), "99")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry not found")
}

func TestCollectionGetNotFoundWithoutBodyStillSaysNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Interfaces.Get(context.Background(), "port9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCollectionCreateReturnsStatusCodedResponse(t *testing.T) {
	var gotMethod, gotContentType string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":-5,"cli_error":"The object already exists"}`))
	}))

	v, err := c.Addresses.Create(context.Background(), map[string]any{"name": "web-server"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)

	resp, ok := v.(*Response)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	body, ok := resp.JSON()
	require.True(t, ok)
	assert.Equal(t, "The object already exists", body["cli_error"])
}

func TestCollectionSetUsesPut(t *testing.T) {
	var gotMethod, gotPath string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"success"}`))
	}))

	_, err := c.Interfaces.Set(context.Background(), "vlan100", map[string]any{"alias": "dmz"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v2/cmdb/system/interface/vlan100", gotPath)
}

func TestCollectionDeleteUsesDelete(t *testing.T) {
	var gotMethod string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{"status":"success"}`))
	}))

	_, err := c.Routes.Delete(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestBasicAuthWhenNoToken(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.Write([]byte(`{"status":"success","results":[]}`))
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := validConfig()
	cfg.APIToken = ""
	cfg.Username = "admin"
	cfg.Password = "secret"
	cfg.Host = u.Hostname()
	cfg.Port = port

	c, err := New(cfg, log.NewNop())
	require.NoError(t, err)

	_, err = c.Policies.List(context.Background())
	require.NoError(t, err)

	require.True(t, gotOK)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestResponseAccessors(t *testing.T) {
	resp := NewResponse(200, []byte(`{"status":"success","mkey":7}`))

	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, `{"status":"success","mkey":7}`, resp.Text())

	body, ok := resp.JSON()
	require.True(t, ok)
	assert.Equal(t, "success", body["status"])
}

func TestResponseJSONRejectsNonObject(t *testing.T) {
	resp := NewResponse(200, []byte(`not json`))

	_, ok := resp.JSON()
	assert.False(t, ok)
}
