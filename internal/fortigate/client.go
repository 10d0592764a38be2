// Package fortigate provides the device client for the FortiGate REST
// management API (the FortiOS CMDB endpoints under /api/v2/cmdb).
//
// The client exposes one named Collection per resource kind instead of a
// dynamically resolved attribute path: callers pick c.Policies,
// c.Addresses, and so on, and every collection speaks the same
// CRUD-style contract. A collection call yields either a *Response
// (status-coded, body attached) or an already-decoded value; the outcome
// package normalizes both shapes uniformly.
package fortigate

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/netopslab/fortigate-mcp/internal/config"
	"github.com/netopslab/fortigate-mcp/internal/log"
)

// ErrClient indicates the client could not be constructed. The wrapped
// message carries the root cause.
var ErrClient = errors.New("fortigate client")

// CMDB paths for the resource kinds this server manages.
const (
	pathPolicy        = "firewall/policy"
	pathInterface     = "system/interface"
	pathStaticRoute   = "router/static"
	pathAddress       = "firewall/address"
	pathServiceCustom = "firewall.service/custom"
	pathServiceGroup  = "firewall.service/group"
)

// Client is the handle to one FortiGate device. It is constructed once at
// startup and treated as read-only afterwards; there is no reconnect
// logic. A nil *Client means construction failed for the process
// lifetime and every operation short-circuits.
type Client struct {
	host    string
	vdom    string
	logger  log.Logger
	rest    *restTransport
	timeout time.Duration

	// One collection per resource kind. Exported so tests can swap in
	// fakes; production code never reassigns them after New.
	Policies      Collection
	Interfaces    Collection
	Routes        Collection
	Addresses     Collection
	Services      Collection
	ServiceGroups Collection
}

// New builds a Client from the connection configuration. It fails with an
// error wrapping ErrClient when the host or credential pair is missing.
// No network call is made; connectivity problems surface on first use.
func New(cfg *config.Config, logger log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrClient)
	}
	if !cfg.HasToken() && !cfg.HasUserPass() {
		return nil, fmt.Errorf("%w: missing credentials (API token or username/password)", ErrClient)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClient, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.Scheme == "https" && !cfg.SSLVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	c := &Client{
		host:    cfg.Host,
		vdom:    cfg.VDOM,
		logger:  logger,
		timeout: timeout,
		rest: &restTransport{
			base:     fmt.Sprintf("%s://%s:%d/api/v2/cmdb", cfg.Scheme, cfg.Host, cfg.Port),
			vdom:     cfg.VDOM,
			token:    cfg.APIToken,
			username: cfg.Username,
			password: cfg.Password,
			http:     httpClient,
		},
	}

	c.Policies = &collection{rest: c.rest, path: pathPolicy}
	c.Interfaces = &collection{rest: c.rest, path: pathInterface}
	c.Routes = &collection{rest: c.rest, path: pathStaticRoute}
	c.Addresses = &collection{rest: c.rest, path: pathAddress}
	c.Services = &collection{rest: c.rest, path: pathServiceCustom}
	c.ServiceGroups = &collection{rest: c.rest, path: pathServiceGroup}

	logger.Info("FortiGate client initialized",
		"host", cfg.Host, "scheme", cfg.Scheme, "port", cfg.Port,
		"vdom", cfg.VDOM, "ssl_verify", cfg.SSLVerify, "timeout", timeout)

	return c, nil
}

// Host returns the configured device address.
func (c *Client) Host() string { return c.host }

// VDOM returns the configured scope partition.
func (c *Client) VDOM() string { return c.vdom }
