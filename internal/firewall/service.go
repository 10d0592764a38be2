// Package firewall implements the resource operations this server
// exposes against a FortiGate device: firewall policies, network
// interfaces, static routes, address objects, service objects and
// service groups, plus the traffic-log stand-in.
//
// Every operation validates its input locally, invokes the device
// client, and normalizes the result through the outcome package. No
// operation returns a Go error to its caller: failures of any kind
// terminate in a mapping carrying an "error" key, successes in a
// mapping carrying "status". Create operations downgrade
// already-exists conflicts to warnings so repeated provisioning is
// idempotent from the caller's point of view.
package firewall

import (
	"context"
	"fmt"
	"strings"

	"github.com/netopslab/fortigate-mcp/internal/fortigate"
	"github.com/netopslab/fortigate-mcp/internal/log"
	"github.com/netopslab/fortigate-mcp/internal/outcome"
)

// Service bundles the device client with a logger. The client is
// read-only after construction; Service carries no other state, so one
// instance serves concurrent tool calls.
type Service struct {
	client *fortigate.Client
	logger log.Logger
}

// New creates the resource-operation service. The client must be
// non-nil; the tool surface is responsible for short-circuiting when no
// client could be constructed.
func New(client *fortigate.Client, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// errorMap is the uniform failure mapping every operation returns.
func errorMap(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}

// unwrapResults peels the device's "results" envelope off a decoded
// read. Collection fetches return the bare sequence; everything else is
// passed through.
func unwrapResults(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if results, ok := m["results"]; ok {
		return results
	}
	return m
}

// getOne fetches a single object by primary key and applies the shared
// read conventions: absence is a structured error, never an empty
// success.
func (s *Service) getOne(ctx context.Context, col fortigate.Collection, kind, id string) any {
	v, err := col.Get(ctx, id)
	if err != nil {
		if isNotFoundErr(err) {
			s.logger.Warn("target not found", "kind", kind, "id", id, "error", err)
			return errorMap("%s '%s' not found", kind, id)
		}
		s.logger.Error("fetch failed", "kind", kind, "id", id, "error", err)
		return errorMap("unexpected error fetching %s '%s': %v", kind, id, err)
	}

	item := unwrapResults(v)
	switch it := item.(type) {
	case nil:
		return errorMap("%s '%s' not found", kind, id)
	case []any:
		if len(it) == 0 {
			return errorMap("%s '%s' not found", kind, id)
		}
		if len(it) == 1 {
			return it[0]
		}
		return it
	default:
		return item
	}
}

// getAll fetches the whole collection, unwrapping a results envelope
// when the device returns one.
func (s *Service) getAll(ctx context.Context, col fortigate.Collection, kind string) any {
	v, err := col.List(ctx)
	if err != nil {
		s.logger.Error("collection fetch failed", "kind", kind, "error", err)
		return errorMap("unexpected error fetching %s: %v", kind, err)
	}
	return unwrapResults(v)
}

func isNotFoundErr(err error) bool {
	text := err.Error()
	return outcome.IsNotFound(text) || strings.Contains(text, "404")
}

// requireFields checks presence of each field in the configuration and
// names the first missing one.
func requireFields(cfg map[string]any, kind string, fields ...string) string {
	for _, f := range fields {
		if _, ok := cfg[f]; !ok {
			return fmt.Sprintf("missing required field '%s' in %s configuration", f, kind)
		}
	}
	return ""
}

// validNameList reports whether v is a non-empty list whose entries are
// mappings carrying a "name" key — the shape FortiOS expects for
// interface, address, service and member references.
func validNameList(v any) bool {
	items, ok := asList(v)
	if !ok || len(items) == 0 {
		return false
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := m["name"]; !ok {
			return false
		}
	}
	return true
}

func asList(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		items := make([]any, len(s))
		for i, m := range s {
			items[i] = m
		}
		return items, true
	default:
		return nil, false
	}
}

// extractMkey pulls the device-assigned primary key from a create
// response body, checking the top level and then a nested results
// mapping.
func extractMkey(details any) (any, bool) {
	m, ok := details.(map[string]any)
	if !ok {
		return nil, false
	}
	if mkey, ok := m["mkey"]; ok {
		return mkey, true
	}
	if nested, ok := m["results"].(map[string]any); ok {
		if mkey, ok := nested["mkey"]; ok {
			return mkey, true
		}
	}
	return nil, false
}
