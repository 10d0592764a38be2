package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/netopslab/fortigate-mcp/internal/log"
)

// clientUnavailable is the fixed short-circuit result when no device
// client could be constructed at startup.
func clientUnavailable() map[string]any {
	return map[string]any{"error": "FortiGate client is not available."}
}

// toolLogger narrows the server logger to one tool invocation, with a
// uuid correlating all records of the call.
func (s *Server) toolLogger(tool string) log.Logger {
	return s.logger.With("tool", tool, "call_id", uuid.NewString())
}

// guard runs a resource operation and converts any escaping panic into
// a generic server-error mapping. Resource operations are written to
// never fail, but a tool must not take the process down either way.
func guard(logger log.Logger, fn func() any) (result any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected panic in tool handler", "panic", r)
			result = map[string]any{
				"error": fmt.Sprintf("An unexpected server error occurred: %v", r),
			}
		}
	}()
	return fn()
}

// isErrorMap reports whether a result mapping carries the failure
// discriminant.
func isErrorMap(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, has := m["error"]
	return has
}

// wrap places a result under the given key unless it is already an
// error mapping, which passes through untouched. The key is chosen by
// the handler from which argument the caller supplied, never from the
// runtime type of the result.
func wrap(key string, v any) any {
	if isErrorMap(v) {
		return v
	}
	return map[string]any{key: v}
}

// toMCP renders a result as JSON text content, flagging error mappings.
func toMCP(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error marshaling result: %v", err)}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
		IsError: isErrorMap(v),
	}
}
