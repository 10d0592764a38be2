package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TrafficLogsInput filters and limits the returned traffic log entries.
type TrafficLogsInput struct {
	LogFilter string `json:"log_filter,omitempty" jsonschema:"Filter expression. Either key=value for an exact field match, or a plain substring matched against the whole entry."`
	MaxLogs   *int   `json:"max_logs,omitempty" jsonschema:"Maximum number of entries to return. Defaults to 20."`
	TimeRange string `json:"time_range,omitempty" jsonschema:"Time range hint such as '1hour' or '24hours'. Defaults to '1hour'."`
}

func (s *Server) registerLogTools() error {
	logsSchema, err := jsonschema.For[TrafficLogsInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_fortigate_traffic_logs: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_fortigate_traffic_logs",
		Description: "Retrieve recent traffic log entries. Returns representative mock data until FortiAnalyzer log access is wired in.",
		InputSchema: logsSchema,
	}, s.GetTrafficLogs)

	return nil
}

// GetTrafficLogs handles the get_fortigate_traffic_logs tool call.
func (s *Server) GetTrafficLogs(ctx context.Context, req *mcp.CallToolRequest, in TrafficLogsInput) (*mcp.CallToolResult, any, error) {
	// An explicit max_logs of 0 means zero entries; only an omitted
	// value takes the default.
	maxLogs := 20
	if in.MaxLogs != nil {
		maxLogs = *in.MaxLogs
	}
	timeRange := in.TimeRange
	if timeRange == "" {
		timeRange = "1hour"
	}

	logger := s.toolLogger("get_fortigate_traffic_logs")
	logger.Info("tool called", "log_filter", in.LogFilter, "max_logs", maxLogs, "time_range", timeRange)
	if s.fw == nil {
		return toMCP(clientUnavailable()), nil, nil
	}
	result := guard(logger, func() any {
		return wrap("logs", s.fw.TrafficLogs(in.LogFilter, maxLogs, timeRange))
	})
	return toMCP(result), nil, nil
}
