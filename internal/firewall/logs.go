package firewall

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// mockTrafficLogs is the fixed sample set TrafficLogs serves. Real log
// retrieval needs the monitor log select endpoints, which this client
// does not implement; see TrafficLogs.
var mockTrafficLogs = []map[string]any{
	{
		"logid": "0000000013", "timestamp": "2024-05-18 10:00:00",
		"srcip": "10.0.1.10", "dstip": "8.8.8.8", "dstport": "53",
		"proto": 17, "action": "accept", "policyid": 1,
		"msg": "Mock Traffic: DNS query accepted",
	},
	{
		"logid": "0000000014", "timestamp": "2024-05-18 10:00:05",
		"srcip": "10.0.1.11", "dstip": "1.1.1.1", "dstport": "443",
		"proto": 6, "action": "accept", "policyid": 2,
		"msg": "Mock Traffic: HTTPS accepted",
	},
	{
		"logid": "0000000015", "timestamp": "2024-05-18 10:00:10",
		"srcip": "192.168.1.100", "dstip": "10.0.1.10", "dstport": "22",
		"proto": 6, "action": "deny", "policyid": 0,
		"msg": "Mock Traffic: SSH attempt denied",
	},
}

// TrafficLogs returns traffic log entries matching the filter, at most
// maxLogs of them.
//
// This is a stand-in, not an API integration: it serves a fixed sample
// set. FortiOS log retrieval goes through the monitor log select
// endpoints with their own query format and pagination, none of which
// the CMDB client covers. timeRange is accepted for interface
// compatibility and ignored.
//
// The filter is either a single "key=value" pair matched exactly
// (case-insensitive) against the named field, or a free string matched
// as a case-insensitive substring of the whole entry.
func (s *Service) TrafficLogs(logFilter string, maxLogs int, timeRange string) []map[string]any {
	s.logger.Info("fetching traffic logs (mock data)",
		"filter", logFilter, "max_logs", maxLogs, "time_range", timeRange)
	s.logger.Warn("traffic log retrieval is not integrated; serving mock entries")

	filtered := make([]map[string]any, 0, len(mockTrafficLogs))
	for _, entry := range mockTrafficLogs {
		if matchesLogFilter(entry, logFilter) {
			filtered = append(filtered, maps.Clone(entry))
		}
	}

	if maxLogs < 0 {
		maxLogs = 0
	}
	if len(filtered) > maxLogs {
		filtered = filtered[:maxLogs]
	}
	return filtered
}

func matchesLogFilter(entry map[string]any, logFilter string) bool {
	if logFilter == "" {
		return true
	}

	if key, value, ok := strings.Cut(logFilter, "="); ok {
		key = strings.TrimSpace(key)
		value = strings.ToLower(strings.TrimSpace(value))
		return strings.ToLower(fmt.Sprint(entry[key])) == value
	}

	// Free-text fallback: substring match over the whole entry.
	encoded, err := json.Marshal(entry)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(encoded)), strings.ToLower(logFilter))
}
