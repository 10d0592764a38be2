package firewall

import (
	"context"
	"fmt"
	"strings"

	"github.com/netopslab/fortigate-mcp/internal/outcome"
)

// Service object types callers may request.
const (
	ServiceTypeCustom     = "custom"
	ServiceTypePredefined = "predefined"
)

// ServiceObject retrieves one service object by name. serviceType is
// "custom" or "predefined".
//
// Predefined lookup is best-effort: the device keeps predefined services
// in a separate table this client does not address, so the custom
// collection is consulted and, on a direct miss, scanned by name. A hit
// may therefore be a custom object sharing the name.
func (s *Service) ServiceObject(ctx context.Context, name, serviceType string) any {
	if serviceType == "" {
		serviceType = ServiceTypeCustom
	}
	s.logger.Info("fetching service object", "name", name, "type", serviceType)

	if serviceType == ServiceTypePredefined {
		s.logger.Warn("predefined service lookup is best-effort via the custom collection",
			"name", name)
	}

	v, err := s.client.Services.Get(ctx, name)
	if err == nil {
		item := unwrapResults(v)
		if found, ok := firstItem(item); ok {
			return found
		}
	} else if !isNotFoundErr(err) {
		s.logger.Error("service object fetch failed", "name", name, "error", err)
		return errorMap("unexpected error fetching service object '%s': %v", name, err)
	}

	if serviceType == ServiceTypePredefined {
		// Direct get missed; scan the custom collection by name.
		all, listErr := s.client.Services.List(ctx)
		if listErr == nil {
			if items, ok := asList(unwrapResults(all)); ok {
				for _, item := range items {
					m, ok := item.(map[string]any)
					if ok && m["name"] == name {
						s.logger.Info("found service by scanning the custom collection", "name", name)
						return m
					}
				}
			}
		}
		return errorMap("Service object '%s' of type '%s' not found", name, serviceType)
	}

	return errorMap("Service object '%s' not found", name)
}

// ServiceObjects retrieves all service objects of the given type. The
// predefined listing carries the same best-effort caveat as
// ServiceObject.
func (s *Service) ServiceObjects(ctx context.Context, serviceType string) any {
	if serviceType == "" {
		serviceType = ServiceTypeCustom
	}
	s.logger.Info("fetching all service objects", "type", serviceType)
	if serviceType == ServiceTypePredefined {
		s.logger.Warn("predefined service listing is best-effort via the custom collection")
	}
	return s.getAll(ctx, s.client.Services, "service objects")
}

// CreateServiceObject validates and creates a custom service object.
// Protocol "TCP/UDP/SCTP" needs at least one port range; protocol "IP"
// needs a protocol number; ICMP types are optional.
func (s *Service) CreateServiceObject(ctx context.Context, serviceConfig map[string]any) map[string]any {
	if msg := requireFields(serviceConfig, "service object", "name"); msg != "" {
		s.logger.Error("service object validation failed", "reason", msg)
		return errorMap("%s", msg)
	}

	name, _ := serviceConfig["name"].(string)
	protocol, _ := serviceConfig["protocol"].(string)
	s.logger.Info("creating service object", "name", name, "protocol", protocol)

	switch strings.ToUpper(protocol) {
	case "TCP/UDP/SCTP":
		if !hasAny(serviceConfig, "tcp-portrange", "udp-portrange", "sctp-portrange") {
			return errorMap("for protocol TCP/UDP/SCTP, at least one of 'tcp-portrange', 'udp-portrange' or 'sctp-portrange' must be set for service '%s'", name)
		}
	case "IP":
		if _, ok := serviceConfig["protocol-number"]; !ok {
			return errorMap("for protocol IP, 'protocol-number' must be set for service '%s'", name)
		}
	}

	resp, err := s.client.Services.Create(ctx, serviceConfig)
	if err != nil {
		s.logger.Error("service object create call failed", "name", name, "error", err)
		return errorMap("API error during service object '%s' creation: %v", name, err)
	}

	o := outcome.Normalize(resp, "service object creation")
	switch o.Class {
	case outcome.ClassSuccess:
		s.logger.Info("service object created", "name", name)
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Service object '%s' created successfully.", name),
			"details": o.Details,
		}
	case outcome.ClassConflict:
		s.logger.Warn("service object already exists", "name", name)
		return o.AsWarningMap()
	default:
		s.logger.Error("service object creation failed", "name", name, "details", o.Details)
		return o.AsMap()
	}
}

// ServiceGroup retrieves one service group by name.
func (s *Service) ServiceGroup(ctx context.Context, name string) any {
	s.logger.Info("fetching service group", "name", name)
	return s.getOne(ctx, s.client.ServiceGroups, "Service group", name)
}

// ServiceGroups retrieves all service groups.
func (s *Service) ServiceGroups(ctx context.Context) any {
	s.logger.Info("fetching all service groups")
	return s.getAll(ctx, s.client.ServiceGroups, "service groups")
}

// CreateServiceGroup validates and creates a service group. The member
// list must be a non-empty list of {"name": ...} entries.
func (s *Service) CreateServiceGroup(ctx context.Context, groupConfig map[string]any) map[string]any {
	if msg := requireFields(groupConfig, "service group", "name"); msg != "" {
		s.logger.Error("service group validation failed", "reason", msg)
		return errorMap("%s", msg)
	}

	name, _ := groupConfig["name"].(string)
	s.logger.Info("creating service group", "name", name)

	if !validNameList(groupConfig["member"]) {
		return errorMap("missing or invalid 'member' list for service group '%s': must be a non-empty list of {\"name\": ...} entries", name)
	}

	resp, err := s.client.ServiceGroups.Create(ctx, groupConfig)
	if err != nil {
		s.logger.Error("service group create call failed", "name", name, "error", err)
		return errorMap("API error during service group '%s' creation: %v", name, err)
	}

	o := outcome.Normalize(resp, "service group creation")
	switch o.Class {
	case outcome.ClassSuccess:
		s.logger.Info("service group created", "name", name)
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Service group '%s' created successfully.", name),
			"details": o.Details,
		}
	case outcome.ClassConflict:
		s.logger.Warn("service group already exists", "name", name)
		return o.AsWarningMap()
	default:
		s.logger.Error("service group creation failed", "name", name, "details", o.Details)
		return o.AsMap()
	}
}

func hasAny(cfg map[string]any, fields ...string) bool {
	for _, f := range fields {
		if v, ok := cfg[f]; ok && v != "" {
			return true
		}
	}
	return false
}

// firstItem reduces a decoded read to the single object it carries, or
// reports that there is none.
func firstItem(v any) (any, bool) {
	switch it := v.(type) {
	case nil:
		return nil, false
	case []any:
		if len(it) == 0 {
			return nil, false
		}
		return it[0], true
	default:
		return it, true
	}
}
