package firewall

import (
	"context"
	"fmt"

	"github.com/netopslab/fortigate-mcp/internal/outcome"
)

// AddressObject retrieves one firewall address object by name.
func (s *Service) AddressObject(ctx context.Context, name string) any {
	s.logger.Info("fetching address object", "name", name)
	return s.getOne(ctx, s.client.Addresses, "Address object", name)
}

// AddressObjects retrieves all firewall address objects.
func (s *Service) AddressObjects(ctx context.Context) any {
	s.logger.Info("fetching all address objects")
	return s.getAll(ctx, s.client.Addresses, "address objects")
}

// CreateAddressObject validates and creates a firewall address object.
// Each type needs its own sub-fields: fqdn objects an "fqdn", ipranges
// "start-ip"/"end-ip", ipmasks a "subnet".
func (s *Service) CreateAddressObject(ctx context.Context, objectConfig map[string]any) map[string]any {
	if msg := requireFields(objectConfig, "address object", "name", "type"); msg != "" {
		s.logger.Error("address object validation failed", "reason", msg)
		return errorMap("%s", msg)
	}

	name, _ := objectConfig["name"].(string)
	objType, _ := objectConfig["type"].(string)
	s.logger.Info("creating address object", "name", name, "type", objType)

	switch objType {
	case "fqdn":
		if _, ok := objectConfig["fqdn"]; !ok {
			return errorMap("missing 'fqdn' for FQDN address object '%s'", name)
		}
	case "iprange":
		_, hasStart := objectConfig["start-ip"]
		_, hasEnd := objectConfig["end-ip"]
		if !hasStart || !hasEnd {
			return errorMap("missing 'start-ip' or 'end-ip' for IP range object '%s'", name)
		}
	case "ipmask":
		if _, ok := objectConfig["subnet"]; !ok {
			return errorMap("missing 'subnet' for ipmask object '%s'", name)
		}
	}

	resp, err := s.client.Addresses.Create(ctx, objectConfig)
	if err != nil {
		s.logger.Error("address object create call failed", "name", name, "error", err)
		return errorMap("API error during address object '%s' creation: %v", name, err)
	}

	o := outcome.Normalize(resp, "address object creation")
	switch o.Class {
	case outcome.ClassSuccess:
		s.logger.Info("address object created", "name", name)
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Address object '%s' created successfully.", name),
			"details": o.Details,
		}
	case outcome.ClassConflict:
		s.logger.Warn("address object already exists", "name", name)
		return o.AsWarningMap()
	default:
		s.logger.Error("address object creation failed", "name", name, "details", o.Details)
		return o.AsMap()
	}
}
