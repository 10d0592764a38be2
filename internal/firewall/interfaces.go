package firewall

import (
	"context"
	"fmt"

	"github.com/netopslab/fortigate-mcp/internal/outcome"
)

// Interface retrieves one network interface by name.
func (s *Service) Interface(ctx context.Context, name string) any {
	s.logger.Info("fetching interface", "name", name)
	return s.getOne(ctx, s.client.Interfaces, "Interface", name)
}

// Interfaces retrieves all network interfaces.
func (s *Service) Interfaces(ctx context.Context) any {
	s.logger.Info("fetching all interfaces")
	return s.getAll(ctx, s.client.Interfaces, "interfaces")
}

// CreateInterface validates and creates a network interface. VLAN
// interfaces additionally need vlanid, a parent interface and an
// ip/mask; loopbacks need an ip.
func (s *Service) CreateInterface(ctx context.Context, interfaceConfig map[string]any) map[string]any {
	name, _ := interfaceConfig["name"].(string)
	if name == "" {
		return errorMap("missing required field 'name' in interface configuration")
	}
	s.logger.Info("creating interface", "name", name)

	required := []string{"name", "type"}
	switch interfaceConfig["type"] {
	case "vlan":
		required = append(required, "vlanid", "interface", "ip")
	case "loopback":
		required = append(required, "ip")
	}
	if msg := requireFields(interfaceConfig, "interface", required...); msg != "" {
		s.logger.Error("interface validation failed", "name", name, "reason", msg)
		return errorMap("%s for type '%v' (name: '%s')", msg, interfaceConfig["type"], name)
	}

	resp, err := s.client.Interfaces.Create(ctx, interfaceConfig)
	if err != nil {
		s.logger.Error("interface create call failed", "name", name, "error", err)
		return errorMap("API error during interface '%s' creation: %v", name, err)
	}

	o := outcome.Normalize(resp, "interface creation")
	switch o.Class {
	case outcome.ClassSuccess:
		s.logger.Info("interface created", "name", name)
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Interface '%s' created successfully.", name),
			"details": o.Details,
		}
	case outcome.ClassConflict:
		s.logger.Warn("interface already exists", "name", name)
		return o.AsWarningMap()
	default:
		s.logger.Error("interface creation failed", "name", name, "details", o.Details)
		return o.AsMap()
	}
}

// UpdateInterface replaces fields of an existing interface by name. A
// missing target is reported explicitly.
func (s *Service) UpdateInterface(ctx context.Context, name string, interfaceConfig map[string]any) map[string]any {
	if name == "" {
		return errorMap("interface name not provided for update")
	}
	s.logger.Info("updating interface", "name", name)

	resp, err := s.client.Interfaces.Set(ctx, name, interfaceConfig)
	if err != nil {
		if isNotFoundErr(err) {
			return errorMap("Interface '%s' not found for update", name)
		}
		s.logger.Error("interface update call failed", "name", name, "error", err)
		return errorMap("API error during interface '%s' update: %v", name, err)
	}

	o := outcome.Normalize(resp, "interface update")
	if o.Class == outcome.ClassNotFound {
		return map[string]any{
			"error":   fmt.Sprintf("Interface '%s' not found for update", name),
			"details": o.Details,
		}
	}
	if o.Class == outcome.ClassSuccess {
		s.logger.Info("interface updated", "name", name)
	}
	return o.AsMap()
}
