package firewall

import (
	"context"
	"maps"
	"strconv"

	"github.com/netopslab/fortigate-mcp/internal/outcome"
)

// StaticRoute retrieves one static route by its sequence number, the
// primary key for routes.
func (s *Service) StaticRoute(ctx context.Context, seqNum int) any {
	s.logger.Info("fetching static route", "seq_num", seqNum)
	return s.getOne(ctx, s.client.Routes, "Static route", strconv.Itoa(seqNum))
}

// StaticRoutes retrieves all static routes.
func (s *Service) StaticRoutes(ctx context.Context) any {
	s.logger.Info("fetching all static routes")
	return s.getAll(ctx, s.client.Routes, "static routes")
}

// CreateStaticRoute validates and creates a static route. A missing
// "status" field defaults to "enable" on a copy of the configuration;
// the caller's mapping is never mutated.
func (s *Service) CreateStaticRoute(ctx context.Context, routeConfig map[string]any) map[string]any {
	dst, _ := routeConfig["dst"].(string)
	s.logger.Info("creating static route", "dst", dst)

	if msg := requireFields(routeConfig, "static route", "dst", "gateway", "device"); msg != "" {
		s.logger.Error("route validation failed", "dst", dst, "reason", msg)
		return errorMap("%s", msg)
	}

	payload := maps.Clone(routeConfig)
	if _, ok := payload["status"]; !ok {
		payload["status"] = "enable"
	}

	resp, err := s.client.Routes.Create(ctx, payload)
	if err != nil {
		s.logger.Error("route create call failed", "dst", dst, "error", err)
		return errorMap("API error during static route creation for dst '%s': %v", dst, err)
	}

	o := outcome.Normalize(resp, "static route creation")
	switch o.Class {
	case outcome.ClassSuccess:
		result := o.AsMap()
		if mkey, ok := extractMkey(o.Details); ok {
			result["seq-num"] = mkey
		}
		s.logger.Info("static route created", "dst", dst, "seq_num", result["seq-num"])
		return result
	case outcome.ClassConflict:
		s.logger.Warn("static route already exists", "dst", dst)
		return o.AsWarningMap()
	default:
		s.logger.Error("route creation failed", "dst", dst, "details", o.Details)
		return o.AsMap()
	}
}
