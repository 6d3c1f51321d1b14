// Package endpoint resolves the base URL of an OCPI module at a partner.
//
// Two resolvers are provided: StaticResolver serves a configured URL table and
// DiscoveryResolver walks the partner's versions and version details documents.
// Both are safe for concurrent use.
package endpoint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getmockd/ocpi/pkg/ocpi"
)

// ErrUnavailable is returned when no base URL is known for a module.
var ErrUnavailable = errors.New("endpoint unavailable")

// Descriptor is a resolved module endpoint.
type Descriptor struct {
	Module  ocpi.ModuleID
	BaseURL string
	Version ocpi.Version
}

// URL joins the base URL and a relative path. Query-only paths are appended as is.
func (d Descriptor) URL(path string) string {
	base := strings.TrimRight(d.BaseURL, "/")
	if path == "" || strings.HasPrefix(path, "?") {
		return base + path
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// Resolver finds the endpoint of a module. version may be empty to let the resolver
// choose; eventTrackingID is propagated to any traffic the resolver generates.
type Resolver interface {
	Resolve(ctx context.Context, module ocpi.ModuleID, version ocpi.Version, eventTrackingID string) (Descriptor, error)
}

// StaticResolver serves a fixed module to URL table.
type StaticResolver struct {
	version   ocpi.Version
	endpoints map[ocpi.ModuleID]string
}

// NewStaticResolver creates a resolver for one version. The map is copied.
func NewStaticResolver(version ocpi.Version, endpoints map[ocpi.ModuleID]string) *StaticResolver {
	m := make(map[ocpi.ModuleID]string, len(endpoints))
	for k, v := range endpoints {
		if v != "" {
			m[k] = v
		}
	}
	return &StaticResolver{version: version, endpoints: m}
}

// Resolve returns the configured URL of module.
func (s *StaticResolver) Resolve(ctx context.Context, module ocpi.ModuleID, version ocpi.Version, _ string) (Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return Descriptor{}, err
	}
	if version != "" && s.version != "" && version != s.version {
		return Descriptor{}, fmt.Errorf("%w: only version %s is configured, not %s", ErrUnavailable, s.version, version)
	}
	u, ok := s.endpoints[module]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: no URL configured for module %s", ErrUnavailable, module)
	}
	v := s.version
	if v == "" {
		v = version
	}
	return Descriptor{Module: module, BaseURL: u, Version: v}, nil
}
