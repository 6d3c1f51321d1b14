package endpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/ocpi/internal/id"
	"github.com/getmockd/ocpi/pkg/correlation"
	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/logging"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/getmockd/ocpi/pkg/transport"
	"golang.org/x/sync/singleflight"
)

// DefaultDiscoveryTimeout bounds one discovery round trip pair.
const DefaultDiscoveryTimeout = 10 * time.Second

// DiscoveryResolver resolves modules through OCPI version discovery and caches the
// endpoint table per version.
type DiscoveryResolver struct {
	versionsURL string
	transport   transport.Transport
	token       string
	preferred   ocpi.Version
	timeout     time.Duration
	logger      *slog.Logger

	mu    sync.RWMutex
	cache map[ocpi.Version]table
	group singleflight.Group
}

type table struct {
	version ocpi.Version
	urls    map[ocpi.ModuleID]string
}

// DiscoveryOption configures a DiscoveryResolver.
type DiscoveryOption func(*DiscoveryResolver)

// WithToken sets the credentials token sent with discovery requests.
func WithToken(token string) DiscoveryOption {
	return func(d *DiscoveryResolver) { d.token = token }
}

// WithPreferredVersion pins the version used when a call does not name one.
func WithPreferredVersion(v ocpi.Version) DiscoveryOption {
	return func(d *DiscoveryResolver) { d.preferred = v }
}

// WithDiscoveryTimeout sets the internal timeout of a discovery.
func WithDiscoveryTimeout(timeout time.Duration) DiscoveryOption {
	return func(d *DiscoveryResolver) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) DiscoveryOption {
	return func(d *DiscoveryResolver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDiscoveryResolver creates a resolver for the partner versions document at versionsURL.
func NewDiscoveryResolver(versionsURL string, t transport.Transport, opts ...DiscoveryOption) *DiscoveryResolver {
	d := &DiscoveryResolver{
		versionsURL: versionsURL,
		transport:   t,
		timeout:     DefaultDiscoveryTimeout,
		logger:      logging.Nop(),
		cache:       make(map[ocpi.Version]table),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve returns the endpoint of module, discovering it on a cache miss.
// Concurrent misses for the same version share one discovery.
func (d *DiscoveryResolver) Resolve(ctx context.Context, module ocpi.ModuleID, version ocpi.Version, eventTrackingID string) (Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return Descriptor{}, err
	}
	if version == "" {
		version = d.preferred
	}

	d.mu.RLock()
	t, ok := d.cache[version]
	d.mu.RUnlock()

	if !ok {
		ch := d.group.DoChan(string(version), func() (interface{}, error) {
			dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
			defer cancel()
			t, err := d.discover(dctx, version, eventTrackingID)
			if err != nil {
				return nil, err
			}
			d.mu.Lock()
			d.cache[version] = t
			d.mu.Unlock()
			return t, nil
		})
		select {
		case <-ctx.Done():
			return Descriptor{}, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return Descriptor{}, res.Err
			}
			t = res.Val.(table)
		}
	}

	u, ok := t.urls[module]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: partner offers no %s endpoint for version %s", ErrUnavailable, module, t.version)
	}
	return Descriptor{Module: module, BaseURL: u, Version: t.version}, nil
}

// Invalidate drops all cached endpoint tables.
func (d *DiscoveryResolver) Invalidate() {
	d.mu.Lock()
	d.cache = make(map[ocpi.Version]table)
	d.mu.Unlock()
}

// Versions fetches the partner's versions list.
func (d *DiscoveryResolver) Versions(ctx context.Context) ([]ocpi.VersionInfo, error) {
	return fetch(ctx, d, d.versionsURL, d.preferred, "", envelope.DecodeJSON[[]ocpi.VersionInfo]())
}

// Details fetches the version details document of the chosen version.
func (d *DiscoveryResolver) Details(ctx context.Context, version ocpi.Version) (ocpi.VersionDetails, error) {
	if version == "" {
		version = d.preferred
	}
	info, err := d.Versions(ctx)
	if err != nil {
		return ocpi.VersionDetails{}, err
	}
	chosen, err := choose(info, version)
	if err != nil {
		return ocpi.VersionDetails{}, err
	}
	return fetch(ctx, d, chosen.URL, chosen.Version, "", envelope.DecodeJSON[ocpi.VersionDetails]())
}

func (d *DiscoveryResolver) discover(ctx context.Context, version ocpi.Version, eventTrackingID string) (table, error) {
	info, err := fetch(ctx, d, d.versionsURL, version, eventTrackingID, envelope.DecodeJSON[[]ocpi.VersionInfo]())
	if err != nil {
		return table{}, err
	}
	chosen, err := choose(info, version)
	if err != nil {
		return table{}, err
	}
	details, err := fetch(ctx, d, chosen.URL, chosen.Version, eventTrackingID, envelope.DecodeJSON[ocpi.VersionDetails]())
	if err != nil {
		return table{}, err
	}

	t := table{version: chosen.Version, urls: make(map[ocpi.ModuleID]string)}
	for _, ep := range details.Endpoints {
		if ep.URL == "" {
			continue
		}
		if _, seen := t.urls[ep.Identifier]; seen && chosen.Version.HasRoles() && ep.Role != ocpi.RoleReceiver {
			continue
		}
		t.urls[ep.Identifier] = ep.URL
	}
	d.logger.Debug("discovered endpoints",
		"versions_url", d.versionsURL,
		"version", string(chosen.Version),
		"modules", len(t.urls),
	)
	return t, nil
}

// choose picks want from info, or the newest version both sides support.
func choose(info []ocpi.VersionInfo, want ocpi.Version) (ocpi.VersionInfo, error) {
	if want != "" {
		for _, vi := range info {
			if vi.Version == want {
				return vi, nil
			}
		}
		return ocpi.VersionInfo{}, fmt.Errorf("%w: partner does not offer version %s", ErrUnavailable, want)
	}
	for _, sv := range ocpi.SupportedVersions {
		for _, vi := range info {
			if vi.Version == sv {
				return vi, nil
			}
		}
	}
	return ocpi.VersionInfo{}, fmt.Errorf("%w: no mutually supported OCPI version", ErrUnavailable)
}

func fetch[T any](ctx context.Context, d *DiscoveryResolver, url string, version ocpi.Version, eventTrackingID string, decode envelope.Decoder[T]) (T, error) {
	var zero T
	requestID := id.UUID()
	header := http.Header{}
	header.Set(correlation.RequestIDHeader, requestID)
	if eventTrackingID != "" {
		header.Set(correlation.CorrelationIDHeader, eventTrackingID)
	}
	if auth := ocpi.TokenAuthorization(d.token, version); auth != "" {
		header.Set(ocpi.AuthorizationHeader, auth)
	}

	resp, err := d.transport.Do(ctx, &transport.Request{Method: http.MethodGet, URL: url, Header: header})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return zero, err
		}
		return zero, fmt.Errorf("%w: GET %s: %v", ErrUnavailable, url, err)
	}
	v, err := envelope.Parse(resp.StatusCode, resp.Body, decode, requestID, eventTrackingID).Unpack()
	if err != nil {
		return zero, fmt.Errorf("%w: GET %s: %v", ErrUnavailable, url, err)
	}
	return v, nil
}
