// Package client is the OCPI client facade.
//
// Every operation runs through one pipeline that assigns correlation ids, notifies
// observers, resolves the module endpoint, performs the HTTP call and folds every
// outcome into an envelope.Response. Operations never panic or return a bare
// error; callers inspect the returned response.
//
//	c := client.New(resolver,
//	    client.WithToken(token),
//	    client.WithParty("NL", "ABC"),
//	)
//	resp := c.GetLocation(ctx, "LOC1")
//	loc, err := resp.Unpack()
package client

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/getmockd/ocpi/pkg/correlation"
	"github.com/getmockd/ocpi/pkg/endpoint"
	"github.com/getmockd/ocpi/pkg/logging"
	"github.com/getmockd/ocpi/pkg/metrics"
	"github.com/getmockd/ocpi/pkg/observer"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/getmockd/ocpi/pkg/transport"
)

// Client talks to one OCPI partner.
type Client struct {
	resolver    endpoint.Resolver
	transport   transport.Transport
	bus         *observer.Bus
	counters    *metrics.OperationCounters
	logger      *slog.Logger
	timeout     time.Duration
	token       string
	countryCode string
	partyID     string
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the transport. The default is transport.NewHTTP(nil).
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithBus sets the observer bus. The default is an empty synchronous bus.
func WithBus(b *observer.Bus) Option {
	return func(c *Client) {
		if b != nil {
			c.bus = b
		}
	}
}

// WithCounters sets the operation counters, e.g. to share them with a metrics registry.
func WithCounters(counters *metrics.OperationCounters) Option {
	return func(c *Client) {
		if counters != nil {
			c.counters = counters
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets the default per-operation timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithToken sets the credentials token sent in the Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithParty sets the country code and party id used in sender-interface paths.
func WithParty(countryCode, partyID string) Option {
	return func(c *Client) {
		c.countryCode = countryCode
		c.partyID = partyID
	}
}

// New creates a Client resolving endpoints through resolver.
func New(resolver endpoint.Resolver, opts ...Option) *Client {
	c := &Client{
		resolver:  resolver,
		transport: transport.NewHTTP(nil),
		bus:       observer.New(),
		counters:  metrics.NewOperationCounters(nil),
		logger:    logging.Nop(),
		timeout:   correlation.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bus returns the observer bus of c.
func (c *Client) Bus() *observer.Bus { return c.bus }

// Counters returns the operation counters of c.
func (c *Client) Counters() *metrics.OperationCounters { return c.counters }

// Override adjusts the correlation context of a single call.
type Override func(*correlation.Overrides)

// RequestID sets the X-Request-ID of the call.
func RequestID(id string) Override {
	return func(o *correlation.Overrides) { o.RequestID = id }
}

// CorrelationID sets the X-Correlation-ID of the call.
func CorrelationID(id string) Override {
	return func(o *correlation.Overrides) { o.CorrelationID = id }
}

// EventTrackingID sets the id propagated to endpoint discovery.
func EventTrackingID(id string) Override {
	return func(o *correlation.Overrides) { o.EventTrackingID = id }
}

// Version asks for a specific OCPI version of the partner endpoint.
func Version(v ocpi.Version) Override {
	return func(o *correlation.Overrides) { o.Version = v }
}

// Timeout bounds the call instead of the client default.
func Timeout(d time.Duration) Override {
	return func(o *correlation.Overrides) { o.Timeout = d }
}

// Args are the caller inputs of an operation as seen by observers.
type Args map[string]any

// partyPath builds /{cc}/{pid}/{ids...} with escaped segments.
func (c *Client) partyPath(ids ...string) string {
	return segments(append([]string{c.countryCode, c.partyID}, ids...)...)
}

func segments(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
