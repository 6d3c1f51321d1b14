// Package correlation builds the per-invocation identity of a protocol operation:
// request id, correlation id, event tracking id, start time and timeout.
//
// A Context is immutable once built. Cancellation is carried by the
// context.Context the caller passes to the operation, not by this type.
package correlation

import (
	"net/http"
	"time"

	"github.com/getmockd/ocpi/internal/id"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// Header names attached to every outgoing request.
const (
	RequestIDHeader     = "X-Request-ID"
	CorrelationIDHeader = "X-Correlation-ID"
)

// DefaultTimeout is used when neither the caller nor the client configure one.
const DefaultTimeout = 30 * time.Second

// Overrides are the caller-supplied parts of a Context. Zero values are filled in
// by New.
type Overrides struct {
	RequestID       string
	CorrelationID   string
	EventTrackingID string
	Version         ocpi.Version
	Timeout         time.Duration
}

// Context identifies one invocation.
type Context struct {
	requestID       string
	correlationID   string
	eventTrackingID string
	version         ocpi.Version
	startTime       time.Time
	timeout         time.Duration
}

// New builds a Context from o, generating missing identifiers. defaultTimeout
// applies when o.Timeout is zero; if both are zero DefaultTimeout is used.
func New(o Overrides, defaultTimeout time.Duration) Context {
	c := Context{
		requestID:       o.RequestID,
		correlationID:   o.CorrelationID,
		eventTrackingID: o.EventTrackingID,
		version:         o.Version,
		startTime:       time.Now(),
		timeout:         o.Timeout,
	}
	if c.requestID == "" {
		c.requestID = id.UUID()
	}
	if c.correlationID == "" {
		c.correlationID = id.UUID()
	}
	if c.eventTrackingID == "" {
		c.eventTrackingID = id.EventID()
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

// RequestID returns the X-Request-ID value.
func (c Context) RequestID() string { return c.requestID }

// CorrelationID returns the X-Correlation-ID value.
func (c Context) CorrelationID() string { return c.correlationID }

// EventTrackingID returns the id used to tie log lines of one invocation together.
func (c Context) EventTrackingID() string { return c.eventTrackingID }

// Version returns the requested protocol version, or "" for the resolver default.
func (c Context) Version() ocpi.Version { return c.version }

// StartTime returns when the invocation started.
func (c Context) StartTime() time.Time { return c.startTime }

// Timeout returns the effective timeout of the invocation.
func (c Context) Timeout() time.Duration { return c.timeout }

// Deadline returns StartTime plus Timeout.
func (c Context) Deadline() time.Time { return c.startTime.Add(c.timeout) }

// Elapsed returns the wall-clock time since StartTime.
func (c Context) Elapsed() time.Duration { return time.Since(c.startTime) }

// Apply sets the correlation headers on h.
func (c Context) Apply(h http.Header) {
	h.Set(RequestIDHeader, c.requestID)
	h.Set(CorrelationIDHeader, c.correlationID)
}
