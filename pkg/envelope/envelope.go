package envelope

import (
	"context"
	"errors"
	"fmt"

	"github.com/getmockd/ocpi/pkg/ocpi"
)

// Kind identifies the populated variant of a Response.
type Kind int

// Variants.
const (
	KindSuccess Kind = iota + 1
	KindProtocolError
	KindTransportException
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindProtocolError:
		return "protocol_error"
	case KindTransportException:
		return "transport_exception"
	default:
		return "unknown"
	}
}

// Reason tells apart the causes of a ProtocolError.
type Reason string

// Reasons.
const (
	// ReasonPrecondition: the caller supplied an invalid or empty payload.
	ReasonPrecondition Reason = "precondition"
	// ReasonUnavailable: no endpoint could be resolved for the module.
	ReasonUnavailable Reason = "unavailable"
	// ReasonDecode: a response arrived but could not be decoded.
	ReasonDecode Reason = "decode"
	// ReasonRemote: the partner reported an error.
	ReasonRemote Reason = "remote"
)

// Empty is the payload of operations that return no data.
type Empty struct{}

// ProtocolError describes a failed operation that did not fail at the transport.
type ProtocolError struct {
	Reason        Reason
	Code          int // OCPI status code, or HTTP status when the body was not an envelope
	HTTPStatus    int // zero for locally detected errors
	Message       string
	RequestID     string
	CorrelationID string
	Cause         error
}

func (e *ProtocolError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("ocpi %s error %d: %s", e.Reason, e.Code, e.Message)
	}
	return fmt.Sprintf("ocpi %s error: %s", e.Reason, e.Message)
}

func (e *ProtocolError) Unwrap() error { return e.Cause }

// TransportError wraps a failure of the HTTP exchange verbatim.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "ocpi transport error: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Canceled reports whether the exchange was aborted by cancellation.
func (e *TransportError) Canceled() bool {
	return errors.Is(e.Cause, context.Canceled)
}

// Timeout reports whether the exchange ran out of time.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(e.Cause, &te) && te.Timeout()
}

// Result is the payload-independent view of a Response, used by observers and
// diagnostics.
type Result interface {
	Kind() Kind
	RequestID() string
	CorrelationID() string
	Err() error
}

// Response is the outcome of one protocol operation.
type Response[T any] struct {
	kind          Kind
	payload       T
	requestID     string
	correlationID string
	statusCode    ocpi.StatusCode
	statusMessage string
	perr          *ProtocolError
	terr          *TransportError
}

// Success builds a Success response.
func Success[T any](payload T, requestID, correlationID string) Response[T] {
	return Response[T]{
		kind:          KindSuccess,
		payload:       payload,
		requestID:     requestID,
		correlationID: correlationID,
		statusCode:    ocpi.StatusSuccess,
	}
}

// successWithStatus records the partner's status line along with the payload.
func successWithStatus[T any](payload T, requestID, correlationID string, code ocpi.StatusCode, message string) Response[T] {
	r := Success(payload, requestID, correlationID)
	if code != 0 {
		r.statusCode = code
	}
	r.statusMessage = message
	return r
}

// Failure builds a ProtocolError response. The ids of perr are used as the
// response ids.
func Failure[T any](perr *ProtocolError) Response[T] {
	return Response[T]{
		kind:          KindProtocolError,
		requestID:     perr.RequestID,
		correlationID: perr.CorrelationID,
		statusCode:    ocpi.StatusCode(perr.Code),
		statusMessage: perr.Message,
		perr:          perr,
	}
}

// Exception builds a TransportException response.
func Exception[T any](cause error, requestID, correlationID string) Response[T] {
	if cause == nil {
		cause = errors.New("unknown transport failure")
	}
	return Response[T]{
		kind:          KindTransportException,
		requestID:     requestID,
		correlationID: correlationID,
		terr:          &TransportError{Cause: cause},
	}
}

// Kind returns the populated variant.
func (r Response[T]) Kind() Kind { return r.kind }

// IsSuccess reports whether r is a Success.
func (r Response[T]) IsSuccess() bool { return r.kind == KindSuccess }

// RequestID returns the X-Request-ID used for the invocation.
func (r Response[T]) RequestID() string { return r.requestID }

// CorrelationID returns the X-Correlation-ID used for the invocation.
func (r Response[T]) CorrelationID() string { return r.correlationID }

// StatusCode returns the OCPI status code of Success and ProtocolError responses.
func (r Response[T]) StatusCode() ocpi.StatusCode { return r.statusCode }

// StatusMessage returns the partner's status message, if any.
func (r Response[T]) StatusMessage() string { return r.statusMessage }

// Payload returns the decoded payload; ok is false unless r is a Success.
func (r Response[T]) Payload() (payload T, ok bool) {
	if r.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return r.payload, true
}

// ProtocolError returns the error of a ProtocolError response.
func (r Response[T]) ProtocolError() (*ProtocolError, bool) {
	return r.perr, r.kind == KindProtocolError
}

// TransportError returns the error of a TransportException response.
func (r Response[T]) TransportError() (*TransportError, bool) {
	return r.terr, r.kind == KindTransportException
}

// Err returns nil for Success and the variant's error otherwise.
func (r Response[T]) Err() error {
	switch r.kind {
	case KindProtocolError:
		return r.perr
	case KindTransportException:
		return r.terr
	case KindSuccess:
		return nil
	default:
		return errors.New("ocpi: zero response")
	}
}

// Unpack returns the payload and Err, for callers that prefer the (value, error)
// shape.
func (r Response[T]) Unpack() (T, error) {
	return r.payload, r.Err()
}

var _ Result = Response[Empty]{}
