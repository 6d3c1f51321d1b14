package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/getmockd/ocpi/pkg/correlation"
	"github.com/getmockd/ocpi/pkg/endpoint"
	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/observer"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/getmockd/ocpi/pkg/transport"
)

// MsgNoRemoteURL is the message of the ProtocolError returned when no endpoint
// could be resolved.
const MsgNoRemoteURL = "No remote URL available!"

// Operation describes one protocol call.
type Operation[T any] struct {
	// Name is "<module>/<Operation>", e.g. "locations/GetLocation".
	Name   string
	Module ocpi.ModuleID
	Method string
	// Path is relative to the module base URL and may carry a query.
	Path string
	// Body is encoded as JSON; nil sends no body.
	Body any
	// BodyName names the body in precondition messages.
	BodyName     string
	BodyRequired bool
	Decode       envelope.Decoder[T]
}

// Execute runs op against the partner. It always returns a populated response.
func Execute[T any](ctx context.Context, c *Client, op Operation[T], args Args, overrides ...Override) envelope.Response[T] {
	counter := c.counters.For(op.Name)
	counter.RequestOK()

	var o correlation.Overrides
	for _, fn := range overrides {
		fn(&o)
	}
	cc := correlation.New(o, c.timeout)
	requestID, correlationID := cc.RequestID(), cc.CorrelationID()

	body, err := encodeBody(op)
	if err != nil {
		return envelope.Failure[T](&envelope.ProtocolError{
			Reason:        envelope.ReasonPrecondition,
			Message:       err.Error(),
			RequestID:     requestID,
			CorrelationID: correlationID,
			Cause:         err,
		})
	}

	end := counter.Begin()
	defer end()

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, cc.Timeout())
	defer cancel()

	c.bus.Before(parent, observer.BeforeEvent{
		Operation:   op.Name,
		Module:      op.Module,
		Correlation: cc,
		Args:        args,
	})

	resp := run(ctx, c, op, cc, body)
	switch resp.Kind() {
	case envelope.KindSuccess:
		counter.ResponseOK()
	case envelope.KindProtocolError:
		if perr, _ := resp.ProtocolError(); perr.Reason == envelope.ReasonUnavailable {
			counter.RequestError()
		} else {
			counter.ResponseError()
		}
	default:
		counter.ResponseError()
	}

	c.logger.Debug("ocpi operation finished",
		"operation", op.Name,
		"result", resp.Kind().String(),
		"request_id", requestID,
		"elapsed", cc.Elapsed(),
	)

	c.bus.After(parent, observer.AfterEvent{
		Operation:   op.Name,
		Module:      op.Module,
		Correlation: cc,
		Args:        args,
		Result:      resp,
		Elapsed:     cc.Elapsed(),
	})
	return resp
}

func run[T any](ctx context.Context, c *Client, op Operation[T], cc correlation.Context, body []byte) envelope.Response[T] {
	requestID, correlationID := cc.RequestID(), cc.CorrelationID()

	if err := ctx.Err(); err != nil {
		return envelope.Exception[T](err, requestID, correlationID)
	}

	desc, err := c.resolve(ctx, op.Module, cc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return envelope.Exception[T](ctxErr, requestID, correlationID)
		}
		return envelope.Failure[T](&envelope.ProtocolError{
			Reason:        envelope.ReasonUnavailable,
			Message:       MsgNoRemoteURL,
			RequestID:     requestID,
			CorrelationID: correlationID,
			Cause:         err,
		})
	}

	header := http.Header{}
	cc.Apply(header)
	if auth := ocpi.TokenAuthorization(c.token, desc.Version); auth != "" {
		header.Set(ocpi.AuthorizationHeader, auth)
	}
	if body != nil {
		header.Set("Content-Type", "application/json")
	}

	url := desc.URL(op.Path)
	c.logger.Debug("ocpi request",
		"operation", op.Name,
		"method", op.Method,
		"url", url,
		"request_id", requestID,
	)

	resp, err := c.transport.Do(ctx, &transport.Request{
		Method:  op.Method,
		URL:     url,
		Header:  header,
		Body:    body,
		Timeout: cc.Timeout(),
	})
	if err != nil {
		return envelope.Exception[T](err, requestID, correlationID)
	}

	decode := op.Decode
	if decode == nil {
		decode = envelope.DecodeJSON[T]()
	}
	return envelope.Parse(resp.StatusCode, resp.Body, decode, requestID, correlationID)
}

// resolve never panics out of a misbehaving resolver.
func (c *Client) resolve(ctx context.Context, module ocpi.ModuleID, cc correlation.Context) (desc endpoint.Descriptor, err error) {
	if c.resolver == nil {
		return endpoint.Descriptor{}, endpoint.ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: resolver panicked: %v", endpoint.ErrUnavailable, r)
		}
	}()
	desc, err = c.resolver.Resolve(ctx, module, cc.Version(), cc.EventTrackingID())
	if err == nil && desc.BaseURL == "" {
		err = fmt.Errorf("%w: empty base URL for module %s", endpoint.ErrUnavailable, module)
	}
	return desc, err
}

// ErrEmptyBody is the cause of the precondition error raised for a missing body.
var ErrEmptyBody = errors.New("must not be null or empty!")

// encodeBody returns nil when op sends no body. An absent or empty body of an
// operation that requires one is a precondition error.
func encodeBody[T any](op Operation[T]) ([]byte, error) {
	name := op.BodyName
	if name == "" {
		name = "request body"
	}
	if isNil(op.Body) {
		if op.BodyRequired {
			return nil, fmt.Errorf("%s %w", name, ErrEmptyBody)
		}
		return nil, nil
	}
	b, err := ocpi.EncodeJSON(op.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %s: %w", name, err)
	}
	if op.BodyRequired {
		switch string(bytes.TrimSpace(b)) {
		case "", "null", "{}", "[]":
			return nil, fmt.Errorf("%s %w", name, ErrEmptyBody)
		}
	}
	return b, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
