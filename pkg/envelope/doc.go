// Package envelope defines the result type returned by every protocol operation.
//
// A [Response] is exactly one of three variants:
//
//   - Success: the partner answered and the payload decoded
//   - ProtocolError: the operation did not produce a payload, either because a
//     local check failed (precondition, no endpoint, undecodable body) or
//     because the partner reported an error
//   - TransportException: the HTTP exchange itself failed (connection refused,
//     timeout, cancellation)
//
// Callers switch on [Response.Kind] or use the typed accessors:
//
//	resp := c.GetLocation(ctx, "LOC1")
//	switch resp.Kind() {
//	case envelope.KindSuccess:
//	    loc, _ := resp.Payload()
//	case envelope.KindProtocolError:
//	    perr, _ := resp.ProtocolError()
//	case envelope.KindTransportException:
//	    terr, _ := resp.TransportError()
//	}
//
// Responses are immutable after construction.
package envelope
