package envelope

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/getmockd/ocpi/pkg/ocpi"
)

// Decoder turns a raw payload into T.
type Decoder[T any] func(raw []byte) (T, error)

// maxMessageBody bounds how much of a non-envelope error body ends up in a message.
const maxMessageBody = 256

// DecodeEmpty is the Decoder of operations without a payload. It ignores the body.
func DecodeEmpty(_ []byte) (Empty, error) {
	return Empty{}, nil
}

// DecodeJSON returns a Decoder that parses JSON into T.
func DecodeJSON[T any]() Decoder[T] {
	return ocpi.DecodeJSON[T]
}

// Parse builds the Response for an HTTP response that was received.
//
// A 2xx body that is an OCPI envelope is unwrapped: a 1xxx status code yields the
// decoded data, any other code a remote ProtocolError. A 2xx body that is not an
// envelope is decoded as the payload itself. Non-2xx statuses yield a remote
// ProtocolError carrying the envelope's code when present, else the HTTP status.
func Parse[T any](status int, body []byte, decode Decoder[T], requestID, correlationID string) Response[T] {
	fail := func(reason Reason, code int, msg string, cause error) Response[T] {
		return Failure[T](&ProtocolError{
			Reason:        reason,
			Code:          code,
			HTTPStatus:    status,
			Message:       msg,
			RequestID:     requestID,
			CorrelationID: correlationID,
			Cause:         cause,
		})
	}

	if status < 200 || status > 299 {
		if ocpi.LooksLikeEnvelope(body) {
			if env, err := ocpi.ParseEnvelope(body); err == nil {
				return fail(ReasonRemote, int(env.StatusCode), statusMessage(env, status), nil)
			}
		}
		return fail(ReasonRemote, status, fmt.Sprintf("partner returned HTTP %d: %s", status, snippet(body)), nil)
	}

	raw := body
	var (
		code    ocpi.StatusCode
		message string
	)
	if ocpi.LooksLikeEnvelope(body) {
		env, err := ocpi.ParseEnvelope(body)
		if err != nil {
			return fail(ReasonDecode, status, err.Error(), err)
		}
		if !env.StatusCode.IsSuccess() {
			return fail(ReasonRemote, int(env.StatusCode), statusMessage(env, status), nil)
		}
		raw, code, message = env.Data, env.StatusCode, env.StatusMessage
	}

	payload, err := decode(raw)
	if err != nil {
		return fail(ReasonDecode, status, "cannot decode response payload: "+err.Error(), err)
	}
	return successWithStatus(payload, requestID, correlationID, code, message)
}

func statusMessage(env *ocpi.Envelope, status int) string {
	if env.StatusMessage != "" {
		return env.StatusMessage
	}
	return fmt.Sprintf("partner returned status %d (%s) with HTTP %d %s",
		env.StatusCode, env.StatusCode.Class(), status, http.StatusText(status))
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxMessageBody {
		cut := maxMessageBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	if s == "" {
		return "<empty body>"
	}
	return s
}
