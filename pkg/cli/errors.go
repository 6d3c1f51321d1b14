package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/ocpi/pkg/cliconfig"
	"github.com/getmockd/ocpi/pkg/endpoint"
	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// Common CLI errors
var (
	ErrNoVersionsURL      = errors.New("no versions URL configured - set --versions-url or versionsUrl in the config file")
	ErrConnectorNeedsEVSE = errors.New("--connector requires --evse")
)

// FormatError returns a user-friendly error message with suggestions where the
// failure has a likely fix.
func FormatError(err error) string {
	var (
		perr *envelope.ProtocolError
		terr *envelope.TransportError
		cerr *cliconfig.ConfigError
	)
	switch {
	case errors.As(err, &perr):
		return formatProtocolError(perr)
	case errors.As(err, &terr):
		return formatTransportError(terr)
	case errors.As(err, &cerr):
		return withSuggestions("Error: invalid configuration: "+cerr.Error(),
			"Check the YAML syntax of the file",
			"Show the effective configuration with: ocpi config")
	case errors.Is(err, endpoint.ErrUnavailable):
		return withSuggestions("Error: "+err.Error(),
			"Check --versions-url and --token: ocpi config",
			"Pin a version the partner offers with --version")
	case errors.Is(err, ErrNoVersionsURL):
		return withSuggestions("Error: "+err.Error(),
			"Pass it once: ocpi versions --versions-url https://partner.example.com/ocpi/versions",
			"Or export OCPI_VERSIONS_URL")
	}
	return "Error: " + err.Error()
}

func formatProtocolError(perr *envelope.ProtocolError) string {
	switch perr.Reason {
	case envelope.ReasonUnavailable:
		msg := "Error: " + perr.Message
		if perr.Cause != nil {
			msg += " (" + perr.Cause.Error() + ")"
		}
		return withSuggestions(msg,
			"Check --versions-url or the endpoints table: ocpi config",
			"List the modules the partner offers: ocpi versions")
	case envelope.ReasonRemote:
		msg := fmt.Sprintf("Error: partner rejected the request (status %d): %s", perr.Code, perr.Message)
		if perr.RequestID != "" {
			msg += "\nRequest ID: " + perr.RequestID
		}
		if perr.HTTPStatus == http.StatusUnauthorized || perr.HTTPStatus == http.StatusForbidden ||
			ocpi.StatusCode(perr.Code) == ocpi.StatusUnknownToken {
			return withSuggestions(msg,
				"Check the token: ocpi config",
				"From OCPI 2.2 on the token is sent base64 encoded; try --version 2.1.1 for older partners")
		}
		return msg
	}
	return "Error: " + perr.Message
}

func formatTransportError(terr *envelope.TransportError) string {
	msg := "Error: cannot reach partner: " + terr.Cause.Error()
	switch {
	case terr.Canceled():
		return "Error: interrupted"
	case terr.Timeout():
		return withSuggestions(msg, "Increase the timeout: --timeout 60s")
	}
	return withSuggestions(msg,
		"Check that the partner URL is reachable",
		"Run with --log-level debug to see the request URL")
}

func withSuggestions(msg string, suggestions ...string) string {
	var b strings.Builder
	b.WriteString(msg)
	b.WriteString("\n\nSuggestions:")
	for _, s := range suggestions {
		b.WriteString("\n  • ")
		b.WriteString(s)
	}
	return b.String()
}
