package cli

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/getmockd/ocpi/pkg/cliconfig"
	"github.com/getmockd/ocpi/pkg/endpoint"
	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    []string
		exclude []string
	}{
		{
			name: "remote rejection without hint",
			err: &envelope.ProtocolError{
				Reason: envelope.ReasonRemote, Code: 2003, HTTPStatus: http.StatusNotFound,
				Message: "Unknown location", RequestID: "req-1",
			},
			want:    []string{"partner rejected the request (status 2003): Unknown location", "Request ID: req-1"},
			exclude: []string{"Suggestions:"},
		},
		{
			name: "unauthorized",
			err: &envelope.ProtocolError{
				Reason: envelope.ReasonRemote, Code: 2004, HTTPStatus: http.StatusUnauthorized, Message: "Unknown token",
			},
			want: []string{"Suggestions:", "Check the token", "--version 2.1.1"},
		},
		{
			name: "no remote URL",
			err: &envelope.ProtocolError{
				Reason: envelope.ReasonUnavailable, Message: "No remote URL available!",
				Cause: fmt.Errorf("%w: partner offers no tariffs endpoint", endpoint.ErrUnavailable),
			},
			want: []string{"Error: No remote URL available! (endpoint unavailable: partner offers no tariffs endpoint)", "ocpi versions"},
		},
		{
			name: "interrupted",
			err:  &envelope.TransportError{Cause: context.Canceled},
			want: []string{"Error: interrupted"},
		},
		{
			name: "timeout",
			err:  &envelope.TransportError{Cause: fmt.Errorf("GET https://partner: %w", context.DeadlineExceeded)},
			want: []string{"cannot reach partner", "--timeout 60s"},
		},
		{
			name: "discovery",
			err:  fmt.Errorf("%w: partner does not offer version 2.2", endpoint.ErrUnavailable),
			want: []string{"partner does not offer version 2.2", "--version"},
		},
		{
			name: "config file",
			err:  fmt.Errorf("failed to load configuration: %w", &cliconfig.ConfigError{Path: "broken.yaml", Line: 2, Message: "bad"}),
			want: []string{"invalid configuration: broken.yaml (line 2): bad", "YAML syntax"},
		},
		{
			name: "versions URL",
			err:  ErrNoVersionsURL,
			want: []string{"no versions URL configured", "OCPI_VERSIONS_URL"},
		},
		{
			name:    "plain",
			err:     ErrConnectorNeedsEVSE,
			want:    []string{"Error: --connector requires --evse"},
			exclude: []string{"Suggestions:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, x := range tt.exclude {
				assert.NotContains(t, got, x)
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "(none)", maskToken(""))
	assert.Equal(t, "****", maskToken("abc"))
	assert.Equal(t, "ab****gh", maskToken("abcdefgh"))
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "Stationsplein 1, Utrecht", joinNonEmpty(", ", "Stationsplein 1", " Utrecht", "  "))
	assert.Empty(t, joinNonEmpty(", "))
}

func TestFormatTime(t *testing.T) {
	assert.Empty(t, formatTime(time.Time{}))
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "2026-03-01T11:00:00Z", formatTime(ts))
}
