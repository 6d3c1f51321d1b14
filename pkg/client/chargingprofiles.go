package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// GetActiveChargingProfile requests the profile active on a session for the next
// duration seconds. The result is posted later to responseURL.
func (c *Client) GetActiveChargingProfile(ctx context.Context, sessionID string, duration int, responseURL string, opts ...Override) envelope.Response[ocpi.ChargingProfileResponse] {
	q := url.Values{}
	q.Set("duration", strconv.Itoa(duration))
	q.Set("response_url", responseURL)
	return Execute(ctx, c, Operation[ocpi.ChargingProfileResponse]{
		Name: "chargingprofiles/GetActiveChargingProfile", Module: ocpi.ModuleChargingProfiles, Method: http.MethodGet,
		Path: withQuery(segments(sessionID), q),
	}, Args{"session_id": sessionID, "duration": duration, "response_url": responseURL}, opts...)
}

// PutActiveChargingProfile reports the profile now active on a session.
func (c *Client) PutActiveChargingProfile(ctx context.Context, sessionID string, profile *ocpi.ActiveChargingProfile, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "chargingprofiles/PutActiveChargingProfile", Module: ocpi.ModuleChargingProfiles, Method: http.MethodPut,
		Path: segments(sessionID), Body: profile, BodyName: "active charging profile", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"session_id": sessionID, "profile": profile}, opts...)
}

// DeleteChargingProfile clears the profile set on a session.
func (c *Client) DeleteChargingProfile(ctx context.Context, sessionID, responseURL string, opts ...Override) envelope.Response[ocpi.ChargingProfileResponse] {
	q := url.Values{}
	q.Set("response_url", responseURL)
	return Execute(ctx, c, Operation[ocpi.ChargingProfileResponse]{
		Name: "chargingprofiles/DeleteChargingProfile", Module: ocpi.ModuleChargingProfiles, Method: http.MethodDelete,
		Path: withQuery(segments(sessionID), q),
	}, Args{"session_id": sessionID, "response_url": responseURL}, opts...)
}
