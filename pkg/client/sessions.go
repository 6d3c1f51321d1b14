package client

import (
	"context"
	"net/http"

	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// GetSession fetches a charging session.
func (c *Client) GetSession(ctx context.Context, sessionID string, opts ...Override) envelope.Response[ocpi.Session] {
	return Execute(ctx, c, Operation[ocpi.Session]{
		Name: "sessions/GetSession", Module: ocpi.ModuleSessions, Method: http.MethodGet,
		Path: c.partyPath(sessionID),
	}, Args{"session_id": sessionID}, opts...)
}

// PutSession creates or replaces a session.
func (c *Client) PutSession(ctx context.Context, sessionID string, session *ocpi.Session, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "sessions/PutSession", Module: ocpi.ModuleSessions, Method: http.MethodPut,
		Path: c.partyPath(sessionID), Body: session, BodyName: "session", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"session_id": sessionID, "session": session}, opts...)
}

// PatchSession updates the members of a session present in patch.
func (c *Client) PatchSession(ctx context.Context, sessionID string, patch ocpi.Patch, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "sessions/PatchSession", Module: ocpi.ModuleSessions, Method: http.MethodPatch,
		Path: c.partyPath(sessionID), Body: patch, BodyName: "session patch", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"session_id": sessionID, "patch": patch}, opts...)
}
