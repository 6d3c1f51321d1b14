package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// GetTokens fetches one page of the partner's tokens.
func (c *Client) GetTokens(ctx context.Context, page ocpi.Page, opts ...Override) envelope.Response[[]ocpi.Token] {
	return Execute(ctx, c, Operation[[]ocpi.Token]{
		Name: "tokens/GetTokens", Module: ocpi.ModuleTokens, Method: http.MethodGet,
		Path: withQuery("", page.Query()),
	}, Args{"page": page}, opts...)
}

// PostTokenAuthorize asks for real-time authorization of a token. tokenType defaults
// to RFID on the partner side when empty; refs may be nil.
func (c *Client) PostTokenAuthorize(ctx context.Context, tokenUID, tokenType string, refs *ocpi.LocationReferences, opts ...Override) envelope.Response[ocpi.AuthorizationInfo] {
	q := url.Values{}
	if tokenType != "" {
		q.Set("type", tokenType)
	}
	return Execute(ctx, c, Operation[ocpi.AuthorizationInfo]{
		Name: "tokens/PostTokenAuthorize", Module: ocpi.ModuleTokens, Method: http.MethodPost,
		Path: withQuery(segments(tokenUID, "authorize"), q), Body: refs,
	}, Args{"token_uid": tokenUID, "type": tokenType, "location": refs}, opts...)
}
