package client

import (
	"context"
	"net/http"

	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// GetCDR fetches a charge detail record by the id assigned on PostCDR.
func (c *Client) GetCDR(ctx context.Context, cdrID string, opts ...Override) envelope.Response[ocpi.CDR] {
	return Execute(ctx, c, Operation[ocpi.CDR]{
		Name: "cdrs/GetCDR", Module: ocpi.ModuleCDRs, Method: http.MethodGet,
		Path: segments(cdrID),
	}, Args{"cdr_id": cdrID}, opts...)
}

// PostCDR sends a new charge detail record.
func (c *Client) PostCDR(ctx context.Context, cdr *ocpi.CDR, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "cdrs/PostCDR", Module: ocpi.ModuleCDRs, Method: http.MethodPost,
		Body: cdr, BodyName: "cdr", BodyRequired: true, Decode: envelope.DecodeEmpty,
	}, Args{"cdr": cdr}, opts...)
}
