package client

import (
	"context"
	"net/http"

	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// GetTariff fetches a tariff.
func (c *Client) GetTariff(ctx context.Context, tariffID string, opts ...Override) envelope.Response[ocpi.Tariff] {
	return Execute(ctx, c, Operation[ocpi.Tariff]{
		Name: "tariffs/GetTariff", Module: ocpi.ModuleTariffs, Method: http.MethodGet,
		Path: c.partyPath(tariffID),
	}, Args{"tariff_id": tariffID}, opts...)
}

// PutTariff creates or replaces a tariff.
func (c *Client) PutTariff(ctx context.Context, tariffID string, tariff *ocpi.Tariff, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "tariffs/PutTariff", Module: ocpi.ModuleTariffs, Method: http.MethodPut,
		Path: c.partyPath(tariffID), Body: tariff, BodyName: "tariff", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"tariff_id": tariffID, "tariff": tariff}, opts...)
}

// PatchTariff updates the members of a tariff present in patch.
func (c *Client) PatchTariff(ctx context.Context, tariffID string, patch ocpi.Patch, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "tariffs/PatchTariff", Module: ocpi.ModuleTariffs, Method: http.MethodPatch,
		Path: c.partyPath(tariffID), Body: patch, BodyName: "tariff patch", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"tariff_id": tariffID, "patch": patch}, opts...)
}

// DeleteTariff removes a tariff.
func (c *Client) DeleteTariff(ctx context.Context, tariffID string, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "tariffs/DeleteTariff", Module: ocpi.ModuleTariffs, Method: http.MethodDelete,
		Path: c.partyPath(tariffID), Decode: envelope.DecodeEmpty,
	}, Args{"tariff_id": tariffID}, opts...)
}
