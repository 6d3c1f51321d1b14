package client

import (
	"context"
	"net/http"

	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// GetLocations fetches one page of the partner's locations.
func (c *Client) GetLocations(ctx context.Context, page ocpi.Page, opts ...Override) envelope.Response[[]ocpi.Location] {
	return Execute(ctx, c, Operation[[]ocpi.Location]{
		Name: "locations/GetLocations", Module: ocpi.ModuleLocations, Method: http.MethodGet,
		Path: withQuery("", page.Query()),
	}, Args{"page": page}, opts...)
}

// GetLocation fetches a location.
func (c *Client) GetLocation(ctx context.Context, locationID string, opts ...Override) envelope.Response[ocpi.Location] {
	return Execute(ctx, c, Operation[ocpi.Location]{
		Name: "locations/GetLocation", Module: ocpi.ModuleLocations, Method: http.MethodGet,
		Path: c.partyPath(locationID),
	}, Args{"location_id": locationID}, opts...)
}

// PutLocation creates or replaces a location.
func (c *Client) PutLocation(ctx context.Context, locationID string, location *ocpi.Location, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "locations/PutLocation", Module: ocpi.ModuleLocations, Method: http.MethodPut,
		Path: c.partyPath(locationID), Body: location, BodyName: "location", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"location_id": locationID, "location": location}, opts...)
}

// PatchLocation updates the members of a location present in patch.
func (c *Client) PatchLocation(ctx context.Context, locationID string, patch ocpi.Patch, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "locations/PatchLocation", Module: ocpi.ModuleLocations, Method: http.MethodPatch,
		Path: c.partyPath(locationID), Body: patch, BodyName: "location patch", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"location_id": locationID, "patch": patch}, opts...)
}

// GetEVSE fetches an EVSE of a location.
func (c *Client) GetEVSE(ctx context.Context, locationID, evseUID string, opts ...Override) envelope.Response[ocpi.EVSE] {
	return Execute(ctx, c, Operation[ocpi.EVSE]{
		Name: "locations/GetEVSE", Module: ocpi.ModuleLocations, Method: http.MethodGet,
		Path: c.partyPath(locationID, evseUID),
	}, Args{"location_id": locationID, "evse_uid": evseUID}, opts...)
}

// PutEVSE creates or replaces an EVSE.
func (c *Client) PutEVSE(ctx context.Context, locationID, evseUID string, evse *ocpi.EVSE, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "locations/PutEVSE", Module: ocpi.ModuleLocations, Method: http.MethodPut,
		Path: c.partyPath(locationID, evseUID), Body: evse, BodyName: "evse", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"location_id": locationID, "evse_uid": evseUID, "evse": evse}, opts...)
}

// PatchEVSE updates the members of an EVSE present in patch.
func (c *Client) PatchEVSE(ctx context.Context, locationID, evseUID string, patch ocpi.Patch, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "locations/PatchEVSE", Module: ocpi.ModuleLocations, Method: http.MethodPatch,
		Path: c.partyPath(locationID, evseUID), Body: patch, BodyName: "evse patch", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"location_id": locationID, "evse_uid": evseUID, "patch": patch}, opts...)
}

// GetConnector fetches a connector of an EVSE.
func (c *Client) GetConnector(ctx context.Context, locationID, evseUID, connectorID string, opts ...Override) envelope.Response[ocpi.Connector] {
	return Execute(ctx, c, Operation[ocpi.Connector]{
		Name: "locations/GetConnector", Module: ocpi.ModuleLocations, Method: http.MethodGet,
		Path: c.partyPath(locationID, evseUID, connectorID),
	}, Args{"location_id": locationID, "evse_uid": evseUID, "connector_id": connectorID}, opts...)
}

// PutConnector creates or replaces a connector.
func (c *Client) PutConnector(ctx context.Context, locationID, evseUID, connectorID string, connector *ocpi.Connector, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "locations/PutConnector", Module: ocpi.ModuleLocations, Method: http.MethodPut,
		Path: c.partyPath(locationID, evseUID, connectorID), Body: connector, BodyName: "connector", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"location_id": locationID, "evse_uid": evseUID, "connector_id": connectorID, "connector": connector}, opts...)
}

// PatchConnector updates the members of a connector present in patch.
func (c *Client) PatchConnector(ctx context.Context, locationID, evseUID, connectorID string, patch ocpi.Patch, opts ...Override) envelope.Response[envelope.Empty] {
	return Execute(ctx, c, Operation[envelope.Empty]{
		Name: "locations/PatchConnector", Module: ocpi.ModuleLocations, Method: http.MethodPatch,
		Path: c.partyPath(locationID, evseUID, connectorID), Body: patch, BodyName: "connector patch", BodyRequired: true,
		Decode: envelope.DecodeEmpty,
	}, Args{"location_id": locationID, "evse_uid": evseUID, "connector_id": connectorID, "patch": patch}, opts...)
}
