// Package ocpi contains the protocol model of the Open Charge Point Interface:
// module identifiers, protocol versions, status codes, the response envelope
// exchanged on the wire, and the entities a charge point operator pushes to and
// pulls from its partners.
//
// Entities carry the fields needed to move data between parties. They are not a
// complete rendition of any version's schema.
//
// # Envelope
//
// Every OCPI response body is wrapped in an envelope:
//
//	{
//	  "data": {...},
//	  "status_code": 1000,
//	  "status_message": "Success",
//	  "timestamp": "2026-01-02T03:04:05Z"
//	}
//
// Status codes 1xxx denote success, 2xxx client errors, 3xxx server errors and
// 4xxx hub errors. Use [ParseEnvelope] to validate and split a raw body.
package ocpi
