// Package cli provides the command-line interface for the OCPI client.
//
// Commands:
//   - version: Show ocpi version
//   - config: Display effective configuration with sources
//   - versions: Show the partner's versions and discovered endpoints
//   - location get: Fetch a location, EVSE or connector
//   - tariff get|delete: Fetch or remove a tariff
//   - session get: Fetch a charging session
//   - cdr get: Fetch a charge detail record
//   - tokens list: List the partner's tokens
//   - token authorize: Request real-time authorization of a token
//
// Global flags select the partner (--versions-url, --token, --version), the output
// (--json, --query) and diagnostics (--metrics, --log-level, --log-format, --log-file).
//
// Usage:
//
//	ocpi versions --versions-url https://partner.example.com/ocpi/versions --token $TOKEN
//	ocpi location get LOC1 --evse EVSE1
//	ocpi tokens list --limit 10 --json
//	ocpi tariff get T1 --query '$.elements[*].price_components[*].price'
package cli
