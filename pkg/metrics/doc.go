// Package metrics provides Prometheus-compatible metrics for the OCPI client.
//
// This package implements the Prometheus text exposition format (text/plain; version=0.0.4)
// using only the standard library.
//
// Supported metric types:
//   - Counter: monotonically increasing value (e.g., request counts)
//   - Gauge: value that can go up or down (e.g., in-flight operations)
//   - Histogram: distribution of values with configurable buckets (e.g., latencies)
//
// All metrics are thread-safe and can be updated from multiple goroutines.
//
// # Operation Counters
//
// [OperationCounters] keeps the four per-operation tallies of the client:
//
//   - requests_ok: attempts, counted at invocation entry
//   - requests_error: attempts that could not be sent (no endpoint)
//   - responses_ok: responses that produced a payload
//   - responses_error: transport failures and error responses
//
// They are exported as ocpi_client_operations_total{operation, stage, outcome}
// and can also be read as a [Report].
//
// # Usage
//
//	registry := metrics.NewRegistry()
//	counters := metrics.NewOperationCounters(registry)
//	counters.For("locations/GetLocation").RequestOK()
//
//	// Register the /metrics endpoint
//	http.Handle("/metrics", registry.Handler())
//
//	// Or dump once
//	registry.WriteTo(os.Stdout)
package metrics
