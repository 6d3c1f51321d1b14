// Package id provides unique identifier generation utilities.
//
// This is the canonical source for ID generation across the ocpi codebase.
// It provides two ID formats:
//
//   - UUID: Standard UUID v4 (random), used for the X-Request-ID and
//     X-Correlation-ID headers
//   - EventID: UUID v7 (time-ordered), used for event tracking ids so that
//     log lines and observer events sort chronologically
//
// Both are generated with github.com/google/uuid, which reads from crypto/rand.
package id
