// Package shared holds request and response helpers used by both the API
// handlers and the middleware: context keys for the trace ID and the
// authenticated principal, JSON decoding and validation, and the standard
// error response shape.
package shared
