// Package middleware provides HTTP middleware for request tracing and bearer
// token authentication.
package middleware
