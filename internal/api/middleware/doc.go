// Package middleware provides HTTP middleware for the API surface:
// CORS, per-IP rate limiting, and request ID propagation.
package middleware
