// Package monitoring provides Prometheus metrics for the bot backend.
//
// Metrics cover the HTTP surface (request counts, durations, sizes),
// tool executions routed through the service registry, and expression
// evaluations broken down by outcome.
package monitoring
