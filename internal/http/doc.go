// Package http provides HTTP handlers for the bot backend REST API.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//   - Metrics: /metrics (Prometheus exposition)
package http
