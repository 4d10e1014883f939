// Package main is the entry point for the Wren bot backend server.
//
// The server exposes the service registry over a REST API so chat
// frontends can list, discover, and execute tools.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
