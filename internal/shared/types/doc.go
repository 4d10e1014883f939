// Package types provides shared data structures for the bot backend.
//
// This package defines the types used across all backend components:
//   - Service: tool provider definition
//   - Tool: a single command a provider exposes
//   - Context: chat execution context (user, channel, guild)
//   - Result: standard operation result
//
// Providers implement commands as Tools and return Results; the HTTP
// layer and the service registry only ever traffic in these types.
package types
