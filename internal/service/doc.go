// Package service manages tool provider registration and execution.
//
// Providers register under a service ID; tool IDs are namespaced as
// "<service>.<tool>", so the registry can route any tool call to its
// provider without the caller knowing which provider owns it. Discovery
// scores providers against free-form chat text so the command dispatcher
// can suggest relevant tools.
package service
