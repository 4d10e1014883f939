// Package config provides 12-factor configuration for the bot backend.
//
// Configuration is loaded from environment variables with sensible
// defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: log level and output format
//   - Engine: expression evaluation limits
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - EVAL_TIMEOUT
package config
