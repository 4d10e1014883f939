// Package logging provides structured logging built on zap.
//
// Production loggers emit JSON to stdout; development loggers use the
// colored console encoder with stacktraces enabled.
package logging
