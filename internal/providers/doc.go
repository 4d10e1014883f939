// Package providers contains the tool providers the bot exposes as chat
// commands. Each subpackage implements service.Provider and registers a
// set of namespaced tools; the calculator provider wraps the expression
// engine, and the numbers provider covers the number-theory commands.
package providers
