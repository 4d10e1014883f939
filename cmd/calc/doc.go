// Package main is an interactive calculator over the expression engine.
//
// It reads one expression per line, prints the result, and with -debug
// also prints the token stream, the postfix form, and each reduction
// step.
package main
