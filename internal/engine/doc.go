// Package engine implements the arithmetic expression engine behind the
// bot's evaluate command.
//
// Evaluation happens in three stages:
//   - Tokenize: scan a source string into tokens, resolving unary vs.
//     binary + and - by looking at the previous significant token
//   - Parse: convert the token stream to postfix form with the
//     shunting-yard algorithm, inserting implicit multiplication
//   - Evaluate: reduce the postfix sequence to a single value, optionally
//     streaming one line per reduction step to a trace writer
//
// Operands are arbitrary-precision base-10 decimals (shopspring/decimal).
// Precedence values are inverted relative to the usual convention: lower
// values bind tighter, with parentheses at 0 and bitwise OR at 7.
//
// The engine is synchronous and stateless; the operator tables are
// read-only, so parsing and evaluating concurrently from multiple
// goroutines is safe. Exponentiation and shifts are bounded by an internal
// magnitude limit, but callers serving untrusted input should still impose
// their own timeout around Evaluate.
package engine
