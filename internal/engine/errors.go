package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SyntaxError reports source text the engine could not parse or a postfix
// sequence it could not reduce. It is never recovered internally.
type SyntaxError struct {
	Text   string // offending substring, if known
	Pos    int    // byte offset into the whitespace-stripped source
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("syntax error at offset %d: %s: %q", e.Pos, e.Reason, e.Text)
	}
	return "syntax error: " + e.Reason
}

// TypeMismatchError reports an operand that violates an operator's numeric
// precondition, such as a fractional value given to a bitwise operator.
type TypeMismatchError struct {
	Op     string // display name of the operator, e.g. "Bitwise AND"
	Value  decimal.Decimal
	Reason string // what the operator does not accept, e.g. "non-integers"
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s does not accept %s (%s)", e.Op, e.Reason, e.Value)
}

// ZeroDivisionError reports division, floor division, or modulo by zero.
type ZeroDivisionError struct {
	Op string
}

func (e *ZeroDivisionError) Error() string {
	return e.Op + ": division by zero"
}

// OverflowError reports a computed value that exceeds the representable
// magnitude bound.
type OverflowError struct {
	Op string
}

func (e *OverflowError) Error() string {
	return e.Op + ": result exceeds the representable range"
}
