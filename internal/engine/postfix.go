package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Element is one slot in a postfix sequence: either a literal operand or an
// operator awaiting its operands.
type Element struct {
	Operand decimal.Decimal
	Op      *Token // nil for operands
}

func operand(d decimal.Decimal) Element {
	return Element{Operand: d}
}

func operator(t Token) Element {
	return Element{Op: &t}
}

// IsOperator reports whether the element is an operator slot.
func (e Element) IsOperator() bool {
	return e.Op != nil
}

func (e Element) String() string {
	if e.Op != nil {
		return e.Op.String()
	}
	return e.Operand.String()
}

// Sequence is a postfix (RPN) rendering of an expression. A well-formed
// sequence built from M operands and operators of arities a1..ak satisfies
// M = 1 + sum(ai), so reduction always terminates at a single value.
type Sequence []Element

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Evaluate reduces the sequence to a single value. Each step locates the
// first operator, applies it to the operands directly before it, and
// splices the result back in place. If trace is non-nil, the sequence's
// rendering after each step is written to it, one line per step.
//
// The receiver is not modified; reduction happens on a working copy. An
// empty sequence yields no result and no error, reported by the second
// return value.
func (s Sequence) Evaluate(trace io.Writer) (decimal.Decimal, bool, error) {
	if len(s) == 0 {
		return decimal.Decimal{}, false, nil
	}

	work := make(Sequence, len(s))
	copy(work, s)

	for len(work) > 1 {
		at := -1
		for i, e := range work {
			if e.IsOperator() {
				at = i
				break
			}
		}
		if at < 0 {
			return decimal.Decimal{}, false, &SyntaxError{Reason: "could not find an operator"}
		}

		op := work[at].Op
		lo := at - op.Arity
		if lo < 0 {
			return decimal.Decimal{}, false, &SyntaxError{
				Text:   op.Text,
				Pos:    op.Pos,
				Reason: fmt.Sprintf("expected %d operands for %s, received %d", op.Arity, op.Op, at),
			}
		}

		operands := make([]decimal.Decimal, op.Arity)
		for i := range operands {
			operands[i] = work[lo+i].Operand
		}
		result, err := op.Evaluate(operands...)
		if err != nil {
			return decimal.Decimal{}, false, err
		}

		work[lo] = operand(result)
		work = append(work[:lo+1], work[at+1:]...)

		if trace != nil {
			if _, err := io.WriteString(trace, work.String()+"\n"); err != nil {
				return decimal.Decimal{}, false, fmt.Errorf("write trace: %w", err)
			}
		}
	}

	if work[0].IsOperator() {
		return decimal.Decimal{}, false, &SyntaxError{
			Text:   work[0].Op.Text,
			Pos:    work[0].Op.Pos,
			Reason: fmt.Sprintf("expected %d operands for %s, received 0", work[0].Op.Arity, work[0].Op.Op),
		}
	}
	return work[0].Operand, true, nil
}
