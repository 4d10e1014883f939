package engine

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// evalPrecision is the number of significant decimal digits kept by
	// inexact operations (division, fractional exponents).
	evalPrecision = 28

	// maxMagnitude bounds the base-10 exponent of any computed value and
	// the number of bits a shift may produce. Crafted input like 9**9**9
	// fails with an OverflowError instead of consuming unbounded CPU.
	maxMagnitude = 1_000_000
)

// Evaluate applies the operator to exactly Arity operands given in
// left-to-right order. It has no side effects; identical inputs always
// produce identical outputs.
func (t Token) Evaluate(operands ...decimal.Decimal) (decimal.Decimal, error) {
	if t.Kind != KindOperator {
		return decimal.Decimal{}, &SyntaxError{Text: t.Text, Pos: t.Pos, Reason: "token is not an operator"}
	}
	if len(operands) != t.Arity {
		return decimal.Decimal{}, &SyntaxError{
			Text:   t.Text,
			Pos:    t.Pos,
			Reason: fmt.Sprintf("expected %d operands for %s, received %d", t.Arity, t.Op, len(operands)),
		}
	}

	switch t.Op {
	case OpExponent:
		return evalPow(t.Op, operands[0], operands[1])
	case OpENotation:
		return evalScale(operands[0], operands[1])
	case OpBitNot:
		a, err := integral(t.Op, operands[0])
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromBigInt(new(big.Int).Not(a), 0), nil
	case OpPositive:
		return operands[0], nil
	case OpNegative:
		return operands[0].Neg(), nil
	case OpMultiply:
		return checkRange(t.Op, operands[0].Mul(operands[1]))
	case OpDivide:
		if operands[1].IsZero() {
			return decimal.Decimal{}, &ZeroDivisionError{Op: t.Op.String()}
		}
		return checkRange(t.Op, operands[0].DivRound(operands[1], evalPrecision))
	case OpFloorDivide:
		if operands[1].IsZero() {
			return decimal.Decimal{}, &ZeroDivisionError{Op: t.Op.String()}
		}
		// Integer quotient truncated toward zero, matching the source
		// system's decimal floor division.
		q, _ := operands[0].QuoRem(operands[1], 0)
		return checkRange(t.Op, q)
	case OpModulo:
		if operands[1].IsZero() {
			return decimal.Decimal{}, &ZeroDivisionError{Op: t.Op.String()}
		}
		return checkRange(t.Op, operands[0].Mod(operands[1]))
	case OpAdd:
		return checkRange(t.Op, operands[0].Add(operands[1]))
	case OpSubtract:
		return checkRange(t.Op, operands[0].Sub(operands[1]))
	case OpLeftShift, OpRightShift:
		return evalShift(t.Op, operands[0], operands[1])
	case OpBitAnd, OpBitXor, OpBitOr:
		a, err := integral(t.Op, operands[0])
		if err != nil {
			return decimal.Decimal{}, err
		}
		b, err := integral(t.Op, operands[1])
		if err != nil {
			return decimal.Decimal{}, err
		}
		out := new(big.Int)
		switch t.Op {
		case OpBitAnd:
			out.And(a, b)
		case OpBitXor:
			out.Xor(a, b)
		case OpBitOr:
			out.Or(a, b)
		}
		return decimal.NewFromBigInt(out, 0), nil
	}
	return decimal.Decimal{}, &SyntaxError{Text: t.Text, Pos: t.Pos, Reason: "unknown operator"}
}

// integral converts an operand to a signed integer, rejecting values with a
// fractional part. Bitwise and shift operators require integral operands.
func integral(op Op, d decimal.Decimal) (*big.Int, error) {
	if !d.IsInteger() {
		return nil, &TypeMismatchError{Op: op.String(), Value: d, Reason: "non-integers"}
	}
	return d.BigInt(), nil
}

// checkRange rejects results whose base-10 exponent leaves the supported
// range.
func checkRange(op Op, d decimal.Decimal) (decimal.Decimal, error) {
	exp := int64(d.Exponent())
	if exp > maxMagnitude || -exp > maxMagnitude || int64(d.NumDigits())+exp > maxMagnitude {
		return decimal.Decimal{}, &OverflowError{Op: op.String()}
	}
	return d, nil
}

var maxExponent = decimal.NewFromInt(maxMagnitude)

func evalPow(op Op, base, exp decimal.Decimal) (decimal.Decimal, error) {
	if base.IsZero() && exp.Sign() < 0 {
		return decimal.Decimal{}, &ZeroDivisionError{Op: op.String()}
	}
	if base.Sign() < 0 && !exp.IsInteger() {
		return decimal.Decimal{}, &TypeMismatchError{
			Op: op.String(), Value: exp, Reason: "fractional exponents of negative bases",
		}
	}
	// Bound the result size before computing anything; the cost of integer
	// exponentiation grows with the magnitude of the exponent.
	if exp.Abs().Cmp(maxExponent) > 0 {
		return decimal.Decimal{}, &OverflowError{Op: op.String()}
	}
	if exp.IsInteger() {
		digits := int64(base.NumDigits()) + int64(base.Exponent())
		if digits < 1 {
			digits = 1
		}
		if est := digits * exp.Abs().IntPart(); est > maxMagnitude {
			return decimal.Decimal{}, &OverflowError{Op: op.String()}
		}
	}
	out, err := base.PowWithPrecision(exp, evalPrecision)
	if err != nil {
		return decimal.Decimal{}, &OverflowError{Op: op.String()}
	}
	return checkRange(op, out)
}

// evalScale computes a × 10^b for the E-notation operator.
func evalScale(a, b decimal.Decimal) (decimal.Decimal, error) {
	ten, err := evalPow(OpENotation, decimal.NewFromInt(10), b)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return checkRange(OpENotation, a.Mul(ten))
}

func evalShift(op Op, a, b decimal.Decimal) (decimal.Decimal, error) {
	x, err := integral(op, a)
	if err != nil {
		return decimal.Decimal{}, err
	}
	count, err := integral(op, b)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if count.Sign() < 0 {
		return decimal.Decimal{}, &TypeMismatchError{Op: op.String(), Value: b, Reason: "negative shift counts"}
	}
	if !count.IsUint64() || count.Uint64() > maxMagnitude {
		return decimal.Decimal{}, &OverflowError{Op: op.String()}
	}
	n := uint(count.Uint64())
	out := new(big.Int)
	if op == OpLeftShift {
		out.Lsh(x, n)
	} else {
		out.Rsh(x, n)
	}
	return decimal.NewFromBigInt(out, 0), nil
}
