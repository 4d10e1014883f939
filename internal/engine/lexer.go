package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lastKind tracks the previous significant token during scanning. The
// unary/binary reading of + and - and the validity of E-notation both
// depend on it.
type lastKind int

const (
	lastNone lastKind = iota
	lastOperand
	lastOperator
	lastLeftParen
	lastRightParen
)

// afterValue reports whether the scanner just left a value context, i.e.
// the previous token could terminate a subexpression.
func (k lastKind) afterValue() bool {
	return k == lastOperand || k == lastRightParen
}

// Tokenize scans source into an ordered token sequence. The grammar is
// whitespace-insensitive, so all whitespace is stripped first; reported
// positions refer to the stripped text.
func Tokenize(source string) ([]Token, error) {
	src := stripSpace(source)

	var tokens []Token
	last := lastNone
	for i := 0; i < len(src); {
		tok, width, err := scanToken(src, i, last)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		switch tok.Kind {
		case KindOperand:
			last = lastOperand
		case KindLeftParen:
			last = lastLeftParen
		case KindRightParen:
			last = lastRightParen
		default:
			last = lastOperator
		}
		i += width
	}
	return tokens, nil
}

// scanToken consumes the longest valid token starting at src[i].
func scanToken(src string, i int, last lastKind) (Token, int, error) {
	c := src[i]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		return scanNumber(src, i)
	case c == '(':
		return newParen(KindLeftParen, "(", i), 1, nil
	case c == ')':
		return newParen(KindRightParen, ")", i), 1, nil
	case c == '*':
		if i+1 < len(src) && src[i+1] == '*' {
			return newOperator(OpExponent, "**", i), 2, nil
		}
		return newOperator(OpMultiply, "*", i), 1, nil
	case c == '/':
		if i+1 < len(src) && src[i+1] == '/' {
			return newOperator(OpFloorDivide, "//", i), 2, nil
		}
		return newOperator(OpDivide, "/", i), 1, nil
	case c == 'e' || c == 'E':
		// E-notation is a binary operator, so it is only valid right
		// after a value.
		if !last.afterValue() {
			return Token{}, 0, &SyntaxError{Text: string(c), Pos: i, Reason: "E-notation requires a preceding value"}
		}
		return newOperator(OpENotation, string(c), i), 1, nil
	case c == '~':
		return newOperator(OpBitNot, "~", i), 1, nil
	case c == '%':
		return newOperator(OpModulo, "%", i), 1, nil
	case c == '+':
		if last.afterValue() {
			return newOperator(OpAdd, "+", i), 1, nil
		}
		return newOperator(OpPositive, "+", i), 1, nil
	case c == '-':
		if last.afterValue() {
			return newOperator(OpSubtract, "-", i), 1, nil
		}
		return newOperator(OpNegative, "-", i), 1, nil
	case c == '<':
		if i+1 < len(src) && src[i+1] == '<' {
			return newOperator(OpLeftShift, "<<", i), 2, nil
		}
	case c == '>':
		if i+1 < len(src) && src[i+1] == '>' {
			return newOperator(OpRightShift, ">>", i), 2, nil
		}
	case c == '&':
		return newOperator(OpBitAnd, "&", i), 1, nil
	case c == '^':
		return newOperator(OpBitXor, "^", i), 1, nil
	case c == '|':
		return newOperator(OpBitOr, "|", i), 1, nil
	}
	r, _ := utf8.DecodeRuneInString(src[i:])
	return Token{}, 0, &SyntaxError{Text: string(r), Pos: i, Reason: "undefined token"}
}

// scanNumber consumes a run of digits with at most one decimal point.
func scanNumber(src string, start int) (Token, int, error) {
	i := start
	dot := false
	for i < len(src) {
		c := src[i]
		if c >= '0' && c <= '9' {
			i++
			continue
		}
		if c == '.' {
			if dot {
				return Token{}, 0, &SyntaxError{Text: src[start : i+1], Pos: start, Reason: "malformed number"}
			}
			dot = true
			i++
			continue
		}
		break
	}
	text := src[start:i]
	if text == "." {
		return Token{}, 0, &SyntaxError{Text: text, Pos: start, Reason: "expected digits in number"}
	}
	return newOperand(text, start), i - start, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
