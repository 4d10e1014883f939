package engine

import "github.com/shopspring/decimal"

// Parse tokenizes source and converts it to postfix form in one step. The
// token sequence is returned alongside the postfix sequence for diagnostic
// display.
func Parse(source string) (Sequence, []Token, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, nil, err
	}
	seq, err := toPostfix(tokens)
	if err != nil {
		return nil, tokens, err
	}
	return seq, tokens, nil
}

// toPostfix runs the shunting-yard algorithm over the token sequence.
// Precedence values are inverted (lower binds tighter), so the comparison
// that decides when to pop the operator stack is inverted as well.
func toPostfix(tokens []Token) (Sequence, error) {
	var queue Sequence
	var stack []Token

	for i, tok := range tokens {
		switch tok.Kind {
		case KindOperand:
			d, err := decimal.NewFromString(tok.Text)
			if err != nil {
				return nil, &SyntaxError{Text: tok.Text, Pos: tok.Pos, Reason: "malformed number"}
			}
			queue = append(queue, operand(d))

		case KindLeftParen:
			// A value directly before ( multiplies the group: 2(3+4)
			// reads as 2*(3+4). The synthetic operator binds at additive
			// level, not multiplicative, so an explicit multiplicative
			// operator after the group is applied first: 2(3)//4 is
			// 2*(3//4).
			if i > 0 && (tokens[i-1].Kind == KindOperand || tokens[i-1].Kind == KindRightParen) {
				syn := newOperator(OpMultiply, "*", tok.Pos)
				syn.Precedence = precAdditive
				stack = append(stack, syn)
			}
			stack = append(stack, tok)

		case KindRightParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == KindLeftParen {
					matched = true
					break
				}
				queue = append(queue, operator(top))
			}
			if !matched {
				return nil, &SyntaxError{Text: tok.Text, Pos: tok.Pos, Reason: "mismatched parenthesis"}
			}

		case KindOperator:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == KindLeftParen {
					break
				}
				if top.Precedence < tok.Precedence ||
					(top.Precedence == tok.Precedence && tok.Assoc == AssocLeft) {
					queue = append(queue, operator(top))
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, tok)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == KindLeftParen {
			return nil, &SyntaxError{Text: top.Text, Pos: top.Pos, Reason: "mismatched parenthesis"}
		}
		queue = append(queue, operator(top))
	}
	return queue, nil
}
