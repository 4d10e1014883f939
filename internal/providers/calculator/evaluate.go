package calculator

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wrenbot/wren/backend/internal/engine"
	"github.com/wrenbot/wren/backend/internal/shared/types"
)

type evalOutcome struct {
	result   decimal.Decimal
	ok       bool
	tokens   []engine.Token
	postfix  string
	steps    []string
	parseErr error
	evalErr  error
}

// evaluate runs the expression engine under the provider's timeout. The
// engine itself cannot be cancelled, so the work happens on a separate
// goroutine; on timeout the goroutine is abandoned and its result
// discarded. The engine's magnitude bounds keep abandoned work finite.
func (p *Provider) evaluate(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	expression, ok := getString(params, "expression")
	if !ok || strings.TrimSpace(expression) == "" {
		return failure("expression is required"), nil
	}
	debug := getBool(params, "debug")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan *evalOutcome, 1)
	go func() {
		done <- run(expression, debug)
	}()

	select {
	case <-ctx.Done():
		p.recordOutcome("timeout")
		return failure("evaluation timed out"), nil
	case out := <-done:
		p.recordOutcome(outcomeOf(out))
		return render(expression, debug, out), nil
	}
}

func (p *Provider) recordOutcome(outcome string) {
	if p.metrics != nil {
		p.metrics.RecordEvaluation(outcome)
	}
}

// outcomeOf classifies an evaluation for the outcome metric.
func outcomeOf(out *evalOutcome) string {
	err := out.parseErr
	if err == nil {
		err = out.evalErr
	}
	if err == nil {
		if !out.ok {
			return "empty"
		}
		return "ok"
	}

	var zero *engine.ZeroDivisionError
	if errors.As(err, &zero) {
		return "zero_division"
	}
	var overflow *engine.OverflowError
	if errors.As(err, &overflow) {
		return "overflow"
	}
	var mismatch *engine.TypeMismatchError
	if errors.As(err, &mismatch) {
		return "type"
	}
	return "syntax"
}

func run(expression string, debug bool) *evalOutcome {
	out := &evalOutcome{}

	seq, tokens, err := engine.Parse(expression)
	out.tokens = tokens
	if err != nil {
		out.parseErr = err
		return out
	}
	out.postfix = seq.String()

	var trace strings.Builder
	var result decimal.Decimal
	var ok bool
	if debug {
		result, ok, err = seq.Evaluate(&trace)
	} else {
		result, ok, err = seq.Evaluate(nil)
	}
	if err != nil {
		out.evalErr = err
		return out
	}
	out.result = result
	out.ok = ok
	if debug {
		out.steps = splitLines(trace.String())
	}
	return out
}

func render(expression string, debug bool, out *evalOutcome) *types.Result {
	if out.parseErr != nil {
		return failure(userMessage(out.parseErr))
	}
	if out.evalErr != nil {
		return failure(userMessage(out.evalErr))
	}
	if !out.ok {
		return failure("nothing to evaluate")
	}

	data := map[string]interface{}{
		"expression": expression,
		"result":     out.result.String(),
	}
	if debug {
		rendered := make([]string, len(out.tokens))
		for i, t := range out.tokens {
			rendered[i] = t.String()
		}
		data["tokens"] = rendered
		data["postfix"] = out.postfix
		data["steps"] = out.steps
	}
	return success(data)
}

// userMessage converts engine errors into the messages the bot shows in
// chat, mirroring the original command's error handlers.
func userMessage(err error) string {
	var zero *engine.ZeroDivisionError
	if errors.As(err, &zero) {
		return "Division by Zero occurred."
	}
	var overflow *engine.OverflowError
	if errors.As(err, &overflow) {
		return "Could not calculate due to overflow."
	}
	var mismatch *engine.TypeMismatchError
	if errors.As(err, &mismatch) {
		return mismatch.Error()
	}
	var syntax *engine.SyntaxError
	if errors.As(err, &syntax) {
		return "Undefined Syntax Error occurred: " + syntax.Error()
	}
	return err.Error()
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
