// Package calculator exposes the expression engine and the simple
// two-operand math commands as a tool provider.
package calculator

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wrenbot/wren/backend/internal/infrastructure/monitoring"
	"github.com/wrenbot/wren/backend/internal/shared/types"
)

// DefaultTimeout bounds a single expression evaluation. The engine has no
// internal cancellation hook, so evaluation runs on its own goroutine and
// the provider abandons it when the deadline passes.
const DefaultTimeout = 5 * time.Second

// Provider implements calculator tools backed by the expression engine
type Provider struct {
	timeout time.Duration
	metrics *monitoring.Metrics
}

// NewProvider creates a calculator provider with the default timeout
func NewProvider() *Provider {
	return NewProviderWithTimeout(DefaultTimeout)
}

// NewProviderWithTimeout creates a calculator provider with an explicit
// evaluation timeout
func NewProviderWithTimeout(timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provider{timeout: timeout}
}

// WithMetrics attaches a collector recording evaluation outcomes. A nil
// collector leaves recording off.
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Definition returns service metadata with all calculator tools
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "calc",
		Name:        "Calculator Service",
		Description: "Arithmetic expression evaluation and basic math commands",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"evaluate",
			"arithmetic",
			"debug_trace",
		},
		Tools: []types.Tool{
			{
				ID:          "calc.evaluate",
				Name:        "Evaluate",
				Description: "Evaluate an arithmetic expression with full operator support",
				Parameters: []types.Parameter{
					{Name: "expression", Type: "string", Description: "Infix expression, e.g. (1+3) ** -2 - 7 // 9e2", Required: true},
					{Name: "debug", Type: "boolean", Description: "Include tokens, postfix form, and per-step trace", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "calc.add",
				Name:        "Add",
				Description: "Add two numbers",
				Parameters:  binaryParams(),
				Returns:     "string",
			},
			{
				ID:          "calc.subtract",
				Name:        "Subtract",
				Description: "Subtract y from x",
				Parameters:  binaryParams(),
				Returns:     "string",
			},
			{
				ID:          "calc.multiply",
				Name:        "Multiply",
				Description: "Multiply two numbers",
				Parameters:  binaryParams(),
				Returns:     "string",
			},
			{
				ID:          "calc.divide",
				Name:        "Divide",
				Description: "Divide x by y",
				Parameters:  binaryParams(),
				Returns:     "string",
			},
			{
				ID:          "calc.power",
				Name:        "Power",
				Description: "Raise x to the power of y",
				Parameters:  binaryParams(),
				Returns:     "string",
			},
			{
				ID:          "calc.sqrt",
				Name:        "Square Root",
				Description: "Take the square root of x",
				Parameters: []types.Parameter{
					{Name: "x", Type: "string", Description: "Decimal or 0x-prefixed hex number", Required: true},
				},
				Returns: "string",
			},
		},
	}
}

func binaryParams() []types.Parameter {
	return []types.Parameter{
		{Name: "x", Type: "string", Description: "Decimal or 0x-prefixed hex number", Required: true},
		{Name: "y", Type: "string", Description: "Decimal or 0x-prefixed hex number", Required: true},
	}
}

// Execute routes a calculator tool call
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "calc.evaluate":
		return p.evaluate(ctx, params)
	case "calc.add":
		return p.binary(params, func(x, y decimal.Decimal) (decimal.Decimal, error) {
			return x.Add(y), nil
		})
	case "calc.subtract":
		return p.binary(params, func(x, y decimal.Decimal) (decimal.Decimal, error) {
			return x.Sub(y), nil
		})
	case "calc.multiply":
		return p.binary(params, func(x, y decimal.Decimal) (decimal.Decimal, error) {
			return x.Mul(y), nil
		})
	case "calc.divide":
		return p.binary(params, func(x, y decimal.Decimal) (decimal.Decimal, error) {
			if y.IsZero() {
				return decimal.Decimal{}, fmt.Errorf("division by zero")
			}
			return x.DivRound(y, 28), nil
		})
	case "calc.power":
		return p.binary(params, func(x, y decimal.Decimal) (decimal.Decimal, error) {
			out, err := x.PowWithPrecision(y, 28)
			if err != nil {
				return decimal.Decimal{}, fmt.Errorf("could not raise %s to %s: %w", x, y, err)
			}
			return out, nil
		})
	case "calc.sqrt":
		return p.sqrt(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func (p *Provider) binary(params map[string]interface{}, apply func(x, y decimal.Decimal) (decimal.Decimal, error)) (*types.Result, error) {
	x, err := operandParam(params, "x")
	if err != nil {
		return failure(err.Error()), nil
	}
	y, err := operandParam(params, "y")
	if err != nil {
		return failure(err.Error()), nil
	}
	out, err := apply(x, y)
	if err != nil {
		return failure(err.Error()), nil
	}
	return success(map[string]interface{}{"result": out.String()}), nil
}

func (p *Provider) sqrt(params map[string]interface{}) (*types.Result, error) {
	x, err := operandParam(params, "x")
	if err != nil {
		return failure(err.Error()), nil
	}
	if x.Sign() < 0 {
		return failure("cannot take the square root of a negative number"), nil
	}
	half := decimal.New(5, -1)
	out, err := x.PowWithPrecision(half, 28)
	if err != nil {
		return failure(err.Error()), nil
	}
	return success(map[string]interface{}{"result": out.String()}), nil
}
