// Package numbers implements the bot's number-theory commands: GCD,
// primality, factor listing, Fibonacci numbers, and number-base
// conversion.
package numbers

import (
	"context"
	"fmt"

	"github.com/wrenbot/wren/backend/internal/shared/types"
)

// Input caps carried over from the original commands; they bound the work
// a single chat command can request.
const (
	maxGCDInput     = 1_000_000
	maxFactorsInput = 10_000
	maxFibIndex     = 5_000
	maxFibRange     = 50
)

// Provider implements number-theory tools
type Provider struct{}

// NewProvider creates a numbers provider
func NewProvider() *Provider {
	return &Provider{}
}

// Definition returns service metadata with all number-theory tools
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "numbers",
		Name:        "Number Theory Service",
		Description: "Divisors, primality, factors, Fibonacci numbers, and base conversion",
		Category:    types.CategoryNumbers,
		Capabilities: []string{
			"gcd",
			"primality",
			"factors",
			"fibonacci",
			"base_conversion",
		},
		Tools: []types.Tool{
			{
				ID:          "numbers.gcd",
				Name:        "Greatest Common Divisor",
				Description: "GCD of two integers, or the lowest/highest divisor of one integer",
				Parameters: []types.Parameter{
					{Name: "x", Type: "integer", Description: "First integer", Required: true},
					{Name: "y", Type: "string", Description: "Second integer, or \"low\"/\"high\" for a divisor of x", Required: true},
				},
				Returns: "integer",
			},
			{
				ID:          "numbers.isprime",
				Name:        "Primality Check",
				Description: "Check whether an integer is prime",
				Parameters: []types.Parameter{
					{Name: "n", Type: "integer", Description: "Integer to test", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "numbers.factors",
				Name:        "Factors",
				Description: "List all factors of a non-negative integer",
				Parameters: []types.Parameter{
					{Name: "n", Type: "integer", Description: "Integer to factor", Required: true},
				},
				Returns: "array",
			},
			{
				ID:          "numbers.fibonacci",
				Name:        "Fibonacci",
				Description: "The nth Fibonacci number, or the range n through m",
				Parameters: []types.Parameter{
					{Name: "n", Type: "integer", Description: "Index, or start of the range", Required: true},
					{Name: "m", Type: "integer", Description: "End of the range (inclusive)", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "numbers.base",
				Name:        "Base Conversion",
				Description: "Convert an integer between bases 2 and 64",
				Parameters: []types.Parameter{
					{Name: "base_in", Type: "integer", Description: "The number's base", Required: true},
					{Name: "base_out", Type: "integer", Description: "The base to output as", Required: true},
					{Name: "n", Type: "string", Description: "The number to convert", Required: true},
					{Name: "mapping", Type: "string", Description: "Custom digit mapping", Required: false},
				},
				Returns: "string",
			},
		},
	}
}

// Execute routes a number-theory tool call
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "numbers.gcd":
		return p.gcd(params)
	case "numbers.isprime":
		return p.isPrime(params)
	case "numbers.factors":
		return p.factors(params)
	case "numbers.fibonacci":
		return p.fibonacci(params)
	case "numbers.base":
		return p.convertBase(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func success(data map[string]interface{}) *types.Result {
	return &types.Result{Success: true, Data: data}
}

func failure(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}

func getInt(params map[string]interface{}, key string) (int64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func getString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}
