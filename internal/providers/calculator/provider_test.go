package calculator_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenbot/wren/backend/internal/infrastructure/monitoring"
	"github.com/wrenbot/wren/backend/internal/providers/calculator"
	"github.com/wrenbot/wren/backend/internal/shared/types"
)

func execute(t *testing.T, p *calculator.Provider, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestEvaluateTool(t *testing.T) {
	p := calculator.NewProvider()

	t.Run("simple expression", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{
			"expression": "1+2*3",
		})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "7", result.Data["result"])
		assert.Equal(t, "1+2*3", result.Data["expression"])
		assert.NotContains(t, result.Data, "steps")
	})

	t.Run("debug returns tokens postfix and steps", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{
			"expression": "2(3+4)",
			"debug":      true,
		})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "14", result.Data["result"])
		assert.Equal(t, []string{"2", "(", "3", "+", "4", ")"}, result.Data["tokens"])
		assert.Equal(t, "2 3 4 + *", result.Data["postfix"])
		assert.Equal(t, []string{"2 7 *", "14"}, result.Data["steps"])
	})

	t.Run("syntax error message", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{
			"expression": "(1+2",
		})
		require.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Contains(t, *result.Error, "Syntax Error")
	})

	t.Run("division by zero message", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{
			"expression": "1/0",
		})
		require.False(t, result.Success)
		assert.Equal(t, "Division by Zero occurred.", *result.Error)
	})

	t.Run("overflow message", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{
			"expression": "10**2000000",
		})
		require.False(t, result.Success)
		assert.Equal(t, "Could not calculate due to overflow.", *result.Error)
	})

	t.Run("type mismatch names the operator", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{
			"expression": "1.5 & 2",
		})
		require.False(t, result.Success)
		assert.Contains(t, *result.Error, "Bitwise AND")
	})

	t.Run("missing expression", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{})
		require.False(t, result.Success)
	})

	t.Run("whitespace only expression", func(t *testing.T) {
		result := execute(t, p, "calc.evaluate", map[string]interface{}{
			"expression": "   ",
		})
		require.False(t, result.Success)
	})

	t.Run("expired context times out", func(t *testing.T) {
		// The expression must still be computing when the deadline is
		// checked, but the abandoned goroutine should not keep working
		// long after the subtest passes; 9**99999 takes milliseconds.
		short := calculator.NewProviderWithTimeout(time.Nanosecond)
		result, err := short.Execute(context.Background(), "calc.evaluate", map[string]interface{}{
			"expression": "9**99999",
		}, nil)
		require.NoError(t, err)
		require.False(t, result.Success)
		assert.Contains(t, *result.Error, "timed out")
	})
}

// outcomeMetrics registers with the default Prometheus registerer, so a
// single instance is shared across the package's tests.
var outcomeMetrics = monitoring.NewMetrics()

func TestEvaluationOutcomeMetrics(t *testing.T) {
	p := calculator.NewProvider().WithMetrics(outcomeMetrics)

	cases := []struct{ expression, outcome string }{
		{"1+2", "ok"},
		{"()", "empty"},
		{"(1+2", "syntax"},
		{"1.5&2", "type"},
		{"1//0", "zero_division"},
		{"10**2000000", "overflow"},
	}
	for _, tc := range cases {
		t.Run(tc.outcome, func(t *testing.T) {
			before := testutil.ToFloat64(outcomeMetrics.Evaluations.WithLabelValues(tc.outcome))
			execute(t, p, "calc.evaluate", map[string]interface{}{"expression": tc.expression})
			after := testutil.ToFloat64(outcomeMetrics.Evaluations.WithLabelValues(tc.outcome))
			assert.Equal(t, before+1, after, tc.expression)
		})
	}

	t.Run("timeout", func(t *testing.T) {
		short := calculator.NewProviderWithTimeout(time.Nanosecond).WithMetrics(outcomeMetrics)
		before := testutil.ToFloat64(outcomeMetrics.Evaluations.WithLabelValues("timeout"))
		result, err := short.Execute(context.Background(), "calc.evaluate", map[string]interface{}{
			"expression": "9**99999",
		}, nil)
		require.NoError(t, err)
		require.False(t, result.Success)
		after := testutil.ToFloat64(outcomeMetrics.Evaluations.WithLabelValues("timeout"))
		assert.Equal(t, before+1, after)
	})
}

func TestArithmeticTools(t *testing.T) {
	p := calculator.NewProvider()

	t.Run("add", func(t *testing.T) {
		result := execute(t, p, "calc.add", map[string]interface{}{"x": "1.5", "y": "2.5"})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "4", result.Data["result"])
	})

	t.Run("hex operands", func(t *testing.T) {
		result := execute(t, p, "calc.add", map[string]interface{}{"x": "0x10", "y": "0x1"})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "17", result.Data["result"])
	})

	t.Run("subtract", func(t *testing.T) {
		result := execute(t, p, "calc.subtract", map[string]interface{}{"x": "3", "y": "10"})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "-7", result.Data["result"])
	})

	t.Run("multiply", func(t *testing.T) {
		result := execute(t, p, "calc.multiply", map[string]interface{}{"x": "0.5", "y": "8"})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "4", result.Data["result"])
	})

	t.Run("divide", func(t *testing.T) {
		result := execute(t, p, "calc.divide", map[string]interface{}{"x": "10", "y": "4"})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "2.5", result.Data["result"])
	})

	t.Run("divide by zero", func(t *testing.T) {
		result := execute(t, p, "calc.divide", map[string]interface{}{"x": "1", "y": "0"})
		require.False(t, result.Success)
	})

	t.Run("power", func(t *testing.T) {
		result := execute(t, p, "calc.power", map[string]interface{}{"x": "2", "y": "10"})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "1024", result.Data["result"])
	})

	t.Run("sqrt", func(t *testing.T) {
		result := execute(t, p, "calc.sqrt", map[string]interface{}{"x": "16"})
		require.True(t, result.Success, result.Error)
		// The root is computed numerically, so allow rounding in the last
		// few of the 28 kept digits.
		got := decimal.RequireFromString(result.Data["result"].(string))
		assert.True(t, got.Sub(decimal.NewFromInt(4)).Abs().LessThan(decimal.New(1, -20)), got)
	})

	t.Run("sqrt of negative", func(t *testing.T) {
		result := execute(t, p, "calc.sqrt", map[string]interface{}{"x": "-4"})
		require.False(t, result.Success)
	})

	t.Run("numeric params accepted", func(t *testing.T) {
		result := execute(t, p, "calc.add", map[string]interface{}{"x": 1.5, "y": 2.5})
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "4", result.Data["result"])
	})

	t.Run("invalid operand", func(t *testing.T) {
		result := execute(t, p, "calc.add", map[string]interface{}{"x": "abc", "y": "1"})
		require.False(t, result.Success)
	})

	t.Run("unknown tool", func(t *testing.T) {
		result := execute(t, p, "calc.nope", map[string]interface{}{})
		require.False(t, result.Success)
	})
}
