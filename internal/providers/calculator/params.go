package calculator

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wrenbot/wren/backend/internal/shared/types"
)

func success(data map[string]interface{}) *types.Result {
	return &types.Result{Success: true, Data: data}
}

func failure(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}

func getString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

func getBool(params map[string]interface{}, key string) bool {
	val, _ := params[key].(bool)
	return val
}

// operandParam reads a numeric parameter given as a JSON number, a decimal
// string, or a 0x-prefixed hexadecimal string.
func operandParam(params map[string]interface{}, key string) (decimal.Decimal, error) {
	val, ok := params[key]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s is required", key)
	}

	switch v := val.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		return parseOperand(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("%s is not a number", key)
	}
}

func parseOperand(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	neg := false
	if strings.HasPrefix(lower, "-") {
		neg = true
		lower = lower[1:]
	}
	if strings.HasPrefix(lower, "0x") {
		n, ok := new(big.Int).SetString(lower[2:], 16)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%q is not a valid hexadecimal number", s)
		}
		if neg {
			n.Neg(n)
		}
		return decimal.NewFromBigInt(n, 0), nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a valid number", s)
	}
	return d, nil
}
