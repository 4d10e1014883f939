package numbers

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/wrenbot/wren/backend/internal/shared/types"
)

func (p *Provider) gcd(params map[string]interface{}) (*types.Result, error) {
	x, ok := getInt(params, "x")
	if !ok {
		return failure("x must be an integer"), nil
	}
	if x > maxGCDInput {
		return failure(fmt.Sprintf("x must be below %d", maxGCDInput)), nil
	}

	if mode, ok := getString(params, "y"); ok && (mode == "low" || mode == "high") {
		if x < 2 {
			return failure("x must be at least 2"), nil
		}
		var d int64
		if mode == "low" {
			d = lowDivisor(x)
		} else {
			d = highDivisor(x)
		}
		return success(map[string]interface{}{"result": d}), nil
	}

	y, ok := getInt(params, "y")
	if !ok {
		if s, isString := getString(params, "y"); isString {
			parsed, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return failure("y is not an integer"), nil
			}
			y = parsed
		} else {
			return failure("y is not an integer"), nil
		}
	}
	if y > maxGCDInput {
		return failure(fmt.Sprintf("y must be below %d", maxGCDInput)), nil
	}

	return success(map[string]interface{}{"result": euclid(x, y)}), nil
}

// euclid computes GCD(a, b). Unless b is 0, the result carries the sign of
// b, matching the original helper.
func euclid(a, b int64) int64 {
	for b != 0 {
		a, b = b, mod(a, b)
	}
	return a
}

// mod is the floored modulo the original relied on, with the result taking
// the divisor's sign.
func mod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// lowDivisor returns the smallest divisor of n other than 1, or n itself
// when n is prime.
func lowDivisor(n int64) int64 {
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return i
		}
	}
	return n
}

// highDivisor returns the largest divisor of n other than n, or n itself
// when n is prime.
func highDivisor(n int64) int64 {
	low := lowDivisor(n)
	if low == n {
		return n
	}
	return n / low
}

func (p *Provider) isPrime(params map[string]interface{}) (*types.Result, error) {
	n, ok := getInt(params, "n")
	if !ok {
		return failure("n must be an integer"), nil
	}
	if n > maxGCDInput {
		return failure(fmt.Sprintf("n must be below %d", maxGCDInput)), nil
	}
	if n < 2 {
		return success(map[string]interface{}{
			"n":     n,
			"prime": false,
		}), nil
	}

	low := lowDivisor(n)
	if low == n {
		return success(map[string]interface{}{
			"n":     n,
			"prime": true,
		}), nil
	}
	return success(map[string]interface{}{
		"n":        n,
		"prime":    false,
		"divisor":  low,
		"cofactor": n / low,
	}), nil
}

func (p *Provider) factors(params map[string]interface{}) (*types.Result, error) {
	n, ok := getInt(params, "n")
	if !ok {
		return failure("n must be an integer"), nil
	}
	if n < 0 {
		return failure("cannot get factors of negative numbers"), nil
	}
	if n > maxFactorsInput {
		return failure(fmt.Sprintf("n must be below %d", maxFactorsInput)), nil
	}

	return success(map[string]interface{}{
		"n":       n,
		"factors": factorsOf(n),
	}), nil
}

// factorsOf returns every factor of n in ascending order, including 1 and
// n. Zero has no factors.
func factorsOf(n int64) []int64 {
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []int64{1}
	}

	var low, high []int64
	for i := int64(1); i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		low = append(low, i)
		if j := n / i; j != i {
			high = append(high, j)
		}
	}
	for i := len(high) - 1; i >= 0; i-- {
		low = append(low, high[i])
	}
	return low
}

func (p *Provider) fibonacci(params map[string]interface{}) (*types.Result, error) {
	n, ok := getInt(params, "n")
	if !ok {
		return failure("n must be an integer"), nil
	}
	m, hasM := getInt(params, "m")
	if !hasM {
		m = n
	}

	if n < 0 || m < n {
		return failure("the requested range is empty"), nil
	}
	if m > maxFibIndex {
		return failure(fmt.Sprintf("the maximum index is %d", maxFibIndex)), nil
	}
	if m-n+1 > maxFibRange {
		return failure(fmt.Sprintf("the range of requested fibonacci numbers must be below %d", maxFibRange)), nil
	}

	values := fibRange(n, m)
	return success(map[string]interface{}{
		"n":      n,
		"m":      m,
		"values": values,
	}), nil
}

// fibRange returns F(n) through F(m) as decimal strings, with F(0)=0 and
// F(1)=1. Values overflow int64 quickly, hence big.Int and strings.
func fibRange(n, m int64) []string {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}

	out := make([]string, 0, m-n+1)
	for i := n; i <= m; i++ {
		out = append(out, a.String())
		a.Add(a, b)
		a, b = b, a
	}
	return out
}
