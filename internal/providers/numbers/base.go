package numbers

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wrenbot/wren/backend/internal/shared/types"
)

// defaultMapping covers bases up to 64 with the URL-safe alphabet. Bases
// up to 36 parse case-insensitively under this mapping and print
// capitalized, matching the original command.
const defaultMapping = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"-_"

func (p *Provider) convertBase(params map[string]interface{}) (*types.Result, error) {
	baseIn, ok := getInt(params, "base_in")
	if !ok {
		return failure("base_in must be an integer"), nil
	}
	baseOut, ok := getInt(params, "base_out")
	if !ok {
		return failure("base_out must be an integer"), nil
	}
	n, ok := getString(params, "n")
	if !ok || n == "" {
		return failure("n is required"), nil
	}

	mapping, hasMapping := getString(params, "mapping")
	if !hasMapping {
		mapping = defaultMapping
	}

	if min(baseIn, baseOut) < 2 {
		return failure("given base is less than 2"), nil
	}
	if max(baseIn, baseOut) > int64(len(mapping)) {
		return failure(fmt.Sprintf("given base is greater than %d", len(mapping))), nil
	}

	// The default mapping's first 36 digits are unambiguous regardless of
	// case, so lowercase input is accepted for those bases.
	caseInsensitive := !hasMapping && baseIn <= 36

	value, err := parseInBase(n, baseIn, mapping, caseInsensitive)
	if err != nil {
		return failure(err.Error()), nil
	}

	return success(map[string]interface{}{
		"result": formatInBase(value, baseOut, mapping),
	}), nil
}

func parseInBase(n string, base int64, mapping string, caseInsensitive bool) (*big.Int, error) {
	digits := mapping[:base]

	neg := false
	if strings.HasPrefix(n, "-") {
		neg = true
		n = n[1:]
	}
	if n == "" {
		return nil, fmt.Errorf("%q is not a number", "-")
	}

	value := new(big.Int)
	bigBase := big.NewInt(base)
	for _, c := range n {
		ch := string(c)
		idx := strings.Index(digits, ch)
		if idx < 0 && caseInsensitive {
			idx = strings.Index(digits, strings.ToUpper(ch))
		}
		if idx < 0 {
			return nil, fmt.Errorf("there is a character within the number not part of base %d", base)
		}
		value.Mul(value, bigBase)
		value.Add(value, big.NewInt(int64(idx)))
	}
	if neg {
		value.Neg(value)
	}
	return value, nil
}

func formatInBase(value *big.Int, base int64, mapping string) string {
	if value.Sign() == 0 {
		return string(mapping[0])
	}

	neg := value.Sign() < 0
	v := new(big.Int).Abs(value)
	bigBase := big.NewInt(base)
	rem := new(big.Int)

	var digits []byte
	for v.Sign() > 0 {
		v.QuoRem(v, bigBase, rem)
		digits = append(digits, mapping[rem.Int64()])
	}
	if neg {
		digits = append(digits, '-')
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
