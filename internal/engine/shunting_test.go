package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenbot/wren/backend/internal/engine"
)

func TestParse(t *testing.T) {
	t.Run("postfix ordering respects precedence", func(t *testing.T) {
		seq, tokens, err := engine.Parse("1+2*3")
		require.NoError(t, err)
		assert.Len(t, tokens, 5)
		assert.Equal(t, "1 2 3 * +", seq.String())

		seq, _, err = engine.Parse("(1+2)*3")
		require.NoError(t, err)
		assert.Equal(t, "1 2 + 3 *", seq.String())
	})

	t.Run("equal precedence left associative", func(t *testing.T) {
		seq, _, err := engine.Parse("1-2+3")
		require.NoError(t, err)
		assert.Equal(t, "1 2 - 3 +", seq.String())

		// Exponentiation stays left associative as well; see the pinned
		// behavior test in eval_test.go.
		seq, _, err = engine.Parse("2**3**2")
		require.NoError(t, err)
		assert.Equal(t, "2 3 ** 2 **", seq.String())
	})

	t.Run("unary binds tighter than binary", func(t *testing.T) {
		seq, _, err := engine.Parse("-3+4")
		require.NoError(t, err)
		assert.Equal(t, "3 (-) 4 +", seq.String())
	})

	t.Run("implicit multiplication", func(t *testing.T) {
		seq, _, err := engine.Parse("2(3+4)")
		require.NoError(t, err)
		assert.Equal(t, "2 3 4 + *", seq.String())

		seq, _, err = engine.Parse("(1)(2)")
		require.NoError(t, err)
		assert.Equal(t, "1 2 *", seq.String())
	})

	t.Run("implicit multiplication binds looser than explicit operators", func(t *testing.T) {
		// The synthetic * sits at additive level, so a following
		// multiplicative operator reduces first.
		seq, _, err := engine.Parse("2(3)//4")
		require.NoError(t, err)
		assert.Equal(t, "2 3 4 // *", seq.String())

		seq, _, err = engine.Parse("2(3)%4")
		require.NoError(t, err)
		assert.Equal(t, "2 3 4 % *", seq.String())

		// At additive level the usual left-associative pop still applies.
		seq, _, err = engine.Parse("2(3)+4")
		require.NoError(t, err)
		assert.Equal(t, "2 3 * 4 +", seq.String())
	})

	t.Run("mismatched parentheses", func(t *testing.T) {
		var syntaxErr *engine.SyntaxError
		_, tokens, err := engine.Parse("(1+2")
		require.ErrorAs(t, err, &syntaxErr)
		assert.NotEmpty(t, tokens, "tokens are returned for diagnostics")

		_, _, err = engine.Parse("1+2)")
		require.ErrorAs(t, err, &syntaxErr)

		_, _, err = engine.Parse(")(")
		require.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("empty source parses to an empty sequence", func(t *testing.T) {
		seq, tokens, err := engine.Parse("")
		require.NoError(t, err)
		assert.Empty(t, seq)
		assert.Empty(t, tokens)
	})

	t.Run("well formed sequences satisfy the arity invariant", func(t *testing.T) {
		for _, source := range []string{"1+2*3", "~(1|2)&3", "-(3+4)**2", "2(3)(4)<<1"} {
			seq, _, err := engine.Parse(source)
			require.NoError(t, err, source)

			// Each operator consumes Arity operands and yields one, so a
			// sequence reduces to exactly one value when the operand count
			// is one more than the total net consumption.
			operands, consumed := 0, 0
			for _, e := range seq {
				if e.IsOperator() {
					consumed += e.Op.Arity - 1
				} else {
					operands++
				}
			}
			assert.Equal(t, 1+consumed, operands, source)
		}
	})
}
