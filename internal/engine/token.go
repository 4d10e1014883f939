package engine

// Kind categorizes a lexical unit.
type Kind int

const (
	KindOperand Kind = iota
	KindOperator
	KindLeftParen
	KindRightParen
)

// Assoc is an operator's associativity, used to break precedence ties.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

// Op identifies an operator independently of its source text, so that the
// unary and binary readings of "+" and "-" stay distinct.
type Op int

const (
	OpNone Op = iota
	OpExponent
	OpENotation
	OpBitNot
	OpPositive
	OpNegative
	OpMultiply
	OpDivide
	OpFloorDivide
	OpModulo
	OpAdd
	OpSubtract
	OpLeftShift
	OpRightShift
	OpBitAnd
	OpBitXor
	OpBitOr
)

var opNames = map[Op]string{
	OpExponent:    "Exponentiation",
	OpENotation:   "E-notation",
	OpBitNot:      "Bitwise NOT",
	OpPositive:    "Positive",
	OpNegative:    "Negative",
	OpMultiply:    "Multiplication",
	OpDivide:      "Division",
	OpFloorDivide: "Floor Division",
	OpModulo:      "Modulo",
	OpAdd:         "Addition",
	OpSubtract:    "Subtraction",
	OpLeftShift:   "Left Shift",
	OpRightShift:  "Right Shift",
	OpBitAnd:      "Bitwise AND",
	OpBitXor:      "Bitwise XOR",
	OpBitOr:       "Bitwise OR",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "None"
}

// Precedence levels. Lower values bind tighter; parentheses sit at 0. The
// inversion relative to the usual convention is deliberate and the
// shunting-yard comparison depends on it.
const (
	precParen          = 0
	precUnary          = 1
	precMultiplicative = 2
	precAdditive       = 3
	precShift          = 4
	precBitAnd         = 5
	precBitXor         = 6
	precBitOr          = 7
)

type opInfo struct {
	prec  int
	assoc Assoc
	arity int
}

var opTable = map[Op]opInfo{
	OpExponent:    {precUnary, AssocLeft, 2},
	OpENotation:   {precUnary, AssocLeft, 2},
	OpBitNot:      {precUnary, AssocRight, 1},
	OpPositive:    {precUnary, AssocRight, 1},
	OpNegative:    {precUnary, AssocRight, 1},
	OpMultiply:    {precMultiplicative, AssocLeft, 2},
	OpDivide:      {precMultiplicative, AssocLeft, 2},
	OpFloorDivide: {precMultiplicative, AssocLeft, 2},
	OpModulo:      {precMultiplicative, AssocLeft, 2},
	OpAdd:         {precAdditive, AssocLeft, 2},
	OpSubtract:    {precAdditive, AssocLeft, 2},
	OpLeftShift:   {precShift, AssocLeft, 2},
	OpRightShift:  {precShift, AssocLeft, 2},
	OpBitAnd:      {precBitAnd, AssocLeft, 2},
	OpBitXor:      {precBitXor, AssocLeft, 2},
	OpBitOr:       {precBitOr, AssocLeft, 2},
}

// Token is one lexical unit of an expression. Tokens are immutable once the
// tokenizer emits them.
type Token struct {
	Text       string // literal substring matched
	Kind       Kind
	Op         Op // OpNone unless Kind is KindOperator
	Precedence int
	Assoc      Assoc
	Arity      int
	Pos        int // byte offset into the whitespace-stripped source
}

func newOperator(op Op, text string, pos int) Token {
	info := opTable[op]
	return Token{
		Text:       text,
		Kind:       KindOperator,
		Op:         op,
		Precedence: info.prec,
		Assoc:      info.assoc,
		Arity:      info.arity,
		Pos:        pos,
	}
}

func newOperand(text string, pos int) Token {
	return Token{Text: text, Kind: KindOperand, Pos: pos}
}

func newParen(kind Kind, text string, pos int) Token {
	return Token{Text: text, Kind: kind, Precedence: precParen, Pos: pos}
}

// String renders the token the way the debug trace displays it. Unary sign
// operators print as (+) and (-) to distinguish them from their binary
// counterparts.
func (t Token) String() string {
	switch t.Op {
	case OpPositive:
		return "(+)"
	case OpNegative:
		return "(-)"
	}
	return t.Text
}
