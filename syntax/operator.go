package syntax

// UnOp identifies a unary operator.
type UnOp int

const (
	UnMinus UnOp = iota // -x (arithmetic negate)
	UnNot               // not x / !x
	UnLen               // #x (length)
	UnBNot              // ~x (bitwise not, Lua 5.3+)
)

// String returns the canonical (Lua 5.4) spelling of the operator.
func (op UnOp) String() string {
	switch op {
	case UnMinus:
		return "-"
	case UnNot:
		return "not"
	case UnLen:
		return "#"
	case UnBNot:
		return "~"
	default:
		return "?"
	}
}

// BinOp identifies a binary operator.
type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv // // (Lua 5.3+)
	BinMod
	BinPow // right-associative
	BinConcat // .. right-associative
	BinEq
	BinNotEq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinAnd
	BinOr
	BinBAnd // & (Lua 5.3+)
	BinBOr  // | (Lua 5.3+)
	BinBXor // ~ (Lua 5.3+)
	BinShl  // << (Lua 5.3+)
	BinShr  // >> (Lua 5.3+)
)

// String returns the canonical (Lua 5.4) spelling of the operator.
func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinFloorDiv:
		return "//"
	case BinMod:
		return "%"
	case BinPow:
		return "^"
	case BinConcat:
		return ".."
	case BinEq:
		return "=="
	case BinNotEq:
		return "~="
	case BinLt:
		return "<"
	case BinLtEq:
		return "<="
	case BinGt:
		return ">"
	case BinGtEq:
		return ">="
	case BinAnd:
		return "and"
	case BinOr:
		return "or"
	case BinBAnd:
		return "&"
	case BinBOr:
		return "|"
	case BinBXor:
		return "~"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	default:
		return "?"
	}
}

// UnaryPrecedence is the binding power of all unary operators except that
// they bind looser than `^`, matching Lua's own operator table (lparser.c's
// UNARY_PRIORITY): `-x^2` parses as `-(x^2)`.
const UnaryPrecedence = 12

// buildOperatorTables derives binaryOpTable/unaryOpTable from literal
// per-operator left/right binding powers, following the priority numbers
// Lua's reference grammar assigns (lower binds looser). A binary operator
// whose right power is less than its left power is right-associative
// (`^`, `..`); all others are left-associative.
func buildOperatorTables() {
	binaryOpTable = map[SyntaxKind]binaryOpInfo{
		Or:       {BinOr, 1, 1},
		PipePipe: {BinOr, 1, 1},
		And:      {BinAnd, 2, 2},
		AmpAmp:   {BinAnd, 2, 2},
		Lt:       {BinLt, 3, 3},
		Gt:       {BinGt, 3, 3},
		LtEq:     {BinLtEq, 3, 3},
		GtEq:     {BinGtEq, 3, 3},
		NotEq:    {BinNotEq, 3, 3},
		BangEq:   {BinNotEq, 3, 3},
		EqEq:     {BinEq, 3, 3},
		Pipe:     {BinBOr, 4, 4},
		Tilde:    {BinBXor, 5, 5},
		Amp:      {BinBAnd, 6, 6},
		LtLt:     {BinShl, 7, 7},
		GtGt:     {BinShr, 7, 7},
		DotDot:   {BinConcat, 9, 8}, // right-associative
		Plus:     {BinAdd, 10, 10},
		Minus:    {BinSub, 10, 10},
		Star:     {BinMul, 11, 11},
		Slash:    {BinDiv, 11, 11},
		DSlash:   {BinFloorDiv, 11, 11},
		Percent:  {BinMod, 11, 11},
		Caret:    {BinPow, 14, 13}, // right-associative, binds tighter than unary
	}

	unaryOpTable = map[SyntaxKind]unaryOpInfo{
		Minus: {UnMinus, UnaryPrecedence},
		Not:   {UnNot, UnaryPrecedence},
		Bang:  {UnNot, UnaryPrecedence},
		Hash:  {UnLen, UnaryPrecedence},
		Tilde: {UnBNot, UnaryPrecedence},
	}
}
