package syntax

// SyntaxSet is a set of syntax kinds implemented as a bitset.
// It can hold kinds with discriminator values less than 128.
//
// Based on rust-analyzer's TokenSet:
// https://github.com/rust-lang/rust-analyzer/blob/master/crates/parser/src/token_set.rs
type SyntaxSet struct {
	lo uint64 // bits 0-63
	hi uint64 // bits 64-127
}

const maxSetBit = 128

// NewSyntaxSet creates a new empty set.
func NewSyntaxSet() SyntaxSet {
	return SyntaxSet{}
}

// SyntaxSetOf creates a set containing the given kinds.
func SyntaxSetOf(kinds ...SyntaxKind) SyntaxSet {
	s := SyntaxSet{}
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add inserts a syntax kind into the set and returns the new set.
// Panics if the kind's discriminator is >= 128.
func (s SyntaxSet) Add(kind SyntaxKind) SyntaxSet {
	if kind >= maxSetBit {
		panic("SyntaxSet.Add: kind discriminator must be < 128")
	}
	if kind < 64 {
		s.lo |= 1 << kind
	} else {
		s.hi |= 1 << (kind - 64)
	}
	return s
}

// Remove removes a syntax kind from the set and returns the new set.
// Does nothing if the kind is not present.
// Panics if the kind's discriminator is >= 128.
func (s SyntaxSet) Remove(kind SyntaxKind) SyntaxSet {
	if kind >= maxSetBit {
		panic("SyntaxSet.Remove: kind discriminator must be < 128")
	}
	if kind < 64 {
		s.lo &^= 1 << kind
	} else {
		s.hi &^= 1 << (kind - 64)
	}
	return s
}

// Union combines two syntax sets.
func (s SyntaxSet) Union(other SyntaxSet) SyntaxSet {
	return SyntaxSet{
		lo: s.lo | other.lo,
		hi: s.hi | other.hi,
	}
}

// Contains returns true if the set contains the given syntax kind.
func (s SyntaxSet) Contains(kind SyntaxKind) bool {
	if kind >= maxSetBit {
		return false
	}
	if kind < 64 {
		return (s.lo & (1 << kind)) != 0
	}
	return (s.hi & (1 << (kind - 64))) != 0
}

// IsEmpty returns true if the set contains no kinds.
func (s SyntaxSet) IsEmpty() bool {
	return s.lo == 0 && s.hi == 0
}

// Predefined syntax sets used by the parser's recovery and lookahead logic.

// StmtStartSet contains kinds that can begin a statement.
var StmtStartSet = SyntaxSetOf(
	Semi, If, While, Do, For, Repeat, Function, Local,
	DColon, Break, Goto, Continue, Return,
	Ident, LParen, // expression-statement (call) starters
)

// BlockEndSet contains kinds that end a block (the caller's terminator
// plus the statement-level ones that always close a block: `end`,
// `else`, `elseif`, `until`, and end-of-input).
var BlockEndSet = SyntaxSetOf(KwEnd, Else, Elseif, Until, End)

// UnaryOpSet contains kinds that can introduce a unary expression.
var UnaryOpSet = SyntaxSetOf(Minus, Not, Bang, Hash, Tilde)

// PrimaryExprStartSet contains kinds that can start a primary (prefix)
// expression: literals, `(`, a table constructor, `function`, vararg, or a
// name.
var PrimaryExprStartSet = SyntaxSetOf(
	Nil, True, False, Number, Str, Ellipsis, LBrace, Function, Ident, LParen,
)

// ExprStartSet is PrimaryExprStartSet widened with the unary operators.
var ExprStartSet = PrimaryExprStartSet.Union(UnaryOpSet)
