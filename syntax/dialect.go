package syntax

// Dialect names a concrete Lua variant. The lexer and parser gate
// dialect-specific tokens and grammar (bitwise operators, `goto`,
// `continue`, alternate operator spellings) behind the active dialect's
// DialectOptions rather than hard-coding a single grammar, the same way
// the teacher's lexer dispatches on a SyntaxMode rather than hard-coding
// markup-only rules.
type Dialect uint8

const (
	DialectLua51 Dialect = iota
	DialectLua52
	DialectLua53
	DialectLua54
	DialectLuaJIT
	DialectGLua
	DialectFiveM
)

// String returns a human-readable dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectLua51:
		return "Lua 5.1"
	case DialectLua52:
		return "Lua 5.2"
	case DialectLua53:
		return "Lua 5.3"
	case DialectLua54:
		return "Lua 5.4"
	case DialectLuaJIT:
		return "LuaJIT"
	case DialectGLua:
		return "GLua"
	case DialectFiveM:
		return "FiveM"
	default:
		return "unknown dialect"
	}
}

// DialectOptions controls which tokens and grammar productions the lexer
// and parser accept. Each supported dialect gets a constructor below;
// LoadDialectManifest (dialect_config.go) builds one from a TOML document
// for projects that want to tune it externally.
type DialectOptions struct {
	Dialect Dialect

	// Goto enables the `goto`/`::label::` statement forms (Lua 5.2+).
	Goto bool
	// BitwiseOperators enables `&`, `|`, `~` (binary), `<<` and `>>`
	// (Lua 5.3+). Integer floor division `//` is gated by IntegerDivision.
	BitwiseOperators bool
	// IntegerDivision enables `//` independent of BitwiseOperators
	// (LuaJIT's 5.1-based grammar lacks bitwise operators but some forks
	// still special-case `//`; kept as its own flag for that reason).
	IntegerDivision bool
	// Continue enables the non-standard `continue` statement (GLua).
	Continue bool
	// CStyleOperators enables `!=`, `&&`, `||`, `!` as alternate spellings
	// of `~=`, `and`, `or`, `not` (GLua/FiveM).
	CStyleOperators bool
	// CompoundAssignment enables `+=`, `-=`, `*=`, `/=` (GLua/FiveM).
	CompoundAssignment bool
	// HexFloats enables `0x1.8p3`-style hexadecimal floating point
	// literals (Lua 5.2+).
	HexFloats bool
}

// Lua51 returns the options for standard Lua 5.1.
func Lua51() DialectOptions { return DialectOptions{Dialect: DialectLua51} }

// Lua52 returns the options for standard Lua 5.2.
func Lua52() DialectOptions {
	return DialectOptions{Dialect: DialectLua52, Goto: true, HexFloats: true}
}

// Lua53 returns the options for standard Lua 5.3.
func Lua53() DialectOptions {
	return DialectOptions{
		Dialect: DialectLua53, Goto: true, HexFloats: true,
		BitwiseOperators: true, IntegerDivision: true,
	}
}

// Lua54 returns the options for standard Lua 5.4.
func Lua54() DialectOptions {
	return DialectOptions{
		Dialect: DialectLua54, Goto: true, HexFloats: true,
		BitwiseOperators: true, IntegerDivision: true,
	}
}

// LuaJIT returns the options for LuaJIT, whose grammar tracks Lua 5.1 with
// goto/labels backported and a 64-bit bitwise-operator library exposed as
// function calls rather than operators.
func LuaJIT() DialectOptions {
	return DialectOptions{Dialect: DialectLuaJIT, Goto: true}
}

// GLua returns the options for Garry's Mod Lua: Lua 5.1 plus `continue`
// and a set of C-style operator spellings and compound assignment.
func GLua() DialectOptions {
	return DialectOptions{
		Dialect: DialectGLua, Continue: true, CStyleOperators: true,
		CompoundAssignment: true,
	}
}

// FiveM returns the options for FiveM's Lua, which layers the GLua
// extensions on top of a Lua 5.4 core.
func FiveM() DialectOptions {
	return DialectOptions{
		Dialect: DialectFiveM, Goto: true, HexFloats: true,
		BitwiseOperators: true, IntegerDivision: true, Continue: true,
		CStyleOperators: true, CompoundAssignment: true,
	}
}
