package syntax

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Lexer is an iterator over Lua source text which produces green leaf
// nodes one token at a time. It carries the dialect it was constructed
// with so that keyword recognition and operator spelling can vary per
// dialect without a second lexer implementation.
type Lexer struct {
	s       *Scanner
	dialect DialectOptions
	newline bool
	err     *SyntaxError
	logger  *slog.Logger
	cache   *TokenCache
}

// NewLexer creates a new lexer for text under the given dialect.
func NewLexer(text string, dialect DialectOptions) *Lexer {
	return &Lexer{s: NewScanner(text), dialect: dialect, logger: slog.Default(), cache: NewTokenCache()}
}

// Dialect returns the dialect this lexer was constructed with.
func (l *Lexer) Dialect() DialectOptions { return l.dialect }

// Cursor returns the current byte position in the text.
func (l *Lexer) Cursor() int { return l.s.Cursor() }

// Jump sets the cursor to the given position.
func (l *Lexer) Jump(index int) { l.s.Jump(index) }

// Newline reports whether the most recently produced token contained a
// newline (used by the parser to decide statement boundaries around
// optional semicolons).
func (l *Lexer) Newline() bool { return l.newline }

// Column returns the grapheme-cluster column of index on its line,
// counting backwards to the nearest newline.
func (l *Lexer) Column(index int) int {
	s := l.s.Clone()
	s.Jump(index)
	before := s.Before()
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return CountGraphemes(before[lineStart:])
}

// error records a syntax error carrying a LOLP diagnostic code and returns
// the Error kind; the caller is expected to immediately return this as the
// token's kind, and Next wraps the consumed text into an ErrorNode with
// this error attached.
func (l *Lexer) error(code, message string) SyntaxKind {
	l.err = NewSyntaxErrorWithCode(code, message)
	return Error
}

// hint adds a hint to the currently pending error, if any.
func (l *Lexer) hint(message string) {
	if l.err != nil {
		l.err.AddHint(message)
	}
}

// Next returns the next token as a (kind, green leaf/error node) pair.
func (l *Lexer) Next() (SyntaxKind, *GreenNode) {
	l.err = nil
	start := l.s.Cursor()
	l.newline = false

	// The quick scan only pays for itself on longer remaining input (it
	// still has to run the slow lexer on a miss, so on short tails the
	// combined cost can exceed just running the slow lexer directly) or
	// right at the end of the buffer, where End/EOF handling is cheap to
	// special-case.
	// start == 0 is excluded because only the very first token of a file
	// may be a shebang (`#!...`), which the quick scan's punctuation
	// class would otherwise misread as a lone `#` token.
	remaining := len(l.s.After())
	if start > 0 && (remaining >= MaxCachedTokenSize || remaining == 0) {
		if result, ok := l.tryQuickScan(); ok {
			text := l.s.From(start)
			if result.kind == Space {
				l.newline = strings.ContainsAny(text, "\n\r")
			}
			node := l.cache.internHashed(result.hash, text, result.kind, func() *GreenNode { return Leaf(result.kind, text) })
			return result.kind, node
		}
	}

	c := l.s.Eat()
	var kind SyntaxKind

	switch {
	case c == 0:
		kind = End
	case IsSpace(c):
		kind = l.whitespace(c)
	case c == '#' && start == 0 && l.s.EatIf('!'):
		kind = l.shebang()
	case c == '-' && l.s.EatIf('-'):
		kind = l.comment()
	case c == '"' || c == '\'':
		kind = l.quotedString(c)
	case c == '[' && (l.s.At("[") || l.s.At("=")):
		kind = l.tryLongBracket()
	default:
		kind = l.code(start, c)
	}

	text := l.s.From(start)
	var node *GreenNode
	switch {
	case l.err != nil:
		l.logger.Debug("lexer recovered from malformed token", "message", l.err.Message, "text", text)
		node = ErrorNode(l.err, text)
		l.err = nil
	case cacheableKind(kind):
		node = l.cache.Intern(text, kind, func() *GreenNode { return Leaf(kind, text) })
	default:
		node = Leaf(kind, text)
	}
	return kind, node
}

// cacheableKind reports whether tokens of this kind are worth interning
// in the TokenCache: identifiers and keywords (which repeat constantly
// across any real program), whitespace trivia (indentation repeats
// line after line), and fixed-spelling operators/punctuation. Str and
// Number are excluded since their text varies too widely to benefit, and
// LineComment/BlockComment since comment bodies rarely repeat verbatim.
func cacheableKind(kind SyntaxKind) bool {
	if kind == Ident || kind == Space || kind.IsKeyword() {
		return true
	}
	return fixedTokenText[kind] != ""
}

func (l *Lexer) whitespace(c rune) SyntaxKind {
	l.s.EatWhile(IsSpace)
	if c != ' ' {
		l.newline = l.newline || IsNewline(c)
	}
	return Space
}

func (l *Lexer) shebang() SyntaxKind {
	l.s.EatUntil(IsNewline)
	return Shebang
}

// comment lexes both forms of Lua comment: a short line comment `-- ...`
// and a long comment `--[[ ... ]]` / `--[=[ ... ]=]` sharing the same
// level-counted bracket syntax as long strings.
func (l *Lexer) comment() SyntaxKind {
	if l.s.Peek() == '[' {
		save := l.s.Cursor()
		l.s.Eat()
		level := l.s.EatWhile(func(r rune) bool { return r == '=' })
		if l.s.EatIf('[') {
			if !l.readLongBracketBody(len(level)) {
				return l.error(LOLP0002, "unterminated long comment")
			}
			return BlockComment
		}
		l.s.Jump(save)
	}
	l.s.EatUntil(IsNewline)
	return LineComment
}

// tryLongBracket attempts to lex a long-bracket string starting at the
// `[` already consumed by Next (start points at that `[`); on failure (the
// `[=*` sequence doesn't resolve to an opening long bracket) it rewinds
// and falls through to ordinary code lexing so `[` is still available as
// an index/table-constructor delimiter.
func (l *Lexer) tryLongBracket() SyntaxKind {
	save := l.s.Cursor()
	level := l.s.EatWhile(func(r rune) bool { return r == '=' })
	if l.s.EatIf('[') {
		// A long bracket swallows one immediately-following newline.
		if l.s.Peek() == '\r' {
			l.s.Eat()
			l.s.EatIf('\n')
		} else {
			l.s.EatIf('\n')
		}
		if !l.readLongBracketBody(len(level)) {
			return l.error(LOLP0002, "unterminated long string")
		}
		return Str
	}
	l.s.Jump(save)
	return LBracket
}

// readLongBracketBody consumes text up to and including the matching
// `]=*]` closer of the given level, returning false if the input ends
// first.
func (l *Lexer) readLongBracketBody(level int) bool {
	for {
		c := l.s.Eat()
		if c == 0 {
			return false
		}
		if c != ']' {
			continue
		}
		save := l.s.Cursor()
		eqs := l.s.EatWhile(func(r rune) bool { return r == '=' })
		if len(eqs) == level && l.s.EatIf(']') {
			return true
		}
		l.s.Jump(save)
	}
}

func (l *Lexer) quotedString(quote rune) SyntaxKind {
	escaped := false
	for {
		c := l.s.Peek()
		if c == 0 {
			return l.error(LOLP0001, "unterminated string")
		}
		if IsNewline(c) && !escaped {
			return l.error(LOLP0001, "unterminated string")
		}
		if c == quote && !escaped {
			break
		}
		escaped = c == '\\' && !escaped
		l.s.Eat()
	}
	l.s.Eat() // closing quote
	return Str
}

func (l *Lexer) code(start int, c rune) SyntaxKind {
	switch c {
	case '+':
		if l.dialect.CompoundAssignment && l.s.EatIf('=') {
			return PlusEq
		}
		return Plus
	case '-':
		if l.dialect.CompoundAssignment && l.s.EatIf('=') {
			return MinusEq
		}
		return Minus
	case '*':
		if l.dialect.CompoundAssignment && l.s.EatIf('=') {
			return StarEq
		}
		return Star
	case '/':
		if l.dialect.IntegerDivision && l.s.EatIf('/') {
			return DSlash
		}
		if l.dialect.CompoundAssignment && l.s.EatIf('=') {
			return SlashEq
		}
		return Slash
	case '%':
		return Percent
	case '^':
		return Caret
	case '#':
		return Hash
	case '&':
		if l.dialect.CStyleOperators && l.s.EatIf('&') {
			return AmpAmp
		}
		if l.dialect.BitwiseOperators {
			return Amp
		}
		return l.error(LOLP0008, "bitwise operators are not supported in this dialect")
	case '~':
		if l.s.EatIf('=') {
			return NotEq
		}
		if l.dialect.BitwiseOperators {
			return Tilde
		}
		return l.error(LOLP0008, "bitwise operators are not supported in this dialect")
	case '|':
		if l.dialect.CStyleOperators && l.s.EatIf('|') {
			return PipePipe
		}
		if l.dialect.BitwiseOperators {
			return Pipe
		}
		return l.error(LOLP0008, "bitwise operators are not supported in this dialect")
	case '<':
		if l.s.EatIf('<') {
			if l.dialect.BitwiseOperators {
				return LtLt
			}
			return l.error(LOLP0008, "bitwise operators are not supported in this dialect")
		}
		if l.s.EatIf('=') {
			return LtEq
		}
		return Lt
	case '>':
		if l.s.EatIf('>') {
			if l.dialect.BitwiseOperators {
				return GtGt
			}
			return l.error(LOLP0008, "bitwise operators are not supported in this dialect")
		}
		if l.s.EatIf('=') {
			return GtEq
		}
		return Gt
	case '=':
		if l.s.EatIf('=') {
			return EqEq
		}
		return Eq
	case '!':
		if l.dialect.CStyleOperators {
			if l.s.EatIf('=') {
				return BangEq
			}
			return Bang
		}
		return l.error(LOLP0008, fmt.Sprintf("the character `%c` is not valid in %s", c, l.dialect.Dialect))
	case '(':
		return LParen
	case ')':
		return RParen
	case '{':
		return LBrace
	case '}':
		return RBrace
	case '[':
		return LBracket
	case ']':
		return RBracket
	case ';':
		return Semi
	case ':':
		if l.s.EatIf(':') {
			return DColon
		}
		return Colon
	case ',':
		return Comma
	case '.':
		if l.s.AtRune(func(r rune) bool { return r >= '0' && r <= '9' }) {
			return l.number(start, c)
		}
		if l.s.EatIf('.') {
			if l.s.EatIf('.') {
				return Ellipsis
			}
			return DotDot
		}
		return Dot
	}

	if c >= '0' && c <= '9' {
		return l.number(start, c)
	}
	if IsIDStart(c) {
		return l.ident(start)
	}

	return l.error(LOLP0004, fmt.Sprintf("the character `%c` (%s) is not valid here", c, RuneName(c)))
}

func (l *Lexer) ident(start int) SyntaxKind {
	l.s.EatWhile(IsIDContinue)
	ident := l.s.From(start)
	if kw := l.keyword(ident); kw != End {
		return kw
	}
	return Ident
}

// keyword resolves an identifier to a keyword kind under this lexer's
// dialect via the shared keywordTable (kindmeta.go), or returns End if it
// is an ordinary identifier. goto and continue are dialect-gated: when a
// dialect doesn't support them the word lexes as a plain identifier, the
// same way a user-defined variable named `goto` would in Lua 5.1.
func (l *Lexer) keyword(ident string) SyntaxKind {
	kind, ok := keywordTable[ident]
	if !ok {
		return End
	}
	if kind == Goto && !l.dialect.Goto {
		return End
	}
	if kind == Continue && !l.dialect.Continue {
		return End
	}
	return kind
}

// number lexes a numeric literal: decimal integers and floats (with
// optional exponent), and, where the dialect allows, hexadecimal integers
// and hex floats (0x1.8p3 style).
func (l *Lexer) number(start int, firstC rune) SyntaxKind {
	isHex := false
	if firstC == '0' && (l.s.Peek() == 'x' || l.s.Peek() == 'X') {
		l.s.Eat()
		isHex = true
	}

	digit := func(r rune) bool { return r >= '0' && r <= '9' }
	hexDigit := func(r rune) bool {
		return digit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}

	isFloat := firstC == '.'

	if isHex {
		l.s.EatWhile(hexDigit)
		if l.s.EatIf('.') {
			isFloat = true
			l.s.EatWhile(hexDigit)
		}
		if l.s.Peek() == 'p' || l.s.Peek() == 'P' {
			l.s.Eat()
			isFloat = true
			l.s.EatIf('+')
			l.s.EatIf('-')
			l.s.EatWhile(digit)
		}
	} else {
		l.s.EatWhile(digit)
		if firstC != '.' && l.s.Peek() == '.' {
			l.s.Eat()
			isFloat = true
			l.s.EatWhile(digit)
		}
		if l.s.Peek() == 'e' || l.s.Peek() == 'E' {
			l.s.Eat()
			isFloat = true
			l.s.EatIf('+')
			l.s.EatIf('-')
			l.s.EatWhile(digit)
		}
	}

	text := l.s.From(start)
	if isHex && isFloat && !l.dialect.HexFloats {
		return l.error(LOLP0008, fmt.Sprintf("hexadecimal float %q is not supported in %s", text, l.dialect.Dialect))
	}

	if !isHex {
		if isFloat {
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return l.error(LOLP0003, fmt.Sprintf("invalid floating point number: %s", text))
			}
		} else if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			if _, ferr := strconv.ParseFloat(text, 64); ferr != nil {
				return l.error(LOLP0003, fmt.Sprintf("invalid number: %s", text))
			}
		}
	}

	return Number
}
