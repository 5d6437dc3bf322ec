package syntax

import (
	"context"
	"errors"
	"log/slog"
)

// MaxDepth bounds expression and statement nesting so that pathological
// or adversarial input (deeply nested parentheses, deeply nested table
// constructors) fails with a diagnostic instead of overflowing the Go
// stack.
const MaxDepth = 256

// ErrCancelled is returned by Parse when ctx is done before parsing
// finishes. Unlike malformed input, which is captured inline as error
// nodes so the caller still gets a usable tree, cancellation is a
// genuine failure: Parse returns no tree at all rather than a partial
// one, since a half-parsed block or expression can't be numbered or
// trusted by anything downstream.
var ErrCancelled = errors.New("syntax: parsing cancelled")

// Parse lexes and parses text under dialect, returning the green-tree
// root (a Chunk node). Parsing never fails on malformed input: malformed
// input is captured as error nodes inline in the tree, retrievable
// afterward via GreenNode.Errors/Diagnostics. Parse does fail outright if
// ctx is done: it is checked between statements and between expression
// productions, and a cancelled parse returns (nil, ErrCancelled) instead
// of whatever tree had been built so far.
func Parse(ctx context.Context, text string, dialect DialectOptions, opts ...Option) (*GreenNode, error) {
	p := NewParser(ctx, text, 0, dialect, opts...)
	block(p, SyntaxSetOf(End))
	if p.cancelled {
		return nil, ErrCancelled
	}
	return p.finishInto(Chunk), nil
}

// Token is a lexed token together with the trivia that preceded it.
type Token struct {
	kind    SyntaxKind
	node    *GreenNode
	nTrivia int
	start   int
	prevEnd int
}

// Marker is a position in the parser's flat node list, used to later wrap
// a range of already-parsed nodes into a single inner node.
type Marker int

// Parser turns a token stream into a flat, later-wrapped list of
// *GreenNode. Unlike the teacher's packrat-memoized parser (which exists
// to serve Typst's markup/math/code mode-switching grammar and its
// incremental reparser), this grammar's statement and expression
// productions never need to backtrack across more than a token or two of
// lookahead, so there is no memoization arena and no checkpoint/restore:
// every production decides what it's parsing from the current token (and
// occasionally one token of lookahead via peekIsEq) before consuming
// anything irrevocably.
type Parser struct {
	text      string
	lexer     *Lexer
	token     Token
	nodes     []*GreenNode
	depth     int
	logger    *slog.Logger
	ctx       context.Context
	cancelled bool
}

// NewParser creates a parser starting at the given byte offset.
func NewParser(ctx context.Context, text string, offset int, dialect DialectOptions, opts ...Option) *Parser {
	lexer := NewLexer(text, dialect)
	lexer.Jump(offset)
	nodes := make([]*GreenNode, 0, 64)
	token := lex(&nodes, lexer)
	p := &Parser{text: text, lexer: lexer, token: token, nodes: nodes, logger: slog.Default(), ctx: ctx}
	for _, opt := range opts {
		opt(p)
	}
	p.lexer.logger = p.logger
	return p
}

// checkCancelled reports whether this parse's context is done, latching
// the result so every later call short-circuits without touching ctx.Done()
// again. Called between statements (block, parser_stmt.go) and between
// expression productions (exprPrec, parser_expr.go).
func (p *Parser) checkCancelled() bool {
	if p.cancelled {
		return true
	}
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		p.cancelled = true
		return true
	default:
		return false
	}
}

func (p *Parser) finish() []*GreenNode { return p.nodes }

func (p *Parser) finishInto(kind SyntaxKind) *GreenNode { return Inner(kind, p.finish()) }

func (p *Parser) current() SyntaxKind { return p.token.kind }

func (p *Parser) at(kind SyntaxKind) bool { return p.token.kind == kind }

func (p *Parser) atSet(set SyntaxSet) bool { return set.Contains(p.token.kind) }

func (p *Parser) end() bool { return p.at(End) }

// directlyAt reports whether the current token is kind and had no
// preceding trivia, used to distinguish e.g. `f (x)` (two statements: call
// expression `f` then a parenthesized expression) is not a concern in Lua
// the way it is in the teacher's markup grammar, but directlyAt is still
// useful for a[... ] vs a [...] style ambiguity-free lookahead.
func (p *Parser) directlyAt(kind SyntaxKind) bool {
	return p.token.kind == kind && !p.hadTrivia()
}

func (p *Parser) hadTrivia() bool { return p.token.nTrivia > 0 }

func (p *Parser) currentText() string { return p.text[p.token.start:p.currentEnd()] }

func (p *Parser) currentStart() int { return p.token.start }

func (p *Parser) currentEnd() int { return p.lexer.Cursor() }

func (p *Parser) prevEnd() int { return p.token.prevEnd }

// marker returns a position pointing at the current token.
func (p *Parser) marker() Marker { return Marker(len(p.nodes)) }

// beforeTrivia returns a position pointing before the trivia preceding
// the current token.
func (p *Parser) beforeTrivia() Marker { return Marker(len(p.nodes) - p.token.nTrivia) }

// eatAndGet eats the current token and returns the produced node for
// in-place mutation (e.g. Expected/Unexpected/ConvertToKind).
func (p *Parser) eatAndGet() *GreenNode {
	offset := len(p.nodes)
	p.eat()
	return p.nodes[offset]
}

// eatIf eats the current token if it is kind, reporting whether it did.
func (p *Parser) eatIf(kind SyntaxKind) bool {
	if p.at(kind) {
		p.eat()
		return true
	}
	return false
}

// assert eats the current token, panicking if it isn't kind. Used where
// the caller has already verified the token via at/atSet.
func (p *Parser) assert(kind SyntaxKind) {
	if p.token.kind != kind {
		panic("syntax: parser assertion failed: expected " + kind.Name())
	}
	p.eat()
}

// convertAndEat relabels the current token's kind before eating it.
func (p *Parser) convertAndEat(kind SyntaxKind) {
	p.token.node.ConvertToKind(kind)
	p.eat()
}

func (p *Parser) eat() {
	p.nodes = append(p.nodes, p.token.node)
	p.token = lex(&p.nodes, p.lexer)
}

// wrap groups nodes[from:beforeTrivia) into a single inner node of kind,
// leaving any trailing trivia where it is.
func (p *Parser) wrap(from Marker, kind SyntaxKind) {
	to := int(p.beforeTrivia())
	fromIdx := int(from)
	if fromIdx > to {
		fromIdx = to
	}

	children := make([]*GreenNode, to-fromIdx)
	copy(children, p.nodes[fromIdx:to])

	trailing := make([]*GreenNode, len(p.nodes)-to)
	copy(trailing, p.nodes[to:])

	p.nodes = p.nodes[:fromIdx]
	p.nodes = append(p.nodes, Inner(kind, children))
	p.nodes = append(p.nodes, trailing...)
}

// wrapError groups nodes[from:beforeTrivia) into a single error node
// carrying message under the uncategorized LOLP code, concatenating
// their text.
func (p *Parser) wrapError(from Marker, message string) {
	p.wrapErrorCode(from, LOLP0000, message)
}

// wrapErrorCode is wrapError but attaches a specific LOLP diagnostic code.
func (p *Parser) wrapErrorCode(from Marker, code, message string) {
	to := int(p.beforeTrivia())
	fromIdx := int(from)
	if fromIdx > to {
		fromIdx = to
	}
	var text string
	for i := fromIdx; i < to; i++ {
		text += p.nodes[i].IntoText()
	}
	errNode := ErrorNode(NewSyntaxErrorWithCode(code, message), text)
	newNodes := make([]*GreenNode, fromIdx+1+len(p.nodes)-to)
	copy(newNodes[:fromIdx], p.nodes[:fromIdx])
	newNodes[fromIdx] = errNode
	copy(newNodes[fromIdx+1:], p.nodes[to:])
	p.nodes = newNodes
}

// lex advances the lexer to the next non-trivia token, appending every
// trivia token it passes over directly to nodes.
func lex(nodes *[]*GreenNode, lexer *Lexer) Token {
	prevEnd := lexer.Cursor()
	start := prevEnd
	kind, node := lexer.Next()
	nTrivia := 0

	for kind.IsTrivia() {
		nTrivia++
		*nodes = append(*nodes, node)
		start = lexer.Cursor()
		kind, node = lexer.Next()
	}

	return Token{kind: kind, node: node, nTrivia: nTrivia, start: start, prevEnd: prevEnd}
}

// --- error reporting ---

// expect consumes the current token if it is kind, else records an
// "expected ..." error. When kind is Ident and the current token is a
// keyword, that keyword is eaten and marked as the error; otherwise
// nothing is consumed (so the caller's own recovery / synchronization
// logic decides what happens next).
func (p *Parser) expect(kind SyntaxKind) bool {
	if p.at(kind) {
		p.eat()
		return true
	}
	if kind == Ident && p.token.kind.IsKeyword() {
		p.trimErrors()
		p.eatAndGet().Expected(kind.Name())
	} else {
		p.expected(kind.Name())
	}
	return false
}

// expectClosingDelimiter consumes kind as a closing delimiter for the
// opener at open, or marks the opener itself as an unclosed-delimiter
// error if it's missing.
func (p *Parser) expectClosingDelimiter(open Marker, kind SyntaxKind) {
	if !p.eatIf(kind) {
		p.nodes[open].ConvertToError("unclosed delimiter")
	}
}

func (p *Parser) expected(thing string) {
	if !p.afterError() {
		p.logRecovery("synthesized missing token", "expected", thing, "found", p.token.kind.Name())
		p.expectedAt(p.beforeTrivia(), thing)
	}
}

func (p *Parser) afterError() bool {
	m := p.beforeTrivia()
	return int(m) > 0 && p.nodes[m-1].Kind().IsError()
}

func (p *Parser) expectedAt(m Marker, thing string) {
	errNode := ErrorNode(NewSyntaxErrorWithCode(LOLP0005, "expected "+thing), "")
	p.nodes = append(p.nodes[:m], append([]*GreenNode{errNode}, p.nodes[m:]...)...)
}

// hint adds a hint to the most recently produced error node.
func (p *Parser) hint(h string) {
	m := p.beforeTrivia()
	if int(m) > 0 {
		p.nodes[m-1].Hint(h)
	}
}

// unexpected consumes the current token and marks it as an unexpected
// error, used by statement/expression recovery loops to skip tokens that
// don't start anything recognizable.
func (p *Parser) unexpected() {
	p.trimErrors()
	p.logRecovery("skipping unexpected token", "kind", p.token.kind.Name())
	p.eatAndGet().Unexpected()
}

// trimErrors removes trailing zero-length error nodes so consecutive
// recovery attempts don't pile up empty error markers.
func (p *Parser) trimErrors() {
	end := int(p.beforeTrivia())
	start := end
	for start > 0 && p.nodes[start-1].Kind().IsError() && p.nodes[start-1].IsEmpty() {
		start--
	}
	if start < end {
		p.nodes = append(p.nodes[:start], p.nodes[end:]...)
	}
}

// --- depth checking ---

// increaseDepth increases the nesting depth for the duration of the
// returned cleanup function, or reports the depth error and returns nil
// if already at the limit.
func (p *Parser) increaseDepth() func() {
	if p.depth < MaxDepth {
		p.depth++
		return func() { p.depth-- }
	}
	p.depthCheckError(nil)
	return nil
}

func (p *Parser) depthCheckError(stopSet *SyntaxSet) {
	m := p.marker()

	balance := 0
	for {
		if p.atSet(SyntaxSetOf(LBracket, LBrace, LParen)) {
			balance++
		} else if p.atSet(SyntaxSetOf(RBracket, RBrace, RParen)) {
			balance--
			if balance < 0 {
				balance = 0
			}
		}
		p.eat()

		atStop := stopSet == nil || p.atSet(*stopSet)
		if (balance == 0 && atStop) || p.end() {
			break
		}
	}

	p.wrapErrorCode(m, LOLP0007, MaxDepthMessage)
}

// MaxDepthMessage is the human-readable text behind the LOLP0007
// diagnostic code, kept as a constant so parser and tests agree on its
// wording.
const MaxDepthMessage = "maximum parsing depth exceeded"
