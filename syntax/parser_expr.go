package syntax

// expr parses a full expression at the lowest precedence.
func expr(p *Parser) { exprPrec(p, 0) }

// exprPrec is the Pratt/precedence-climbing core, directly modeled on the
// teacher's codeExprPrec: a unary prefix (if any) followed by a loop that
// keeps absorbing binary operators whose left binding power exceeds
// minPrec, recursing with the operator's right binding power for the
// right-hand operand. Using distinct left/right binding powers (rather
// than a single precedence plus an associativity flag) is what makes
// right-associative operators (`..`, `^`) fall out of the same loop as
// the left-associative ones: see operator.go's binaryOpTable, built
// directly from Lua's own priority table.
func exprPrec(p *Parser, minPrec int) {
	if p.checkCancelled() {
		return
	}

	cleanup := p.increaseDepth()
	if cleanup == nil {
		return
	}
	defer cleanup()

	m := p.marker()
	if info, ok := unaryOpTable[p.current()]; ok {
		p.eat()
		exprPrec(p, info.prec)
		p.wrap(m, UnaryExpr)
	} else {
		suffixedExpr(p)
	}

	for {
		if p.checkCancelled() {
			break
		}
		info, ok := binaryOpTable[p.current()]
		if !ok || info.leftPrec <= minPrec {
			break
		}
		p.eat()
		exprPrec(p, info.rightPrec)
		p.wrap(m, BinaryExpr)
	}
}

// suffixedExpr parses a primary expression together with any chain of
// call/index/field/method suffixes applied to it, e.g. `a.b[c]:d(e).f`.
func suffixedExpr(p *Parser) {
	m := p.marker()
	primaryExpr(p)

	for {
		switch {
		case p.directlyAt(Dot):
			p.eat()
			p.expect(Ident)
			p.wrap(m, IndexExpr)
		case p.directlyAt(LBracket):
			open := p.marker()
			p.eat()
			expr(p)
			p.expectClosingDelimiter(open, RBracket)
			p.wrap(m, IndexExprBrack)
		case p.directlyAt(Colon):
			p.eat()
			p.expect(Ident)
			callArgs(p)
			p.wrap(m, MethodCallExpr)
		case p.directlyAt(LParen) || p.at(Str) || p.at(LBrace):
			callArgs(p)
			p.wrap(m, CallExpr)
		default:
			return
		}
	}
}

// primaryExpr parses a single non-suffixed expression: a literal, a
// vararg, a function literal, a parenthesized expression, a table
// constructor, or a bare name.
func primaryExpr(p *Parser) {
	m := p.marker()
	switch p.current() {
	case Nil:
		p.eat()
		p.wrap(m, NilLiteral)
	case True:
		p.eat()
		p.wrap(m, TrueLiteral)
	case False:
		p.eat()
		p.wrap(m, FalseLiteral)
	case Number:
		p.eat()
		p.wrap(m, NumberLiteral)
	case Str:
		p.eat()
		p.wrap(m, StringLiteral)
	case Ellipsis:
		p.eat()
		p.wrap(m, VarargExpr)
	case Function:
		functionLiteral(p)
	case Ident:
		p.eat()
		p.wrap(m, NameExpr)
	case LParen:
		open := p.marker()
		p.eat()
		expr(p)
		p.expectClosingDelimiter(open, RParen)
		p.wrap(m, ParenExpr)
	case LBrace:
		tableConstructor(p)
	default:
		p.unexpected()
	}
}

// functionLiteral parses `function (params) block end` as an expression,
// without a leading name (that case is FunctionDeclStatement).
func functionLiteral(p *Parser) {
	m := p.marker()
	p.assert(Function)
	functionBody(p)
	p.wrap(m, FunctionExpr)
}

// functionBody parses the shared `(paramlist) block end` tail of both
// function expressions and function declaration statements.
func functionBody(p *Parser) {
	m := p.marker()
	open := p.marker()
	p.expect(LParen)
	paramList(p)
	p.expectClosingDelimiter(open, RParen)
	block(p, BlockEndSet)
	p.expect(KwEnd)
	p.wrap(m, FunctionBody)
}

// paramList parses a comma-separated parameter name list, optionally
// ending in `...`.
func paramList(p *Parser) {
	m := p.marker()
	for !p.atSet(BlockEndSet.Union(SyntaxSetOf(RParen, End))) {
		if p.at(Ellipsis) {
			p.eat()
			break
		}
		p.expect(Ident)
		if !p.eatIf(Comma) {
			break
		}
	}
	p.wrap(m, ParamList)
}

// callArgs parses one of the three argument forms Lua allows: a
// parenthesized, comma-separated expression list; a single string
// literal (sugar for a one-argument call); or a single table constructor
// (also sugar for a one-argument call).
func callArgs(p *Parser) {
	m := p.marker()
	switch {
	case p.at(LParen):
		open := p.marker()
		p.eat()
		exprList(p, SyntaxSetOf(RParen))
		p.expectClosingDelimiter(open, RParen)
		p.wrap(m, ArgsParen)
	case p.at(Str):
		p.eat()
		p.wrap(m, ArgsString)
	case p.at(LBrace):
		tableConstructor(p)
		p.wrap(m, ArgsTable)
	default:
		p.expected("arguments")
	}
}

// exprList parses a comma-separated, possibly-empty expression list up
// to (not including) a token in stopSet.
func exprList(p *Parser, stopSet SyntaxSet) {
	m := p.marker()
	for !p.atSet(stopSet) && !p.end() {
		expr(p)
		if !p.eatIf(Comma) {
			break
		}
	}
	p.wrap(m, ExprList)
}

// tableConstructor parses `{ field, field; field ... }`, where each field
// is one of: `[expr] = expr`, `Name = expr`, or a bare positional `expr`.
// Lua accepts either `,` or `;` between fields and a trailing separator.
func tableConstructor(p *Parser) {
	m := p.marker()
	open := p.marker()
	p.assert(LBrace)
	for !p.at(RBrace) && !p.end() {
		tableField(p)
		if !p.eatIf(Comma) && !p.eatIf(Semi) {
			break
		}
	}
	p.expectClosingDelimiter(open, RBrace)
	p.wrap(m, TableConstructor)
}

func tableField(p *Parser) {
	m := p.marker()
	switch {
	case p.at(LBracket):
		p.eat()
		expr(p)
		p.expect(RBracket)
		p.expect(Eq)
		expr(p)
		p.wrap(m, TableFieldExpr)
	case p.at(Ident) && p.peekIsEq():
		p.eat()
		p.eat() // '='
		expr(p)
		p.wrap(m, TableFieldName)
	default:
		expr(p)
		p.wrap(m, TableFieldPos)
	}
}

// peekIsEq reports whether the token immediately after the current one is
// `=`, without consuming either. Used to disambiguate a table field
// `Name = expr` from a bare positional field that happens to be a name
// (`{x}`), one token of lookahead past the identifier.
func (p *Parser) peekIsEq() bool {
	savedCursor := p.lexer.Cursor()
	for {
		kind, _ := p.lexer.Next()
		if kind == Space || kind == LineComment || kind == BlockComment {
			continue
		}
		p.lexer.Jump(savedCursor)
		return kind == Eq
	}
}
