package syntax

// block parses a sequence of statements up to (not including) a token in
// stopSet, wrapping them in a Block node. An optional trailing return
// statement, if present, must be the last thing in the block per Lua's
// grammar; this parser accepts a `return` wherever a statement is valid
// and lets the caller treat a misplaced one as a later semantic check,
// matching the teacher's habit of keeping the parser permissive and
// pushing stricter checks to a later pass.
func block(p *Parser, stopSet SyntaxSet) {
	m := p.marker()
	for !p.atSet(stopSet) && !p.end() {
		if p.checkCancelled() {
			break
		}
		if cleanup := p.increaseDepth(); cleanup == nil {
			break
		} else {
			statement(p)
			cleanup()
		}
	}
	p.wrap(m, Block)
}

// statement parses a single statement, dispatching on the leading token.
func statement(p *Parser) {
	switch p.current() {
	case Semi:
		emptyStatement(p)
	case If:
		ifStatement(p)
	case While:
		whileStatement(p)
	case Do:
		doStatement(p)
	case For:
		forStatement(p)
	case Repeat:
		repeatStatement(p)
	case Function:
		functionDeclStatement(p)
	case Local:
		localStatement(p)
	case DColon:
		labelStatement(p)
	case Break:
		breakStatement(p)
	case Goto:
		gotoStatement(p)
	case Continue:
		continueStatement(p)
	case Return:
		returnStatement(p)
	default:
		exprStatement(p)
	}
}

func emptyStatement(p *Parser) {
	m := p.marker()
	p.assert(Semi)
	p.wrap(m, EmptyStatement)
}

func breakStatement(p *Parser) {
	m := p.marker()
	p.assert(Break)
	p.eatIf(Semi)
	p.wrap(m, BreakStatement)
}

func continueStatement(p *Parser) {
	m := p.marker()
	p.assert(Continue)
	p.eatIf(Semi)
	p.wrap(m, ContinueStatement)
}

func gotoStatement(p *Parser) {
	m := p.marker()
	p.assert(Goto)
	p.expect(Ident)
	p.eatIf(Semi)
	p.wrap(m, GotoStatement)
}

func labelStatement(p *Parser) {
	m := p.marker()
	p.assert(DColon)
	p.expect(Ident)
	p.expect(DColon)
	p.wrap(m, LabelStatement)
}

func returnStatement(p *Parser) {
	m := p.marker()
	p.assert(Return)
	if !p.atSet(BlockEndSet) && !p.at(Semi) && !p.end() {
		exprList(p, BlockEndSet.Union(SyntaxSetOf(Semi)))
	}
	p.eatIf(Semi)
	p.wrap(m, ReturnStatement)
}

func doStatement(p *Parser) {
	m := p.marker()
	p.assert(Do)
	block(p, BlockEndSet)
	p.expect(KwEnd)
	p.wrap(m, DoStatement)
}

func whileStatement(p *Parser) {
	m := p.marker()
	p.assert(While)
	expr(p)
	p.expect(Do)
	block(p, BlockEndSet)
	p.expect(KwEnd)
	p.wrap(m, WhileStatement)
}

func repeatStatement(p *Parser) {
	m := p.marker()
	p.assert(Repeat)
	block(p, SyntaxSetOf(Until))
	p.expect(Until)
	expr(p)
	p.wrap(m, RepeatStatement)
}

// ifStatement parses `if cond then block (elseif cond then block)*
// (else block)? end`. Each elseif/else becomes its own wrapped clause
// node nested inside the IfStatement, so a caller walking the tree sees
// the clauses as named children rather than a flat token run.
func ifStatement(p *Parser) {
	m := p.marker()
	p.assert(If)
	expr(p)
	p.expect(Then)
	block(p, BlockEndSet)

	for p.at(Elseif) {
		cm := p.marker()
		p.assert(Elseif)
		expr(p)
		p.expect(Then)
		block(p, BlockEndSet)
		p.wrap(cm, ElseifClause)
	}

	if p.at(Else) {
		cm := p.marker()
		p.assert(Else)
		block(p, BlockEndSet)
		p.wrap(cm, ElseClause)
	}

	p.expect(KwEnd)
	p.wrap(m, IfStatement)
}

// forStatement parses both Lua for-loop forms, disambiguating on whether
// the first name is followed by `=` (numeric) or `,`/`in` (generic).
func forStatement(p *Parser) {
	m := p.marker()
	p.assert(For)
	p.expect(Ident)

	if p.eatIf(Eq) {
		numericForTail(p, m)
		return
	}
	genericForTail(p, m)
}

func numericForTail(p *Parser, m Marker) {
	expr(p)
	p.expect(Comma)
	expr(p)
	if p.eatIf(Comma) {
		expr(p)
	}
	p.expect(Do)
	block(p, BlockEndSet)
	p.expect(KwEnd)
	p.wrap(m, NumericForStatement)
}

func genericForTail(p *Parser, m Marker) {
	for p.eatIf(Comma) {
		p.expect(Ident)
	}
	p.expect(In)
	exprList(p, SyntaxSetOf(Do))
	p.expect(Do)
	block(p, BlockEndSet)
	p.expect(KwEnd)
	p.wrap(m, GenericForStatement)
}

// functionDeclStatement parses `function Name(.Name)*(:Name)? body`. The
// dotted/method name chain is built by functionName as a NameExpr wrapped
// in one IndexExpr per `.Name`/`:Name` part. `local function Name body` is
// parsed by localStatement, not here.
func functionDeclStatement(p *Parser) {
	m := p.marker()
	p.assert(Function)
	functionName(p)
	functionBody(p)
	p.wrap(m, FunctionDeclStatement)
}

func functionName(p *Parser) {
	m := p.marker()
	p.expect(Ident)
	p.wrap(m, NameExpr)
	for p.directlyAt(Dot) {
		p.eat()
		p.expect(Ident)
		p.wrap(m, IndexExpr)
	}
	if p.directlyAt(Colon) {
		p.eat()
		p.expect(Ident)
		p.wrap(m, IndexExpr)
	}
}

func localStatement(p *Parser) {
	m := p.marker()
	p.assert(Local)
	if p.at(Function) {
		p.eat()
		p.expect(Ident)
		functionBody(p)
		p.wrap(m, LocalFunctionStatement)
		return
	}
	nameListWithAttribs(p)
	if p.eatIf(Eq) {
		exprList(p, BlockEndSet.Union(SyntaxSetOf(Semi)))
	}
	p.eatIf(Semi)
	p.wrap(m, LocalStatement)
}

// nameListWithAttribs parses a comma-separated local-variable name list,
// tolerating Lua 5.4's optional `<const>`/`<close>` attributes on each
// name (parsed permissively as a bracketed identifier rather than two
// hard-coded keywords, since older dialects simply never produce them).
func nameListWithAttribs(p *Parser) {
	m := p.marker()
	p.expect(Ident)
	if p.eatIf(Lt) {
		p.expect(Ident)
		p.expect(Gt)
	}
	for p.eatIf(Comma) {
		p.expect(Ident)
		if p.eatIf(Lt) {
			p.expect(Ident)
			p.expect(Gt)
		}
	}
	p.wrap(m, NameList)
}

// exprStatement parses either an assignment (`varlist = exprlist`) or a
// bare call statement, which share a prefix (a suffixed expression) and
// are disambiguated only once that prefix is fully parsed: if a `=` or
// `,` follows, it was the start of a var list; otherwise the prefix is
// wrapped as a CallStatement whether or not it ended in a call (a prefix
// that is not a call is not reported here).
func exprStatement(p *Parser) {
	m := p.marker()
	suffixedExpr(p)

	if p.at(Comma) || p.at(Eq) {
		for p.eatIf(Comma) {
			suffixedExpr(p)
		}
		p.wrap(m, VarList)
		p.expect(Eq)
		exprList(p, BlockEndSet.Union(SyntaxSetOf(Semi)))
		p.eatIf(Semi)
		p.wrap(m, AssignStatement)
		return
	}

	p.eatIf(Semi)
	p.wrap(m, CallStatement)
}
