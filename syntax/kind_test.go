package syntax

import "testing"

func TestSyntaxKindValues(t *testing.T) {
	tests := []struct {
		kind SyntaxKind
		want uint8
	}{
		{End, 0},
		{Error, 1},
		{Shebang, 2},
		{LineComment, 3},
		{BlockComment, 4},
	}
	for _, tt := range tests {
		if uint8(tt.kind) != tt.want {
			t.Errorf("%s = %d, want %d", tt.kind.Name(), tt.kind, tt.want)
		}
	}
}

func TestSyntaxKindIsGrouping(t *testing.T) {
	grouping := []SyntaxKind{LBrace, RBrace, LBracket, RBracket, LParen, RParen}
	notGrouping := []SyntaxKind{End, Error, Plus, Minus, Ident}

	for _, k := range grouping {
		if !k.IsGrouping() {
			t.Errorf("%s.IsGrouping() = false, want true", k.Name())
		}
	}
	for _, k := range notGrouping {
		if k.IsGrouping() {
			t.Errorf("%s.IsGrouping() = true, want false", k.Name())
		}
	}
}

func TestSyntaxKindIsTerminator(t *testing.T) {
	terminators := []SyntaxKind{End, Semi, RBrace, RParen, RBracket, KwEnd, Else, Elseif, Until}
	notTerminators := []SyntaxKind{LBrace, LParen, Plus, Ident}

	for _, k := range terminators {
		if !k.IsTerminator() {
			t.Errorf("%s.IsTerminator() = false, want true", k.Name())
		}
	}
	for _, k := range notTerminators {
		if k.IsTerminator() {
			t.Errorf("%s.IsTerminator() = true, want false", k.Name())
		}
	}
}

func TestSyntaxKindIsStmt(t *testing.T) {
	stmts := []SyntaxKind{LocalStatement, AssignStatement, CallStatement, DoStatement, IfStatement}
	notStmts := []SyntaxKind{End, Local, Ident, Block}

	for _, k := range stmts {
		if !k.IsStmt() {
			t.Errorf("%s.IsStmt() = false, want true", k.Name())
		}
	}
	for _, k := range notStmts {
		if k.IsStmt() {
			t.Errorf("%s.IsStmt() = true, want false", k.Name())
		}
	}
}

func TestSyntaxKindIsTrivia(t *testing.T) {
	trivia := []SyntaxKind{Shebang, LineComment, BlockComment, Space}
	notTrivia := []SyntaxKind{End, Str, Ident}

	for _, k := range trivia {
		if !k.IsTrivia() {
			t.Errorf("%s.IsTrivia() = false, want true", k.Name())
		}
	}
	for _, k := range notTrivia {
		if k.IsTrivia() {
			t.Errorf("%s.IsTrivia() = true, want false", k.Name())
		}
	}
}

func TestSyntaxKindIsKeyword(t *testing.T) {
	keywords := []SyntaxKind{
		And, Break, Do, Else, Elseif, KwEnd, False, For, Function, Goto,
		If, In, Local, Nil, Not, Or, Repeat, Return, Then, True, Until,
		While, Continue,
	}
	notKeywords := []SyntaxKind{End, Ident, Plus, LBrace}

	for _, k := range keywords {
		if !k.IsKeyword() {
			t.Errorf("%s.IsKeyword() = false, want true", k.Name())
		}
	}
	for _, k := range notKeywords {
		if k.IsKeyword() {
			t.Errorf("%s.IsKeyword() = true, want false", k.Name())
		}
	}
}

func TestSyntaxKindIsLiteral(t *testing.T) {
	literals := []SyntaxKind{Nil, True, False, Number, Str, Ellipsis}
	notLiterals := []SyntaxKind{End, Ident, Plus}

	for _, k := range literals {
		if !k.IsLiteral() {
			t.Errorf("%s.IsLiteral() = false, want true", k.Name())
		}
	}
	for _, k := range notLiterals {
		if k.IsLiteral() {
			t.Errorf("%s.IsLiteral() = true, want false", k.Name())
		}
	}
}

func TestSyntaxKindIsUnaryOp(t *testing.T) {
	unary := []SyntaxKind{Minus, Not, Hash}
	notUnary := []SyntaxKind{Plus, Ident, End}

	for _, k := range unary {
		if !k.IsUnaryOp() {
			t.Errorf("%s.IsUnaryOp() = false, want true", k.Name())
		}
	}
	for _, k := range notUnary {
		if k.IsUnaryOp() {
			t.Errorf("%s.IsUnaryOp() = true, want false", k.Name())
		}
	}
}

func TestSyntaxKindIsError(t *testing.T) {
	if !Error.IsError() {
		t.Error("Error.IsError() = false, want true")
	}
	if End.IsError() {
		t.Error("End.IsError() = true, want false")
	}
}

func TestSyntaxKindName(t *testing.T) {
	tests := []struct {
		kind SyntaxKind
		want string
	}{
		{End, "end of input"},
		{Error, "syntax error"},
		{LBrace, "opening brace"},
		{Local, "keyword `local`"},
		{Ident, "identifier"},
	}
	for _, tt := range tests {
		if got := tt.kind.Name(); got != tt.want {
			t.Errorf("%d.Name() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSyntaxKindString(t *testing.T) {
	if End.String() != End.Name() {
		t.Errorf("End.String() != End.Name()")
	}
}

func TestSyntaxKindTokenText(t *testing.T) {
	if got := Plus.TokenText(); got != "+" {
		t.Errorf("Plus.TokenText() = %q, want %q", got, "+")
	}
	if got := Local.TokenText(); got != "local" {
		t.Errorf("Local.TokenText() = %q, want %q", got, "local")
	}
	if got := Ident.TokenText(); got != "" {
		t.Errorf("Ident.TokenText() = %q, want empty", got)
	}
}

func TestSyntaxKindUnknown(t *testing.T) {
	if got := numSyntaxKinds.Name(); got != "unknown token" {
		t.Errorf("out-of-table kind.Name() = %q, want %q", got, "unknown token")
	}
}
