package syntax

// kindNames, fixedTokenText, keywordTable and binaryOpTable are built once
// at package init time, the same "derive the lookup tables from a literal
// table, not per-call switches" approach the teacher's SyntaxSet globals
// use for first-sets. Doing it in init() rather than as package vars keeps
// the construction logic (and its invariant-checking panic) in one place.
var (
	kindNames      map[SyntaxKind]string
	fixedTokenText map[SyntaxKind]string
	keywordTable   map[string]SyntaxKind
	binaryOpTable  map[SyntaxKind]binaryOpInfo
	unaryOpTable   map[SyntaxKind]unaryOpInfo

	// kindCategories/categoryKinds and kindProperties/propertyKinds are the
	// two remaining derived kind-metadata tables: a kind's set of
	// extra-categories (and the reverse, a category's member kinds), and a
	// kind's property-key/value map. Built in classifyKinds from the
	// existing Is*/operator-table classifiers rather than a second literal
	// table, so the categories can never drift out of sync with the
	// classifiers that already define what e.g. "keyword" means.
	kindCategories map[SyntaxKind][]SyntaxKindCategory
	categoryKinds  map[SyntaxKindCategory][]SyntaxKind
	kindProperties map[SyntaxKind]map[SyntaxKindProperty]any
)

// SyntaxKindCategory names a group of related kinds, drawn from a closed
// set (the approved constant class the LOSK0006 check validates against).
type SyntaxKindCategory string

const (
	CategoryTrivia     SyntaxKindCategory = "trivia"
	CategoryKeyword    SyntaxKindCategory = "keyword"
	CategoryOperator   SyntaxKindCategory = "operator"
	CategoryLiteral    SyntaxKindCategory = "literal"
	CategoryStatement  SyntaxKindCategory = "statement"
	CategoryExpression SyntaxKindCategory = "expression"
)

// approvedCategories is the constant class LOSK0006 checks category
// assignments against.
var approvedCategories = map[SyntaxKindCategory]bool{
	CategoryTrivia:     true,
	CategoryKeyword:    true,
	CategoryOperator:   true,
	CategoryLiteral:    true,
	CategoryStatement:  true,
	CategoryExpression: true,
}

// SyntaxKindProperty names a scalar property attached to a kind, drawn
// from a closed set (the approved constant class the LOSK0007 check
// validates against).
type SyntaxKindProperty string

const (
	PropertyText        SyntaxKindProperty = "text"
	PropertyBinaryPrec   SyntaxKindProperty = "binary_left_precedence"
	PropertyBinaryAssoc  SyntaxKindProperty = "binary_associativity"
	PropertyUnaryPrec    SyntaxKindProperty = "unary_precedence"
)

// approvedProperties is the constant class LOSK0007 checks property keys
// against.
var approvedProperties = map[SyntaxKindProperty]bool{
	PropertyText:        true,
	PropertyBinaryPrec:   true,
	PropertyBinaryAssoc:  true,
	PropertyUnaryPrec:    true,
}

type kindMeta struct {
	kind SyntaxKind
	name string
	text string // "" if the token's text is not fixed
}

// kindMetaTable is the single source of truth for kind names and fixed
// token spellings. init() builds the name and fixed-text lookups from it,
// and validateKindMetadata reports (LOSK0001) any kind that the keyword or
// operator tables refer to but this table lacks; a declared kind that no
// such table refers to is not checked for an entry.
var kindMetaTable = []kindMeta{
	{End, "end of input", ""},
	{Error, "syntax error", ""},

	{Shebang, "shebang line", ""},
	{LineComment, "line comment", ""},
	{BlockComment, "block comment", ""},
	{Space, "whitespace", ""},

	{Ident, "identifier", ""},
	{Number, "number", ""},
	{Str, "string", ""},

	{And, "keyword `and`", "and"},
	{Break, "keyword `break`", "break"},
	{Do, "keyword `do`", "do"},
	{Else, "keyword `else`", "else"},
	{Elseif, "keyword `elseif`", "elseif"},
	{KwEnd, "keyword `end`", "end"},
	{False, "keyword `false`", "false"},
	{For, "keyword `for`", "for"},
	{Function, "keyword `function`", "function"},
	{Goto, "keyword `goto`", "goto"},
	{If, "keyword `if`", "if"},
	{In, "keyword `in`", "in"},
	{Local, "keyword `local`", "local"},
	{Nil, "keyword `nil`", "nil"},
	{Not, "keyword `not`", "not"},
	{Or, "keyword `or`", "or"},
	{Repeat, "keyword `repeat`", "repeat"},
	{Return, "keyword `return`", "return"},
	{Then, "keyword `then`", "then"},
	{True, "keyword `true`", "true"},
	{Until, "keyword `until`", "until"},
	{While, "keyword `while`", "while"},
	{Continue, "keyword `continue`", "continue"},

	{Plus, "`+`", "+"},
	{Minus, "`-`", "-"},
	{Star, "`*`", "*"},
	{Slash, "`/`", "/"},
	{DSlash, "`//`", "//"},
	{Percent, "`%`", "%"},
	{Caret, "`^`", "^"},
	{Hash, "`#`", "#"},
	{Amp, "`&`", "&"},
	{Tilde, "`~`", "~"},
	{Pipe, "`|`", "|"},
	{LtLt, "`<<`", "<<"},
	{GtGt, "`>>`", ">>"},
	{EqEq, "`==`", "=="},
	{NotEq, "`~=`", "~="},
	{BangEq, "`!=`", "!="},
	{LtEq, "`<=`", "<="},
	{GtEq, "`>=`", ">="},
	{Lt, "`<`", "<"},
	{Gt, "`>`", ">"},
	{Eq, "`=`", "="},
	{LParen, "opening parenthesis", "("},
	{RParen, "closing parenthesis", ")"},
	{LBrace, "opening brace", "{"},
	{RBrace, "closing brace", "}"},
	{LBracket, "opening bracket", "["},
	{RBracket, "closing bracket", "]"},
	{DColon, "`::`", "::"},
	{Semi, "`;`", ";"},
	{Colon, "`:`", ":"},
	{Comma, "`,`", ","},
	{Dot, "`.`", "."},
	{DotDot, "`..`", ".."},
	{Ellipsis, "`...`", "..."},
	{AmpAmp, "`&&`", "&&"},
	{PipePipe, "`||`", "||"},
	{Bang, "`!`", "!"},
	{PlusEq, "`+=`", "+="},
	{MinusEq, "`-=`", "-="},
	{StarEq, "`*=`", "*="},
	{SlashEq, "`/=`", "/="},

	{Chunk, "chunk", ""},
	{Block, "block", ""},
	{LocalStatement, "local statement", ""},
	{AssignStatement, "assignment", ""},
	{CallStatement, "call statement", ""},
	{DoStatement, "do block", ""},
	{WhileStatement, "while loop", ""},
	{RepeatStatement, "repeat loop", ""},
	{IfStatement, "if statement", ""},
	{ElseifClause, "elseif clause", ""},
	{ElseClause, "else clause", ""},
	{NumericForStatement, "numeric for loop", ""},
	{GenericForStatement, "generic for loop", ""},
	{FunctionDeclStatement, "function declaration", ""},
	{LocalFunctionStatement, "local function declaration", ""},
	{ReturnStatement, "return statement", ""},
	{BreakStatement, "break statement", ""},
	{ContinueStatement, "continue statement", ""},
	{GotoStatement, "goto statement", ""},
	{LabelStatement, "label", ""},
	{EmptyStatement, "empty statement", ""},

	{NilLiteral, "nil literal", ""},
	{TrueLiteral, "boolean literal", ""},
	{FalseLiteral, "boolean literal", ""},
	{NumberLiteral, "number literal", ""},
	{StringLiteral, "string literal", ""},
	{VarargExpr, "vararg expression", ""},
	{FunctionExpr, "function expression", ""},
	{NameExpr, "name", ""},
	{IndexExpr, "field access", ""},
	{IndexExprBrack, "index expression", ""},
	{CallExpr, "call expression", ""},
	{MethodCallExpr, "method call", ""},
	{ParenExpr, "parenthesized expression", ""},
	{TableConstructor, "table constructor", ""},
	{TableFieldPos, "table field", ""},
	{TableFieldName, "table field", ""},
	{TableFieldExpr, "table field", ""},
	{UnaryExpr, "unary expression", ""},
	{BinaryExpr, "binary expression", ""},
	{FunctionBody, "function body", ""},
	{ParamList, "parameter list", ""},
	{NameList, "name list", ""},
	{VarList, "variable list", ""},
	{ExprList, "expression list", ""},
	{ArgsParen, "argument list", ""},
	{ArgsTable, "table argument", ""},
	{ArgsString, "string argument", ""},
}

type binaryOpInfo struct {
	op         BinOp
	leftPrec   int
	rightPrec  int // right == left for left-associative, right < left for right-associative
}

type unaryOpInfo struct {
	op   UnOp
	prec int
}

func init() {
	kindNames = make(map[SyntaxKind]string, len(kindMetaTable))
	fixedTokenText = make(map[SyntaxKind]string, len(kindMetaTable))
	for _, m := range kindMetaTable {
		kindNames[m.kind] = m.name
		if m.text != "" {
			fixedTokenText[m.kind] = m.text
		}
	}
	if len(kindNames) == 0 {
		panic("kindmeta: empty kind metadata table")
	}

	keywordTable = map[string]SyntaxKind{
		"and": And, "break": Break, "do": Do, "else": Else,
		"elseif": Elseif, "end": KwEnd, "false": False, "for": For,
		"function": Function, "goto": Goto, "if": If, "in": In,
		"local": Local, "nil": Nil, "not": Not, "or": Or,
		"repeat": Repeat, "return": Return, "then": Then, "true": True,
		"until": Until, "while": While, "continue": Continue,
	}

	buildOperatorTables()
	classifyKinds()

	if diags := validateKindMetadata(); len(diags) > 0 {
		var fatal []Diagnostic
		for _, d := range diags {
			kindMetadataDiagnostics = append(kindMetadataDiagnostics, d)
			if d.Severity == SeverityError {
				fatal = append(fatal, d)
			}
		}
		if len(fatal) > 0 {
			panic("kindmeta: invalid kind metadata: " + fatal[0].String())
		}
	}
}

// classifyKinds derives each kind's extra-categories and properties from
// the classifiers and tables already built above, and their reverse
// (category -> kinds) index. This is the generator's own "annotation"
// step: a real Roslyn-style generator reads attributes off a source kind
// declaration, but since SyntaxKind is a plain Go enum there is nothing to
// reflect on, so the categories are derived from the same Is*/operator
// predicates the rest of the package already trusts.
func classifyKinds() {
	kindCategories = make(map[SyntaxKind][]SyntaxKindCategory)
	categoryKinds = make(map[SyntaxKindCategory][]SyntaxKind)
	kindProperties = make(map[SyntaxKind]map[SyntaxKindProperty]any)

	addCategory := func(kind SyntaxKind, cat SyntaxKindCategory) {
		kindCategories[kind] = append(kindCategories[kind], cat)
		categoryKinds[cat] = append(categoryKinds[cat], kind)
	}
	addProperty := func(kind SyntaxKind, key SyntaxKindProperty, value any) {
		if kindProperties[kind] == nil {
			kindProperties[kind] = make(map[SyntaxKindProperty]any)
		}
		kindProperties[kind][key] = value
	}

	for _, m := range kindMetaTable {
		k := m.kind
		switch {
		case k.IsTrivia():
			addCategory(k, CategoryTrivia)
		case k.IsKeyword():
			addCategory(k, CategoryKeyword)
		case k.IsLiteral():
			addCategory(k, CategoryLiteral)
		case k.IsStmt():
			addCategory(k, CategoryStatement)
		}
		if m.text != "" {
			addProperty(k, PropertyText, m.text)
		}
	}

	for kind, info := range binaryOpTable {
		addCategory(kind, CategoryOperator)
		addProperty(kind, PropertyBinaryPrec, info.leftPrec)
		assoc := "left"
		if info.rightPrec < info.leftPrec {
			assoc = "right"
		}
		addProperty(kind, PropertyBinaryAssoc, assoc)
	}
	for kind, info := range unaryOpTable {
		addCategory(kind, CategoryOperator)
		addProperty(kind, PropertyUnaryPrec, info.prec)
	}

	for _, exprKind := range []SyntaxKind{
		NilLiteral, TrueLiteral, FalseLiteral, NumberLiteral, StringLiteral,
		VarargExpr, FunctionExpr, NameExpr, IndexExpr, IndexExprBrack,
		CallExpr, MethodCallExpr, ParenExpr, TableConstructor, UnaryExpr,
		BinaryExpr,
	} {
		addCategory(exprKind, CategoryExpression)
	}
}

// kindMetadataDiagnostics accumulates the warnings validateKindMetadata
// produced at init time (errors panic instead; see init above). Exposed
// through KindMetadataDiagnostics for callers/tests that want to inspect
// the generator's own health without tripping over a panic.
var kindMetadataDiagnostics []Diagnostic

// KindMetadataDiagnostics returns the kind-metadata generator's own
// validation diagnostics (LOSK0001-LOSK0007), collected once at package
// init. Only warning-severity diagnostics can appear here: an
// error-severity finding panics immediately, since it means this
// package's own static metadata tables are internally inconsistent,
// which is a programmer error, not a runtime condition a caller of this
// library could ever observe or recover from.
func KindMetadataDiagnostics() []Diagnostic {
	return append([]Diagnostic(nil), kindMetadataDiagnostics...)
}

// validateKindMetadata implements the invariant checks spec'd against the
// LOSK0001-LOSK0007 catalog, walking the kind-metadata tables the same
// way a real source generator would validate its own annotations before
// emitting code. These ids are reserved exclusively for this generator;
// lexer/parser diagnostics about a specific source file use the LOLP
// catalog (diagnostic.go) instead.
func validateKindMetadata() []Diagnostic {
	var diags []Diagnostic

	if len(kindMetaTable) == 0 {
		diags = append(diags, NewDiagnostic(LOSK0002, NoLocation(),
			"no annotated SyntaxKind entries found in kindMetaTable").WithSeverity(SeverityWarning))
	}

	seen := make(map[SyntaxKind]bool, len(kindMetaTable))
	for _, m := range kindMetaTable {
		seen[m.kind] = true
	}
	checkFound := func(kind SyntaxKind, from string) {
		if !seen[kind] {
			diags = append(diags, NewDiagnostic(LOSK0001, NoLocation(),
				"SyntaxKind %s (referenced from %s) has no kindMetaTable entry", kind.Name(), from).WithSeverity(SeverityWarning))
		}
	}
	for kind := range keywordTable {
		checkFound(keywordTable[kind], "keywordTable")
	}
	for kind := range binaryOpTable {
		checkFound(kind, "binaryOpTable")
	}
	for kind := range unaryOpTable {
		checkFound(kind, "unaryOpTable")
	}

	for _, m := range kindMetaTable {
		if m.kind.IsTrivia() && m.text != "" {
			diags = append(diags, NewDiagnostic(LOSK0003, NoLocation(),
				"%s is annotated as trivia but also carries fixed token text %q", m.kind.Name(), m.text))
		}
	}

	for kind := range binaryOpTable {
		if fixedTokenText[kind] == "" {
			diags = append(diags, NewDiagnostic(LOSK0004, NoLocation(),
				"operator %s has no fixed token text", kind.Name()))
		}
	}

	for _, kind := range keywordTable {
		if fixedTokenText[kind] == "" {
			diags = append(diags, NewDiagnostic(LOSK0005, NoLocation(),
				"keyword %s has no fixed token text", kind.Name()))
		}
	}

	for _, cats := range kindCategories {
		for _, cat := range cats {
			if !approvedCategories[cat] {
				diags = append(diags, NewDiagnostic(LOSK0006, NoLocation(),
					"category %q is not declared in the SyntaxKindCategory constant class", cat).WithSeverity(SeverityWarning))
			}
		}
	}

	for _, props := range kindProperties {
		for key := range props {
			if !approvedProperties[key] {
				diags = append(diags, NewDiagnostic(LOSK0007, NoLocation(),
					"property %q is not declared in the SyntaxKindProperty constant class", key).WithSeverity(SeverityWarning))
			}
		}
	}

	return diags
}

// LOSK diagnostic codes reserved for the kind-metadata generator's own
// validation (validateKindMetadata above), per the spec's compatibility
// catalog. These never describe a problem in a particular Lua source
// file — for that, see the LOLP catalog in diagnostic.go.
const (
	LOSK0001 = "LOSK0001" // SyntaxKind referenced by a derived table but not found in kindMetaTable
	LOSK0002 = "LOSK0002" // no annotated kinds found
	LOSK0003 = "LOSK0003" // trivia kind is also annotated as a fixed-text token
	LOSK0004 = "LOSK0004" // operator without fixed token text
	LOSK0005 = "LOSK0005" // keyword without fixed token text
	LOSK0006 = "LOSK0006" // category not declared in the SyntaxKindCategory constant class
	LOSK0007 = "LOSK0007" // property not declared in the SyntaxKindProperty constant class
)
