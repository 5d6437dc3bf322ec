package syntax

import (
	"fmt"
	"strings"
)

// GreenNode is a node in the immutable, position-free syntax tree produced
// by lexing and parsing: the "green tree" in Roslyn's terminology. Green
// nodes carry only their own length, not an absolute offset, so the exact
// same *GreenNode can be shared as a child of many different parents (and
// across goroutines) without any of them needing to agree on where it sits
// in a particular source file. RedNode (red.go) is the position-aware
// facade built lazily on top of a GreenNode when a caller actually needs
// offsets.
//
// Every node comes in one of four flavors: leaf (a single token), token
// (a single token carrying its own leading/trailing trivia), inner (a
// production with children), or error (malformed input preserved
// verbatim alongside a diagnostic message).
type GreenNode struct {
	data nodeData
}

// nodeData is the internal representation of a green node, implemented by
// leafNode, tokenNode, innerNode, and errorNode.
type nodeData interface {
	kind() SyntaxKind
	len() int
	span() Span
	text() string
	children() []*GreenNode
	erroneous() bool
	descendants() int
	annotations() []SyntaxAnnotation
	spanlessEq(other nodeData) bool
	clone() nodeData
}

// leafNode is a single token: a keyword, operator, literal, identifier, or
// a piece of trivia (whitespace/comment).
type leafNode struct {
	nodeKind  SyntaxKind
	nodeText  string
	nodeSpan  Span
	nodeAnnot []SyntaxAnnotation
}

func (n *leafNode) kind() SyntaxKind               { return n.nodeKind }
func (n *leafNode) len() int                       { return len(n.nodeText) }
func (n *leafNode) span() Span                      { return n.nodeSpan }
func (n *leafNode) text() string                    { return n.nodeText }
func (n *leafNode) children() []*GreenNode          { return nil }
func (n *leafNode) erroneous() bool                 { return false }
func (n *leafNode) descendants() int                { return 1 }
func (n *leafNode) annotations() []SyntaxAnnotation  { return n.nodeAnnot }
func (n *leafNode) spanlessEq(other nodeData) bool {
	if o, ok := other.(*leafNode); ok {
		return n.nodeKind == o.nodeKind && n.nodeText == o.nodeText
	}
	return false
}
func (n *leafNode) clone() nodeData {
	return &leafNode{
		nodeKind:  n.nodeKind,
		nodeText:  n.nodeText,
		nodeSpan:  n.nodeSpan,
		nodeAnnot: append([]SyntaxAnnotation(nil), n.nodeAnnot...),
	}
}

// tokenNode is a leaf token carrying its leading/trailing trivia directly
// rather than as separate flat siblings. WithLeadingTrivia/
// WithTrailingTrivia build one from a plain leaf. The parser itself
// (lex in parser.go) keeps emitting trivia as ordinary flat siblings of
// the tokens they surround -- that representation is simpler to build
// incrementally token-by-token and every existing sibling/leaf-navigation
// accessor in red.go already knows how to skip over it. tokenNode exists
// for callers assembling or rewriting a tree by hand (a pretty-printer, a
// tree-construction API) that want a token's trivia to travel with it
// instead of living beside it.
type tokenNode struct {
	nodeKind  SyntaxKind
	nodeText  string
	leading   []*GreenNode
	trailing  []*GreenNode
	nodeSpan  Span
	nodeAnnot []SyntaxAnnotation
}

func (n *tokenNode) kind() SyntaxKind      { return n.nodeKind }
func (n *tokenNode) len() int {
	total := len(n.nodeText)
	for _, t := range n.leading {
		total += t.Len()
	}
	for _, t := range n.trailing {
		total += t.Len()
	}
	return total
}
func (n *tokenNode) span() Span                      { return n.nodeSpan }
func (n *tokenNode) text() string                    { return n.nodeText }
func (n *tokenNode) children() []*GreenNode          { return nil }
func (n *tokenNode) erroneous() bool                 { return false }
func (n *tokenNode) descendants() int                { return 1 }
func (n *tokenNode) annotations() []SyntaxAnnotation { return n.nodeAnnot }
func (n *tokenNode) spanlessEq(other nodeData) bool {
	o, ok := other.(*tokenNode)
	if !ok || n.nodeKind != o.nodeKind || n.nodeText != o.nodeText ||
		len(n.leading) != len(o.leading) || len(n.trailing) != len(o.trailing) {
		return false
	}
	for i := range n.leading {
		if !n.leading[i].SpanlessEq(o.leading[i]) {
			return false
		}
	}
	for i := range n.trailing {
		if !n.trailing[i].SpanlessEq(o.trailing[i]) {
			return false
		}
	}
	return true
}
func (n *tokenNode) clone() nodeData {
	return &tokenNode{
		nodeKind:  n.nodeKind,
		nodeText:  n.nodeText,
		leading:   cloneTrivia(n.leading),
		trailing:  cloneTrivia(n.trailing),
		nodeSpan:  n.nodeSpan,
		nodeAnnot: append([]SyntaxAnnotation(nil), n.nodeAnnot...),
	}
}

func cloneTrivia(trivia []*GreenNode) []*GreenNode {
	if trivia == nil {
		return nil
	}
	out := make([]*GreenNode, len(trivia))
	for i, t := range trivia {
		out[i] = t.Clone()
	}
	return out
}

// innerNode is a production (a statement, expression, block, etc.) with a
// sequence of children. Aggregated metadata (length, descendant count,
// erroneous flag) is cached at construction time so callers never need to
// walk the whole subtree just to ask "is there an error in here".
type innerNode struct {
	nodeKind        SyntaxKind
	nodeLen         int
	nodeSpan        Span
	nodeDescendants int
	nodeErroneous   bool
	upper           uint64 // upper bound of the numbering range assigned to this subtree
	nodeChildren    []*GreenNode
	nodeAnnot       []SyntaxAnnotation
}

func (n *innerNode) kind() SyntaxKind              { return n.nodeKind }
func (n *innerNode) len() int                      { return n.nodeLen }
func (n *innerNode) span() Span                     { return n.nodeSpan }
func (n *innerNode) text() string                   { return "" }
func (n *innerNode) children() []*GreenNode         { return n.nodeChildren }
func (n *innerNode) erroneous() bool                { return n.nodeErroneous }
func (n *innerNode) descendants() int               { return n.nodeDescendants }
func (n *innerNode) annotations() []SyntaxAnnotation { return n.nodeAnnot }
func (n *innerNode) spanlessEq(other nodeData) bool {
	o, ok := other.(*innerNode)
	if !ok {
		return false
	}
	if n.nodeKind != o.nodeKind || n.nodeLen != o.nodeLen ||
		n.nodeDescendants != o.nodeDescendants || n.nodeErroneous != o.nodeErroneous ||
		len(n.nodeChildren) != len(o.nodeChildren) {
		return false
	}
	for i, child := range n.nodeChildren {
		if !child.SpanlessEq(o.nodeChildren[i]) {
			return false
		}
	}
	return true
}
func (n *innerNode) clone() nodeData {
	children := make([]*GreenNode, len(n.nodeChildren))
	for i, c := range n.nodeChildren {
		children[i] = c.Clone()
	}
	return &innerNode{
		nodeKind:        n.nodeKind,
		nodeLen:         n.nodeLen,
		nodeSpan:        n.nodeSpan,
		nodeDescendants: n.nodeDescendants,
		nodeErroneous:   n.nodeErroneous,
		upper:           n.upper,
		nodeChildren:    children,
		nodeAnnot:       append([]SyntaxAnnotation(nil), n.nodeAnnot...),
	}
}

// errorNode preserves malformed source text verbatim alongside the
// *SyntaxError describing what went wrong, so a tool built on this tree
// can still show the user their original (broken) input.
type errorNode struct {
	nodeText  string
	error     *SyntaxError
	nodeAnnot []SyntaxAnnotation
}

func (n *errorNode) kind() SyntaxKind               { return Error }
func (n *errorNode) len() int                       { return len(n.nodeText) }
func (n *errorNode) span() Span                      { return n.error.Span }
func (n *errorNode) text() string                    { return n.nodeText }
func (n *errorNode) children() []*GreenNode          { return nil }
func (n *errorNode) erroneous() bool                 { return true }
func (n *errorNode) descendants() int                { return 1 }
func (n *errorNode) annotations() []SyntaxAnnotation  { return n.nodeAnnot }
func (n *errorNode) spanlessEq(other nodeData) bool {
	if o, ok := other.(*errorNode); ok {
		return n.nodeText == o.nodeText && n.error.spanlessEq(o.error)
	}
	return false
}
func (n *errorNode) clone() nodeData {
	return &errorNode{
		nodeText:  n.nodeText,
		error:     n.error.Clone(),
		nodeAnnot: append([]SyntaxAnnotation(nil), n.nodeAnnot...),
	}
}

// SyntaxError is a lexical or syntactic problem attached directly to an
// error node while the tree is being built. It is the lightweight,
// tree-local counterpart to Diagnostic (diagnostic.go), which is what a
// caller collects for reporting; GreenNode.Diagnostics converts a tree's errors
// into a flat []Diagnostic.
type SyntaxError struct {
	Span    Span
	Message string
	Hints   []string
	// Code is the LOLP diagnostic id (diagnostic.go) identifying what kind
	// of problem this is, e.g. LOLP0001 for an unterminated string. Empty
	// for errors that don't yet carry a specific code (diagnosticFromSyntaxError
	// falls back to LOLP0000 in that case).
	Code string
}

// NewSyntaxError creates a new detached syntax error with no specific
// diagnostic code. Prefer NewSyntaxErrorWithCode at call sites that know
// which LOLP id applies.
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{Span: Detached(), Message: message}
}

// NewSyntaxErrorWithCode creates a new detached syntax error carrying a
// specific LOLP diagnostic code (diagnostic.go).
func NewSyntaxErrorWithCode(code, message string) *SyntaxError {
	return &SyntaxError{Span: Detached(), Message: message, Code: code}
}

// AddHint adds a user-presentable hint to this error.
func (e *SyntaxError) AddHint(hint string) {
	e.Hints = append(e.Hints, hint)
}

// Clone creates a copy of the error.
func (e *SyntaxError) Clone() *SyntaxError {
	return &SyntaxError{
		Span:    e.Span,
		Message: e.Message,
		Hints:   append([]string(nil), e.Hints...),
		Code:    e.Code,
	}
}

func (e *SyntaxError) spanlessEq(other *SyntaxError) bool {
	if e.Message != other.Message || len(e.Hints) != len(other.Hints) {
		return false
	}
	for i, h := range e.Hints {
		if h != other.Hints[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (e *SyntaxError) String() string { return e.Message }

// Error implements the error interface.
func (e *SyntaxError) Error() string { return e.Message }

// --- GreenNode constructors ---

// Leaf creates a new leaf node of the given kind and text.
func Leaf(kind SyntaxKind, text string) *GreenNode {
	if kind == Error {
		panic("syntax: cannot create leaf node with Error kind; use ErrorNode instead")
	}
	return &GreenNode{data: &leafNode{nodeKind: kind, nodeText: text, nodeSpan: Detached()}}
}

// Inner creates a new inner node with the given children, computing its
// aggregated length, descendant count, and erroneous flag from them.
func Inner(kind SyntaxKind, children []*GreenNode) *GreenNode {
	if kind == Error {
		panic("syntax: cannot create inner node with Error kind; use ErrorNode instead")
	}

	var totalLen int
	descendants := 1
	erroneous := false
	for _, child := range children {
		totalLen += child.Len()
		descendants += child.Descendants()
		erroneous = erroneous || child.Erroneous()
	}

	return &GreenNode{
		data: &innerNode{
			nodeKind:        kind,
			nodeLen:         totalLen,
			nodeSpan:        Detached(),
			nodeDescendants: descendants,
			nodeErroneous:   erroneous,
			nodeChildren:    children,
		},
	}
}

// ErrorNode creates a new error node preserving text verbatim.
func ErrorNode(err *SyntaxError, text string) *GreenNode {
	return &GreenNode{data: &errorNode{nodeText: text, error: err}}
}

// Placeholder creates a dummy, empty node of the given kind. The parser
// does not call it: a missing token is marked with an empty error node
// instead (see Parser.expectedAt).
func Placeholder(kind SyntaxKind) *GreenNode {
	if kind == Error {
		panic("syntax: cannot create error placeholder")
	}
	return &GreenNode{data: &leafNode{nodeKind: kind, nodeText: "", nodeSpan: Detached()}}
}

// Default creates the zero-value node (an empty End-kind leaf).
func Default() *GreenNode { return Leaf(End, "") }

// --- GreenNode accessors ---

func (n *GreenNode) Kind() SyntaxKind { return n.data.kind() }
func (n *GreenNode) IsEmpty() bool    { return n.Len() == 0 }
func (n *GreenNode) Len() int         { return n.data.len() }
func (n *GreenNode) Span() Span       { return n.data.span() }

// Text returns the node's own text if it is a leaf or error node, and the
// empty string for inner nodes (use IntoText to recursively reconstruct
// an inner node's full source text).
func (n *GreenNode) Text() string { return n.data.text() }

// IntoText recursively reconstructs this node's full source text. For a
// token carrying its own leading/trailing trivia (see WithLeadingTrivia),
// that trivia is included in leading-then-text-then-trailing order.
func (n *GreenNode) IntoText() string {
	switch d := n.data.(type) {
	case *innerNode:
		var sb strings.Builder
		for _, child := range d.nodeChildren {
			sb.WriteString(child.IntoText())
		}
		return sb.String()
	case *tokenNode:
		var sb strings.Builder
		for _, t := range d.leading {
			sb.WriteString(t.IntoText())
		}
		sb.WriteString(d.nodeText)
		for _, t := range d.trailing {
			sb.WriteString(t.IntoText())
		}
		return sb.String()
	default:
		return n.data.text()
	}
}

// WithLeadingTrivia returns a new token node equal to n but with leading
// attached directly as its leading trivia, replacing any leading trivia n
// already carried. Panics if n is not a leaf/token node: trivia attaches
// to tokens, not to inner or error nodes.
func (n *GreenNode) WithLeadingTrivia(leading []*GreenNode) *GreenNode {
	kind, text, _, trailing := n.tokenParts()
	return &GreenNode{data: &tokenNode{
		nodeKind: kind,
		nodeText: text,
		leading:  append([]*GreenNode(nil), leading...),
		trailing: trailing,
		nodeSpan: Detached(),
	}}
}

// WithTrailingTrivia returns a new token node equal to n but with
// trailing attached directly as its trailing trivia, replacing any
// trailing trivia n already carried.
func (n *GreenNode) WithTrailingTrivia(trailing []*GreenNode) *GreenNode {
	kind, text, leading, _ := n.tokenParts()
	return &GreenNode{data: &tokenNode{
		nodeKind: kind,
		nodeText: text,
		leading:  leading,
		trailing: append([]*GreenNode(nil), trailing...),
		nodeSpan: Detached(),
	}}
}

func (n *GreenNode) tokenParts() (kind SyntaxKind, text string, leading, trailing []*GreenNode) {
	switch d := n.data.(type) {
	case *leafNode:
		return d.nodeKind, d.nodeText, nil, nil
	case *tokenNode:
		return d.nodeKind, d.nodeText, d.leading, d.trailing
	default:
		panic("syntax: trivia can only attach to a leaf/token node")
	}
}

// LeadingTrivia returns the trivia attached directly to this token via
// WithLeadingTrivia, or nil if it carries none (including for plain
// leaves and for any non-token node).
func (n *GreenNode) LeadingTrivia() []*GreenNode {
	if t, ok := n.data.(*tokenNode); ok {
		return t.leading
	}
	return nil
}

// TrailingTrivia returns the trivia attached directly to this token via
// WithTrailingTrivia, or nil if it carries none.
func (n *GreenNode) TrailingTrivia() []*GreenNode {
	if t, ok := n.data.(*tokenNode); ok {
		return t.trailing
	}
	return nil
}

// Children returns this node's direct children (nil for leaves/errors).
func (n *GreenNode) Children() []*GreenNode { return n.data.children() }

// Erroneous reports whether this node or any descendant is an error node.
func (n *GreenNode) Erroneous() bool { return n.data.erroneous() }

// Descendants returns the size of the subtree rooted here, including
// itself.
func (n *GreenNode) Descendants() int { return n.data.descendants() }

// Annotations returns the annotations attached directly to this node.
func (n *GreenNode) Annotations() []SyntaxAnnotation { return n.data.annotations() }

// WithAnnotation returns a shallow copy of the node with an additional
// annotation attached. Because GreenNode is otherwise treated as
// immutable and freely shared, attaching an annotation never mutates the
// original node in place.
func (n *GreenNode) WithAnnotation(a SyntaxAnnotation) *GreenNode {
	clone := n.Clone()
	switch d := clone.data.(type) {
	case *leafNode:
		d.nodeAnnot = append(d.nodeAnnot, a)
	case *tokenNode:
		d.nodeAnnot = append(d.nodeAnnot, a)
	case *innerNode:
		d.nodeAnnot = append(d.nodeAnnot, a)
	case *errorNode:
		d.nodeAnnot = append(d.nodeAnnot, a)
	}
	return clone
}

// Errors returns every *SyntaxError found in this node's subtree.
func (n *GreenNode) Errors() []*SyntaxError {
	if !n.Erroneous() {
		return nil
	}
	if err, ok := n.data.(*errorNode); ok {
		return []*SyntaxError{err.error}
	}
	var errs []*SyntaxError
	for _, child := range n.Children() {
		if child.Erroneous() {
			errs = append(errs, child.Errors()...)
		}
	}
	return errs
}

// Diagnostics flattens this subtree's *SyntaxErrors into reportable
// Diagnostics, anchoring each at its node's span.
func (n *GreenNode) Diagnostics() []Diagnostic {
	if !n.Erroneous() {
		return nil
	}
	if err, ok := n.data.(*errorNode); ok {
		return []Diagnostic{diagnosticFromSyntaxError(err.error, err.error.Span)}
	}
	var out []Diagnostic
	for _, child := range n.Children() {
		if child.Erroneous() {
			out = append(out, child.Diagnostics()...)
		}
	}
	return out
}

// Hint adds a user-presentable hint if this is an error node.
func (n *GreenNode) Hint(hint string) {
	if err, ok := n.data.(*errorNode); ok {
		err.error.AddHint(hint)
	}
}

// Synthesize sets a synthetic span for this node and all its descendants,
// for trees built outside of the normal lex/parse/Numberize pipeline
// (e.g. in tests).
func (n *GreenNode) Synthesize(span Span) {
	switch d := n.data.(type) {
	case *leafNode:
		d.nodeSpan = span
	case *tokenNode:
		d.nodeSpan = span
		for _, t := range d.leading {
			t.Synthesize(span)
		}
		for _, t := range d.trailing {
			t.Synthesize(span)
		}
	case *innerNode:
		d.nodeSpan = span
		d.upper = span.Number()
		for _, child := range d.nodeChildren {
			child.Synthesize(span)
		}
	case *errorNode:
		d.error.Span = span
	}
}

// SpanlessEq reports whether two nodes are structurally equal, ignoring
// spans and annotations.
func (n *GreenNode) SpanlessEq(other *GreenNode) bool {
	return n.data.spanlessEq(other.data)
}

// Clone creates a deep copy of the node.
func (n *GreenNode) Clone() *GreenNode { return &GreenNode{data: n.data.clone()} }

// IsLeaf reports whether this is a leaf (token) node, including a token
// carrying its own leading/trailing trivia via WithLeadingTrivia.
func (n *GreenNode) IsLeaf() bool {
	switch n.data.(type) {
	case *leafNode, *tokenNode:
		return true
	}
	return false
}

// --- parser-internal mutators ---

// ConvertToKind converts the node to a different (non-Error) kind,
// keeping its text/children as-is. Used by the parser to retroactively
// relabel a node once enough lookahead resolves an ambiguity.
func (n *GreenNode) ConvertToKind(kind SyntaxKind) {
	if kind == Error {
		panic("syntax: cannot convert to Error kind; use ConvertToError instead")
	}
	switch d := n.data.(type) {
	case *leafNode:
		d.nodeKind = kind
	case *tokenNode:
		d.nodeKind = kind
	case *innerNode:
		d.nodeKind = kind
	case *errorNode:
		panic("syntax: cannot convert an error node to another kind")
	}
}

// ConvertToError converts the node into an error node carrying message,
// preserving its original text.
func (n *GreenNode) ConvertToError(message string) {
	n.ConvertToErrorWithCode(LOLP0000, message)
}

// ConvertToErrorWithCode is ConvertToError but attaches a specific LOLP
// diagnostic code instead of the uncategorized default.
func (n *GreenNode) ConvertToErrorWithCode(code, message string) {
	if n.Kind() != Error {
		n.data = &errorNode{nodeText: n.IntoText(), error: NewSyntaxErrorWithCode(code, message)}
	}
}

// Expected converts the node to an error stating that expected was
// expected instead.
func (n *GreenNode) Expected(expected string) {
	kind := n.Kind()
	n.ConvertToErrorWithCode(LOLP0005, fmt.Sprintf("expected %s, found %s", expected, kind.Name()))
	if kind.IsKeyword() && (expected == "identifier" || expected == "<name>") {
		text := n.Text()
		n.Hint(fmt.Sprintf("%q is a reserved word and cannot be used as a name", text))
	}
}

// Unexpected converts the node to an error stating it was unexpected.
func (n *GreenNode) Unexpected() {
	n.ConvertToErrorWithCode(LOLP0006, fmt.Sprintf("unexpected %s", n.Kind().Name()))
}

// Upper returns the upper bound of assigned span numbers in this subtree.
func (n *GreenNode) Upper() uint64 {
	switch d := n.data.(type) {
	case *leafNode:
		return d.nodeSpan.Number() + 1
	case *tokenNode:
		return d.nodeSpan.Number() + 1
	case *innerNode:
		return d.upper
	case *errorNode:
		return d.error.Span.Number() + 1
	}
	return 0
}

// SetSpan directly sets the span on a leaf, token, or error node.
func (n *GreenNode) SetSpan(span Span) {
	switch d := n.data.(type) {
	case *leafNode:
		d.nodeSpan = span
	case *tokenNode:
		d.nodeSpan = span
	case *errorNode:
		d.error.Span = span
	}
}

// ChildrenMut exposes the live children slice of an inner node for
// in-place parser edits. Returns nil for leaf/error nodes.
func (n *GreenNode) ChildrenMut() []*GreenNode {
	if inner, ok := n.data.(*innerNode); ok {
		return inner.nodeChildren
	}
	return nil
}

// --- SyntaxList specialization ---

// syntaxListArity classifies which specialized representation a
// SyntaxList picked for its children, mirroring create_list's "cheapest
// representation" rule: lists of one, two, or three children avoid a
// backing slice entirely.
type syntaxListArity uint8

const (
	listEmpty syntaxListArity = iota
	listOneChild
	listTwoChildren
	listThreeChildren
	listManyChildren
)

// maxSlotCount is the capped value SlotCount reports once a list holds
// more children than fit in a byte. GetSlot is never capped, so it
// remains the only way to reach slots past this count.
const maxSlotCount = 255

// SyntaxList is the specialized representation of a homogeneous ordered
// sequence of green children: a statement list, an argument list, the
// fields of a table constructor, and so on. NewSyntaxList picks
// WithOneChild, WithTwoChildren, WithThreeChildren, or WithManyChildren
// by the number of children given. A WithManyChildren list is further
// classified as separated if its slots alternate node/token starting
// with a node, the shape produced by comma- or semicolon-delimited
// productions such as table fields or call arguments.
type SyntaxList struct {
	kind      SyntaxKind
	arity     syntaxListArity
	one       *GreenNode
	two       [2]*GreenNode
	three     [3]*GreenNode
	many      []*GreenNode
	separated bool
}

// NewSyntaxList builds a SyntaxList of kind wrapping children.
func NewSyntaxList(kind SyntaxKind, children []*GreenNode) *SyntaxList {
	switch len(children) {
	case 0:
		return &SyntaxList{kind: kind, arity: listEmpty}
	case 1:
		return &SyntaxList{kind: kind, arity: listOneChild, one: children[0]}
	case 2:
		return &SyntaxList{kind: kind, arity: listTwoChildren, two: [2]*GreenNode{children[0], children[1]}}
	case 3:
		return &SyntaxList{kind: kind, arity: listThreeChildren, three: [3]*GreenNode{children[0], children[1], children[2]}}
	default:
		many := append([]*GreenNode(nil), children...)
		return &SyntaxList{kind: kind, arity: listManyChildren, many: many, separated: isSeparatedSlots(many)}
	}
}

// isSeparatedSlots reports whether slots alternate node/token starting
// with a node: slot 0, 2, 4, ... are nodes (not plain tokens) and slots
// 1, 3, 5, ... are tokens. A list of fewer than two slots is never
// separated.
func isSeparatedSlots(slots []*GreenNode) bool {
	if len(slots) <= 1 {
		return false
	}
	for i, slot := range slots {
		wantToken := i%2 == 1
		if slot.IsLeaf() != wantToken {
			return false
		}
	}
	return true
}

// Kind returns the SyntaxKind this list was built for.
func (l *SyntaxList) Kind() SyntaxKind { return l.kind }

// SlotCount returns the number of slots, capped at maxSlotCount; a list
// with more children than that reports 255, and GetSlot is the virtual
// accessor callers fall through to for the rest.
func (l *SyntaxList) SlotCount() int {
	if n := l.slotCount(); n > maxSlotCount {
		return maxSlotCount
	} else {
		return n
	}
}

func (l *SyntaxList) slotCount() int {
	switch l.arity {
	case listEmpty:
		return 0
	case listOneChild:
		return 1
	case listTwoChildren:
		return 2
	case listThreeChildren:
		return 3
	default:
		return len(l.many)
	}
}

// GetSlot returns the child at index i, or nil if i is out of range.
// Unlike SlotCount, GetSlot is never capped.
func (l *SyntaxList) GetSlot(i int) *GreenNode {
	if i < 0 {
		return nil
	}
	switch l.arity {
	case listEmpty:
		return nil
	case listOneChild:
		if i == 0 {
			return l.one
		}
	case listTwoChildren:
		if i < 2 {
			return l.two[i]
		}
	case listThreeChildren:
		if i < 3 {
			return l.three[i]
		}
	default:
		if i < len(l.many) {
			return l.many[i]
		}
	}
	return nil
}

// IsSeparated reports whether this is a separated list: a
// WithManyChildren list whose slots alternate node/token starting with a
// node, such as comma-delimited table fields or call arguments.
func (l *SyntaxList) IsSeparated() bool { return l.separated }

// Children returns the list's slots as a plain slice, materializing one
// for the fixed-arity representations.
func (l *SyntaxList) Children() []*GreenNode {
	switch l.arity {
	case listEmpty:
		return nil
	case listOneChild:
		return []*GreenNode{l.one}
	case listTwoChildren:
		return []*GreenNode{l.two[0], l.two[1]}
	case listThreeChildren:
		return []*GreenNode{l.three[0], l.three[1], l.three[2]}
	default:
		return l.many
	}
}

// SeparatedElements returns the element slots of a separated list (even
// indices), skipping the separator tokens, or nil if the list isn't
// separated.
func (l *SyntaxList) SeparatedElements() []*GreenNode {
	if !l.separated {
		return nil
	}
	children := l.Children()
	elems := make([]*GreenNode, 0, (len(children)+1)/2)
	for i, c := range children {
		if i%2 == 0 {
			elems = append(elems, c)
		}
	}
	return elems
}

// SeparatedSeparators returns the separator-token slots of a separated
// list (odd indices), or nil if the list isn't separated.
func (l *SyntaxList) SeparatedSeparators() []*GreenNode {
	if !l.separated {
		return nil
	}
	children := l.Children()
	seps := make([]*GreenNode, 0, len(children)/2)
	for i, c := range children {
		if i%2 == 1 {
			seps = append(seps, c)
		}
	}
	return seps
}

// List builds the specialized SyntaxList view of this node's children.
func (n *GreenNode) List() *SyntaxList { return NewSyntaxList(n.Kind(), n.Children()) }

// String implements fmt.Stringer for debugging.
func (n *GreenNode) String() string {
	switch d := n.data.(type) {
	case *leafNode:
		return fmt.Sprintf("%s: %q", d.nodeKind, d.nodeText)
	case *tokenNode:
		return fmt.Sprintf("%s: %q (leading=%d, trailing=%d)", d.nodeKind, d.nodeText, len(d.leading), len(d.trailing))
	case *innerNode:
		return fmt.Sprintf("%s: %d", d.nodeKind, d.nodeLen)
	case *errorNode:
		return fmt.Sprintf("Error: %q (%s)", d.nodeText, d.error.Message)
	}
	return "unknown"
}

// --- numbering ---

// Unnumberable indicates that a subtree cannot be numbered within a given
// interval (it needs more span numbers than the interval has room for).
type Unnumberable struct{}

func (Unnumberable) Error() string { return "syntax: cannot number within this interval" }

// NumberingResult is the result type for span assignment operations.
type NumberingResult error

// Numberize assigns spans to every node in the subtree within [within[0],
// within[1]), so that later edits can renumber only the affected region
// without perturbing span numbers elsewhere in the file.
func (n *GreenNode) Numberize(id FileId, within [2]uint64) NumberingResult {
	if within[0] >= within[1] {
		return Unnumberable{}
	}

	mid := (within[0] + within[1]) / 2
	midSpan, ok := SpanFromNumber(id, mid)
	if !ok {
		return Unnumberable{}
	}

	switch d := n.data.(type) {
	case *leafNode:
		d.nodeSpan = midSpan
	case *tokenNode:
		d.nodeSpan = midSpan
	case *innerNode:
		return d.numberize(id, nil, within)
	case *errorNode:
		d.error.Span = midSpan
	}
	return nil
}

func (inner *innerNode) numberize(id FileId, rangeIdx *[2]int, within [2]uint64) NumberingResult {
	var descendants int
	if rangeIdx != nil {
		if rangeIdx[0] >= rangeIdx[1] {
			return nil
		}
		for _, child := range inner.nodeChildren[rangeIdx[0]:rangeIdx[1]] {
			descendants += child.Descendants()
		}
	} else {
		descendants = inner.nodeDescendants
	}

	space := within[1] - within[0]
	stride := space / (2 * uint64(descendants))
	if stride == 0 {
		stride = space / uint64(inner.nodeDescendants)
		if stride == 0 {
			return Unnumberable{}
		}
	}

	start := within[0]
	if rangeIdx == nil {
		end := start + stride
		midSpan, _ := SpanFromNumber(id, (start+end)/2)
		inner.nodeSpan = midSpan
		inner.upper = within[1]
		start = end
	}

	childStart, childEnd := 0, len(inner.nodeChildren)
	if rangeIdx != nil {
		childStart, childEnd = rangeIdx[0], rangeIdx[1]
	}

	for _, child := range inner.nodeChildren[childStart:childEnd] {
		end := start + uint64(child.Descendants())*stride
		if err := child.Numberize(id, [2]uint64{start, end}); err != nil {
			return err
		}
		start = end
	}
	return nil
}

// ReplaceChildren replaces children[rangeStart:rangeEnd] with replacement,
// renumbering the affected span range with exponential backtracking if the
// immediately available span budget is too tight.
func (n *GreenNode) ReplaceChildren(rangeStart, rangeEnd int, replacement []*GreenNode) NumberingResult {
	inner, ok := n.data.(*innerNode)
	if !ok {
		return nil
	}
	return inner.replaceChildren(rangeStart, rangeEnd, replacement)
}

func (inner *innerNode) replaceChildren(rangeStart, rangeEnd int, replacement []*GreenNode) NumberingResult {
	id := inner.nodeSpan.Id()
	if id == NoFile {
		return Unnumberable{}
	}

	replacementStart, replacementEnd := 0, len(replacement)

	for rangeStart < rangeEnd && replacementStart < replacementEnd &&
		inner.nodeChildren[rangeStart].SpanlessEq(replacement[replacementStart]) {
		rangeStart++
		replacementStart++
	}
	for rangeStart < rangeEnd && replacementStart < replacementEnd &&
		inner.nodeChildren[rangeEnd-1].SpanlessEq(replacement[replacementEnd-1]) {
		rangeEnd--
		replacementEnd--
	}

	actualReplacement := replacement[replacementStart:replacementEnd]
	superseded := inner.nodeChildren[rangeStart:rangeEnd]

	var replacementLen, supersededLen int
	for _, r := range actualReplacement {
		replacementLen += r.Len()
	}
	for _, s := range superseded {
		supersededLen += s.Len()
	}
	inner.nodeLen = inner.nodeLen + replacementLen - supersededLen

	var replacementDesc, supersededDesc int
	for _, r := range actualReplacement {
		replacementDesc += r.Descendants()
	}
	for _, s := range superseded {
		supersededDesc += s.Descendants()
	}
	inner.nodeDescendants = inner.nodeDescendants + replacementDesc - supersededDesc

	erroneous := false
	for _, r := range actualReplacement {
		if r.Erroneous() {
			erroneous = true
			break
		}
	}
	if !erroneous && inner.nodeErroneous {
		for _, c := range inner.nodeChildren[:rangeStart] {
			if c.Erroneous() {
				erroneous = true
				break
			}
		}
		if !erroneous {
			for _, c := range inner.nodeChildren[rangeEnd:] {
				if c.Erroneous() {
					erroneous = true
					break
				}
			}
		}
	}
	inner.nodeErroneous = erroneous

	newChildren := make([]*GreenNode, 0, len(inner.nodeChildren)-len(superseded)+len(actualReplacement))
	newChildren = append(newChildren, inner.nodeChildren[:rangeStart]...)
	newChildren = append(newChildren, actualReplacement...)
	newChildren = append(newChildren, inner.nodeChildren[rangeEnd:]...)
	inner.nodeChildren = newChildren

	rangeEnd = rangeStart + len(actualReplacement)

	maxLeft := rangeStart
	maxRight := len(inner.nodeChildren) - rangeEnd
	left, right := 0, 0

	for {
		renumberStart := rangeStart - left
		renumberEnd := rangeEnd + right

		var startNumber uint64
		if renumberStart > 0 {
			startNumber = inner.nodeChildren[renumberStart-1].Upper()
		} else {
			startNumber = inner.nodeSpan.Number() + 1
		}

		var endNumber uint64
		if renumberEnd < len(inner.nodeChildren) {
			endNumber = inner.nodeChildren[renumberEnd].Span().Number()
		} else {
			endNumber = inner.upper
		}

		rangeIdxVal := [2]int{renumberStart, renumberEnd}
		if err := inner.numberize(id, &rangeIdxVal, [2]uint64{startNumber, endNumber}); err == nil {
			return nil
		}

		if left == maxLeft && right == maxRight {
			return Unnumberable{}
		}
		left = minInt((left+1)*2, maxLeft)
		right = minInt((right+1)*2, maxRight)
	}
}

// UpdateParent re-derives this node's aggregated length/descendant/error
// metadata after one of its children changed.
func (n *GreenNode) UpdateParent(prevLen, newLen, prevDescendants, newDescendants int) {
	if inner, ok := n.data.(*innerNode); ok {
		inner.nodeLen = inner.nodeLen + newLen - prevLen
		inner.nodeDescendants = inner.nodeDescendants + newDescendants - prevDescendants
		inner.nodeErroneous = false
		for _, child := range inner.nodeChildren {
			if child.Erroneous() {
				inner.nodeErroneous = true
				break
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
