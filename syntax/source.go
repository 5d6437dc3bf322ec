package syntax

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// TextSpan is a half-open byte range [Start, End) into a SourceText.
// Unlike Span (span.go), which is a compact, renumbering-friendly token
// meant to survive edits, TextSpan is a plain byte range used wherever a
// concrete offset pair is actually wanted (diagnostics rendering, external
// interop).
type TextSpan struct {
	Start int
	End   int
}

// NewTextSpan builds a TextSpan, swapping the bounds if given reversed.
func NewTextSpan(start, end int) TextSpan {
	if start > end {
		start, end = end, start
	}
	return TextSpan{Start: start, End: end}
}

// Length returns the number of bytes the span covers.
func (s TextSpan) Length() int { return s.End - s.Start }

// IsEmpty reports whether the span covers zero bytes.
func (s TextSpan) IsEmpty() bool { return s.Start == s.End }

// Contains reports whether the span contains the given offset.
func (s TextSpan) Contains(offset int) bool { return offset >= s.Start && offset < s.End }

// OverlapsWith reports whether two spans share at least one byte.
func (s TextSpan) OverlapsWith(other TextSpan) bool {
	return s.Start < other.End && other.Start < s.End
}

// String implements fmt.Stringer.
func (s TextSpan) String() string { return fmt.Sprintf("[%d..%d)", s.Start, s.End) }

// LinePosition is a zero-indexed line and character offset within a line.
// Character here means byte offset into the line's text; use
// LineIndex.ByteToUTF16LineColumn for LSP-style UTF-16 columns.
type LinePosition struct {
	Line      int
	Character int
}

// String implements fmt.Stringer.
func (p LinePosition) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Character) }

// FileLinePositionSpan locates a range by path and line/column rather than
// by byte offset, for diagnostics about files this package did not itself
// parse (Diagnostic.Location's "external" form).
type FileLinePositionSpan struct {
	Path  string
	Start LinePosition
	End   LinePosition
}

// String implements fmt.Stringer.
func (f FileLinePositionSpan) String() string {
	return fmt.Sprintf("%s:%s-%s", f.Path, f.Start, f.End)
}

// TextLine is a single line's byte span together with its zero-indexed
// line number.
type TextLine struct {
	Span       TextSpan
	LineNumber int
}

// TextLineFromSpan validates that span lies within a [0, textLen] bound
// and builds a TextLine. This is a structural/programmer-error boundary
// per this package's error-handling policy: a misaligned span here means
// the caller (or this package) computed an offset incorrectly, so it
// panics rather than returning an error.
func TextLineFromSpan(span TextSpan, lineNumber, textLen int) TextLine {
	if span.Start < 0 || span.End > textLen || span.Start > span.End {
		panic(fmt.Sprintf("syntax: TextLineFromSpan: span %v out of bounds for text of length %d", span, textLen))
	}
	if lineNumber < 0 {
		panic("syntax: TextLineFromSpan: negative line number")
	}
	return TextLine{Span: span, LineNumber: lineNumber}
}

// validateLineAlignment panics if start is not a known line start or end
// falls before start, catching an index miscomputation (e.g. one that
// forgot a multi-byte line break's real length) before it silently
// produces a line span that straddles a break.
func (l *LineIndex) validateLineAlignment(line int, span TextSpan) {
	if l.lineStarts[line] != span.Start {
		panic(fmt.Sprintf("syntax: LineIndex: line %d span %v does not start at its recorded line start %d", line, span, l.lineStarts[line]))
	}
	if span.End < span.Start {
		panic(fmt.Sprintf("syntax: LineIndex: line %d span %v ends before it starts", line, span))
	}
}

// LineIndex is an acceleration structure for converting between byte
// offsets, line/column positions, and UTF-16 positions (for LSP-style
// tooling). It is built once per SourceText and is immutable thereafter;
// editing a SourceText rebuilds a new LineIndex rather than patching this
// one in place.
type LineIndex struct {
	text       string
	lineStarts []int // byte offset of each line's first byte
	breakLens  []int // length of the break ending lineStarts[i]'s line; 0 for the last line
}

// NewLineIndex scans text once for line breaks, recognizing the same set
// IsNewline (unicode.go) and the lexer's own Scanner.EatNewline
// (scanner.go) do: '\n', '\r', '\r\n' (counted as one two-byte break),
// vertical tab, form feed, NEL, and the Unicode line/paragraph separators
// U+2028/U+2029. Each break's byte length is recorded in breakLens so that
// Line can report a line's span without its trailing terminator regardless
// of how many bytes that terminator took.
func NewLineIndex(text string) *LineIndex {
	li := &LineIndex{text: text, lineStarts: []int{0}}
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !IsNewline(r) {
			i += size
			continue
		}
		breakLen := size
		if r == '\r' {
			if next, nextSize := utf8.DecodeRuneInString(text[i+size:]); next == '\n' {
				breakLen += nextSize
			}
		}
		li.breakLens = append(li.breakLens, breakLen)
		i += breakLen
		li.lineStarts = append(li.lineStarts, i)
	}
	li.breakLens = append(li.breakLens, 0)
	return li
}

// LineCount returns the number of lines.
func (l *LineIndex) LineCount() int { return len(l.lineStarts) }

// Line returns the TextLine for a zero-indexed line number, without the
// trailing newline.
func (l *LineIndex) Line(line int) TextLine {
	if line < 0 || line >= len(l.lineStarts) {
		panic(fmt.Sprintf("syntax: LineIndex.Line: line %d out of range [0,%d)", line, len(l.lineStarts)))
	}
	start := l.lineStarts[line]
	end := len(l.text)
	if line+1 < len(l.lineStarts) {
		end = l.lineStarts[line+1] - l.breakLens[line]
		if end < start {
			end = start
		}
	}
	span := TextSpan{Start: start, End: end}
	l.validateLineAlignment(line, span)
	return TextLineFromSpan(span, line, len(l.text))
}

// ByteToLine returns the zero-indexed line number containing offset.
func (l *LineIndex) ByteToLine(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset >= len(l.text) {
		return len(l.lineStarts) - 1
	}
	lo, hi := 0, len(l.lineStarts)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if l.lineStarts[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}

// ByteToColumn returns the zero-indexed grapheme-cluster column for a byte
// offset, using CountGraphemes (unicode.go) rather than a raw rune count
// so that combining sequences and other multi-rune clusters count as one
// column, matching what an editor's cursor actually shows.
func (l *LineIndex) ByteToColumn(offset int) int {
	line := l.ByteToLine(offset)
	lineStart := l.lineStarts[line]
	return CountGraphemes(l.text[lineStart:offset])
}

// ByteToLineColumn returns both the line and grapheme-cluster column for a
// byte offset.
func (l *LineIndex) ByteToLineColumn(offset int) (line, column int) {
	line = l.ByteToLine(offset)
	column = CountGraphemes(l.text[l.lineStarts[line]:offset])
	return
}

// LineColumnToByte converts a line/grapheme-column position back to a
// byte offset, or returns -1 if the line is out of range.
func (l *LineIndex) LineColumnToByte(line, column int) int {
	if line < 0 || line >= len(l.lineStarts) {
		return -1
	}
	start := l.lineStarts[line]
	end := len(l.text)
	if line+1 < len(l.lineStarts) {
		end = l.lineStarts[line+1]
	}
	lineText := l.text[start:end]

	byteOffset, clusters, state := 0, 0, -1
	for clusters < column && len(lineText) > 0 {
		cluster, remaining, _, newState := firstGraphemeCluster(lineText, state)
		byteOffset += len(cluster)
		lineText = remaining
		state = newState
		clusters++
	}
	return start + byteOffset
}

// UTF16Len returns the UTF-16 length of the text up to the given byte
// offset.
func (l *LineIndex) UTF16Len(byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(l.text) {
		byteOffset = len(l.text)
	}
	return utf16Len(l.text[:byteOffset])
}

// ByteToUTF16LineColumn returns the line and UTF-16 column for a byte
// offset, for LSP-style positions.
func (l *LineIndex) ByteToUTF16LineColumn(offset int) (line, utf16Column int) {
	line = l.ByteToLine(offset)
	utf16Column = utf16Len(l.text[l.lineStarts[line]:offset])
	return
}

// UTF16LineColumnToByte converts a line and UTF-16 column back to a byte
// offset, or returns -1 if the line is out of range.
func (l *LineIndex) UTF16LineColumnToByte(line, utf16Column int) int {
	if line < 0 || line >= len(l.lineStarts) {
		return -1
	}
	start := l.lineStarts[line]
	end := len(l.text)
	if line+1 < len(l.lineStarts) {
		end = l.lineStarts[line+1]
	}
	lineText := l.text[start:end]

	byteOffset, utf16Count := 0, 0
	for _, r := range lineText {
		if utf16Count >= utf16Column {
			break
		}
		runeLen := utf8.RuneLen(r)
		units := 1
		if r > 0xFFFF {
			units = 2
		}
		byteOffset += runeLen
		utf16Count += units
	}
	return start + byteOffset
}

func utf16Len(s string) int {
	count := 0
	for _, r := range s {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// firstGraphemeCluster is a thin indirection to uniseg, kept here to keep
// the grapheme-walking logic next to its one caller.
func firstGraphemeCluster(s string, state int) (cluster, rest string, width int, newState int) {
	return uniseg.FirstGraphemeClusterInString(s, state)
}

// SourceText is a named, parsed Lua source file: the text, its green-tree
// root, and a LineIndex for position conversions. It is cheap to pass by
// pointer and share across goroutines once constructed; the green tree it
// wraps is itself immutable.
type SourceText struct {
	id   FileId
	text string
	root *GreenNode
	line *LineIndex
}

// NewSourceText lexes and parses text under the given dialect and file
// id, numbering the resulting tree's spans within the full numbering
// range so that Find/Range work immediately.
func NewSourceText(id FileId, text string, dialect DialectOptions) *SourceText {
	root, err := Parse(context.Background(), text, dialect)
	if err != nil {
		panic(err)
	}
	root.Numberize(id, [2]uint64{spanFullStart, spanFullEnd})
	return &SourceText{id: id, text: text, root: root, line: NewLineIndex(text)}
}

// NewDetachedSourceText creates a SourceText with no real backing file,
// for tests and ad hoc snippets.
func NewDetachedSourceText(text string, dialect DialectOptions) *SourceText {
	return NewSourceText(NoFile, text, dialect)
}

// Id returns the source file's identifier.
func (s *SourceText) Id() FileId { return s.id }

// Text returns the full source text.
func (s *SourceText) Text() string { return s.text }

// Root returns the green-tree root.
func (s *SourceText) Root() *GreenNode { return s.root }

// Lines returns the line acceleration structure.
func (s *SourceText) Lines() *LineIndex { return s.line }

// Len returns the length of the source text in bytes.
func (s *SourceText) Len() int { return len(s.text) }

// Find locates the red node matching span, or nil if span does not belong
// to this source or no node matches it.
func (s *SourceText) Find(span Span) *RedNode {
	if span.Id() != s.id {
		return nil
	}
	return NewRedNode(s.root).Find(span)
}

// Range returns the byte range in the source covered by span.
func (s *SourceText) Range(span Span) (TextSpan, bool) {
	if span.Id() != s.id {
		return TextSpan{}, false
	}
	if start, end, ok := span.Range(); ok {
		return TextSpan{Start: start, End: end}, true
	}
	node := s.Find(span)
	if node == nil {
		return TextSpan{}, false
	}
	return TextSpan{Start: node.Offset(), End: node.Offset() + node.Len()}, true
}
