package syntax

import "testing"

func TestTextSpan(t *testing.T) {
	s := NewTextSpan(5, 10)
	if s.Start != 5 || s.End != 10 {
		t.Errorf("unexpected span: %+v", s)
	}
	if s.Length() != 5 {
		t.Errorf("Length() = %d, want 5", s.Length())
	}
	if s.IsEmpty() {
		t.Error("non-empty span reported IsEmpty() == true")
	}
	if !s.Contains(7) {
		t.Error("span should contain 7")
	}
	if s.Contains(10) {
		t.Error("span should not contain its own end (half-open)")
	}
}

func TestNewTextSpanSwapsReversedBounds(t *testing.T) {
	s := NewTextSpan(10, 5)
	if s.Start != 5 || s.End != 10 {
		t.Errorf("expected bounds to be swapped, got %+v", s)
	}
}

func TestTextSpanOverlapsWith(t *testing.T) {
	a := NewTextSpan(0, 10)
	b := NewTextSpan(5, 15)
	c := NewTextSpan(10, 20)

	if !a.OverlapsWith(b) {
		t.Error("a and b should overlap")
	}
	if a.OverlapsWith(c) {
		t.Error("a and c should not overlap (half-open, touching only)")
	}
}

func TestTextSpanString(t *testing.T) {
	if got, want := NewTextSpan(3, 8).String(), "[3..8)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLinePositionString(t *testing.T) {
	p := LinePosition{Line: 2, Character: 7}
	if got, want := p.String(), "2:7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFileLinePositionSpanString(t *testing.T) {
	f := FileLinePositionSpan{
		Path:  "foo.lua",
		Start: LinePosition{Line: 1, Character: 0},
		End:   LinePosition{Line: 1, Character: 5},
	}
	if got, want := f.String(), "foo.lua:1:0-1:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTextLineFromSpanPanicsOutOfBounds(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for out-of-bounds span")
		}
	}()
	TextLineFromSpan(NewTextSpan(0, 100), 0, 10)
}

func TestTextLineFromSpanPanicsNegativeLine(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for negative line number")
		}
	}()
	TextLineFromSpan(NewTextSpan(0, 5), -1, 10)
}

func TestNewLineIndex(t *testing.T) {
	text := "local x = 1\nlocal y = 2\nlocal z = 3"
	li := NewLineIndex(text)

	if li.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", li.LineCount())
	}
	if got := li.Line(0).Span; got != (TextSpan{Start: 0, End: 11}) {
		t.Errorf("line 0 span = %v", got)
	}
	if got := li.Line(2).Span; got != (TextSpan{Start: 24, End: len(text)}) {
		t.Errorf("line 2 span = %v", got)
	}
}

func TestLineIndexCRLF(t *testing.T) {
	text := "a\r\nb\r\nc"
	li := NewLineIndex(text)
	if li.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", li.LineCount())
	}
	// '\r\n' is a single two-byte break, so it is stripped from the
	// line's span entirely rather than leaving the '\r' behind.
	line0 := li.Line(0)
	if text[line0.Span.Start:line0.Span.End] != "a" {
		t.Errorf("line 0 = %q, want %q", text[line0.Span.Start:line0.Span.End], "a")
	}
	line1 := li.Line(1)
	if text[line1.Span.Start:line1.Span.End] != "b" {
		t.Errorf("line 1 = %q, want %q", text[line1.Span.Start:line1.Span.End], "b")
	}
	line2 := li.Line(2)
	if text[line2.Span.Start:line2.Span.End] != "c" {
		t.Errorf("line 2 = %q, want %q", text[line2.Span.Start:line2.Span.End], "c")
	}
}

func TestLineIndexBareCR(t *testing.T) {
	text := "a\rb\rc"
	li := NewLineIndex(text)
	if li.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", li.LineCount())
	}
	for i, want := range []string{"a", "b", "c"} {
		line := li.Line(i)
		if got := text[line.Span.Start:line.Span.End]; got != want {
			t.Errorf("line %d = %q, want %q", i, got, want)
		}
	}
}

func TestLineIndexUnicodeLineSeparators(t *testing.T) {
	text := "a b c"
	li := NewLineIndex(text)
	if li.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", li.LineCount())
	}
	for i, want := range []string{"a", "b", "c"} {
		line := li.Line(i)
		if got := text[line.Span.Start:line.Span.End]; got != want {
			t.Errorf("line %d = %q, want %q", i, got, want)
		}
	}
	// U+2028/U+2029 are three bytes in UTF-8; the next line must start
	// right after that three-byte break, not one byte past it.
	if li.Line(1).Span.Start != len("a ") {
		t.Errorf("line 1 start = %d, want %d", li.Line(1).Span.Start, len("a "))
	}
}

func TestLineIndexMixedBreaksByteToLine(t *testing.T) {
	text := "aa\r\nbb\rcc dd"
	li := NewLineIndex(text)
	if li.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", li.LineCount())
	}
	lastLineStart := len("aa\r\nbb\r")
	if got := li.ByteToLine(lastLineStart); got != 2 {
		t.Errorf("ByteToLine(%d) = %d, want 2", lastLineStart, got)
	}
	line2 := li.Line(2)
	if text[line2.Span.Start:line2.Span.End] != "cc dd" {
		t.Errorf("line 2 = %q, want %q", text[line2.Span.Start:line2.Span.End], "cc dd")
	}
}

func TestLineIndexByteToLine(t *testing.T) {
	text := "aa\nbb\ncc"
	li := NewLineIndex(text)

	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{5, 1},
		{6, 2},
		{100, 2}, // clamps to last line
	}
	for _, tt := range tests {
		if got := li.ByteToLine(tt.offset); got != tt.want {
			t.Errorf("ByteToLine(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestLineIndexByteToColumn(t *testing.T) {
	text := "abc\ndef"
	li := NewLineIndex(text)
	if got := li.ByteToColumn(2); got != 2 {
		t.Errorf("ByteToColumn(2) = %d, want 2", got)
	}
	if got := li.ByteToColumn(6); got != 2 {
		t.Errorf("ByteToColumn(6) = %d, want 2", got)
	}
}

func TestLineIndexLineColumnToByte(t *testing.T) {
	text := "abc\ndef"
	li := NewLineIndex(text)

	if got := li.LineColumnToByte(1, 2); got != 6 {
		t.Errorf("LineColumnToByte(1, 2) = %d, want 6", got)
	}
	if got := li.LineColumnToByte(5, 0); got != -1 {
		t.Errorf("LineColumnToByte(5, 0) = %d, want -1", got)
	}
}

func TestLineIndexRoundTrip(t *testing.T) {
	text := "local a = 1\nlocal bb = 2\nreturn a + bb"
	li := NewLineIndex(text)

	for offset := 0; offset < len(text); offset++ {
		line, col := li.ByteToLineColumn(offset)
		back := li.LineColumnToByte(line, col)
		if back != offset {
			t.Errorf("round trip at offset %d: got line=%d col=%d back=%d", offset, line, col, back)
		}
	}
}

func TestLineIndexUTF16(t *testing.T) {
	// U+1F600 (grinning face) is a surrogate pair in UTF-16.
	text := "a\U0001F600b\ncd"
	li := NewLineIndex(text)

	line, col := li.ByteToUTF16LineColumn(len(text) - 2) // start of "cd"
	if line != 1 || col != 0 {
		t.Errorf("ByteToUTF16LineColumn = (%d, %d), want (1, 0)", line, col)
	}

	emojiEnd := 1 + len("\U0001F600")
	_, col = li.ByteToUTF16LineColumn(emojiEnd)
	if col != 2 {
		t.Errorf("expected UTF-16 column 2 after a surrogate pair, got %d", col)
	}
}

func TestLineIndexUTF16LineColumnToByte(t *testing.T) {
	text := "ab\ncd"
	li := NewLineIndex(text)
	if got := li.UTF16LineColumnToByte(1, 1); got != 4 {
		t.Errorf("UTF16LineColumnToByte(1, 1) = %d, want 4", got)
	}
	if got := li.UTF16LineColumnToByte(9, 0); got != -1 {
		t.Errorf("UTF16LineColumnToByte(9, 0) = %d, want -1", got)
	}
}

func TestNewSourceText(t *testing.T) {
	src := NewDetachedSourceText("local x = 1 + 2", DialectOptions{})

	if src.Id() != NoFile {
		t.Errorf("detached source should have NoFile id, got %v", src.Id())
	}
	if src.Text() != "local x = 1 + 2" {
		t.Errorf("unexpected text: %q", src.Text())
	}
	if src.Root() == nil {
		t.Fatal("Root() should not be nil")
	}
	if src.Lines() == nil {
		t.Fatal("Lines() should not be nil")
	}
	if src.Len() != len("local x = 1 + 2") {
		t.Errorf("Len() = %d, want %d", src.Len(), len("local x = 1 + 2"))
	}
}

func TestSourceTextFindAndRange(t *testing.T) {
	id := InternPath("find_and_range_test.lua")
	src := NewSourceText(id, "return 1", DialectOptions{})

	root := src.Root()
	span := root.Span()

	if got, ok := src.Range(span); !ok || got.Start != 0 || got.End != len(src.Text()) {
		t.Errorf("Range(root span) = %v, ok=%v", got, ok)
	}

	node := src.Find(span)
	if node == nil {
		t.Error("Find(root span) should return the root node")
	}
}

func TestSourceTextFindWrongFile(t *testing.T) {
	id := InternPath("source_a.lua")
	other := InternPath("source_b.lua")
	src := NewSourceText(id, "return 1", DialectOptions{})

	span, ok := SpanFromNumber(other, 5)
	if !ok {
		t.Fatal("SpanFromNumber failed")
	}
	if src.Find(span) != nil {
		t.Error("Find should return nil for a span from a different file")
	}
	if _, ok := src.Range(span); ok {
		t.Error("Range should fail for a span from a different file")
	}
}

func TestInternPathStable(t *testing.T) {
	id1 := InternPath("stable_path_test.lua")
	id2 := InternPath("stable_path_test.lua")
	if id1 != id2 {
		t.Errorf("InternPath should return the same id for the same path, got %v and %v", id1, id2)
	}
	if id1.Path() != "stable_path_test.lua" {
		t.Errorf("Path() = %q, want %q", id1.Path(), "stable_path_test.lua")
	}
}

func TestInternPathDistinctPaths(t *testing.T) {
	a := InternPath("distinct_a.lua")
	b := InternPath("distinct_b.lua")
	if a == b {
		t.Error("distinct paths should get distinct ids")
	}
}

func TestFileIdPathUnknown(t *testing.T) {
	if got := FileId(0xFFFE).Path(); got != "" {
		t.Errorf("Path() for an unissued id = %q, want empty", got)
	}
	if got := NoFile.Path(); got != "" {
		t.Errorf("NoFile.Path() = %q, want empty", got)
	}
}
