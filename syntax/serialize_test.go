package syntax

import (
	"bytes"
	"testing"
)

func TestSerializeLeafRoundTrip(t *testing.T) {
	n := Leaf(Ident, "foo")

	var buf bytes.Buffer
	written, err := n.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if written != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, buffer has %d", written, buf.Len())
	}

	got, err := ReadGreenNode(&buf)
	if err != nil {
		t.Fatalf("ReadGreenNode failed: %v", err)
	}
	if !n.SpanlessEq(got) {
		t.Errorf("round-tripped leaf not SpanlessEq to original: %v vs %v", n, got)
	}
}

func TestSerializeInnerRoundTrip(t *testing.T) {
	n := Inner(ExprList, []*GreenNode{
		Leaf(Ident, "a"),
		Leaf(Space, " "),
		Leaf(Ident, "b"),
	})

	var buf bytes.Buffer
	if _, err := n.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	got, err := ReadGreenNode(&buf)
	if err != nil {
		t.Fatalf("ReadGreenNode failed: %v", err)
	}
	if !n.SpanlessEq(got) {
		t.Error("round-tripped inner node not SpanlessEq to original")
	}
	if got.IntoText() != "a b" {
		t.Errorf("IntoText() = %q, want %q", got.IntoText(), "a b")
	}
}

func TestSerializeErrorRoundTrip(t *testing.T) {
	err := NewSyntaxError("unterminated string")
	err.AddHint("close the quote")
	n := ErrorNode(err, `"abc`)

	var buf bytes.Buffer
	if _, writeErr := n.WriteTo(&buf); writeErr != nil {
		t.Fatalf("WriteTo failed: %v", writeErr)
	}

	got, readErr := ReadGreenNode(&buf)
	if readErr != nil {
		t.Fatalf("ReadGreenNode failed: %v", readErr)
	}
	if !n.SpanlessEq(got) {
		t.Error("round-tripped error node not SpanlessEq to original")
	}
	errs := got.Errors()
	if len(errs) != 1 || errs[0].Message != "unterminated string" || len(errs[0].Hints) != 1 {
		t.Errorf("unexpected errors after round trip: %+v", errs)
	}
}

func TestSerializePreservesAnnotationIdentity(t *testing.T) {
	ann := NewSyntaxAnnotation("format", []byte("payload"))
	n := Leaf(Ident, "x").WithAnnotation(ann)

	var buf bytes.Buffer
	if _, err := n.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	got, err := ReadGreenNode(&buf)
	if err != nil {
		t.Fatalf("ReadGreenNode failed: %v", err)
	}

	gotAnns := got.Annotations()
	if len(gotAnns) != 1 {
		t.Fatalf("expected 1 annotation after round trip, got %d", len(gotAnns))
	}
	if gotAnns[0].ID() != ann.ID() {
		t.Errorf("annotation id not preserved: got %d, want %d", gotAnns[0].ID(), ann.ID())
	}
	if gotAnns[0].Kind() != ann.Kind() {
		t.Errorf("annotation kind not preserved: got %q, want %q", gotAnns[0].Kind(), ann.Kind())
	}
	if !bytes.Equal(gotAnns[0].Data(), ann.Data()) {
		t.Errorf("annotation data not preserved: got %v, want %v", gotAnns[0].Data(), ann.Data())
	}
}

func TestSerializeNestedTreeRoundTrip(t *testing.T) {
	tree := Inner(Block, []*GreenNode{
		Inner(LocalStatement, []*GreenNode{
			Leaf(Local, "local"),
			Leaf(Space, " "),
			Leaf(Ident, "x"),
		}),
		ErrorNode(NewSyntaxError("bad"), "@"),
	})

	var buf bytes.Buffer
	if _, err := tree.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	got, err := ReadGreenNode(&buf)
	if err != nil {
		t.Fatalf("ReadGreenNode failed: %v", err)
	}
	if !tree.SpanlessEq(got) {
		t.Error("round-tripped nested tree not SpanlessEq to original")
	}
	if !got.Erroneous() {
		t.Error("round-tripped tree should still report Erroneous() == true")
	}
}

func TestReadGreenNodeUnknownTypeID(t *testing.T) {
	buf := bytes.NewBuffer([]byte{99})
	if _, err := ReadGreenNode(buf); err == nil {
		t.Error("expected an error for an unknown type id")
	}
}

func TestReadGreenNodeTruncatedInput(t *testing.T) {
	n := Leaf(Ident, "abc")
	var full bytes.Buffer
	if _, err := n.WriteTo(&full); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	truncated := bytes.NewBuffer(full.Bytes()[:2])
	if _, err := ReadGreenNode(truncated); err == nil {
		t.Error("expected an error for truncated input")
	}
}
