package syntax

import "testing"

func TestNewSyntaxAnnotationUniqueIds(t *testing.T) {
	a := NewSyntaxAnnotation("format", []byte("x"))
	b := NewSyntaxAnnotation("format", []byte("x"))
	if a.ID() == b.ID() {
		t.Error("two distinct annotations should get distinct ids")
	}
	if a.Kind() != "format" {
		t.Errorf("Kind() = %q, want %q", a.Kind(), "format")
	}
	if string(a.Data()) != "x" {
		t.Errorf("Data() = %q, want %q", a.Data(), "x")
	}
}

func TestNewSyntaxAnnotationCopiesData(t *testing.T) {
	data := []byte{1, 2, 3}
	a := NewSyntaxAnnotation("k", data)
	data[0] = 99
	if a.Data()[0] == 99 {
		t.Error("NewSyntaxAnnotation should copy its data, not alias the caller's slice")
	}
}

func TestElasticAnnotation(t *testing.T) {
	a := ElasticAnnotation()
	b := ElasticAnnotation()
	if a.ID() != b.ID() {
		t.Error("ElasticAnnotation should always return the same identity")
	}
	if !a.IsElastic() {
		t.Error("ElasticAnnotation() should report IsElastic() == true")
	}
	if a.ID() != 0 {
		t.Errorf("elastic annotation id = %d, want 0", a.ID())
	}
}

func TestIsElasticFalseForOrdinaryAnnotation(t *testing.T) {
	a := NewSyntaxAnnotation("elastic", nil)
	if a.IsElastic() {
		t.Error("a freshly minted annotation should never collide with the reserved elastic id")
	}
}
