package syntax

import (
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityHidden, "hidden"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestLocationVariants(t *testing.T) {
	none := NoLocation()
	if !none.IsNone() {
		t.Error("NoLocation() should report IsNone() == true")
	}

	span, _ := SpanFromNumber(FileIdFromRaw(1), 10)
	src := SourceLocation(span)
	if src.IsNone() {
		t.Error("SourceLocation should not be IsNone()")
	}
	if got, ok := src.Span(); !ok || got != span {
		t.Errorf("Span() = %v, %v", got, ok)
	}
	if _, ok := src.External(); ok {
		t.Error("SourceLocation.External() should report ok == false")
	}

	flps := FileLinePositionSpan{Path: "a.lua", Start: LinePosition{Line: 1}, End: LinePosition{Line: 2}}
	ext := ExternalLocation(flps)
	if ext.IsNone() {
		t.Error("ExternalLocation should not be IsNone()")
	}
	if got, ok := ext.External(); !ok || got != flps {
		t.Errorf("External() = %v, %v", got, ok)
	}
	if _, ok := ext.Span(); ok {
		t.Error("ExternalLocation.Span() should report ok == false")
	}
}

func TestNewDiagnostic(t *testing.T) {
	d := NewDiagnostic(LOLP0006, NoLocation(), "unexpected %s", "token")
	if d.Code != LOLP0006 {
		t.Errorf("Code = %q, want %q", d.Code, LOLP0006)
	}
	if d.Severity != SeverityError {
		t.Errorf("Severity = %v, want SeverityError", d.Severity)
	}
	if d.Message != "unexpected token" {
		t.Errorf("Message = %q, want %q", d.Message, "unexpected token")
	}
}

func TestDiagnosticWithSeverityAndTag(t *testing.T) {
	d := NewDiagnostic(LOLP0006, NoLocation(), "msg")
	warned := d.WithSeverity(SeverityWarning)
	if warned.Severity != SeverityWarning {
		t.Errorf("Severity = %v, want SeverityWarning", warned.Severity)
	}
	if d.Severity != SeverityError {
		t.Error("WithSeverity should not mutate the receiver")
	}

	tagged := d.WithTag("deprecated")
	if len(tagged.CustomTags) != 1 || tagged.CustomTags[0] != "deprecated" {
		t.Errorf("CustomTags = %v", tagged.CustomTags)
	}
	if len(d.CustomTags) != 0 {
		t.Error("WithTag should not mutate the receiver")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := NewDiagnostic(LOLP0004, NoLocation(), "bad thing")
	got := d.String()
	if !strings.Contains(got, "error") || !strings.Contains(got, LOLP0004) || !strings.Contains(got, "bad thing") {
		t.Errorf("String() = %q", got)
	}
}

func TestDiagnosticFromSyntaxError(t *testing.T) {
	err := NewSyntaxError("unterminated string")
	err.AddHint("close the quote")
	span, _ := SpanFromNumber(FileIdFromRaw(1), 5)

	d := diagnosticFromSyntaxError(err, span)
	if d.Code != LOLP0000 {
		t.Errorf("Code = %q, want %q", d.Code, LOLP0000)
	}
	if d.Message != "unterminated string" {
		t.Errorf("Message = %q", d.Message)
	}
	if got, ok := d.Location.Span(); !ok || got != span {
		t.Errorf("Location.Span() = %v, %v", got, ok)
	}
	if len(d.CustomTags) != 1 || d.CustomTags[0] != "close the quote" {
		t.Errorf("CustomTags = %v", d.CustomTags)
	}
}

func TestDiagnosticFromSyntaxErrorWithCode(t *testing.T) {
	err := NewSyntaxErrorWithCode(LOLP0001, "unterminated string")
	span, _ := SpanFromNumber(FileIdFromRaw(1), 5)

	d := diagnosticFromSyntaxError(err, span)
	if d.Code != LOLP0001 {
		t.Errorf("Code = %q, want %q", d.Code, LOLP0001)
	}
}

func TestEncodeDiagnosticsYAML(t *testing.T) {
	flps := FileLinePositionSpan{Path: "a.lua", Start: LinePosition{Line: 2, Character: 3}}
	d := NewDiagnostic(LOLP0006, ExternalLocation(flps), "bad token").WithTag("extra")

	out, err := EncodeDiagnosticsYAML([]Diagnostic{d})
	if err != nil {
		t.Fatalf("EncodeDiagnosticsYAML failed: %v", err)
	}
	text := string(out)
	for _, want := range []string{LOLP0006, "error", "bad token", "a.lua", "extra"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected YAML output to contain %q, got:\n%s", want, text)
		}
	}
}
