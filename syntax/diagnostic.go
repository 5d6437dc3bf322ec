package syntax

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Severity classifies how serious a Diagnostic is.
type Severity int

const (
	SeverityHidden Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityHidden:
		return "hidden"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Location identifies where a Diagnostic applies. Exactly one of the
// three forms is populated: a span into a parsed tree, an external
// file+range for locations outside any SourceText this package parsed, or
// no location at all for diagnostics about the input as a whole.
type Location struct {
	kind locationKind
	span Span
	ext  FileLinePositionSpan
}

type locationKind uint8

const (
	locationNone locationKind = iota
	locationSource
	locationExternal
)

// NoLocation returns a Location carrying no position information.
func NoLocation() Location { return Location{kind: locationNone} }

// SourceLocation returns a Location anchored to a span within a parsed
// tree.
func SourceLocation(span Span) Location {
	return Location{kind: locationSource, span: span}
}

// ExternalLocation returns a Location pointing at a byte/line range in a
// file this package never lexed (e.g. a diagnostic produced by a
// downstream tool reusing this package's Diagnostic type).
func ExternalLocation(flps FileLinePositionSpan) Location {
	return Location{kind: locationExternal, ext: flps}
}

// IsNone reports whether the location carries no position.
func (l Location) IsNone() bool { return l.kind == locationNone }

// Span returns the backing span and true if this is a source location.
func (l Location) Span() (Span, bool) {
	if l.kind != locationSource {
		return Span{}, false
	}
	return l.span, true
}

// External returns the backing external position and true if this is an
// external location.
func (l Location) External() (FileLinePositionSpan, bool) {
	if l.kind != locationExternal {
		return FileLinePositionSpan{}, false
	}
	return l.ext, true
}

// Diagnostic is a fully-formed, user-presentable description of a lexical
// or syntactic problem, distinct from the lighter-weight *SyntaxError
// attached directly to error nodes in the tree (see green.go): a
// Diagnostic is what a caller collects and reports; a *SyntaxError is what
// the lexer/parser attaches inline while building the tree. GreenNode.Diagnostics
// (green.go) converts the latter into the former.
type Diagnostic struct {
	Code       string
	Severity   Severity
	Message    string
	Location   Location
	CustomTags []string
}

// NewDiagnostic builds an error-severity diagnostic for the given code and
// location.
func NewDiagnostic(code string, location Location, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// WithSeverity returns a copy of the diagnostic with a different severity.
func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = s
	return d
}

// WithTag returns a copy of the diagnostic with an additional custom tag.
func (d Diagnostic) WithTag(tag string) Diagnostic {
	d.CustomTags = append(append([]string(nil), d.CustomTags...), tag)
	return d
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// yamlDiagnostic is the YAML-facing shadow of Diagnostic: Location's
// fields are unexported (it's a tagged union of "none"/span/external), so
// MarshalYAML flattens it into plain fields a downstream tool can consume
// without linking against this package.
type yamlDiagnostic struct {
	Code       string   `yaml:"code"`
	Severity   string   `yaml:"severity"`
	Message    string   `yaml:"message"`
	File       string   `yaml:"file,omitempty"`
	Line       int      `yaml:"line,omitempty"`
	Column     int      `yaml:"column,omitempty"`
	CustomTags []string `yaml:"tags,omitempty"`
}

// MarshalYAML implements yaml.Marshaler, giving diagnostics a plain-data
// YAML form for tooling that wants to consume lexer/parser output without
// depending on this package's types directly, the same "give config and
// report structures both TOML and YAML bindings" practice the teacher's
// wider repo follows for its manifests.
func (d Diagnostic) MarshalYAML() (any, error) {
	y := yamlDiagnostic{
		Code:       d.Code,
		Severity:   d.Severity.String(),
		Message:    d.Message,
		CustomTags: d.CustomTags,
	}
	if flps, ok := d.Location.External(); ok {
		y.File = flps.Path
		y.Line = flps.Start.Line
		y.Column = flps.Start.Character
	}
	return y, nil
}

// EncodeDiagnosticsYAML renders a batch of diagnostics as a YAML document.
func EncodeDiagnosticsYAML(diagnostics []Diagnostic) ([]byte, error) {
	return yaml.Marshal(diagnostics)
}

// LOLP diagnostic codes: dialect-specific lexer/parser diagnostics, kept
// entirely separate from the LOSK00xx catalog (kindmeta.go), which is
// reserved for the kind-metadata generator's own validation. A
// *SyntaxError picks one of these at the point it's raised (lexer.go,
// parser.go); diagnosticFromSyntaxError below falls back to LOLP0000 for
// the few call sites that haven't been given a specific code.
const (
	LOLP0000 = "LOLP0000" // uncategorized lexer/parser diagnostic
	LOLP0001 = "LOLP0001" // unterminated string literal
	LOLP0002 = "LOLP0002" // unterminated long bracket (string or comment)
	LOLP0003 = "LOLP0003" // malformed numeric literal
	LOLP0004 = "LOLP0004" // unexpected character
	LOLP0005 = "LOLP0005" // expected token, found something else
	LOLP0006 = "LOLP0006" // unexpected token
	LOLP0007 = "LOLP0007" // maximum parsing depth exceeded
	LOLP0008 = "LOLP0008" // feature not enabled in this dialect
	LOLP0009 = "LOLP0009" // parsing cancelled
)

// diagnosticFromSyntaxError converts the tree-level error representation into a
// reportable Diagnostic, anchoring it at the given span.
func diagnosticFromSyntaxError(err *SyntaxError, span Span) Diagnostic {
	code := err.Code
	if code == "" {
		code = LOLP0000
	}
	d := Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  err.Message,
		Location: SourceLocation(span),
	}
	if len(err.Hints) > 0 {
		d.CustomTags = append([]string(nil), err.Hints...)
	}
	return d
}
