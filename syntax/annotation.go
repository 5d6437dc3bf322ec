package syntax

import "sync/atomic"

// annotationIDCounter is a process-wide monotonic counter backing every
// SyntaxAnnotation's identity. It must be atomic: green nodes (and the
// annotations attached to them) are shared freely across goroutines once
// built, so two parses running concurrently must never hand out the same
// annotation id.
var annotationIDCounter int64

// SyntaxAnnotation is an immutable, identity-bearing tag that can be
// attached to a green node without perturbing its structural equality
// (SpanlessEq ignores annotations, the same way it ignores spans).
// Annotations round-trip through serialization (serialize.go) by id, kind
// and opaque data.
type SyntaxAnnotation struct {
	id   int64
	kind string
	data []byte
}

// NewSyntaxAnnotation creates a fresh annotation with a new, never-reused
// id from the process-wide counter.
func NewSyntaxAnnotation(kind string, data []byte) SyntaxAnnotation {
	id := atomic.AddInt64(&annotationIDCounter, 1)
	return SyntaxAnnotation{id: id, kind: kind, data: append([]byte(nil), data...)}
}

// ID returns the annotation's identity, stable for the lifetime of the
// process and preserved verbatim across serialize/deserialize round trips.
func (a SyntaxAnnotation) ID() int64 { return a.id }

// Kind returns the caller-defined annotation kind string.
func (a SyntaxAnnotation) Kind() string { return a.kind }

// Data returns the annotation's opaque payload.
func (a SyntaxAnnotation) Data() []byte { return a.data }

// elasticAnnotation is the predefined "elastic" annotation: trivia
// formatters use its presence to mark whitespace that may be freely
// resized or removed during formatting without being considered a
// meaningful edit, mirroring Roslyn's SyntaxAnnotation.ElasticAnnotation.
var elasticAnnotation = SyntaxAnnotation{id: 0, kind: "elastic"}

// ElasticAnnotation returns the shared predefined elastic-trivia
// annotation. Unlike NewSyntaxAnnotation, every call returns the same
// identity (id 0 is reserved and never handed out by the counter, which
// starts at 1).
func ElasticAnnotation() SyntaxAnnotation { return elasticAnnotation }

// IsElastic reports whether this is the predefined elastic annotation.
func (a SyntaxAnnotation) IsElastic() bool { return a.id == 0 && a.kind == "elastic" }
