package syntax

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Binary serialization of a green tree, using the encoding/binary
// reader/writer idiom: big-endian fixed-width fields via
// encoding/binary, length-prefixed variable data, no intermediate buffering
// beyond what io.Writer/io.Reader already do.
//
// Each record starts with a type id selecting how the rest of the record
// is read, mirroring the kind:u16 / type-registry shape: typeLeaf and
// typeError both carry a single text payload; typeInner carries a child
// count followed by that many nested records. Diagnostics are not
// serialized separately from the error payload they describe (this port
// attaches a *SyntaxError directly to its error node rather than keeping a
// separate diagnostics list per node), so a serialized error record writes
// the error's message and hints instead of a diagnostic-info block.
// A token carrying its own trivia (tokenNode, built by
// WithLeadingTrivia/WithTrailingTrivia) has no record type: WriteTo
// returns an error for a tree that contains one.
const (
	typeLeaf  uint8 = 1
	typeInner uint8 = 2
	typeError uint8 = 3
)

// WriteTo writes n and its subtree in binary form, implementing
// io.WriterTo.
func (n *GreenNode) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeNode(cw, n); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func writeNode(w io.Writer, n *GreenNode) error {
	switch d := n.data.(type) {
	case *leafNode:
		if err := writeUint8(w, typeLeaf); err != nil {
			return err
		}
		if err := writeUint16(w, uint16(d.nodeKind)); err != nil {
			return err
		}
		if err := writeString(w, d.nodeText); err != nil {
			return err
		}
		return writeAnnotations(w, d.nodeAnnot)

	case *innerNode:
		if err := writeUint8(w, typeInner); err != nil {
			return err
		}
		if err := writeUint16(w, uint16(d.nodeKind)); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(d.nodeChildren))); err != nil {
			return err
		}
		if err := writeAnnotations(w, d.nodeAnnot); err != nil {
			return err
		}
		for _, child := range d.nodeChildren {
			if err := writeNode(w, child); err != nil {
				return err
			}
		}
		return nil

	case *errorNode:
		if err := writeUint8(w, typeError); err != nil {
			return err
		}
		if err := writeString(w, d.nodeText); err != nil {
			return err
		}
		if err := writeString(w, d.error.Message); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(d.error.Hints))); err != nil {
			return err
		}
		for _, h := range d.error.Hints {
			if err := writeString(w, h); err != nil {
				return err
			}
		}
		return writeAnnotations(w, d.nodeAnnot)

	default:
		return fmt.Errorf("syntax: unknown green node representation %T", d)
	}
}

func writeAnnotations(w io.Writer, anns []SyntaxAnnotation) error {
	if err := writeUint32(w, uint32(len(anns))); err != nil {
		return err
	}
	for _, a := range anns {
		if err := binary.Write(w, binary.BigEndian, a.id); err != nil {
			return err
		}
		if err := writeString(w, a.kind); err != nil {
			return err
		}
		if err := writeBytes(w, a.data); err != nil {
			return err
		}
	}
	return nil
}

// ReadGreenNode reads a green tree previously written by GreenNode.WriteTo.
// Spans are left detached; call Numberize on the result to assign them.
func ReadGreenNode(r io.Reader) (*GreenNode, error) {
	return readNode(r)
}

func readNode(r io.Reader) (*GreenNode, error) {
	typeID, err := readUint8(r)
	if err != nil {
		return nil, err
	}

	switch typeID {
	case typeLeaf:
		kind, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		text, err := readString(r)
		if err != nil {
			return nil, err
		}
		anns, err := readAnnotations(r)
		if err != nil {
			return nil, err
		}
		node := Leaf(SyntaxKind(kind), text)
		node.data.(*leafNode).nodeAnnot = anns
		return node, nil

	case typeInner:
		kind, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		count, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		anns, err := readAnnotations(r)
		if err != nil {
			return nil, err
		}
		children := make([]*GreenNode, count)
		for i := range children {
			child, err := readNode(r)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		node := Inner(SyntaxKind(kind), children)
		node.data.(*innerNode).nodeAnnot = anns
		return node, nil

	case typeError:
		text, err := readString(r)
		if err != nil {
			return nil, err
		}
		message, err := readString(r)
		if err != nil {
			return nil, err
		}
		hintCount, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		hints := make([]string, hintCount)
		for i := range hints {
			h, err := readString(r)
			if err != nil {
				return nil, err
			}
			hints[i] = h
		}
		anns, err := readAnnotations(r)
		if err != nil {
			return nil, err
		}
		node := ErrorNode(&SyntaxError{Span: Detached(), Message: message, Hints: hints}, text)
		node.data.(*errorNode).nodeAnnot = anns
		return node, nil

	default:
		return nil, fmt.Errorf("syntax: unknown green node type id %d", typeID)
	}
}

func readAnnotations(r io.Reader) ([]SyntaxAnnotation, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	anns := make([]SyntaxAnnotation, count)
	for i := range anns {
		var id int64
		if err := binary.Read(r, binary.BigEndian, &id); err != nil {
			return nil, err
		}
		kind, err := readString(r)
		if err != nil {
			return nil, err
		}
		data, err := readBytes(r)
		if err != nil {
			return nil, err
		}
		// id is preserved verbatim rather than reallocated from
		// annotationIDCounter, so a deserialized annotation still equals
		// (by id) the live instance it was serialized from.
		anns[i] = SyntaxAnnotation{id: id, kind: kind, data: data}
	}
	return anns, nil
}

// --- primitive helpers ---

func writeUint8(w io.Writer, v uint8) error  { return binary.Write(w, binary.BigEndian, v) }
func writeUint16(w io.Writer, v uint16) error { return binary.Write(w, binary.BigEndian, v) }
func writeUint32(w io.Writer, v uint32) error { return binary.Write(w, binary.BigEndian, v) }

func readUint8(r io.Reader) (uint8, error) {
	var v uint8
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

func readUint16(r io.Reader) (uint16, error) {
	var v uint16
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

func writeBytes(w io.Writer, b []byte) error {
	if err := writeUint32(w, uint32(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeString(w io.Writer, s string) error {
	return writeBytes(w, []byte(s))
}

func readString(r io.Reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// countingWriter tracks total bytes written so WriteTo can satisfy
// io.WriterTo's (int64, error) signature without every helper threading a
// running count through by hand.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
