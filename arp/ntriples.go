package arp

import (
	"bufio"
	"io"
	"strings"
)

var ntLiteralEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\n", "\\n",
	"\r", "\\r",
)

var ntIRIEscaper = strings.NewReplacer(
	"\\", "\\u005C",
	">", "\\u003E",
	"<", "\\u003C",
	"\"", "\\u0022",
	" ", "\\u0020",
)

// NTriplesWriter writes the triples it receives as N-Triples. It can be
// used directly as a StatementHandler.
type NTriplesWriter struct {
	writer *bufio.Writer
	err    error
}

// NewNTriplesWriter creates a writer that writes to w. Call Flush once
// parsing has finished.
func NewNTriplesWriter(w io.Writer) *NTriplesWriter {
	return &NTriplesWriter{writer: bufio.NewWriter(w)}
}

// Statement writes a triple with a resource object.
func (w *NTriplesWriter) Statement(subj, pred, obj *Resource) error {
	return w.write(subj.Term(), pred.URI(), obj.Term())
}

// StatementLiteral writes a triple with a literal object.
func (w *NTriplesWriter) StatementLiteral(subj, pred *Resource, lit Literal) error {
	return w.write(subj.Term(), pred.URI(), lit)
}

// HandleTriple writes t.
func (w *NTriplesWriter) HandleTriple(t Triple) error {
	return w.write(t.S, t.P.Value, t.O)
}

func (w *NTriplesWriter) write(s Term, p string, o Term) error {
	if w.err != nil {
		return w.err
	}
	line := renderTerm(s) + " " + renderIRI(IRI{Value: p}) + " " + renderTerm(o) + " .\n"
	if _, err := w.writer.WriteString(line); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Flush writes buffered output.
func (w *NTriplesWriter) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.writer.Flush()
}

func renderIRI(iri IRI) string {
	return "<" + ntIRIEscaper.Replace(iri.Value) + ">"
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return renderIRI(value)
	case BlankNode:
		return value.String()
	case Literal:
		lex := "\"" + ntLiteralEscaper.Replace(value.Lexical) + "\""
		if value.Lang != "" {
			return lex + "@" + value.Lang
		}
		if value.Datatype.Value != "" {
			return lex + "^^" + renderIRI(value.Datatype)
		}
		return lex
	default:
		return ""
	}
}
