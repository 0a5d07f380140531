package arp

import (
	"fmt"
	"strconv"
)

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
	// WellFormedXML is set for rdf:parseType="Literal" content.
	WellFormedXML bool
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// Triple represents an RDF triple.
type Triple struct {
	// S is the subject term.
	S Term
	// P is the predicate IRI.
	P IRI
	// O is the object term.
	O Term
}

// String returns the triple in an N-Triples like form.
func (t Triple) String() string {
	return renderTerm(t.S) + " " + renderIRI(t.P) + " " + renderTerm(t.O) + " ."
}

// Resource is a subject, predicate or object produced by the parser.
// It is either a URI node or a blank node. Blank nodes are identified by a
// generated counter or by the rdf:nodeID value they were written with.
//
// The parser hands out the same *Resource for every reference to one blank
// node, so callers may attach their own handle with SetUserData.
type Resource struct {
	uri      string
	anonID   string
	nodeID   string
	used     bool
	ended    bool
	userData any
}

func newURIResource(uri string) *Resource {
	return &Resource{uri: uri}
}

func newAnonResource(n int) *Resource {
	return &Resource{anonID: "A" + strconv.Itoa(n)}
}

func newNodeIDResource(id string) *Resource {
	return &Resource{anonID: "U" + id, nodeID: id}
}

// IsAnonymous reports whether r is a blank node.
func (r *Resource) IsAnonymous() bool { return r.anonID != "" }

// URI returns the URI of a URI node, or "" for blank nodes.
func (r *Resource) URI() string { return r.uri }

// AnonymousID returns a document-unique identifier for a blank node.
func (r *Resource) AnonymousID() string { return r.anonID }

// HasNodeID reports whether the blank node was named with rdf:nodeID.
func (r *Resource) HasNodeID() bool { return r.nodeID != "" }

// NodeID returns the rdf:nodeID value, if any.
func (r *Resource) NodeID() string { return r.nodeID }

// UserData returns the payload attached with SetUserData.
func (r *Resource) UserData() any { return r.userData }

// SetUserData attaches an opaque payload to the resource for its lifetime.
func (r *Resource) SetUserData(v any) { r.userData = v }

// Term converts the resource to an IRI or BlankNode.
func (r *Resource) Term() Term {
	if r.IsAnonymous() {
		return BlankNode{ID: r.anonID}
	}
	return IRI{Value: r.uri}
}

func (r *Resource) String() string {
	if r.IsAnonymous() {
		return "_:" + r.anonID
	}
	return "<" + r.uri + ">"
}
