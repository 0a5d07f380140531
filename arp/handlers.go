package arp

// StatementHandler receives the triples of a document in document order.
// Both methods are called on the goroutine running the grammar. Returning
// an error aborts the parse with ERR_HANDLER_ABORTED.
type StatementHandler interface {
	Statement(subj, pred, obj *Resource) error
	StatementLiteral(subj, pred *Resource, lit Literal) error
}

// NamespaceHandler receives namespace prefix scoping events.
type NamespaceHandler interface {
	StartPrefixMapping(prefix, uri string) error
	EndPrefixMapping(prefix string) error
}

// ExtendedHandler receives document and blank node lifecycle events.
//
// EndBNodeScope is called exactly once for every blank node that appeared
// in a statement, after its last statement. Blank nodes named with
// rdf:nodeID are ended at document end, unless DiscardNodesWithNodeID
// returns true, in which case they are never tracked.
type ExtendedHandler interface {
	StartDocument() error
	EndDocument() error
	EndBNodeScope(bnode *Resource) error
	DiscardNodesWithNodeID() bool
}

// TripleHandler processes triples in push mode.
type TripleHandler interface {
	HandleTriple(Triple) error
}

// TripleHandlerFunc adapts a function to a TripleHandler.
type TripleHandlerFunc func(Triple) error

// HandleTriple calls f(t).
func (f TripleHandlerFunc) HandleTriple(t Triple) error {
	return f(t)
}

// tripleAdapter converts statements to Triple values.
type tripleAdapter struct {
	handler TripleHandler
}

func (a tripleAdapter) Statement(s, p, o *Resource) error {
	return a.handler.HandleTriple(Triple{S: s.Term(), P: IRI{Value: p.URI()}, O: o.Term()})
}

func (a tripleAdapter) StatementLiteral(s, p *Resource, lit Literal) error {
	return a.handler.HandleTriple(Triple{S: s.Term(), P: IRI{Value: p.URI()}, O: lit})
}

type nopStatementHandler struct{}

func (nopStatementHandler) Statement(_, _, _ *Resource) error { return nil }

func (nopStatementHandler) StatementLiteral(_, _ *Resource, _ Literal) error { return nil }

type nopNamespaceHandler struct{}

func (nopNamespaceHandler) StartPrefixMapping(_, _ string) error { return nil }

func (nopNamespaceHandler) EndPrefixMapping(_ string) error { return nil }

type nopExtendedHandler struct{}

func (nopExtendedHandler) StartDocument() error { return nil }

func (nopExtendedHandler) EndDocument() error { return nil }

func (nopExtendedHandler) EndBNodeScope(_ *Resource) error { return nil }

func (nopExtendedHandler) DiscardNodesWithNodeID() bool { return false }
