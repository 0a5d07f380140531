package arp

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
)

// frameKind says how the content of an open element is interpreted.
type frameKind uint8

const (
	frameDocument   frameKind = iota // before the root element
	frameOutside                     // embedded XML outside rdf:RDF
	frameRDF                         // rdf:RDF, children are node elements
	frameNode                        // node element, children are property elements
	frameProperty                    // property element awaiting a node, text or nothing
	frameResource                    // rdf:parseType="Resource"
	frameCollection                  // rdf:parseType="Collection"
	frameLiteral                     // XML literal content
	frameSkip                        // subtree dropped after an error
	frameEmpty                       // empty property element with attributes
)

// frame is the parser state of one open element.
type frame struct {
	kind frameKind
	ctx  xmlContext
	name QName
	loc  Location

	// subject is the node a node or resource frame describes, or the
	// subject of the triple a property frame completes.
	subject *Resource
	pred    *Resource
	reify   *Resource // rdf:ID of a property element
	bag     *bagState // rdf:bagID collecting the statements of this frame
	li      int       // last rdf:li number used for subject

	datatype string
	text     strings.Builder
	nonWS    bool
	object   *Resource // node element content of a property frame
	broken   bool
	deferred *batch

	coll    *collection
	lit     *literalCapture
	litRoot bool

	owned []*Resource // blank nodes whose scope ends with the element
}

// startTag is a start element with its attribute and diagnostic tokens.
type startTag struct {
	tok   Token
	attrs tagAttrs
	diags []*Diagnostic
}

// tagAttrs sorts the attribute tokens of a start tag.
type tagAttrs struct {
	base, lang, space                  *Token
	id, about, nodeID, resource, bagID *Token
	parseType, datatype, typ           *Token

	props []Token // property attributes
	xmlns []Token
	all   []Token // every attribute except namespace declarations
}

func (a *tagAttrs) add(t Token) {
	switch t.Kind {
	case TokenAttrXMLNS:
		a.xmlns = append(a.xmlns, t)
		return
	case TokenAttrXMLBase:
		a.base = &t
	case TokenAttrXMLLang:
		a.lang = &t
	case TokenAttrXMLSpace:
		a.space = &t
	case TokenAttrID:
		a.id = &t
	case TokenAttrAbout:
		a.about = &t
	case TokenAttrNodeID:
		a.nodeID = &t
	case TokenAttrResource:
		a.resource = &t
	case TokenAttrBagID:
		a.bagID = &t
	case TokenAttrParseType:
		a.parseType = &t
	case TokenAttrDatatype:
		a.datatype = &t
	case TokenAttrType:
		a.typ = &t
	case TokenAttrMember:
		a.props = append(a.props, t)
	case TokenAttrOther:
		if !isXMLReserved(t.Raw) {
			a.props = append(a.props, t)
		}
	}
	a.all = append(a.all, t)
}

// stmt is a triple waiting for its production to complete.
type stmt struct {
	s, p *Resource
	o    object

	// member is set on rdf:_n statements, numbered when delivered.
	member *bagState
}

// object is a resource or literal in object position.
type object struct {
	res     *Resource
	lit     Literal
	literal bool
}

func resObject(r *Resource) object { return object{res: r} }

func litObject(l Literal) object { return object{lit: l, literal: true} }

// batch holds the output of one production.
type batch struct {
	stmts    []stmt
	endAfter []*Resource
}

func (b *batch) reset() {
	b.stmts = b.stmts[:0]
	b.endAfter = b.endAfter[:0]
}

// rdfParser recognizes RDF/XML from a token pipe. It runs on a single
// goroutine.
type rdfParser struct {
	opts  *Options
	rep   *reporter
	pipe  tokenPipe
	stmts StatementHandler
	ns    NamespaceHandler
	ext   ExtendedHandler
	errs  ErrorHandler
	scope *scopeTracker
	ids   *idTracker
	log   logr.Logger

	stack   []*frame
	nsStack [][]string
	pending *startTag
	batch   batch
	bnodes  int
	triples int
	loc     Location
}

func newRDFParser(ctx context.Context, opts *Options, src XMLEventSource) *rdfParser {
	p := &rdfParser{
		opts:  opts,
		stmts: opts.StatementHandler,
		ns:    opts.NamespaceHandler,
		ext:   opts.ExtendedHandler,
		errs:  opts.ErrorHandler,
		log:   opts.Logger,
	}
	if p.stmts == nil {
		p.stmts = nopStatementHandler{}
	}
	if p.ns == nil {
		p.ns = nopNamespaceHandler{}
	}
	if p.ext == nil {
		p.ext = nopExtendedHandler{}
	}
	if p.errs == nil {
		p.errs = LoggingErrorHandler{Logger: opts.Logger}
	}
	p.rep = &reporter{mode: opts.ErrorMode.Clone(), handler: p.errs}
	p.scope = newScopeTracker(p.ext)
	store := opts.IDStore
	if store == nil {
		store = NewMemoryIDStore()
	}
	p.ids = &idTracker{store: store, rep: p.rep}
	p.pipe = newPipe(ctx, opts.Pipe, opts.QueueCapacity, newAdapter(src))
	p.stack = []*frame{{kind: frameDocument, ctx: documentContext(opts)}}
	p.loc = Location{SystemID: opts.SystemID}
	return p
}

// parse runs the whole document.
func (p *rdfParser) parse() error {
	if err := p.begin(); err != nil {
		return p.fail(err)
	}
	for {
		more, err := p.step()
		if err != nil {
			return p.fail(err)
		}
		if !more {
			return p.end()
		}
	}
}

func (p *rdfParser) begin() error {
	p.log.V(1).Info("parse started", "systemID", p.opts.SystemID, "pipe", p.opts.Pipe.String(), "embedding", p.opts.Embedding)
	if err := p.ext.StartDocument(); err != nil {
		return handlerAborted(err, p.loc)
	}
	err := p.checkDocumentBase(p.top().ctx)
	if d, ok := isRecoverable(err); ok {
		return p.rep.recovered(d)
	}
	return err
}

// end finishes a document that reached end of input. Failures are
// passed through fail.
func (p *rdfParser) end() error {
	if err := p.pipe.close(); err != nil {
		return p.fail(err)
	}
	if err := p.scope.endDocument(); err != nil {
		return p.fail(handlerAborted(err, p.loc))
	}
	p.log.V(1).Info("parse finished", "systemID", p.opts.SystemID, "triples", p.triples, "warnings", p.rep.warnings, "errors", p.rep.errors)
	if err := p.ext.EndDocument(); err != nil {
		return p.fail(handlerAborted(err, p.loc))
	}
	return nil
}

// fail ends the parse abnormally. The error handler sees the fatal
// diagnostic once; its result replaces the returned error when non-nil.
func (p *rdfParser) fail(err error) error {
	d := asFatal(err, p.loc)
	_ = p.pipe.close()
	p.log.V(1).Info("parse aborted", "systemID", p.opts.SystemID, "condition", d.Condition.String(), "triples", p.triples)
	if herr := p.errs.FatalError(d); herr != nil {
		return herr
	}
	return d
}

func handlerAborted(err error, loc Location) *Diagnostic {
	return newFatal(ErrHandlerAborted, loc, err, "handler failed: %v", err)
}

func (p *rdfParser) top() *frame { return p.stack[len(p.stack)-1] }

func (p *rdfParser) push(fr *frame) { p.stack = append(p.stack, fr) }

func (p *rdfParser) pop() *frame {
	fr := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	return fr
}

// step consumes one token. It returns false once the document has ended.
func (p *rdfParser) step() (bool, error) {
	tok, err := p.pipe.next()
	if err != nil {
		return false, err
	}
	if tok.Location != (Location{}) {
		p.loc = tok.Location
	}
	if p.pending != nil {
		if tok.Kind.IsAttribute() {
			p.pending.attrs.add(tok)
			return true, nil
		}
		if tok.Kind == TokenDiagnostic && tok.Diag != nil && p.rep.mode.Mode(tok.Diag.Condition) != SeverityFatal {
			p.pending.diags = append(p.pending.diags, tok.Diag)
			return true, nil
		}
		st := p.pending
		p.pending = nil
		if err := p.startElement(st); err != nil {
			return false, err
		}
	}
	switch {
	case tok.Kind.IsElement():
		p.pending = &startTag{tok: tok}
		return true, nil
	case tok.Kind == TokenEOF:
		return false, nil
	case tok.Kind == TokenEnd:
		return true, p.endElement(tok)
	case tok.Kind.IsAttribute():
		return true, nil
	}
	return true, p.content(tok)
}

// production runs f and delivers its triples only if it succeeds.
func (p *rdfParser) production(f func() error) error {
	p.batch.reset()
	if err := f(); err != nil {
		p.batch.reset()
		return err
	}
	return p.flush()
}

func (p *rdfParser) flush() error {
	for i := range p.batch.stmts {
		st := &p.batch.stmts[i]
		st.s.used = true
		if st.member != nil {
			st.member.n++
			st.p = rdfRes("_" + strconv.Itoa(st.member.n))
		}
		var err error
		if st.o.literal {
			err = p.stmts.StatementLiteral(st.s, st.p, st.o.lit)
		} else {
			st.o.res.used = true
			err = p.stmts.Statement(st.s, st.p, st.o.res)
		}
		if err != nil {
			p.batch.reset()
			return handlerAborted(err, p.loc)
		}
		p.triples++
	}
	err := p.scope.endAll(p.batch.endAfter)
	p.batch.reset()
	if err != nil {
		return handlerAborted(err, p.loc)
	}
	return nil
}

func (p *rdfParser) startElement(st *startTag) error {
	if err := p.startPrefixes(st); err != nil {
		return err
	}
	parent := p.top()
	err := p.production(func() error { return p.open(parent, st) })
	if err == nil {
		return nil
	}
	d, ok := isRecoverable(err)
	if !ok {
		return err
	}
	p.push(&frame{kind: frameSkip, ctx: parent.ctx, name: st.tok.Name, loc: st.tok.Location})
	if parent.kind == frameProperty || parent.kind == frameEmpty {
		parent.broken = true
	}
	return p.rep.recovered(d)
}

func (p *rdfParser) endElement(tok Token) error {
	if len(p.stack) == 1 {
		return newFatal(ErrInternalError, tok.Location, nil, "end tag without open element")
	}
	fr := p.pop()
	err := p.production(func() error { return p.close(fr) })
	if err != nil {
		d, ok := isRecoverable(err)
		if !ok {
			return err
		}
		if err := p.rep.recovered(d); err != nil {
			return err
		}
	}
	if err := p.scope.endAll(fr.owned); err != nil {
		return handlerAborted(err, tok.Location)
	}
	return p.endPrefixes(tok.Location)
}

func (p *rdfParser) content(tok Token) error {
	fr := p.top()
	err := p.production(func() error { return p.handleContent(fr, tok) })
	if err == nil {
		return nil
	}
	d, ok := isRecoverable(err)
	if !ok {
		return err
	}
	if tok.Kind == TokenText && (fr.kind == frameProperty || fr.kind == frameEmpty) {
		fr.kind = frameSkip
	}
	return p.rep.recovered(d)
}

func (p *rdfParser) startPrefixes(st *startTag) error {
	var declared []string
	for _, t := range st.attrs.xmlns {
		if err := p.ns.StartPrefixMapping(t.Name.Local, t.Value); err != nil {
			return handlerAborted(err, t.Location)
		}
		declared = append(declared, t.Name.Local)
	}
	p.nsStack = append(p.nsStack, declared)
	return nil
}

func (p *rdfParser) endPrefixes(loc Location) error {
	if len(p.nsStack) == 0 {
		return nil
	}
	declared := p.nsStack[len(p.nsStack)-1]
	p.nsStack = p.nsStack[:len(p.nsStack)-1]
	for i := len(declared) - 1; i >= 0; i-- {
		if err := p.ns.EndPrefixMapping(declared[i]); err != nil {
			return handlerAborted(err, loc)
		}
	}
	return nil
}

// interprets reports whether a start tag under parent is read as RDF.
func (p *rdfParser) interprets(parent *frame, st *startTag) bool {
	switch parent.kind {
	case frameDocument:
		return !p.opts.Embedding || st.tok.Kind == TokenElemRDF
	case frameOutside:
		return st.tok.Kind == TokenElemRDF
	case frameLiteral, frameSkip:
		return false
	}
	return true
}

// open interprets a start tag. The new frame is pushed only on success.
func (p *rdfParser) open(parent *frame, st *startTag) error {
	rdf := p.interprets(parent, st)
	if rdf {
		for _, d := range st.diags {
			if err := p.rep.raise(d); err != nil {
				return err
			}
		}
	}
	ctx, err := p.childContext(parent.ctx, &st.attrs, rdf)
	if err != nil {
		return err
	}
	tok := st.tok
	switch parent.kind {
	case frameDocument, frameOutside:
		if tok.Kind == TokenElemRDF {
			return p.openRDF(ctx, st)
		}
		if parent.kind == frameOutside || p.opts.Embedding {
			p.push(&frame{kind: frameOutside, ctx: ctx, name: tok.Name, loc: tok.Location})
			return nil
		}
		return p.openNode(parent, ctx, st)
	case frameRDF, frameCollection:
		return p.openNode(parent, ctx, st)
	case frameProperty:
		if err := p.checkNodeContent(parent, tok.Location); err != nil {
			return err
		}
		return p.openNode(parent, ctx, st)
	case frameNode, frameResource:
		return p.openProperty(parent, ctx, st)
	case frameLiteral:
		p.openLiteralChild(parent, ctx, st)
		return nil
	case frameEmpty:
		return p.rep.reportf(ErrSyntaxError, tok.Location, "Content is not permitted in the empty property element %s.", parent.name.Qualified())
	}
	p.push(&frame{kind: frameSkip, ctx: ctx, name: tok.Name, loc: tok.Location})
	return nil
}

// openRDF starts an rdf:RDF element. Only xml: attributes and namespace
// declarations are allowed on it.
func (p *rdfParser) openRDF(ctx xmlContext, st *startTag) error {
	for _, t := range st.attrs.all {
		switch t.Kind {
		case TokenAttrXMLBase, TokenAttrXMLLang, TokenAttrXMLSpace:
			continue
		case TokenAttrOther:
			if isXMLReserved(t.Raw) {
				continue
			}
		}
		err := p.rep.reportf(ErrSyntaxError, t.Location, "The attribute %s is not permitted on rdf:RDF.", t.Raw.Qualified())
		if d, ok := isRecoverable(err); ok {
			if err := p.rep.recovered(d); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	p.push(&frame{kind: frameRDF, ctx: ctx, name: st.tok.Name, loc: st.tok.Location})
	return nil
}

func (p *rdfParser) close(fr *frame) error {
	switch fr.kind {
	case frameProperty:
		if fr.broken || fr.object != nil {
			return nil
		}
		return p.closeTextProperty(fr)
	case frameCollection:
		p.closeCollection(fr.coll)
	case frameLiteral:
		if !fr.litRoot {
			fr.lit.end(fr.name)
			return nil
		}
		return p.closeLiteral(fr)
	case frameEmpty:
		if !fr.broken && fr.deferred != nil {
			p.batch.stmts = append(p.batch.stmts, fr.deferred.stmts...)
			p.batch.endAfter = append(p.batch.endAfter, fr.deferred.endAfter...)
		}
	}
	return nil
}

func (p *rdfParser) handleContent(fr *frame, tok Token) error {
	switch tok.Kind {
	case TokenDiagnostic:
		if tok.Diag != nil {
			return p.rep.raise(tok.Diag)
		}
	case TokenText:
		return p.text(fr, tok)
	case TokenComment:
		if fr.kind == frameLiteral {
			fr.lit.comment(tok.Value)
		}
	case TokenPI:
		switch fr.kind {
		case frameLiteral:
			fr.lit.procInst(tok.Name.Local, tok.Value)
		case frameRDF, frameNode, frameResource, frameProperty, frameCollection, frameEmpty:
			return p.rep.reportf(WarnProcessingInstructionInRDF, tok.Location, "Processing instruction <?%s?> in RDF content is ignored.", tok.Name.Local)
		}
	}
	return nil
}

func (p *rdfParser) text(fr *frame, tok Token) error {
	ws := isXMLWhitespace(tok.Value)
	switch fr.kind {
	case frameLiteral:
		fr.lit.text(tok.Value)
	case frameProperty:
		if !ws {
			if fr.object != nil {
				return p.rep.reportf(ErrNotWhitespace, tok.Location, "Expected whitespace after the node element in %s, found %q.", fr.name.Qualified(), tok.Value)
			}
			fr.nonWS = true
		}
		fr.text.WriteString(tok.Value)
	case frameRDF, frameNode, frameResource, frameCollection:
		if !ws {
			return p.rep.reportf(ErrNotWhitespace, tok.Location, "Expected whitespace, found %q.", tok.Value)
		}
	case frameEmpty:
		if !ws {
			return p.rep.reportf(ErrSyntaxError, tok.Location, "Content is not permitted in the empty property element %s.", fr.name.Qualified())
		}
	}
	return nil
}

func isXMLWhitespace(s string) bool {
	return strings.Trim(s, " \t\r\n") == ""
}

func (p *rdfParser) newBNode() *Resource {
	p.bnodes++
	return newAnonResource(p.bnodes)
}

func rdfRes(local string) *Resource { return newURIResource(rdfNS + local) }

func damlRes(local string) *Resource { return newURIResource(damlNS + local) }

// nameResource returns the resource an element or attribute name denotes.
func (p *rdfParser) nameResource(q QName, loc Location) (*Resource, error) {
	uri := q.URI()
	if !hasURIScheme(uri) {
		if err := p.rep.reportf(WarnRelativeURI, loc, "Relative URIs are not permitted in RDF: specifically <%s>", uri); err != nil {
			return nil, err
		}
	}
	return newURIResource(uri), nil
}
