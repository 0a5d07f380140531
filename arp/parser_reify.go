package arp

// bagState collects the statements of a node element written with
// rdf:bagID.
type bagState struct {
	res *Resource
	n   int // members delivered so far
}

// openBag starts the bag named by rdf:bagID.
func (p *rdfParser) openBag(ctx xmlContext, t *Token) (*bagState, error) {
	if err := p.rep.report(WarnBagIDDeprecated, t.Location, "rdf:bagID has been removed from the RDF specifications."); err != nil {
		return nil, err
	}
	res, err := p.idResource(ctx, t)
	if err != nil {
		return nil, err
	}
	p.emit(res, rdfRes("type"), resObject(rdfRes("Bag")))
	return &bagState{res: res}, nil
}

// emit adds one triple to the current production.
func (p *rdfParser) emit(s, pred *Resource, o object) {
	p.batch.stmts = append(p.batch.stmts, stmt{s: s, p: pred, o: o})
}

// emitAbout adds a triple and, when reify or bag is set, its
// reification. Without an rdf:ID a bag member is reified by a fresh blank
// node, whose scope ends with the production.
func (p *rdfParser) emitAbout(bag *bagState, s, pred *Resource, o object, reify *Resource) {
	p.emit(s, pred, o)
	if reify == nil && bag == nil {
		return
	}
	if reify == nil {
		reify = p.newBNode()
		p.batch.endAfter = append(p.batch.endAfter, reify)
	}
	p.reify(reify, s, pred, o)
	if bag != nil {
		p.batch.stmts = append(p.batch.stmts, stmt{s: bag.res, o: resObject(reify), member: bag})
	}
}

// reify describes the triple (s pred o) with the statement resource r.
func (p *rdfParser) reify(r, s, pred *Resource, o object) {
	p.emit(r, rdfRes("type"), resObject(rdfRes("Statement")))
	p.emit(r, rdfRes("subject"), resObject(s))
	p.emit(r, rdfRes("predicate"), resObject(pred))
	p.emit(r, rdfRes("object"), o)
}
