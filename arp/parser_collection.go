package arp

// collection is the state of an rdf:parseType="Collection" property
// element. Only the last cell is kept, so long lists use constant memory.
type collection struct {
	subject *Resource
	pred    *Resource
	reify   *Resource
	bag     *bagState
	last    *Resource
	daml    bool
}

func (c *collection) first() *Resource {
	if c.daml {
		return damlRes("first")
	}
	return rdfRes("first")
}

func (c *collection) rest() *Resource {
	if c.daml {
		return damlRes("rest")
	}
	return rdfRes("rest")
}

func (c *collection) empty() *Resource {
	if c.daml {
		return damlRes("nil")
	}
	return rdfRes("nil")
}

// openCollection turns fr into a collection property element.
func (p *rdfParser) openCollection(fr *frame, daml bool) {
	fr.kind = frameCollection
	fr.coll = &collection{subject: fr.subject, pred: fr.pred, reify: fr.reify, bag: fr.bag, daml: daml}
	p.push(fr)
}

// collectionCell emits the cell holding node. The returned function
// makes the cell current once the node's production has succeeded. The
// previous cell goes out of scope after its rest triple.
func (p *rdfParser) collectionCell(c *collection, node *Resource) func() {
	cell := p.newBNode()
	if c.last == nil {
		p.emitAbout(c.bag, c.subject, c.pred, resObject(cell), c.reify)
	} else {
		p.emit(c.last, c.rest(), resObject(cell))
		p.batch.endAfter = append(p.batch.endAfter, c.last)
	}
	if c.daml {
		p.emit(cell, rdfRes("type"), resObject(damlRes("List")))
	}
	p.emit(cell, c.first(), resObject(node))
	return func() { c.last = cell }
}

// closeCollection terminates the list.
func (p *rdfParser) closeCollection(c *collection) {
	if c.last == nil {
		p.emitAbout(c.bag, c.subject, c.pred, resObject(c.empty()), c.reify)
		return
	}
	p.emit(c.last, c.rest(), resObject(c.empty()))
	p.batch.endAfter = append(p.batch.endAfter, c.last)
}
