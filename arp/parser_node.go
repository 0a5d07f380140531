package arp

// openNode starts a node element under parent, linking it to the
// property or collection it is the object of.
func (p *rdfParser) openNode(parent *frame, ctx xmlContext, st *startTag) error {
	tok := st.tok
	a := &st.attrs
	loc := tok.Location
	switch tok.Kind {
	case TokenElemRDF, TokenElemLi:
		if err := p.rep.reportf(ErrBadRDFElement, loc, "%s is not allowed as a node element.", tok.Name.Qualified()); err != nil {
			return err
		}
	case TokenElemMember:
		if err := p.rep.reportf(WarnRDFNNAsType, loc, "%s is being used as a type.", tok.Name.Qualified()); err != nil {
			return err
		}
	}
	if err := p.checkNodeAttrs(a, loc); err != nil {
		return err
	}
	subj, fresh, err := p.subject(ctx, a, loc)
	if err != nil {
		return err
	}
	fr := &frame{kind: frameNode, ctx: ctx, name: tok.Name, loc: loc, subject: subj}
	if fresh {
		fr.owned = append(fr.owned, subj)
	}

	var commit func()
	switch parent.kind {
	case frameProperty:
		p.emitAbout(parent.bag, parent.subject, parent.pred, resObject(subj), parent.reify)
		commit = func() { parent.object = subj }
	case frameCollection:
		commit = p.collectionCell(parent.coll, subj)
	}

	if a.bagID != nil {
		bag, err := p.openBag(ctx, a.bagID)
		if err != nil {
			return err
		}
		fr.bag = bag
	}
	if tok.Kind != TokenElemDescription {
		typ, err := p.nameResource(tok.Name, loc)
		if err != nil {
			return err
		}
		p.emitAbout(fr.bag, subj, rdfRes("type"), resObject(typ), nil)
	}
	if err := p.nodeProperties(fr, subj, a); err != nil {
		return err
	}

	p.push(fr)
	if commit != nil {
		commit()
	}
	return nil
}

// checkNodeAttrs rejects attributes that cannot appear on a node element.
func (p *rdfParser) checkNodeAttrs(a *tagAttrs, loc Location) error {
	n := 0
	for _, t := range []*Token{a.id, a.about, a.nodeID} {
		if t != nil {
			n++
		}
	}
	if n > 1 {
		if err := p.rep.report(ErrSyntaxError, loc, "A node element can have at most one of the attributes rdf:ID, rdf:about or rdf:nodeID."); err != nil {
			return err
		}
	}
	for _, t := range []*Token{a.resource, a.parseType, a.datatype} {
		if t == nil {
			continue
		}
		if err := p.rep.reportf(ErrSyntaxError, t.Location, "The attribute %s is not permitted on a node element.", t.Name.Qualified()); err != nil {
			return err
		}
	}
	return nil
}

// subject returns the resource a node element describes. fresh is set
// when a new blank node was minted for it.
func (p *rdfParser) subject(ctx xmlContext, a *tagAttrs, loc Location) (subj *Resource, fresh bool, err error) {
	switch {
	case a.about != nil:
		uri, err := p.resolve(ctx, a.about.Value, a.about.Location)
		if err != nil {
			return nil, false, err
		}
		return newURIResource(uri), false, nil
	case a.id != nil:
		r, err := p.idResource(ctx, a.id)
		if err != nil {
			return nil, false, err
		}
		return r, false, nil
	case a.nodeID != nil:
		r, err := p.nodeIDResource(a.nodeID)
		if err != nil {
			return nil, false, err
		}
		return r, false, nil
	}
	return p.newBNode(), true, nil
}

// idResource mints the URI of an rdf:ID, rdf:bagID or property rdf:ID
// and records it for redefinition checks.
func (p *rdfParser) idResource(ctx xmlContext, t *Token) (*Resource, error) {
	if err := p.checkIDName(t, true); err != nil {
		return nil, err
	}
	uri, err := p.resolveID(ctx, t.Value, t.Location)
	if err != nil {
		return nil, err
	}
	if err := p.ids.check(t.Value, uri, ctx.base, t.Location); err != nil {
		return nil, err
	}
	return newURIResource(uri), nil
}

func (p *rdfParser) nodeIDResource(t *Token) (*Resource, error) {
	if err := p.checkIDName(t, false); err != nil {
		return nil, err
	}
	return p.scope.nodeID(t.Value), nil
}

// checkIDName requires an XML NCName. With qnameOK a value that looks
// like a QName only gets a warning.
func (p *rdfParser) checkIDName(t *Token, qnameOK bool) error {
	if isNCName(t.Value) {
		return nil
	}
	if qnameOK && isQNameLike(t.Value) {
		return p.rep.reportf(WarnQNameAsID, t.Location, "The value of %s looks like a QName: %q", t.Name.Qualified(), t.Value)
	}
	return p.rep.reportf(ErrBadName, t.Location, "The value of %s is not an XML NCName: %q", t.Name.Qualified(), t.Value)
}

// nodeProperties emits the rdf:type attribute and the property
// attributes of a node element.
func (p *rdfParser) nodeProperties(fr *frame, subj *Resource, a *tagAttrs) error {
	if a.typ != nil {
		uri, err := p.resolve(fr.ctx, a.typ.Value, a.typ.Location)
		if err != nil {
			return err
		}
		p.emitAbout(fr.bag, subj, rdfRes("type"), resObject(newURIResource(uri)), nil)
	}
	for i := range a.props {
		pred, lit, err := p.propertyAttr(fr.ctx, &a.props[i])
		if err != nil {
			return err
		}
		p.emitAbout(fr.bag, subj, pred, litObject(lit), nil)
	}
	return nil
}

// propertyAttr converts a property attribute into a predicate and a plain
// literal in the language in scope.
func (p *rdfParser) propertyAttr(ctx xmlContext, t *Token) (*Resource, Literal, error) {
	pred, err := p.nameResource(t.Name, t.Location)
	if err != nil {
		return nil, Literal{}, err
	}
	if err := p.checkString(t.Value, t.Location, "Literal"); err != nil {
		return nil, Literal{}, err
	}
	return pred, Literal{Lexical: t.Value, Lang: ctx.lang}, nil
}
