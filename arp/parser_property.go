package arp

import (
	"strconv"
	"strings"
)

// openProperty starts a property element of the node or resource in
// parent.
func (p *rdfParser) openProperty(parent *frame, ctx xmlContext, st *startTag) error {
	tok := st.tok
	a := &st.attrs
	loc := tok.Location

	var pred *Resource
	switch tok.Kind {
	case TokenElemLi:
		parent.li++
		pred = rdfRes("_" + strconv.Itoa(parent.li))
	case TokenElemDescription, TokenElemRDF:
		if err := p.rep.reportf(ErrBadRDFElement, loc, "%s is not allowed as a property element.", tok.Name.Qualified()); err != nil {
			return err
		}
		fallthrough
	default:
		var err error
		if pred, err = p.nameResource(tok.Name, loc); err != nil {
			return err
		}
	}

	for _, t := range []*Token{a.about, a.bagID} {
		if t == nil {
			continue
		}
		if err := p.rep.reportf(ErrSyntaxError, t.Location, "The attribute %s is not permitted on a property element.", t.Name.Qualified()); err != nil {
			return err
		}
	}
	if msg := propertyAttrConflict(a); msg != "" {
		if err := p.rep.report(ErrSyntaxError, loc, msg); err != nil {
			return err
		}
	}

	fr := &frame{ctx: ctx, name: tok.Name, loc: loc, subject: parent.subject, pred: pred, bag: parent.bag}
	if a.id != nil {
		r, err := p.idResource(ctx, a.id)
		if err != nil {
			return err
		}
		fr.reify = r
	}

	switch {
	case a.parseType != nil:
		return p.openParseType(fr, a.parseType)
	case a.resource != nil || a.nodeID != nil || a.typ != nil || len(a.props) > 0:
		return p.openEmpty(fr, a)
	}
	if a.datatype != nil {
		uri, err := p.resolve(ctx, a.datatype.Value, a.datatype.Location)
		if err != nil {
			return err
		}
		fr.datatype = uri
	}
	fr.kind = frameProperty
	p.push(fr)
	return nil
}

func (p *rdfParser) openParseType(fr *frame, t *Token) error {
	switch t.Value {
	case "Literal":
		p.openLiteral(fr)
		return nil
	case "Resource":
		obj := p.newBNode()
		p.emitAbout(fr.bag, fr.subject, fr.pred, resObject(obj), fr.reify)
		fr.kind = frameResource
		fr.subject = obj
		fr.bag = nil
		fr.owned = append(fr.owned, obj)
		p.push(fr)
		return nil
	case "Collection":
		p.openCollection(fr, false)
		return nil
	case "daml:collection":
		if err := p.rep.report(IgnDAMLCollection, t.Location, "rdf:parseType=\"daml:collection\" is a DAML+OIL extension."); err != nil {
			return err
		}
		if p.rep.mode.Mode(WarnInStrictMode) < SeverityError {
			p.openCollection(fr, true)
			return nil
		}
		if err := p.rep.report(WarnUnknownParseType, t.Location, "rdf:parseType=\"daml:collection\" is not supported in strict mode, treating as Literal."); err != nil {
			return err
		}
		p.openLiteral(fr)
		return nil
	}
	if err := p.rep.reportf(WarnUnknownParseType, t.Location, "Unknown rdf:parseType %q, treating as Literal.", t.Value); err != nil {
		return err
	}
	p.openLiteral(fr)
	return nil
}

// openEmpty starts a property element whose object is given by its
// attributes. Its triples are delivered when the element ends, provided
// it has no content.
func (p *rdfParser) openEmpty(fr *frame, a *tagAttrs) error {
	var obj *Resource
	switch {
	case a.resource != nil:
		uri, err := p.resolve(fr.ctx, a.resource.Value, a.resource.Location)
		if err != nil {
			return err
		}
		obj = newURIResource(uri)
	case a.nodeID != nil:
		r, err := p.nodeIDResource(a.nodeID)
		if err != nil {
			return err
		}
		obj = r
	default:
		obj = p.newBNode()
		fr.owned = append(fr.owned, obj)
	}

	outer := p.batch
	p.batch = batch{}
	defer func() {
		fr.deferred = &batch{stmts: p.batch.stmts, endAfter: p.batch.endAfter}
		p.batch = outer
	}()

	p.emitAbout(fr.bag, fr.subject, fr.pred, resObject(obj), fr.reify)
	if a.typ != nil {
		uri, err := p.resolve(fr.ctx, a.typ.Value, a.typ.Location)
		if err != nil {
			return err
		}
		p.emit(obj, rdfRes("type"), resObject(newURIResource(uri)))
	}
	for i := range a.props {
		pred, lit, err := p.propertyAttr(fr.ctx, &a.props[i])
		if err != nil {
			return err
		}
		p.emit(obj, pred, litObject(lit))
	}
	fr.kind = frameEmpty
	fr.object = obj
	p.push(fr)
	return nil
}

// checkNodeContent checks that a property element may take a node
// element as its content.
func (p *rdfParser) checkNodeContent(fr *frame, loc Location) error {
	switch {
	case fr.nonWS:
		return p.rep.reportf(ErrNotWhitespace, loc, "The property element %s has both text and element content.", fr.name.Qualified())
	case fr.object != nil:
		return p.rep.reportf(ErrSyntaxError, loc, "The property element %s can only have one node element as content.", fr.name.Qualified())
	case fr.datatype != "":
		return p.rep.reportf(ErrSyntaxError, loc, "The property element %s has rdf:datatype and cannot contain a node element.", fr.name.Qualified())
	}
	return nil
}

// closeTextProperty emits the literal of a property element with text or
// no content.
func (p *rdfParser) closeTextProperty(fr *frame) error {
	text := fr.text.String()
	if err := p.checkString(text, fr.loc, "Literal"); err != nil {
		return err
	}
	lit := Literal{Lexical: text}
	if fr.datatype != "" {
		lit.Datatype = IRI{Value: fr.datatype}
	} else {
		lit.Lang = fr.ctx.lang
	}
	p.emitAbout(fr.bag, fr.subject, fr.pred, litObject(lit), fr.reify)
	return nil
}

// propertyAttrConflict describes an incompatible combination of
// attributes on a property element, or returns "".
func propertyAttrConflict(a *tagAttrs) string {
	pt, dt := a.parseType != nil, a.datatype != nil
	res, nid := a.resource != nil, a.nodeID != nil
	if !pt && !dt {
		if res && nid {
			return "On a property element, only one of the attributes rdf:nodeID or rdf:resource is permitted."
		}
		return ""
	}

	var props []string
	for _, t := range a.props {
		props = append(props, t.Raw.Qualified())
	}
	propList := "(" + strings.Join(props, ", ") + ")"

	type group struct {
		phrase string
		props  bool
	}
	var groups []group
	var names []string
	if pt {
		names = append(names, "rdf:parseType")
	}
	if dt {
		names = append(names, "rdf:datatype")
	}
	hasType := a.typ != nil
	if hasType {
		groups = append(groups, group{phrase: "the attribute rdf:type"})
		names = append(names, "rdf:type")
	}
	if len(props) > 0 {
		groups = append(groups, group{phrase: "the property attributes " + propList, props: true})
	}
	switch {
	case res && nid:
		groups = append(groups, group{phrase: "the mutually incompatible attributes rdf:nodeID and rdf:resource"})
		names = append(names, "rdf:nodeID", "rdf:resource")
	case res:
		groups = append(groups, group{phrase: "the attribute rdf:resource"})
		names = append(names, "rdf:resource")
	case nid:
		groups = append(groups, group{phrase: "the attribute rdf:nodeID"})
		names = append(names, "rdf:nodeID")
	}

	if len(groups) <= 1 {
		if len(groups) == 1 && groups[0].props {
			if pt && dt {
				return "On a property element, only one of the rdf:parseType or rdf:datatype attributes or property attributes " + propList + " is permitted."
			}
			return "The attribute " + names[0] + " is not permitted with property attributes " + propList + " on a property element."
		}
		if len(names) < 2 {
			return ""
		}
		return "On a property element, only one of the attributes " + joinOr(names) + " is permitted."
	}

	left := "the attribute rdf:parseType is"
	switch {
	case pt && dt:
		left = "the mutually incompatible attributes rdf:datatype and rdf:parseType are"
	case dt:
		left = "the attribute rdf:datatype is"
	}
	phrases := make([]string, len(groups))
	for i, g := range groups {
		phrases[i] = g.phrase
	}
	var right string
	switch {
	case len(groups) > 2:
		right = "each of " + strings.Join(phrases[:len(phrases)-1], ", ") + " and " + phrases[len(phrases)-1]
	case hasType:
		right = "both " + phrases[0] + " and " + phrases[1]
	default:
		right = phrases[0] + " and " + phrases[1]
	}
	return "On a property element, " + left + " incompatible with " + right + "."
}

// joinOr joins names as "a, b or c".
func joinOr(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
