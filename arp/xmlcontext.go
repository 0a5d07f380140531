package arp

// baseKind classifies the base URI in scope.
type baseKind uint8

const (
	baseAbsent baseKind = iota
	baseEmpty
	baseRelative
	baseMalformed
	baseAbsolute
)

// xmlContext is the inherited XML state of an element: its base URI and
// language.
type xmlContext struct {
	base        string
	kind        baseKind
	fromXMLBase bool
	lang        string
}

// documentContext returns the context at the document root.
func documentContext(o *Options) xmlContext {
	if !o.HasBase {
		return xmlContext{kind: baseAbsent}
	}
	return classifyBase(o.Base)
}

func classifyBase(base string) xmlContext {
	switch {
	case base == "":
		return xmlContext{kind: baseEmpty}
	case validateURIRef(base) != nil:
		return xmlContext{base: base, kind: baseMalformed}
	case !hasURIScheme(base):
		return xmlContext{base: stripFragment(base), kind: baseRelative}
	}
	return xmlContext{base: stripFragment(base), kind: baseAbsolute}
}

// checkDocumentBase reports problems with the base URI a parse starts
// with.
func (p *rdfParser) checkDocumentBase(ctx xmlContext) error {
	loc := Location{SystemID: p.opts.SystemID}
	switch ctx.kind {
	case baseAbsent:
		return p.rep.report(IgnNoBaseURISpecified, loc, "No base URI specified; relative URIs cannot be resolved.")
	case baseRelative:
		return p.rep.reportf(WarnRelativeURI, loc, "Base URI <%s> is relative.", ctx.base)
	case baseMalformed:
		if err := validateURIRef(ctx.base); err != nil {
			return p.rep.reportf(WarnMalformedURI, loc, "Base URI <%s> is malformed: %v", ctx.base, err)
		}
	}
	return nil
}

// childContext applies the xml:base and xml:lang attributes of a start
// tag. Problems are reported only when report is set.
func (p *rdfParser) childContext(parent xmlContext, a *tagAttrs, report bool) (xmlContext, error) {
	ctx := parent
	if a.base != nil {
		if report {
			if err := p.rep.report(IgnXMLBaseUsed, a.base.Location, "xml:base is used."); err != nil {
				return ctx, err
			}
		}
		next, err := p.applyXMLBase(parent, a.base.Value, a.base.Location, report)
		if err != nil {
			return ctx, err
		}
		ctx.base, ctx.kind, ctx.fromXMLBase = next.base, next.kind, true
	}
	if a.lang != nil {
		if report {
			if err := p.checkLang(a.lang.Value, a.lang.Location); err != nil {
				return ctx, err
			}
		}
		ctx.lang = a.lang.Value
	}
	return ctx, nil
}

func (p *rdfParser) applyXMLBase(parent xmlContext, value string, loc Location, report bool) (xmlContext, error) {
	if err := validateURIRef(value); err != nil {
		if report {
			if err := p.rep.reportf(WarnMalformedURI, loc, "xml:base <%s> is malformed: %v", value, err); err != nil {
				return parent, err
			}
		}
		return xmlContext{base: value, kind: baseMalformed}, nil
	}
	if hasURIScheme(value) {
		return xmlContext{base: stripFragment(value), kind: baseAbsolute}, nil
	}
	switch parent.kind {
	case baseAbsolute:
		return xmlContext{base: stripFragment(resolveURI(parent.base, value)), kind: baseAbsolute}, nil
	case baseRelative:
		return xmlContext{base: stripFragment(resolveURI(parent.base, value)), kind: baseRelative}, nil
	case baseMalformed:
		return parent, nil
	}
	if value == "" {
		return parent, nil
	}
	if report {
		if err := p.rep.reportf(WarnRelativeURI, loc, "xml:base <%s> is relative.", value); err != nil {
			return parent, err
		}
	}
	return xmlContext{base: stripFragment(value), kind: baseRelative}, nil
}

// resolve turns a URI reference into the URI it denotes in ctx.
func (p *rdfParser) resolve(ctx xmlContext, ref string, loc Location) (string, error) {
	if err := p.checkString(ref, loc, "URI"); err != nil {
		return "", err
	}
	if verr := validateURIRef(ref); verr != nil {
		if err := p.rep.reportf(WarnMalformedURI, loc, "Bad URI <%s>: %v", ref, verr); err != nil {
			return "", err
		}
	}
	if hasURIScheme(ref) {
		return ref, nil
	}
	switch ctx.kind {
	case baseAbsent:
		if err := p.rep.reportf(WarnRelativeURI, loc, "Relative URIs are not permitted in RDF: specifically <%s>", ref); err != nil {
			return "", err
		}
		if err := p.rep.reportf(ErrResolvingURIAgainstNullBase, loc, "Base URI is null, but there are relative URIs to resolve: <%s>", ref); err != nil {
			return "", err
		}
		return ref, nil
	case baseEmpty:
		if err := p.rep.reportf(WarnResolvingURIAgainstEmptyBase, loc, "Resolving <%s> against an empty base URI.", ref); err != nil {
			return "", err
		}
		return ref, nil
	case baseRelative:
		if err := p.rep.reportf(ErrResolvingAgainstRelativeBase, loc, "Resolving <%s> against the relative base URI <%s>.", ref, ctx.base); err != nil {
			return "", err
		}
		uri := resolveURI(ctx.base, ref)
		if err := p.rep.reportf(WarnRelativeURI, loc, "Relative URIs are not permitted in RDF: specifically <%s>", uri); err != nil {
			return "", err
		}
		return uri, nil
	case baseMalformed:
		if err := p.rep.reportf(ErrResolvingAgainstMalformedBase, loc, "Resolving <%s> against the malformed base URI <%s>.", ref, ctx.base); err != nil {
			return "", err
		}
		return ref, nil
	}
	uri := resolveURI(ctx.base, ref)
	if ctx.fromXMLBase {
		if err := p.rep.reportf(IgnXMLBaseSignificant, loc, "xml:base changes the resolution of <%s> to <%s>.", ref, uri); err != nil {
			return "", err
		}
	}
	return uri, nil
}

// resolveID returns the URI minted by an rdf:ID or rdf:bagID value.
func (p *rdfParser) resolveID(ctx xmlContext, id string, loc Location) (string, error) {
	return p.resolve(ctx, "#"+id, loc)
}
