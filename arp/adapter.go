package arp

import (
	"io"
	"strings"
)

// specialAttr is one entry of the fixed attribute order.
type specialAttr struct {
	space string
	local string
	kind  TokenKind
}

// specialAttrs lists the attributes with dedicated tokens, in the order
// their tokens are emitted.
var specialAttrs = []specialAttr{
	{xmlNS, "base", TokenAttrXMLBase},
	{xmlNS, "lang", TokenAttrXMLLang},
	{xmlNS, "space", TokenAttrXMLSpace},
	{rdfNS, "ID", TokenAttrID},
	{rdfNS, "about", TokenAttrAbout},
	{rdfNS, "nodeID", TokenAttrNodeID},
	{rdfNS, "resource", TokenAttrResource},
	{rdfNS, "bagID", TokenAttrBagID},
	{rdfNS, "parseType", TokenAttrParseType},
	{rdfNS, "datatype", TokenAttrDatatype},
	{rdfNS, "type", TokenAttrType},
}

// knownRDFNames are RDF vocabulary terms usable as element or attribute names.
var knownRDFNames = map[string]bool{
	"Bag": true, "Seq": true, "Alt": true, "List": true, "XMLLiteral": true,
	"Property": true, "Statement": true, "type": true, "subject": true,
	"predicate": true, "object": true, "value": true, "first": true,
	"rest": true, "nil": true,
}

// badRDFNames are syntax names that may not be used as element or
// attribute names outside their syntactic role.
var badRDFNames = map[string]bool{
	"ID": true, "about": true, "aboutEach": true, "aboutEachPrefix": true,
	"resource": true, "bagID": true, "parseType": true, "datatype": true,
	"li": true, "type": true, "Description": true, "nodeID": true,
}

// adapter turns XML events into grammar tokens. It owns its event source.
type adapter struct {
	src  XMLEventSource
	done bool
}

func newAdapter(src XMLEventSource) *adapter {
	return &adapter{src: src}
}

// advance converts one XML event. It returns false once TokenEOF has been
// emitted.
func (a *adapter) advance(emit func(Token) error) (bool, error) {
	if a.done {
		return false, nil
	}
	ev, err := a.src.NextEvent()
	if err == io.EOF {
		a.done = true
		return false, emit(Token{Kind: TokenEOF})
	}
	if err != nil {
		a.done = true
		d := &Diagnostic{Condition: ErrGenericIO, Location: ev.Location, Message: err.Error(), Err: err}
		if err := emit(Token{Kind: TokenDiagnostic, Location: ev.Location, Diag: d}); err != nil {
			return false, err
		}
		return false, emit(Token{Kind: TokenEOF, Location: ev.Location})
	}
	switch ev.Kind {
	case EventStartElement:
		return true, a.startElement(ev, emit)
	case EventEndElement:
		return true, emit(Token{Kind: TokenEnd, Location: ev.Location, Name: ev.Name, Raw: ev.Name})
	case EventCharData:
		return true, emit(Token{Kind: TokenText, Location: ev.Location, Value: ev.Text})
	case EventComment:
		return true, emit(Token{Kind: TokenComment, Location: ev.Location, Value: ev.Text})
	case EventProcInst:
		return true, emit(Token{Kind: TokenPI, Location: ev.Location, Name: ev.Name, Raw: ev.Name, Value: ev.Text})
	case EventDiagnostic:
		return true, emit(Token{Kind: TokenDiagnostic, Location: ev.Location, Diag: ev.Diag})
	}
	return true, nil
}

func (a *adapter) startElement(ev XMLEvent, emit func(Token) error) error {
	loc := ev.Location
	diag := func(c Condition, msg string) error {
		return emit(Token{Kind: TokenDiagnostic, Location: loc, Diag: &Diagnostic{Condition: c, Location: loc, Message: msg}})
	}

	kind, cond, msg := classifyElement(ev.Name)
	if err := emit(Token{Kind: kind, Location: loc, Name: ev.Name, Raw: ev.Name}); err != nil {
		return err
	}
	if cond != 0 {
		if err := diag(cond, msg); err != nil {
			return err
		}
	}

	used := make([]bool, len(ev.Attrs))
	for i, at := range ev.Attrs {
		if at.Name.Space != xmlnsNS {
			continue
		}
		used[i] = true
		if err := emit(Token{Kind: TokenAttrXMLNS, Location: loc, Name: at.Name, Raw: at.Name, Value: at.Value}); err != nil {
			return err
		}
		if cond, msg := checkNamespaceURI(at.Value); cond != 0 {
			if err := diag(cond, msg); err != nil {
				return err
			}
		}
	}

	for _, sp := range specialAttrs {
		for i, at := range ev.Attrs {
			if used[i] || at.Name.Local != sp.local {
				continue
			}
			qualified := at.Name.Space == sp.space
			unqualified := at.Name.Space == "" && sp.space == rdfNS
			if !qualified && !unqualified {
				continue
			}
			used[i] = true
			name := QName{Space: sp.space, Local: sp.local, Prefix: at.Name.Prefix}
			if err := emit(Token{Kind: sp.kind, Location: loc, Name: name, Raw: at.Name, Value: at.Value}); err != nil {
				return err
			}
			if unqualified {
				if err := diag(WarnUnqualifiedRDFAttribute, "Unqualified use of rdf:"+sp.local+" is deprecated."); err != nil {
					return err
				}
			}
		}
	}

	for i, at := range ev.Attrs {
		if used[i] {
			continue
		}
		if err := a.otherAttr(ev.Name, at, loc, emit, diag); err != nil {
			return err
		}
	}
	return nil
}

func (a *adapter) otherAttr(elem QName, at XMLAttr, loc Location, emit func(Token) error, diag func(Condition, string) error) error {
	tok := Token{Kind: TokenAttrOther, Location: loc, Name: at.Name, Raw: at.Name, Value: at.Value}
	if isXMLReserved(at.Name) {
		if err := emit(tok); err != nil {
			return err
		}
		return diag(WarnUnknownXMLAttribute, "Discarding unrecognized xml attribute "+at.Name.Qualified()+".")
	}
	var pending []func() error
	if at.Name.Space == "" {
		tok.Name = QName{Space: elem.Space, Local: at.Name.Local, Prefix: elem.Prefix}
		name := at.Name.Local
		pending = append(pending, func() error {
			return diag(WarnUnqualifiedAttribute, "Unqualified attribute "+name+" is deprecated; using the element namespace.")
		})
	}
	if tok.Name.Space == rdfNS {
		local := tok.Name.Local
		switch {
		case isMemberName(local):
			tok.Kind = TokenAttrMember
		case knownRDFNames[local]:
		case badRDFNames[local]:
			pending = append(pending, func() error {
				return diag(ErrBadRDFAttribute, "rdf:"+local+" is not allowed as an attribute here.")
			})
		default:
			pending = append(pending, func() error {
				return diag(WarnUnknownRDFAttribute, "rdf:"+local+" is not a recognized RDF property or type.")
			})
		}
	}
	if err := emit(tok); err != nil {
		return err
	}
	for _, f := range pending {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// classifyElement picks the token kind of an element and any diagnostic
// its name deserves.
func classifyElement(name QName) (TokenKind, Condition, string) {
	if name.Space == "" {
		return TokenElemOther, WarnUnqualifiedElement, "Unqualified element " + name.Local + "."
	}
	if name.Space != rdfNS {
		return TokenElemOther, 0, ""
	}
	switch local := name.Local; {
	case local == "RDF":
		return TokenElemRDF, 0, ""
	case local == "Description":
		return TokenElemDescription, 0, ""
	case local == "li":
		return TokenElemLi, 0, ""
	case isMemberName(local):
		return TokenElemMember, 0, ""
	case knownRDFNames[local]:
		return TokenElemOther, 0, ""
	case badRDFNames[local]:
		return TokenElemOther, ErrBadRDFElement, "rdf:" + local + " is not allowed as an element tag."
	default:
		return TokenElemOther, WarnUnknownRDFElement, "rdf:" + local + " is not a recognized RDF property or type."
	}
}

// checkNamespaceURI validates the URI of a namespace declaration.
func checkNamespaceURI(uri string) (Condition, string) {
	switch {
	case uri != rdfNS && strings.HasPrefix(uri, rdfNS):
		return WarnBadRDFNamespaceURI, "Namespace URI " + uri + " extends the RDF namespace."
	case uri != xmlNS && strings.HasPrefix(uri, xmlNS):
		return WarnBadXMLNamespaceURI, "Namespace URI " + uri + " extends the XML namespace."
	case uri != "" && !hasURIScheme(uri):
		return WarnRelativeNamespaceURIDeprecated, "The namespace URI <" + uri + "> is relative."
	}
	return 0, ""
}

// isXMLReserved reports whether an attribute name is reserved by XML:
// in the xml namespace, or written with a prefix or name starting with
// "xml".
func isXMLReserved(n QName) bool {
	if n.Space == xmlNS {
		return true
	}
	if n.Prefix != "" {
		return hasXMLPrefix(n.Prefix)
	}
	return n.Space == "" && hasXMLPrefix(n.Local)
}

func hasXMLPrefix(s string) bool {
	return len(s) >= 3 && strings.EqualFold(s[:3], "xml")
}
