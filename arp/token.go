package arp

import "fmt"

// Well-known namespaces.
const (
	rdfNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS   = "http://www.w3.org/XML/1998/namespace"
	xmlnsNS = "http://www.w3.org/2000/xmlns/"
	damlNS  = "http://www.daml.org/2001/03/daml+oil#"
)

// QName is a namespace-resolved XML name.
type QName struct {
	Space  string // Namespace URI ("" when unqualified)
	Local  string // Local part
	Prefix string // Prefix as written ("" for none)
}

// URI returns the concatenation of namespace and local name.
func (q QName) URI() string { return q.Space + q.Local }

// Qualified returns the name as written, prefix:local.
func (q QName) Qualified() string {
	if q.Prefix == "" {
		return q.Local
	}
	return q.Prefix + ":" + q.Local
}

// TokenKind identifies a grammar terminal.
type TokenKind uint8

// Token kinds. Element kinds start an element; attribute kinds follow
// their element in a fixed order; TokenEnd closes the innermost element.
const (
	TokenElemRDF TokenKind = iota
	TokenElemDescription
	TokenElemLi
	TokenElemMember
	TokenElemOther
	TokenAttrXMLBase
	TokenAttrXMLLang
	TokenAttrXMLSpace
	TokenAttrID
	TokenAttrAbout
	TokenAttrNodeID
	TokenAttrResource
	TokenAttrBagID
	TokenAttrParseType
	TokenAttrDatatype
	TokenAttrType
	TokenAttrXMLNS
	TokenAttrMember
	TokenAttrOther
	TokenText
	TokenComment
	TokenPI
	TokenDiagnostic
	TokenEnd
	TokenEOF
)

var tokenKindNames = [...]string{
	TokenElemRDF:         "rdf:RDF",
	TokenElemDescription: "rdf:Description",
	TokenElemLi:          "rdf:li",
	TokenElemMember:      "rdf:_n",
	TokenElemOther:       "element",
	TokenAttrXMLBase:     "xml:base",
	TokenAttrXMLLang:     "xml:lang",
	TokenAttrXMLSpace:    "xml:space",
	TokenAttrID:          "rdf:ID",
	TokenAttrAbout:       "rdf:about",
	TokenAttrNodeID:      "rdf:nodeID",
	TokenAttrResource:    "rdf:resource",
	TokenAttrBagID:       "rdf:bagID",
	TokenAttrParseType:   "rdf:parseType",
	TokenAttrDatatype:    "rdf:datatype",
	TokenAttrType:        "rdf:type",
	TokenAttrXMLNS:       "xmlns",
	TokenAttrMember:      "rdf:_n attribute",
	TokenAttrOther:       "attribute",
	TokenText:            "text",
	TokenComment:         "comment",
	TokenPI:              "processing instruction",
	TokenDiagnostic:      "diagnostic",
	TokenEnd:             "end element",
	TokenEOF:             "EOF",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("token(%d)", uint8(k))
}

// IsElement reports whether k starts an element.
func (k TokenKind) IsElement() bool { return k <= TokenElemOther }

// IsAttribute reports whether k is an attribute terminal.
func (k TokenKind) IsAttribute() bool { return k >= TokenAttrXMLBase && k <= TokenAttrOther }

// Token is one grammar terminal.
type Token struct {
	Kind     TokenKind
	Location Location
	// Name is the interpreted name of an element or attribute. For
	// TokenAttrXMLNS, Name.Local holds the declared prefix. For TokenPI,
	// Name.Local holds the target.
	Name QName
	// Raw is the name as written, before unqualified attributes were
	// given their element's namespace.
	Raw QName
	// Value is the attribute value, text, comment or PI data.
	Value string
	// Diag is set for TokenDiagnostic.
	Diag *Diagnostic
}

func (t Token) String() string {
	switch {
	case t.Kind == TokenDiagnostic && t.Diag != nil:
		return "diagnostic " + t.Diag.Condition.String()
	case t.Kind.IsElement() || t.Kind.IsAttribute():
		return t.Kind.String() + " " + t.Name.Qualified()
	case t.Kind == TokenText:
		return fmt.Sprintf("text %q", t.Value)
	}
	return t.Kind.String()
}
