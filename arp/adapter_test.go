package arp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func adapterTokens(t *testing.T, src XMLEventSource) []string {
	t.Helper()
	a := newAdapter(src)
	var out []string
	emit := func(tok Token) error {
		out = append(out, tok.String())
		return nil
	}
	for {
		more, err := a.advance(emit)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if !more {
			return out
		}
	}
}

func TestAdapterAttributeOrder(t *testing.T) {
	elem := QName{Space: rdfNS, Local: "Description", Prefix: "rdf"}
	src := &SliceEventSource{Events: []XMLEvent{
		{Kind: EventStartElement, Name: elem, Attrs: []XMLAttr{
			{Name: QName{Space: rdfNS, Local: "about", Prefix: "rdf"}, Value: "x"},
			{Name: QName{Space: xmlnsNS, Local: "rdf", Prefix: "xmlns"}, Value: rdfNS},
			{Name: QName{Local: "ID"}, Value: "i"},
			{Name: QName{Space: xmlNS, Local: "lang", Prefix: "xml"}, Value: "en"},
			{Name: QName{Space: rdfNS, Local: "_3", Prefix: "rdf"}, Value: "m"},
			{Name: QName{Local: "color"}, Value: "red"},
			{Name: QName{Space: rdfNS, Local: "aboutEach", Prefix: "rdf"}, Value: "y"},
			{Name: QName{Space: rdfNS, Local: "foo", Prefix: "rdf"}, Value: "z"},
			{Name: QName{Space: xmlNS, Local: "other", Prefix: "xml"}, Value: "q"},
		}},
		{Kind: EventCharData, Text: "t"},
		{Kind: EventEndElement, Name: elem},
	}}
	want := []string{
		"rdf:Description rdf:Description",
		"xmlns xmlns:rdf",
		"xml:lang xml:lang",
		"rdf:ID ID",
		"diagnostic WARN_UNQUALIFIED_RDF_ATTRIBUTE",
		"rdf:about rdf:about",
		"rdf:_n attribute rdf:_3",
		"attribute rdf:color",
		"diagnostic WARN_UNQUALIFIED_ATTRIBUTE",
		"diagnostic WARN_UNKNOWN_RDF_ATTRIBUTE",
		"attribute rdf:aboutEach",
		"diagnostic ERR_BAD_RDF_ATTRIBUTE",
		"attribute rdf:foo",
		"diagnostic WARN_UNKNOWN_RDF_ATTRIBUTE",
		"attribute xml:other",
		"diagnostic WARN_UNKNOWN_XML_ATTRIBUTE",
		`text "t"`,
		"end element",
		"EOF",
	}
	if diff := cmp.Diff(want, adapterTokens(t, src)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterSourceError(t *testing.T) {
	src := eventSourceFunc(func() (XMLEvent, error) {
		return XMLEvent{}, errors.New("disk on fire")
	})
	want := []string{"diagnostic ERR_GENERIC_IO", "EOF"}
	if diff := cmp.Diff(want, adapterTokens(t, src)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterEmitError(t *testing.T) {
	a := newAdapter(&SliceEventSource{Events: []XMLEvent{{Kind: EventCharData, Text: "t"}}})
	stop := errors.New("stop")
	if _, err := a.advance(func(Token) error { return stop }); !errors.Is(err, stop) {
		t.Fatalf("got %v, want the emit error", err)
	}
}

func TestClassifyElement(t *testing.T) {
	tests := []struct {
		name QName
		kind TokenKind
		cond Condition
	}{
		{QName{Space: rdfNS, Local: "RDF"}, TokenElemRDF, 0},
		{QName{Space: rdfNS, Local: "Description"}, TokenElemDescription, 0},
		{QName{Space: rdfNS, Local: "li"}, TokenElemLi, 0},
		{QName{Space: rdfNS, Local: "_7"}, TokenElemMember, 0},
		{QName{Space: rdfNS, Local: "Bag"}, TokenElemOther, 0},
		{QName{Space: rdfNS, Local: "about"}, TokenElemOther, ErrBadRDFElement},
		{QName{Space: rdfNS, Local: "Colour"}, TokenElemOther, WarnUnknownRDFElement},
		{QName{Space: exNS, Local: "p"}, TokenElemOther, 0},
		{QName{Local: "p"}, TokenElemOther, WarnUnqualifiedElement},
	}
	for _, tt := range tests {
		kind, cond, _ := classifyElement(tt.name)
		if kind != tt.kind || cond != tt.cond {
			t.Errorf("classifyElement(%s): got %s/%s, want %s/%s", tt.name.URI(), kind, cond, tt.kind, tt.cond)
		}
	}
}

func TestCheckNamespaceURI(t *testing.T) {
	tests := map[string]Condition{
		rdfNS:                 0,
		rdfNS + "x":           WarnBadRDFNamespaceURI,
		xmlNS:                 0,
		xmlNS + "/more":       WarnBadXMLNamespaceURI,
		"":                    0,
		"relative/ns#":        WarnRelativeNamespaceURIDeprecated,
		"http://example.org/": 0,
	}
	for uri, want := range tests {
		if got, _ := checkNamespaceURI(uri); got != want {
			t.Errorf("checkNamespaceURI(%q): got %s, want %s", uri, got, want)
		}
	}
}

func TestIsXMLReserved(t *testing.T) {
	tests := []struct {
		name QName
		want bool
	}{
		{QName{Space: xmlNS, Local: "lang", Prefix: "xml"}, true},
		{QName{Space: "urn:x", Local: "a", Prefix: "XMLfoo"}, true},
		{QName{Local: "xmlish"}, true},
		{QName{Space: "urn:x", Local: "xmlish", Prefix: "p"}, false},
		{QName{Local: "lang"}, false},
	}
	for _, tt := range tests {
		if got := isXMLReserved(tt.name); got != tt.want {
			t.Errorf("isXMLReserved(%+v): got %v, want %v", tt.name, got, tt.want)
		}
	}
}

type eventSourceFunc func() (XMLEvent, error)

func (f eventSourceFunc) NextEvent() (XMLEvent, error) { return f() }
