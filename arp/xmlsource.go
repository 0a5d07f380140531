package arp

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"
)

var errUnsupportedCharset = errors.New("unsupported character encoding")

// XMLSource is an XMLEventSource reading a document with encoding/xml.
// It resolves namespaces itself so prefixes stay available, checks that
// end tags match and that every prefix is bound, and decodes non-UTF-8
// input through the IANA and WHATWG encoding registries.
type XMLSource struct {
	dec      *xml.Decoder
	systemID string
	scopes   []map[string]string
	open     []xml.Name
	pending  []XMLEvent
	done     bool
	rootSeen bool
	rootDone bool
}

// NewXMLSource returns a source reading r. systemID names the document in
// diagnostics.
func NewXMLSource(r io.Reader, systemID string) *XMLSource {
	s := &XMLSource{systemID: systemID}
	s.dec = xml.NewDecoder(r)
	s.dec.CharsetReader = s.charsetReader
	return s
}

// NextEvent returns the next event, or io.EOF after the last one.
func (s *XMLSource) NextEvent() (XMLEvent, error) {
	for len(s.pending) == 0 {
		if s.done {
			return XMLEvent{}, io.EOF
		}
		s.read()
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev, nil
}

func (s *XMLSource) location() Location {
	line, col := s.dec.InputPos()
	return Location{SystemID: s.systemID, Line: line, Column: col}
}

func (s *XMLSource) emit(ev XMLEvent) {
	s.pending = append(s.pending, ev)
}

func (s *XMLSource) diag(c Condition, loc Location, err error, format string, args ...interface{}) {
	s.emit(XMLEvent{
		Kind:     EventDiagnostic,
		Location: loc,
		Diag:     &Diagnostic{Condition: c, Location: loc, Message: fmt.Sprintf(format, args...), Err: err},
	})
}

// fatal reports an XML level failure and ends the event stream.
func (s *XMLSource) fatal(loc Location, err error, format string, args ...interface{}) {
	s.diag(ErrSAXFatalError, loc, err, format, args...)
	s.done = true
}

func (s *XMLSource) read() {
	tok, err := s.dec.RawToken()
	loc := s.location()
	if err == io.EOF {
		switch {
		case len(s.open) > 0:
			s.fatal(loc, nil, "XML document structures must start and end within the same entity.")
		case !s.rootSeen:
			s.fatal(loc, nil, "Premature end of file.")
		default:
			s.done = true
		}
		return
	}
	if err != nil {
		s.fail(loc, err)
		return
	}
	switch t := tok.(type) {
	case xml.StartElement:
		s.startElement(t, loc)
	case xml.EndElement:
		s.endElement(t, loc)
	case xml.CharData:
		if len(s.open) == 0 {
			if strings.TrimSpace(string(t)) != "" {
				s.fatal(loc, nil, "Content is not allowed outside the root element.")
			}
			return
		}
		s.emit(XMLEvent{Kind: EventCharData, Location: loc, Text: string(t)})
	case xml.Comment:
		s.emit(XMLEvent{Kind: EventComment, Location: loc, Text: string(t)})
	case xml.ProcInst:
		if strings.EqualFold(t.Target, "xml") {
			return
		}
		s.emit(XMLEvent{Kind: EventProcInst, Location: loc, Name: QName{Local: t.Target}, Text: string(t.Inst)})
	}
}

func (s *XMLSource) fail(loc Location, err error) {
	var syntax *xml.SyntaxError
	switch {
	case errors.Is(err, errUnsupportedCharset):
		s.fatal(loc, err, "%v", err)
	case errors.As(err, &syntax):
		if syntax.Line > 0 {
			loc.Line = syntax.Line
			loc.Column = 0
		}
		s.fatal(loc, err, "%s", syntax.Msg)
	default:
		s.diag(ErrGenericIO, loc, err, "%v", err)
		s.done = true
	}
}

func (s *XMLSource) startElement(t xml.StartElement, loc Location) {
	if s.rootDone {
		s.fatal(loc, nil, "The markup in the document following the root element must be well-formed.")
		return
	}
	s.rootSeen = true
	var scope map[string]string
	for _, a := range t.Attr {
		prefix, ok := declaredPrefix(a.Name)
		if !ok {
			continue
		}
		if scope == nil {
			scope = make(map[string]string)
		}
		scope[prefix] = a.Value
	}
	s.scopes = append(s.scopes, scope)
	s.open = append(s.open, t.Name)

	name, ok := s.resolve(t.Name, true)
	if !ok {
		s.fatal(loc, nil, "The prefix %q for element %q is not bound.", t.Name.Space, rawName(t.Name))
		return
	}
	attrs := make([]XMLAttr, 0, len(t.Attr))
	seen := make(map[QName]bool, len(t.Attr))
	for _, a := range t.Attr {
		var qn QName
		if prefix, ok := declaredPrefix(a.Name); ok {
			qn = QName{Space: xmlnsNS, Local: prefix, Prefix: "xmlns"}
		} else if qn, ok = s.resolve(a.Name, false); !ok {
			s.fatal(loc, nil, "The prefix %q for attribute %q is not bound.", a.Name.Space, rawName(a.Name))
			return
		}
		key := QName{Space: qn.Space, Local: qn.Local}
		if seen[key] {
			s.fatal(loc, nil, "Attribute %q was already specified for element %q.", rawName(a.Name), rawName(t.Name))
			return
		}
		seen[key] = true
		attrs = append(attrs, XMLAttr{Name: qn, Value: a.Value})
	}
	s.emit(XMLEvent{Kind: EventStartElement, Location: loc, Name: name, Attrs: attrs})
}

func (s *XMLSource) endElement(t xml.EndElement, loc Location) {
	if len(s.open) == 0 {
		s.fatal(loc, nil, "Unexpected end tag %q.", rawName(t.Name))
		return
	}
	top := s.open[len(s.open)-1]
	if top != t.Name {
		s.fatal(loc, nil, "The element type %q must be terminated by the matching end-tag \"</%s>\".", rawName(top), rawName(top))
		return
	}
	name, _ := s.resolve(t.Name, true)
	s.open = s.open[:len(s.open)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	if len(s.open) == 0 {
		s.rootDone = true
	}
	s.emit(XMLEvent{Kind: EventEndElement, Location: loc, Name: name})
}

// resolve maps a raw name (Space holds the prefix) to a namespace URI.
// Unprefixed attributes have no namespace.
func (s *XMLSource) resolve(n xml.Name, element bool) (QName, bool) {
	prefix := n.Space
	switch prefix {
	case "xml":
		return QName{Space: xmlNS, Local: n.Local, Prefix: prefix}, true
	case "xmlns":
		return QName{Space: xmlnsNS, Local: n.Local, Prefix: prefix}, true
	case "":
		if !element {
			return QName{Local: n.Local}, true
		}
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if uri, ok := s.scopes[i][prefix]; ok {
			if uri == "" && prefix != "" {
				return QName{}, false
			}
			return QName{Space: uri, Local: n.Local, Prefix: prefix}, true
		}
	}
	if prefix == "" {
		return QName{Local: n.Local}, true
	}
	return QName{}, false
}

func (s *XMLSource) charsetReader(label string, input io.Reader) (io.Reader, error) {
	loc := s.location()
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		fallback, name := charset.Lookup(label)
		if fallback == nil {
			s.diag(WarnUnsupportedEncoding, loc, nil, "Encoding %q is not supported.", label)
			return nil, fmt.Errorf("%w: %s", errUnsupportedCharset, label)
		}
		s.diag(WarnNonIANAEncoding, loc, nil, "Encoding %q is not an IANA registered name, using %q.", label, name)
		return fallback.NewDecoder().Reader(input), nil
	}
	if canonical, err := ianaindex.MIME.Name(enc); err == nil && !strings.EqualFold(canonical, label) {
		s.diag(WarnNoncanonicalIANAName, loc, nil, "The encoding %q is not the canonical name %q.", label, canonical)
	}
	return enc.NewDecoder().Reader(input), nil
}

// declaredPrefix reports whether a raw attribute name declares a namespace.
func declaredPrefix(n xml.Name) (string, bool) {
	switch {
	case n.Space == "xmlns":
		return n.Local, true
	case n.Space == "" && n.Local == "xmlns":
		return "", true
	}
	return "", false
}

func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
