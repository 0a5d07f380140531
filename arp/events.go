package arp

import "io"

// XMLEventKind identifies an XML event.
type XMLEventKind uint8

const (
	// EventStartElement opens an element; Name and Attrs are set.
	EventStartElement XMLEventKind = iota
	// EventEndElement closes the innermost open element.
	EventEndElement
	// EventCharData carries character data in Text.
	EventCharData
	// EventComment carries a comment in Text.
	EventComment
	// EventProcInst carries a processing instruction; Name.Local is the target.
	EventProcInst
	// EventDiagnostic carries a diagnostic from the XML layer in Diag.
	EventDiagnostic
)

// XMLAttr is a namespace-resolved attribute. Namespace declarations are
// delivered as attributes in the xmlns namespace whose local name is the
// declared prefix ("" for the default namespace).
type XMLAttr struct {
	Name  QName
	Value string
}

// XMLEvent is one event of an XML document.
type XMLEvent struct {
	Kind     XMLEventKind
	Location Location
	Name     QName
	Attrs    []XMLAttr
	Text     string
	Diag     *Diagnostic
}

// XMLEventSource delivers the events of one document in order.
// NextEvent returns io.EOF after the last event. Problems in the XML layer
// are delivered as EventDiagnostic events; a fatal one is the last event
// before io.EOF.
type XMLEventSource interface {
	NextEvent() (XMLEvent, error)
}

// SliceEventSource replays a fixed list of events.
type SliceEventSource struct {
	Events []XMLEvent
	pos    int
}

// NextEvent returns the next stored event.
func (s *SliceEventSource) NextEvent() (XMLEvent, error) {
	if s.pos >= len(s.Events) {
		return XMLEvent{}, io.EOF
	}
	ev := s.Events[s.pos]
	s.pos++
	return ev, nil
}
