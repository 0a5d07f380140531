package arp

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func readEvents(t *testing.T, input string) []XMLEvent {
	t.Helper()
	src := NewXMLSource(strings.NewReader(input), "test.rdf")
	var out []XMLEvent
	for {
		ev, err := src.NextEvent()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("NextEvent: %v", err)
		}
		out = append(out, ev)
		if len(out) > 1000 {
			t.Fatal("event stream does not end")
		}
	}
}

func lastDiag(t *testing.T, evs []XMLEvent) *Diagnostic {
	t.Helper()
	if len(evs) == 0 || evs[len(evs)-1].Kind != EventDiagnostic {
		t.Fatalf("expected a trailing diagnostic, got %+v", evs)
	}
	return evs[len(evs)-1].Diag
}

func TestXMLSourceNamespaces(t *testing.T) {
	evs := readEvents(t, `<a:x xmlns:a="urn:a" b="1" a:c="2"><y xmlns="urn:d">t</y><!--c--><?pi data?></a:x>`)
	want := []XMLEvent{
		{Kind: EventStartElement, Name: QName{Space: "urn:a", Local: "x", Prefix: "a"}, Attrs: []XMLAttr{
			{Name: QName{Space: xmlnsNS, Local: "a", Prefix: "xmlns"}, Value: "urn:a"},
			{Name: QName{Local: "b"}, Value: "1"},
			{Name: QName{Space: "urn:a", Local: "c", Prefix: "a"}, Value: "2"},
		}},
		{Kind: EventStartElement, Name: QName{Space: "urn:d", Local: "y"}, Attrs: []XMLAttr{
			{Name: QName{Space: xmlnsNS, Prefix: "xmlns"}, Value: "urn:d"},
		}},
		{Kind: EventCharData, Text: "t"},
		{Kind: EventEndElement, Name: QName{Space: "urn:d", Local: "y"}},
		{Kind: EventComment, Text: "c"},
		{Kind: EventProcInst, Name: QName{Local: "pi"}, Text: "data"},
		{Kind: EventEndElement, Name: QName{Space: "urn:a", Local: "x", Prefix: "a"}},
	}
	opts := []cmp.Option{
		cmpopts.IgnoreFields(XMLEvent{}, "Location"),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(want, evs, opts...); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestXMLSourceLocations(t *testing.T) {
	evs := readEvents(t, "<x>\n<y/>\n</x>")
	if len(evs) == 0 {
		t.Fatal("no events")
	}
	for _, ev := range evs {
		if ev.Location.SystemID != "test.rdf" {
			t.Fatalf("system id: got %q", ev.Location.SystemID)
		}
	}
	if got := evs[len(evs)-1].Location.Line; got != 3 {
		t.Errorf("end tag line: got %d, want 3", got)
	}
}

func TestXMLSourceFatalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"unbound element prefix", `<a:x/>`, "is not bound"},
		{"unbound attribute prefix", `<x a:b="1"/>`, "is not bound"},
		{"duplicate attribute", `<x xmlns:a="urn:a" xmlns:b="urn:a" a:c="1" b:c="2"/>`, "already specified"},
		{"text after root", `<x/>text`, "outside the root element"},
		{"second root", `<x/><y/>`, "following the root element"},
		{"empty document", ``, "Premature end of file"},
		{"mismatched tag", `<x><y></x>`, ""},
		{"unclosed element", `<x>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := lastDiag(t, readEvents(t, tt.input))
			if d.Condition != ErrSAXFatalError {
				t.Fatalf("got %s, want ERR_SAX_FATAL_ERROR", d.Condition)
			}
			if tt.msg != "" && !strings.Contains(d.Message, tt.msg) {
				t.Errorf("message %q does not mention %q", d.Message, tt.msg)
			}
		})
	}
}

func TestXMLSourceIgnoresWhitespaceOutsideRoot(t *testing.T) {
	evs := readEvents(t, "<?xml version=\"1.0\"?>\n<x/>\n\n")
	if len(evs) != 2 || evs[0].Kind != EventStartElement || evs[1].Kind != EventEndElement {
		t.Fatalf("unexpected events %+v", evs)
	}
}

func TestXMLSourceCharsets(t *testing.T) {
	evs := readEvents(t, "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><x>caf\xe9</x>")
	if len(evs) != 3 || evs[1].Text != "caf\u00e9" {
		t.Fatalf("ISO-8859-1: unexpected events %+v", evs)
	}

	evs = readEvents(t, "<?xml version=\"1.0\" encoding=\"latin1\"?><x>caf\xe9</x>")
	if len(evs) != 4 || evs[0].Kind != EventDiagnostic || evs[0].Diag.Condition != WarnNoncanonicalIANAName {
		t.Fatalf("latin1: unexpected events %+v", evs)
	}
	if evs[2].Text != "caf\u00e9" {
		t.Errorf("latin1: text %q", evs[2].Text)
	}

	evs = readEvents(t, "<?xml version=\"1.0\" encoding=\"x-no-such-charset\"?><x/>")
	if len(evs) < 2 || evs[0].Diag == nil || evs[0].Diag.Condition != WarnUnsupportedEncoding {
		t.Fatalf("unsupported: unexpected events %+v", evs)
	}
	lastDiag(t, evs)
}
