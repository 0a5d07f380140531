package arp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScopeTrackerEndsOnce(t *testing.T) {
	rec := &recorder{}
	s := newScopeTracker(rec)

	a1, a2, uri := newAnonResource(1), newAnonResource(2), newURIResource(exNS+"s")
	a1.used, uri.used = true, true
	x := s.nodeID("x")
	if s.nodeID("x") != x {
		t.Fatal("references to one nodeID must share a resource")
	}
	x.used = true
	y := s.nodeID("y")

	if err := s.endAll([]*Resource{a1, a2, uri, x, a1, nil}); err != nil {
		t.Fatal(err)
	}
	if err := s.endDocument(); err != nil {
		t.Fatal(err)
	}
	want := []string{"end scope _:A1", "end scope _:Ux"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if y.ended {
		t.Error("an unused nodeID must not be ended")
	}
}

func TestScopeTrackerDiscard(t *testing.T) {
	rec := &recorder{discard: true}
	s := newScopeTracker(rec)
	x := s.nodeID("x")
	if s.nodeID("x") == x {
		t.Fatal("discarded nodeIDs must not be tracked")
	}
	x.used = true
	if err := s.endAll([]*Resource{x}); err != nil {
		t.Fatal(err)
	}
	if err := s.endDocument(); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("unexpected events %v", rec.events)
	}
}

func TestScopeTrackerHandlerError(t *testing.T) {
	s := newScopeTracker(abortingScopes{})
	a := newAnonResource(1)
	a.used = true
	if err := s.endAll([]*Resource{a}); err != errAbort {
		t.Fatalf("got %v, want the handler error", err)
	}
}

type abortingScopes struct{ nopExtendedHandler }

func (abortingScopes) EndBNodeScope(*Resource) error { return errAbort }
