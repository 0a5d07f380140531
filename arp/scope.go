package arp

// scopeTracker ends blank node scopes. Every blank node that appeared in
// a delivered statement is ended exactly once. Nodes named with
// rdf:nodeID live until the end of the document.
type scopeTracker struct {
	handler ExtendedHandler
	discard bool
	nodeIDs map[string]*Resource
	order   []*Resource
}

func newScopeTracker(h ExtendedHandler) *scopeTracker {
	return &scopeTracker{
		handler: h,
		discard: h.DiscardNodesWithNodeID(),
		nodeIDs: make(map[string]*Resource),
	}
}

// nodeID returns the blank node for an rdf:nodeID value. Unless the
// handler discards them, every reference to one id shares a Resource.
func (s *scopeTracker) nodeID(id string) *Resource {
	if s.discard {
		return newNodeIDResource(id)
	}
	if r, ok := s.nodeIDs[id]; ok {
		return r
	}
	r := newNodeIDResource(id)
	s.nodeIDs[id] = r
	s.order = append(s.order, r)
	return r
}

// end closes the scope of r if it is a used blank node that is not
// tracked until document end.
func (s *scopeTracker) end(r *Resource) error {
	if r == nil || !r.IsAnonymous() || !r.used || r.ended {
		return nil
	}
	if r.HasNodeID() {
		return nil
	}
	r.ended = true
	return s.handler.EndBNodeScope(r)
}

// endAll ends each resource in order, stopping at the first error.
func (s *scopeTracker) endAll(rs []*Resource) error {
	for _, r := range rs {
		if err := s.end(r); err != nil {
			return err
		}
	}
	return nil
}

// endDocument ends the used rdf:nodeID blank nodes in first-seen order.
func (s *scopeTracker) endDocument() error {
	for _, r := range s.order {
		if !r.used || r.ended {
			continue
		}
		r.ended = true
		if err := s.handler.EndBNodeScope(r); err != nil {
			return err
		}
	}
	s.order = nil
	s.nodeIDs = nil
	return nil
}
