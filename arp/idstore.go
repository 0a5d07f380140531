package arp

import "fmt"

// IDRecord remembers where an rdf:ID was first used.
type IDRecord struct {
	Location Location
	Base     string
	Reported bool
}

// IDStore keeps the rdf:ID values seen in a document. Documents with very
// many IDs can use a disk-backed store such as BadgerIDStore.
type IDStore interface {
	Get(key string) (IDRecord, bool, error)
	Put(key string, rec IDRecord) error
	Close() error
}

// MemoryIDStore is an IDStore backed by a map.
type MemoryIDStore struct {
	m map[string]IDRecord
}

// NewMemoryIDStore returns an empty in-memory store.
func NewMemoryIDStore() *MemoryIDStore {
	return &MemoryIDStore{m: make(map[string]IDRecord)}
}

// Get returns the record stored under key.
func (s *MemoryIDStore) Get(key string) (IDRecord, bool, error) {
	rec, ok := s.m[key]
	return rec, ok, nil
}

// Put stores rec under key.
func (s *MemoryIDStore) Put(key string, rec IDRecord) error {
	s.m[key] = rec
	return nil
}

// Close drops all records.
func (s *MemoryIDStore) Close() error {
	s.m = make(map[string]IDRecord)
	return nil
}

// idTracker detects redefinition and reuse of rdf:ID values.
type idTracker struct {
	store IDStore
	rep   *reporter
}

func idURIKey(uri string) string { return "u\x00" + uri }

func idNameKey(id string) string { return "n\x00" + id }

// check records the use of id, resolved to uri under base. The first
// redefinition of a URI is reported at both the original and the new
// location, later ones only at the new location.
func (t *idTracker) check(id, uri, base string, loc Location) error {
	rec, found, err := t.store.Get(idURIKey(uri))
	if err != nil {
		return t.storeFailure(loc, err)
	}
	if found {
		if !rec.Reported {
			if err := t.rep.reportf(WarnRedefinitionOfID, rec.Location, "Redefinition of ID: %s", id); err != nil {
				return err
			}
			rec.Reported = true
			if err := t.store.Put(idURIKey(uri), rec); err != nil {
				return t.storeFailure(loc, err)
			}
		}
		return t.rep.reportf(WarnRedefinitionOfID, loc, "Redefinition of ID: %s", id)
	}
	if err := t.store.Put(idURIKey(uri), IDRecord{Location: loc, Base: base}); err != nil {
		return t.storeFailure(loc, err)
	}

	prev, found, err := t.store.Get(idNameKey(id))
	if err != nil {
		return t.storeFailure(loc, err)
	}
	if found && prev.Base != base {
		if err := t.rep.reportf(WarnLegalReuseOfID, loc, "Reusing ID %s with a different base: %s", id, base); err != nil {
			return err
		}
	}
	if !found || prev.Base != base {
		if err := t.store.Put(idNameKey(id), IDRecord{Location: loc, Base: base}); err != nil {
			return t.storeFailure(loc, err)
		}
	}
	return nil
}

func (t *idTracker) storeFailure(loc Location, err error) error {
	return t.rep.report(WarnMinorInternalError, loc, fmt.Sprintf("ID store failed: %v", err))
}
