package arp

import (
	"encoding/binary"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/zeebo/xxh3"
)

var errCorruptIDRecord = errors.New("arp: corrupt ID record")

// BadgerIDStore is an IDStore kept in a badger database. Keys are stored
// as 128-bit xxh3 hashes.
type BadgerIDStore struct {
	db *badger.DB
}

// NewBadgerIDStore opens a store in dir. An empty dir keeps the database
// in memory.
func NewBadgerIDStore(dir string) (*BadgerIDStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("arp: open badger ID store: %w", err)
	}
	return &BadgerIDStore{db: db}, nil
}

// Get returns the record stored under key.
func (s *BadgerIDStore) Get(key string) (IDRecord, bool, error) {
	var rec IDRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(hashIDKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var derr error
			rec, derr = decodeIDRecord(val)
			return derr
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return IDRecord{}, false, nil
	}
	if err != nil {
		return IDRecord{}, false, err
	}
	return rec, true, nil
}

// Put stores rec under key.
func (s *BadgerIDStore) Put(key string, rec IDRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(hashIDKey(key), encodeIDRecord(rec))
	})
}

// Close closes the database.
func (s *BadgerIDStore) Close() error {
	return s.db.Close()
}

func hashIDKey(key string) []byte {
	h := xxh3.Hash128([]byte(key))
	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[0:8], h.Hi)
	binary.BigEndian.PutUint64(out[8:16], h.Lo)
	return out
}

func encodeIDRecord(rec IDRecord) []byte {
	buf := make([]byte, 0, 16+len(rec.Base)+len(rec.Location.SystemID))
	buf = appendString(buf, rec.Base)
	buf = appendString(buf, rec.Location.SystemID)
	buf = binary.AppendUvarint(buf, uint64(rec.Location.Line))
	buf = binary.AppendUvarint(buf, uint64(rec.Location.Column))
	if rec.Reported {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func decodeIDRecord(b []byte) (IDRecord, error) {
	var rec IDRecord
	var ok bool
	if rec.Base, b, ok = readString(b); !ok {
		return rec, errCorruptIDRecord
	}
	if rec.Location.SystemID, b, ok = readString(b); !ok {
		return rec, errCorruptIDRecord
	}
	line, n := binary.Uvarint(b)
	if n <= 0 {
		return rec, errCorruptIDRecord
	}
	b = b[n:]
	col, n := binary.Uvarint(b)
	if n <= 0 || len(b) != n+1 {
		return rec, errCorruptIDRecord
	}
	rec.Location.Line = int(line)
	rec.Location.Column = int(col)
	rec.Reported = b[n] == 1
	return rec, nil
}

func readString(b []byte) (string, []byte, bool) {
	l, n := binary.Uvarint(b)
	if n <= 0 || uint64(len(b)-n) < l {
		return "", nil, false
	}
	b = b[n:]
	return string(b[:l]), b[l:], true
}
