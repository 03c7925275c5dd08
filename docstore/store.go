package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"skillswap/domain/event"
	"skillswap/errors"
)

type writeKind int

const (
	writeAdd writeKind = iota
	writeMerge
)

type writeReq struct {
	kind       writeKind
	collection string
	id         string
	fields     Fields
	done       chan error
}

// Store is the document store client. All writes funnel through a single
// worker goroutine (Run), which serializes commits, assigns server
// timestamps, and notifies subscriptions after each commit.
type Store struct {
	db       *badger.DB
	log      *slog.Logger
	registry *registry
	writes   chan writeReq
	clock    func() time.Time
	lastTS   time.Time
}

func New(db *badger.DB, log *slog.Logger, bufferSize int) *Store {
	return &Store{
		db:       db,
		log:      log,
		registry: newRegistry(),
		writes:   make(chan writeReq, bufferSize),
		clock:    time.Now,
	}
}

// Run drains the write queue until the context is canceled. It is meant to
// run under the supervisor; a panic inside a commit restarts the worker
// without losing the queue.
func (s *Store) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Store worker stopping")
			return nil
		case req := <-s.writes:
			err := s.commit(req)
			req.done <- err
			if err == nil {
				s.registry.notify(event.DocumentCommitted{
					Coll:  req.collection,
					DocID: req.id,
					At:    s.lastTS,
				})
			}
		}
	}
}

// Add creates one immutable document and returns its store-assigned ID.
// The write is enqueued to the store worker; the call suspends until the
// commit is acknowledged or the context is canceled.
func (s *Store) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	id := uuid.NewString()
	if err := s.enqueue(ctx, writeReq{
		kind:       writeAdd,
		collection: collection,
		id:         id,
		fields:     fields,
		done:       make(chan error, 1),
	}); err != nil {
		return "", err
	}
	return id, nil
}

// Update merges partial fields into an existing document. Conflicting
// concurrent updates resolve last-write-wins by commit order.
func (s *Store) Update(ctx context.Context, collection, id string, partial Fields) error {
	return s.enqueue(ctx, writeReq{
		kind:       writeMerge,
		collection: collection,
		id:         id,
		fields:     partial,
		done:       make(chan error, 1),
	})
}

func (s *Store) enqueue(ctx context.Context, req writeReq) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", errors.ErrDelivery, ctx.Err())
	case s.writes <- req:
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", errors.ErrDelivery, ctx.Err())
	case err := <-req.done:
		if err != nil {
			return fmt.Errorf("%w: %v", errors.ErrDelivery, err)
		}
		return nil
	}
}

// commit runs on the store worker only. Server timestamps are strictly
// increasing so the key order matches creation order even within one tick.
func (s *Store) commit(req writeReq) error {
	now := s.clock().UTC()
	if !now.After(s.lastTS) {
		now = s.lastTS.Add(time.Nanosecond)
	}
	s.lastTS = now

	switch req.kind {
	case writeAdd:
		return s.commitAdd(req, now)
	case writeMerge:
		return s.commitMerge(req, now)
	}
	return fmt.Errorf("unknown write kind %d", req.kind)
}

// The primary key is "doc:{collection}:{timestamp_padded}:{id}":
//  1. 19-digit zero padding makes lexicographical order chronological.
//  2. The ID suffix disambiguates should two commits ever share a nanosecond.
//
// A pointer key "id:{collection}:{id}" resolves direct lookups and merges.
func primaryKey(collection string, ts time.Time, id string) []byte {
	return []byte(fmt.Sprintf("doc:%s:%019d:%s", collection, ts.UnixNano(), id))
}

func pointerKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("id:%s:%s", collection, id))
}

func collectionPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("doc:%s:", collection))
}

func (s *Store) commitAdd(req writeReq, now time.Time) error {
	value, err := encodeDoc(resolveSentinels(req.fields, now), now)
	if err != nil {
		return err
	}
	key := primaryKey(req.collection, now, req.id)
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, value); err != nil {
			return err
		}
		return txn.Set(pointerKey(req.collection, req.id), key)
	})
}

func (s *Store) commitMerge(req writeReq, now time.Time) error {
	return s.db.Update(func(txn *badger.Txn) error {
		ptr, err := txn.Get(pointerKey(req.collection, req.id))
		if err != nil {
			return errors.ErrNotFound
		}
		var key []byte
		if key, err = ptr.ValueCopy(nil); err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		var doc Document
		err = item.Value(func(val []byte) error {
			doc, err = decodeDoc(req.id, val)
			return err
		})
		if err != nil {
			return err
		}
		for k, v := range resolveSentinels(req.fields, now) {
			doc.Fields[k] = v
		}
		// The creation timestamp is immutable; merges keep the original key.
		value, err := encodeDoc(doc.Fields, doc.CommittedAt)
		if err != nil {
			return err
		}
		return txn.Set(key, value)
	})
}

// Get resolves one document by ID.
func (s *Store) Get(collection, id string) (Document, error) {
	var doc Document
	err := s.db.View(func(txn *badger.Txn) error {
		ptr, err := txn.Get(pointerKey(collection, id))
		if err != nil {
			return errors.ErrNotFound
		}
		key, err := ptr.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			doc, err = decodeDoc(id, val)
			return err
		})
	})
	return doc, err
}

// Documents evaluates a query once. Thanks to the padded timestamp in the
// key, a plain prefix scan yields chronological order; Descending walks the
// same range in reverse.
func (s *Store) Documents(q Query) ([]Document, error) {
	var docs []Document
	prefix := collectionPrefix(q.Collection)
	err := s.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = q.Order == Descending
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := prefix
		if q.Order == Descending {
			// Position past the newest possible timestamp, then walk back.
			seekKey = append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		}
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := docIDFromKey(item.Key())
			err := item.Value(func(val []byte) error {
				doc, err := decodeDoc(id, val)
				if err != nil {
					return err
				}
				if q.matches(doc) {
					docs = append(docs, doc)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return docs, err
}

// docIDFromKey strips "doc:{collection}:{timestamp}:" off a primary key.
func docIDFromKey(key []byte) string {
	s := string(key)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			return s[i+1:]
		}
	}
	return s
}
