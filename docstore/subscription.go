package docstore

import "sync"

// Snapshot is one complete result set delivered at a point in time.
// Subscribers discard the previous one; nothing is patched incrementally.
type Snapshot []Document

type SnapshotSink func(Snapshot)

// Subscription is a live query. The sink receives the first snapshot
// shortly after registration and a fresh one after every commit to the
// collection. Each subscription has its own dispatch goroutine, so a single
// subscriber observes snapshots in commit order; there is no ordering
// guarantee across subscriptions.
type Subscription struct {
	store  *Store
	query  Query
	sink   SnapshotSink
	notify chan struct{}
	quit   chan struct{}
	once   sync.Once

	mu       sync.Mutex
	canceled bool
}

// Subscribe registers interest in a query. The returned subscription must
// be canceled to release the dispatch goroutine. The sink must not call
// Cancel from inside the callback.
func (s *Store) Subscribe(q Query, sink SnapshotSink) *Subscription {
	sub := &Subscription{
		store:  s,
		query:  q,
		sink:   sink,
		notify: make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
	s.registry.subscribe(q.Collection, sub)
	go sub.dispatch()
	return sub
}

// Cancel stops delivery and releases the subscription. After Cancel
// returns, the sink is never invoked again. Calling Cancel twice is a no-op.
func (sub *Subscription) Cancel() {
	sub.once.Do(func() {
		sub.mu.Lock()
		sub.canceled = true
		sub.mu.Unlock()

		sub.store.registry.unsubscribe(sub.query.Collection, sub)
		close(sub.quit)
	})
}

// ping coalesces: a pending notification already covers this commit,
// because the dispatcher re-reads the full snapshot when it wakes up.
func (sub *Subscription) ping() {
	select {
	case sub.notify <- struct{}{}:
	default:
	}
}

func (sub *Subscription) dispatch() {
	sub.deliver()
	for {
		select {
		case <-sub.quit:
			return
		case <-sub.notify:
			sub.deliver()
		}
	}
}

func (sub *Subscription) deliver() {
	docs, err := sub.store.Documents(sub.query)
	if err != nil {
		sub.store.log.Error("Snapshot query failed",
			"collection", sub.query.Collection, "error", err)
		return
	}

	// Holding the lock across the sink call is what makes Cancel a hard
	// barrier: once Cancel returns, no delivery is in flight.
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.canceled {
		return
	}
	sub.sink(Snapshot(docs))
}
