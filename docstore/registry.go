package docstore

import (
	"sync"

	"skillswap/domain/event"
)

type set map[*Subscription]struct{}

// registry tracks live subscriptions per collection so the store worker can
// fan commit notifications out. It never blocks the worker: pings coalesce
// into each subscription's buffered notify channel.
type registry struct {
	mu   sync.RWMutex
	subs map[string]set
}

func newRegistry() *registry {
	return &registry{subs: make(map[string]set)}
}

func (r *registry) subscribe(collection string, sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[collection]; !ok {
		r.subs[collection] = make(set)
	}
	r.subs[collection][sub] = struct{}{}
}

// unsubscribe removes a subscription and drops empty collection entries so
// the map does not grow over the life of the process.
func (r *registry) unsubscribe(collection string, sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.subs[collection]; ok {
		delete(members, sub)
		if len(members) == 0 {
			delete(r.subs, collection)
		}
	}
}

func (r *registry) notify(ev event.ChangeEvent) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for sub := range r.subs[ev.Collection()] {
		sub.ping()
	}
}
