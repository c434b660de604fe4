// Package pubsub delivers versioned state snapshots to listeners in order.
package pubsub

import "sync"

// Feed hands snapshots to listeners. Callers take a snapshot and its version
// under their own lock and publish after releasing it; the Feed serializes
// delivery and never gives a listener a version older than one it has already
// seen, so a slow publisher cannot overwrite a newer state.
//
// Listeners run with no lock held and may publish again. A publish made while
// another goroutine is delivering is queued for that goroutine and Publish
// returns without waiting.
type Feed[T any] struct {
	mu         sync.Mutex
	subs       map[int]*subscriber[T]
	nextID     int
	queue      []delivery[T]
	delivering bool
}

type subscriber[T any] struct {
	id   int
	fn   func(T)
	seen uint64
	has  bool
}

// delivery targets every subscriber, or only one when only is set
type delivery[T any] struct {
	version uint64
	value   T
	only    *subscriber[T]
}

// Publish delivers value to every listener that has not seen a newer version
func (f *Feed[T]) Publish(version uint64, value T) {
	f.mu.Lock()
	f.queue = append(f.queue, delivery[T]{version: version, value: value})
	f.drainLocked()
}

// Subscribe registers fn, replays value to it and returns a function that
// unregisters it
func (f *Feed[T]) Subscribe(version uint64, value T, fn func(T)) func() {
	f.mu.Lock()
	if f.subs == nil {
		f.subs = make(map[int]*subscriber[T])
	}
	sub := &subscriber[T]{id: f.nextID, fn: fn}
	f.nextID++
	f.subs[sub.id] = sub
	f.queue = append(f.queue, delivery[T]{version: version, value: value, only: sub})
	f.drainLocked()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, sub.id)
			f.mu.Unlock()
		})
	}
}

// Len returns the number of registered listeners
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// drainLocked is entered with f.mu held and returns with it released
func (f *Feed[T]) drainLocked() {
	if f.delivering {
		f.mu.Unlock()
		return
	}
	f.delivering = true

	for len(f.queue) > 0 {
		d := f.queue[0]
		f.queue[0] = delivery[T]{}
		f.queue = f.queue[1:]
		targets := f.targetsLocked(d)

		f.mu.Unlock()
		for _, sub := range targets {
			sub.fn(d.value)
		}
		f.mu.Lock()
	}

	f.delivering = false
	f.mu.Unlock()
}

func (f *Feed[T]) targetsLocked(d delivery[T]) []*subscriber[T] {
	var targets []*subscriber[T]
	accept := func(sub *subscriber[T]) {
		if sub.has && d.version <= sub.seen {
			return
		}
		sub.has, sub.seen = true, d.version
		targets = append(targets, sub)
	}

	if d.only != nil {
		if f.subs[d.only.id] == d.only {
			accept(d.only)
		}
		return targets
	}
	for _, sub := range f.subs {
		accept(sub)
	}
	return targets
}
