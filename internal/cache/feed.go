// Package cache holds the last-known snapshot of each collection and
// notifies subscribers on change. Semantics are broadcast-latest: a new
// subscriber immediately receives the current value (empty until the first
// load), and a slow subscriber only ever sees the most recent snapshot —
// missed intermediate values are dropped, never buffered.
package cache

import (
	"sync"
)

// Feed is a broadcast-latest stream of collection snapshots.
type Feed[T any] struct {
	mu     sync.Mutex
	latest []T
	subs   map[int]chan []T
	nextID int
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]chan []T)}
}

// Subscribe returns a channel that replays the current snapshot and then
// delivers every subsequent publish, last-value-wins. The cancel func must be
// called when the subscriber goes away; the channel is closed by it.
func (f *Feed[T]) Subscribe() (<-chan []T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++

	// Buffer of one: holds exactly the latest undelivered snapshot.
	ch := make(chan []T, 1)
	ch <- f.snapshotLocked()
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish replaces the snapshot and fans it out. A stale undelivered value in
// a subscriber's buffer is discarded first, so the send never blocks.
func (f *Feed[T]) Publish(items []T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.latest = items
	for _, ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- f.snapshotLocked()
	}
}

// Latest returns a copy of the current snapshot without subscribing.
func (f *Feed[T]) Latest() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Feed[T]) snapshotLocked() []T {
	out := make([]T, len(f.latest))
	copy(out, f.latest)
	return out
}
