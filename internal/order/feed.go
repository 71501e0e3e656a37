package order

import (
	"context"
	"sync"
)

// Feed is an explicit publish/subscribe channel over a Store: each subscriber
// receives the full current order list immediately and again after every
// placed order. Subscriptions live until their context is canceled or the
// returned stop function runs; resubscribing restarts the stream.
type Feed struct {
	store Store

	mu   sync.Mutex
	subs map[int]chan []Order
	next int
}

func NewFeed(store Store) *Feed {
	return &Feed{store: store, subs: make(map[int]chan []Order)}
}

// Subscribe registers an observer. The channel is buffered by one and always
// carries the latest snapshot: a slow consumer sees fewer, fresher updates
// rather than a backlog.
func (f *Feed) Subscribe(ctx context.Context) (<-chan []Order, func()) {
	ch := make(chan []Order, 1)

	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = ch
	f.mu.Unlock()

	if snapshot, err := f.store.ListAll(ctx); err == nil {
		ch <- snapshot
	}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			stop()
		}()
	}
	return ch, stop
}

// Publish pushes the current order list to every subscriber. Called by the
// controller after a successful insert.
func (f *Feed) Publish(ctx context.Context) {
	snapshot, err := f.store.ListAll(ctx)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		// drop the stale pending snapshot, if any, then queue the fresh one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
