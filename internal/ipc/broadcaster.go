package ipc

import (
	"sync"

	"github.com/1broseidon/termtile/internal/events"
)

// subscriberQueueLimit is the per-subscriber high-water mark; a
// subscriber whose queue would exceed it is evicted instead of blocking
// the broadcaster (spec's slow-consumer policy).
const subscriberQueueLimit = 256

// subscriber is one connection's outbound event queue.
type subscriber struct {
	id     uint64
	filter map[events.Kind]bool // empty means "all kinds"
	outbox chan Response
}

func (s *subscriber) wants(kind events.Kind) bool {
	if len(s.filter) == 0 {
		return true
	}
	return s.filter[kind]
}

// Broadcaster fans Events out to subscribed connections. Its mutex is
// the one lock in the core: it is held only across the push/remove of a
// subscriber, never across a state mutation.
type Broadcaster struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*subscriber
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[uint64]*subscriber)}
}

// Subscribe registers a new subscriber filtered to kinds (empty means
// every kind) and returns its outbound channel and an unsubscribe func.
func (b *Broadcaster) Subscribe(kinds []string) (<-chan Response, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	filter := make(map[events.Kind]bool, len(kinds))
	for _, k := range kinds {
		filter[events.Kind(k)] = true
	}

	sub := &subscriber{
		id:     id,
		filter: filter,
		outbox: make(chan Response, subscriberQueueLimit),
	}
	b.subs[id] = sub

	return sub.outbox, func() { b.remove(id) }
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.outbox)
	}
}

// Emit serializes ev once (implicitly, via the Response value) and
// pushes it to every subscriber whose filter admits its kind. A
// subscriber whose queue is full is evicted rather than blocked on.
func (b *Broadcaster) Emit(ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	resp := Response{Status: "event", Event: string(ev.Kind), Data: ev.Data}
	for id, sub := range b.subs {
		if !sub.wants(ev.Kind) {
			continue
		}
		select {
		case sub.outbox <- resp:
		default:
			delete(b.subs, id)
			close(sub.outbox)
		}
	}
}
