package event

import "sync"

// Handler receives posted events.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	id int
}

// Bus delivers events synchronously, in post order, to every handler
// subscribed at post time. Delivery happens on the poster's goroutine.
type Bus struct {
	mu     sync.Mutex
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id      int
	handler Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler. Handlers are invoked in subscription order.
func (b *Bus) Subscribe(h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs = append(b.subs, subscriber{id: b.nextID, handler: h})
	return &Subscription{id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Safe to call with a
// subscription that was already removed.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Post delivers the event to all current subscribers before returning.
// Handlers run outside the bus lock, so they may subscribe or unsubscribe
// reentrantly; such changes apply to subsequent posts only.
func (b *Bus) Post(e Event) {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.handler(e)
	}
}
