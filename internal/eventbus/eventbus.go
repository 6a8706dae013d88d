// Package eventbus provides the in-process notification hook that keeps views
// consistent after store mutations: stores publish a named event, subscribed
// views re-read store state. Events carry no payload contract beyond a
// variadic argument list.
package eventbus

import (
	"sync"

	"go.uber.org/zap"
)

// Store mutation topics.
const (
	TopicProductsChanged = "productsChanged"
	TopicListChanged     = "listChanged"
)

// Handler receives the arguments passed to Publish.
type Handler func(args ...interface{})

type subscription struct {
	fn Handler
}

// Bus is an injectable publish/subscribe register for named events. Delivery
// is synchronous and in-process only.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]*subscription
}

func New() *Bus {
	return &Bus{handlers: map[string][]*subscription{}}
}

// Subscribe registers handler for topic and returns a function that removes
// exactly this registration.
func (b *Bus) Subscribe(topic string, handler Handler) (unsubscribe func()) {
	sub := &subscription{fn: handler}
	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], sub)
	b.mu.Unlock()
	return func() { b.remove(topic, sub) }
}

func (b *Bus) remove(topic string, sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[topic]
	for i, s := range subs {
		if s == sub {
			b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[topic]) == 0 {
		delete(b.handlers, topic)
	}
}

// Publish delivers args to every handler currently subscribed to topic. The
// handler set is snapshotted before the first call, so subscribing or
// unsubscribing from within a handler does not affect the ongoing delivery
// pass. A panicking handler does not stop delivery to the remaining handlers
// and never reaches the publisher.
func (b *Bus) Publish(topic string, args ...interface{}) {
	b.mu.RLock()
	subs := b.handlers[topic]
	snapshot := make([]*subscription, len(subs))
	copy(snapshot, subs)
	b.mu.RUnlock()

	for _, sub := range snapshot {
		b.dispatch(topic, sub, args)
	}
}

func (b *Bus) dispatch(topic string, sub *subscription, args []interface{}) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Warnf("event handler panic on %q: %v", topic, r)
		}
	}()
	sub.fn(args...)
}
