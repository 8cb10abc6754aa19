package download

import (
	"sync"

	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity.
const DefaultSubscriberBuffer = 256

// Bus fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan model.Event
	nextID int
	buffer int
	closed bool
}

// NewBus creates an event bus
func NewBus() *Bus {
	return &Bus{
		subs:   make(map[int]chan model.Event),
		buffer: DefaultSubscriberBuffer,
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes
// and closes the channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan model.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan model.Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Publish delivers e to every subscriber in publish order.
func (b *Bus) Publish(e model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			logger.Logger.Warn("Dropping event for slow subscriber",
				"subscriber", id,
				"event", string(e.Type),
			)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Listen runs fn for every event of a new subscription until the bus is
// closed or the returned stop function is called.
func Listen(b *Bus, fn func(model.Event)) (stop func()) {
	ch, unsubscribe := b.Subscribe()
	go func() {
		for e := range ch {
			fn(e)
		}
	}()
	return unsubscribe
}
