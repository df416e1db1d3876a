package events

import (
	"sync"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

// Broadcaster fans LoadingStateEvents out to subscribers. Delivery is
// fire-and-forget: a subscriber whose buffer is full misses the event
// rather than blocking the loader.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[int]chan domain.LoadingStateEvent
	next int
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan domain.LoadingStateEvent)}
}

// Subscribe registers a listener with the given buffer size and returns
// its channel plus a cancel function. Cancel closes the channel.
func (b *Broadcaster) Subscribe(buffer int) (<-chan domain.LoadingStateEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.LoadingStateEvent, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking.
func (b *Broadcaster) Publish(ev domain.LoadingStateEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
