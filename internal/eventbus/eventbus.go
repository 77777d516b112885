package eventbus

import "sync"

// Event represents an arbitrary event passed on the bus. The cleaning
// pipeline publishes clean.ColumnDropped, clean.Correction and clean.GapFill
// values as the corresponding decisions are made.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	SubscribeBuffered(size int) <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// defaultBuffer absorbs bursts of per-column decisions while a slow
// subscriber catches up; Publish drops on overflow rather than block the
// cleaner.
const defaultBuffer = 64

// Bus is the default EventBus implementation using fan-out channels.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan Event
	closed bool
}

// New creates a new Bus.
func New() *Bus { return &Bus{} }

// Publish sends the event to all subscribers. Delivery is non-blocking.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber with the default buffer and returns
// its channel.
func (b *Bus) Subscribe() <-chan Event {
	return b.SubscribeBuffered(defaultBuffer)
}

// SubscribeBuffered registers a new subscriber whose channel holds up to size
// undelivered events. A size below one falls back to the default buffer.
func (b *Bus) SubscribeBuffered(size int) <-chan Event {
	if size < 1 {
		size = defaultBuffer
	}
	ch := make(chan Event, size)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes all subscriber channels and clears the list.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()
}
