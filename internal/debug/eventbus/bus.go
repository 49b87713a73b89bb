package eventbus

import (
	"sync"
	"time"
)

type Event struct {
	Type      string
	Timestamp time.Time
	Data      map[string]interface{}
}

type EventHandler interface {
	Handle(event Event)
	GetID() string
}

// HandlerFunc adapts a function into an EventHandler identified by id.
type HandlerFunc struct {
	ID string
	Fn func(Event)
}

func (h HandlerFunc) Handle(event Event) { h.Fn(event) }
func (h HandlerFunc) GetID() string     { return h.ID }

// Bus fans toolbar events out to subscribers on a worker goroutine, so a slow
// subscriber never stalls the toolkit's event loop.
type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	buffer      chan Event
	closed      bool
	dropped     int64
	worker      sync.WaitGroup
	handlers    sync.WaitGroup
	onPanic     func(handlerID string, recovered interface{})
}

func NewBus(bufferSize int) *Bus {
	bus := &Bus{
		subscribers: make(map[string][]EventHandler),
		buffer:      make(chan Event, bufferSize),
	}

	bus.startWorker()
	return bus
}

// OnPanic installs a hook invoked when a subscriber panics.
func (b *Bus) OnPanic(fn func(handlerID string, recovered interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onPanic = fn
}

// Publish queues an event; it drops the event when the buffer is full or the
// bus has shut down.
func (b *Bus) Publish(eventType string, data map[string]interface{}) {
	event := Event{Type: eventType, Timestamp: time.Now(), Data: data}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	select {
	case b.buffer <- event:
	default:
		b.dropped++
	}
}

func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

func (b *Bus) Unsubscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[eventType]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
}

// Dropped reports how many events were discarded because the buffer was full.
func (b *Bus) Dropped() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Shutdown delivers whatever is still queued, then waits for subscribers.
// Safe to call more than once.
func (b *Bus) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.buffer)
	b.mu.Unlock()

	b.worker.Wait()
	b.handlers.Wait()
}

func (b *Bus) startWorker() {
	b.worker.Add(1)
	go func() {
		defer b.worker.Done()
		for event := range b.buffer {
			b.dispatchEvent(event)
		}
	}()
}

func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.subscribers[event.Type]))
	copy(handlers, b.subscribers[event.Type])
	onPanic := b.onPanic
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.handlers.Add(1)
		go func(h EventHandler) {
			defer b.handlers.Done()
			defer func() {
				if r := recover(); r != nil && onPanic != nil {
					onPanic(h.GetID(), r)
				}
			}()
			h.Handle(event)
		}(handler)
	}
}
