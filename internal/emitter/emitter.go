// Package emitter defines the sink abstraction a handler streams output
// items through: a blocking in-memory collector for synchronous runs and a
// non-blocking bounded-channel forwarder for spawned jobs.
package emitter

import "sync"

// Signal tells the producer whether to keep emitting.
type Signal int

const (
	// Continue: the item was accepted.
	Continue Signal = iota
	// Stop: the item was not delivered and the producer should check
	// cancellation and return rather than retry.
	Stop
)

// Emitter accepts output items from a running handler.
type Emitter[T any] interface {
	Emit(item T) (Signal, error)
}

// Collector accumulates emitted items in memory. It never signals Stop and
// never fails; items are appended under a mutex and drained once at the end
// of the invocation.
type Collector[T any] struct {
	mu    sync.Mutex
	items []T
}

func NewCollector[T any]() *Collector[T] { return &Collector[T]{} }

func (c *Collector[T]) Emit(item T) (Signal, error) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	return Continue, nil
}

// Drain consumes the accumulated items. Subsequent drains return nil.
func (c *Collector[T]) Drain() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

// Channel forwards items into a bounded queue consumed by the job handle.
// Emit never blocks: a full queue degrades to a Stop signal, so a slow or
// absent consumer can never wedge the producer.
type Channel[T any] struct {
	ch chan T
}

// NewChannel returns a channel emitter with the given capacity.
// Capacities below 1 are clamped to 1.
func NewChannel[T any](capacity int) *Channel[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Channel[T]{ch: make(chan T, capacity)}
}

func (e *Channel[T]) Emit(item T) (Signal, error) {
	select {
	case e.ch <- item:
		return Continue, nil
	default:
		return Stop, nil
	}
}

// Items exposes the receiving side of the queue.
func (e *Channel[T]) Items() <-chan T { return e.ch }

// CloseSend marks end-of-stream. Only the producing side (the job worker,
// after the routine returns) may call it.
func (e *Channel[T]) CloseSend() { close(e.ch) }
