// Package actor serializes all access to a mutable model value behind a
// message channel. One worker goroutine owns the model for its whole
// lifetime, so a non-thread-safe model can be shared across synchronous and
// background call sites without call-site locking: exclusivity holds by
// construction.
package actor

import "sync"

type message[M any] struct {
	fn   func(*M)
	done chan struct{}
}

// Host owns a model value. Spawn starts the owning worker; IntoModel or
// Close stops it. All mutations scheduled against one host are applied in
// send order regardless of sender goroutine.
type Host[M any] struct {
	msgs   chan message[M]
	quit   chan struct{}
	handed chan M
	exited chan struct{}
	once   sync.Once
}

// Spawn starts a worker goroutine that takes ownership of model.
func Spawn[M any](model M) *Host[M] {
	h := &Host[M]{
		msgs:   make(chan message[M]),
		quit:   make(chan struct{}),
		handed: make(chan M, 1),
		exited: make(chan struct{}),
	}
	go h.loop(model)
	return h
}

func (h *Host[M]) loop(model M) {
	defer close(h.exited)
	for {
		select {
		case msg := <-h.msgs:
			msg.fn(&model)
			close(msg.done)
		case <-h.quit:
			h.handed <- model
			close(h.handed)
			return
		}
	}
}

// Accessor returns a cheap, copyable capability for scheduling operations
// against this host. Accessors hold no ownership and do not extend the
// model's lifetime; any number may coexist.
func (h *Host[M]) Accessor() Accessor[M] {
	return Accessor[M]{msgs: h.msgs, quit: h.quit}
}

// IntoModel stops the worker and hands the model back. The worker is
// guaranteed joined on return. A second call, or a call after Close,
// returns a host-closed error and the zero model.
func (h *Host[M]) IntoModel() (M, error) {
	h.once.Do(func() { close(h.quit) })
	m, ok := <-h.handed
	<-h.exited
	if !ok {
		return m, hostClosedError{}
	}
	return m, nil
}

// Close stops the worker and discards the model. Idempotent.
func (h *Host[M]) Close() {
	h.once.Do(func() { close(h.quit) })
	for range h.handed {
	}
	<-h.exited
}

// Accessor references a host's message channel. The zero Accessor is
// detached: every operation on it fails with a host-closed error.
type Accessor[M any] struct {
	msgs chan<- message[M]
	quit <-chan struct{}
}

// Fire runs fn against the model on the worker goroutine and blocks until
// it has executed. No return value is observed; use Call for that.
// Mutations issued through Fire are sequentially consistent across all
// accessors of the same host.
func (a Accessor[M]) Fire(fn func(*M)) error {
	if a.msgs == nil {
		return hostClosedError{}
	}
	msg := message[M]{fn: fn, done: make(chan struct{})}
	select {
	case a.msgs <- msg:
		<-msg.done
		return nil
	case <-a.quit:
		return hostClosedError{}
	}
}

// Call runs fn on the worker goroutine and returns its result to the
// caller, blocking until the worker has computed it.
func Call[M, R any](a Accessor[M], fn func(*M) R) (R, error) {
	var out R
	err := a.Fire(func(m *M) { out = fn(m) })
	return out, err
}

type hostClosedError struct{}

func (hostClosedError) Error() string { return "model host closed" }

// IsHostClosed reports whether err indicates the host worker has exited
// (or the accessor was never attached to one).
func IsHostClosed(err error) bool {
	_, ok := err.(hostClosedError)
	return ok
}
