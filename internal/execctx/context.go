// Package execctx holds the per-invocation bundle of capabilities exposed
// to a running handler: devices, a model accessor, an emitter, a cancel
// token and at most one piece of user state.
package execctx

import (
	"sync"

	"github.com/rs/zerolog"

	"routined/internal/cancel"
	"routined/internal/emitter"
	"routined/pkg/types"
)

// ArtifactStore is the injected collaborator that persists a named, typed
// artifact against the current run. The engine never opens a network
// connection itself; implementations do.
type ArtifactStore interface {
	LogArtifact(name string, kind types.ArtifactKind, value any) error
}

// Seed carries everything a context is built from. Training invocations
// set Artifacts and leave Model nil; inference invocations set Model.
type Seed[T any] struct {
	Devices   []types.Device
	Model     any
	Emitter   emitter.Emitter[T]
	Cancel    cancel.Token
	State     any
	Override  []byte
	Artifacts ArtifactStore
	Logger    zerolog.Logger
}

// Context is created per invocation (run) or per job (spawn) and lives
// exactly that long. It is safe for use from the handler goroutine and any
// goroutines the handler shares it with.
type Context[T any] struct {
	devices   []types.Device
	model     any
	emit      emitter.Emitter[T]
	tok       cancel.Token
	override  []byte
	artifacts ArtifactStore
	log       zerolog.Logger

	mu       sync.Mutex
	state    any
	supplied bool
	taken    bool
}

func New[T any](s Seed[T]) *Context[T] {
	return &Context[T]{
		devices:   s.Devices,
		model:     s.Model,
		emit:      s.Emitter,
		tok:       s.Cancel,
		override:  s.Override,
		artifacts: s.Artifacts,
		log:       s.Logger,
		state:     s.State,
		supplied:  s.State != nil,
	}
}

// Devices returns a copy of the ordered device list.
func (c *Context[T]) Devices() []types.Device {
	out := make([]types.Device, len(c.devices))
	copy(out, c.devices)
	return out
}

// Model returns the opaque model accessor supplied at setup, or nil for
// invocations without one. Callers type-assert to the concrete accessor.
func (c *Context[T]) Model() any { return c.model }

// Emitter returns the output sink for this invocation.
func (c *Context[T]) Emitter() emitter.Emitter[T] { return c.emit }

// CancelToken returns a clone of the invocation's cancellation token.
func (c *Context[T]) CancelToken() cancel.Token { return c.tok.Clone() }

// Override returns the raw per-invocation configuration override document.
func (c *Context[T]) Override() []byte { return c.override }

// Artifacts returns the artifact-logging collaborator, or nil.
func (c *Context[T]) Artifacts() ArtifactStore { return c.artifacts }

// Logger returns the invocation logger. The zero logger discards.
func (c *Context[T]) Logger() zerolog.Logger { return c.log }

// TakeState moves the user state out of the context. The first request
// consumes it; a second request fails. A failed type assertion leaves the
// state in place so a correctly-typed request can still succeed.
func TakeState[S any, T any](c *Context[T]) (S, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero S
	if !c.supplied {
		return zero, stateMissingError{}
	}
	if c.taken {
		return zero, stateTakenError{}
	}
	s, ok := c.state.(S)
	if !ok {
		return zero, stateTypeError{got: typeName(c.state)}
	}
	c.taken = true
	c.state = nil
	return s, nil
}
