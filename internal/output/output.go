// Package output routes a handler's return value back into the execution
// context: a stream item goes to the emitter, a record goes to the injected
// artifact store, a unit value is a no-op. The shape set is closed.
package output

import (
	"routined/internal/execctx"
	"routined/pkg/types"
)

// Output is one shape a handler may return. A nil Output applies as Unit.
type Output[T any] interface {
	apply(c *execctx.Context[T]) error
}

// Apply routes o back into the context.
func Apply[T any](c *execctx.Context[T], o Output[T]) error {
	if o == nil {
		return nil
	}
	return o.apply(c)
}

type unitOutput[T any] struct{}

func (unitOutput[T]) apply(*execctx.Context[T]) error { return nil }

// Unit is the no-op shape.
func Unit[T any]() Output[T] { return unitOutput[T]{} }

type itemOutput[T any] struct{ v T }

// Item routes v to the invocation's emitter. A Stop signal from the
// emitter is not an application error.
func Item[T any](v T) Output[T] { return itemOutput[T]{v: v} }

func (o itemOutput[T]) apply(c *execctx.Context[T]) error {
	e := c.Emitter()
	if e == nil {
		return noSinkError{what: "output stream"}
	}
	_, err := e.Emit(o.v)
	return err
}

type recordOutput[T any] struct {
	name  string
	kind  types.ArtifactKind
	value any
}

// Record stores a named, typed artifact against the current run through
// the injected artifact-logging collaborator.
func Record[T any](name string, kind types.ArtifactKind, value any) Output[T] {
	return recordOutput[T]{name: name, kind: kind, value: value}
}

func (o recordOutput[T]) apply(c *execctx.Context[T]) error {
	store := c.Artifacts()
	if store == nil {
		return noSinkError{what: "artifact store"}
	}
	return store.LogArtifact(o.name, o.kind, o.value)
}

type outcomeOutput[T any] struct {
	inner Output[T]
	err   error
}

// Outcome wraps another shape in a success/failure result: a non-nil err
// short-circuits application, otherwise inner applies.
func Outcome[T any](inner Output[T], err error) Output[T] {
	return outcomeOutput[T]{inner: inner, err: err}
}

func (o outcomeOutput[T]) apply(c *execctx.Context[T]) error {
	if o.err != nil {
		return o.err
	}
	return Apply(c, o.inner)
}

// noSinkError: the context carries no destination for this shape.
type noSinkError struct{ what string }

func (e noSinkError) Error() string {
	return "no " + e.what + " configured for this invocation"
}

// IsNoSink reports whether err indicates a missing output destination.
func IsNoSink(err error) bool {
	_, ok := err.(noSinkError)
	return ok
}
