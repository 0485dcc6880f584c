// Package param resolves a routine's declared parameters against an
// execution context. Each declared kind is a typed resolver; composite
// parameter lists are resolved element by element in declaration order by
// the routine constructors, failing fast on the first failure.
package param

import (
	"routined/internal/actor"
	"routined/internal/cancel"
	"routined/internal/config"
	"routined/internal/emitter"
	"routined/internal/execctx"
	"routined/pkg/types"
)

// Param yields a value of type V for one invocation, or a retrieval error.
// T is the routine's output item type.
type Param[T, V any] struct {
	name    string
	resolve func(*execctx.Context[T]) (V, error)
}

// Name returns the declared kind, for registry listings and error tags.
func (p Param[T, V]) Name() string { return p.name }

// Resolve yields the value for this invocation.
func (p Param[T, V]) Resolve(c *execctx.Context[T]) (V, error) {
	return p.resolve(c)
}

// CancelToken resolves to a clone of the invocation's cancellation token.
// Never fails.
func CancelToken[T any]() Param[T, cancel.Token] {
	return Param[T, cancel.Token]{
		name: "cancel_token",
		resolve: func(c *execctx.Context[T]) (cancel.Token, error) {
			return c.CancelToken(), nil
		},
	}
}

// OutStream resolves to the invocation's output sink.
func OutStream[T any]() Param[T, emitter.Emitter[T]] {
	return Param[T, emitter.Emitter[T]]{
		name: "out_stream",
		resolve: func(c *execctx.Context[T]) (emitter.Emitter[T], error) {
			if c.Emitter() == nil {
				return nil, notAvailableError{what: "output stream"}
			}
			return c.Emitter(), nil
		},
	}
}

// ModelAccessor resolves to the typed accessor for the model hosted at
// setup. Fails when the context has no model or the accessor's model type
// does not match M.
func ModelAccessor[T, M any]() Param[T, actor.Accessor[M]] {
	return Param[T, actor.Accessor[M]]{
		name: "model_accessor",
		resolve: func(c *execctx.Context[T]) (actor.Accessor[M], error) {
			m := c.Model()
			if m == nil {
				return actor.Accessor[M]{}, notAvailableError{what: "model accessor"}
			}
			acc, ok := m.(actor.Accessor[M])
			if !ok {
				return actor.Accessor[M]{}, accessorTypeError{got: typeName(m)}
			}
			return acc, nil
		},
	}
}

// Devices resolves to a copy of the ordered device list. Never fails; an
// invocation without devices yields an empty list.
func Devices[T any]() Param[T, []types.Device] {
	return Param[T, []types.Device]{
		name: "multi_device",
		resolve: func(c *execctx.Context[T]) ([]types.Device, error) {
			return c.Devices(), nil
		},
	}
}

// State resolves the take-once user state, moving it out of the context.
// The second resolution within one invocation fails.
func State[T, S any]() Param[T, S] {
	return Param[T, S]{
		name: "state",
		resolve: func(c *execctx.Context[T]) (S, error) {
			return execctx.TakeState[S](c)
		},
	}
}

// Config resolves a typed configuration value: def serialized to a
// document, the invocation's override deep-merged onto it, the result
// deserialized back. Type-mismatched overrides fail the resolution.
func Config[T, C any](def C) Param[T, C] {
	return Param[T, C]{
		name: "config",
		resolve: func(c *execctx.Context[T]) (C, error) {
			return config.Resolve(def, c.Override())
		},
	}
}

// Full resolves to the execution context itself.
func Full[T any]() Param[T, *execctx.Context[T]] {
	return Param[T, *execctx.Context[T]]{
		name: "full_context",
		resolve: func(c *execctx.Context[T]) (*execctx.Context[T], error) {
			return c, nil
		},
	}
}

// Opt is the result of an Optional parameter: OK is false when the
// underlying parameter could not be resolved.
type Opt[V any] struct {
	Value V
	OK    bool
}

// Optional wraps p so resolution never fails: an underlying failure is
// swallowed and mapped to an absent value.
func Optional[T, V any](p Param[T, V]) Param[T, Opt[V]] {
	return Param[T, Opt[V]]{
		name: "optional(" + p.name + ")",
		resolve: func(c *execctx.Context[T]) (Opt[V], error) {
			v, err := p.resolve(c)
			if err != nil {
				return Opt[V]{}, nil
			}
			return Opt[V]{Value: v, OK: true}, nil
		},
	}
}
