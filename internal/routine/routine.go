// Package routine wraps a plain handler plus its declared parameters into
// one named, invokable unit. Invocation resolves parameters, calls the
// handler, then applies the returned output to the context; the first
// error from any step wins and is tagged with the step that produced it.
package routine

import (
	"reflect"
	"runtime"
	"strings"

	"routined/internal/execctx"
	"routined/internal/output"
	"routined/internal/param"
)

// Routine is stateless and immutable after construction: state lives in
// the per-call context. Built once, invoked 0..N times.
type Routine[T any] struct {
	name   string
	params []string
	run    func(*execctx.Context[T]) error
}

// Name returns the externally-invoked name.
func (r *Routine[T]) Name() string { return r.name }

// ParamNames returns the declared parameter kinds in declaration order.
func (r *Routine[T]) ParamNames() []string {
	out := make([]string, len(r.params))
	copy(out, r.params)
	return out
}

// Invoke runs the routine against c.
func (r *Routine[T]) Invoke(c *execctx.Context[T]) error { return r.run(c) }

// New0 builds a routine whose handler takes no parameters.
func New0[T any](name string, fn func() (output.Output[T], error)) *Routine[T] {
	name = routineName(name, fn)
	return &Routine[T]{
		name: name,
		run: func(c *execctx.Context[T]) error {
			out, herr := fn()
			return finish(c, name, out, herr)
		},
	}
}

// New1 builds a routine over one declared parameter.
func New1[T, A any](name string, pa param.Param[T, A], fn func(A) (output.Output[T], error)) *Routine[T] {
	name = routineName(name, fn)
	return &Routine[T]{
		name:   name,
		params: []string{pa.Name()},
		run: func(c *execctx.Context[T]) error {
			a, err := pa.Resolve(c)
			if err != nil {
				return paramError{routine: name, param: pa.Name(), err: err}
			}
			out, herr := fn(a)
			return finish(c, name, out, herr)
		},
	}
}

// New2 builds a routine over two declared parameters, resolved in
// declaration order with fail-fast semantics.
func New2[T, A, B any](name string, pa param.Param[T, A], pb param.Param[T, B], fn func(A, B) (output.Output[T], error)) *Routine[T] {
	name = routineName(name, fn)
	return &Routine[T]{
		name:   name,
		params: []string{pa.Name(), pb.Name()},
		run: func(c *execctx.Context[T]) error {
			a, err := pa.Resolve(c)
			if err != nil {
				return paramError{routine: name, param: pa.Name(), err: err}
			}
			b, err := pb.Resolve(c)
			if err != nil {
				return paramError{routine: name, param: pb.Name(), err: err}
			}
			out, herr := fn(a, b)
			return finish(c, name, out, herr)
		},
	}
}

// New3 builds a routine over three declared parameters.
func New3[T, A, B, C any](name string, pa param.Param[T, A], pb param.Param[T, B], pc param.Param[T, C], fn func(A, B, C) (output.Output[T], error)) *Routine[T] {
	name = routineName(name, fn)
	return &Routine[T]{
		name:   name,
		params: []string{pa.Name(), pb.Name(), pc.Name()},
		run: func(ctx *execctx.Context[T]) error {
			a, err := pa.Resolve(ctx)
			if err != nil {
				return paramError{routine: name, param: pa.Name(), err: err}
			}
			b, err := pb.Resolve(ctx)
			if err != nil {
				return paramError{routine: name, param: pb.Name(), err: err}
			}
			c, err := pc.Resolve(ctx)
			if err != nil {
				return paramError{routine: name, param: pc.Name(), err: err}
			}
			out, herr := fn(a, b, c)
			return finish(ctx, name, out, herr)
		},
	}
}

// New4 builds a routine over four declared parameters.
func New4[T, A, B, C, D any](name string, pa param.Param[T, A], pb param.Param[T, B], pc param.Param[T, C], pd param.Param[T, D], fn func(A, B, C, D) (output.Output[T], error)) *Routine[T] {
	name = routineName(name, fn)
	return &Routine[T]{
		name:   name,
		params: []string{pa.Name(), pb.Name(), pc.Name(), pd.Name()},
		run: func(ctx *execctx.Context[T]) error {
			a, err := pa.Resolve(ctx)
			if err != nil {
				return paramError{routine: name, param: pa.Name(), err: err}
			}
			b, err := pb.Resolve(ctx)
			if err != nil {
				return paramError{routine: name, param: pb.Name(), err: err}
			}
			c, err := pc.Resolve(ctx)
			if err != nil {
				return paramError{routine: name, param: pc.Name(), err: err}
			}
			d, err := pd.Resolve(ctx)
			if err != nil {
				return paramError{routine: name, param: pd.Name(), err: err}
			}
			out, herr := fn(a, b, c, d)
			return finish(ctx, name, out, herr)
		},
	}
}

func finish[T any](c *execctx.Context[T], name string, out output.Output[T], herr error) error {
	if herr != nil {
		return handlerError{routine: name, err: herr}
	}
	if err := output.Apply(c, out); err != nil {
		return outputError{routine: name, err: err}
	}
	return nil
}

// routineName derives a default name from the handler's identity when no
// explicit name was given.
func routineName(name string, fn any) string {
	if name != "" {
		return name
	}
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "anonymous"
	}
	full := f.Name()
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}
