// Package registry stores the routines a program registers at setup, keyed
// by their externally-invoked name. Name collisions are rejected at
// registration time, never at invocation time.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"routined/pkg/types"
)

// Named is the registry's view of a routine. Routines with different item
// types share it, so the ops surface can enumerate them uniformly.
type Named interface {
	Name() string
	ParamNames() []string
}

type Registry struct {
	mu       sync.RWMutex
	routines map[string]Named
}

func New() *Registry {
	return &Registry{routines: make(map[string]Named)}
}

// Register adds rt under its name. Registering a second routine with the
// same name fails.
func (r *Registry) Register(rt Named) error {
	if rt == nil || rt.Name() == "" {
		return fmt.Errorf("routine has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.routines[rt.Name()]; exists {
		return duplicateRoutineError{name: rt.Name()}
	}
	r.routines[rt.Name()] = rt
	return nil
}

// MustRegister is Register for setup paths where a collision is a
// programming error.
func (r *Registry) MustRegister(rt Named) {
	if err := r.Register(rt); err != nil {
		panic(err)
	}
}

// Get returns the routine registered under name.
func (r *Registry) Get(name string) (Named, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.routines[name]
	return rt, ok
}

// List returns routine descriptions sorted by name.
func (r *Registry) List() []types.RoutineInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.RoutineInfo, 0, len(r.routines))
	for _, rt := range r.routines {
		out = append(out, types.RoutineInfo{Name: rt.Name(), Params: rt.ParamNames()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// duplicateRoutineError: two routines collide on their externally-invoked
// name.
type duplicateRoutineError struct{ name string }

func (e duplicateRoutineError) Error() string {
	return "routine already registered: " + e.name
}

// IsDuplicateRoutine reports whether err indicates a name collision.
func IsDuplicateRoutine(err error) bool {
	_, ok := err.(duplicateRoutineError)
	return ok
}
