// Package job ties the param/routine/output machinery into the two
// execution modes: a synchronous run returning a complete result set, and
// a spawned background job streaming partial results while remaining
// cancellable.
package job

import (
	"github.com/rs/zerolog"

	"routined/internal/cancel"
	"routined/internal/emitter"
	"routined/internal/execctx"
	"routined/internal/routine"
	"routined/pkg/types"
)

// DefaultCapacity bounds the item queue of a spawned job when the caller
// does not choose one.
const DefaultCapacity = 32

// Options assemble the capabilities an invocation's context exposes.
// Training setups supply Artifacts; inference setups supply Model (an
// actor accessor). Everything is optional.
type Options struct {
	Devices   []types.Device
	Model     any
	State     any
	Override  []byte
	Artifacts execctx.ArtifactStore
	Logger    zerolog.Logger
	// Capacity of the spawned job's item queue; Run ignores it.
	Capacity int
	// Tracker, when set, registers spawned jobs for the ops surface.
	Tracker *Tracker
}

func newContext[T any](opts Options, e emitter.Emitter[T], tok cancel.Token) *execctx.Context[T] {
	return execctx.New(execctx.Seed[T]{
		Devices:   opts.Devices,
		Model:     opts.Model,
		Emitter:   e,
		Cancel:    tok,
		State:     opts.State,
		Override:  opts.Override,
		Artifacts: opts.Artifacts,
		Logger:    opts.Logger,
	})
}

// Run invokes r on the calling goroutine with a collecting emitter and a
// fresh, untriggered cancel token, and returns the drained items or the
// first error once the handler returns. No new concurrency.
func Run[T any](r *routine.Routine[T], opts Options) ([]T, error) {
	col := emitter.NewCollector[T]()
	c := newContext[T](opts, col, cancel.New())
	if err := r.Invoke(c); err != nil {
		runsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	runsTotal.WithLabelValues("completed").Inc()
	return col.Drain(), nil
}
