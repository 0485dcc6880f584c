package job

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"routined/internal/cancel"
	"routined/internal/emitter"
	"routined/internal/execctx"
	"routined/internal/routine"
	"routined/pkg/types"
)

// Handle is the caller side of a spawned job: an incrementally-consumable
// item receiver, a cancel trigger, and a join point. Dropping a handle
// without joining leaks the worker until natural completion; there is no
// implicit cancel-on-drop.
type Handle[T any] struct {
	id      string
	routine string
	emit    *emitter.Channel[T]
	tok     cancel.Token
	done    chan struct{}
	state   atomic.Int32

	mu  sync.Mutex
	err error
}

// Spawn builds a context with a channel emitter of the chosen capacity,
// starts a worker goroutine running r, and returns immediately.
func Spawn[T any](r *routine.Routine[T], opts Options) *Handle[T] {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h := &Handle[T]{
		id:      uuid.NewString(),
		routine: r.Name(),
		emit:    emitter.NewChannel[T](capacity),
		tok:     cancel.New(),
		done:    make(chan struct{}),
	}
	h.state.Store(int32(types.JobCreated))
	if opts.Tracker != nil {
		opts.Tracker.add(h)
	}
	jobsSpawnedTotal.Inc()
	jobsActive.Inc()
	c := newContext[T](opts, h.emit, h.tok.Clone())
	go h.work(r, c, opts.Logger)
	return h
}

func (h *Handle[T]) work(r *routine.Routine[T], c *execctx.Context[T], log zerolog.Logger) {
	defer func() {
		if v := recover(); v != nil {
			h.setErr(panicError{routine: h.routine, value: v})
			h.state.Store(int32(types.JobPanicked))
			jobsCompletedTotal.WithLabelValues("panicked").Inc()
			log.Error().Str("job", h.id).Str("routine", h.routine).
				Interface("panic", v).Msg("job worker panicked")
		}
		h.emit.CloseSend()
		jobsActive.Dec()
		close(h.done)
	}()
	h.state.Store(int32(types.JobRunning))
	log.Debug().Str("job", h.id).Str("routine", h.routine).Msg("job started")
	if err := r.Invoke(c); err != nil {
		h.setErr(err)
		h.state.Store(int32(types.JobFailed))
		jobsCompletedTotal.WithLabelValues("failed").Inc()
		log.Warn().Str("job", h.id).Str("routine", h.routine).Err(err).Msg("job failed")
		return
	}
	h.state.Store(int32(types.JobCompleted))
	jobsCompletedTotal.WithLabelValues("completed").Inc()
	log.Debug().Str("job", h.id).Str("routine", h.routine).Msg("job completed")
}

func (h *Handle[T]) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// ID returns the identifier assigned at spawn time.
func (h *Handle[T]) ID() string { return h.id }

// Routine returns the name of the routine this job runs.
func (h *Handle[T]) Routine() string { return h.routine }

// Items exposes the job's ordered item stream. It is closed once the
// worker finishes, signalling end-of-stream.
func (h *Handle[T]) Items() <-chan T { return h.emit.Items() }

// Cancel flips the shared token. Cooperative, not preemptive: handlers
// must poll IsCancelled themselves.
func (h *Handle[T]) Cancel() { h.tok.Cancel() }

// State returns the job's lifecycle state.
func (h *Handle[T]) State() types.JobState {
	return types.JobState(h.state.Load())
}

// Err returns the recorded outcome without blocking. Meaningful once the
// job left the running state.
func (h *Handle[T]) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Join blocks until the worker finishes and returns its outcome, or a
// panicked error if the worker terminated abnormally.
func (h *Handle[T]) Join() error {
	<-h.done
	return h.Err()
}
