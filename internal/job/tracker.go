package job

import (
	"sort"
	"sync"

	"routined/pkg/types"
)

// View is the non-generic surface a tracked job exposes to the ops layer.
// Handle implements it for every item type.
type View interface {
	ID() string
	Routine() string
	State() types.JobState
	Err() error
	Cancel()
}

// Tracker indexes spawned jobs for the ops API. It never removes entries
// on its own; finished jobs stay visible with their terminal state.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]View
}

func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]View)}
}

func (t *Tracker) add(v View) {
	t.mu.Lock()
	t.jobs[v.ID()] = v
	t.mu.Unlock()
}

// Get returns the tracked job with the given id.
func (t *Tracker) Get(id string) (View, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.jobs[id]
	return v, ok
}

// Status returns a status snapshot of the tracked job with the given id.
func (t *Tracker) Status(id string) (types.JobStatus, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.jobs[id]
	if !ok {
		return types.JobStatus{}, false
	}
	return snapshot(v), true
}

// List returns a status snapshot of every tracked job, sorted by id.
func (t *Tracker) List() []types.JobStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]types.JobStatus, 0, len(t.jobs))
	for _, v := range t.jobs {
		out = append(out, snapshot(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CancelJob flips the cancel token of the tracked job with the given id.
func (t *Tracker) CancelJob(id string) bool {
	t.mu.RLock()
	v, ok := t.jobs[id]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	v.Cancel()
	return true
}

func snapshot(v View) types.JobStatus {
	s := types.JobStatus{ID: v.ID(), Routine: v.Routine(), State: v.State()}
	if err := v.Err(); err != nil {
		s.Error = err.Error()
	}
	return s
}
