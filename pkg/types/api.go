package types

// RoutineInfo describes one registered routine.
type RoutineInfo struct {
	// Externally-invoked routine name.
	// example: llm.generate
	Name string `json:"name" example:"llm.generate"`
	// Declared parameter kinds, in declaration order.
	Params []string `json:"params,omitempty"`
}

// JobStatus is the observable state of one spawned job.
type JobStatus struct {
	// Job identifier assigned at spawn time.
	ID string `json:"id"`
	// Name of the routine the job runs.
	Routine string `json:"routine"`
	// Lifecycle state.
	State JobState `json:"state"`
	// Error message for failed or panicked jobs.
	Error string `json:"error,omitempty"`
}

// RoutinesResponse wraps the list returned by GET /routines.
type RoutinesResponse struct {
	Routines []RoutineInfo `json:"routines"`
}

// JobsResponse wraps the list returned by GET /jobs.
type JobsResponse struct {
	Jobs []JobStatus `json:"jobs"`
}

// ErrorResponse is the standard error payload for non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
