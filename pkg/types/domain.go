package types

import (
	"encoding/json"
	"fmt"
)

// Device identifies one compute device a routine may run against.
type Device struct {
	// Device kind, e.g. cpu, cuda, metal.
	// example: cuda
	Kind string `json:"kind" example:"cuda"`
	// Ordinal within the kind.
	// example: 0
	Index int `json:"index" example:"0"`
}

func (d Device) String() string { return fmt.Sprintf("%s:%d", d.Kind, d.Index) }

// ArtifactKind labels what a stored artifact contains.
type ArtifactKind string

const (
	ArtifactModel      ArtifactKind = "model"
	ArtifactCheckpoint ArtifactKind = "checkpoint"
	ArtifactMetrics    ArtifactKind = "metrics"
)

// JobState is the lifecycle state of a spawned job.
// Created -> Running -> {Completed, Failed, Panicked}.
// There is no cancelled state: cancellation is advisory, and a handler
// that stops after observing the token still completes or fails normally.
type JobState int32

const (
	JobCreated JobState = iota
	JobRunning
	JobCompleted
	JobFailed
	JobPanicked
)

func (s JobState) String() string {
	switch s {
	case JobCreated:
		return "created"
	case JobRunning:
		return "running"
	case JobCompleted:
		return "completed"
	case JobFailed:
		return "failed"
	case JobPanicked:
		return "panicked"
	default:
		return "unknown"
	}
}

func (s JobState) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *JobState) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "created":
		*s = JobCreated
	case "running":
		*s = JobRunning
	case "completed":
		*s = JobCompleted
	case "failed":
		*s = JobFailed
	case "panicked":
		*s = JobPanicked
	default:
		return fmt.Errorf("unknown job state %q", name)
	}
	return nil
}
