package entity

import "time"

type RunState string

const (
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// RunStatus is the progress of one backup run.
type RunStatus struct {
	RunID      string
	Account    string
	State      RunState
	Listed     int
	Written    int
	Failed     int
	OutputPath string
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// RunSummary is returned to the caller once a run ends.
type RunSummary struct {
	RunStatus
	Failures []PostFailure
}
