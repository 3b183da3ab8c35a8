package response

import "time"

// RunStatusResponse is a DTO for run status, mirroring entity.RunStatus
type RunStatusResponse struct {
	RunID      string     `json:"run_id"`
	Account    string     `json:"account"`
	State      string     `json:"state"` // "running", "completed", "failed"
	Listed     int        `json:"listed"`
	Written    int        `json:"written"`
	Failed     int        `json:"failed"`
	OutputPath string     `json:"output_path,omitempty"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
