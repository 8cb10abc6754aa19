package model

// RunState is the externally visible state of the simulated download pipeline.
type RunState string

const (
	// RunStateNotStarted means a playlist may be loaded but no run has begun
	RunStateNotStarted RunState = "not_started"

	// RunStateRunning means videos are being processed one at a time
	RunStateRunning RunState = "running"

	// RunStateCancelled means the user stopped the run
	RunStateCancelled RunState = "cancelled"

	// RunStateCompleted means every video was processed
	RunStateCompleted RunState = "completed"

	// RunStateBlocked means a save was blocked and the run ended early
	RunStateBlocked RunState = "blocked"
)

// String returns the string representation of RunState
func (rs RunState) String() string {
	return string(rs)
}

// IsActive returns true while a run is in progress
func (rs RunState) IsActive() bool {
	return rs == RunStateRunning
}

// IsFinished returns true if the run ended (completed, cancelled, or blocked)
func (rs RunState) IsFinished() bool {
	return rs == RunStateCompleted || rs == RunStateCancelled || rs == RunStateBlocked
}
