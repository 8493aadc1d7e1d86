package model

import (
	"time"
)

// Action describes what the orchestrator did for one capability.
type Action string

const (
	// ActionSkipped means the probe found the capability already satisfied.
	ActionSkipped Action = "skipped"
	// ActionInstalled means the installer ran and the re-probe confirmed it.
	ActionInstalled Action = "installed"
	// ActionFailed means the install or its verification failed.
	ActionFailed Action = "failed"
	// ActionWouldInstall is the dry-run stand-in for ActionInstalled.
	ActionWouldInstall Action = "would_install"
)

// StepOutcome captures the result of running one capability through
// probe -> (install) -> reverify. The ordered sequence of outcomes is the
// audit trail for a run.
type StepOutcome struct {
	Capability string
	Action     Action
	Detail     string
	Error      error
	Duration   time.Duration
	Timestamp  time.Time
}

// RunStatus is the terminal state of a whole provisioning run.
type RunStatus string

const (
	// RunCompleted means every capability reached Done without a fatal halt.
	RunCompleted RunStatus = "completed"
	// RunHalted means a fatal failure stopped the run before the end of the
	// capability list.
	RunHalted RunStatus = "halted"
)

// RunResult aggregates the audit trail and the terminal state of a run.
type RunResult struct {
	Status   RunStatus
	Outcomes []StepOutcome
}

// Failed reports whether the run halted on a fatal failure.
func (r *RunResult) Failed() bool {
	return r != nil && r.Status == RunHalted
}
