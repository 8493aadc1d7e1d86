package capability

import (
	"context"

	"github.com/devbench/devbench/internal/model"
)

// Metadata describes a capability for the orchestrator and for reporting.
type Metadata struct {
	// Name uniquely identifies the capability within a run.
	Name string

	// Description is the human-facing rationale shown in status output.
	Description string

	// MinimumVersion gates version-probed capabilities. Empty for
	// existence-probed capabilities.
	MinimumVersion string

	// Domains lists the preflight input domains this capability consumes.
	// The orchestrator collects all declared domains before the first
	// mutating step runs.
	Domains []string

	// Fatal capabilities halt the run when they fail. Non-fatal failures
	// are reported as warnings and the run continues.
	Fatal bool
}

// Capability is a single provisionable unit of machine state. Capabilities
// are declared once in a fixed, dependency-respecting order and are
// immutable for the lifetime of the process; the state they describe lives
// in the target machine, never in this model.
type Capability interface {
	// Metadata returns the capability's identity and orchestration flags.
	Metadata() Metadata

	// Probe performs a strictly read-only assessment of whether the
	// capability is already satisfied. It must not mutate machine state and
	// must not require interactive input.
	//
	// Probe is total: failure of the underlying query (the query tool is
	// missing, output is unparsable) is reported as Satisfied=false, never
	// as an error. Absence is a normal state on a fresh machine.
	Probe(ctx context.Context, rc *RunContext) model.ProbeResult

	// Install brings the capability from absent/insufficient to
	// present/sufficient. It is only invoked when the paired Probe reported
	// unsatisfied, and must leave the machine in a state where an immediate
	// re-probe reports satisfied.
	Install(ctx context.Context, rc *RunContext) error
}
