package model

// ProbeResult is the outcome of evaluating one capability against the live
// machine. It is produced by a read-only probe and consumed within a single
// orchestration step to decide whether the installer runs and what to report.
//
// Probes are total: a probe whose underlying query fails (the query tool
// itself is missing, output cannot be parsed) reports Satisfied=false rather
// than an error. Absence is a normal state on a fresh machine.
type ProbeResult struct {
	// Satisfied is true when the capability is already present and
	// sufficient, including any minimum-version requirement.
	Satisfied bool

	// Detail carries free-form context for reporting: a detected version,
	// an install path, or the reason the probe came up empty.
	Detail string
}
