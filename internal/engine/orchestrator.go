package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/logger"
	"github.com/devbench/devbench/internal/model"
	"github.com/devbench/devbench/internal/preflight"
	"github.com/devbench/devbench/internal/report"
	devbencherrors "github.com/devbench/devbench/pkg/errors"
)

// Orchestrator drives an ordered capability list through
// probe -> (install) -> reverify, halting on the first fatal failure.
// Execution is strictly sequential: later capabilities may depend on side
// effects of earlier ones, so nothing is parallelized and cancellation is
// only honored at step boundaries.
type Orchestrator struct {
	caps      []capability.Capability
	collector *preflight.Collector
	reporter  report.Reporter
	log       *logger.Logger
	dryRun    bool
}

// Options configures an Orchestrator.
type Options struct {
	Capabilities []capability.Capability
	Collector    *preflight.Collector
	Reporter     report.Reporter
	Logger       *logger.Logger
	DryRun       bool
}

// New creates an Orchestrator over a fixed capability list.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		caps:      opts.Capabilities,
		collector: opts.Collector,
		reporter:  opts.Reporter,
		log:       opts.Logger,
		dryRun:    opts.DryRun,
	}
}

// Preflight gathers every input domain the capability list declares and
// stores the answers on rc. Callers that prompt interactively must run it
// while they still own the terminal; Run collects on its own only when it
// has not happened yet, so collection never repeats.
func (o *Orchestrator) Preflight(ctx context.Context, rc *capability.RunContext) error {
	if rc == nil {
		return fmt.Errorf("run context is nil")
	}
	return o.collectPreflight(ctx, rc)
}

// Run provisions the machine. The returned RunResult carries the ordered
// StepOutcome audit trail and the terminal run status. An error is returned
// only for failures that occur before the first capability executes
// (preflight collection, cancelled context); capability failures are encoded
// in the audit trail and the Halted status.
func (o *Orchestrator) Run(ctx context.Context, rc *capability.RunContext) (*model.RunResult, error) {
	if rc == nil {
		return nil, fmt.Errorf("run context is nil")
	}

	if rc.Answers == nil {
		if err := o.collectPreflight(ctx, rc); err != nil {
			return nil, err
		}
	}

	result := &model.RunResult{Status: model.RunCompleted}

	for _, c := range o.caps {
		if err := ctx.Err(); err != nil {
			result.Status = model.RunHalted
			return result, err
		}

		outcome := o.runStep(ctx, c, rc)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Action == model.ActionFailed {
			if c.Metadata().Fatal {
				result.Status = model.RunHalted
				o.reporter.Report(report.LevelError,
					"halting: fix the underlying issue and re-run; completed capabilities will be skipped")
				return result, nil
			}
			o.reporter.Report(report.LevelWarning,
				fmt.Sprintf("%s failed but is not required; continuing", c.Metadata().Name))
		}
	}

	return result, nil
}

// collectPreflight gathers every input domain the capability list declares,
// before the first mutating step. Collecting up front is a deliberate
// ordering guarantee: a long run must never block mid-way on a human.
func (o *Orchestrator) collectPreflight(ctx context.Context, rc *capability.RunContext) error {
	domains := o.declaredDomains()
	if len(domains) == 0 {
		return nil
	}

	o.reporter.Section("Preflight")

	answers, err := o.collector.Collect(ctx, domains)
	if err != nil {
		return devbencherrors.NewPrerequisiteError("preflight input", err)
	}
	rc.Answers = answers
	return nil
}

func (o *Orchestrator) declaredDomains() []string {
	seen := make(map[string]struct{})
	var domains []string
	for _, c := range o.caps {
		for _, domain := range c.Metadata().Domains {
			if _, ok := seen[domain]; ok {
				continue
			}
			seen[domain] = struct{}{}
			domains = append(domains, domain)
		}
	}
	return domains
}

// runStep walks one capability through the per-step state machine:
// Pending -> Probing -> (Skipping | Installing) -> Verifying -> Done.
func (o *Orchestrator) runStep(ctx context.Context, c capability.Capability, rc *capability.RunContext) model.StepOutcome {
	meta := c.Metadata()
	log := o.log.WithCapability(meta.Name)
	start := time.Now()

	outcome := model.StepOutcome{Capability: meta.Name, Timestamp: start}

	probe := c.Probe(ctx, rc)
	if probe.Satisfied {
		log.Debug("probe satisfied, skipping")
		o.reporter.Report(report.LevelSkip, skipMessage(meta, probe))
		outcome.Action = model.ActionSkipped
		outcome.Detail = probe.Detail
		outcome.Duration = time.Since(start)
		return outcome
	}

	o.reporter.Report(report.LevelInfo, installMessage(meta, probe))

	if o.dryRun {
		outcome.Action = model.ActionWouldInstall
		outcome.Detail = probe.Detail
		outcome.Duration = time.Since(start)
		return outcome
	}

	if err := c.Install(ctx, rc); err != nil {
		installErr := devbencherrors.NewInstallError(meta.Name, err)
		log.Error(installErr, "install failed")
		o.reporter.Report(report.LevelError, installErr.Error())
		outcome.Action = model.ActionFailed
		outcome.Error = installErr
		outcome.Duration = time.Since(start)
		return outcome
	}

	// The installer is self-verifying: an immediate re-probe must report
	// satisfied, otherwise the tool "succeeded" but the machine is still
	// broken, which is reported distinctly from an install failure.
	reprobe := c.Probe(ctx, rc)
	if !reprobe.Satisfied {
		verifyErr := devbencherrors.NewVerifyError(meta.Name, reprobe.Detail)
		log.Error(verifyErr, "verification failed")
		o.reporter.Report(report.LevelError, verifyErr.Error())
		outcome.Action = model.ActionFailed
		outcome.Error = verifyErr
		outcome.Duration = time.Since(start)
		return outcome
	}

	o.reporter.Report(report.LevelSuccess, successMessage(meta, reprobe))
	outcome.Action = model.ActionInstalled
	outcome.Detail = reprobe.Detail
	outcome.Duration = time.Since(start)
	return outcome
}

func skipMessage(meta capability.Metadata, probe model.ProbeResult) string {
	if probe.Detail != "" {
		return fmt.Sprintf("%s already satisfied (%s)", meta.Name, probe.Detail)
	}
	return fmt.Sprintf("%s already satisfied", meta.Name)
}

func installMessage(meta capability.Metadata, probe model.ProbeResult) string {
	if probe.Detail != "" {
		return fmt.Sprintf("installing %s: %s", meta.Name, probe.Detail)
	}
	return fmt.Sprintf("installing %s", meta.Name)
}

func successMessage(meta capability.Metadata, probe model.ProbeResult) string {
	if probe.Detail != "" {
		return fmt.Sprintf("%s installed (%s)", meta.Name, probe.Detail)
	}
	return fmt.Sprintf("%s installed", meta.Name)
}
