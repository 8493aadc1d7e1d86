package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/logger"
	"github.com/devbench/devbench/internal/model"
	"github.com/devbench/devbench/internal/preflight"
	"github.com/devbench/devbench/internal/report"
	devbencherrors "github.com/devbench/devbench/pkg/errors"
)

// fakeMachine stands in for the target machine: a set of satisfied
// capability names that installers mutate.
type fakeMachine struct {
	satisfied map[string]bool
	events    []string
}

func newFakeMachine(satisfied ...string) *fakeMachine {
	m := &fakeMachine{satisfied: make(map[string]bool)}
	for _, name := range satisfied {
		m.satisfied[name] = true
	}
	return m
}

type fakeCapability struct {
	meta    capability.Metadata
	machine *fakeMachine

	installErr error
	// brokenInstaller simulates a tool that reports success without
	// actually satisfying the capability.
	brokenInstaller bool
}

func (f *fakeCapability) Metadata() capability.Metadata { return f.meta }

func (f *fakeCapability) Probe(ctx context.Context, rc *capability.RunContext) model.ProbeResult {
	f.machine.events = append(f.machine.events, "probe:"+f.meta.Name)
	if f.machine.satisfied[f.meta.Name] {
		return model.ProbeResult{Satisfied: true, Detail: "present"}
	}
	return model.ProbeResult{Satisfied: false, Detail: "absent"}
}

func (f *fakeCapability) Install(ctx context.Context, rc *capability.RunContext) error {
	f.machine.events = append(f.machine.events, "install:"+f.meta.Name)
	if f.installErr != nil {
		return f.installErr
	}
	if !f.brokenInstaller {
		f.machine.satisfied[f.meta.Name] = true
	}
	return nil
}

func fatalCap(machine *fakeMachine, name string) *fakeCapability {
	return &fakeCapability{
		meta:    capability.Metadata{Name: name, Description: name, Fatal: true},
		machine: machine,
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "error"})
	require.NoError(t, err)
	return log
}

func newOrchestrator(t *testing.T, rec *report.Recorder, dryRun bool, caps ...capability.Capability) *Orchestrator {
	t.Helper()
	return New(Options{
		Capabilities: caps,
		Collector:    preflight.NewCollector(nil, false, rec),
		Reporter:     rec,
		Logger:       testLogger(t),
		DryRun:       dryRun,
	})
}

func runContext() *capability.RunContext {
	return &capability.RunContext{SearchPath: capability.NewSearchPath("")}
}

func actions(result *model.RunResult) []model.Action {
	out := make([]model.Action, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		out = append(out, o.Action)
	}
	return out
}

func TestRunInstallsEverythingOnFreshMachine(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	rec := &report.Recorder{}
	o := newOrchestrator(t, rec, false,
		fatalCap(machine, "runtime"),
		fatalCap(machine, "vcs"),
		fatalCap(machine, "editor"),
	)

	result, err := o.Run(context.Background(), runContext())
	require.NoError(t, err)
	require.Equal(t, model.RunCompleted, result.Status)
	assert.Equal(t, []model.Action{model.ActionInstalled, model.ActionInstalled, model.ActionInstalled}, actions(result))

	// Gate correctness: every install is preceded by its own unsatisfied
	// probe and followed by the verification re-probe.
	assert.Equal(t, []string{
		"probe:runtime", "install:runtime", "probe:runtime",
		"probe:vcs", "install:vcs", "probe:vcs",
		"probe:editor", "install:editor", "probe:editor",
	}, machine.events)
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	caps := []capability.Capability{
		fatalCap(machine, "runtime"),
		fatalCap(machine, "vcs"),
		fatalCap(machine, "editor"),
	}

	first, err := newOrchestrator(t, &report.Recorder{}, false, caps...).Run(context.Background(), runContext())
	require.NoError(t, err)
	require.Equal(t, model.RunCompleted, first.Status)

	rec := &report.Recorder{}
	second, err := newOrchestrator(t, rec, false, caps...).Run(context.Background(), runContext())
	require.NoError(t, err)
	require.Equal(t, model.RunCompleted, second.Status)

	assert.Equal(t, []model.Action{model.ActionSkipped, model.ActionSkipped, model.ActionSkipped}, actions(second))
	for _, ev := range rec.Events {
		if !ev.Section {
			assert.Equal(t, report.LevelSkip, ev.Level)
		}
	}
}

func TestRunHaltsOnFirstFatalFailure(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	failing := fatalCap(machine, "vcs")
	failing.installErr = errors.New("exit status 1")
	after := fatalCap(machine, "editor")

	rec := &report.Recorder{}
	o := newOrchestrator(t, rec, false, fatalCap(machine, "runtime"), failing, after)

	result, err := o.Run(context.Background(), runContext())
	require.NoError(t, err)
	require.Equal(t, model.RunHalted, result.Status)

	// Nothing after the fatal failure appears in the audit trail.
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, model.ActionInstalled, result.Outcomes[0].Action)
	assert.Equal(t, model.ActionFailed, result.Outcomes[1].Action)
	assert.NotContains(t, machine.events, "probe:editor")

	var installErr *devbencherrors.InstallError
	require.ErrorAs(t, result.Outcomes[1].Error, &installErr)
	assert.Equal(t, "vcs", installErr.Capability)
}

func TestRunContinuesPastNonFatalFailure(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	identity := &fakeCapability{
		meta:       capability.Metadata{Name: "identity", Fatal: false},
		machine:    machine,
		installErr: errors.New("no identity collected"),
	}

	rec := &report.Recorder{}
	o := newOrchestrator(t, rec, false, fatalCap(machine, "vcs"), identity, fatalCap(machine, "editor"))

	result, err := o.Run(context.Background(), runContext())
	require.NoError(t, err)
	require.Equal(t, model.RunCompleted, result.Status)
	assert.Equal(t, []model.Action{model.ActionInstalled, model.ActionFailed, model.ActionInstalled}, actions(result))

	warned := false
	for _, ev := range rec.Events {
		if ev.Level == report.LevelWarning {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestRunReportsVerificationFailureDistinctly(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	broken := fatalCap(machine, "sdk")
	broken.brokenInstaller = true
	after := fatalCap(machine, "module:osd")

	o := newOrchestrator(t, &report.Recorder{}, false, broken, after)

	result, err := o.Run(context.Background(), runContext())
	require.NoError(t, err)
	require.Equal(t, model.RunHalted, result.Status)
	require.Len(t, result.Outcomes, 1)

	var verifyErr *devbencherrors.VerifyError
	require.ErrorAs(t, result.Outcomes[0].Error, &verifyErr)
	assert.Equal(t, "sdk", verifyErr.Capability)

	var installErr *devbencherrors.InstallError
	assert.False(t, errors.As(result.Outcomes[0].Error, &installErr))
}

func TestRunDryRunNeverInstalls(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine("runtime")
	o := newOrchestrator(t, &report.Recorder{}, true, fatalCap(machine, "runtime"), fatalCap(machine, "vcs"))

	result, err := o.Run(context.Background(), runContext())
	require.NoError(t, err)
	require.Equal(t, model.RunCompleted, result.Status)
	assert.Equal(t, []model.Action{model.ActionSkipped, model.ActionWouldInstall}, actions(result))
	assert.NotContains(t, machine.events, "install:vcs")
}

func TestRunCollectsPreflightBeforeAnyInstall(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	consumer := fatalCap(machine, "identity")
	consumer.meta.Domains = []string{"identity"}

	src := &recordingSource{machine: machine}
	collector := preflight.NewCollector(nil, false, &report.Recorder{}, src)

	o := New(Options{
		Capabilities: []capability.Capability{fatalCap(machine, "vcs"), consumer},
		Collector:    collector,
		Reporter:     &report.Recorder{},
		Logger:       testLogger(t),
	})

	_, err := o.Run(context.Background(), runContext())
	require.NoError(t, err)

	require.NotEmpty(t, machine.events)
	assert.Equal(t, "preflight:identity", machine.events[0])
}

func TestRunPreflightFailureHaltsBeforeCapabilities(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	consumer := fatalCap(machine, "vcs")
	consumer.meta.Domains = []string{"unregistered"}

	o := newOrchestrator(t, &report.Recorder{}, false, consumer)

	_, err := o.Run(context.Background(), runContext())
	var prereqErr *devbencherrors.PrerequisiteError
	require.ErrorAs(t, err, &prereqErr)
	assert.Empty(t, machine.events)
}

func TestRunHonorsCancellationAtStepBoundary(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newOrchestrator(t, &report.Recorder{}, false, fatalCap(machine, "runtime"))

	result, err := o.Run(ctx, runContext())
	require.Error(t, err)
	require.Equal(t, model.RunHalted, result.Status)
	assert.Empty(t, machine.events)
}

func TestRunRejectsNilRunContext(t *testing.T) {
	t.Parallel()

	o := newOrchestrator(t, &report.Recorder{}, false)
	_, err := o.Run(context.Background(), nil)
	require.Error(t, err)
}

// Interactive callers collect preflight separately, while they still own the
// terminal; the subsequent Run must not collect a second time.
func TestPreflightCollectedOnceWhenRunFollowsIt(t *testing.T) {
	t.Parallel()

	machine := newFakeMachine()
	consumer := fatalCap(machine, "identity")
	consumer.meta.Domains = []string{"identity"}

	src := &recordingSource{machine: machine}
	collector := preflight.NewCollector(nil, false, &report.Recorder{}, src)

	o := New(Options{
		Capabilities: []capability.Capability{consumer},
		Collector:    collector,
		Reporter:     &report.Recorder{},
		Logger:       testLogger(t),
	})

	rc := runContext()
	require.NoError(t, o.Preflight(context.Background(), rc))
	assert.Equal(t, "dev@corp.example", rc.Answers.Value("user.email"))

	_, err := o.Run(context.Background(), rc)
	require.NoError(t, err)

	reads := 0
	for _, event := range machine.events {
		if event == "preflight:identity" {
			reads++
		}
	}
	assert.Equal(t, 1, reads)
}

func TestPreflightNilRunContext(t *testing.T) {
	t.Parallel()

	o := newOrchestrator(t, &report.Recorder{}, false)
	require.Error(t, o.Preflight(context.Background(), nil))
}

// recordingSource notes when preflight reads happen relative to installs.
type recordingSource struct {
	machine *fakeMachine
}

func (s *recordingSource) Domain() string { return "identity" }

func (s *recordingSource) Fields() []preflight.Field {
	return []preflight.Field{{Key: "user.email", Prompt: "Email address for commits"}}
}

func (s *recordingSource) Read(context.Context) map[string]string {
	s.machine.events = append(s.machine.events, fmt.Sprintf("preflight:%s", s.Domain()))
	return map[string]string{"user.email": "dev@corp.example"}
}
