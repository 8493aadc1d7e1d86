package runtimecap

import (
	"context"
	"fmt"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/model"
)

const tool = "pwsh"

// packages maps detected package managers to the runtime's package id.
var packages = map[string]string{
	"winget": "Microsoft.PowerShell",
	"":       "powershell",
}

// Runtime is the scripting runtime the imaging toolchain runs on. It is
// version-gated: an installed runtime below the minimum counts as
// insufficient and is upgraded through the package manager.
type Runtime struct {
	minimum capability.Version
}

var _ capability.Capability = (*Runtime)(nil)

// New creates the runtime capability gated on minimumVersion.
func New(minimumVersion string) (*Runtime, error) {
	minimum, err := capability.ParseVersion(minimumVersion)
	if err != nil {
		return nil, fmt.Errorf("runtime minimum version: %w", err)
	}
	return &Runtime{minimum: minimum}, nil
}

// Metadata describes the capability for the orchestrator.
func (r *Runtime) Metadata() capability.Metadata {
	return capability.Metadata{
		Name:           "runtime",
		Description:    "scripting runtime for the imaging toolchain",
		MinimumVersion: r.minimum.String(),
		Fatal:          true,
	}
}

// Probe is a version probe: satisfied iff the runtime is on PATH and its
// reported version is at least the minimum. A missing binary or unparsable
// version output reads as unsatisfied, never as an error.
func (r *Runtime) Probe(ctx context.Context, rc *capability.RunContext) model.ProbeResult {
	path, found := rc.Runner.LookPath(tool)
	if !found {
		return model.ProbeResult{Detail: fmt.Sprintf("%s not found on PATH", tool)}
	}

	out, err := rc.Runner.Output(ctx, tool, "--version")
	if err != nil {
		return model.ProbeResult{Detail: fmt.Sprintf("%s present but version query failed", tool)}
	}

	version, ok := capability.ExtractVersion(out)
	if !ok {
		return model.ProbeResult{Detail: fmt.Sprintf("could not parse version from %q", out)}
	}

	if !version.AtLeast(r.minimum) {
		return model.ProbeResult{Detail: fmt.Sprintf("%s %s below minimum %s", tool, version, r.minimum)}
	}

	return model.ProbeResult{Satisfied: true, Detail: fmt.Sprintf("%s %s at %s", tool, version, path)}
}

// Install brings the runtime in via the system package manager.
func (r *Runtime) Install(ctx context.Context, rc *capability.RunContext) error {
	pkg, ok := rc.PkgMgr.Resolve(packages)
	if !ok {
		return fmt.Errorf("no package mapping for %s", rc.PkgMgr.Name)
	}
	return rc.PkgMgr.Install(ctx, rc.Runner, pkg)
}
