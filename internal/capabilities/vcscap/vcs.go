package vcscap

import (
	"context"
	"fmt"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/model"
)

const tool = "git"

var packages = map[string]string{
	"winget": "Git.Git",
	"":       "git",
}

// VCS is the version-control client used to fetch toolchain modules and to
// track imaging configurations.
type VCS struct{}

var _ capability.Capability = (*VCS)(nil)

// New creates the version-control client capability.
func New() *VCS {
	return &VCS{}
}

// Metadata describes the capability for the orchestrator.
func (v *VCS) Metadata() capability.Metadata {
	return capability.Metadata{
		Name:        "vcs",
		Description: "version-control client",
		Fatal:       true,
	}
}

// Probe is an existence probe: satisfied iff the client resolves on PATH.
// The detected version is carried as detail for the audit trail.
func (v *VCS) Probe(ctx context.Context, rc *capability.RunContext) model.ProbeResult {
	path, found := rc.Runner.LookPath(tool)
	if !found {
		return model.ProbeResult{Detail: fmt.Sprintf("%s not found on PATH", tool)}
	}

	detail := fmt.Sprintf("%s at %s", tool, path)
	if out, err := rc.Runner.Output(ctx, tool, "version"); err == nil {
		if version, ok := capability.ExtractVersion(out); ok {
			detail = fmt.Sprintf("%s %s at %s", tool, version, path)
		}
	}

	return model.ProbeResult{Satisfied: true, Detail: detail}
}

// Install brings the client in via the system package manager.
func (v *VCS) Install(ctx context.Context, rc *capability.RunContext) error {
	pkg, ok := rc.PkgMgr.Resolve(packages)
	if !ok {
		return fmt.Errorf("no package mapping for %s", rc.PkgMgr.Name)
	}
	return rc.PkgMgr.Install(ctx, rc.Runner, pkg)
}
