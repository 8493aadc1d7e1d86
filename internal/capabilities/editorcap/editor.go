package editorcap

import (
	"context"
	"fmt"
	"os"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/model"
)

const tool = "code"

var packages = map[string]string{
	"winget":  "Microsoft.VisualStudioCode",
	"brew":    "visual-studio-code",
	"apt-get": "code",
	"":        "code",
}

// wellKnownDirs are install locations checked when the launcher is not on
// PATH; some installers do not add it until the next login shell.
var wellKnownDirs = []string{
	"~/AppData/Local/Programs/Microsoft VS Code",
	"/Applications/Visual Studio Code.app",
	"/usr/share/code",
}

// Editor is the workstation editor used to author imaging scripts.
type Editor struct{}

var _ capability.Capability = (*Editor)(nil)

// New creates the editor capability.
func New() *Editor {
	return &Editor{}
}

// Metadata describes the capability for the orchestrator.
func (e *Editor) Metadata() capability.Metadata {
	return capability.Metadata{
		Name:        "editor",
		Description: "workstation editor",
		Fatal:       true,
	}
}

// Probe is an existence probe: the PATH launcher or any well-known install
// directory marks the editor as present.
func (e *Editor) Probe(ctx context.Context, rc *capability.RunContext) model.ProbeResult {
	if path, found := rc.Runner.LookPath(tool); found {
		return model.ProbeResult{Satisfied: true, Detail: fmt.Sprintf("%s at %s", tool, path)}
	}

	for _, dir := range wellKnownDirs {
		expanded := capability.ExpandPath(dir)
		if info, err := os.Stat(expanded); err == nil && info.IsDir() {
			return model.ProbeResult{Satisfied: true, Detail: fmt.Sprintf("installed at %s", expanded)}
		}
	}

	return model.ProbeResult{Detail: fmt.Sprintf("%s not found on PATH or in known install locations", tool)}
}

// Install brings the editor in via the system package manager.
func (e *Editor) Install(ctx context.Context, rc *capability.RunContext) error {
	pkg, ok := rc.PkgMgr.Resolve(packages)
	if !ok {
		return fmt.Errorf("no package mapping for %s", rc.PkgMgr.Name)
	}
	return rc.PkgMgr.Install(ctx, rc.Runner, pkg)
}
