package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/devbench/devbench/internal/execx"
	devbencherrors "github.com/devbench/devbench/pkg/errors"
)

// Manager is a detected system package manager with its fixed install
// argument shape. The provisioner shells out to it and treats exit code 0 as
// success; anything else is a capability-level failure.
type Manager struct {
	// Name is the executable name (winget, brew, apt-get).
	Name string

	installArgs func(pkg string) []string
}

var known = []Manager{
	{
		Name: "winget",
		installArgs: func(pkg string) []string {
			return []string{"install", "--id", pkg, "--silent", "--accept-package-agreements", "--accept-source-agreements"}
		},
	},
	{
		Name: "brew",
		installArgs: func(pkg string) []string {
			return []string{"install", pkg}
		},
	},
	{
		Name: "apt-get",
		installArgs: func(pkg string) []string {
			return []string{"install", "-y", pkg}
		},
	},
}

// Detect finds a usable package manager on PATH. When preferred is set only
// that manager is considered; otherwise the first known manager found wins.
// No usable manager is a prerequisite failure: the orchestrator cannot
// remediate it and must halt before any capability runs.
func Detect(runner execx.Runner, preferred string) (*Manager, error) {
	names := make([]string, 0, len(known))
	for i := range known {
		m := known[i]
		names = append(names, m.Name)
		if preferred != "" && m.Name != preferred {
			continue
		}
		if _, found := runner.LookPath(m.Name); found {
			return &m, nil
		}
		if preferred != "" {
			return nil, devbencherrors.NewPrerequisiteError(
				"supported package manager",
				fmt.Errorf("configured package manager %q not found on PATH", preferred),
			)
		}
	}

	return nil, devbencherrors.NewPrerequisiteError(
		"supported package manager",
		fmt.Errorf("none of %s found on PATH", strings.Join(names, ", ")),
	)
}

// Resolve picks the package identifier for this manager from a per-manager
// map. The empty key is the fallback identifier.
func (m *Manager) Resolve(ref map[string]string) (string, bool) {
	if pkg, ok := ref[m.Name]; ok && pkg != "" {
		return pkg, true
	}
	if pkg, ok := ref[""]; ok && pkg != "" {
		return pkg, true
	}
	return "", false
}

// Install runs the manager's install command for pkg, blocking until the
// external process exits.
func (m *Manager) Install(ctx context.Context, runner execx.Runner, pkg string) error {
	if pkg == "" {
		return fmt.Errorf("package name is empty")
	}

	_, err := runner.Run(ctx, m.Name, m.installArgs(pkg)...)
	if err != nil {
		return fmt.Errorf("%s install %s: %w", m.Name, pkg, err)
	}
	return nil
}
