package modulecap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/config"
	"github.com/devbench/devbench/internal/model"
)

// Module materializes one toolchain module from its package repository into
// a fixed directory under the module root. After the first successful fetch
// the module root is appended to the run's module search path, exactly once,
// so later capabilities and the imaging scripts can resolve modules from it.
type Module struct {
	spec config.ModuleConfig
	root string

	// clone is swapped in tests to avoid network access.
	clone func(ctx context.Context, path string, opts *git.CloneOptions) error
}

var _ capability.Capability = (*Module)(nil)

// New creates a module capability for one configured module.
func New(spec config.ModuleConfig, moduleRoot string) *Module {
	return &Module{
		spec: spec,
		root: moduleRoot,
		clone: func(ctx context.Context, path string, opts *git.CloneOptions) error {
			_, err := git.PlainCloneContext(ctx, path, false, opts)
			return err
		},
	}
}

// Metadata describes the capability for the orchestrator.
func (m *Module) Metadata() capability.Metadata {
	return capability.Metadata{
		Name:        "module:" + m.spec.Name,
		Description: fmt.Sprintf("toolchain module %s from %s", m.spec.Name, m.spec.Source),
		Fatal:       true,
	}
}

func (m *Module) target() string {
	return filepath.Join(capability.ExpandPath(m.root), m.spec.Name)
}

// Probe is an existence probe on the module's clone. A directory that is not
// an openable repository counts as unsatisfied so a broken fetch is redone.
func (m *Module) Probe(ctx context.Context, rc *capability.RunContext) model.ProbeResult {
	target := m.target()

	if _, err := os.Stat(filepath.Join(target, git.GitDirName)); err != nil {
		return model.ProbeResult{Detail: fmt.Sprintf("no module at %s", target)}
	}

	repo, err := git.PlainOpen(target)
	if err != nil {
		return model.ProbeResult{Detail: fmt.Sprintf("module directory at %s is not a usable repository", target)}
	}

	detail := fmt.Sprintf("module at %s", target)
	if head, err := repo.Head(); err == nil {
		detail = fmt.Sprintf("module at %s (%s)", target, head.Name().Short())
	}

	return model.ProbeResult{Satisfied: true, Detail: detail}
}

// Install fetches the module via the repository client and registers the
// module root on the search path.
func (m *Module) Install(ctx context.Context, rc *capability.RunContext) error {
	root := capability.ExpandPath(m.root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("preparing module root: %w", err)
	}

	opts := &git.CloneOptions{
		URL:          m.spec.Source,
		Depth:        1,
		SingleBranch: true,
	}
	if m.spec.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(m.spec.Ref)
	}

	if err := m.clone(ctx, m.target(), opts); err != nil {
		return fmt.Errorf("fetching %s from %s: %w", m.spec.Name, m.spec.Source, err)
	}

	rc.SearchPath.Append(root)
	return nil
}
