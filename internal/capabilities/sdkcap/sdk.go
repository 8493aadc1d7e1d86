package sdkcap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/config"
	"github.com/devbench/devbench/internal/model"
)

// SDK is the deployment/imaging SDK. Its presence is marked by a well-known
// install directory; installation is delegated to the vendor's bootstrap
// tool with a fixed argument set.
type SDK struct {
	cfg config.SDKConfig
}

var _ capability.Capability = (*SDK)(nil)

// New creates the SDK capability from its configuration block.
func New(cfg config.SDKConfig) *SDK {
	return &SDK{cfg: cfg}
}

// Metadata describes the capability for the orchestrator.
func (s *SDK) Metadata() capability.Metadata {
	return capability.Metadata{
		Name:        "sdk",
		Description: "deployment SDK for image builds",
		Fatal:       true,
	}
}

// Probe is an existence probe on the SDK's install directory.
func (s *SDK) Probe(ctx context.Context, rc *capability.RunContext) model.ProbeResult {
	path := capability.ExpandPath(s.cfg.Path)

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return model.ProbeResult{Detail: fmt.Sprintf("no SDK at %s", path)}
	}

	return model.ProbeResult{Satisfied: true, Detail: fmt.Sprintf("SDK at %s", path)}
}

// Install invokes the vendor bootstrap tool. The parent directory is created
// first so a bootstrap that expects its target to exist cannot fail on a
// fresh machine.
func (s *SDK) Install(ctx context.Context, rc *capability.RunContext) error {
	path := capability.ExpandPath(s.cfg.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("preparing SDK parent directory: %w", err)
	}

	if _, found := rc.Runner.LookPath(s.cfg.Bootstrap); !found {
		return fmt.Errorf("bootstrap tool %q not found on PATH", s.cfg.Bootstrap)
	}

	args := append([]string{}, s.cfg.BootstrapArgs...)
	args = append(args, "--target", path)
	if _, err := rc.Runner.Run(ctx, s.cfg.Bootstrap, args...); err != nil {
		return err
	}
	return nil
}
