package main

import (
	"os"

	"github.com/devbench/devbench/internal/capabilities/editorcap"
	"github.com/devbench/devbench/internal/capabilities/identitycap"
	"github.com/devbench/devbench/internal/capabilities/modulecap"
	"github.com/devbench/devbench/internal/capabilities/runtimecap"
	"github.com/devbench/devbench/internal/capabilities/sdkcap"
	"github.com/devbench/devbench/internal/capabilities/vcscap"
	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/config"
	"github.com/devbench/devbench/internal/execx"
	"github.com/devbench/devbench/internal/logger"
	"github.com/devbench/devbench/internal/pkgmgr"
	"github.com/devbench/devbench/internal/preflight"
	"github.com/devbench/devbench/internal/report"
)

// searchPathEnv is the module search path variable exported after a
// completed run so imaging scripts resolve modules from the module root.
const searchPathEnv = "PSModulePath"

// buildCapabilities assembles the capability list in its fixed provisioning
// order: the runtime first since later installers shell through it, then the
// version-control client the identity and module steps depend on.
func buildCapabilities(cfg *config.Config, source *preflight.IdentitySource) ([]capability.Capability, error) {
	runtime, err := runtimecap.New(cfg.Runtime.MinimumVersion)
	if err != nil {
		return nil, err
	}

	caps := []capability.Capability{
		runtime,
		vcscap.New(),
		identitycap.New(source),
		editorcap.New(),
		sdkcap.New(cfg.SDK),
	}
	for _, spec := range cfg.Modules {
		caps = append(caps, modulecap.New(spec, cfg.ModuleRoot))
	}
	return caps, nil
}

// newRunContext builds the per-run collaborator set. The search path seeds
// from the live environment so Contains sees entries a previous run already
// exported.
func newRunContext(cfg *config.Config, runner execx.Runner, mgr *pkgmgr.Manager, reporter report.Reporter, log *logger.Logger) *capability.RunContext {
	return &capability.RunContext{
		Config:     cfg,
		Runner:     runner,
		PkgMgr:     mgr,
		Reporter:   reporter,
		Log:        log,
		SearchPath: capability.NewSearchPath(os.Getenv(searchPathEnv)),
	}
}

func newLogger(verbose bool) (*logger.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true})
}
