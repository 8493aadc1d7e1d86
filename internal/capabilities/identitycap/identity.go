package identitycap

import (
	"context"
	"fmt"
	"strings"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/model"
	"github.com/devbench/devbench/internal/preflight"
)

// Identity configures the version-control committer identity from answers
// gathered during preflight. The values are persisted by the tool's own
// global config store, not by the provisioner.
//
// The capability is non-fatal: a workstation without a committer identity
// can still build images, so a failure here warns and the run continues.
type Identity struct {
	source *preflight.IdentitySource
}

var _ capability.Capability = (*Identity)(nil)

// New creates the identity capability backed by the given preflight source.
// The same source feeds the preflight collector, so the probe and the
// prompt-suppression logic always agree on what "configured" means.
func New(source *preflight.IdentitySource) *Identity {
	return &Identity{source: source}
}

// Metadata declares the identity preflight domain so the orchestrator
// collects the answers before any mutating step runs.
func (i *Identity) Metadata() capability.Metadata {
	return capability.Metadata{
		Name:        "identity",
		Description: "version-control committer identity",
		Domains:     []string{preflight.DomainIdentity},
		Fatal:       false,
	}
}

// Probe reads the global config directly. Satisfied iff both fields are set
// and the email is not the imaging template's placeholder.
func (i *Identity) Probe(ctx context.Context, rc *capability.RunContext) model.ProbeResult {
	detected := i.source.Read(ctx)

	email := detected[preflight.KeyUserEmail]
	name := detected[preflight.KeyUserName]

	var missing []string
	if email == "" || email == i.source.EmailPlaceholder {
		missing = append(missing, preflight.KeyUserEmail)
	}
	if name == "" {
		missing = append(missing, preflight.KeyUserName)
	}

	if len(missing) > 0 {
		return model.ProbeResult{Detail: fmt.Sprintf("unconfigured: %s", strings.Join(missing, ", "))}
	}

	return model.ProbeResult{Satisfied: true, Detail: fmt.Sprintf("%s <%s>", name, email)}
}

// Install writes the collected answers through the client's own config
// store. Missing answers (non-interactive run against an unconfigured
// machine) are an install failure, reported as a warning by the
// orchestrator because the capability is non-fatal.
func (i *Identity) Install(ctx context.Context, rc *capability.RunContext) error {
	for _, key := range []string{preflight.KeyUserEmail, preflight.KeyUserName} {
		value := rc.Answers.Value(key)
		if value == "" {
			return fmt.Errorf("%s was not collected during preflight", key)
		}
		if _, err := rc.Runner.Run(ctx, "git", "config", "--global", key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}
