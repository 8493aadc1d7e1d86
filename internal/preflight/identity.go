package preflight

import (
	"context"

	gitconfig "github.com/go-git/go-git/v5/config"
)

// Identity field keys, matching the git config entries they map to.
const (
	KeyUserEmail = "user.email"
	KeyUserName  = "user.name"
)

// DomainIdentity is the preflight domain consumed by the version-control
// identity capability.
const DomainIdentity = "identity"

// IdentitySource reads the committer identity from the git global config.
// It never shells out; the config file is parsed directly.
type IdentitySource struct {
	// EmailPlaceholder is the sentinel left by machine templates; a detected
	// email equal to it still triggers a prompt.
	EmailPlaceholder string

	// Load reads the global config; tests swap it to avoid touching the
	// real one.
	Load func() (*gitconfig.Config, error)
}

var _ Source = (*IdentitySource)(nil)

// NewIdentitySource creates the identity domain source.
func NewIdentitySource(emailPlaceholder string) *IdentitySource {
	return &IdentitySource{
		EmailPlaceholder: emailPlaceholder,
		Load: func() (*gitconfig.Config, error) {
			return gitconfig.LoadConfig(gitconfig.GlobalScope)
		},
	}
}

// Domain names the identity domain.
func (s *IdentitySource) Domain() string {
	return DomainIdentity
}

// Fields lists the two identity fields and their prompts.
func (s *IdentitySource) Fields() []Field {
	return []Field{
		{Key: KeyUserEmail, Prompt: "Email address for commits", Placeholder: s.EmailPlaceholder},
		{Key: KeyUserName, Prompt: "Display name for commits"},
	}
}

// Read loads user.email and user.name from the global git config. A missing
// or unreadable config reads as no detected values.
func (s *IdentitySource) Read(ctx context.Context) map[string]string {
	cfg, err := s.Load()
	if err != nil || cfg == nil {
		return nil
	}

	detected := make(map[string]string, 2)
	if cfg.User.Email != "" {
		detected[KeyUserEmail] = cfg.User.Email
	}
	if cfg.User.Name != "" {
		detected[KeyUserName] = cfg.User.Name
	}
	return detected
}
