package capability

import (
	"os"
	"strings"

	"github.com/devbench/devbench/internal/config"
	"github.com/devbench/devbench/internal/execx"
	"github.com/devbench/devbench/internal/logger"
	"github.com/devbench/devbench/internal/model"
	"github.com/devbench/devbench/internal/pkgmgr"
	"github.com/devbench/devbench/internal/report"
)

// RunContext carries the shared collaborators and run-scoped state every
// probe and installer operates against. It is built once per run and handed
// to each capability in declaration order.
type RunContext struct {
	Config   *config.Config
	Runner   execx.Runner
	PkgMgr   *pkgmgr.Manager
	Reporter report.Reporter
	Log      *logger.Logger

	// Answers holds the preflight input collected before the first mutating
	// step. Immutable once the orchestrator starts probing.
	Answers model.Answers

	// SearchPath is the process-and-user-scoped module search path, modeled
	// as an explicit value instead of a true process global so tests can
	// assert on it without touching the real environment.
	SearchPath *SearchPath
}

// SearchPath is an ordered, de-duplicated list of directories. It has a
// single writer per run: the module capabilities append the module root at
// most once and later capabilities only read it.
type SearchPath struct {
	entries []string
}

// NewSearchPath splits an environment-style path list into entries.
func NewSearchPath(raw string) *SearchPath {
	sp := &SearchPath{}
	for _, entry := range strings.Split(raw, string(os.PathListSeparator)) {
		if entry != "" {
			sp.entries = append(sp.entries, entry)
		}
	}
	return sp
}

// Append adds dir unless already present. It reports whether the path grew.
func (p *SearchPath) Append(dir string) bool {
	if dir == "" || p.Contains(dir) {
		return false
	}
	p.entries = append(p.entries, dir)
	return true
}

// Contains reports whether dir is already on the path.
func (p *SearchPath) Contains(dir string) bool {
	for _, entry := range p.entries {
		if entry == dir {
			return true
		}
	}
	return false
}

// Entries returns a copy of the path entries in order.
func (p *SearchPath) Entries() []string {
	return append([]string(nil), p.entries...)
}

// String renders the path in environment-variable form.
func (p *SearchPath) String() string {
	return strings.Join(p.entries, string(os.PathListSeparator))
}
