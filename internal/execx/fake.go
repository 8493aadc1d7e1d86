package execx

import (
	"context"
	"fmt"
	"strings"
)

// Fake is an in-memory Runner used by tests across the capability and engine
// packages. Commands are keyed by "tool arg arg...".
type Fake struct {
	// Paths maps tool names to the path LookPath reports. Absent tools are
	// not found.
	Paths map[string]string

	// Outputs maps command keys to the stdout Output returns.
	Outputs map[string]string

	// Errors maps command keys to errors returned by Run and Output.
	Errors map[string]error

	// ExitCodes maps command keys to the exit code surfaced alongside the
	// corresponding Errors entry.
	ExitCodes map[string]int

	// Calls records every Run and Output invocation in order.
	Calls []string
}

var _ Runner = (*Fake)(nil)

// Key renders the lookup key for a command.
func Key(tool string, args ...string) string {
	return strings.Join(append([]string{tool}, args...), " ")
}

// Run records the call and returns the scripted result.
func (f *Fake) Run(ctx context.Context, tool string, args ...string) (Result, error) {
	key := Key(tool, args...)
	f.Calls = append(f.Calls, key)

	if err := f.Errors[key]; err != nil {
		return Result{ExitCode: f.exitCode(key)}, err
	}
	return Result{Stdout: f.Outputs[key]}, nil
}

// Output records the call and returns the scripted stdout.
func (f *Fake) Output(ctx context.Context, tool string, args ...string) (string, error) {
	key := Key(tool, args...)
	f.Calls = append(f.Calls, key)

	if err := f.Errors[key]; err != nil {
		return "", err
	}
	out, ok := f.Outputs[key]
	if !ok {
		return "", fmt.Errorf("no scripted output for %q", key)
	}
	return out, nil
}

// LookPath resolves tools from the Paths map.
func (f *Fake) LookPath(tool string) (string, bool) {
	path, ok := f.Paths[tool]
	return path, ok
}

// Called reports whether a command matching key was invoked.
func (f *Fake) Called(key string) bool {
	for _, call := range f.Calls {
		if call == key {
			return true
		}
	}
	return false
}

func (f *Fake) exitCode(key string) int {
	if code, ok := f.ExitCodes[key]; ok {
		return code
	}
	return 1
}
