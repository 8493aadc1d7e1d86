package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result captures stdout/stderr and the exit code of an external tool run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// PrimaryOutput returns stderr if present, otherwise stdout. External tools
// tend to put the useful failure message on stderr.
func PrimaryOutput(res Result) string {
	if res.Stderr != "" {
		return res.Stderr
	}
	return res.Stdout
}

// Runner abstracts external tool invocation so the orchestrator and the
// per-capability probes/installers can be tested against fakes.
type Runner interface {
	// Run executes tool with args and blocks until it exits. Exit code 0 is
	// success; any other exit code is returned as an error with the code
	// surfaced in the message and in Result.ExitCode.
	Run(ctx context.Context, tool string, args ...string) (Result, error)

	// Output executes tool with args and returns its trimmed stdout without
	// streaming to the console. Probes use it for version queries.
	Output(ctx context.Context, tool string, args ...string) (string, error)

	// LookPath reports the absolute path of tool if it is on PATH.
	LookPath(tool string) (string, bool)
}

// System is the Runner backed by the real machine.
type System struct {
	// Stdout and Stderr receive the streamed output of Run. They default to
	// the process's own stdout/stderr when nil.
	Stdout io.Writer
	Stderr io.Writer

	// Env overrides the child process environment when non-nil.
	Env []string
}

var _ Runner = (*System)(nil)

// NewSystem creates a Runner that executes against the live machine.
func NewSystem() *System {
	return &System{}
}

// Run wires the command's stdout/stderr through to the parent process while
// collecting the output for inspection, then normalizes exit codes.
func (s *System) Run(ctx context.Context, tool string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Env = s.environ()

	var stdoutBuf, stderrBuf bytes.Buffer

	stdout := s.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := s.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err := cmd.Run()

	res := Result{
		Stdout: strings.TrimSpace(stdoutBuf.String()),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			if out := PrimaryOutput(res); out != "" {
				return res, fmt.Errorf("%s exited with code %d: %s", tool, res.ExitCode, out)
			}
			return res, fmt.Errorf("%s exited with code %d", tool, res.ExitCode)
		}
		res.ExitCode = -1
		return res, err
	}

	return res, nil
}

// Output executes the tool quietly and returns its trimmed stdout.
func (s *System) Output(ctx context.Context, tool string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Env = s.environ()

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath reports whether tool resolves on PATH.
func (s *System) LookPath(tool string) (string, bool) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", false
	}
	return path, true
}

func (s *System) environ() []string {
	if s.Env != nil {
		return s.Env
	}
	return os.Environ()
}
