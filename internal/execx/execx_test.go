package execx

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccessCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	var stdout bytes.Buffer
	runner := &System{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	res, err := runner.Run(context.Background(), "echo", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestRunSurfacesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	runner := &System{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	res, err := runner.Run(context.Background(), "sh", "-c", "echo 'package not found' >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, err.Error(), "exited with code 3")
	assert.Contains(t, err.Error(), "package not found")
}

func TestRunMissingToolIsNotAnExitError(t *testing.T) {
	runner := &System{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	res, err := runner.Run(context.Background(), "definitely-not-a-real-tool-xyz")
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)
}

func TestOutputReturnsTrimmedStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	runner := NewSystem()

	out, err := runner.Output(context.Background(), "echo", "2.43.0")
	require.NoError(t, err)
	assert.Equal(t, "2.43.0", out)
}

func TestLookPath(t *testing.T) {
	runner := NewSystem()

	_, found := runner.LookPath("definitely-not-a-real-tool-xyz")
	assert.False(t, found)

	if runtime.GOOS != "windows" {
		path, found := runner.LookPath("sh")
		assert.True(t, found)
		assert.NotEmpty(t, path)
	}
}

func TestPrimaryOutputPrefersStderr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "err", PrimaryOutput(Result{Stdout: "out", Stderr: "err"}))
	assert.Equal(t, "out", PrimaryOutput(Result{Stdout: "out"}))
}
