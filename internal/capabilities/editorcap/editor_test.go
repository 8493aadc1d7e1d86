package editorcap

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbench/devbench/internal/capability"
	"github.com/devbench/devbench/internal/execx"
	"github.com/devbench/devbench/internal/pkgmgr"
)

func TestProbeLauncherOnPathIsSatisfied(t *testing.T) {
	t.Parallel()

	runner := &execx.Fake{Paths: map[string]string{"code": "/usr/local/bin/code"}}
	result := New().Probe(context.Background(), &capability.RunContext{Runner: runner})

	require.True(t, result.Satisfied)
	assert.Contains(t, result.Detail, "/usr/local/bin/code")
}

func TestProbeMissingEditorIsUnsatisfied(t *testing.T) {
	t.Parallel()

	for _, dir := range wellKnownDirs {
		if _, err := os.Stat(capability.ExpandPath(dir)); err == nil {
			t.Skipf("editor actually installed at %s", dir)
		}
	}

	runner := &execx.Fake{}
	result := New().Probe(context.Background(), &capability.RunContext{Runner: runner})

	require.False(t, result.Satisfied)
	assert.Contains(t, result.Detail, "not found")
}

func TestInstallUsesPackageManagerMapping(t *testing.T) {
	t.Parallel()

	runner := &execx.Fake{Paths: map[string]string{"winget": `C:\winget.exe`}}
	mgr, err := pkgmgr.Detect(runner, "winget")
	require.NoError(t, err)

	rc := &capability.RunContext{Runner: runner, PkgMgr: mgr}
	require.NoError(t, New().Install(context.Background(), rc))

	assert.True(t, runner.Called(execx.Key(
		"winget", "install", "--id", "Microsoft.VisualStudioCode",
		"--silent", "--accept-package-agreements", "--accept-source-agreements",
	)))
}
