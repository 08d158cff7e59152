package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
)

func withTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := xdg.ConfigHome
	xdg.ConfigHome = dir
	t.Cleanup(func() { xdg.ConfigHome = old })
	return dir
}

func TestRunShowDestinationPrintsCurrentContext(t *testing.T) {
	resetCmdFlags()
	root := t.TempDir()
	appCtx = config.NewContext(root)

	err := runShowDestination(outputRootCmd, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
}

func TestRunSetDestinationPersistsRoot(t *testing.T) {
	resetCmdFlags()
	withTempConfigHome(t)
	root := t.TempDir()

	err := runSetDestination(setDestinationCmd, []string{root})
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)

	got, err := config.LoadOutputRoot("fallback")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestRunSetDestinationFailsWhenSettingsDirUnwritable(t *testing.T) {
	resetCmdFlags()
	dir := withTempConfigHome(t)
	blocked := filepath.Join(dir, "sentinel")
	require.NoError(t, os.MkdirAll(filepath.Dir(blocked), 0o755))
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0o644))

	err := runSetDestination(setDestinationCmd, []string{t.TempDir()})
	assert.NoError(t, err)
	assert.Equal(t, 5, exitCode)
}
