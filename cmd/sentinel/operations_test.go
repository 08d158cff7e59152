package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
)

func resetOperationFlags() {
	flagForce = false
	flagStrict = false
	flagHashOnly = false
	flagNoReports = false
	flagReportFormats = nil
	flagReports = false
}

func TestRunInitCreatesBaselineForTarget(t *testing.T) {
	resetCmdFlags()
	resetOperationFlags()
	root := t.TempDir()
	appCtx = config.NewContext(root)

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("alpha\n"), 0o644))

	err := runInit(initCmd, []string{target})
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.FileExists(t, appCtx.BaselineFile)
}

func TestRunScanFamilyStatusIsQuietAndNeverWritesReports(t *testing.T) {
	resetCmdFlags()
	resetOperationFlags()
	root := t.TempDir()
	appCtx = config.NewContext(root)

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("alpha\n"), 0o644))
	require.NoError(t, runInit(initCmd, []string{target}))

	statusRunE := runScanFamily(orchestrator.Status, "status")
	err := statusRunE(statusCmd, []string{target})
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	_, statErr := os.Stat(appCtx.ReportDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunScanFamilyVerifyStrictReportsChangesDetected(t *testing.T) {
	resetCmdFlags()
	resetOperationFlags()
	root := t.TempDir()
	appCtx = config.NewContext(root)

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("alpha\n"), 0o644))
	require.NoError(t, runInit(initCmd, []string{target}))

	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("alpha mutated\n"), 0o644))

	flagStrict = true
	verifyRunE := runScanFamily(orchestrator.Verify, "verify")
	err := verifyRunE(verifyCmd, []string{target})
	assert.NoError(t, err)
	assert.Equal(t, 2, exitCode)
}

func TestRunInitRefusesExistingBaselineWithoutForce(t *testing.T) {
	resetCmdFlags()
	resetOperationFlags()
	root := t.TempDir()
	appCtx = config.NewContext(root)

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("alpha\n"), 0o644))
	require.NoError(t, runInit(initCmd, []string{target}))

	err := runInit(initCmd, []string{target})
	assert.NoError(t, err)
	assert.Equal(t, 1, exitCode)
}
