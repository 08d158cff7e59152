package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
	"github.com/hollow-host/sentinel/pkg/sentinel/reportindex"
)

func resetMaintenanceFlags() {
	flagPurgeAll = false
	flagPurgeDryRun = false
	flagPurgeDays = 30
	flagTailLines = 20
	flagIndexFilter = ""
	flagIndexLimit = 20
}

func seedReportIndex(t *testing.T, path string, finishedAt time.Time, target string) {
	t.Helper()
	store, err := reportindex.Open(path)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.Record(reportindex.Run{
		Command:    "scan",
		Target:     target,
		ExitCode:   2,
		FinishedAt: finishedAt,
	})
	require.NoError(t, err)
}

func TestRunPurgeReportsDryRunDoesNotDelete(t *testing.T) {
	resetCmdFlags()
	resetMaintenanceFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	seedReportIndex(t, appCtx.ReportIndex, time.Now().UTC().AddDate(0, 0, -60), "/a")

	flagPurgeDryRun = true
	err := runPurgeReports(purgeReportsCmd, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)

	store, err := reportindex.Open(appCtx.ReportIndex)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunPurgeReportsRemovesOldRuns(t *testing.T) {
	resetCmdFlags()
	resetMaintenanceFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	seedReportIndex(t, appCtx.ReportIndex, time.Now().UTC().AddDate(0, 0, -60), "/old")
	seedReportIndex(t, appCtx.ReportIndex, time.Now().UTC(), "/new")

	flagPurgeDays = 30
	err := runPurgeReports(purgeReportsCmd, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)

	store, err := reportindex.Open(appCtx.ReportIndex)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, "/new", runs[0].Target)
}

func TestRunTailLogWithNoActiveBufferSucceeds(t *testing.T) {
	resetCmdFlags()
	resetMaintenanceFlags()
	err := runTailLog(tailLogCmd, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
}

func TestRunReportIndexFiltersByTargetGlob(t *testing.T) {
	resetCmdFlags()
	resetMaintenanceFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	seedReportIndex(t, appCtx.ReportIndex, time.Now().UTC(), "/srv/app")
	seedReportIndex(t, appCtx.ReportIndex, time.Now().UTC(), "/srv/other")

	flagIndexFilter = "/srv/app"
	err := runReportIndex(reportIndexCmd, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
}
