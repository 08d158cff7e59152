package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollow-host/sentinel/pkg/sentinel/baseline"
	"github.com/hollow-host/sentinel/pkg/sentinel/config"
)

func writeTestBaseline(t *testing.T, root string) string {
	t.Helper()
	path := filepath.Join(root, "baseline.txt")
	doc := "# Sentinel baseline v2\n" +
		"root\t/srv/app\n" +
		"generated\t2026-01-01T00:00:00Z\n" +
		"file\t/srv/app/config.yaml\tdeadbeef\t12\t1000\n" +
		"file\t/srv/app/secrets.env\tfeedface\t34\t2000\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func resetCmdFlags() {
	flagJSON = false
	flagQuiet = false
	flagLimit = 0
	flagOverwrite = false
	flagImportForce = false
}

func TestRunListBaselineReportsEveryTrackedPath(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)

	err := runListBaseline(listBaselineCmd, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
}

func TestRunShowBaselineExactMatch(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)

	err := runShowBaseline(showBaselineCmd, []string{"/srv/app/config.yaml"})
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
}

func TestRunShowBaselineAmbiguousSubstringIsUsageError(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)

	err := runShowBaseline(showBaselineCmd, []string{"/srv/app/"})
	assert.NoError(t, err) // handled internally, classified and printed
	assert.Equal(t, 1, exitCode)
}

func TestRunShowBaselineNoMatchIsOperationFailed(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)

	err := runShowBaseline(showBaselineCmd, []string{"nope"})
	assert.NoError(t, err)
	assert.Equal(t, 5, exitCode)
}

func TestRunExportBaselineRefusesExistingWithoutOverwrite(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)

	dest := filepath.Join(dir, "exported.txt")
	require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

	err := runExportBaseline(exportBaselineCmd, []string{dest})
	assert.NoError(t, err)
	assert.Equal(t, 5, exitCode)
}

func TestRunExportBaselineSucceeds(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)

	dest := filepath.Join(dir, "exported.txt")
	err := runExportBaseline(exportBaselineCmd, []string{dest})
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.FileExists(t, dest)
}

func TestRunImportBaselineRefusesExistingWithoutForce(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)

	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte(
		"# Sentinel baseline v2\nroot\t/other\ngenerated\t2026-01-01T00:00:00Z\n"+
			"file\t/other/file.txt\tabc123\t5\t1\n"), 0o644))

	err := runImportBaseline(importBaselineCmd, []string{src})
	assert.NoError(t, err)
	assert.Equal(t, 1, exitCode)
}

func TestRunImportBaselineWithForceReplaces(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)
	writeTestBaseline(t, dir)
	flagImportForce = true

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte(
		"# Sentinel baseline v2\nroot\t/other\ngenerated\t2026-01-01T00:00:00Z\n"+
			"file\t/other/file.txt\tabc123\t5\t1\n"), 0o644))

	err := runImportBaseline(importBaselineCmd, []string{src})
	assert.NoError(t, err)
	assert.Equal(t, 0, exitCode)

	lr, err := baseline.Load(appCtx.BaselineFile)
	require.NoError(t, err)
	assert.Equal(t, "/other", lr.Document.Root)
}
