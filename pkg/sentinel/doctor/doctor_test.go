package doctor_test

import (
	"path/filepath"
	"testing"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
	"github.com/hollow-host/sentinel/pkg/sentinel/doctor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWarnsOnMissingBaseline(t *testing.T) {
	dir := t.TempDir()
	ctx := config.NewContext(dir)

	report := doctor.Run(ctx, false)
	require.NotEmpty(t, report.Checks)

	var baselineCheck *doctor.Check
	for i := range report.Checks {
		if report.Checks[i].Name == "baseline" {
			baselineCheck = &report.Checks[i]
		}
	}
	require.NotNil(t, baselineCheck)
	assert.Equal(t, doctor.Warn, baselineCheck.Level)
}

func TestRunPassesOutputRootWhenFixCreatesIt(t *testing.T) {
	dir := t.TempDir()
	ctx := config.NewContext(filepath.Join(dir, "nested", "root"))

	report := doctor.Run(ctx, true)

	var rootCheck *doctor.Check
	for i := range report.Checks {
		if report.Checks[i].Name == "output_root" {
			rootCheck = &report.Checks[i]
		}
	}
	require.NotNil(t, rootCheck)
	assert.Equal(t, doctor.Pass, rootCheck.Level)
}

func TestRunTalliesCountsCorrectly(t *testing.T) {
	dir := t.TempDir()
	ctx := config.NewContext(dir)

	report := doctor.Run(ctx, true)
	assert.Equal(t, len(report.Checks), report.PassCount+report.WarnCount+report.FailCount)
}

func TestRunWithoutFixStillReportsOutputRoot(t *testing.T) {
	dir := t.TempDir()
	ctx := config.NewContext(dir)

	report := doctor.Run(ctx, false)
	assert.NotEmpty(t, report.Checks)
}
