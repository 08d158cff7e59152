package advisory_test

import (
	"bytes"
	"testing"

	"github.com/hollow-host/sentinel/pkg/sentinel/advisory"
	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildInitAdviceEmptyBaseline(t *testing.T) {
	advice := advisory.BuildInitAdvice(0)
	assert.Len(t, advice, 3)
	assert.Contains(t, advice[0], "no files were tracked")
}

func TestBuildInitAdviceNonEmptyBaseline(t *testing.T) {
	advice := advisory.BuildInitAdvice(42)
	assert.Contains(t, advice[0], "42 file(s)")
}

func TestBuildScanAdviceNoChanges(t *testing.T) {
	result := types.ScanResult{}
	advice := advisory.BuildScanAdvice(result, orchestrator.Status, false)
	assert.Contains(t, advice[0], "No integrity drift")
	assert.Contains(t, advice[len(advice)-1], "CI workflows")
}

func TestBuildScanAdviceNoChangesScanModeOmitsCILine(t *testing.T) {
	result := types.ScanResult{}
	advice := advisory.BuildScanAdvice(result, orchestrator.Scan, false)
	for _, line := range advice {
		assert.NotContains(t, line, "CI workflows")
	}
}

func TestBuildScanAdviceWithChanges(t *testing.T) {
	result := types.ScanResult{
		Stats: types.ScanStats{Added: 2, Modified: 1, Deleted: 3},
		Added: types.FileMap{
			"a": {Path: "a"},
			"b": {Path: "b"},
		},
		Modified: types.FileMap{
			"c": {Path: "c"},
		},
		Deleted: types.FileMap{
			"d": {Path: "d"},
			"e": {Path: "e"},
			"f": {Path: "f"},
		},
	}
	advice := advisory.BuildScanAdvice(result, orchestrator.Scan, false)
	joined := ""
	for _, l := range advice {
		joined += l + "\n"
	}
	assert.Contains(t, joined, "2 new file(s)")
	assert.Contains(t, joined, "1 file(s) were modified")
	assert.Contains(t, joined, "3 file(s) were deleted")
	assert.Contains(t, joined, "run --update")
}

func TestBuildScanAdviceBaselineRefreshed(t *testing.T) {
	result := types.ScanResult{
		Stats: types.ScanStats{Added: 1},
		Added: types.FileMap{"a": {Path: "a"}},
	}
	advice := advisory.BuildScanAdvice(result, orchestrator.Update, true)
	found := false
	for _, l := range advice {
		if l == "The baseline was refreshed; keep the change approval records for this run." {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildWatchAdviceNoChanges(t *testing.T) {
	advice := advisory.BuildWatchAdvice(false, 5, 30, false)
	assert.Contains(t, advice[0], "without detecting integrity drift")
	assert.Contains(t, advice[len(advice)-2], "5 cycle(s)")
}

func TestBuildWatchAdviceFailFast(t *testing.T) {
	advice := advisory.BuildWatchAdvice(true, 3, 10, true)
	found := false
	for _, l := range advice {
		if l == "Fail-fast stopped at the first alert, which is useful for strict CI/CD gates." {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildDoctorAdviceAllPass(t *testing.T) {
	advice := advisory.BuildDoctorAdvice(4, 0, 0)
	assert.Contains(t, advice[0], "All environment checks passed")
}

func TestBuildDoctorAdviceWarnOnly(t *testing.T) {
	advice := advisory.BuildDoctorAdvice(3, 1, 0)
	assert.Contains(t, advice[0], "warnings were detected")
}

func TestBuildDoctorAdviceFailures(t *testing.T) {
	advice := advisory.BuildDoctorAdvice(2, 1, 1)
	assert.Contains(t, advice[0], "critical health checks failed")
	assert.Contains(t, advice[len(advice)-2], "2 pass, 1 warn, 1 fail")
}

func TestRenderEmptyIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	advisory.Render(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestRenderWritesBulletedLines(t *testing.T) {
	var buf bytes.Buffer
	advisory.Render(&buf, []string{"first line", "second line"})
	out := buf.String()
	assert.Contains(t, out, "Guidance")
	assert.Contains(t, out, "first line")
	assert.Contains(t, out, "second line")
}
