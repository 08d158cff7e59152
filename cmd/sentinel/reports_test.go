package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveReportFormatsExpandsAll(t *testing.T) {
	appConfig = nil
	got := resolveReportFormats([]string{"all"})
	assert.Equal(t, allReportFormats, got)
}

func TestResolveReportFormatsNoneYieldsNil(t *testing.T) {
	appConfig = nil
	got := resolveReportFormats([]string{"none"})
	assert.Nil(t, got)
}

func TestResolveReportFormatsDedupes(t *testing.T) {
	appConfig = nil
	got := resolveReportFormats([]string{"cli", "cli", "json"})
	assert.Equal(t, []string{"cli", "json"}, got)
}

func TestValidateReportFlagsRejectsMutualExclusivity(t *testing.T) {
	err := validateReportFlags(true, []string{"cli"})
	assert.Error(t, err)
}

func TestValidateReportFlagsAllowsEither(t *testing.T) {
	assert.NoError(t, validateReportFlags(true, nil))
	assert.NoError(t, validateReportFlags(false, []string{"cli"}))
}

func TestReportDestinationKnowsEveryFormat(t *testing.T) {
	appCtxBackup := appCtx
	appCtx.CLIDir, appCtx.HTMLDir, appCtx.JSONDir, appCtx.CSVDir = "/a/cli", "/a/html", "/a/json", "/a/csv"
	defer func() { appCtx = appCtxBackup }()

	dir, ext := reportDestination("html")
	assert.Equal(t, "/a/html", dir)
	assert.Equal(t, ".html", ext)

	dir, ext = reportDestination("unknown")
	assert.Equal(t, "", dir)
	assert.Equal(t, "", ext)
}
