package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
)

func TestBootstrapResolvesOutputRootFromFlag(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	flagOutputRoot = dir
	defer func() { flagOutputRoot = "" }()

	require.NoError(t, bootstrap(rootCmd, nil))
	assert.Equal(t, dir, appCtx.OutputRoot)
	assert.NotNil(t, appConfig)
}

func TestAdviceEnabledHonorsNoAdviceFlag(t *testing.T) {
	resetCmdFlags()
	appConfig = &config.AppConfig{Advice: true}

	flagNoAdvice = true
	assert.False(t, adviceEnabled())

	flagNoAdvice = false
	assert.True(t, adviceEnabled())
}

func TestAdviceEnabledFollowsAppConfigWhenNoFlagOverride(t *testing.T) {
	resetCmdFlags()
	appConfig = &config.AppConfig{Advice: false}
	assert.False(t, adviceEnabled())
}
