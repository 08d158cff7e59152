package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
)

func TestRunPromptModePropagatesIgnoreLoadError(t *testing.T) {
	resetCmdFlags()
	dir := t.TempDir()
	appCtx = config.NewContext(dir)

	// A directory at the ignore-file path makes ignore.Load fail with a
	// non-ENOENT error rather than falling back to built-in rules.
	require.NoError(t, os.MkdirAll(appCtx.IgnoreFile, 0o755))

	err := runPromptMode(promptModeCmd, []string{t.TempDir()})
	assert.Error(t, err)
}
