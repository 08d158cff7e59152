package config

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadOutputRootRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Setenv("SENTINEL_ROOT", "")

	require.NoError(t, SaveOutputRoot("/data/target-root"))

	got, err := LoadOutputRoot("/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/data/target-root", got)
}

func TestLoadOutputRootFallsBackWhenUnset(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Setenv("SENTINEL_ROOT", "")

	got, err := LoadOutputRoot("/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", got)
}

func TestEnvOverridesSavedSetting(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	require.NoError(t, SaveOutputRoot("/data/saved"))
	t.Setenv("SENTINEL_ROOT", "/data/env-wins")

	got, err := LoadOutputRoot("/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/data/env-wins", got)
}

func TestSettingsPathUnderConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	assert.Equal(t, filepath.Join(home, "sentinel", "settings.ini"), SettingsPath())
}
