package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWildcardMatchSubstring(t *testing.T) {
	m := New([]string{"node_modules"})
	assert.True(t, m.Match("/proj/node_modules/foo.js"))
	assert.False(t, m.Match("/proj/src/foo.js"))
}

func TestWildcardMatchTokens(t *testing.T) {
	m := New([]string{"*.log"})
	assert.True(t, m.Match("/var/log/app.log"))
	assert.False(t, m.Match("/var/log/app.logx"))

	m2 := New([]string{"build/*.tmp"})
	assert.True(t, m2.Match("build/x.tmp"))
	assert.False(t, m2.Match("other/build/x.tmp"))
}

func TestBuiltinRulesAlwaysPresent(t *testing.T) {
	m := New(nil)
	assert.True(t, m.Match("/data/sentinel-logs/run.log"))
}

func TestLoadSkipsBlankAndComments(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "ignore.txt")
	content := "# comment\n\n*.tmp\nnode_modules\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	m, err := Load(p, "")
	require.NoError(t, err)
	assert.True(t, m.Match("a.tmp"))
	assert.True(t, m.Match("node_modules/x"))
}

func TestLoadFallsBackWhenPrimaryMissing(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "fallback.txt")
	require.NoError(t, os.WriteFile(fallback, []byte("secret/\n"), 0o644))

	m, err := Load(filepath.Join(dir, "missing.txt"), fallback)
	require.NoError(t, err)
	assert.True(t, m.Match("project/secret/key"))
}

func TestMatchIdempotent(t *testing.T) {
	m := New([]string{"*.bak", "cache"})
	candidates := []string{"a.bak", "cache/x", "plain.txt"}
	for _, c := range candidates {
		first := m.Match(c)
		second := m.Match(c)
		assert.Equal(t, first, second)
	}
}

func TestMatchEither(t *testing.T) {
	m := New([]string{"tmp"})
	assert.True(t, m.MatchEither("/root/project/tmp/x", "tmp/x"))
	assert.True(t, m.MatchEither("/root/project/other", "tmp/x"))
	assert.False(t, m.MatchEither("/root/project/other", "keep/x"))
}
