package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
	"github.com/hollow-host/sentinel/pkg/sentinel/tuner"
)

func writeTree(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.txt"), []byte("gamma\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sentinel-logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sentinel-logs", "run.log"), []byte("noise"), 0o644))
	return dir
}

func TestBuildFindsAllRegularFiles(t *testing.T) {
	dir := writeTree(t)

	m, duration, err := Build(context.Background(), Options{Root: dir})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, duration, 0.0)
	assert.Len(t, m, 3)

	for _, e := range m {
		assert.NotEmpty(t, e.Hash)
		assert.Len(t, e.Hash, 64)
	}
}

func TestBuildHonorsIgnoreRules(t *testing.T) {
	dir := writeTree(t)
	matcher := ignore.New([]string{"sub/"})

	m, _, err := Build(context.Background(), Options{Root: dir, Ignore: matcher})
	require.NoError(t, err)

	for path := range m {
		assert.NotContains(t, path, "/sub/")
	}
}

func TestBuiltinIgnoreAlwaysExcludesOutputDir(t *testing.T) {
	dir := writeTree(t)

	m, _, err := Build(context.Background(), Options{Root: dir})
	require.NoError(t, err)

	for path := range m {
		assert.NotContains(t, path, "sentinel-logs")
	}
}

func TestBuildIsDeterministicAcrossRuns(t *testing.T) {
	dir := writeTree(t)

	first, _, err := Build(context.Background(), Options{Root: dir})
	require.NoError(t, err)
	second, _, err := Build(context.Background(), Options{Root: dir})
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	for path, entry := range first {
		other, ok := second[path]
		require.True(t, ok)
		assert.Equal(t, entry.Hash, other.Hash)
		assert.Equal(t, entry.Size, other.Size)
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 200; i++ {
		name := filepath.Join(dir, "f"+itoa(i)+".txt")
		require.NoError(t, os.WriteFile(name, []byte("content"), 0o644))
	}

	parallel, _, err := Build(context.Background(), Options{
		Root:      dir,
		Resources: tuner.SystemResources{CPUCores: 8},
	})
	require.NoError(t, err)

	sequential, _, err := Build(context.Background(), Options{
		Root:      dir,
		Resources: tuner.SystemResources{CPUCores: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, len(sequential), len(parallel))
	for path, e := range sequential {
		other, ok := parallel[path]
		require.True(t, ok)
		assert.Equal(t, e.Hash, other.Hash)
	}
}

func TestHashOneDropsOnEmptyDigest(t *testing.T) {
	_, ok := hashOne(pendingFile{path: "/does/not/exist", size: 5})
	assert.False(t, ok)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
