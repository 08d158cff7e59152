package pathutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentical(t *testing.T) {
	a := Normalize(".")
	b := Normalize(".")
	assert.Equal(t, a, b)
	assert.NotContains(t, a, "\\")
}

func TestRelUnderRoot(t *testing.T) {
	got := Rel("/data/target", "/data/target/sub/file.txt")
	assert.Equal(t, "sub/file.txt", got)
}

func TestRelOutsideRoot(t *testing.T) {
	got := Rel("/data/target", "/other/file.txt")
	assert.Equal(t, "/other/file.txt", got)
}

func TestRunTimestampFormat(t *testing.T) {
	ts := RunTimestamp(time.Date(2026, 8, 6, 13, 5, 9, 123_000_000, time.UTC))
	assert.Equal(t, "20260806_130509_123", ts)
}

func TestRunTimestampMillisPadding(t *testing.T) {
	ts := RunTimestamp(time.Date(2026, 1, 1, 0, 0, 0, 7_000_000, time.UTC))
	assert.Equal(t, "20260101_000000_007", ts)
}
