package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterRoundTrips(t *testing.T) {
	r := NewReport("scan", "/target", "scan", sampleResult(), "missing seal")

	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, &r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "scan", decoded["command"])
	assert.Equal(t, "/target", decoded["target"])
	assert.Equal(t, true, decoded["changed"])
	assert.Equal(t, "missing seal", decoded["warning"])

	stats := decoded["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["scanned"])

	added := decoded["added"].([]any)
	require.Len(t, added, 1)
	entry := added[0].(map[string]any)
	assert.Equal(t, "/a/new.txt", entry["path"])
}

func TestJSONFormatterOmitsWarningWhenEmpty(t *testing.T) {
	r := NewReport("status", "/target", "status", sampleResult(), "")

	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, &r))
	assert.NotContains(t, buf.String(), "warning")
}
